package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func completeGazetted() *GazettedEmployee {
	return &GazettedEmployee{
		Employee: Employee{
			UserID:      "u-1",
			Name:        "A K Sharma",
			Designation: "Senior Clerk",
			Department:  "COMMERCIAL",
			Station:     "BBS",
			BillUnit:    "3001",
			Dob:         time.Date(1985, 7, 20, 0, 0, 0, 0, time.Local),
			Mobile:      "9876543210",
			Address:     "Railway Colony",
			Reason:      "New issue",
		},
		Ruid: "RUID12",
	}
}

func TestValidateCompleteRecordPasses(t *testing.T) {
	if errs := completeGazetted().Validate(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestValidateEnumeratesMissingFields(t *testing.T) {
	rec := &GazettedEmployee{}
	errs := rec.Validate()

	for _, field := range []string{
		"userId", "name", "designation", "department", "station",
		"billUnit", "dob", "mobile", "address", "reason", "ruid",
	} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected a message for %q", field)
		}
	}
	if errs["name"] != "Full name is required" {
		t.Errorf("name message = %q", errs["name"])
	}
	if errs["ruid"] != "RUID is required" {
		t.Errorf("ruid message = %q", errs["ruid"])
	}
}

func TestValidateMobileFormat(t *testing.T) {
	rec := completeGazetted()
	rec.Mobile = "12345"
	errs := rec.Validate()
	if errs["mobile"] != "Please enter a valid 10-digit mobile number" {
		t.Fatalf("mobile message = %q", errs["mobile"])
	}
}

func TestValidateEmergencyNumberIsOptionalButChecked(t *testing.T) {
	rec := completeGazetted()
	if errs := rec.Validate(); errs["emergencyContactNumber"] != "" {
		t.Fatal("empty emergency number must not fail validation")
	}

	rec.EmergencyContactNumber = "abc"
	if errs := rec.Validate(); errs["emergencyContactNumber"] == "" {
		t.Fatal("malformed emergency number must fail validation")
	}
}

func TestNonGazettedRequiresEmpNo(t *testing.T) {
	rec := &NonGazettedEmployee{Employee: completeGazetted().Employee}
	errs := rec.Validate()
	if errs["empNo"] != "Employee number is required" {
		t.Fatalf("empNo message = %q", errs["empNo"])
	}

	rec.EmpNo = "E123"
	if errs := rec.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestRecordIDsAreUniqueAcrossCategories(t *testing.T) {
	// Both tables share one id space; a gazetted record must never hold the
	// same id as a non-gazetted one, or id lookups would shadow records.
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		g := &GazettedEmployee{}
		ng := &NonGazettedEmployee{}
		if err := g.BeforeCreate(nil); err != nil {
			t.Fatal(err)
		}
		if err := ng.BeforeCreate(nil); err != nil {
			t.Fatal(err)
		}
		for _, id := range []string{g.ID, ng.ID} {
			if _, err := uuid.Parse(id); err != nil {
				t.Fatalf("id %q is not a uuid: %v", id, err)
			}
			if seen[id] {
				t.Fatalf("id %q assigned twice", id)
			}
			seen[id] = true
		}
	}
}

func TestBeforeCreateKeepsExistingID(t *testing.T) {
	const id = "b2c3d4e5-f6a7-4b8c-9d0e-1f2a3b4c5d6e"
	g := &GazettedEmployee{}
	g.ID = id
	if err := g.BeforeCreate(nil); err != nil {
		t.Fatal(err)
	}
	if g.ID != id {
		t.Fatalf("pre-set id was overwritten: %q", g.ID)
	}
}

func TestIsValidMobile(t *testing.T) {
	valid := []string{"9876543210", "0000000000"}
	invalid := []string{"", "123", "98765432101", "98765abcde", "98765 4321"}

	for _, s := range valid {
		if !IsValidMobile(s) {
			t.Errorf("IsValidMobile(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidMobile(s) {
			t.Errorf("IsValidMobile(%q) = true, want false", s)
		}
	}
}

func TestVariantLookup(t *testing.T) {
	for _, key := range []string{"gazetted", "non-gazetted"} {
		v, ok := VariantByKey(key)
		if !ok {
			t.Fatalf("VariantByKey(%q) not found", key)
		}
		if v.Key != key {
			t.Fatalf("VariantByKey(%q).Key = %q", key, v.Key)
		}
	}
	if _, ok := VariantByKey("contractor"); ok {
		t.Fatal("unknown key should not resolve")
	}
}

func TestVariantDescriptors(t *testing.T) {
	g, _ := VariantByKey("gazetted")
	if g.AppNoPrefix != "ECR-G-" || g.BusinessKeyCol != "ruid" || g.IDLabel != "P.F No." {
		t.Fatalf("unexpected gazetted descriptor: %+v", g)
	}
	ng, _ := VariantByKey("non-gazetted")
	if ng.AppNoPrefix != "ECR-NG-" || ng.BusinessKeyCol != "emp_no" {
		t.Fatalf("unexpected non-gazetted descriptor: %+v", ng)
	}

	rec := g.New()
	if _, ok := rec.(*GazettedEmployee); !ok {
		t.Fatalf("gazetted New() returned %T", rec)
	}
}
