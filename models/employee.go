package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var mobileRegex = regexp.MustCompile(`^[0-9]{10}$`)

// IsValidMobile reports whether s is an exactly-10-digit phone number.
func IsValidMobile(s string) bool {
	return mobileRegex.MatchString(s)
}

// Application status values. All three states are mutually reachable.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// FamilyMember is one entry of the family list printed on the card back.
type FamilyMember struct {
	Relation   string `json:"relation"`
	Dob        string `json:"dob"`
	BloodGroup string `json:"bloodGroup"`
}

// Employee holds the fields shared by both employee categories.
type Employee struct {
	ID                     string                            `gorm:"primaryKey;column:id;size:36" json:"id"`
	ApplicationNo          string                            `gorm:"column:application_no;size:40;uniqueIndex" json:"applicationNo"`
	UserID                 string                            `gorm:"column:user_id;size:100" json:"userId"`
	Name                   string                            `gorm:"column:name;size:150" json:"name"`
	Designation            string                            `gorm:"column:designation;size:100" json:"designation"`
	Department             string                            `gorm:"column:department;size:100" json:"department"`
	Station                string                            `gorm:"column:station;size:100" json:"station"`
	BillUnit               string                            `gorm:"column:bill_unit;size:50" json:"billUnit"`
	Dob                    time.Time                         `gorm:"column:dob;type:date" json:"dob"`
	Mobile                 string                            `gorm:"column:mobile;size:10" json:"mobile"`
	Address                string                            `gorm:"column:address;type:text" json:"address"`
	Reason                 string                            `gorm:"column:reason;type:text" json:"reason"`
	EmergencyContactName   string                            `gorm:"column:emergency_contact_name;size:150" json:"emergencyContactName"`
	EmergencyContactNumber string                            `gorm:"column:emergency_contact_number;size:10" json:"emergencyContactNumber"`
	BloodGroup             string                            `gorm:"column:blood_group;size:10" json:"bloodGroup"`
	Family                 datatypes.JSONSlice[FamilyMember] `gorm:"column:family" json:"family"`
	Photo                  string                            `gorm:"column:photo;size:255" json:"photo"`
	Sign                   string                            `gorm:"column:sign;size:255" json:"sign"`
	Status                 string                            `gorm:"column:status;size:20;default:Pending;index" json:"status"`
	ApprovedAt             *time.Time                        `gorm:"column:approved_at" json:"approvedAt,omitempty"`
	RejectedAt             *time.Time                        `gorm:"column:rejected_at" json:"rejectedAt,omitempty"`
	RejectionReason        string                            `gorm:"column:rejection_reason;size:500" json:"rejectionReason,omitempty"`
	CreateAt               time.Time                         `gorm:"column:create_at;autoCreateTime" json:"createdAt"`
	UpdateAt               time.Time                         `gorm:"column:update_at;autoUpdateTime" json:"updatedAt"`
}

// BeforeCreate assigns the record identifier. Ids must be unique across both
// category tables so an id lookup never resolves a record from the wrong
// category.
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// GazettedEmployee represents the gazetted_employees table.
type GazettedEmployee struct {
	Employee   `gorm:"embedded"`
	Ruid       string `gorm:"column:ruid;size:50;uniqueIndex" json:"ruid"`
	HindiName  string `gorm:"column:hindi_name;size:255" json:"hindiName"`
	HindiDesig string `gorm:"column:hindi_desig;size:255" json:"hindiDesig"`
}

// NonGazettedEmployee represents the non_gazetted_employees table.
type NonGazettedEmployee struct {
	Employee `gorm:"embedded"`
	EmpNo    string `gorm:"column:emp_no;size:50;uniqueIndex" json:"empNo"`
}

// TableName overrides
func (GazettedEmployee) TableName() string {
	return "gazetted_employees"
}

func (NonGazettedEmployee) TableName() string {
	return "non_gazetted_employees"
}

// Record is implemented by both employee categories so cross-variant code can
// iterate the configured variant list instead of branching twice.
type Record interface {
	Base() *Employee
	BusinessKey() string
	Validate() map[string]string
}

func (e *GazettedEmployee) Base() *Employee    { return &e.Employee }
func (e *NonGazettedEmployee) Base() *Employee { return &e.Employee }

func (e *GazettedEmployee) BusinessKey() string    { return e.Ruid }
func (e *NonGazettedEmployee) BusinessKey() string { return e.EmpNo }

// validate checks the fields shared by both categories and returns one
// message per failing field.
func (e *Employee) validate() map[string]string {
	errs := make(map[string]string)

	if e.UserID == "" {
		errs["userId"] = "User ID is required"
	}
	if e.Name == "" {
		errs["name"] = "Full name is required"
	}
	if e.Designation == "" {
		errs["designation"] = "Designation is required"
	}
	if e.Department == "" {
		errs["department"] = "Department is required"
	}
	if e.Station == "" {
		errs["station"] = "Station is required"
	}
	if e.BillUnit == "" {
		errs["billUnit"] = "Bill unit is required"
	}
	if e.Dob.IsZero() {
		errs["dob"] = "Date of birth is required"
	}
	if e.Mobile == "" {
		errs["mobile"] = "Mobile number is required"
	} else if !IsValidMobile(e.Mobile) {
		errs["mobile"] = "Please enter a valid 10-digit mobile number"
	}
	if e.Address == "" {
		errs["address"] = "Address is required"
	}
	if e.Reason == "" {
		errs["reason"] = "Reason is required"
	}
	if e.EmergencyContactNumber != "" && !IsValidMobile(e.EmergencyContactNumber) {
		errs["emergencyContactNumber"] = "Please enter a valid 10-digit mobile number"
	}

	return errs
}

// Validate returns per-field validation messages, empty when the record is
// ready to persist.
func (e *GazettedEmployee) Validate() map[string]string {
	errs := e.Employee.validate()
	if e.Ruid == "" {
		errs["ruid"] = "RUID is required"
	}
	return errs
}

func (e *NonGazettedEmployee) Validate() map[string]string {
	errs := e.Employee.validate()
	if e.EmpNo == "" {
		errs["empNo"] = "Employee number is required"
	}
	return errs
}
