package services

import (
	"encoding/json"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"icard-api/models"
	"icard-api/utils"
)

// SubmissionInput carries the raw form fields of one application plus the
// stored filenames produced by the upload intake. Each filename is optional.
type SubmissionInput struct {
	UserID                 string
	Name                   string
	BusinessKey            string
	Designation            string
	Department             string
	Station                string
	BillUnit               string
	Dob                    string
	Mobile                 string
	Address                string
	Reason                 string
	EmergencyContactName   string
	EmergencyContactNumber string
	BloodGroup             string
	Family                 string // JSON-encoded list, empty means no family
	Photo                  string
	Sign                   string
	HindiName              string
	HindiDesig             string
}

// SubmissionService validates and persists new applications.
type SubmissionService struct {
	db *gorm.DB
}

func NewSubmissionService(db *gorm.DB) *SubmissionService {
	return &SubmissionService{db: db}
}

// Submit assembles, validates and stores a Pending application for the given
// variant. Duplicate business keys and application numbers surface as
// DuplicateKeyError; field problems as ValidationError.
func (s *SubmissionService) Submit(v *models.Variant, in SubmissionInput) (models.Record, error) {
	dob, err := utils.ParseDateInput(in.Dob)
	if err != nil {
		return nil, &InvalidDateError{Input: in.Dob}
	}

	family, err := parseFamily(in.Family)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{
			"family": "Family details must be a valid JSON list",
		}}
	}

	rec := v.New()
	base := rec.Base()
	base.ApplicationNo = GenerateApplicationNumber(v.AppNoPrefix)
	base.UserID = utils.SanitizeInput(in.UserID)
	base.Name = utils.SanitizeInput(in.Name)
	base.Designation = utils.SanitizeInput(in.Designation)
	base.Department = utils.SanitizeInput(in.Department)
	base.Station = utils.SanitizeInput(in.Station)
	base.BillUnit = utils.SanitizeInput(in.BillUnit)
	base.Dob = dob
	base.Mobile = utils.SanitizeInput(in.Mobile)
	base.Address = utils.SanitizeInput(in.Address)
	base.Reason = utils.SanitizeInput(in.Reason)
	base.EmergencyContactName = utils.SanitizeInput(in.EmergencyContactName)
	base.EmergencyContactNumber = utils.SanitizeInput(in.EmergencyContactNumber)
	base.BloodGroup = utils.SanitizeInput(in.BloodGroup)
	base.Family = datatypes.JSONSlice[models.FamilyMember](family)
	base.Photo = in.Photo
	base.Sign = in.Sign
	base.Status = models.StatusPending

	switch r := rec.(type) {
	case *models.GazettedEmployee:
		r.Ruid = utils.SanitizeInput(in.BusinessKey)
		r.HindiName = in.HindiName
		r.HindiDesig = in.HindiDesig
	case *models.NonGazettedEmployee:
		r.EmpNo = utils.SanitizeInput(in.BusinessKey)
	}

	if errs := rec.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	if err := s.db.Create(rec).Error; err != nil {
		if dup, ok := asDuplicateKey(err, v); ok {
			return nil, dup
		}
		return nil, err
	}

	return rec, nil
}

func parseFamily(raw string) ([]models.FamilyMember, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []models.FamilyMember{}, nil
	}

	var family []models.FamilyMember
	if err := json.Unmarshal([]byte(trimmed), &family); err != nil {
		return nil, err
	}
	return family, nil
}

const appNoAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateApplicationNumber builds a prefix + base36 timestamp + random
// suffix reference. The suffix makes concurrent submissions collision
// resistant; the store's unique index is the final arbiter.
func GenerateApplicationNumber(prefix string) string {
	stamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = appNoAlphabet[rand.Intn(len(appNoAlphabet))]
	}

	return prefix + stamp + string(suffix)
}
