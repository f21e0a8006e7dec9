package models

import "gorm.io/gorm"

// Variant describes one employee category. Everything that differs between
// the two categories lives here so services iterate Variants instead of
// hardcoding two branches.
type Variant struct {
	Key             string   // route segment, e.g. "gazetted"
	Label           string   // human label used in messages
	StatKey         string   // suffix for dashboard count keys, e.g. "Gazetted"
	BusinessKeyCol  string   // column holding the business key
	BusinessKeyName string   // field name reported on duplicate-key errors
	IDLabel         string   // identifier label printed on the card front
	AppNoPrefix     string   // application number prefix
	UploadFields    []string // accepted multipart file fields

	New  func() Record
	List func(tx *gorm.DB) ([]Record, error)
}

var Variants = []Variant{
	{
		Key:             "gazetted",
		Label:           "Gazetted",
		StatKey:         "Gazetted",
		BusinessKeyCol:  "ruid",
		BusinessKeyName: "RUID",
		IDLabel:         "P.F No.",
		AppNoPrefix:     "ECR-G-",
		UploadFields:    []string{"photo", "sign", "hindiName", "hindiDesig"},
		New:             func() Record { return &GazettedEmployee{} },
		List: func(tx *gorm.DB) ([]Record, error) {
			var rows []GazettedEmployee
			if err := tx.Find(&rows).Error; err != nil {
				return nil, err
			}
			out := make([]Record, len(rows))
			for i := range rows {
				out[i] = &rows[i]
			}
			return out, nil
		},
	},
	{
		Key:             "non-gazetted",
		Label:           "Non-Gazetted",
		StatKey:         "NonGazetted",
		BusinessKeyCol:  "emp_no",
		BusinessKeyName: "Employee number",
		IDLabel:         "Emp No.",
		AppNoPrefix:     "ECR-NG-",
		UploadFields:    []string{"photo", "sign"},
		New:             func() Record { return &NonGazettedEmployee{} },
		List: func(tx *gorm.DB) ([]Record, error) {
			var rows []NonGazettedEmployee
			if err := tx.Find(&rows).Error; err != nil {
				return nil, err
			}
			out := make([]Record, len(rows))
			for i := range rows {
				out[i] = &rows[i]
			}
			return out, nil
		},
	},
}

// VariantByKey resolves a route segment to its variant descriptor.
func VariantByKey(key string) (*Variant, bool) {
	for i := range Variants {
		if Variants[i].Key == key {
			return &Variants[i], true
		}
	}
	return nil, false
}
