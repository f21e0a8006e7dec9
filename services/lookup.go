package services

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"icard-api/models"
	"icard-api/utils"
)

// ListFilter narrows the cross-variant application listing.
type ListFilter struct {
	Status    string // Pending / Approved / Rejected, empty for all
	Type      string // variant key, empty for both
	Search    string // case-insensitive match on name, application no, business key
	SortBy    string
	SortOrder string // "asc" or "desc"
}

// Sortable fields exposed to clients, mapped to their columns.
var sortColumns = map[string]string{
	"createdAt":     "create_at",
	"updatedAt":     "update_at",
	"approvedAt":    "approved_at",
	"rejectedAt":    "rejected_at",
	"name":          "name",
	"applicationNo": "application_no",
	"status":        "status",
	"dob":           "dob",
}

// LookupService answers search, fetch and count queries across both
// employee categories.
type LookupService struct {
	db *gorm.DB
}

func NewLookupService(db *gorm.DB) *LookupService {
	return &LookupService{db: db}
}

// List returns matching applications from every requested variant. Each
// variant is sorted independently, then the slices are concatenated in
// variant order.
func (s *LookupService) List(f ListFilter) ([]map[string]interface{}, error) {
	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "create_at"
	}
	direction := "DESC"
	if f.SortOrder == "asc" {
		direction = "ASC"
	}

	out := make([]map[string]interface{}, 0)
	for i := range models.Variants {
		v := &models.Variants[i]
		if f.Type != "" && f.Type != v.Key {
			continue
		}

		tx := s.db.Order(column + " " + direction)
		if f.Status != "" {
			tx = tx.Where("status = ?", f.Status)
		}
		if f.Search != "" {
			pattern := "%" + f.Search + "%"
			tx = tx.Where("(name LIKE ? OR application_no LIKE ? OR "+v.BusinessKeyCol+" LIKE ?)",
				pattern, pattern, pattern)
		}

		rows, err := v.List(tx)
		if err != nil {
			return nil, err
		}
		for _, rec := range rows {
			out = append(out, Annotate(rec, v))
		}
	}

	return out, nil
}

// GetByID tries the gazetted collection first, then non-gazetted, and
// returns the first match with its variant.
func (s *LookupService) GetByID(id string) (models.Record, *models.Variant, error) {
	return s.firstAcrossVariants("id = ?", id)
}

// GetByApplicationNo is the same two-step lookup keyed by application number.
func (s *LookupService) GetByApplicationNo(appNo string) (models.Record, *models.Variant, error) {
	return s.firstAcrossVariants("application_no = ?", appNo)
}

func (s *LookupService) firstAcrossVariants(cond string, value string) (models.Record, *models.Variant, error) {
	for i := range models.Variants {
		v := &models.Variants[i]
		rec := v.New()
		err := s.db.First(rec, cond, value).Error
		if err == nil {
			return rec, v, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
	}
	return nil, nil, ErrNotFound
}

// StatusCheck is the public self-service lookup: the supplied key must match
// either the internal id or the variant's business key, and the date of
// birth must match exactly. A miss is ErrNotFound, never a failure. This is
// the only authentication on the endpoint, as designed.
func (s *LookupService) StatusCheck(v *models.Variant, key, dobInput string) (models.Record, error) {
	dob, err := utils.ParseDateInput(dobInput)
	if err != nil {
		return nil, ErrNotFound
	}

	tx := s.db.Where(v.BusinessKeyCol+" = ?", key)
	if _, parseErr := uuid.Parse(key); parseErr == nil {
		tx = s.db.Where("("+v.BusinessKeyCol+" = ? OR id = ?)", key, key)
	}

	rec := v.New()
	err = tx.Where("dob = ?", dob.Format("2006-01-02")).First(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// ByUser returns a submitter's applications grouped per variant key.
func (s *LookupService) ByUser(userID string) (map[string][]map[string]interface{}, error) {
	out := make(map[string][]map[string]interface{})
	for i := range models.Variants {
		v := &models.Variants[i]
		rows, err := v.List(s.db.Where("user_id = ?", userID).Order("create_at DESC"))
		if err != nil {
			return nil, err
		}
		annotated := make([]map[string]interface{}, 0, len(rows))
		for _, rec := range rows {
			annotated = append(annotated, Annotate(rec, v))
		}
		out[v.Key] = annotated
	}
	return out, nil
}

// Counts returns per-variant totals, the combined pending count and the
// number of applications approved since local start of day.
func (s *LookupService) Counts() (map[string]interface{}, error) {
	out := make(map[string]interface{})
	var pending, approvedToday int64

	for i := range models.Variants {
		v := &models.Variants[i]

		var total int64
		if err := s.db.Model(v.New()).Count(&total).Error; err != nil {
			return nil, err
		}
		out["total"+v.StatKey] = total

		var variantPending int64
		if err := s.db.Model(v.New()).
			Where("status = ?", models.StatusPending).
			Count(&variantPending).Error; err != nil {
			return nil, err
		}
		pending += variantPending

		var variantApproved int64
		if err := s.db.Model(v.New()).
			Where("status = ? AND approved_at >= ?", models.StatusApproved, utils.StartOfToday()).
			Count(&variantApproved).Error; err != nil {
			return nil, err
		}
		approvedToday += variantApproved
	}

	out["pending"] = pending
	out["approvedToday"] = approvedToday
	return out, nil
}

// Annotate flattens a record for JSON responses, adding the display-formatted
// date of birth, transition timestamps and the variant tag. The formatted
// dates are computed at read time, never stored.
func Annotate(rec models.Record, v *models.Variant) map[string]interface{} {
	raw, err := json.Marshal(rec)
	if err != nil {
		return map[string]interface{}{"type": v.Key}
	}

	out := make(map[string]interface{})
	if err := json.Unmarshal(raw, &out); err != nil {
		return map[string]interface{}{"type": v.Key}
	}

	base := rec.Base()
	out["formattedDob"] = utils.FormatDisplayDate(base.Dob)
	out["formattedApprovedAt"] = utils.FormatDisplayDatePtr(base.ApprovedAt)
	out["formattedRejectedAt"] = utils.FormatDisplayDatePtr(base.RejectedAt)
	out["type"] = v.Key
	return out
}
