package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"icard-api/models"
)

// StatusService applies the three-state lifecycle to a record. Every
// transition is a single conditional UPDATE keyed by id; re-applying a
// transition is allowed from any state and simply refreshes its timestamp.
type StatusService struct {
	db *gorm.DB
}

func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db}
}

// Approve marks the record Approved. Leaving Rejected clears its timestamp
// and reason.
func (s *StatusService) Approve(v *models.Variant, id string) (models.Record, error) {
	now := time.Now()
	return s.apply(v, id, map[string]interface{}{
		"status":           models.StatusApproved,
		"approved_at":      now,
		"rejected_at":      nil,
		"rejection_reason": "",
	})
}

// Reject marks the record Rejected. A non-empty reason is required before
// any mutation happens.
func (s *StatusService) Reject(v *models.Variant, id, reason string) (models.Record, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrMissingReason
	}

	now := time.Now()
	return s.apply(v, id, map[string]interface{}{
		"status":           models.StatusRejected,
		"approved_at":      nil,
		"rejected_at":      now,
		"rejection_reason": strings.TrimSpace(reason),
	})
}

// ResetToPending reverts the record to Pending and clears both transition
// timestamps and the rejection reason.
func (s *StatusService) ResetToPending(v *models.Variant, id string) (models.Record, error) {
	return s.apply(v, id, map[string]interface{}{
		"status":           models.StatusPending,
		"approved_at":      nil,
		"rejected_at":      nil,
		"rejection_reason": "",
	})
}

func (s *StatusService) apply(v *models.Variant, id string, updates map[string]interface{}) (models.Record, error) {
	rec := v.New()
	if err := s.db.First(rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.db.Model(rec).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	// Return the record as stored after the transition.
	if err := s.db.First(rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return rec, nil
}
