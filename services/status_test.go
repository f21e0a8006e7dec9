package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"icard-api/models"
)

const transitionTestID = "3f1d8c2a-60b4-4f4e-9a57-1c2d3e4f5a6b"

// selectByIDStep scripts a full row so each fetch overwrites every
// transition column, the way a real store read would.
func selectByIDStep(status string, approvedAt, rejectedAt driver.Value, reason string) *queryStep {
	return &queryStep{
		kind:    kindQuery,
		pattern: regexp.MustCompile(`SELECT \* FROM .gazetted_employees. WHERE id = \?`),
		columns: []string{"id", "application_no", "name", "status", "dob",
			"approved_at", "rejected_at", "rejection_reason"},
		rows: [][]driver.Value{
			{transitionTestID, "ECR-G-TEST1", "A B", status,
				time.Date(1990, 5, 1, 0, 0, 0, 0, time.Local),
				approvedAt, rejectedAt, reason},
		},
	}
}

func TestApproveClearsRejectionState(t *testing.T) {
	rejectedAt := time.Date(2024, 1, 2, 10, 0, 0, 0, time.Local)
	approvedAt := time.Now()

	steps := []*queryStep{
		selectByIDStep(models.StatusRejected, nil, rejectedAt, "blurred photo"),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE .gazetted_employees. SET .*status.*WHERE id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
		selectByIDStep(models.StatusApproved, approvedAt, nil, ""),
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	rec, err := NewStatusService(db).Approve(gazettedVariant(t), transitionTestID)
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}

	base := rec.Base()
	if base.Status != models.StatusApproved {
		t.Fatalf("expected Approved, got %q", base.Status)
	}
	if base.ApprovedAt == nil {
		t.Fatal("expected approvedAt to be set")
	}
	if base.RejectedAt != nil {
		t.Fatalf("expected rejectedAt cleared, got %v", base.RejectedAt)
	}
	if base.RejectionReason != "" {
		t.Fatalf("expected rejection reason cleared, got %q", base.RejectionReason)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestRejectWithoutReasonFailsBeforeAnyMutation(t *testing.T) {
	db, state, cleanup := newScriptedGormDB(t, nil)
	defer cleanup()

	_, err := NewStatusService(db).Reject(gazettedVariant(t), transitionTestID, "   ")
	if !errors.Is(err, ErrMissingReason) {
		t.Fatalf("expected ErrMissingReason, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("no store access expected: %v", err)
	}
}

func TestApproveUnknownIDIsNotFound(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile(`SELECT \* FROM .gazetted_employees. WHERE id = \?`),
			columns: []string{"id"},
			rows:    [][]driver.Value{},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewStatusService(db).Approve(gazettedVariant(t), "1f0a9b8c-7d6e-4f5a-8b9c-0d1e2f3a4b5c")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestRejectSetsReasonAndClearsApproval(t *testing.T) {
	approvedAt := time.Date(2024, 1, 2, 10, 0, 0, 0, time.Local)
	rejectedAt := time.Now()

	steps := []*queryStep{
		selectByIDStep(models.StatusApproved, approvedAt, nil, ""),
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE .gazetted_employees. SET .*status.*WHERE id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
		selectByIDStep(models.StatusRejected, nil, rejectedAt, "incomplete details"),
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	rec, err := NewStatusService(db).Reject(gazettedVariant(t), transitionTestID, "incomplete details")
	if err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}

	base := rec.Base()
	if base.Status != models.StatusRejected {
		t.Fatalf("expected Rejected, got %q", base.Status)
	}
	if base.RejectionReason != "incomplete details" {
		t.Fatalf("unexpected reason %q", base.RejectionReason)
	}
	if base.ApprovedAt != nil {
		t.Fatalf("expected approvedAt cleared, got %v", base.ApprovedAt)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}
