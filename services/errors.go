package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"icard-api/models"
)

// ErrNotFound is returned when no record matches the requested identifier.
var ErrNotFound = errors.New("application not found")

// ErrMissingReason is returned when a rejection arrives without a reason.
var ErrMissingReason = errors.New("rejection reason is required")

// ValidationError carries one message per failing field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// InvalidDateError is returned when a date of birth cannot be parsed by any
// of the accepted formats.
type InvalidDateError struct {
	Input string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date of birth: %q", e.Input)
}

// DuplicateKeyError names the unique field that collided.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// asDuplicateKey maps a store-level unique index violation onto the field
// that collided. MySQL reports error 1062 with the index name in the message;
// the message fallback covers drivers that surface plain errors.
func asDuplicateKey(err error, v *models.Variant) (*DuplicateKeyError, bool) {
	if err == nil {
		return nil, false
	}

	var myErr *mysql.MySQLError
	msg := err.Error()
	if errors.As(err, &myErr) {
		if myErr.Number != 1062 {
			return nil, false
		}
		msg = myErr.Message
	} else if !strings.Contains(msg, "Duplicate entry") {
		return nil, false
	}
	if strings.Contains(msg, v.BusinessKeyCol) {
		return &DuplicateKeyError{Field: v.BusinessKeyName}, true
	}
	return &DuplicateKeyError{Field: "Application number"}, true
}
