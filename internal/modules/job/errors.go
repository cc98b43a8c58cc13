package job

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("job not found")
	ErrDuplicateJobID  = errors.New("job id already exists")
	ErrJobClosed       = errors.New("job is closed")
	ErrNotCompleted    = errors.New("job is not completed")
	ErrEngineerLimit   = errors.New("engineer limit reached")
	ErrClaimUndecided  = errors.New("claim decision not made")
	ErrClaimIncomplete = errors.New("claim principal and details are required")
)

// MissingFieldsError names the required fields absent from a create or edit
// request. It matches ErrValidation under errors.Is.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

func (e *MissingFieldsError) Is(target error) bool {
	return target == ErrValidation
}
