package admin

import "errors"

var (
	ErrValidation     = errors.New("validation failed")
	ErrForbidden      = errors.New("forbidden")
	ErrDuplicateEmail = errors.New("email already provisioned")
)
