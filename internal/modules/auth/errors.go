package auth

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotProvisioned     = errors.New("account not provisioned")
	ErrAlreadyRegistered  = errors.New("account already registered")
)
