package domain

import (
	"errors"
	"strings"
	"time"
)

type UserRole string

const (
	RoleOwner       UserRole = "owner"
	RoleCoordinator UserRole = "coordinator"
	RoleEngineer    UserRole = "engineer"
)

var ErrInvalidRole = errors.New("invalid role")

func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(strings.ToLower(strings.TrimSpace(s))) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleCoordinator:
		return RoleCoordinator, nil
	case RoleEngineer:
		return RoleEngineer, nil
	}
	return "", ErrInvalidRole
}

// User is a staff account. Accounts are provisioned by an admin first and
// completed by the person at signup; until then IsRegistered is false and the
// account cannot authenticate.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Name         string    `json:"name,omitempty"`
	IsRegistered bool      `json:"is_registered"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
