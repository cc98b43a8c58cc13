package admin

import (
	"context"
	"strings"

	"jobtrack/internal/domain"
	"jobtrack/internal/pkg/access"
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// AddUser provisions an account that signup later completes. Owners may
// provision any role; coordinators only engineers.
func (s *Service) AddUser(ctx context.Context, sess access.Session, req AddUserRequest) (*UserSummary, error) {
	role, err := domain.ParseUserRole(req.Role)
	if err != nil {
		return nil, ErrValidation
	}
	if !access.CanAddRole(sess, role) {
		return nil, ErrForbidden
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	user := &domain.User{
		Email:        email,
		Role:         role,
		Name:         strings.TrimSpace(req.Name),
		IsRegistered: false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return &UserSummary{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         string(user.Role),
		IsRegistered: user.IsRegistered,
	}, nil
}

// ListEngineers returns the assignable engineer set: provisioned engineers
// who completed signup.
func (s *Service) ListEngineers(ctx context.Context, sess access.Session) ([]UserSummary, error) {
	if !access.Can(sess, access.ActionViewAllJobs) {
		return nil, ErrForbidden
	}

	users, err := s.users.ListByRole(ctx, domain.RoleEngineer, true)
	if err != nil {
		return nil, err
	}

	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, UserSummary{
			ID:           u.ID,
			Email:        u.Email,
			Name:         u.Name,
			Role:         string(u.Role),
			IsRegistered: u.IsRegistered,
		})
	}
	return out, nil
}

// ResolveDisplayName maps an engineer id to the provisioned display name for
// report rendering. Unknown or nameless accounts fall back to the raw id.
func (s *Service) ResolveDisplayName(ctx context.Context, email string) string {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return email
	}
	if user.Name == "" {
		return email
	}
	return user.Name
}
