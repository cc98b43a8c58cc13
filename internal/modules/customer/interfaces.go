package customer

import (
	"context"

	"jobtrack/internal/domain"
)

type CustomerStore interface {
	GetByName(ctx context.Context, name string) (*domain.Customer, error)
	ListAll(ctx context.Context) ([]domain.Customer, error)
}

type JobSource interface {
	ListAll(ctx context.Context) ([]domain.Job, error)
}
