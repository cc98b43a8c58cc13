package report

import (
	"context"

	"jobtrack/internal/domain"
)

// JobSource supplies the raw collection the engine filters. The engine never
// mutates jobs.
type JobSource interface {
	ListAll(ctx context.Context) ([]domain.Job, error)
}

type CustomerSource interface {
	ListAll(ctx context.Context) ([]domain.Customer, error)
}

// Directory resolves an engineer id to a display name for presentation.
// Names are never persisted on jobs.
type Directory interface {
	ResolveDisplayName(ctx context.Context, email string) string
}
