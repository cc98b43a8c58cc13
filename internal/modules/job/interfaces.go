package job

import (
	"context"

	"jobtrack/internal/domain"
)

// JobRepository is the persistence collaborator. Update has partial-field
// semantics: only the named columns are written.
type JobRepository interface {
	Create(ctx context.Context, j *domain.Job) error
	GetByJobID(ctx context.Context, jobID string) (*domain.Job, error)
	Update(ctx context.Context, jobID string, fields map[string]any) error
	ListAll(ctx context.Context) ([]domain.Job, error)
	ListByEngineer(ctx context.Context, email string) ([]domain.Job, error)
}

// CustomerDirectory receives the lazy customer upsert on job creation.
type CustomerDirectory interface {
	UpsertByName(ctx context.Context, c *domain.Customer) error
}

// ChangeNotifier is told after every confirmed write so live subscribers can
// be pushed a fresh collection snapshot.
type ChangeNotifier interface {
	JobsChanged()
}
