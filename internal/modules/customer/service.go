package customer

import (
	"context"
	"errors"
	"sort"
	"strings"

	"jobtrack/internal/domain"
	jobmod "jobtrack/internal/modules/job"
	"jobtrack/internal/pkg/access"
	"jobtrack/internal/repository"
)

type Service struct {
	customers CustomerStore
	jobs      JobSource
}

func NewService(customers CustomerStore, jobs JobSource) *Service {
	return &Service{customers: customers, jobs: jobs}
}

func (s *Service) List(ctx context.Context, sess access.Session) ([]domain.Customer, error) {
	if !access.Can(sess, access.ActionViewCustomers) {
		return nil, ErrForbidden
	}
	return s.customers.ListAll(ctx)
}

// Get returns the directory record for one customer, used to prefill the
// intake form on a repeat visit.
func (s *Service) Get(ctx context.Context, sess access.Session, name string) (*domain.Customer, error) {
	if !access.Can(sess, access.ActionViewCustomers) {
		return nil, ErrForbidden
	}

	c, err := s.customers.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// History lists every job ever raised for the customer, newest first. The
// match is by exact name since name is the directory's natural key.
func (s *Service) History(ctx context.Context, sess access.Session, name string) ([]domain.Job, error) {
	if !access.Can(sess, access.ActionViewCustomers) {
		return nil, ErrForbidden
	}

	name = strings.TrimSpace(name)
	jobs, err := s.jobs.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Job, 0)
	for _, j := range jobmod.NormalizeAll(jobs) {
		if strings.EqualFold(strings.TrimSpace(j.CustomerName), name) {
			out = append(out, j)
		}
	}

	sort.SliceStable(out, func(i, k int) bool {
		if out[i].Date != out[k].Date {
			return out[i].Date > out[k].Date
		}
		return out[i].JobID > out[k].JobID
	})
	return out, nil
}
