package report

import (
	"context"

	"jobtrack/internal/domain"
	jobmod "jobtrack/internal/modules/job"
	"jobtrack/internal/pkg/access"
)

type Service struct {
	jobs      JobSource
	customers CustomerSource
	directory Directory
}

func NewService(jobs JobSource, customers CustomerSource, directory Directory) *Service {
	return &Service{
		jobs:      jobs,
		customers: customers,
		directory: directory,
	}
}

// load pulls the collection and scopes it: engineers are always pinned to
// their own assignments regardless of the requested filter.
func (s *Service) load(ctx context.Context, sess access.Session, f *Filter) ([]domain.Job, error) {
	if sess.Role == domain.RoleEngineer {
		if !access.Can(sess, access.ActionViewAssignedJobs) {
			return nil, ErrForbidden
		}
		f.EngineerID = sess.Email
	} else if !access.Can(sess, access.ActionViewReports) {
		return nil, ErrForbidden
	}

	jobs, err := s.jobs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return jobmod.NormalizeAll(jobs), nil
}

func (s *Service) Query(ctx context.Context, sess access.Session, f Filter, key SortKey, page int) (*PageResult, error) {
	jobs, err := s.load(ctx, sess, &f)
	if err != nil {
		return nil, err
	}

	filtered := Apply(jobs, f)
	sorted := SortJobs(filtered, key)
	items, totalPages := Paginate(sorted, page)
	if page < 1 {
		page = 1
	}

	return &PageResult{
		Jobs:       items,
		Page:       page,
		TotalPages: totalPages,
		TotalCount: len(filtered),
	}, nil
}

func (s *Service) Summary(ctx context.Context, sess access.Session) (map[StatusBucket]int, error) {
	var f Filter
	jobs, err := s.load(ctx, sess, &f)
	if err != nil {
		return nil, err
	}
	return CountByBucket(Apply(jobs, f)), nil
}

func (s *Service) ExportJobs(ctx context.Context, sess access.Session, f Filter, key SortKey) (string, error) {
	if !access.Can(sess, access.ActionViewReports) {
		return "", ErrForbidden
	}

	jobs, err := s.load(ctx, sess, &f)
	if err != nil {
		return "", err
	}

	sorted := SortJobs(Apply(jobs, f), key)
	return ExportJobsCSV(sorted, func(email string) string {
		return s.directory.ResolveDisplayName(ctx, email)
	}), nil
}

func (s *Service) ExportCustomers(ctx context.Context, sess access.Session) (string, error) {
	if !access.Can(sess, access.ActionViewCustomers) {
		return "", ErrForbidden
	}

	customers, err := s.customers.ListAll(ctx)
	if err != nil {
		return "", err
	}
	return ExportCustomersCSV(customers), nil
}
