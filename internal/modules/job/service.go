package job

import (
	"context"
	"errors"
	"time"

	"jobtrack/internal/domain"
	"jobtrack/internal/pkg/access"
	"jobtrack/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	jobs      JobRepository
	customers CustomerDirectory
	notifier  ChangeNotifier
	required  []RequiredField
}

func NewService(jobs JobRepository, customers CustomerDirectory, notifier ChangeNotifier, required []RequiredField) *Service {
	if required == nil {
		required = DefaultRequiredFields()
	}
	return &Service{
		jobs:      jobs,
		customers: customers,
		notifier:  notifier,
		required:  required,
	}
}

func (s *Service) notify() {
	if s.notifier != nil {
		s.notifier.JobsChanged()
	}
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// getForActor loads and normalizes a job, enforcing the engineer view scope:
// engineers only ever see jobs they are assigned to.
func (s *Service) getForActor(ctx context.Context, sess access.Session, jobID string) (*domain.Job, error) {
	raw, err := s.jobs.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	j := Normalize(*raw)
	if sess.Role == domain.RoleEngineer && !j.AssignedTo(sess.Email) {
		return nil, ErrForbidden
	}
	return &j, nil
}

func (s *Service) Create(ctx context.Context, sess access.Session, req CreateJobRequest) (*domain.Job, error) {
	if !access.Can(sess, access.ActionCreateJob) {
		return nil, ErrForbidden
	}

	if missing := MissingRequired(req.fieldValues(), s.required); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	loc := domain.ServiceLocation(req.Location)
	if loc != domain.LocationEnterprise && loc != domain.LocationCustomer {
		return nil, ErrValidation
	}

	engineers := filterEngineers(req.Engineers)
	if len(engineers) > domain.MaxEngineers {
		return nil, ErrEngineerLimit
	}

	j := Normalize(domain.Job{
		JobID:        req.JobID,
		Date:         req.Date,
		Location:     loc,
		CustomerName: req.CustomerName,
		POC:          req.POC,
		Phone:        req.Phone,
		City:         req.City,
		GSTIN:        req.GSTIN,
		Brand:        req.Brand,
		Model:        req.Model,
		SerialNo:     req.SerialNo,
		CallStatus:   domain.CallStatus(req.CallStatus),
		PurchaseDate: req.PurchaseDate,
		PurchaseMode: req.PurchaseMode,
		InvoiceNo:    req.InvoiceNo,
		Description:  req.Description,
		Engineers:    engineers,
	})
	j.Status = domain.StatusNotInspected
	j.CreatedAt = time.Now()
	j.UpdatedAt = j.CreatedAt

	if err := s.jobs.Create(ctx, &j); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateJobID
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateJobID
		}
		return nil, err
	}

	// Repeat customers are recognized by name; the contact fields are kept
	// fresh for pre-filling the next intake. Best effort.
	_ = s.customers.UpsertByName(ctx, &domain.Customer{
		Name:  req.CustomerName,
		Phone: req.Phone,
		City:  req.City,
		GSTIN: req.GSTIN,
		POC:   req.POC,
	})

	s.notify()
	return &j, nil
}

func (s *Service) Get(ctx context.Context, sess access.Session, jobID string) (*domain.Job, error) {
	if !access.Can(sess, access.ActionViewAssignedJobs) {
		return nil, ErrForbidden
	}
	return s.getForActor(ctx, sess, jobID)
}

// List returns every job for coordinators and owners, and only assigned jobs
// for engineers.
func (s *Service) List(ctx context.Context, sess access.Session) ([]domain.Job, error) {
	if sess.Role == domain.RoleEngineer {
		if !access.Can(sess, access.ActionViewAssignedJobs) {
			return nil, ErrForbidden
		}
		jobs, err := s.jobs.ListByEngineer(ctx, sess.Email)
		if err != nil {
			return nil, err
		}
		return NormalizeAll(jobs), nil
	}

	if !access.Can(sess, access.ActionViewAllJobs) {
		return nil, ErrForbidden
	}
	jobs, err := s.jobs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return NormalizeAll(jobs), nil
}

// UpdateStatus moves a job among the four statuses. Movement is unordered on
// purpose: any editing role may set any of the four values directly. Entering
// Completed stamps CompletedOn if unset; leaving Completed clears it.
func (s *Service) UpdateStatus(ctx context.Context, sess access.Session, jobID, newStatus string) (*domain.Job, error) {
	if !access.Can(sess, access.ActionUpdateStatus) {
		return nil, ErrForbidden
	}

	status, ok := domain.ParseJobStatus(newStatus)
	if !ok {
		return nil, ErrValidation
	}

	j, err := s.getForActor(ctx, sess, jobID)
	if err != nil {
		return nil, err
	}
	if j.Closed() {
		return nil, ErrJobClosed
	}

	fields := map[string]any{"status": string(status)}
	if status == domain.StatusCompleted && j.CompletedOn == nil {
		fields["completed_on"] = time.Now()
	}
	if status != domain.StatusCompleted && j.CompletedOn != nil {
		fields["completed_on"] = nil
	}

	if err := s.jobs.Update(ctx, jobID, fields); err != nil {
		return nil, mapRepoErr(err)
	}

	s.notify()
	return s.getForActor(ctx, sess, jobID)
}

// UpdateDetails edits the customer and machine identity fields plus the
// engineer assignment. Coordinators and owners only; never after closure.
func (s *Service) UpdateDetails(ctx context.Context, sess access.Session, jobID string, req UpdateJobRequest) (*domain.Job, error) {
	if !access.Can(sess, access.ActionEditJobDetails) {
		return nil, ErrForbidden
	}

	j, err := s.getForActor(ctx, sess, jobID)
	if err != nil {
		return nil, err
	}
	if j.Closed() {
		return nil, ErrJobClosed
	}

	if missing := MissingRequired(req.fieldValues(jobID), s.required); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	loc := domain.ServiceLocation(req.Location)
	if loc != domain.LocationEnterprise && loc != domain.LocationCustomer {
		return nil, ErrValidation
	}

	engineers := filterEngineers(req.Engineers)
	if len(engineers) > domain.MaxEngineers {
		return nil, ErrEngineerLimit
	}

	fields, err := engineersUpdate(engineers)
	if err != nil {
		return nil, err
	}
	fields["jdate"] = req.Date
	fields["loc"] = string(loc)
	fields["customer_name"] = req.CustomerName
	fields["poc"] = req.POC
	fields["phone"] = req.Phone
	fields["city"] = req.City
	fields["gstin"] = emptyToNil(req.GSTIN)
	fields["brand"] = req.Brand
	fields["model"] = req.Model
	fields["serial_no"] = emptyToNil(req.SerialNo)
	fields["call_status"] = emptyToNil(req.CallStatus)
	fields["description"] = emptyToNil(req.Description)

	if err := s.jobs.Update(ctx, jobID, fields); err != nil {
		return nil, mapRepoErr(err)
	}

	_ = s.customers.UpsertByName(ctx, &domain.Customer{
		Name:  req.CustomerName,
		Phone: req.Phone,
		City:  req.City,
		GSTIN: req.GSTIN,
		POC:   req.POC,
	})

	s.notify()
	return s.getForActor(ctx, sess, jobID)
}

// UpdateWorkLog edits remarks, spares, charges and the photo reference.
// Engineers may edit only their assigned, not-yet-closed jobs; coordinators
// and owners keep an exception channel after closure, with an audit stamp.
func (s *Service) UpdateWorkLog(ctx context.Context, sess access.Session, jobID string, req UpdateWorkLogRequest) (*domain.Job, error) {
	if !access.Can(sess, access.ActionEditWorkLog) {
		return nil, ErrForbidden
	}

	j, err := s.getForActor(ctx, sess, jobID)
	if err != nil {
		return nil, err
	}
	if j.Closed() && sess.Role == domain.RoleEngineer {
		return nil, ErrJobClosed
	}

	fields := map[string]any{}
	if req.Notes != nil {
		fields["notes"] = emptyToNil(*req.Notes)
	}
	if req.Spares != nil {
		fields["spares"] = emptyToNil(*req.Spares)
	}
	if req.Charges != nil {
		fields["charges"] = emptyToNil(*req.Charges)
	}
	if req.PhotoURL != nil {
		fields["photo_url"] = emptyToNil(*req.PhotoURL)
	}
	if len(fields) == 0 {
		return j, nil
	}
	fields["last_edited_by"] = sess.Email
	fields["last_edited_at"] = time.Now()

	if err := s.jobs.Update(ctx, jobID, fields); err != nil {
		return nil, mapRepoErr(err)
	}

	s.notify()
	return s.getForActor(ctx, sess, jobID)
}

func (s *Service) AddEngineer(ctx context.Context, sess access.Session, jobID, email string) (*domain.Job, error) {
	return s.editEngineers(ctx, sess, jobID, func(engineers []string) ([]string, error) {
		return addEngineer(engineers, email)
	})
}

func (s *Service) RemoveEngineer(ctx context.Context, sess access.Session, jobID string, index int) (*domain.Job, error) {
	return s.editEngineers(ctx, sess, jobID, func(engineers []string) ([]string, error) {
		return removeEngineer(engineers, index)
	})
}

func (s *Service) SetEngineer(ctx context.Context, sess access.Session, jobID string, index int, email string) (*domain.Job, error) {
	return s.editEngineers(ctx, sess, jobID, func(engineers []string) ([]string, error) {
		return setEngineer(engineers, index, email)
	})
}

func (s *Service) editEngineers(ctx context.Context, sess access.Session, jobID string, edit func([]string) ([]string, error)) (*domain.Job, error) {
	if !access.Can(sess, access.ActionEditJobDetails) {
		return nil, ErrForbidden
	}

	j, err := s.getForActor(ctx, sess, jobID)
	if err != nil {
		return nil, err
	}
	if j.Closed() {
		return nil, ErrJobClosed
	}

	engineers, err := edit(j.Engineers)
	if err != nil {
		return nil, err
	}

	fields, err := engineersUpdate(engineers)
	if err != nil {
		return nil, err
	}
	if err := s.jobs.Update(ctx, jobID, fields); err != nil {
		return nil, mapRepoErr(err)
	}

	s.notify()
	return s.getForActor(ctx, sess, jobID)
}

// CloseCall is the terminal action. It is only reachable from Completed and
// is the single mutation that sets ClosedAt. The claim dialogue is confirmed
// first; only then is one atomic update applied, so a rejected confirmation
// never leaves a partial write.
func (s *Service) CloseCall(ctx context.Context, sess access.Session, jobID string, req CloseCallRequest) (*domain.Job, error) {
	if !access.Can(sess, access.ActionCloseCall) {
		return nil, ErrForbidden
	}

	draft := draftFromRequest(req)
	claim, err := draft.Confirm()
	if err != nil {
		return nil, err
	}

	j, err := s.getForActor(ctx, sess, jobID)
	if err != nil {
		return nil, err
	}
	if j.Closed() {
		return nil, ErrJobClosed
	}
	if j.Status != domain.StatusCompleted {
		return nil, ErrNotCompleted
	}

	now := time.Now()
	fields := map[string]any{
		"status":    string(domain.StatusCompleted),
		"closed_at": now,
	}
	if j.CompletedOn == nil {
		fields["completed_on"] = now
	}
	if claim != nil {
		fields["claim_principal"] = claim.Principal
		fields["claim_details"] = claim.Details
		fields["claim_invoice_no"] = emptyToNil(claim.InvoiceNo)
	} else if draft.InvoiceNo != "" {
		// No claim, but an invoice number was still supplied at closure.
		fields["invoice_no"] = draft.InvoiceNo
	}

	if err := s.jobs.Update(ctx, jobID, fields); err != nil {
		return nil, mapRepoErr(err)
	}

	s.notify()
	return s.getForActor(ctx, sess, jobID)
}

// PublicStatus is the unauthenticated customer-facing lookup: status and key
// dates only.
func (s *Service) PublicStatus(ctx context.Context, jobID string) (*PublicStatusResponse, error) {
	raw, err := s.jobs.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	j := Normalize(*raw)

	resp := &PublicStatusResponse{
		JobID:  j.JobID,
		Date:   j.Date,
		Status: string(j.Status),
	}
	if j.CompletedOn != nil {
		resp.CompletedOn = j.CompletedOn.Format("2006-01-02")
	}
	if j.ClosedAt != nil {
		resp.ClosedAt = j.ClosedAt.Format("2006-01-02")
	}
	return resp, nil
}

func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
