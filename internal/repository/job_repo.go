package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"jobtrack/internal/domain"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

type jobModel struct {
	ID           int64   `gorm:"column:id;primaryKey"`
	JobID        string  `gorm:"column:jobid;uniqueIndex"`
	Date         string  `gorm:"column:jdate"`
	Location     string  `gorm:"column:loc"`
	CustomerName string  `gorm:"column:customer_name"`
	POC          string  `gorm:"column:poc"`
	Phone        string  `gorm:"column:phone"`
	City         string  `gorm:"column:city"`
	GSTIN        *string `gorm:"column:gstin"`
	Brand        string  `gorm:"column:brand"`
	Model        string  `gorm:"column:model"`
	SerialNo     *string `gorm:"column:serial_no"`
	CallStatus   *string `gorm:"column:call_status"`
	PurchaseDate *string `gorm:"column:purchase_date"`
	PurchaseMode *string `gorm:"column:purchase_mode"`
	InvoiceNo    *string `gorm:"column:invoice_no"`
	Description  *string `gorm:"column:description"`
	PhotoURL     *string `gorm:"column:photo_url"`

	// Engineer is the legacy scalar assignment column; only ever read.
	Engineer  *string `gorm:"column:engineer"`
	Engineers *string `gorm:"column:engineers"` // JSON array of emails

	Notes   *string `gorm:"column:notes"`
	Spares  *string `gorm:"column:spares"`
	Charges *string `gorm:"column:charges"`

	Status      string     `gorm:"column:status"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CompletedOn *time.Time `gorm:"column:completed_on"`
	ClosedAt    *time.Time `gorm:"column:closed_at"`

	ClaimPrincipal *string `gorm:"column:claim_principal"`
	ClaimDetails   *string `gorm:"column:claim_details"`
	ClaimInvoiceNo *string `gorm:"column:claim_invoice_no"`

	LastEditedBy *string    `gorm:"column:last_edited_by"`
	LastEditedAt *time.Time `gorm:"column:last_edited_at"`
}

func (jobModel) TableName() string { return "jobs" }

func deref(s *string) string {
	if s != nil {
		return *s
	}
	return ""
}

func toDomainJob(m jobModel) *domain.Job {
	j := &domain.Job{
		ID:           m.ID,
		JobID:        m.JobID,
		Date:         m.Date,
		Location:     domain.ServiceLocation(m.Location),
		CustomerName: m.CustomerName,
		POC:          m.POC,
		Phone:        m.Phone,
		City:         m.City,
		GSTIN:        deref(m.GSTIN),
		Brand:        m.Brand,
		Model:        m.Model,
		SerialNo:     deref(m.SerialNo),
		CallStatus:   domain.CallStatus(deref(m.CallStatus)),
		PurchaseDate: deref(m.PurchaseDate),
		PurchaseMode: deref(m.PurchaseMode),
		InvoiceNo:    deref(m.InvoiceNo),
		Description:  deref(m.Description),
		PhotoURL:     deref(m.PhotoURL),
		Engineer:     deref(m.Engineer),
		Notes:        deref(m.Notes),
		Spares:       deref(m.Spares),
		Charges:      deref(m.Charges),
		Status:       domain.JobStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		CompletedOn:  m.CompletedOn,
		ClosedAt:     m.ClosedAt,
		LastEditedBy: deref(m.LastEditedBy),
		LastEditedAt: m.LastEditedAt,
	}

	if m.Engineers != nil && *m.Engineers != "" {
		var engineers []string
		if err := json.Unmarshal([]byte(*m.Engineers), &engineers); err == nil {
			j.Engineers = engineers
		}
	}

	if m.ClaimPrincipal != nil {
		j.Claim = &domain.Claim{
			Principal: *m.ClaimPrincipal,
			Details:   deref(m.ClaimDetails),
			InvoiceNo: deref(m.ClaimInvoiceNo),
		}
	}

	return j
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toJobModel(j *domain.Job) (jobModel, error) {
	engineersJSON, err := json.Marshal(j.Engineers)
	if err != nil {
		return jobModel{}, err
	}
	enc := string(engineersJSON)

	m := jobModel{
		ID:           j.ID,
		JobID:        j.JobID,
		Date:         j.Date,
		Location:     string(j.Location),
		CustomerName: j.CustomerName,
		POC:          j.POC,
		Phone:        j.Phone,
		City:         j.City,
		GSTIN:        optional(j.GSTIN),
		Brand:        j.Brand,
		Model:        j.Model,
		SerialNo:     optional(j.SerialNo),
		CallStatus:   optional(string(j.CallStatus)),
		PurchaseDate: optional(j.PurchaseDate),
		PurchaseMode: optional(j.PurchaseMode),
		InvoiceNo:    optional(j.InvoiceNo),
		Description:  optional(j.Description),
		PhotoURL:     optional(j.PhotoURL),
		Engineers:    &enc,
		Notes:        optional(j.Notes),
		Spares:       optional(j.Spares),
		Charges:      optional(j.Charges),
		Status:       string(j.Status),
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
		CompletedOn:  j.CompletedOn,
		ClosedAt:     j.ClosedAt,
		LastEditedBy: optional(j.LastEditedBy),
		LastEditedAt: j.LastEditedAt,
	}

	if j.Claim != nil {
		m.ClaimPrincipal = &j.Claim.Principal
		m.ClaimDetails = &j.Claim.Details
		m.ClaimInvoiceNo = optional(j.Claim.InvoiceNo)
	}

	return m, nil
}

func (r *JobRepository) Create(ctx context.Context, j *domain.Job) error {
	m, err := toJobModel(j)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	j.ID = m.ID
	return nil
}

func (r *JobRepository) GetByJobID(ctx context.Context, jobID string) (*domain.Job, error) {
	var m jobModel
	err := r.db.WithContext(ctx).Where("jobid = ?", jobID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomainJob(m), nil
}

// Update applies a partial field-set update: only the named columns change,
// the rest of the record is untouched (last-write-wins per field set).
func (r *JobRepository) Update(ctx context.Context, jobID string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).
		Model(&jobModel{}).
		Where("jobid = ?", jobID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *JobRepository) ListAll(ctx context.Context) ([]domain.Job, error) {
	var models []jobModel
	if err := r.db.WithContext(ctx).Order("jobid").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Job, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainJob(m))
	}
	return out, nil
}

// ListByEngineer returns jobs assigned to the engineer, matching both the
// engineers list and the legacy scalar column.
func (r *JobRepository) ListByEngineer(ctx context.Context, email string) ([]domain.Job, error) {
	quoted, err := json.Marshal(email)
	if err != nil {
		return nil, err
	}

	var models []jobModel
	if err := r.db.WithContext(ctx).
		Where("engineers LIKE ? OR engineer = ?", "%"+string(quoted)+"%", email).
		Order("jobid").
		Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Job, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainJob(m))
	}
	return out, nil
}
