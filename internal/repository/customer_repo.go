package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobtrack/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

type customerModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex"`
	Phone     *string   `gorm:"column:phone"`
	City      *string   `gorm:"column:city"`
	GSTIN     *string   `gorm:"column:gstin"`
	POC       *string   `gorm:"column:poc"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerModel) TableName() string { return "customers" }

func toDomainCustomer(m customerModel) *domain.Customer {
	return &domain.Customer{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     deref(m.Phone),
		City:      deref(m.City),
		GSTIN:     deref(m.GSTIN),
		POC:       deref(m.POC),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// UpsertByName creates the customer on first reference or refreshes the
// denormalized contact fields on a repeat reference. Name is the natural key.
func (r *CustomerRepository) UpsertByName(ctx context.Context, c *domain.Customer) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return errors.New("customer name is empty")
	}

	m := customerModel{
		Name:  name,
		Phone: optional(c.Phone),
		City:  optional(c.City),
		GSTIN: optional(c.GSTIN),
		POC:   optional(c.POC),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"phone", "city", "gstin", "poc", "updated_at"}),
		}).
		Create(&m).Error
}

func (r *CustomerRepository) GetByName(ctx context.Context, name string) (*domain.Customer, error) {
	var m customerModel
	err := r.db.WithContext(ctx).Where("name = ?", strings.TrimSpace(name)).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomainCustomer(m), nil
}

func (r *CustomerRepository) ListAll(ctx context.Context) ([]domain.Customer, error) {
	var models []customerModel
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Customer, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainCustomer(m))
	}
	return out, nil
}
