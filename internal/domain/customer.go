package domain

import "time"

// Customer holds denormalized contact details keyed by name, used to pre-fill
// new jobs for repeat customers. Created lazily the first time a job
// references an unknown customer name; never deleted.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	City      string    `json:"city,omitempty"`
	GSTIN     string    `json:"gstin,omitempty"`
	POC       string    `json:"poc,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
