package domain

import "time"

type JobStatus string

const (
	StatusNotInspected    JobStatus = "Not Inspected"
	StatusApprovalPending JobStatus = "Approval Pending"
	StatusInProgress      JobStatus = "In Progress"
	StatusCompleted       JobStatus = "Completed"
)

// ParseJobStatus maps a raw string onto one of the four job statuses.
// "Closed" is not a status: it is derived from Completed + a set ClosedAt.
func ParseJobStatus(s string) (JobStatus, bool) {
	switch JobStatus(s) {
	case StatusNotInspected, StatusApprovalPending, StatusInProgress, StatusCompleted:
		return JobStatus(s), true
	}
	return "", false
}

func (s JobStatus) Valid() bool {
	_, ok := ParseJobStatus(string(s))
	return ok
}

type ServiceLocation string

const (
	LocationEnterprise ServiceLocation = "SE" // service at company premises
	LocationCustomer   ServiceLocation = "CL" // service at customer location
)

type CallStatus string

const (
	CallInsideWarranty  CallStatus = "Inside Warranty"
	CallOutsideWarranty CallStatus = "Outside Warranty"
	CallCommissioning   CallStatus = "Commissioning/Installation Request"
)

// Claim is the warranty/insurance reimbursement record captured at closure.
type Claim struct {
	Principal string `json:"principal"`
	Details   string `json:"details"`
	InvoiceNo string `json:"invoice_no,omitempty"`
}

// MaxEngineers bounds the engineer assignment list on a job.
const MaxEngineers = 3

// Job is one service-request record tracked from intake to financial closure.
// JobID is the caller-assigned identifier shown to customers, distinct from
// the storage key ID.
type Job struct {
	ID    int64  `json:"-"`
	JobID string `json:"jobid"`
	Date  string `json:"jdate"` // service date, YYYY-MM-DD

	Location     ServiceLocation `json:"loc"`
	CustomerName string          `json:"customer_name"`
	POC          string          `json:"poc"`
	Phone        string          `json:"phone"`
	City         string          `json:"city"`
	GSTIN        string          `json:"gstin,omitempty"`

	Brand        string     `json:"brand"`
	Model        string     `json:"model"`
	SerialNo     string     `json:"serial_no,omitempty"`
	CallStatus   CallStatus `json:"call_status,omitempty"`
	PurchaseDate string     `json:"purchase_date,omitempty"`
	PurchaseMode string     `json:"purchase_mode,omitempty"`
	InvoiceNo    string     `json:"invoice_no,omitempty"`

	Description string `json:"description,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`

	// Engineer is the legacy single-assignment field. Records are read with
	// it, normalized into Engineers, and it is never written back.
	Engineer  string   `json:"engineer,omitempty"`
	Engineers []string `json:"engineers"`

	Notes   string `json:"notes,omitempty"`
	Spares  string `json:"spares,omitempty"`
	Charges string `json:"charges,omitempty"`

	Status      JobStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedOn *time.Time `json:"completed_on,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"` // set once, never cleared
	Claim       *Claim     `json:"claim,omitempty"`

	LastEditedBy string     `json:"last_edited_by,omitempty"`
	LastEditedAt *time.Time `json:"last_edited_at,omitempty"`
}

// Closed reports the derived terminal condition: a completed job whose
// financials have been closed out.
func (j *Job) Closed() bool {
	return j.Status == StatusCompleted && j.ClosedAt != nil
}

// AssignedTo reports whether the engineer identified by email is on the job.
func (j *Job) AssignedTo(email string) bool {
	for _, e := range j.Engineers {
		if e == email {
			return true
		}
	}
	return j.Engineer == email
}
