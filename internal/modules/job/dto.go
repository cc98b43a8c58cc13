package job

type CreateJobRequest struct {
	JobID        string   `json:"jobid"`
	Date         string   `json:"jdate"`
	Location     string   `json:"loc"`
	CustomerName string   `json:"customer_name"`
	POC          string   `json:"poc"`
	Phone        string   `json:"phone"`
	City         string   `json:"city"`
	GSTIN        string   `json:"gstin"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	SerialNo     string   `json:"serial_no"`
	CallStatus   string   `json:"call_status"`
	PurchaseDate string   `json:"purchase_date"`
	PurchaseMode string   `json:"purchase_mode"`
	InvoiceNo    string   `json:"invoice_no"`
	Description  string   `json:"description"`
	Engineers    []string `json:"engineers"`
}

// UpdateJobRequest carries the full editable identity form, matching the
// edit screen: descriptive and machine fields plus the engineer list.
type UpdateJobRequest struct {
	Date         string   `json:"jdate"`
	Location     string   `json:"loc"`
	CustomerName string   `json:"customer_name"`
	POC          string   `json:"poc"`
	Phone        string   `json:"phone"`
	City         string   `json:"city"`
	GSTIN        string   `json:"gstin"`
	Brand        string   `json:"brand"`
	Model        string   `json:"model"`
	SerialNo     string   `json:"serial_no"`
	CallStatus   string   `json:"call_status"`
	Description  string   `json:"description"`
	Engineers    []string `json:"engineers"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateWorkLogRequest updates only the fields that are present; nil pointers
// leave the stored value untouched.
type UpdateWorkLogRequest struct {
	Notes    *string `json:"notes"`
	Spares   *string `json:"spares"`
	Charges  *string `json:"charges"`
	PhotoURL *string `json:"photo_url"`
}

type AddEngineerRequest struct {
	Email string `json:"email" binding:"required"`
}

type SetEngineerRequest struct {
	Email string `json:"email" binding:"required"`
}

// CloseCallRequest is the wire form of the two-phase claim dialogue:
// claim_decision is "yes" or "no" (anything else is undecided and rejected).
type CloseCallRequest struct {
	ClaimDecision string `json:"claim_decision"`
	Principal     string `json:"principal"`
	Details       string `json:"details"`
	InvoiceNo     string `json:"invoice_no"`
}

type PublicStatusResponse struct {
	JobID       string `json:"jobid"`
	Date        string `json:"jdate,omitempty"`
	Status      string `json:"status"`
	CompletedOn string `json:"completed_on,omitempty"`
	ClosedAt    string `json:"closed_at,omitempty"`
}
