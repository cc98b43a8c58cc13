package report

import (
	"strings"

	"jobtrack/internal/domain"
)

// jobExportHeader is the versioned export column set. Order changes are a
// breaking change for downstream spreadsheets; append instead.
var jobExportHeader = []string{
	"Job ID", "Date", "Customer", "POC", "Phone", "Engineer(s)", "City",
	"Brand", "Model", "Serial No", "Call Status", "Description", "Status",
	"Completed On", "Remarks", "Spares", "Charges",
	"Claim Principal", "Claim Details", "Invoice No", "Closed On",
}

// csvCell quotes every value and doubles embedded quotes so commas and
// newlines inside fields survive; absent values render as "-".
func csvCell(s string) string {
	if s == "" {
		s = "-"
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func csvRow(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = csvCell(c)
	}
	return strings.Join(quoted, ",")
}

// ExportJobsCSV renders the filtered collection as a CSV document. resolve
// maps an engineer email to a display name for presentation only; it may be
// nil, in which case the raw emails are exported.
func ExportJobsCSV(jobs []domain.Job, resolve func(string) string) string {
	var b strings.Builder
	b.WriteString(csvRow(jobExportHeader))
	b.WriteString("\n")

	for i := range jobs {
		j := &jobs[i]

		names := make([]string, 0, len(j.Engineers))
		for _, e := range j.Engineers {
			if resolve != nil {
				names = append(names, resolve(e))
			} else {
				names = append(names, e)
			}
		}

		var completedOn, closedOn string
		if j.CompletedOn != nil {
			completedOn = j.CompletedOn.Format(dateLayout)
		}
		if j.ClosedAt != nil {
			closedOn = j.ClosedAt.Format(dateLayout)
		}

		var claimPrincipal, claimDetails string
		invoiceNo := j.InvoiceNo
		if j.Claim != nil {
			claimPrincipal = j.Claim.Principal
			claimDetails = j.Claim.Details
			if j.Claim.InvoiceNo != "" {
				invoiceNo = j.Claim.InvoiceNo
			}
		}

		b.WriteString(csvRow([]string{
			j.JobID,
			j.Date,
			j.CustomerName,
			j.POC,
			j.Phone,
			strings.Join(names, "; "),
			j.City,
			j.Brand,
			j.Model,
			j.SerialNo,
			string(j.CallStatus),
			j.Description,
			string(j.Status),
			completedOn,
			j.Notes,
			j.Spares,
			j.Charges,
			claimPrincipal,
			claimDetails,
			invoiceNo,
			closedOn,
		}))
		b.WriteString("\n")
	}

	return b.String()
}

var customerExportHeader = []string{"Name", "Phone", "City", "GSTIN", "POC"}

func ExportCustomersCSV(customers []domain.Customer) string {
	var b strings.Builder
	b.WriteString(csvRow(customerExportHeader))
	b.WriteString("\n")

	for i := range customers {
		c := &customers[i]
		b.WriteString(csvRow([]string{c.Name, c.Phone, c.City, c.GSTIN, c.POC}))
		b.WriteString("\n")
	}
	return b.String()
}
