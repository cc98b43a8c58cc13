package report

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"jobtrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportJobsCSV_RoundTripsThroughAParser(t *testing.T) {
	completedOn := time.Date(2026, 8, 6, 10, 0, 0, 0, time.UTC)
	closedAt := time.Date(2026, 8, 9, 18, 0, 0, 0, time.UTC)

	jobs := []domain.Job{
		{
			JobID:        "JT-01",
			Date:         "2026-08-01",
			CustomerName: `Apex "Cold" Storage, Pvt`,
			POC:          "Mr. Rao",
			Phone:        "+91 98450 11223",
			Engineers:    []string{"ravi@co.local", "meena@co.local"},
			City:         "Bengaluru",
			Brand:        "Voltas",
			Model:        "VC-220",
			Description:  "Line 1\nLine 2",
			Status:       domain.StatusCompleted,
			CompletedOn:  &completedOn,
			ClosedAt:     &closedAt,
			Notes:        "coil cleaned",
			Claim: &domain.Claim{
				Principal: "Voltas India",
				Details:   "warranty swap",
				InvoiceNo: "INV-9",
			},
			InvoiceNo: "INV-ignored",
		},
	}

	out := ExportJobsCSV(jobs, func(email string) string {
		return strings.Split(email, "@")[0]
	})

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, jobExportHeader, records[0])

	row := records[1]
	require.Len(t, row, len(jobExportHeader))
	assert.Equal(t, "JT-01", row[0])
	assert.Equal(t, `Apex "Cold" Storage, Pvt`, row[2])
	assert.Equal(t, "ravi; meena", row[5])
	assert.Equal(t, "Line 1\nLine 2", row[11])
	assert.Equal(t, "Completed", row[12])
	assert.Equal(t, "2026-08-06", row[13])
	// the claim's invoice number wins over the job-level one
	assert.Equal(t, "INV-9", row[19])
	assert.Equal(t, "2026-08-09", row[20])
}

func TestExportJobsCSV_AbsentValuesRenderAsDash(t *testing.T) {
	out := ExportJobsCSV([]domain.Job{{JobID: "JT-02", Status: domain.StatusNotInspected}}, nil)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	row := records[1]

	assert.Equal(t, "JT-02", row[0])
	assert.Equal(t, "-", row[1])  // date
	assert.Equal(t, "-", row[5])  // engineers
	assert.Equal(t, "-", row[13]) // completed on
	assert.Equal(t, "-", row[20]) // closed on
}

func TestExportJobsCSV_NilResolverExportsRawIDs(t *testing.T) {
	out := ExportJobsCSV([]domain.Job{{
		JobID:     "JT-03",
		Engineers: []string{"ravi@co.local"},
		Status:    domain.StatusInProgress,
	}}, nil)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "ravi@co.local", records[1][5])
}

func TestExportCustomersCSV(t *testing.T) {
	out := ExportCustomersCSV([]domain.Customer{
		{Name: "Apex Cold Storage", Phone: "+91 98450 11223", City: "Bengaluru", POC: "Mr. Rao"},
		{Name: "Lakshmi, Textiles"},
	})

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, customerExportHeader, records[0])
	assert.Equal(t, "Apex Cold Storage", records[1][0])
	assert.Equal(t, "-", records[1][3]) // no GSTIN
	assert.Equal(t, "Lakshmi, Textiles", records[2][0])
}
