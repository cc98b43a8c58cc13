package job

import (
	"strings"

	"jobtrack/internal/domain"
)

// Normalize coerces a raw job record into canonical form. It is total and
// idempotent: a record with the legacy scalar engineer field is read as a
// one-element engineers list, empty entries are dropped, the list is clamped
// to the assignment bound, and a missing status defaults to Not Inspected.
func Normalize(j domain.Job) domain.Job {
	engineers := filterEngineers(j.Engineers)
	if len(engineers) == 0 && strings.TrimSpace(j.Engineer) != "" {
		engineers = append(engineers, strings.TrimSpace(j.Engineer))
	}
	if len(engineers) > domain.MaxEngineers {
		engineers = engineers[:domain.MaxEngineers]
	}
	j.Engineers = engineers
	j.Engineer = ""

	if !j.Status.Valid() {
		j.Status = domain.StatusNotInspected
	}

	return j
}

// filterEngineers trims entries and drops blanks without clamping.
func filterEngineers(engineers []string) []string {
	out := make([]string, 0, len(engineers))
	for _, e := range engineers {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func NormalizeAll(jobs []domain.Job) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, Normalize(j))
	}
	return out
}

// RequiredField names one mandatory intake field, with the label used in
// validation messages.
type RequiredField struct {
	Key   string
	Label string
}

// DefaultRequiredFields is the field set the edit screen has always
// enforced. Serial number and GSTIN vary between intake flows, so they are
// appended through configuration rather than hardcoded.
func DefaultRequiredFields() []RequiredField {
	return []RequiredField{
		{Key: "jobid", Label: "Job ID"},
		{Key: "jdate", Label: "Date"},
		{Key: "loc", Label: "Location of Service"},
		{Key: "customer_name", Label: "Customer Name"},
		{Key: "phone", Label: "Phone"},
		{Key: "city", Label: "City"},
		{Key: "poc", Label: "POC"},
		{Key: "brand", Label: "Brand"},
		{Key: "model", Label: "Model"},
	}
}

var extraFieldLabels = map[string]string{
	"serial_no": "Serial No.",
	"gstin":     "GSTIN",
}

// RequiredFieldsWith appends configured extra keys to the default set.
// Unknown keys are ignored.
func RequiredFieldsWith(extra []string) []RequiredField {
	fields := DefaultRequiredFields()
	for _, key := range extra {
		if label, ok := extraFieldLabels[key]; ok {
			fields = append(fields, RequiredField{Key: key, Label: label})
		}
	}
	return fields
}

// MissingRequired returns the labels of required fields absent from the
// request, in the order they are configured.
func MissingRequired(values map[string]string, fields []RequiredField) []string {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(values[f.Key]) == "" {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

func (r CreateJobRequest) fieldValues() map[string]string {
	return map[string]string{
		"jobid":         r.JobID,
		"jdate":         r.Date,
		"loc":           r.Location,
		"customer_name": r.CustomerName,
		"phone":         r.Phone,
		"city":          r.City,
		"poc":           r.POC,
		"brand":         r.Brand,
		"model":         r.Model,
		"serial_no":     r.SerialNo,
		"gstin":         r.GSTIN,
	}
}

func (r UpdateJobRequest) fieldValues(jobID string) map[string]string {
	return map[string]string{
		"jobid":         jobID,
		"jdate":         r.Date,
		"loc":           r.Location,
		"customer_name": r.CustomerName,
		"phone":         r.Phone,
		"city":          r.City,
		"poc":           r.POC,
		"brand":         r.Brand,
		"model":         r.Model,
		"serial_no":     r.SerialNo,
		"gstin":         r.GSTIN,
	}
}
