package report

import (
	"sort"
	"strings"
	"time"

	"jobtrack/internal/domain"
)

// Filter is the dashboard/report query over a normalized job collection.
// All set predicates compose with logical AND.
type Filter struct {
	EngineerID string
	Status     string
	DateFrom   string // inclusive, YYYY-MM-DD
	DateTo     string // inclusive
	ClosedOnly bool
	SearchText string
}

// The two Completed display buckets are derived predicates, not stored
// status values: a plain "Completed" status filter matches both.
const (
	StatusFilterCompletedOpen   = "Completed:open"
	StatusFilterCompletedClosed = "Completed:closed"
)

const dateLayout = "2006-01-02"

// Apply filters a collection of normalized jobs. Pure: the input slice is
// not modified.
func Apply(jobs []domain.Job, f Filter) []domain.Job {
	var from, to *time.Time
	if f.DateFrom != "" {
		if t, err := time.Parse(dateLayout, f.DateFrom); err == nil {
			from = &t
		}
	}
	if f.DateTo != "" {
		if t, err := time.Parse(dateLayout, f.DateTo); err == nil {
			to = &t
		}
	}
	dateBounded := f.DateFrom != "" || f.DateTo != ""

	search := strings.ToLower(strings.TrimSpace(f.SearchText))

	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if !matches(&j, f, dateBounded, from, to, search) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func matches(j *domain.Job, f Filter, dateBounded bool, from, to *time.Time, search string) bool {
	if f.EngineerID != "" && !j.AssignedTo(f.EngineerID) {
		return false
	}

	switch f.Status {
	case "":
	case StatusFilterCompletedOpen:
		if j.Status != domain.StatusCompleted || j.ClosedAt != nil {
			return false
		}
	case StatusFilterCompletedClosed:
		if !j.Closed() {
			return false
		}
	default:
		if string(j.Status) != f.Status {
			return false
		}
	}

	if dateBounded {
		// A missing or unparseable service date excludes the record from any
		// date-bounded query.
		d, err := time.Parse(dateLayout, j.Date)
		if err != nil {
			return false
		}
		if from != nil && d.Before(*from) {
			return false
		}
		if to != nil && d.After(*to) {
			return false
		}
	}

	if f.ClosedOnly && j.ClosedAt == nil {
		return false
	}

	if search != "" &&
		!strings.Contains(strings.ToLower(j.CustomerName), search) &&
		!strings.Contains(strings.ToLower(j.JobID), search) {
		return false
	}

	return true
}

// StatusBucket is one of the five dashboard display states. The two
// Completed buckets are mutually exclusive and sum to the Completed count.
type StatusBucket string

const (
	BucketNotInspected    StatusBucket = "Not Inspected"
	BucketApprovalPending StatusBucket = "Approval Pending"
	BucketInProgress      StatusBucket = "In Progress"
	BucketCompletedOpen   StatusBucket = "Completed"
	BucketCompletedClosed StatusBucket = "Closed"
)

func CountByBucket(jobs []domain.Job) map[StatusBucket]int {
	counts := map[StatusBucket]int{
		BucketNotInspected:    0,
		BucketApprovalPending: 0,
		BucketInProgress:      0,
		BucketCompletedOpen:   0,
		BucketCompletedClosed: 0,
	}

	for i := range jobs {
		j := &jobs[i]
		switch j.Status {
		case domain.StatusNotInspected:
			counts[BucketNotInspected]++
		case domain.StatusApprovalPending:
			counts[BucketApprovalPending]++
		case domain.StatusInProgress:
			counts[BucketInProgress]++
		case domain.StatusCompleted:
			if j.ClosedAt != nil {
				counts[BucketCompletedClosed]++
			} else {
				counts[BucketCompletedOpen]++
			}
		}
	}
	return counts
}

type SortKey int

const (
	SortByJobID SortKey = iota
	SortByDate
)

func ParseSortKey(s string) SortKey {
	if s == "date" {
		return SortByDate
	}
	return SortByJobID
}

// SortJobs orders a copy of the collection; the sort is stable so equal keys
// keep their incoming order across pages.
func SortJobs(jobs []domain.Job, key SortKey) []domain.Job {
	out := make([]domain.Job, len(jobs))
	copy(out, jobs)

	switch key {
	case SortByDate:
		// YYYY-MM-DD compares correctly as a string; job id breaks ties.
		sort.SliceStable(out, func(i, k int) bool {
			if out[i].Date != out[k].Date {
				return out[i].Date < out[k].Date
			}
			return out[i].JobID < out[k].JobID
		})
	default:
		sort.SliceStable(out, func(i, k int) bool { return out[i].JobID < out[k].JobID })
	}
	return out
}

// PageSize is the fixed page length of tabular views.
const PageSize = 25

// Paginate returns the 1-based page and the total page count.
func Paginate(jobs []domain.Job, page int) ([]domain.Job, int) {
	totalPages := (len(jobs) + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		return []domain.Job{}, totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(jobs) {
		end = len(jobs)
	}
	return jobs[start:end], totalPages
}
