package report

import "jobtrack/internal/domain"

type PageResult struct {
	Jobs       []domain.Job `json:"jobs"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	TotalCount int          `json:"total_count"`
}
