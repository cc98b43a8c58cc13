package report

import (
	"errors"
	"net/http"
	"strconv"

	"jobtrack/internal/middleware"
	"jobtrack/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/jobs", h.QueryJobs)
	rg.GET("/reports/summary", h.Summary)
	rg.GET("/reports/jobs.csv", h.ExportJobs)
	rg.GET("/reports/customers.csv", h.ExportCustomers)
}

func filterFromQuery(c *gin.Context) Filter {
	return Filter{
		EngineerID: c.Query("engineer"),
		Status:     c.Query("status"),
		DateFrom:   c.Query("from"),
		DateTo:     c.Query("to"),
		ClosedOnly: c.Query("closed_only") == "true",
		SearchText: c.Query("q"),
	}
}

func (h *Handler) QueryJobs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.service.Query(
		c.Request.Context(),
		middleware.SessionFrom(c),
		filterFromQuery(c),
		ParseSortKey(c.Query("sort")),
		page,
	)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Summary(c *gin.Context) {
	counts, err := h.service.Summary(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"counts": counts})
}

func (h *Handler) ExportJobs(c *gin.Context) {
	csv, err := h.service.ExportJobs(
		c.Request.Context(),
		middleware.SessionFrom(c),
		filterFromQuery(c),
		ParseSortKey(c.Query("sort")),
	)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="jobs_export.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

func (h *Handler) ExportCustomers(c *gin.Context) {
	csv, err := h.service.ExportCustomers(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="customers_export.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrForbidden) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Your role does not permit this action")
		return
	}
	response.RetryableError(c, "Storage is unavailable, try again")
}
