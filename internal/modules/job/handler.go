package job

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
	rg.POST("/jobs", h.CreateJob)
	rg.GET("/jobs", h.ListJobs)
	rg.GET("/jobs/:jobid", h.GetJob)
	rg.PUT("/jobs/:jobid", h.UpdateJob)
	rg.PATCH("/jobs/:jobid/status", h.UpdateStatus)
	rg.PATCH("/jobs/:jobid/worklog", h.UpdateWorkLog)
	rg.POST("/jobs/:jobid/engineers", h.AddEngineer)
	rg.PUT("/jobs/:jobid/engineers/:index", h.SetEngineer)
	rg.DELETE("/jobs/:jobid/engineers/:index", h.RemoveEngineer)
	rg.POST("/jobs/:jobid/close", h.CloseCall)
}

// RegisterPublicRoutes exposes the unauthenticated customer status lookup.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/public/jobs/:jobid/status", h.PublicStatus)
}

func (h *Handler) CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	j, err := h.service.Create(c.Request.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"job": j})
}

func (h *Handler) ListJobs(c *gin.Context) {
	jobs, err := h.service.List(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jobs": jobs})
}

func (h *Handler) GetJob(c *gin.Context) {
	j, err := h.service.Get(c.Request.Context(), middleware.SessionFrom(c), c.Param("jobid"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": j})
}

func (h *Handler) UpdateJob(c *gin.Context) {
	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	j, err := h.service.UpdateDetails(c.Request.Context(), middleware.SessionFrom(c), c.Param("jobid"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": j})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	j, err := h.service.UpdateStatus(c.Request.Context(), middleware.SessionFrom(c), c.Param("jobid"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": j})
}

func (h *Handler) UpdateWorkLog(c *gin.Context) {
	var req UpdateWorkLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	j, err := h.service.UpdateWorkLog(c.Request.Context(), middleware.SessionFrom(c), c.Param("jobid"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": j})
}

func (h *Handler) AddEngineer(c *gin.Context) {
	var req AddEngineerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	j, err := h.service.AddEngineer(c.Request.Context(), middleware.SessionFrom(c), c.Param("jobid"), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": j})
}

func (h *Handler) SetEngineer(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid engineer index")
		return
	}

	var req SetEngineerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	j, err := h.service.SetEngineer(c.Request.Context(), middleware.SessionFrom(c), c.Param("jobid"), index, req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": j})
}

func (h *Handler) RemoveEngineer(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid engineer index")
		return
	}

	j, err := h.service.RemoveEngineer(c.Request.Context(), middleware.SessionFrom(c), c.Param("jobid"), index)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": j})
}

func (h *Handler) CloseCall(c *gin.Context) {
	var req CloseCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	j, err := h.service.CloseCall(c.Request.Context(), middleware.SessionFrom(c), c.Param("jobid"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"job": j})
}

func (h *Handler) PublicStatus(c *gin.Context) {
	status, err := h.service.PublicStatus(c.Request.Context(), c.Param("jobid"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

// writeError maps workflow errors onto the error taxonomy: validation and
// authorization are specific and final; anything unrecognized is treated as
// a retryable persistence failure.
func writeError(c *gin.Context, err error) {
	var missing *MissingFieldsError
	if errors.As(err, &missing) {
		response.ValidationError(c, "Required fields are missing", missing.Fields)
		return
	}

	switch {
	case errors.Is(err, ErrClaimUndecided):
		response.Error(c, http.StatusBadRequest, "CLAIM_UNDECIDED", "Decide whether a claim exists before confirming")
	case errors.Is(err, ErrClaimIncomplete):
		response.Error(c, http.StatusBadRequest, "CLAIM_INCOMPLETE", "Claim principal and details are required")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid field values")
	case errors.Is(err, ErrEngineerLimit):
		response.Error(c, http.StatusBadRequest, "ENGINEER_LIMIT", "A job can have at most 3 engineers")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Your role does not permit this action")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Job not found")
	case errors.Is(err, ErrDuplicateJobID):
		response.Error(c, http.StatusConflict, "DUPLICATE_JOB_ID", "A job with this id already exists")
	case errors.Is(err, ErrJobClosed):
		response.Error(c, http.StatusConflict, "JOB_CLOSED", "The job is closed and can no longer be changed")
	case errors.Is(err, ErrNotCompleted):
		response.Error(c, http.StatusConflict, "NOT_COMPLETED", "Only completed jobs can be closed")
	default:
		response.RetryableError(c, "Storage is unavailable, try again")
	}
}
