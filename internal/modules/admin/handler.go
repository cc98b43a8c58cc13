package admin

import (
	"errors"
	"net/http"

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
	rg.POST("/admin/users", h.AddUser)
	rg.GET("/admin/engineers", h.ListEngineers)
}

func (h *Handler) AddUser(c *gin.Context) {
	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Email and role are required")
		return
	}

	user, err := h.service.AddUser(c.Request.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user)
}

func (h *Handler) ListEngineers(c *gin.Context) {
	engineers, err := h.service.ListEngineers(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"engineers": engineers})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Role must be owner, coordinator or engineer")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Your role does not permit this action")
	case errors.Is(err, ErrDuplicateEmail):
		response.Error(c, http.StatusConflict, "DUPLICATE_EMAIL", "An account already exists for this email")
	default:
		response.RetryableError(c, "Storage is unavailable, try again")
	}
}
