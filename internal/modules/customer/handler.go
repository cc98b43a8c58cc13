package customer

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
	rg.GET("/customers", h.List)
	rg.GET("/customers/:name", h.Get)
	rg.GET("/customers/:name/jobs", h.History)
}

func (h *Handler) List(c *gin.Context) {
	customers, err := h.service.List(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"customers": customers})
}

func (h *Handler) Get(c *gin.Context) {
	cust, err := h.service.Get(c.Request.Context(), middleware.SessionFrom(c), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cust)
}

func (h *Handler) History(c *gin.Context) {
	jobs, err := h.service.History(c.Request.Context(), middleware.SessionFrom(c), c.Param("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"jobs": jobs})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Your role does not permit this action")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Customer not found")
	default:
		response.RetryableError(c, "Storage is unavailable, try again")
	}
}
