package live

import (
	"jobtrack/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws/jobs", h.Serve)
}

func (h *Handler) Serve(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request, middleware.SessionFrom(c))
}
