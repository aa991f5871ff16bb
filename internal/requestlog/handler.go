package requestlog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"garden-backend/internal/shared/server/respond"
)

// Handler exposes read-only log endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches log routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/logs", h.recent)
	rg.GET("/logs/stats", h.stats)
}

func (h *Handler) recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	location := c.Query("location")

	logs, err := h.Svc.Recent(c.Request.Context(), limit, location)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch logs", false)
		return
	}
	if logs == nil {
		logs = []Record{}
	}
	respond.JSON(c, http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Svc.Stats(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch stats", false)
		return
	}
	respond.OK(c, stats)
}
