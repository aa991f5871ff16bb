package recommendations

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"garden-backend/internal/shared/server/respond"
)

// Handler exposes the recommendation endpoint and its health check.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.create)
	rg.GET("/recommendations/health", h.health)
}

func (h *Handler) create(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, CodeValidationError, "invalid request body: "+err.Error(), false)
		return
	}
	if err := req.Validate(); err != nil {
		respond.Error(c, http.StatusUnprocessableEntity, CodeValidationError, err.Error(), false)
		return
	}

	resp, err := h.Svc.Recommend(c.Request.Context(), req)
	if err != nil {
		status, code, retry := Classify(err)
		respond.Error(c, status, code, fmt.Sprintf("Unable to generate plant recommendations: %v", err), retry)
		return
	}

	respond.OK(c, resp)
}

func (h *Handler) health(c *gin.Context) {
	respond.OK(c, gin.H{
		"service":                "recommendations",
		"status":                 "healthy",
		"llm_service_configured": h.Svc.LLM.Configured(),
		"timestamp":              time.Now().UTC().Format(time.RFC3339),
	})
}
