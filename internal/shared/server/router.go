package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"garden-backend/internal/recommendations"
	"garden-backend/internal/requestlog"
	"garden-backend/internal/shared/config"
	"garden-backend/internal/shared/metrics"
	"garden-backend/internal/shared/server/middleware"
	"garden-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers wired by bootstrap.
type RouterDeps struct {
	Config                config.Config
	RecommendationHandler *recommendations.Handler
	LogHandler            *requestlog.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	deps.RecommendationHandler.RegisterRoutes(api)
	deps.LogHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
