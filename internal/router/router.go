package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trustlabel/internal/config"
	"trustlabel/internal/handler"
	"trustlabel/internal/metrics"
	"trustlabel/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg config.ServerConfig,
	logger *zap.Logger,
	m *metrics.Metrics,
	analysisH *handler.AnalysisHandler,
	rulesH *handler.RulesHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger, m))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health and metrics
	r.GET("/healthz", healthH.Liveness)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	v1 := r.Group("/api/v1")
	v1.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	reports := v1.Group("/reports")
	reports.POST("/parse", analysisH.ParseReport)
	reports.POST("/parse/batch", analysisH.ParseBatch)

	analyses := v1.Group("/analyses")
	analyses.POST("/validate", analysisH.Validate)
	analyses.POST("/validate/batch", analysisH.ValidateBatch)
	analyses.POST("/export", analysisH.Export)

	v1.GET("/rules", rulesH.List)

	return r
}
