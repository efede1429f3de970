package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"resumelens/portfolio-analyzer/internal/metrics"
	"resumelens/portfolio-analyzer/internal/models"
	"resumelens/portfolio-analyzer/internal/services"
)

type HealthHandler struct {
	analyzer services.AnalyzerService
	metrics  *metrics.Registry
	now      func() time.Time
}

func NewHealthHandler(analyzer services.AnalyzerService, registry *metrics.Registry) *HealthHandler {
	return &HealthHandler{
		analyzer: analyzer,
		metrics:  registry,
		now:      time.Now,
	}
}

// HandleHealth handles GET /health
// @Summary     Liveness check with credential status
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:              "healthy",
		Timestamp:           h.now().UTC(),
		GeminiAPIConfigured: h.analyzer.GeminiConfigured(),
		Model:               h.analyzer.Model(),
	})
}

// HandleMetrics handles GET /metrics
// @Summary     Operational counters
// @Tags        health
// @Produce     plain
// @Success     200 {string} string
// @Router      /metrics [get]
func (h *HealthHandler) HandleMetrics(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(h.metrics.Format())
}

func (h *HealthHandler) HandleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Resume Portfolio Analyzer API",
		"version": "1.0.0",
		"endpoints": []string{
			"POST /analyze",
			"POST /analyze-resume",
			"POST /analyze-gaps",
			"POST /api/v1/analyze/:variant",
			"GET /health",
			"GET /metrics",
			"GET /swagger/index.html",
		},
	})
}
