package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"resumelens/portfolio-analyzer/internal/models"
	"resumelens/portfolio-analyzer/internal/services"
)

// Multipart field names accepted for the uploaded PDF, in lookup order.
var fileFields = []string{"file", "resume"}

const portfolioLinksField = "portfolioLinks"

type AnalyzeHandler struct {
	analyzer services.AnalyzerService
	devMode  bool
}

func NewAnalyzeHandler(analyzer services.AnalyzerService, devMode bool) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		devMode:  devMode,
	}
}

// HandleProject handles POST /analyze
// @Summary     Critique the projects listed in a resume
// @Tags        analyze
// @Accept      mpfd
// @Produce     json
// @Param       file formData file true "Resume PDF (field may also be named resume)"
// @Success     200 {object} models.AnalysisResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /analyze [post]
func (h *AnalyzeHandler) HandleProject(c *fiber.Ctx) error {
	return h.analyze(c, models.VariantProject)
}

// HandlePortfolio handles POST /analyze-resume
// @Summary     Score a resume and portfolio with gamified signals
// @Tags        analyze
// @Accept      mpfd
// @Produce     json
// @Param       resume         formData file   true  "Resume PDF (field may also be named file)"
// @Param       portfolioLinks formData string false "Newline-separated portfolio links"
// @Success     200 {object} models.AnalysisResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /analyze-resume [post]
func (h *AnalyzeHandler) HandlePortfolio(c *fiber.Ctx) error {
	return h.analyze(c, models.VariantPortfolio)
}

// HandleGapAnalysis handles POST /analyze-gaps
// @Summary     Produce a career and skill-gap report
// @Tags        analyze
// @Accept      mpfd
// @Produce     json
// @Param       file formData file true "Resume PDF"
// @Success     200 {object} models.AnalysisResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /analyze-gaps [post]
func (h *AnalyzeHandler) HandleGapAnalysis(c *fiber.Ctx) error {
	return h.analyze(c, models.VariantGapAnalysis)
}

// HandleVariant handles POST /api/v1/analyze/:variant
// @Summary     Run any analysis variant
// @Tags        analyze
// @Accept      mpfd
// @Produce     json
// @Param       variant        path     string true  "project, portfolio or gap-analysis"
// @Param       file           formData file   true  "Resume PDF"
// @Param       portfolioLinks formData string false "Newline-separated portfolio links"
// @Success     200 {object} models.AnalysisResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /api/v1/analyze/{variant} [post]
func (h *AnalyzeHandler) HandleVariant(c *fiber.Ctx) error {
	variant, err := models.ParseVariant(c.Params("variant"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Unknown analysis variant")
	}
	return h.analyze(c, variant)
}

func (h *AnalyzeHandler) analyze(c *fiber.Ctx, variant models.Variant) error {
	resp, err := h.analyzer.AnalyzeUpload(
		c.UserContext(),
		uploadedFile(c),
		variant,
		c.FormValue(portfolioLinksField),
		requestID(c),
	)
	if err != nil {
		return respondError(c, err, h.devMode)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// uploadedFile returns the first file found under a known field, or nil.
func uploadedFile(c *fiber.Ctx) *multipart.FileHeader {
	for _, field := range fileFields {
		if fh, err := c.FormFile(field); err == nil && fh != nil {
			return fh
		}
	}
	return nil
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}
