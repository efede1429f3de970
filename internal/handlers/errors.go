package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"resumelens/portfolio-analyzer/internal/logger"
	"resumelens/portfolio-analyzer/internal/models"
	"resumelens/portfolio-analyzer/internal/services"
)

// StatusFor maps a pipeline error kind onto its HTTP status.
func StatusFor(kind services.ErrorKind) int {
	if kind.IsClientError() {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// respondError writes the {error, details?} body for err. Details are
// only exposed for generic upstream failures in development mode.
func respondError(c *fiber.Ctx, err error, devMode bool) error {
	ae := services.AsAnalysisError(err)

	body := models.ErrorResponse{Error: ae.Message}
	if devMode && ae.Kind == services.KindUpstreamError && ae.Err != nil {
		body.Details = ae.Err.Error()
	}

	return c.Status(StatusFor(ae.Kind)).JSON(body)
}

// NewErrorHandler returns the app-wide fiber error handler. Oversized
// bodies rejected by the server surface as the same 400 the upload gate returns.
func NewErrorHandler(maxFileSize int64, devMode bool, log *zap.Logger) fiber.ErrorHandler {
	log = logger.OrNop(log)

	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if fe.Code == fiber.StatusRequestEntityTooLarge {
				return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
					Error: services.TooLargeMessage(maxFileSize),
				})
			}
			return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
		}

		var ae *services.AnalysisError
		if errors.As(err, &ae) {
			return respondError(c, ae, devMode)
		}

		log.Error("unhandled request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Internal server error"})
	}
}
