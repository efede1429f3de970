package handlers

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"resumelens/portfolio-analyzer/internal/metrics"
	"resumelens/portfolio-analyzer/internal/models"
	"resumelens/portfolio-analyzer/internal/services"
)

const requestIDKey = "requestid"

// multipart framing allowance on top of the file ceiling
const bodyOverhead = 1 << 20

type AppOptions struct {
	Analyzer     services.AnalyzerService
	Metrics      *metrics.Registry
	Logger       *zap.Logger
	MaxFileSize  int64
	DevMode      bool
	AllowOrigins string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// RateLimitMax <= 0 disables the limiter on analyze routes.
	RateLimitMax    int
	RateLimitWindow time.Duration
	// AccessLog is nil to disable request logging.
	AccessLog io.Writer
}

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(opts AppOptions) *fiber.App {
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewRegistry()
	}
	if opts.AllowOrigins == "" {
		opts.AllowOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:      "Resume Portfolio Analyzer API",
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		BodyLimit:    int(opts.MaxFileSize + bodyOverhead),
		ErrorHandler: NewErrorHandler(opts.MaxFileSize, opts.DevMode, opts.Logger),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: requestIDKey,
	}))
	if opts.AccessLog != nil {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
			TimeFormat: "2006-01-02 15:04:05",
			Output:     opts.AccessLog,
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, X-Request-ID",
	}))

	analyzeHandler := NewAnalyzeHandler(opts.Analyzer, opts.DevMode)
	healthHandler := NewHealthHandler(opts.Analyzer, opts.Metrics)

	guard := rateLimiter(opts.RateLimitMax, opts.RateLimitWindow)

	app.Post("/analyze", guard, analyzeHandler.HandleProject)
	app.Post("/analyze-resume", guard, analyzeHandler.HandlePortfolio)
	app.Post("/analyze-gaps", guard, analyzeHandler.HandleGapAnalysis)
	app.Get("/health", healthHandler.HandleHealth)
	app.Get("/metrics", healthHandler.HandleMetrics)

	api := app.Group("/api/v1")
	api.Post("/analyze/:variant", guard, analyzeHandler.HandleVariant)
	api.Get("/health", healthHandler.HandleHealth)

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", healthHandler.HandleIndex)

	return app
}

func rateLimiter(limit int, window time.Duration) fiber.Handler {
	if limit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if window <= 0 {
		window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests. Please try again later.",
			})
		},
	})
}
