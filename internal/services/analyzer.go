package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"go.uber.org/zap"

	"resumelens/portfolio-analyzer/internal/logger"
	"resumelens/portfolio-analyzer/internal/metrics"
	"resumelens/portfolio-analyzer/internal/models"
)

type AnalyzerService interface {
	// AnalyzeUpload admits a multipart upload through the gate, then analyzes it.
	AnalyzeUpload(ctx context.Context, file *multipart.FileHeader, variant models.Variant, portfolioLinks, requestID string) (*models.AnalysisResponse, error)
	// Analyze runs the pipeline on a document that is already in memory.
	Analyze(ctx context.Context, doc *models.UploadedDocument, variant models.Variant, portfolioLinks, requestID string) (*models.AnalysisResponse, error)
	GeminiConfigured() bool
	Model() string
}

type AnalyzerOptions struct {
	Model string
	// Gap-analysis overrides.
	GapMaxTokens   int
	GapTemperature float64
	// ThinkingBudget is sent only when >= 0.
	ThinkingBudget int
}

type analyzerService struct {
	gate          UploadGate
	pdfParser     PDFParserService
	promptBuilder *PromptBuilder
	generator     GeminiService
	normalizer    *ResponseNormalizer
	audit         AuditRecorder
	metrics       *metrics.Registry
	logger        *zap.Logger
	opts          AnalyzerOptions
}

// NewAnalyzerService wires the pipeline. generator may be nil when no
// credential is configured; every analysis then fails with MissingCredential.
func NewAnalyzerService(
	gate UploadGate,
	pdfParser PDFParserService,
	generator GeminiService,
	audit AuditRecorder,
	registry *metrics.Registry,
	log *zap.Logger,
	opts AnalyzerOptions,
) AnalyzerService {
	if audit == nil {
		audit = NewNoopAuditRecorder()
	}
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	if generator != nil && opts.Model == "" {
		opts.Model = generator.Model()
	}

	return &analyzerService{
		gate:          gate,
		pdfParser:     pdfParser,
		promptBuilder: NewPromptBuilder(),
		generator:     generator,
		normalizer:    NewResponseNormalizer(),
		audit:         audit,
		metrics:       registry,
		logger:        logger.OrNop(log),
		opts:          opts,
	}
}

func (a *analyzerService) GeminiConfigured() bool {
	return a.generator != nil
}

func (a *analyzerService) Model() string {
	return a.opts.Model
}

// AnalyzeUpload implements AnalyzerService.
func (a *analyzerService) AnalyzeUpload(ctx context.Context, file *multipart.FileHeader, variant models.Variant, portfolioLinks, requestID string) (*models.AnalysisResponse, error) {
	start := time.Now()
	a.metrics.AnalyzeRequests.Add(1)

	doc, err := a.gate.Accept(file)
	if err != nil {
		size := int64(0)
		if file != nil {
			size = file.Size
		}
		a.finish(requestID, variant, size, start, err)
		return nil, err
	}

	resp, err := a.run(ctx, doc, variant, portfolioLinks)
	a.finish(requestID, variant, doc.SizeBytes, start, err)
	return resp, err
}

// Analyze implements AnalyzerService.
func (a *analyzerService) Analyze(ctx context.Context, doc *models.UploadedDocument, variant models.Variant, portfolioLinks, requestID string) (*models.AnalysisResponse, error) {
	start := time.Now()
	a.metrics.AnalyzeRequests.Add(1)

	if doc == nil {
		err := newAnalysisError(KindMissingFile, "No file uploaded", nil)
		a.finish(requestID, variant, 0, start, err)
		return nil, err
	}

	if err := a.gate.Check(doc.DeclaredMimeType, int64(len(doc.Data))); err != nil {
		a.finish(requestID, variant, doc.SizeBytes, start, err)
		return nil, err
	}

	resp, err := a.run(ctx, doc, variant, portfolioLinks)
	a.finish(requestID, variant, doc.SizeBytes, start, err)
	return resp, err
}

func (a *analyzerService) run(ctx context.Context, doc *models.UploadedDocument, variant models.Variant, portfolioLinks string) (*models.AnalysisResponse, error) {
	// No upstream call may be attempted without a credential.
	if a.generator == nil {
		return nil, newAnalysisError(KindMissingCredential, missingCredentialMessage, nil)
	}

	text, err := a.pdfParser.ExtractText(doc.Data)
	if err != nil {
		return nil, err
	}

	prompt, err := a.promptBuilder.Build(models.AnalysisRequest{
		ResumeText:        text,
		PortfolioLinksRaw: portfolioLinks,
		Variant:           variant,
	})
	if err != nil {
		return nil, newAnalysisError(KindUpstreamError, upstreamErrorMessage, fmt.Errorf("failed to build prompt: %w", err))
	}

	params := GenerationParametersFor(variant, a.opts.GapMaxTokens, a.opts.GapTemperature)
	if a.opts.ThinkingBudget >= 0 {
		budget := int32(a.opts.ThinkingBudget)
		params.ThinkingBudget = &budget
	}

	genStart := time.Now()
	analysis, err := a.generator.GenerateText(ctx, prompt, params)
	a.metrics.ObserveGeneration(time.Since(genStart), err)
	if err != nil {
		return nil, err
	}

	return a.assemble(doc, variant, analysis, portfolioLinks), nil
}

func (a *analyzerService) assemble(doc *models.UploadedDocument, variant models.Variant, analysis, portfolioLinks string) *models.AnalysisResponse {
	resp := &models.AnalysisResponse{
		Success:       true,
		Analysis:      analysis,
		Filename:      doc.OriginalFilename,
		FileSizeBytes: doc.SizeBytes,
	}

	if variant.HasSignals() {
		signals := a.normalizer.Normalize(analysis)
		links := portfolioLinks
		resp.NormalizedSignals = &signals
		resp.PortfolioLinks = &links
	}

	return resp
}

// finish counts the outcome and hands audit metadata to the recorder.
func (a *analyzerService) finish(requestID string, variant models.Variant, size int64, start time.Time, err error) {
	elapsed := time.Since(start)
	entry := models.AnalysisAudit{
		RequestID:     requestID,
		Variant:       variant,
		FileSizeBytes: size,
		Model:         a.opts.Model,
		DurationMs:    elapsed.Milliseconds(),
	}

	if err != nil {
		kind := KindOf(err)
		a.metrics.IncrError(string(kind))
		entry.Status = models.AuditRejected
		entry.ErrorKind = string(kind)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("variant", string(variant)),
			zap.String("error_kind", string(kind)),
			zap.Duration("elapsed", elapsed),
		}
		if kind.IsClientError() {
			a.logger.Info("analysis rejected", fields...)
		} else {
			a.logger.Error("analysis failed", append(fields, zap.Error(err))...)
		}
	} else {
		a.metrics.IncrDelivered(string(variant))
		entry.Status = models.AuditDelivered

		a.logger.Info("analysis delivered",
			zap.String("request_id", requestID),
			zap.String("variant", string(variant)),
			zap.Int64("file_size", size),
			zap.Duration("elapsed", elapsed),
		)
	}

	a.audit.Record(entry)
}
