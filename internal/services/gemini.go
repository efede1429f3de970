package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"resumelens/portfolio-analyzer/internal/logger"
	"resumelens/portfolio-analyzer/internal/models"
)

type GeminiService interface {
	GenerateText(ctx context.Context, prompt string, params models.GenerationParameters) (string, error)
	Model() string
}

// contentGenerator is the subset of *genai.Models the service needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiService struct {
	models    contentGenerator
	modelName string
	logger    *zap.Logger
	maxLogLen int
}

const defaultMaxLogLength = 200

func NewGeminiService(ctx context.Context, apiKey, modelName string, log *zap.Logger) (GeminiService, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, newAnalysisError(KindMissingCredential, missingCredentialMessage, nil)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newGeminiService(client.Models, modelName, log), nil
}

func newGeminiService(models contentGenerator, modelName string, log *zap.Logger) *geminiService {
	return &geminiService{
		models:    models,
		modelName: strings.TrimSpace(modelName),
		logger:    logger.OrNop(log).With(zap.String("ai_provider", "gemini"), zap.String("ai_model", modelName)),
		maxLogLen: defaultMaxLogLength,
	}
}

func (g *geminiService) Model() string {
	return g.modelName
}

// GenerateText implements GeminiService. It issues exactly one request.
func (g *geminiService) GenerateText(ctx context.Context, prompt string, params models.GenerationParameters) (string, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: params.MaxOutputTokens,
		Temperature:     genai.Ptr(params.Temperature),
		TopP:            genai.Ptr(params.TopP),
		TopK:            genai.Ptr(params.TopK),
	}
	if params.ThinkingBudget != nil {
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: params.ThinkingBudget}
	}

	g.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, g.maxLogLen)),
		zap.Int32("max_output_tokens", params.MaxOutputTokens),
	)

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		g.logger.Warn("gemini api error", zap.Error(err))
		return "", classifyGenerationError(err)
	}

	if resp == nil {
		return "", newAnalysisError(KindEmptyResponse, emptyResponseMessage, errors.New("nil response"))
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		reason := ""
		if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
			reason = string(resp.Candidates[0].FinishReason)
		}
		g.logger.Warn("gemini returned no text", zap.String("finish_reason", reason))
		return "", newAnalysisError(KindEmptyResponse, emptyResponseMessage, fmt.Errorf("no text content in response (finish reason %q)", reason))
	}

	g.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(text)),
		zap.String("response_preview", logger.TruncateForLog(text, g.maxLogLen)),
	)

	return text, nil
}

const (
	missingCredentialMessage = "Google API key not configured. Please set GOOGLE_API_KEY environment variable."
	authErrorMessage         = "Invalid Google API key. Please check your configuration."
	quotaExceededMessage     = "API quota exceeded. Please try again later."
	upstreamErrorMessage     = "Failed to analyze resume. Please try again later."
	emptyResponseMessage     = "Failed to generate analysis from Gemini API."
)

// classifyGenerationError maps an upstream failure onto AuthError,
// QuotaExceeded or UpstreamError. Message keys take precedence over status.
func classifyGenerationError(err error) *AnalysisError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return newAnalysisError(KindUpstreamError, upstreamErrorMessage, err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key"):
		return newAnalysisError(KindAuthError, authErrorMessage, err)
	case strings.Contains(strings.ToLower(msg), "quota"):
		return newAnalysisError(KindQuotaExceeded, quotaExceededMessage, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED":
			return newAnalysisError(KindQuotaExceeded, quotaExceededMessage, err)
		case apiErr.Code == http.StatusUnauthorized || apiErr.Status == "UNAUTHENTICATED":
			return newAnalysisError(KindAuthError, authErrorMessage, err)
		}
	}

	return newAnalysisError(KindUpstreamError, upstreamErrorMessage, err)
}
