package models

import "time"

// AnalysisResponse is the only artifact returned to callers on success.
// Signal fields are flattened into the top-level object when present.
type AnalysisResponse struct {
	Success       bool   `json:"success"`
	Analysis      string `json:"analysis"`
	Filename      string `json:"filename"`
	FileSizeBytes int64  `json:"fileSize"`
	*NormalizedSignals
	PortfolioLinks *string `json:"portfolioLinks,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status              string    `json:"status"`
	Timestamp           time.Time `json:"timestamp"`
	GeminiAPIConfigured bool      `json:"geminiApiConfigured"`
	Model               string    `json:"model"`
}
