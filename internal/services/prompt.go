package services

import (
	"fmt"
	"strings"

	"resumelens/portfolio-analyzer/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build composes the full prompt for req. It is pure and deterministic.
func (pb *PromptBuilder) Build(req models.AnalysisRequest) (string, error) {
	switch req.Variant {
	case models.VariantProject:
		return pb.BuildProjectPrompt(req.ResumeText), nil
	case models.VariantPortfolio:
		return pb.BuildPortfolioPrompt(req.ResumeText, req.PortfolioLinksRaw), nil
	case models.VariantGapAnalysis:
		return pb.BuildGapAnalysisPrompt(req.ResumeText), nil
	default:
		return "", fmt.Errorf("unknown analysis variant: %q", req.Variant)
	}
}

// BuildProjectPrompt creates the project-only critique prompt
func (pb *PromptBuilder) BuildProjectPrompt(resumeText string) string {
	return fmt.Sprintf("%s\n\n%s\n\nCV/RESUME DATA:\n%s\n\n%s",
		projectInstruction, dataBlockNotice, quoteBlock(resumeText), projectClosing)
}

// BuildPortfolioPrompt creates the portfolio + gamified scoring prompt
func (pb *PromptBuilder) BuildPortfolioPrompt(resumeText, portfolioLinks string) string {
	links := quoteBlock(portfolioLinks)
	instruction := strings.Replace(portfolioInstruction, "{portfolioLinks}", links, 1)

	return fmt.Sprintf("%s\n\n%s\n\nCV/RESUME DATA:\n%s\n\n%s",
		instruction, dataBlockNotice, quoteBlock(resumeText), portfolioClosing)
}

// BuildGapAnalysisPrompt creates the career and skill-gap report prompt
func (pb *PromptBuilder) BuildGapAnalysisPrompt(resumeText string) string {
	return fmt.Sprintf("%s\n\n%s\n\nResume Text:\n%s\n\n%s",
		gapAnalysisInstruction, dataBlockNotice, quoteBlock(resumeText), gapAnalysisClosing)
}

// quoteBlock fences untrusted text so it cannot close its own delimiter.
func quoteBlock(text string) string {
	return `"""` + "\n" + strings.ReplaceAll(text, `"""`, `'''`) + "\n" + `"""`
}

// GenerationParametersFor returns the fixed parameters for a variant.
func GenerationParametersFor(v models.Variant, gapMaxTokens int, gapTemperature float64) models.GenerationParameters {
	switch v {
	case models.VariantProject:
		return models.GenerationParameters{MaxOutputTokens: 300, Temperature: 0.7, TopP: 0.8, TopK: 40}
	case models.VariantPortfolio:
		return models.GenerationParameters{MaxOutputTokens: 400, Temperature: 0.7, TopP: 0.8, TopK: 40}
	default:
		return models.GenerationParameters{
			MaxOutputTokens: int32(gapMaxTokens),
			Temperature:     float32(gapTemperature),
			TopP:            1,
			TopK:            1,
		}
	}
}
