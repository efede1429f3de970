package models

import (
	"fmt"
	"strings"
)

// Variant selects the instruction template and generation parameters.
type Variant string

const (
	VariantProject     Variant = "project"
	VariantPortfolio   Variant = "portfolio"
	VariantGapAnalysis Variant = "gap-analysis"
)

// Variants lists every supported variant in display order.
var Variants = []Variant{VariantProject, VariantPortfolio, VariantGapAnalysis}

func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Variants {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown analysis variant: %q", s)
}

// HasSignals reports whether responses for this variant carry gamified signals.
func (v Variant) HasSignals() bool {
	return v == VariantPortfolio
}

type AnalysisRequest struct {
	ResumeText        string
	PortfolioLinksRaw string
	Variant           Variant
}

type GenerationParameters struct {
	MaxOutputTokens int32
	Temperature     float32
	TopP            float32
	TopK            float32
	// ThinkingBudget is omitted from the request when nil.
	ThinkingBudget *int32
}

type GamifiedLevel string

const (
	LevelBronze   GamifiedLevel = "Bronze"
	LevelSilver   GamifiedLevel = "Silver"
	LevelGold     GamifiedLevel = "Gold"
	LevelPlatinum GamifiedLevel = "Platinum"
	LevelDiamond  GamifiedLevel = "Diamond"
)

var GamifiedLevels = []GamifiedLevel{LevelBronze, LevelSilver, LevelGold, LevelPlatinum, LevelDiamond}

type SkillLevel string

const (
	SkillNovice       SkillLevel = "Novice"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

var SkillLevels = []SkillLevel{SkillNovice, SkillIntermediate, SkillAdvanced, SkillExpert}

type NormalizedSignals struct {
	PortfolioScore int           `json:"portfolioScore"`
	GamifiedLevel  GamifiedLevel `json:"gamifiedLevel"`
	SkillLevel     SkillLevel    `json:"skillLevel"`
}
