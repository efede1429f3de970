package services

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"

	"resumelens/portfolio-analyzer/internal/models"
)

const (
	fallbackScoreMin  = 30
	fallbackScoreSpan = 40
)

var (
	scorePattern    = regexp.MustCompile(`(?i)portfolio score[:\s]*(\d+)`)
	levelPattern    = regexp.MustCompile(`(?i)(bronze|silver|gold|platinum|diamond)`)
	skillPattern    = regexp.MustCompile(`(?i)(novice|intermediate|advanced|expert)`)
	levelCanonical  = canonicalIndex(models.GamifiedLevels)
	skillsCanonical = canonicalIndex(models.SkillLevels)
)

// ResponseNormalizer derives gamified signals from free-text model output.
// Extraction is heuristic: every field falls back to a default instead of failing.
type ResponseNormalizer struct {
	intN func(n int) int
}

func NewResponseNormalizer() *ResponseNormalizer {
	return &ResponseNormalizer{intN: rand.IntN}
}

func (n *ResponseNormalizer) Normalize(raw string) models.NormalizedSignals {
	return models.NormalizedSignals{
		PortfolioScore: n.score(raw),
		GamifiedLevel:  models.GamifiedLevel(firstMatch(levelPattern, levelCanonical, raw, string(models.LevelSilver))),
		SkillLevel:     models.SkillLevel(firstMatch(skillPattern, skillsCanonical, raw, string(models.SkillIntermediate))),
	}
}

func (n *ResponseNormalizer) score(raw string) int {
	if m := scorePattern.FindStringSubmatch(raw); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			return min(max(v, 0), 100)
		}
		// Digits too long for int: treat as the ceiling.
		return 100
	}
	return fallbackScoreMin + n.intN(fallbackScoreSpan)
}

func firstMatch(re *regexp.Regexp, canonical map[string]string, raw, fallback string) string {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return fallback
	}
	return canonical[strings.ToLower(m[1])]
}

func canonicalIndex[T ~string](values []T) map[string]string {
	idx := make(map[string]string, len(values))
	for _, v := range values {
		idx[strings.ToLower(string(v))] = string(v)
	}
	return idx
}
