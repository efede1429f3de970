package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{in: "project", want: VariantProject},
		{in: " Portfolio ", want: VariantPortfolio},
		{in: "GAP-ANALYSIS", want: VariantGapAnalysis},
		{in: "freelance", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasSignals(t *testing.T) {
	assert.True(t, VariantPortfolio.HasSignals())
	assert.False(t, VariantProject.HasSignals())
	assert.False(t, VariantGapAnalysis.HasSignals())
}

func TestAnalysisResponseJSONShape(t *testing.T) {
	links := "https://github.com/alice"
	withSignals := AnalysisResponse{
		Success:       true,
		Analysis:      "ok",
		Filename:      "cv.pdf",
		FileSizeBytes: 2097152,
		NormalizedSignals: &NormalizedSignals{
			PortfolioScore: 72,
			GamifiedLevel:  LevelGold,
			SkillLevel:     SkillAdvanced,
		},
		PortfolioLinks: &links,
	}

	raw, err := json.Marshal(withSignals)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": true,
		"analysis": "ok",
		"filename": "cv.pdf",
		"fileSize": 2097152,
		"portfolioScore": 72,
		"gamifiedLevel": "Gold",
		"skillLevel": "Advanced",
		"portfolioLinks": "https://github.com/alice"
	}`, string(raw))

	plain := AnalysisResponse{Success: true, Analysis: "ok", Filename: "cv.pdf", FileSizeBytes: 10}
	raw, err = json.Marshal(plain)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"analysis":"ok","filename":"cv.pdf","fileSize":10}`, string(raw))
}
