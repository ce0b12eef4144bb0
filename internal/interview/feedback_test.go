package interview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-agent/internal/types"
)

func TestRenderFeedback_SectionOrder(t *testing.T) {
	summary := &types.Summary{
		OverallAssessment:       "Strong performance overall.",
		KeyStrengths:            []string{"clear explanations", "depth"},
		AreasForImprovement:     []string{"system design"},
		SpecificRecommendations: []string{"practice whiteboarding"},
		NextSteps:               "Schedule a mock interview.",
		IndustryComparison:      "Above the mid-level bar.",
	}

	text := RenderFeedback(summary)

	order := []string{
		headerAssessment, headerStrengths, headerImprovements,
		headerRecommendations, headerNextSteps, headerComparison,
	}
	prev := -1
	for _, header := range order {
		pos := strings.Index(text, header)
		require.GreaterOrEqual(t, pos, 0, "missing section %s", header)
		assert.Greater(t, pos, prev, "section %s out of order", header)
		prev = pos
	}

	assert.Contains(t, text, "- clear explanations")
	assert.Contains(t, text, "- practice whiteboarding")
}

func TestRenderFeedback_OmitsEmptySections(t *testing.T) {
	text := RenderFeedback(&types.Summary{OverallAssessment: "Fine."})

	assert.Contains(t, text, headerAssessment)
	assert.NotContains(t, text, headerStrengths)
	assert.NotContains(t, text, headerNextSteps)
}

func TestRenderFeedback_Nil(t *testing.T) {
	assert.Equal(t, "", RenderFeedback(nil))
}

func TestFeedbackRoundTrip(t *testing.T) {
	original := &types.Summary{
		OverallAssessment:       "Consistent and thoughtful.",
		KeyStrengths:            []string{"fundamentals", "communication"},
		AreasForImprovement:     []string{"concurrency", "testing discipline"},
		SpecificRecommendations: []string{"read production code"},
		NextSteps:               "Target senior-level practice questions.",
		IndustryComparison:      "Competitive for mid-level roles.",
	}

	parsed := ParseFeedback(RenderFeedback(original))

	assert.Equal(t, original.OverallAssessment, parsed.OverallAssessment)
	assert.Equal(t, original.KeyStrengths, parsed.KeyStrengths)
	assert.Equal(t, original.AreasForImprovement, parsed.AreasForImprovement)
	assert.Equal(t, original.SpecificRecommendations, parsed.SpecificRecommendations)
	assert.Equal(t, original.NextSteps, parsed.NextSteps)
	assert.Equal(t, original.IndustryComparison, parsed.IndustryComparison)
}

func TestParseFeedback_FreeFormText(t *testing.T) {
	parsed := ParseFeedback("Great interview. Keep it up.")

	assert.Equal(t, "Great interview. Keep it up.", parsed.OverallAssessment)
	assert.Empty(t, parsed.KeyStrengths)
}

func TestParseFeedback_Empty(t *testing.T) {
	parsed := ParseFeedback("  \n ")
	assert.NotNil(t, parsed)
	assert.Empty(t, parsed.OverallAssessment)
}
