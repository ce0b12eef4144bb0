package interview

import (
	"strings"

	"github.com/jonathan/interview-agent/internal/types"
)

// Section headers of the persisted narrative feedback. Order is fixed so the
// narrative can be re-parsed into a structured summary.
const (
	headerAssessment      = "OVERALL ASSESSMENT"
	headerStrengths       = "KEY STRENGTHS"
	headerImprovements    = "AREAS FOR IMPROVEMENT"
	headerRecommendations = "RECOMMENDATIONS"
	headerNextSteps       = "NEXT STEPS"
	headerComparison      = "INDUSTRY COMPARISON"
)

// RenderFeedback flattens a summary into the narrative text stored on the
// interview record. Sections appear in a fixed order; list sections render
// one "- " item per line. Empty sections are omitted.
func RenderFeedback(summary *types.Summary) string {
	if summary == nil {
		return ""
	}

	var sb strings.Builder

	writeText := func(header, text string) {
		if strings.TrimSpace(text) == "" {
			return
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(header + "\n" + strings.TrimSpace(text) + "\n")
	}
	writeList := func(header string, items []string) {
		if len(items) == 0 {
			return
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(header + "\n")
		for _, item := range items {
			sb.WriteString("- " + strings.TrimSpace(item) + "\n")
		}
	}

	writeText(headerAssessment, summary.OverallAssessment)
	writeList(headerStrengths, summary.KeyStrengths)
	writeList(headerImprovements, summary.AreasForImprovement)
	writeList(headerRecommendations, summary.SpecificRecommendations)
	writeText(headerNextSteps, summary.NextSteps)
	writeText(headerComparison, summary.IndustryComparison)

	return sb.String()
}

// ParseFeedback re-parses a stored narrative back into a structured summary,
// best effort. Text outside any known section lands in the overall
// assessment so legacy free-form feedback still surfaces.
func ParseFeedback(text string) *types.Summary {
	summary := &types.Summary{}
	if strings.TrimSpace(text) == "" {
		return summary
	}

	setText := func(dst *string, line string) {
		if *dst == "" {
			*dst = line
		} else {
			*dst += "\n" + line
		}
	}

	section := headerAssessment
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case headerAssessment, headerStrengths, headerImprovements,
			headerRecommendations, headerNextSteps, headerComparison:
			section = line
			continue
		}

		item := strings.TrimPrefix(line, "- ")
		switch section {
		case headerStrengths:
			summary.KeyStrengths = append(summary.KeyStrengths, item)
		case headerImprovements:
			summary.AreasForImprovement = append(summary.AreasForImprovement, item)
		case headerRecommendations:
			summary.SpecificRecommendations = append(summary.SpecificRecommendations, item)
		case headerNextSteps:
			setText(&summary.NextSteps, line)
		case headerComparison:
			setText(&summary.IndustryComparison, line)
		default:
			setText(&summary.OverallAssessment, line)
		}
	}

	return summary
}
