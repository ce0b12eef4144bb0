package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/interview-agent/internal/db"
	"github.com/jonathan/interview-agent/internal/types"
)

func TestPrintQuestion(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintQuestion(3, 8, &db.Question{
		Text:       "Tell me about a production incident you handled end to end.",
		Type:       types.QuestionTypeBehavioral,
		Difficulty: types.DifficultyIntermediate,
	})
	output := buf.String()

	assert.Contains(t, output, "QUESTION 3/8")
	assert.Contains(t, output, "behavioral")
	assert.Contains(t, output, "intermediate")
	assert.Contains(t, output, "production incident")
}

func TestPrintQuestion_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintQuestion(1, 8, nil)

	assert.Empty(t, buf.String())
}

func TestPrintEvaluation(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintEvaluation(&types.Evaluation{
		Score:              8,
		DetailedFeedback:   "Clear and well structured.",
		Strengths:          []string{"specific examples"},
		ImprovementAreas:   []string{"mention tradeoffs"},
		FollowUpSuggestion: "How would you scale it?",
	})
	output := buf.String()

	assert.Contains(t, output, "EVALUATION")
	assert.Contains(t, output, "Score: 8/10")
	assert.Contains(t, output, "specific examples")
	assert.Contains(t, output, "mention tradeoffs")
	assert.Contains(t, output, "How would you scale it?")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(&types.Report{
		DomainName:            "Software Engineering",
		Difficulty:            types.DifficultyExpert,
		Status:                types.StatusCompleted,
		OverallScore:          7,
		TechnicalScore:        8,
		CommunicationScore:    6,
		ProblemSolvingScore:   6,
		ClarityScore:          8,
		TotalQuestions:        8,
		TotalWords:            640,
		CompletionRatePercent: 100,
		Feedback: &types.Summary{
			OverallAssessment: "Solid performance throughout.",
			KeyStrengths:      []string{"depth"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "INTERVIEW REPORT")
	assert.Contains(t, output, "Software Engineering")
	assert.Contains(t, output, "Overall:          7/10")
	assert.Contains(t, output, "100% complete")
	assert.Contains(t, output, "FINAL ASSESSMENT")
	assert.Contains(t, output, "Solid performance")
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four five six seven", 10)

	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 10)
	}
	assert.Equal(t, []string{""}, wrap("", 10))
}
