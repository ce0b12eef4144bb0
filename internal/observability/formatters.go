// Package observability provides formatted terminal output for interview
// sessions and reports.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/interview-agent/internal/db"
	"github.com/jonathan/interview-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the interactive session
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintQuestion outputs one interview question with its turn position.
func (p *Printer) PrintQuestion(turn, total int, q *db.Question) {
	if q == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:       %s\n", q.Type))
	sb.WriteString(fmt.Sprintf("Difficulty: %s\n", q.Difficulty))
	sb.WriteString("\n")
	for _, line := range wrap(q.Text, boxWidth-4) {
		sb.WriteString(line + "\n")
	}

	p.printBox(fmt.Sprintf("QUESTION %d/%d", turn, total), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEvaluation outputs the structured evaluation of one answer.
func (p *Printer) PrintEvaluation(eval *types.Evaluation) {
	if eval == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d/10\n\n", eval.Score))

	for _, line := range wrap(eval.DetailedFeedback, boxWidth-4) {
		sb.WriteString(line + "\n")
	}

	if len(eval.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		count := min(len(eval.Strengths), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", eval.Strengths[i]))
		}
	}

	if len(eval.ImprovementAreas) > 0 {
		sb.WriteString("\nTo improve:\n")
		count := min(len(eval.ImprovementAreas), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", eval.ImprovementAreas[i]))
		}
	}

	if eval.FollowUpSuggestion != "" {
		sb.WriteString(fmt.Sprintf("\nFollow-up: %s\n", eval.FollowUpSuggestion))
	}

	p.printBox("EVALUATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs the final aggregate report for an interview.
func (p *Printer) PrintReport(report *types.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Domain:     %s\n", report.DomainName))
	sb.WriteString(fmt.Sprintf("Difficulty: %s\n", report.Difficulty))
	sb.WriteString(fmt.Sprintf("Status:     %s\n", report.Status))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Overall:          %d/10\n", report.OverallScore))
	sb.WriteString(fmt.Sprintf("Technical:        %d/10\n", report.TechnicalScore))
	sb.WriteString(fmt.Sprintf("Communication:    %d/10\n", report.CommunicationScore))
	sb.WriteString(fmt.Sprintf("Problem solving:  %d/10\n", report.ProblemSolvingScore))
	sb.WriteString(fmt.Sprintf("Clarity:          %d/10\n", report.ClarityScore))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Questions answered: %d (%d%% complete)\n", report.TotalQuestions, report.CompletionRatePercent))
	sb.WriteString(fmt.Sprintf("Total words:        %d\n", report.TotalWords))
	if report.AvgResponseTimeSecs > 0 {
		sb.WriteString(fmt.Sprintf("Avg response time:  %ds\n", report.AvgResponseTimeSecs))
	}

	p.printBox("INTERVIEW REPORT", strings.TrimSuffix(sb.String(), "\n"))

	if report.Feedback != nil {
		p.PrintSummary(report.Feedback)
	}
}

// PrintSummary outputs the structured end-of-interview assessment.
func (p *Printer) PrintSummary(summary *types.Summary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	for _, line := range wrap(summary.OverallAssessment, boxWidth-4) {
		sb.WriteString(line + "\n")
	}

	writeList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("\n" + title + "\n")
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("  • %s\n", item))
		}
	}
	writeList("Strengths:", summary.KeyStrengths)
	writeList("Areas for improvement:", summary.AreasForImprovement)
	writeList("Recommendations:", summary.SpecificRecommendations)

	if summary.NextSteps != "" {
		sb.WriteString("\nNext steps:\n")
		for _, line := range wrap(summary.NextSteps, boxWidth-4) {
			sb.WriteString(line + "\n")
		}
	}
	if summary.IndustryComparison != "" {
		sb.WriteString("\n")
		for _, line := range wrap(summary.IndustryComparison, boxWidth-4) {
			sb.WriteString(line + "\n")
		}
	}

	p.printBox("FINAL ASSESSMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap splits text into lines no longer than width, breaking on spaces.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
