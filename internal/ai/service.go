// Package ai implements the reasoning backend client: it translates
// interview state into prompts for a remote text-generation service and
// parses the replies into structured results. Every operation either
// succeeds or returns a typed *BackendError; it never blocks the interview
// flow beyond its per-operation timeout and never retries, because a live
// candidate is waiting and the caller has a deterministic fallback.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/interview-agent/internal/llm"
	"github.com/jonathan/interview-agent/internal/prompts"
	"github.com/jonathan/interview-agent/internal/schemas"
	"github.com/jonathan/interview-agent/internal/types"
)

// Per-operation deadlines. Summary analysis is allowed longer because its
// prompt and output are the largest.
const (
	questionTimeout   = 30 * time.Second
	evaluationTimeout = 30 * time.Second
	summaryTimeout    = 45 * time.Second
)

// contextWindow is how many prior exchanges feed the topic-avoidance context.
const contextWindow = 3

// scorePattern matches the first standalone 1-10 integer in free text.
var scorePattern = regexp.MustCompile(`\b(10|[1-9])\b`)

// Service is the reasoning backend client. A Service constructed with a nil
// llm.Client reports ReasonNoCredential on every call, which keeps the
// "no API key configured" case on the same code path as a network failure.
type Service struct {
	client llm.Client
}

// New creates a backend client around the given LLM client. client may be
// nil when no credential is configured.
func New(client llm.Client) *Service {
	return &Service{client: client}
}

// Configured reports whether a backend credential was supplied.
func (s *Service) Configured() bool {
	return s.client != nil
}

// QuestionRequest describes one question-generation turn.
type QuestionRequest struct {
	Domain         string
	Difficulty     string
	QuestionType   string
	PriorAnswers   []types.QAPair
	TurnNumber     int
	TotalQuestions int
}

// QuestionResult is a generated question plus its provenance.
type QuestionResult struct {
	Text             string
	GeneratedByModel bool
	Model            string
}

// EvaluationRequest describes one answer to score.
type EvaluationRequest struct {
	Question         string
	Answer           string
	Domain           string
	Difficulty       string
	ExpectedKeywords []string
}

// SummaryRequest carries the whole interview for final analysis.
type SummaryRequest struct {
	Domain           string
	Difficulty       string
	OverallScore     int
	Answers          []types.QAPair
	TotalTimeSeconds int
}

// GenerateQuestion asks the backend for the next interview question. The
// prompt steers the question focus by turn number and instructs the model to
// avoid topics already covered by the most recent exchanges.
func (s *Service) GenerateQuestion(ctx context.Context, req QuestionRequest) (*QuestionResult, error) {
	if s.client == nil {
		return nil, &BackendError{Reason: ReasonNoCredential, Op: "generate-question"}
	}

	focus, greeting := turnGuidance(req.TurnNumber)
	avoidTopics := priorTopics(req.PriorAnswers)

	contextLine := ""
	if len(avoidTopics) > 0 {
		contextLine = fmt.Sprintf("Previously discussed topics: %s.\n", strings.Join(avoidTopics, ", "))
	}

	prompt := prompts.Format(prompts.MustGet("interview.json", "generate_question"), map[string]string{
		"Domain":         req.Domain,
		"Difficulty":     req.Difficulty,
		"QuestionType":   req.QuestionType,
		"QuestionFocus":  focus,
		"Greeting":       greeting,
		"Context":        contextLine,
		"AvoidTopics":    strings.Join(avoidTopics, ", "),
		"TurnNumber":     strconv.Itoa(req.TurnNumber),
		"TotalQuestions": strconv.Itoa(req.TotalQuestions),
	})

	callCtx, cancel := context.WithTimeout(ctx, questionTimeout)
	defer cancel()

	text, err := s.client.GenerateContent(callCtx, prompt, llm.TierStandard, llm.Options{
		Temperature:     0.8, // favor question variety
		MaxOutputTokens: 300,
	})
	if err != nil {
		return nil, s.classify("generate-question", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &BackendError{Reason: ReasonEmptyResponse, Op: "generate-question"}
	}

	return &QuestionResult{
		Text:             text,
		GeneratedByModel: true,
		Model:            s.client.GetModel(llm.TierStandard),
	}, nil
}

// EvaluateAnswer asks the backend to score one answer. The backend is asked
// for strict JSON; a reply that is not valid against the evaluation schema
// degrades to heuristic score extraction from the raw text rather than
// failing. The returned score is always clamped to [1,10].
func (s *Service) EvaluateAnswer(ctx context.Context, req EvaluationRequest) (*types.Evaluation, error) {
	if s.client == nil {
		return nil, &BackendError{Reason: ReasonNoCredential, Op: "evaluate-answer"}
	}

	prompt := prompts.Format(prompts.MustGet("interview.json", "evaluate_answer"), map[string]string{
		"Question":         req.Question,
		"Answer":           req.Answer,
		"Domain":           req.Domain,
		"Difficulty":       req.Difficulty,
		"ExpectedKeywords": strings.Join(req.ExpectedKeywords, ", "),
	})

	callCtx, cancel := context.WithTimeout(ctx, evaluationTimeout)
	defer cancel()

	text, err := s.client.GenerateJSON(callCtx, prompt, llm.TierStandard, llm.Options{
		Temperature:     0.2, // favor scoring consistency
		MaxOutputTokens: 500,
	})
	if err != nil {
		return nil, s.classify("evaluate-answer", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &BackendError{Reason: ReasonEmptyResponse, Op: "evaluate-answer"}
	}

	return parseEvaluation(text), nil
}

// parseEvaluation turns backend output into an Evaluation, degrading to
// text-based score extraction when the payload is malformed.
func parseEvaluation(text string) *types.Evaluation {
	payload := []byte(llm.CleanJSONBlock(text))

	var eval types.Evaluation
	if schemas.ValidateEvaluation(payload) == nil && json.Unmarshal(payload, &eval) == nil {
		eval.Score = clampScore(eval.Score)
		return &eval
	}

	return &types.Evaluation{
		Score:            ExtractScore(text),
		DetailedFeedback: text,
		Strengths: []string{
			"Answer provided",
			"Attempted to address the question",
		},
		ImprovementAreas:   []string{"Review the detailed feedback above"},
		FollowUpSuggestion: "Try to provide more specific examples in your next answer.",
	}
}

// SummarizeInterview asks the backend for the end-of-interview analysis.
// Malformed payloads degrade to a summary built from the raw reply.
func (s *Service) SummarizeInterview(ctx context.Context, req SummaryRequest) (*types.Summary, error) {
	if s.client == nil {
		return nil, &BackendError{Reason: ReasonNoCredential, Op: "summarize-interview"}
	}

	prompt := prompts.Format(prompts.MustGet("interview.json", "summarize_interview"), map[string]string{
		"Domain":          req.Domain,
		"Difficulty":      req.Difficulty,
		"OverallScore":    strconv.Itoa(req.OverallScore),
		"TotalQuestions":  strconv.Itoa(len(req.Answers)),
		"AnswersAnalysis": answersAnalysis(req.Answers),
	})

	callCtx, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	text, err := s.client.GenerateJSON(callCtx, prompt, llm.TierAdvanced, llm.Options{
		Temperature:     0.3,
		MaxOutputTokens: 800,
	})
	if err != nil {
		return nil, s.classify("summarize-interview", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &BackendError{Reason: ReasonEmptyResponse, Op: "summarize-interview"}
	}

	return parseSummary(text, req), nil
}

// parseSummary turns backend output into a Summary, degrading to a summary
// assembled around the raw reply when the payload is malformed.
func parseSummary(text string, req SummaryRequest) *types.Summary {
	payload := []byte(llm.CleanJSONBlock(text))

	var summary types.Summary
	if schemas.ValidateSummary(payload) == nil && json.Unmarshal(payload, &summary) == nil {
		return &summary
	}

	return &types.Summary{
		OverallAssessment: truncate(text, 300),
		KeyStrengths: []string{
			"Completed the interview successfully",
			"Demonstrated engagement",
			"Provided thoughtful responses",
		},
		AreasForImprovement: []string{
			"Review detailed AI feedback",
			"Focus on specific examples",
			"Practice technical explanations",
		},
		SpecificRecommendations: []string{
			"Take more practice interviews",
			"Study core domain concepts",
			"Prepare concrete examples",
		},
		NextSteps:          "Continue practicing with similar interview questions and focus on providing more specific, detailed examples from your experience.",
		IndustryComparison: fmt.Sprintf("This performance shows %s potential for %s roles.", potentialLabel(req.OverallScore), req.Domain),
	}
}

// ExtractScore pulls the first standalone score between 1 and 10 out of free
// text, defaulting to a middle score when none is present.
func ExtractScore(text string) int {
	if match := scorePattern.FindString(text); match != "" {
		score, err := strconv.Atoi(match)
		if err == nil {
			return clampScore(score)
		}
	}
	return 5
}

// classify maps an LLM client error to a typed backend failure.
func (s *Service) classify(op string, err error) *BackendError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &BackendError{Reason: ReasonTimeout, Op: op, Err: err}
	}
	return &BackendError{Reason: ReasonTransport, Op: op, Err: err}
}

// turnGuidance returns the focus instruction and spoken greeting for a turn,
// escalating from warm-up through scenarios to advanced design topics.
func turnGuidance(turnNumber int) (focus, greeting string) {
	switch {
	case turnNumber == 1:
		return "Start with a warm, conversational foundational question", "Let's start with: "
	case turnNumber <= 3:
		return "Focus on practical application and hands-on experience", "Now let me ask you: "
	case turnNumber <= 6:
		return "Ask about problem-solving and real-world scenarios", "Here's an interesting challenge: "
	default:
		return "Explore advanced topics and leadership/design decisions", "Let's dive deeper: "
	}
}

// priorTopics extracts deduplicated topics from the questions of the most
// recent exchanges.
func priorTopics(priorAnswers []types.QAPair) []string {
	start := len(priorAnswers) - contextWindow
	if start < 0 {
		start = 0
	}

	seen := make(map[string]struct{})
	var topics []string
	for _, qa := range priorAnswers[start:] {
		for _, topic := range ExtractTopics(qa.Question) {
			if _, dup := seen[topic]; dup {
				continue
			}
			seen[topic] = struct{}{}
			topics = append(topics, topic)
		}
	}
	return topics
}

// answersAnalysis renders the per-question breakdown for the summary prompt.
// Only the first six exchanges are included to bound the prompt size.
func answersAnalysis(answers []types.QAPair) string {
	var sb strings.Builder
	for i, qa := range answers {
		if i >= 6 {
			break
		}
		fmt.Fprintf(&sb, "Q%d (Score: %d/10): %s\nCandidate Response: %s\n",
			i+1, qa.Score, truncate(qa.Question, 80), truncate(qa.Answer, 100))
	}
	return sb.String()
}

// potentialLabel maps an overall score to the coarse potential descriptor
// used in degraded summaries.
func potentialLabel(overallScore int) string {
	labels := []string{"developing", "emerging", "solid", "strong"}
	idx := overallScore / 3
	if idx < 0 {
		idx = 0
	}
	if idx > 3 {
		idx = 3
	}
	return labels[idx]
}

// truncate shortens text to at most n bytes, appending an ellipsis marker.
func truncate(text string, n int) string {
	if len(text) <= n {
		return text
	}
	return text[:n] + "..."
}

// clampScore bounds a score to the closed range [1,10].
func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}
