// Package interview orchestrates interview sessions: question progression,
// answer scoring, and final aggregation. Backend failures never surface to
// the candidate; fallback content is substituted and the failure is logged.
package interview

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/interview-agent/internal/ai"
	"github.com/jonathan/interview-agent/internal/db"
	"github.com/jonathan/interview-agent/internal/fallback"
	"github.com/jonathan/interview-agent/internal/types"
)

// MaxQuestions is the fixed number of questions per interview.
const MaxQuestions = 8

// skippedFeedback is stored on answers the candidate skipped.
const skippedFeedback = "Question was skipped."

// Store is the persistence contract consumed by the orchestrator. Getters
// return (nil, nil) when no record matches.
type Store interface {
	CreateInterview(ctx context.Context, userID, domainID uuid.UUID, difficulty string, durationMinutes int) (*db.Interview, error)
	GetInterview(ctx context.Context, id uuid.UUID) (*db.Interview, error)
	CompleteInterview(ctx context.Context, id uuid.UUID, overallScore int, feedback string) (*db.Interview, error)
	UpdateInterviewStatus(ctx context.Context, id uuid.UUID, status string) error
	CreateQuestion(ctx context.Context, input db.CreateQuestionInput) (*db.Question, error)
	GetQuestion(ctx context.Context, id uuid.UUID) (*db.Question, error)
	CreateAnswer(ctx context.Context, input db.CreateAnswerInput) (*db.Answer, error)
	ListAnswers(ctx context.Context, interviewID uuid.UUID) ([]db.Answer, error)
	GetDomain(ctx context.Context, id uuid.UUID) (*db.Domain, error)
}

// Backend is the reasoning contract satisfied by internal/ai. A nil Backend
// routes every turn through the fallback engine.
type Backend interface {
	GenerateQuestion(ctx context.Context, req ai.QuestionRequest) (*ai.QuestionResult, error)
	EvaluateAnswer(ctx context.Context, req ai.EvaluationRequest) (*types.Evaluation, error)
	SummarizeInterview(ctx context.Context, req ai.SummaryRequest) (*types.Summary, error)
}

// Service runs interview sessions. It is stateless; all session state lives
// in the store, so concurrent interviews are safe while calls within one
// interview are expected to be sequential.
type Service struct {
	store   Store
	backend Backend
}

// New creates an orchestrator over the given store and backend.
func New(store Store, backend Backend) *Service {
	return &Service{store: store, backend: backend}
}

// Start begins a new interview session in the in_progress state.
func (s *Service) Start(ctx context.Context, req types.StartInterviewRequest) (*db.Interview, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid start request: %w", err)
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = 30
	}

	domain, err := s.store.GetDomain(ctx, req.DomainID)
	if err != nil {
		return nil, err
	}
	if domain == nil {
		return nil, fmt.Errorf("domain not found: %s", req.DomainID)
	}

	iv, err := s.store.CreateInterview(ctx, req.UserID, req.DomainID, req.Difficulty, req.DurationMinutes)
	if err != nil {
		return nil, err
	}

	log.Printf("[INTERVIEW] Started interview %s (domain=%s difficulty=%s)", iv.ID, domain.Name, iv.Difficulty)
	return iv, nil
}

// NextQuestion generates, persists, and returns the next question for the
// interview. Returns (nil, nil) once the question limit is reached. A
// backend failure substitutes a fallback question; the turn never fails for
// that reason.
func (s *Service) NextQuestion(ctx context.Context, interviewID uuid.UUID) (*db.Question, error) {
	iv, err := s.activeInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	answers, err := s.store.ListAnswers(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if len(answers) >= MaxQuestions {
		return nil, nil
	}

	turn := len(answers) + 1
	questionType := questionTypeForTurn(turn)
	domainName := s.domainName(ctx, iv.DomainID)

	text := ""
	if s.backend != nil {
		prior, err := s.recentExchanges(ctx, answers)
		if err != nil {
			return nil, err
		}

		result, genErr := s.backend.GenerateQuestion(ctx, ai.QuestionRequest{
			Domain:         domainName,
			Difficulty:     iv.Difficulty,
			QuestionType:   questionType,
			PriorAnswers:   prior,
			TurnNumber:     turn,
			TotalQuestions: MaxQuestions,
		})
		if genErr != nil {
			log.Printf("[INTERVIEW] Question generation failed for interview %s turn %d: %v, using fallback", interviewID, turn, genErr)
		} else {
			text = result.Text
		}
	}
	if text == "" {
		text = fallback.Question(domainName, iv.Difficulty, questionType)
	}

	return s.store.CreateQuestion(ctx, db.CreateQuestionInput{
		DomainID:   iv.DomainID,
		Text:       text,
		Difficulty: iv.Difficulty,
		Type:       questionType,
		Keywords:   ai.ExtractTopics(text),
	})
}

// SubmitAnswer records one answer and returns it with its evaluation.
// Skipped answers are stored with score 0 and never reach the backend. A
// backend failure substitutes the fallback evaluation.
func (s *Service) SubmitAnswer(ctx context.Context, req types.SubmitAnswerRequest) (*db.Answer, *types.Evaluation, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid answer request: %w", err)
	}

	iv, err := s.activeInterview(ctx, req.InterviewID)
	if err != nil {
		return nil, nil, err
	}

	answers, err := s.store.ListAnswers(ctx, req.InterviewID)
	if err != nil {
		return nil, nil, err
	}
	if len(answers) >= MaxQuestions {
		return nil, nil, ErrInterviewFull
	}
	for _, a := range answers {
		if a.QuestionID == req.QuestionID {
			return nil, nil, ErrQuestionAlreadyAnswered
		}
	}

	question, err := s.store.GetQuestion(ctx, req.QuestionID)
	if err != nil {
		return nil, nil, err
	}
	if question == nil {
		return nil, nil, ErrQuestionNotFound
	}

	eval := s.evaluate(ctx, iv, question, req)

	answer, err := s.store.CreateAnswer(ctx, db.CreateAnswerInput{
		InterviewID:      req.InterviewID,
		QuestionID:       req.QuestionID,
		Text:             req.Text,
		Score:            eval.Score,
		Feedback:         eval.DetailedFeedback,
		TimeTakenSeconds: req.TimeTakenSeconds,
	})
	if err != nil {
		return nil, nil, err
	}

	return answer, eval, nil
}

// evaluate produces the evaluation for a submission: skipped answers get the
// fixed zero-score evaluation, everything else goes to the backend with the
// fallback engine as substitute.
func (s *Service) evaluate(ctx context.Context, iv *db.Interview, question *db.Question, req types.SubmitAnswerRequest) *types.Evaluation {
	if req.Skipped {
		return &types.Evaluation{
			Score:            0,
			DetailedFeedback: skippedFeedback,
			ImprovementAreas: []string{"Attempt every question, even with a partial answer"},
		}
	}

	if s.backend != nil {
		eval, err := s.backend.EvaluateAnswer(ctx, ai.EvaluationRequest{
			Question:         question.Text,
			Answer:           req.Text,
			Domain:           s.domainName(ctx, iv.DomainID),
			Difficulty:       iv.Difficulty,
			ExpectedKeywords: question.Keywords,
		})
		if err == nil {
			return eval
		}
		log.Printf("[INTERVIEW] Answer evaluation failed for interview %s: %v, using fallback", iv.ID, err)
	}

	return fallback.Evaluate(req.Text)
}

// Complete finishes an interview: computes the overall score, produces the
// final summary, and persists both. Completing an already-completed
// interview is a no-op that returns the stored result; cancelled interviews
// are rejected.
func (s *Service) Complete(ctx context.Context, interviewID uuid.UUID) (*db.Interview, *types.Summary, error) {
	iv, err := s.store.GetInterview(ctx, interviewID)
	if err != nil {
		return nil, nil, err
	}
	if iv == nil {
		return nil, nil, ErrInterviewNotFound
	}

	switch iv.Status {
	case types.StatusCompleted:
		return iv, storedSummary(iv), nil
	case types.StatusCancelled:
		return nil, nil, ErrInterviewFinished
	}

	answers, err := s.store.ListAnswers(ctx, interviewID)
	if err != nil {
		return nil, nil, err
	}

	overall := truncatedMean(scores(answers))

	summary := s.summarize(ctx, iv, answers, overall)

	completed, err := s.store.CompleteInterview(ctx, interviewID, overall, RenderFeedback(summary))
	if err != nil {
		return nil, nil, err
	}

	log.Printf("[INTERVIEW] Completed interview %s (overall=%d answers=%d)", interviewID, overall, len(answers))
	return completed, summary, nil
}

// summarize asks the backend for the final analysis, substituting the
// fallback summary on failure.
func (s *Service) summarize(ctx context.Context, iv *db.Interview, answers []db.Answer, overall int) *types.Summary {
	if s.backend == nil {
		return fallback.Summary(overall)
	}

	pairs, err := s.exchanges(ctx, answers)
	if err != nil {
		log.Printf("[INTERVIEW] Loading exchanges failed for interview %s: %v, using fallback summary", iv.ID, err)
		return fallback.Summary(overall)
	}

	totalTime := 0
	for _, a := range answers {
		if a.TimeTakenSeconds != nil {
			totalTime += *a.TimeTakenSeconds
		}
	}

	summary, err := s.backend.SummarizeInterview(ctx, ai.SummaryRequest{
		Domain:           s.domainName(ctx, iv.DomainID),
		Difficulty:       iv.Difficulty,
		OverallScore:     overall,
		Answers:          qaPairs(pairs),
		TotalTimeSeconds: totalTime,
	})
	if err != nil {
		log.Printf("[INTERVIEW] Summary generation failed for interview %s: %v, using fallback", iv.ID, err)
		return fallback.Summary(overall)
	}
	return summary
}

// Cancel terminates an in-progress interview early.
func (s *Service) Cancel(ctx context.Context, interviewID uuid.UUID) error {
	if _, err := s.activeInterview(ctx, interviewID); err != nil {
		return err
	}

	if err := s.store.UpdateInterviewStatus(ctx, interviewID, types.StatusCancelled); err != nil {
		return err
	}

	log.Printf("[INTERVIEW] Cancelled interview %s", interviewID)
	return nil
}

// Results builds the aggregate report for an interview in any state.
func (s *Service) Results(ctx context.Context, interviewID uuid.UUID) (*types.Report, error) {
	iv, err := s.store.GetInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if iv == nil {
		return nil, ErrInterviewNotFound
	}

	answers, err := s.store.ListAnswers(ctx, interviewID)
	if err != nil {
		return nil, err
	}

	exchanges, err := s.exchanges(ctx, answers)
	if err != nil {
		return nil, err
	}

	overall := truncatedMean(scores(answers))
	if iv.OverallScore != nil {
		overall = *iv.OverallScore
	}

	var technicalScores, behavioralScores []int
	totalWords, totalTime, timed := 0, 0, 0
	for _, ex := range exchanges {
		if ex.question.Type == types.QuestionTypeTechnical {
			technicalScores = append(technicalScores, ex.answer.Score)
		} else {
			behavioralScores = append(behavioralScores, ex.answer.Score)
		}
		totalWords += len(strings.Fields(ex.answer.Text))
		if ex.answer.TimeTakenSeconds != nil {
			totalTime += *ex.answer.TimeTakenSeconds
			timed++
		}
	}

	avgTime := 0
	if timed > 0 {
		avgTime = totalTime / timed
	}

	report := &types.Report{
		InterviewID:           iv.ID,
		DomainName:            s.domainName(ctx, iv.DomainID),
		Difficulty:            iv.Difficulty,
		Status:                iv.Status,
		OverallScore:          overall,
		TechnicalScore:        truncatedMean(technicalScores),
		CommunicationScore:    truncatedMean(behavioralScores),
		ProblemSolvingScore:   clampMetric(overall - 1),
		ClarityScore:          clampMetric(overall + 1),
		TotalQuestions:        len(answers),
		TotalWords:            totalWords,
		AvgResponseTimeSecs:   avgTime,
		CompletionRatePercent: len(answers) * 100 / MaxQuestions,
		DurationMinutes:       iv.DurationMinutes,
	}
	if iv.Feedback != nil && *iv.Feedback != "" {
		report.Feedback = ParseFeedback(*iv.Feedback)
	}
	return report, nil
}

// activeInterview loads an interview and rejects terminal states.
func (s *Service) activeInterview(ctx context.Context, id uuid.UUID) (*db.Interview, error) {
	iv, err := s.store.GetInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv == nil {
		return nil, ErrInterviewNotFound
	}
	if iv.Status != types.StatusInProgress {
		return nil, ErrInterviewFinished
	}
	return iv, nil
}

// domainName resolves the domain's display name, defaulting when the row is
// missing so question generation can still proceed.
func (s *Service) domainName(ctx context.Context, domainID uuid.UUID) string {
	domain, err := s.store.GetDomain(ctx, domainID)
	if err != nil || domain == nil {
		return fallback.DefaultDomain
	}
	return domain.Name
}

// exchange pairs an answer with the question it responded to.
type exchange struct {
	question db.Question
	answer   db.Answer
}

// exchanges loads the question row for every answer concurrently, preserving
// answer order.
func (s *Service) exchanges(ctx context.Context, answers []db.Answer) ([]exchange, error) {
	result := make([]exchange, len(answers))

	g, gctx := errgroup.WithContext(ctx)
	for i, a := range answers {
		g.Go(func() error {
			q, err := s.store.GetQuestion(gctx, a.QuestionID)
			if err != nil {
				return err
			}
			if q == nil {
				return fmt.Errorf("%w: %s", ErrQuestionNotFound, a.QuestionID)
			}
			result[i] = exchange{question: *q, answer: a}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// recentExchanges returns the last few Q/A pairs as prompt context.
func (s *Service) recentExchanges(ctx context.Context, answers []db.Answer) ([]types.QAPair, error) {
	start := len(answers) - 3
	if start < 0 {
		start = 0
	}

	exchanges, err := s.exchanges(ctx, answers[start:])
	if err != nil {
		return nil, err
	}
	return qaPairs(exchanges), nil
}

// qaPairs converts exchanges into the cross-package Q/A representation.
func qaPairs(exchanges []exchange) []types.QAPair {
	pairs := make([]types.QAPair, len(exchanges))
	for i, ex := range exchanges {
		pairs[i] = types.QAPair{
			Question:         ex.question.Text,
			Answer:           ex.answer.Text,
			Score:            ex.answer.Score,
			TimeTakenSeconds: ex.answer.TimeTakenSeconds,
		}
	}
	return pairs
}

// storedSummary re-parses the persisted narrative for an already-completed
// interview.
func storedSummary(iv *db.Interview) *types.Summary {
	if iv.Feedback == nil {
		return &types.Summary{}
	}
	return ParseFeedback(*iv.Feedback)
}

// questionTypeForTurn implements the turn progression policy: the opener is
// behavioral, turns 2, 4, and 6 are technical, remaining odd turns are
// behavioral and remaining even turns technical.
func questionTypeForTurn(turn int) string {
	switch {
	case turn == 1:
		return types.QuestionTypeBehavioral
	case turn == 2 || turn == 4 || turn == 6:
		return types.QuestionTypeTechnical
	case turn%2 == 1:
		return types.QuestionTypeBehavioral
	default:
		return types.QuestionTypeTechnical
	}
}

// scores extracts answer scores in submission order.
func scores(answers []db.Answer) []int {
	out := make([]int, len(answers))
	for i, a := range answers {
		out[i] = a.Score
	}
	return out
}

// truncatedMean is the integer-truncated mean, 0 for empty input.
func truncatedMean(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return sum / len(values)
}

// clampMetric bounds a derived metric to [0,10].
func clampMetric(v int) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
