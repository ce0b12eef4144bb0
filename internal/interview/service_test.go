package interview

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-agent/internal/ai"
	"github.com/jonathan/interview-agent/internal/db"
	"github.com/jonathan/interview-agent/internal/types"
)

// fakeStore is an in-memory Store for orchestrator tests.
type fakeStore struct {
	interviews map[uuid.UUID]*db.Interview
	questions  map[uuid.UUID]*db.Question
	answers    map[uuid.UUID][]db.Answer
	domains    map[uuid.UUID]*db.Domain
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		interviews: make(map[uuid.UUID]*db.Interview),
		questions:  make(map[uuid.UUID]*db.Question),
		answers:    make(map[uuid.UUID][]db.Answer),
		domains:    make(map[uuid.UUID]*db.Domain),
	}
}

func (f *fakeStore) addDomain(name string) *db.Domain {
	d := &db.Domain{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	f.domains[d.ID] = d
	return d
}

func (f *fakeStore) CreateInterview(_ context.Context, userID, domainID uuid.UUID, difficulty string, durationMinutes int) (*db.Interview, error) {
	iv := &db.Interview{
		ID:              uuid.New(),
		UserID:          userID,
		DomainID:        domainID,
		Difficulty:      difficulty,
		DurationMinutes: durationMinutes,
		Status:          types.StatusInProgress,
		StartedAt:       time.Now(),
	}
	f.interviews[iv.ID] = iv
	return iv, nil
}

func (f *fakeStore) GetInterview(_ context.Context, id uuid.UUID) (*db.Interview, error) {
	iv, ok := f.interviews[id]
	if !ok {
		return nil, nil
	}
	copied := *iv
	return &copied, nil
}

func (f *fakeStore) CompleteInterview(_ context.Context, id uuid.UUID, overallScore int, feedback string) (*db.Interview, error) {
	iv, ok := f.interviews[id]
	if !ok {
		return nil, fmt.Errorf("interview not found: %s", id)
	}
	now := time.Now()
	iv.Status = types.StatusCompleted
	iv.OverallScore = &overallScore
	iv.Feedback = &feedback
	iv.CompletedAt = &now
	copied := *iv
	return &copied, nil
}

func (f *fakeStore) UpdateInterviewStatus(_ context.Context, id uuid.UUID, status string) error {
	iv, ok := f.interviews[id]
	if !ok {
		return fmt.Errorf("interview not found: %s", id)
	}
	iv.Status = status
	return nil
}

func (f *fakeStore) CreateQuestion(_ context.Context, input db.CreateQuestionInput) (*db.Question, error) {
	q := &db.Question{
		ID:         uuid.New(),
		DomainID:   input.DomainID,
		Text:       input.Text,
		Difficulty: input.Difficulty,
		Type:       input.Type,
		Keywords:   input.Keywords,
		CreatedAt:  time.Now(),
	}
	f.questions[q.ID] = q
	return q, nil
}

func (f *fakeStore) GetQuestion(_ context.Context, id uuid.UUID) (*db.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, nil
	}
	copied := *q
	return &copied, nil
}

func (f *fakeStore) CreateAnswer(_ context.Context, input db.CreateAnswerInput) (*db.Answer, error) {
	a := db.Answer{
		ID:               uuid.New(),
		InterviewID:      input.InterviewID,
		QuestionID:       input.QuestionID,
		Text:             input.Text,
		Score:            input.Score,
		Feedback:         &input.Feedback,
		TimeTakenSeconds: input.TimeTakenSeconds,
		AnsweredAt:       time.Now(),
	}
	f.answers[input.InterviewID] = append(f.answers[input.InterviewID], a)
	return &a, nil
}

func (f *fakeStore) ListAnswers(_ context.Context, interviewID uuid.UUID) ([]db.Answer, error) {
	return append([]db.Answer(nil), f.answers[interviewID]...), nil
}

func (f *fakeStore) GetDomain(_ context.Context, id uuid.UUID) (*db.Domain, error) {
	d, ok := f.domains[id]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

// fakeBackend is a canned Backend that counts invocations.
type fakeBackend struct {
	questionText  string
	questionErr   error
	eval          *types.Evaluation
	evalErr       error
	summary       *types.Summary
	summaryErr    error
	questionCalls int
	evalCalls     int
	summaryCalls  int
	lastQuestion  ai.QuestionRequest
}

func (f *fakeBackend) GenerateQuestion(_ context.Context, req ai.QuestionRequest) (*ai.QuestionResult, error) {
	f.questionCalls++
	f.lastQuestion = req
	if f.questionErr != nil {
		return nil, f.questionErr
	}
	return &ai.QuestionResult{Text: f.questionText, GeneratedByModel: true, Model: "fake"}, nil
}

func (f *fakeBackend) EvaluateAnswer(_ context.Context, _ ai.EvaluationRequest) (*types.Evaluation, error) {
	f.evalCalls++
	if f.evalErr != nil {
		return nil, f.evalErr
	}
	return f.eval, nil
}

func (f *fakeBackend) SummarizeInterview(_ context.Context, _ ai.SummaryRequest) (*types.Summary, error) {
	f.summaryCalls++
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return f.summary, nil
}

func setup(t *testing.T, backend Backend) (*Service, *fakeStore, *db.Interview) {
	t.Helper()

	store := newFakeStore()
	domain := store.addDomain("Software Engineering")
	svc := New(store, backend)

	iv, err := svc.Start(context.Background(), types.StartInterviewRequest{
		UserID:     uuid.New(),
		DomainID:   domain.ID,
		Difficulty: types.DifficultyIntermediate,
	})
	require.NoError(t, err)
	return svc, store, iv
}

func TestStart(t *testing.T) {
	_, _, iv := setup(t, nil)

	assert.Equal(t, types.StatusInProgress, iv.Status)
	assert.Equal(t, 30, iv.DurationMinutes) // default duration
	assert.Nil(t, iv.OverallScore)
}

func TestStart_RejectsInvalidDifficulty(t *testing.T) {
	store := newFakeStore()
	domain := store.addDomain("Software Engineering")
	svc := New(store, nil)

	_, err := svc.Start(context.Background(), types.StartInterviewRequest{
		UserID:     uuid.New(),
		DomainID:   domain.ID,
		Difficulty: "impossible",
	})
	assert.Error(t, err)
}

func TestStart_UnknownDomain(t *testing.T) {
	svc := New(newFakeStore(), nil)

	_, err := svc.Start(context.Background(), types.StartInterviewRequest{
		UserID:     uuid.New(),
		DomainID:   uuid.New(),
		Difficulty: types.DifficultyBeginner,
	})
	assert.Error(t, err)
}

// answerTurn runs one next-question/submit-answer cycle.
func answerTurn(t *testing.T, svc *Service, ivID uuid.UUID, text string, skip bool) (*db.Question, *db.Answer, *types.Evaluation) {
	t.Helper()

	q, err := svc.NextQuestion(context.Background(), ivID)
	require.NoError(t, err)
	require.NotNil(t, q)

	answer, eval, err := svc.SubmitAnswer(context.Background(), types.SubmitAnswerRequest{
		InterviewID: ivID,
		QuestionID:  q.ID,
		Text:        text,
		Skipped:     skip,
	})
	require.NoError(t, err)
	return q, answer, eval
}

func TestNextQuestion_TurnTypeSequence(t *testing.T) {
	svc, _, iv := setup(t, nil)

	want := []string{
		types.QuestionTypeBehavioral,
		types.QuestionTypeTechnical,
		types.QuestionTypeBehavioral,
		types.QuestionTypeTechnical,
		types.QuestionTypeBehavioral,
		types.QuestionTypeTechnical,
		types.QuestionTypeBehavioral,
		types.QuestionTypeTechnical,
	}

	for turn, wantType := range want {
		q, _, _ := answerTurn(t, svc, iv.ID, "an answer with a few words", false)
		assert.Equal(t, wantType, q.Type, "turn %d", turn+1)
	}
}

func TestNextQuestion_NilAfterLimit(t *testing.T) {
	svc, _, iv := setup(t, nil)

	for i := 0; i < MaxQuestions; i++ {
		answerTurn(t, svc, iv.ID, "answer", false)
	}

	q, err := svc.NextQuestion(context.Background(), iv.ID)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestNextQuestion_FallbackOnBackendFailure(t *testing.T) {
	backend := &fakeBackend{questionErr: fmt.Errorf("backend down")}
	svc, _, iv := setup(t, backend)

	q, err := svc.NextQuestion(context.Background(), iv.ID)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.NotEmpty(t, q.Text)
	assert.Equal(t, 1, backend.questionCalls)
}

func TestNextQuestion_PassesContextToBackend(t *testing.T) {
	backend := &fakeBackend{
		questionText: "Generated question about caching strategies",
		eval:         &types.Evaluation{Score: 6, DetailedFeedback: "ok"},
	}
	svc, _, iv := setup(t, backend)

	for i := 0; i < 5; i++ {
		answerTurn(t, svc, iv.ID, "answer text", false)
	}

	assert.Equal(t, "Software Engineering", backend.lastQuestion.Domain)
	assert.Equal(t, 5, backend.lastQuestion.TurnNumber)
	assert.Equal(t, MaxQuestions, backend.lastQuestion.TotalQuestions)
	// Only the most recent exchanges ride along as context.
	assert.Len(t, backend.lastQuestion.PriorAnswers, 3)
}

func TestNextQuestion_NotFound(t *testing.T) {
	svc := New(newFakeStore(), nil)

	_, err := svc.NextQuestion(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestSubmitAnswer_SkippedNeverCallsBackend(t *testing.T) {
	backend := &fakeBackend{questionText: "q", eval: &types.Evaluation{Score: 9}}
	svc, _, iv := setup(t, backend)

	_, answer, eval := answerTurn(t, svc, iv.ID, "", true)

	assert.Equal(t, 0, answer.Score)
	assert.Equal(t, 0, eval.Score)
	assert.Equal(t, skippedFeedback, eval.DetailedFeedback)
	assert.Equal(t, 0, backend.evalCalls)
}

func TestSubmitAnswer_FallbackOnBackendFailure(t *testing.T) {
	backend := &fakeBackend{questionText: "q", evalErr: fmt.Errorf("backend down")}
	svc, _, iv := setup(t, backend)

	// 60 words lands in the 50-99 band of the fallback scorer.
	text := ""
	for i := 0; i < 60; i++ {
		text += "word "
	}
	_, answer, _ := answerTurn(t, svc, iv.ID, text, false)

	assert.Equal(t, 7, answer.Score)
	assert.Equal(t, 1, backend.evalCalls)
}

func TestSubmitAnswer_DuplicateQuestion(t *testing.T) {
	svc, _, iv := setup(t, nil)

	q, _, _ := answerTurn(t, svc, iv.ID, "first answer", false)

	_, _, err := svc.SubmitAnswer(context.Background(), types.SubmitAnswerRequest{
		InterviewID: iv.ID,
		QuestionID:  q.ID,
		Text:        "second answer",
	})
	assert.ErrorIs(t, err, ErrQuestionAlreadyAnswered)
}

func TestSubmitAnswer_UnknownQuestion(t *testing.T) {
	svc, _, iv := setup(t, nil)

	_, _, err := svc.SubmitAnswer(context.Background(), types.SubmitAnswerRequest{
		InterviewID: iv.ID,
		QuestionID:  uuid.New(),
		Text:        "answer",
	})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestSubmitAnswer_RejectsFinishedInterview(t *testing.T) {
	svc, _, iv := setup(t, nil)

	q, err := svc.NextQuestion(context.Background(), iv.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(context.Background(), iv.ID))

	_, _, err = svc.SubmitAnswer(context.Background(), types.SubmitAnswerRequest{
		InterviewID: iv.ID,
		QuestionID:  q.ID,
		Text:        "answer",
	})
	assert.ErrorIs(t, err, ErrInterviewFinished)
}

func TestComplete_TruncatedMean(t *testing.T) {
	tests := []struct {
		name    string
		scores  []int
		overall int
	}{
		{name: "mixed", scores: []int{6, 8, 10, 4}, overall: 7},
		{name: "truncates down", scores: []int{5, 6}, overall: 5},
		{name: "no answers", scores: nil, overall: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{questionText: "q"}
			svc, _, iv := setup(t, backend)

			for _, score := range tt.scores {
				backend.eval = &types.Evaluation{Score: score, DetailedFeedback: "fb"}
				answerTurn(t, svc, iv.ID, "some answer text", false)
			}
			backend.summaryErr = fmt.Errorf("backend down") // force fallback summary

			completed, summary, err := svc.Complete(context.Background(), iv.ID)
			require.NoError(t, err)

			require.NotNil(t, completed.OverallScore)
			assert.Equal(t, tt.overall, *completed.OverallScore)
			assert.Equal(t, types.StatusCompleted, completed.Status)
			assert.NotNil(t, completed.CompletedAt)
			assert.NotEmpty(t, summary.OverallAssessment)
			require.NotNil(t, completed.Feedback)
			assert.NotEmpty(t, *completed.Feedback)
		})
	}
}

func TestComplete_Idempotent(t *testing.T) {
	backend := &fakeBackend{
		questionText: "q",
		eval:         &types.Evaluation{Score: 8, DetailedFeedback: "fb"},
		summary: &types.Summary{
			OverallAssessment:  "Solid showing.",
			KeyStrengths:       []string{"clarity", "depth"},
			NextSteps:          "Keep practicing.",
			IndustryComparison: "Above average.",
		},
	}
	svc, _, iv := setup(t, backend)
	answerTurn(t, svc, iv.ID, "an answer", false)

	first, firstSummary, err := svc.Complete(context.Background(), iv.ID)
	require.NoError(t, err)

	second, secondSummary, err := svc.Complete(context.Background(), iv.ID)
	require.NoError(t, err)

	// Second call is a no-op: same stored state, no new backend work.
	assert.Equal(t, 1, backend.summaryCalls)
	assert.Equal(t, *first.OverallScore, *second.OverallScore)
	assert.Equal(t, *first.CompletedAt, *second.CompletedAt)
	assert.Equal(t, firstSummary.OverallAssessment, secondSummary.OverallAssessment)
	assert.Equal(t, firstSummary.KeyStrengths, secondSummary.KeyStrengths)
}

func TestComplete_RejectsCancelled(t *testing.T) {
	svc, _, iv := setup(t, nil)
	require.NoError(t, svc.Cancel(context.Background(), iv.ID))

	_, _, err := svc.Complete(context.Background(), iv.ID)
	assert.ErrorIs(t, err, ErrInterviewFinished)
}

func TestCancel(t *testing.T) {
	svc, store, iv := setup(t, nil)

	require.NoError(t, svc.Cancel(context.Background(), iv.ID))
	assert.Equal(t, types.StatusCancelled, store.interviews[iv.ID].Status)

	// Cancelling twice hits the terminal-state guard.
	assert.ErrorIs(t, svc.Cancel(context.Background(), iv.ID), ErrInterviewFinished)
}

func TestResults(t *testing.T) {
	backend := &fakeBackend{
		questionText: "q",
		summary:      &types.Summary{OverallAssessment: "Good.", NextSteps: "Practice."},
	}
	svc, _, iv := setup(t, backend)

	// Turn 1 behavioral, turn 2 technical.
	backend.eval = &types.Evaluation{Score: 6, DetailedFeedback: "fb"}
	answerTurn(t, svc, iv.ID, "one two three four five", false)
	backend.eval = &types.Evaluation{Score: 8, DetailedFeedback: "fb"}
	answerTurn(t, svc, iv.ID, "six seven eight", false)

	_, _, err := svc.Complete(context.Background(), iv.ID)
	require.NoError(t, err)

	report, err := svc.Results(context.Background(), iv.ID)
	require.NoError(t, err)

	assert.Equal(t, "Software Engineering", report.DomainName)
	assert.Equal(t, types.StatusCompleted, report.Status)
	assert.Equal(t, 7, report.OverallScore)       // (6+8)/2
	assert.Equal(t, 8, report.TechnicalScore)     // turn 2
	assert.Equal(t, 6, report.CommunicationScore) // turn 1
	assert.Equal(t, 6, report.ProblemSolvingScore)
	assert.Equal(t, 8, report.ClarityScore)
	assert.Equal(t, 2, report.TotalQuestions)
	assert.Equal(t, 8, report.TotalWords)
	assert.Equal(t, 25, report.CompletionRatePercent)
	require.NotNil(t, report.Feedback)
	assert.Equal(t, "Good.", report.Feedback.OverallAssessment)
}

func TestResults_DerivedMetricBounds(t *testing.T) {
	assert.Equal(t, 0, clampMetric(-1))
	assert.Equal(t, 10, clampMetric(11))
	assert.Equal(t, 5, clampMetric(5))
}

func TestResults_NotFound(t *testing.T) {
	svc := New(newFakeStore(), nil)

	_, err := svc.Results(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}
