// Package types provides type definitions for structured data used throughout the interview-agent system.
package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Difficulty levels supported for an interview.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyExpert       = "expert"
)

// Question types produced by the turn progression policy.
const (
	QuestionTypeTechnical  = "technical"
	QuestionTypeBehavioral = "behavioral"
)

// Interview lifecycle states. An interview leaves StatusInProgress exactly
// once, into one of the two terminal states.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// StartInterviewRequest represents the request to start a new interview session.
type StartInterviewRequest struct {
	UserID          uuid.UUID `json:"user_id" validate:"required"`
	DomainID        uuid.UUID `json:"domain_id" validate:"required"`
	Difficulty      string    `json:"difficulty" validate:"required,oneof=beginner intermediate expert"`
	DurationMinutes int       `json:"duration_minutes" validate:"omitempty,min=5,max=120"`
}

// SubmitAnswerRequest represents one answer submission for a generated question.
// Text may be empty only when Skipped is set.
type SubmitAnswerRequest struct {
	InterviewID      uuid.UUID `json:"interview_id" validate:"required"`
	QuestionID       uuid.UUID `json:"question_id" validate:"required"`
	Text             string    `json:"text" validate:"required_unless=Skipped true"`
	TimeTakenSeconds *int      `json:"time_taken_seconds,omitempty" validate:"omitempty,min=0"`
	Skipped          bool      `json:"skipped"`
}

// Evaluation is the structured result of scoring a single answer.
// Score is always in [1,10] for evaluated answers and 0 for skipped ones.
type Evaluation struct {
	Score              int      `json:"score"`
	DetailedFeedback   string   `json:"detailed_feedback"`
	Strengths          []string `json:"strengths"`
	ImprovementAreas   []string `json:"improvement_areas"`
	FollowUpSuggestion string   `json:"follow_up_suggestion"`
}

// Summary is the structured end-of-interview assessment.
type Summary struct {
	OverallAssessment       string   `json:"overall_assessment"`
	KeyStrengths            []string `json:"key_strengths"`
	AreasForImprovement     []string `json:"areas_for_improvement"`
	SpecificRecommendations []string `json:"specific_recommendations"`
	NextSteps               string   `json:"next_steps"`
	IndustryComparison      string   `json:"industry_comparison"`
}

// QAPair is one question/answer exchange, used both as prompt context and
// as input to the interview summary.
type QAPair struct {
	Question         string `json:"question"`
	Answer           string `json:"answer"`
	Score            int    `json:"score"`
	TimeTakenSeconds *int   `json:"time_taken,omitempty"`
}

// Report is the read-only aggregation returned for a finished (or ongoing)
// interview. Derived metrics follow the scoring model: problem solving and
// clarity are offsets of the overall score, bounded to [0,10].
type Report struct {
	InterviewID           uuid.UUID `json:"interview_id"`
	DomainName            string    `json:"domain_name"`
	Difficulty            string    `json:"difficulty"`
	Status                string    `json:"status"`
	OverallScore          int       `json:"overall_score"`
	TechnicalScore        int       `json:"technical_score"`
	CommunicationScore    int       `json:"communication_score"`
	ProblemSolvingScore   int       `json:"problem_solving_score"`
	ClarityScore          int       `json:"clarity_score"`
	TotalQuestions        int       `json:"total_questions"`
	TotalWords            int       `json:"total_words"`
	AvgResponseTimeSecs   int       `json:"avg_response_time_seconds"`
	CompletionRatePercent int       `json:"completion_rate_percent"`
	DurationMinutes       int       `json:"duration_minutes"`
	Feedback              *Summary  `json:"feedback,omitempty"`
}

// Validate validates the StartInterviewRequest using the validator.
func (r *StartInterviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SubmitAnswerRequest using the validator.
func (r *SubmitAnswerRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
