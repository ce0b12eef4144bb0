package db

import (
	"time"

	"github.com/google/uuid"
)

// Domain represents an interview domain from the seeded catalog
type Domain struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// User represents an interview candidate
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Interview represents one interview session
type Interview struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	DomainID        uuid.UUID  `json:"domain_id"`
	Difficulty      string     `json:"difficulty"` // 'beginner', 'intermediate', 'expert'
	DurationMinutes int        `json:"duration_minutes"`
	Status          string     `json:"status"` // 'in_progress', 'completed', 'cancelled'
	OverallScore    *int       `json:"overall_score,omitempty"`
	Feedback        *string    `json:"feedback,omitempty"`
	StartedAt       time.Time  `json:"started_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

// Question represents a generated interview question. Rows are immutable.
type Question struct {
	ID             uuid.UUID `json:"id"`
	DomainID       uuid.UUID `json:"domain_id"`
	Text           string    `json:"text"`
	Difficulty     string    `json:"difficulty"`
	Type           string    `json:"type"` // 'technical', 'behavioral'
	ExpectedAnswer *string   `json:"expected_answer,omitempty"`
	Keywords       []string  `json:"keywords,omitempty"` // JSONB, insertion order preserved
	CreatedAt      time.Time `json:"created_at"`
}

// Answer represents one submitted (or skipped) answer. Rows are immutable.
type Answer struct {
	ID               uuid.UUID `json:"id"`
	InterviewID      uuid.UUID `json:"interview_id"`
	QuestionID       uuid.UUID `json:"question_id"`
	Text             string    `json:"text"`
	Score            int       `json:"score"` // 0 when skipped, else 1-10
	Feedback         *string   `json:"feedback,omitempty"`
	TimeTakenSeconds *int      `json:"time_taken_seconds,omitempty"`
	AnsweredAt       time.Time `json:"answered_at"`
}
