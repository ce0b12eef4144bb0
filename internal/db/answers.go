package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateAnswerInput holds the fields for a new answer record
type CreateAnswerInput struct {
	InterviewID      uuid.UUID
	QuestionID       uuid.UUID
	Text             string
	Score            int
	Feedback         string
	TimeTakenSeconds *int
}

// CreateAnswer stores a submitted (or skipped) answer
func (db *DB) CreateAnswer(ctx context.Context, input CreateAnswerInput) (*Answer, error) {
	var a Answer
	err := db.pool.QueryRow(ctx,
		`INSERT INTO answers (interview_id, question_id, text, score, feedback, time_taken_seconds)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, interview_id, question_id, text, score, feedback, time_taken_seconds, answered_at`,
		input.InterviewID, input.QuestionID, input.Text, input.Score, input.Feedback, input.TimeTakenSeconds,
	).Scan(&a.ID, &a.InterviewID, &a.QuestionID, &a.Text, &a.Score, &a.Feedback, &a.TimeTakenSeconds, &a.AnsweredAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create answer: %w", err)
	}
	return &a, nil
}

// ListAnswers retrieves an interview's answers in submission order
func (db *DB) ListAnswers(ctx context.Context, interviewID uuid.UUID) ([]Answer, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, interview_id, question_id, text, score, feedback, time_taken_seconds, answered_at
		 FROM answers WHERE interview_id = $1 ORDER BY answered_at ASC`,
		interviewID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	var answers []Answer
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.ID, &a.InterviewID, &a.QuestionID, &a.Text, &a.Score,
			&a.Feedback, &a.TimeTakenSeconds, &a.AnsweredAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, nil
}
