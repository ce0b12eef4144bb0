package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateInterview creates a new in-progress interview session
func (db *DB) CreateInterview(ctx context.Context, userID, domainID uuid.UUID, difficulty string, durationMinutes int) (*Interview, error) {
	var iv Interview
	err := db.pool.QueryRow(ctx,
		`INSERT INTO interviews (user_id, domain_id, difficulty, duration_minutes, status)
		 VALUES ($1, $2, $3, $4, 'in_progress')
		 RETURNING id, user_id, domain_id, difficulty, duration_minutes, status,
		           overall_score, feedback, started_at, completed_at`,
		userID, domainID, difficulty, durationMinutes,
	).Scan(&iv.ID, &iv.UserID, &iv.DomainID, &iv.Difficulty, &iv.DurationMinutes,
		&iv.Status, &iv.OverallScore, &iv.Feedback, &iv.StartedAt, &iv.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}
	return &iv, nil
}

// GetInterview retrieves an interview by ID
func (db *DB) GetInterview(ctx context.Context, id uuid.UUID) (*Interview, error) {
	var iv Interview
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, domain_id, difficulty, duration_minutes, status,
		        overall_score, feedback, started_at, completed_at
		 FROM interviews WHERE id = $1`,
		id,
	).Scan(&iv.ID, &iv.UserID, &iv.DomainID, &iv.Difficulty, &iv.DurationMinutes,
		&iv.Status, &iv.OverallScore, &iv.Feedback, &iv.StartedAt, &iv.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	return &iv, nil
}

// CompleteInterview marks an interview as completed with its final score and
// narrative feedback
func (db *DB) CompleteInterview(ctx context.Context, id uuid.UUID, overallScore int, feedback string) (*Interview, error) {
	var iv Interview
	err := db.pool.QueryRow(ctx,
		`UPDATE interviews
		 SET status = 'completed', overall_score = $1, feedback = $2, completed_at = NOW()
		 WHERE id = $3
		 RETURNING id, user_id, domain_id, difficulty, duration_minutes, status,
		           overall_score, feedback, started_at, completed_at`,
		overallScore, feedback, id,
	).Scan(&iv.ID, &iv.UserID, &iv.DomainID, &iv.Difficulty, &iv.DurationMinutes,
		&iv.Status, &iv.OverallScore, &iv.Feedback, &iv.StartedAt, &iv.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("interview not found: %s", id)
		}
		return nil, fmt.Errorf("failed to complete interview: %w", err)
	}
	return &iv, nil
}

// UpdateInterviewStatus sets the status of an interview
func (db *DB) UpdateInterviewStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE interviews SET status = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update interview status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("interview not found: %s", id)
	}
	return nil
}

// ListInterviewsByUser retrieves a user's interviews, most recent first
func (db *DB) ListInterviewsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Interview, error) {
	if limit == 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, domain_id, difficulty, duration_minutes, status,
		        overall_score, feedback, started_at, completed_at
		 FROM interviews WHERE user_id = $1 ORDER BY started_at DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	var interviews []Interview
	for rows.Next() {
		var iv Interview
		if err := rows.Scan(&iv.ID, &iv.UserID, &iv.DomainID, &iv.Difficulty, &iv.DurationMinutes,
			&iv.Status, &iv.OverallScore, &iv.Feedback, &iv.StartedAt, &iv.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, iv)
	}
	return interviews, nil
}
