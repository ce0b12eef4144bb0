package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateQuestionInput holds the fields for a new question record
type CreateQuestionInput struct {
	DomainID       uuid.UUID
	Text           string
	Difficulty     string
	Type           string
	ExpectedAnswer string
	Keywords       []string
}

// CreateQuestion stores a generated question
func (db *DB) CreateQuestion(ctx context.Context, input CreateQuestionInput) (*Question, error) {
	keywordsJSON, err := json.Marshal(input.Keywords)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keywords: %w", err)
	}

	var q Question
	var keywordsOut []byte
	err = db.pool.QueryRow(ctx,
		`INSERT INTO questions (domain_id, text, difficulty, type, expected_answer, keywords)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, domain_id, text, difficulty, type, expected_answer, keywords, created_at`,
		input.DomainID, input.Text, input.Difficulty, input.Type, input.ExpectedAnswer, keywordsJSON,
	).Scan(&q.ID, &q.DomainID, &q.Text, &q.Difficulty, &q.Type, &q.ExpectedAnswer, &keywordsOut, &q.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	if len(keywordsOut) > 0 {
		_ = json.Unmarshal(keywordsOut, &q.Keywords)
	}
	return &q, nil
}

// GetQuestion retrieves a question by ID
func (db *DB) GetQuestion(ctx context.Context, id uuid.UUID) (*Question, error) {
	var q Question
	var keywordsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, domain_id, text, difficulty, type, expected_answer, keywords, created_at
		 FROM questions WHERE id = $1`,
		id,
	).Scan(&q.ID, &q.DomainID, &q.Text, &q.Difficulty, &q.Type, &q.ExpectedAnswer, &keywordsJSON, &q.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}

	if len(keywordsJSON) > 0 {
		_ = json.Unmarshal(keywordsJSON, &q.Keywords)
	}
	return &q, nil
}
