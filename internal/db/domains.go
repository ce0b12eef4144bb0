package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FindOrCreateDomain finds an existing domain by name or creates a new one
func (db *DB) FindOrCreateDomain(ctx context.Context, name, description string) (*Domain, error) {
	if name == "" {
		return nil, fmt.Errorf("domain name cannot be empty")
	}

	var d Domain
	err := db.pool.QueryRow(ctx,
		`INSERT INTO domains (name, description)
		 VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
		 RETURNING id, name, description, created_at`,
		name, description,
	).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create domain: %w", err)
	}
	return &d, nil
}

// GetDomain retrieves a domain by its UUID
func (db *DB) GetDomain(ctx context.Context, id uuid.UUID) (*Domain, error) {
	var d Domain
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM domains WHERE id = $1`,
		id,
	).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get domain: %w", err)
	}
	return &d, nil
}

// GetDomainByName retrieves a domain by its unique name
func (db *DB) GetDomainByName(ctx context.Context, name string) (*Domain, error) {
	var d Domain
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM domains WHERE name = $1`,
		name,
	).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get domain by name: %w", err)
	}
	return &d, nil
}

// ListDomains retrieves all domains ordered by name
func (db *DB) ListDomains(ctx context.Context) ([]Domain, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, description, created_at FROM domains ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}
	defer rows.Close()

	var domains []Domain
	for rows.Next() {
		var d Domain
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, d)
	}
	return domains, nil
}
