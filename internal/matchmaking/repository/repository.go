// Package repository provides database access for buyer matching.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Buyer is a registered buyer as seen by matchmaking.
type Buyer struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Organization string
	Location     string
}

// Repository reads buyer data for matchmaking.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a matchmaking repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListBuyers returns all users registered as buyers.
func (r *Repository) ListBuyers(ctx context.Context) ([]Buyer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, COALESCE(name, ''), COALESCE(organization, ''), COALESCE(location, '')
		FROM users
		WHERE user_type = 'buyer'
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list buyers: %w", err)
	}
	defer rows.Close()

	var buyers []Buyer
	for rows.Next() {
		var b Buyer
		if err := rows.Scan(&b.ID, &b.Email, &b.Name, &b.Organization, &b.Location); err != nil {
			return nil, fmt.Errorf("scan buyer: %w", err)
		}
		buyers = append(buyers, b)
	}
	if err := rows.Err(); err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("iterate buyers: %w", err)
	}

	return buyers, nil
}
