// Package repository persists analyzed catches.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"samakicash_backend/internal/analysis/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Catch is a stored catch row.
type Catch struct {
	ID            uuid.UUID            `json:"id"`
	UserID        string               `json:"user_id"`
	FishType      string               `json:"fish_type"`
	QuantityKg    float64              `json:"quantity_kg"`
	Location      string               `json:"location"`
	PriceAnalysis domain.PriceEstimate `json:"price_analysis"`
	MarketTrend   string               `json:"market_trend"`
	ImageSummary  string               `json:"image_summary,omitempty"`
	VoiceFilename string               `json:"voice_filename,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// Repository provides database operations for catches.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a catches repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveCatch inserts one analyzed catch. The price analysis is stored as
// JSONB so its shape can evolve without migrations.
func (r *Repository) SaveCatch(ctx context.Context, record domain.CatchRecord) error {
	price, err := json.Marshal(record.PriceAnalysis)
	if err != nil {
		return fmt.Errorf("marshal price analysis: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO catches (id, user_id, fish_type, quantity_kg, location, price_analysis, market_trend, image_summary, voice_filename)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		uuid.New(), record.UserID, record.FishType, record.QuantityKg, record.Location,
		price, record.MarketTrend, record.ImageSummary, record.VoiceFilename)
	if err != nil {
		return fmt.Errorf("insert catch: %w", err)
	}
	return nil
}

// ListByUser returns a user's catches, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Catch, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, fish_type, quantity_kg, location, price_analysis,
		       COALESCE(market_trend, ''), COALESCE(image_summary, ''), COALESCE(voice_filename, ''), created_at
		FROM catches
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list catches: %w", err)
	}
	defer rows.Close()

	var catches []Catch
	for rows.Next() {
		var c Catch
		var price []byte
		if err := rows.Scan(&c.ID, &c.UserID, &c.FishType, &c.QuantityKg, &c.Location,
			&price, &c.MarketTrend, &c.ImageSummary, &c.VoiceFilename, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan catch: %w", err)
		}
		if len(price) > 0 {
			if err := json.Unmarshal(price, &c.PriceAnalysis); err != nil {
				return nil, fmt.Errorf("decode price analysis: %w", err)
			}
		}
		catches = append(catches, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catches: %w", err)
	}

	return catches, nil
}

// CountByUser returns how many catches a user has recorded.
func (r *Repository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM catches WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count catches: %w", err)
	}
	return count, nil
}
