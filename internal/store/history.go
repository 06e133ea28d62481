package store

import (
	"context"
	"fmt"
	"log"

	"github.com/lib/pq"

	"github.com/fortuna/gridiron/internal/models"
)

// History persists scored prediction batches for later closing-line
// review. Writes are transactional per batch: either the whole slate
// lands or none of it does.
type History struct {
	db *Database
}

// NewHistory creates a history store over an open database
func NewHistory(db *Database) *History {
	return &History{db: db}
}

// EnsureSchema creates the predictions table when missing
func (h *History) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS predictions (
			id                 UUID PRIMARY KEY,
			game_id            VARCHAR(64) NOT NULL,
			matchup            VARCHAR(255) NOT NULL,
			week               INT NOT NULL,
			recommendation     VARCHAR(32) NOT NULL,
			confidence         VARCHAR(16) NOT NULL,
			win_probability    DOUBLE PRECISION NOT NULL,
			market_probability DOUBLE PRECISION NOT NULL,
			value_rating       DOUBLE PRECISION NOT NULL,
			stake_fraction     DOUBLE PRECISION NOT NULL,
			risk_tier          VARCHAR(16) NOT NULL,
			key_factors        TEXT[] NOT NULL DEFAULT '{}',
			data_quality       DOUBLE PRECISION NOT NULL,
			generated_at       TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_predictions_generated_at
			ON predictions (generated_at DESC);
	`
	if _, err := h.db.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating predictions table: %w", err)
	}

	log.Println("[history] ✓ schema ready")
	return nil
}

// SaveBatch inserts a scored slate in one transaction
func (h *History) SaveBatch(ctx context.Context, predictions []models.Prediction) error {
	if len(predictions) == 0 {
		return nil
	}

	tx, err := h.db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO predictions (
			id, game_id, matchup, week, recommendation, confidence,
			win_probability, market_probability, value_rating,
			stake_fraction, risk_tier, key_factors, data_quality, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range predictions {
		_, err := stmt.ExecContext(ctx,
			p.ID, p.GameID, p.Matchup, p.Week, p.Recommendation, p.Confidence,
			p.WinProbability, p.MarketProb, p.ValueRating,
			p.StakeFraction, p.RiskTier, pq.Array(p.KeyFactors), p.DataQuality, p.GeneratedAt,
		)
		if err != nil {
			return fmt.Errorf("inserting prediction %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}

	log.Printf("[history] ✓ saved %d predictions", len(predictions))
	return nil
}

// Recent returns the most recently generated predictions
func (h *History) Recent(ctx context.Context, limit int) ([]models.Prediction, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := h.db.conn.QueryContext(ctx, `
		SELECT id, game_id, matchup, week, recommendation, confidence,
		       win_probability, market_probability, value_rating,
		       stake_fraction, risk_tier, key_factors, data_quality, generated_at
		FROM predictions
		ORDER BY generated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying predictions: %w", err)
	}
	defer rows.Close()

	predictions := []models.Prediction{}
	for rows.Next() {
		var p models.Prediction
		err := rows.Scan(
			&p.ID, &p.GameID, &p.Matchup, &p.Week, &p.Recommendation, &p.Confidence,
			&p.WinProbability, &p.MarketProb, &p.ValueRating,
			&p.StakeFraction, &p.RiskTier, pq.Array(&p.KeyFactors), &p.DataQuality, &p.GeneratedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning prediction: %w", err)
		}
		predictions = append(predictions, p)
	}

	return predictions, rows.Err()
}
