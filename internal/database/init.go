package database

import (
	"context"
	"fmt"

	"github.com/yourusername/bet-journal/internal/config"
)

// Schema creates the wagers table and its indexes when they are missing
const Schema = `
CREATE TABLE IF NOT EXISTS wagers (
	id                 UUID PRIMARY KEY,
	user_id            UUID NOT NULL,
	wager_type         TEXT NOT NULL,
	stake              NUMERIC(12, 2) NOT NULL,
	odds               NUMERIC(10, 3) NOT NULL DEFAULT 0,
	finishing_position INTEGER,
	profit_loss        NUMERIC(12, 2),
	bet_date           DATE NOT NULL,
	venue              TEXT NOT NULL DEFAULT '',
	race_class         TEXT NOT NULL DEFAULT '',
	exotic_numbers     TEXT NOT NULL DEFAULT '',
	description        TEXT NOT NULL DEFAULT '',
	notes              TEXT NOT NULL DEFAULT '',
	strategy_tags      TEXT[] NOT NULL DEFAULT '{}',
	place_terms        TEXT NOT NULL DEFAULT '',
	paid_places        INTEGER,
	combined_odds      NUMERIC(12, 3),
	dividend           TEXT NOT NULL DEFAULT '',
	flexi_percent      NUMERIC(6, 2),
	payout             NUMERIC(12, 2),
	won                BOOLEAN,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_wagers_user_date ON wagers (user_id, bet_date);
CREATE INDEX IF NOT EXISTS idx_wagers_pending ON wagers (user_id) WHERE profit_loss IS NULL;
`

// Initialize creates a database connection pool and ensures the schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}
