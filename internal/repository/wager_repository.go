package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/bet-journal/internal/database"
	"github.com/yourusername/bet-journal/internal/models"
)

const wagerColumns = `
	id, user_id, wager_type, stake, odds, finishing_position, profit_loss, bet_date,
	venue, race_class, exotic_numbers, description, notes, strategy_tags,
	place_terms, paid_places, combined_odds, dividend, flexi_percent, payout, won,
	created_at, updated_at`

// PostgresWagerRepository implements WagerRepository for PostgreSQL.
// Calls join the transaction started by database.WithTransaction when ctx carries one.
type PostgresWagerRepository struct {
	db *database.DB
}

// NewPostgresWagerRepository creates a new wager repository
func NewPostgresWagerRepository(db *database.DB) WagerRepository {
	return &PostgresWagerRepository{db: db}
}

// Create inserts a new wager, assigning an ID when missing
func (r *PostgresWagerRepository) Create(ctx context.Context, w *models.Wager) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if err := w.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO wagers (` + wagerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	tags := w.StrategyTags
	if tags == nil {
		tags = []string{}
	}

	err := r.db.Querier(ctx).QueryRow(ctx, query,
		w.ID, w.UserID, string(w.Type), w.Stake, w.Odds, w.FinishingPosition, w.ProfitLoss, w.BetDate,
		w.Venue, w.RaceClass, w.ExoticNumbers, w.Description, w.Notes, tags,
		w.PlaceTerms, w.PaidPlaces, w.CombinedOdds, w.Dividend, w.FlexiPercent, w.Payout, w.Won,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create wager: %w", err)
	}

	return nil
}

// GetByID retrieves a wager by ID
func (r *PostgresWagerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers WHERE id = $1`

	w, err := scanWager(r.db.Querier(ctx).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wager: %w", err)
	}

	return &w, nil
}

// ListByUser retrieves a user's wagers within a date range
func (r *PostgresWagerRepository) ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Wager, error) {
	query := `
		SELECT ` + wagerColumns + `
		FROM wagers
		WHERE user_id = $1
		  AND ($2::date IS NULL OR bet_date >= $2::date)
		  AND ($3::date IS NULL OR bet_date <= $3::date)
		ORDER BY bet_date ASC, created_at ASC
	`

	rows, err := r.db.Querier(ctx).Query(ctx, query, userID, nullableDate(from), nullableDate(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query wagers by user: %w", err)
	}
	return collectWagers(rows)
}

// ListPending retrieves a user's wagers without a computed profit/loss
func (r *PostgresWagerRepository) ListPending(ctx context.Context, userID uuid.UUID) ([]models.Wager, error) {
	query := `
		SELECT ` + wagerColumns + `
		FROM wagers
		WHERE user_id = $1 AND profit_loss IS NULL
		ORDER BY bet_date ASC, created_at ASC
	`

	rows, err := r.db.Querier(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending wagers: %w", err)
	}
	return collectWagers(rows)
}

// UpdateProfitLoss stores a computed profit/loss. A nil value marks the wager pending again.
func (r *PostgresWagerRepository) UpdateProfitLoss(ctx context.Context, id uuid.UUID, profitLoss *float64) error {
	query := `UPDATE wagers SET profit_loss = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Querier(ctx).Exec(ctx, query, id, profitLoss)
	if err != nil {
		return fmt.Errorf("failed to update wager profit/loss: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// ListUserIDs returns every user with at least one wager
func (r *PostgresWagerRepository) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, `SELECT DISTINCT user_id FROM wagers ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func collectWagers(rows pgx.Rows) ([]models.Wager, error) {
	defer rows.Close()

	wagers := make([]models.Wager, 0)
	for rows.Next() {
		w, err := scanWager(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wager: %w", err)
		}
		wagers = append(wagers, w)
	}

	return wagers, rows.Err()
}

func scanWager(row pgx.Row) (models.Wager, error) {
	var (
		w         models.Wager
		wagerType string
	)
	err := row.Scan(
		&w.ID, &w.UserID, &wagerType, &w.Stake, &w.Odds, &w.FinishingPosition, &w.ProfitLoss, &w.BetDate,
		&w.Venue, &w.RaceClass, &w.ExoticNumbers, &w.Description, &w.Notes, &w.StrategyTags,
		&w.PlaceTerms, &w.PaidPlaces, &w.CombinedOdds, &w.Dividend, &w.FlexiPercent, &w.Payout, &w.Won,
		&w.CreatedAt, &w.UpdatedAt,
	)
	w.Type = models.WagerType(wagerType)
	return w, err
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
