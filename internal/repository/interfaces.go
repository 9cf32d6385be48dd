// Package repository provides persistence for journaled wagers.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/bet-journal/internal/models"
)

// WagerRepository defines the interface for wager data access
type WagerRepository interface {
	Create(ctx context.Context, wager *models.Wager) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Wager, error)
	// ListByUser returns the user's wagers dated within [from, to], oldest first.
	// Zero bounds are open.
	ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Wager, error)
	ListPending(ctx context.Context, userID uuid.UUID) ([]models.Wager, error)
	UpdateProfitLoss(ctx context.Context, id uuid.UUID, profitLoss *float64) error
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}
