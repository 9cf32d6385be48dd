// Package service coordinates repositories with the settlement and analytics engines.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/bet-journal/internal/logger"
	"github.com/yourusername/bet-journal/internal/metrics"
	"github.com/yourusername/bet-journal/internal/models"
	"github.com/yourusername/bet-journal/internal/repository"
	"github.com/yourusername/bet-journal/internal/settlement"
)

// Prompt asks the user for the information a wager needs before it can settle
type Prompt struct {
	WagerID   uuid.UUID         `json:"wager_id"`
	WagerType models.WagerType  `json:"wager_type"`
	Reason    settlement.Reason `json:"reason"`
	Message   string            `json:"message"`
	Detail    string            `json:"detail,omitempty"`
}

// SettlementRun is the outcome of settling a user's pending wagers
type SettlementRun struct {
	UserID  uuid.UUID      `json:"user_id"`
	Settled []models.Wager `json:"settled"`
	Prompts []Prompt       `json:"prompts"`
}

// CacheInvalidator drops cached reports for a user
type CacheInvalidator interface {
	Invalidate(userID uuid.UUID)
}

// Transactor runs fn atomically. Repositories join the transaction carried by fn's context.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}

// SettlementService settles pending wagers and persists the computed profit/loss
type SettlementService struct {
	repo        repository.WagerRepository
	invalidator CacheInvalidator
	tx          Transactor
	logger      *logger.SettlementLogger
}

// NewSettlementService creates a new settlement service. invalidator may be nil.
func NewSettlementService(repo repository.WagerRepository, invalidator CacheInvalidator, log *logger.SettlementLogger) *SettlementService {
	return &SettlementService{
		repo:        repo,
		invalidator: invalidator,
		logger:      log,
	}
}

// WithTransactor stores each run's results in a single transaction
func (s *SettlementService) WithTransactor(tx Transactor) *SettlementService {
	s.tx = tx
	return s
}

// SettleOne computes the profit/loss for w. When it cannot be computed the
// returned wager is unchanged and the prompt describes what is missing.
func SettleOne(w models.Wager) (models.Wager, *Prompt, error) {
	settled, err := settlement.SettleWager(w)
	if err == nil {
		return settled, nil, nil
	}

	var cce *settlement.CannotComputeError
	if !errors.As(err, &cce) {
		return w, nil, err
	}
	return w, &Prompt{
		WagerID:   w.ID,
		WagerType: w.Type,
		Reason:    cce.Reason,
		Message:   PromptMessage(cce.Reason),
		Detail:    cce.Detail,
	}, nil
}

// SettlePending settles every pending wager of the user. Wagers that cannot be
// computed stay pending and are returned as prompts; nothing is stored as zero.
func (s *SettlementService) SettlePending(ctx context.Context, userID uuid.UUID) (*SettlementRun, error) {
	start := time.Now()

	pending, err := s.repo.ListPending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending wagers: %w", err)
	}

	run := &SettlementRun{
		UserID:  userID,
		Settled: make([]models.Wager, 0, len(pending)),
		Prompts: make([]Prompt, 0),
	}
	for _, w := range pending {
		settled, prompt, err := SettleOne(w)
		if err != nil {
			return nil, fmt.Errorf("failed to settle wager %s: %w", w.ID, err)
		}
		if prompt != nil {
			metrics.RecordCannotCompute(string(w.Type), string(prompt.Reason))
			s.logger.LogCannotCompute(w.ID.String(), userID.String(), string(w.Type), string(prompt.Reason), prompt.Detail)
			run.Prompts = append(run.Prompts, *prompt)
			continue
		}
		run.Settled = append(run.Settled, settled)
	}

	if err := s.store(ctx, run.Settled); err != nil {
		return nil, err
	}
	for _, w := range run.Settled {
		metrics.RecordWagerSettled(string(w.Type))
		s.logger.LogSettled(w.ID.String(), userID.String(), string(w.Type), w.Stake, *w.ProfitLoss)
	}

	if len(run.Settled) > 0 && s.invalidator != nil {
		s.invalidator.Invalidate(userID)
	}

	elapsed := time.Since(start)
	metrics.RecordSettlementRun(elapsed.Seconds())
	s.logger.LogBatch(userID.String(), len(run.Settled), len(run.Prompts), float64(elapsed.Microseconds())/1000)

	return run, nil
}

// store persists every computed profit/loss, all or nothing when a transactor is set.
func (s *SettlementService) store(ctx context.Context, settled []models.Wager) error {
	if len(settled) == 0 {
		return nil
	}
	persist := func(ctx context.Context) error {
		for _, w := range settled {
			if err := s.repo.UpdateProfitLoss(ctx, w.ID, w.ProfitLoss); err != nil {
				return fmt.Errorf("failed to store profit/loss for wager %s: %w", w.ID, err)
			}
		}
		return nil
	}
	if s.tx == nil {
		return persist(ctx)
	}
	return s.tx.WithTransaction(ctx, persist)
}

// PromptMessage returns the user-facing request for a settlement failure reason
func PromptMessage(reason settlement.Reason) string {
	switch reason {
	case settlement.ReasonInvalidStake:
		return "Check the stake: it must be zero or a positive amount."
	case settlement.ReasonInvalidOdds:
		return "Enter decimal odds of at least 1.00."
	case settlement.ReasonInvalidPosition:
		return "Enter a finishing position of 1 or more."
	case settlement.ReasonNotSettled:
		return "Enter the result (finishing position or whether it won) to settle this bet."
	case settlement.ReasonMissingPayout:
		return "Enter the payout returned for this bet."
	case settlement.ReasonInvalidPayout:
		return "The payout cannot be negative."
	case settlement.ReasonUnsupportedType:
		return "Choose a supported bet type."
	default:
		return "More information is needed to settle this bet."
	}
}
