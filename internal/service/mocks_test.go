package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/yourusername/bet-journal/internal/models"
)

// MockWagerRepository mocks the wager repository
type MockWagerRepository struct {
	mock.Mock
}

func (m *MockWagerRepository) Create(ctx context.Context, wager *models.Wager) error {
	args := m.Called(ctx, wager)
	return args.Error(0)
}

func (m *MockWagerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Wager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wager), args.Error(1)
}

func (m *MockWagerRepository) ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Wager, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Wager), args.Error(1)
}

func (m *MockWagerRepository) ListPending(ctx context.Context, userID uuid.UUID) ([]models.Wager, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Wager), args.Error(1)
}

func (m *MockWagerRepository) UpdateProfitLoss(ctx context.Context, id uuid.UUID, profitLoss *float64) error {
	args := m.Called(ctx, id, profitLoss)
	return args.Error(0)
}

func (m *MockWagerRepository) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockInvalidator records cache invalidations
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(userID uuid.UUID) {
	m.Called(userID)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
