package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bet-journal/internal/analytics"
	"github.com/yourusername/bet-journal/internal/logger"
	"github.com/yourusername/bet-journal/internal/models"
)

func settledWagers(userID uuid.UUID) []models.Wager {
	mk := func(date, venue string, stake, pl float64) models.Wager {
		return models.Wager{
			ID: uuid.New(), UserID: userID, Type: models.WagerTypeWin,
			Stake: stake, Odds: 3, ProfitLoss: models.Float64Ptr(pl),
			BetDate: day(date), Venue: venue,
		}
	}
	return []models.Wager{
		mk("2024-03-01", "Randwick", 10, 20),
		mk("2024-03-08", "Rosehill", 10, -10),
		mk("2024-03-15", "Randwick", 10, 5),
	}
}

func newReportService(repo *MockWagerRepository, cache *ReportCache) *ReportService {
	return NewReportService(repo, analytics.DefaultOptions(), cache, logger.NewReportLogger(quietLogger()))
}

func TestDashboardUsesCache(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := new(MockWagerRepository)
	repo.On("ListByUser", ctx, userID, time.Time{}, time.Time{}).Return(settledWagers(userID), nil).Once()

	cache := NewReportCache(time.Minute, 0)
	svc := newReportService(repo, cache)

	first, err := svc.Dashboard(ctx, userID, time.Time{}, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 15.0, first.Summary.TotalProfit)

	second, err := svc.Dashboard(ctx, userID, time.Time{}, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Same(t, first, second)

	hits, misses := cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	repo.AssertExpectations(t)
}

func TestDashboardInvalidate(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	other := uuid.New()
	repo := new(MockWagerRepository)
	repo.On("ListByUser", ctx, userID, time.Time{}, time.Time{}).Return(settledWagers(userID), nil).Twice()
	repo.On("ListByUser", ctx, other, time.Time{}, time.Time{}).Return([]models.Wager{}, nil).Once()

	cache := NewReportCache(time.Minute, time.Minute)
	svc := newReportService(repo, cache)

	_, err := svc.Dashboard(ctx, userID, time.Time{}, time.Time{}, time.Time{})
	require.NoError(t, err)
	_, err = svc.Dashboard(ctx, other, time.Time{}, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	svc.Invalidate(userID)
	assert.Equal(t, 1, cache.Len())

	_, err = svc.Dashboard(ctx, userID, time.Time{}, time.Time{}, time.Time{})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDashboardLoadError(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := new(MockWagerRepository)
	repo.On("ListByUser", ctx, userID, time.Time{}, time.Time{}).Return(nil, errors.New("timeout"))

	_, err := newReportService(repo, nil).Dashboard(ctx, userID, time.Time{}, time.Time{}, time.Time{})
	assert.ErrorContains(t, err, "timeout")
}

func TestInsightsAndAssistantContext(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := new(MockWagerRepository)
	repo.On("ListByUser", ctx, userID, time.Time{}, time.Time{}).Return(settledWagers(userID), nil)
	svc := newReportService(repo, nil)

	insights, err := svc.Insights(ctx, userID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.NotNil(t, insights)

	text, err := svc.AssistantContext(ctx, userID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Settled bets: 3"))
}

func TestMonthlyEmail(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	repo := new(MockWagerRepository)
	repo.On("ListByUser", ctx, userID, day("2024-03-01"), day("2024-03-31")).Return(settledWagers(userID), nil)

	report, err := newReportService(repo, nil).MonthlyEmail(ctx, userID, day("2024-03-20"), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Summary.Count)
	require.Len(t, report.TopVenues, 1)
	assert.Equal(t, "Randwick", report.TopVenues[0].Key)
	require.NotNil(t, report.Worst)
	assert.Equal(t, -10.0, *report.Worst.ProfitLoss)
}

func TestMonthHelpers(t *testing.T) {
	from, to := MonthBounds(day("2024-02-15"))
	assert.Equal(t, day("2024-02-01"), from)
	assert.Equal(t, day("2024-02-29"), to)

	assert.Equal(t, day("2023-12-01"), PreviousMonth(day("2024-01-01")))
}

func TestReportKeyString(t *testing.T) {
	userID := uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2")
	key := ReportKey{UserID: userID, From: day("2024-01-01")}
	assert.Equal(t, "7d444840-9dc0-11d1-b245-5ffdce74fad2:2024-01-01:-:-", key.String())
}
