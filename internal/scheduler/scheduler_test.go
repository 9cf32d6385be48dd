package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/bet-journal/internal/analytics"
	"github.com/yourusername/bet-journal/internal/metrics"
	"github.com/yourusername/bet-journal/internal/models"
	"github.com/yourusername/bet-journal/internal/service"
)

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type mockReports struct {
	mock.Mock
}

func (m *mockReports) MonthlyEmail(ctx context.Context, userID uuid.UUID, month time.Time, topVenues int) (*analytics.EmailReport, error) {
	args := m.Called(ctx, userID, month, topVenues)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.EmailReport), args.Error(1)
}

type mockSettler struct {
	mock.Mock
}

func (m *mockSettler) SettlePending(ctx context.Context, userID uuid.UUID) (*service.SettlementRun, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SettlementRun), args.Error(1)
}

type recordingSink struct {
	delivered map[uuid.UUID]*analytics.EmailReport
	fail      uuid.UUID
}

func (s *recordingSink) Deliver(ctx context.Context, userID uuid.UUID, report *analytics.EmailReport) error {
	if userID == s.fail {
		return errors.New("smtp unavailable")
	}
	if s.delivered == nil {
		s.delivered = make(map[uuid.UUID]*analytics.EmailReport)
	}
	s.delivered[userID] = report
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRunMonthlyReports(t *testing.T) {
	ctx := context.Background()
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 4, 1, 7, 0, 0, 0, time.UTC)

	users := new(mockUsers)
	users.On("ListUserIDs", ctx).Return([]uuid.UUID{alice, bob, carol}, nil)
	reports := new(mockReports)
	reports.On("MonthlyEmail", ctx, alice, march, 3).Return(&analytics.EmailReport{From: march}, nil)
	reports.On("MonthlyEmail", ctx, bob, march, 3).Return(nil, errors.New("query failed"))
	reports.On("MonthlyEmail", ctx, carol, march, 3).Return(&analytics.EmailReport{From: march}, nil)
	sink := &recordingSink{fail: carol}

	s := NewScheduler(users, reports, nil, sink, quietLogger())
	delivered, err := s.RunMonthlyReports(ctx, now, 3)

	assert.Equal(t, 1, delivered)
	require.Error(t, err)
	assert.ErrorContains(t, err, "query failed")
	assert.ErrorContains(t, err, "smtp unavailable")
	assert.Contains(t, sink.delivered, alice)
	reports.AssertExpectations(t)
}

func TestRunMonthlyReportsListError(t *testing.T) {
	ctx := context.Background()
	users := new(mockUsers)
	users.On("ListUserIDs", ctx).Return(nil, errors.New("db down"))

	s := NewScheduler(users, new(mockReports), nil, &recordingSink{}, quietLogger())
	delivered, err := s.RunMonthlyReports(ctx, time.Now(), 3)
	assert.Zero(t, delivered)
	assert.ErrorContains(t, err, "db down")
}

func TestRunSettlementSweep(t *testing.T) {
	ctx := context.Background()
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()

	users := new(mockUsers)
	users.On("ListUserIDs", ctx).Return([]uuid.UUID{alice, bob, carol}, nil)
	settler := new(mockSettler)
	settler.On("SettlePending", ctx, alice).Return(&service.SettlementRun{
		UserID:  alice,
		Settled: []models.Wager{{ID: uuid.New()}, {ID: uuid.New()}},
	}, nil)
	settler.On("SettlePending", ctx, bob).Return(&service.SettlementRun{
		UserID:  bob,
		Prompts: []service.Prompt{{WagerID: uuid.New()}, {WagerID: uuid.New()}},
	}, nil)
	settler.On("SettlePending", ctx, carol).Return(&service.SettlementRun{
		UserID:  carol,
		Prompts: []service.Prompt{{WagerID: uuid.New()}},
	}, nil)

	s := NewScheduler(users, new(mockReports), settler, &recordingSink{}, quietLogger())
	settled, err := s.RunSettlementSweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, settled)
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.PendingWagers), "pending is summed across users")
	settler.AssertExpectations(t)
}

func TestScheduleValidation(t *testing.T) {
	s := NewScheduler(new(mockUsers), new(mockReports), nil, &recordingSink{}, quietLogger())

	assert.Error(t, s.ScheduleMonthlyReports("not a cron", 3))
	assert.Error(t, s.ScheduleSettlementSweep("@hourly"), "sweep needs a settler")
	assert.Error(t, s.Start(), "no jobs scheduled")

	require.NoError(t, s.ScheduleMonthlyReports("0 7 1 * *", 3))
	assert.Len(t, s.Entries(), 1)
	assert.True(t, s.GetNextRun().IsZero())
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(new(mockUsers), new(mockReports), nil, &recordingSink{}, quietLogger())
	require.NoError(t, s.ScheduleMonthlyReports("0 7 1 * *", 3))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start())
	assert.Error(t, s.ScheduleMonthlyReports("@daily", 3))

	next := s.GetNextRun()
	require.False(t, next.IsZero())
	assert.Equal(t, 1, next.Day())
	assert.Equal(t, 7, next.Hour())

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.NoError(t, s.Stop())
}

func TestLogSink(t *testing.T) {
	sink := LogSink{Logger: quietLogger()}
	assert.NoError(t, sink.Deliver(context.Background(), uuid.New(), &analytics.EmailReport{}))
}
