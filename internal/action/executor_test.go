package action

import (
	"context"
	"errors"
	"testing"

	"github.com/omarshaarawi/rosterbot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTeam struct {
	mock.Mock
}

func (m *MockTeam) SwapPlayers(ctx context.Context, slotA, slotB int) error {
	args := m.Called(ctx, slotA, slotB)
	return args.Error(0)
}

func (m *MockTeam) AddFreeAgent(ctx context.Context, pos models.Position, drop models.Player, slot int, useWaivers bool) error {
	args := m.Called(ctx, pos, drop, slot, useWaivers)
	return args.Error(0)
}

var drop = models.Player{Name: "Manny", Team: "BUF", Position: models.Kicker, Projected: 3}

func TestExecutor_Run(t *testing.T) {
	t.Run("executes in order", func(t *testing.T) {
		team := new(MockTeam)
		var order []string
		team.On("AddFreeAgent", mock.Anything, models.Kicker, drop, 12, false).
			Run(func(mock.Arguments) { order = append(order, "add") }).Return(nil).Once()
		team.On("SwapPlayers", mock.Anything, 8, 12).
			Run(func(mock.Arguments) { order = append(order, "swap") }).Return(nil).Once()

		exec := NewExecutor(team, DefaultFailureThreshold, nil)
		report, err := exec.Run(context.Background(), []Action{
			AddFreeAgent(models.Kicker, drop, 12, false),
			Swap(8, 12),
		})

		require.NoError(t, err)
		assert.Equal(t, 2, report.Executed)
		assert.Empty(t, report.Failures)
		assert.Equal(t, []string{"add", "swap"}, order)
		team.AssertExpectations(t)
	})

	t.Run("tolerates a single failure", func(t *testing.T) {
		team := new(MockTeam)
		team.On("SwapPlayers", mock.Anything, 0, 10).Return(errors.New("row 0 cannot be moved")).Once()
		team.On("SwapPlayers", mock.Anything, 1, 11).Return(nil).Once()

		exec := NewExecutor(team, DefaultFailureThreshold, nil)
		report, err := exec.Run(context.Background(), []Action{Swap(0, 10), Swap(1, 11)})

		require.NoError(t, err)
		assert.Equal(t, 1, report.Executed)
		require.Len(t, report.Failures, 1)
		assert.Equal(t, Swap(0, 10), report.Failures[0].Action)
		team.AssertExpectations(t)
	})

	t.Run("aborts at threshold", func(t *testing.T) {
		team := new(MockTeam)
		team.On("SwapPlayers", mock.Anything, 0, 10).Return(errors.New("locked")).Once()
		team.On("SwapPlayers", mock.Anything, 1, 11).Return(errors.New("locked")).Once()

		exec := NewExecutor(team, DefaultFailureThreshold, nil)
		report, err := exec.Run(context.Background(), []Action{Swap(0, 10), Swap(1, 11), Swap(2, 12), Swap(3, 13)})

		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrTooManyFailures))
		assert.Equal(t, 0, report.Executed)
		assert.Len(t, report.Failures, 2)
		assert.Equal(t, 2, report.Skipped)
		team.AssertExpectations(t)
		team.AssertNotCalled(t, "SwapPlayers", mock.Anything, 2, 12)
	})

	t.Run("failures need not be consecutive", func(t *testing.T) {
		team := new(MockTeam)
		team.On("SwapPlayers", mock.Anything, 0, 10).Return(errors.New("locked")).Once()
		team.On("SwapPlayers", mock.Anything, 1, 11).Return(nil).Once()
		team.On("AddFreeAgent", mock.Anything, models.Kicker, drop, 12, true).Return(errors.New("no agents")).Once()

		exec := NewExecutor(team, 2, nil)
		report, err := exec.Run(context.Background(), []Action{
			Swap(0, 10),
			Swap(1, 11),
			AddFreeAgent(models.Kicker, drop, 12, true),
			Swap(8, 12),
		})

		assert.True(t, errors.Is(err, models.ErrTooManyFailures))
		assert.Equal(t, 1, report.Executed)
		assert.Equal(t, 1, report.Skipped)
		team.AssertExpectations(t)
	})

	t.Run("higher threshold keeps going", func(t *testing.T) {
		team := new(MockTeam)
		team.On("SwapPlayers", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("locked"))

		exec := NewExecutor(team, 3, nil)
		report, err := exec.Run(context.Background(), []Action{Swap(0, 10), Swap(1, 11)})

		require.NoError(t, err)
		assert.Len(t, report.Failures, 2)
		assert.Equal(t, 3, exec.Threshold())
	})

	t.Run("invalid threshold falls back to default", func(t *testing.T) {
		exec := NewExecutor(new(MockTeam), 0, nil)
		assert.Equal(t, DefaultFailureThreshold, exec.Threshold())
	})

	t.Run("cancelled context", func(t *testing.T) {
		team := new(MockTeam)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		exec := NewExecutor(team, DefaultFailureThreshold, nil)
		report, err := exec.Run(ctx, []Action{Swap(0, 10)})

		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, 1, report.Skipped)
		team.AssertNotCalled(t, "SwapPlayers", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "swap slots 6 and 11", Swap(6, 11).String())
	assert.Equal(t, "add free agent K, dropping Manny: K (BUF) from slot 12 (waivers allowed)",
		AddFreeAgent(models.Kicker, drop, 12, true).String())
}
