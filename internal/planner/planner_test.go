package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/omarshaarawi/rosterbot/internal/action"
	"github.com/omarshaarawi/rosterbot/internal/models"
	"github.com/omarshaarawi/rosterbot/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func player(name string, pos models.Position, elig models.Eligibility, bye int, projected float64) models.Player {
	return models.Player{
		Name:        name,
		Team:        "SEA",
		Eligibility: elig,
		ByeWeek:     bye,
		Position:    pos,
		Projected:   projected,
		IsMovable:   true,
	}
}

// fixture has nobody on bye in week 5 and every starter healthy.
func fixture() []models.Player {
	return []models.Player{
		player("Abby", models.Quarterback, models.EligibilityOK, 11, 20),
		player("Bob", models.RunningBack, models.EligibilityOK, 11, 12),
		player("Charlie", models.RunningBack, models.EligibilityOK, 9, 11),
		player("Dave", models.WideReceiver, models.EligibilityOK, 12, 10),
		player("Ernest", models.WideReceiver, models.EligibilityOK, 9, 9),
		player("Fred", models.TightEnd, models.EligibilityOK, 4, 8),
		player("George", models.TightEnd, models.EligibilityOK, 11, 7),
		player("Hilbert", models.Defense, models.EligibilityOK, 6, 6),
		player("Ian", models.Kicker, models.EligibilityOK, 12, 5),
		player("Jeff", models.TightEnd, models.EligibilityInjured, 11, 4),
		player("Kyle", models.Quarterback, models.EligibilityOK, 12, 15),
		player("Luke", models.WideReceiver, models.EligibilityOK, 10, 6),
		player("Manny", models.Kicker, models.EligibilityOut, 6, 3),
		player("Noah", models.Defense, models.EligibilityOK, 6, 5),
		player("Owen", models.WideReceiver, models.EligibilityOK, 10, 7),
		player("Phillip", models.Quarterback, models.EligibilityQuestionable, 10, 14),
	}
}

func mustRoster(t *testing.T, players []models.Player) *roster.Roster {
	t.Helper()
	r, err := roster.New(players)
	require.NoError(t, err)
	return r
}

func slotName(t *testing.T, r *roster.Roster, slot int) string {
	t.Helper()
	p, err := r.Player(slot)
	require.NoError(t, err)
	return p.Name
}

func TestPlan(t *testing.T) {
	t.Run("healthy lineup needs nothing", func(t *testing.T) {
		actions, err := Plan(mustRoster(t, fixture()), 5, false)

		require.NoError(t, err)
		assert.Empty(t, actions)
	})

	t.Run("bench quarterback replaces injured starter", func(t *testing.T) {
		players := fixture()
		players[0].Eligibility = models.EligibilityOut
		players[0].Projected = 12
		r := mustRoster(t, players)

		actions, err := Plan(r, 5, false)

		require.NoError(t, err)
		assert.Equal(t, []action.Action{action.Swap(0, 10)}, actions)
		assert.Equal(t, "Kyle", slotName(t, r, 0))
		assert.Equal(t, "Abby", slotName(t, r, 10))
	})

	t.Run("flex on bye drops worst bench player", func(t *testing.T) {
		players := fixture()
		players[6].ByeWeek = 7
		r := mustRoster(t, players)

		actions, err := Plan(r, 7, false)

		require.NoError(t, err)
		manny := players[12]
		assert.Equal(t, []action.Action{
			action.AddFreeAgent(models.TightEnd, manny, 12, false),
			action.Swap(6, 12),
		}, actions)

		flex, _ := r.Player(6)
		assert.True(t, flex.IsNull())
		assert.Equal(t, models.TightEnd, flex.Position)
		assert.Equal(t, "George", slotName(t, r, 12))
	})

	t.Run("flex on bye projecting below bench is dropped", func(t *testing.T) {
		players := fixture()
		players[6].ByeWeek = 7
		players[6].Projected = 2
		r := mustRoster(t, players)

		actions, err := Plan(r, 7, true)

		require.NoError(t, err)
		assert.Equal(t, []action.Action{
			action.AddFreeAgent(models.TightEnd, players[6], 6, true),
		}, actions)
		flex, _ := r.Player(6)
		assert.True(t, flex.IsNull())
	})

	t.Run("receiver enters through flex for a running back", func(t *testing.T) {
		players := fixture()
		players[1].Eligibility = models.EligibilityOut
		players[6] = player("Gus", models.RunningBack, models.EligibilityOK, 11, 7)
		r := mustRoster(t, players)

		actions, err := Plan(r, 5, false)

		require.NoError(t, err)
		assert.Equal(t, []action.Action{action.Swap(6, 14), action.Swap(1, 14)}, actions)
		assert.Equal(t, "Gus", slotName(t, r, 1))
		assert.Equal(t, "Owen", slotName(t, r, 6))
		assert.Equal(t, "Bob", slotName(t, r, 14))
	})

	t.Run("two starters do not claim the same bench player", func(t *testing.T) {
		players := fixture()
		players[3].Eligibility = models.EligibilityOut
		players[4].Eligibility = models.EligibilityOut
		r := mustRoster(t, players)

		actions, err := Plan(r, 5, false)

		require.NoError(t, err)
		assert.Equal(t, []action.Action{action.Swap(3, 14), action.Swap(4, 11)}, actions)
		assert.Equal(t, "Owen", slotName(t, r, 3))
		assert.Equal(t, "Luke", slotName(t, r, 4))
	})

	t.Run("slot fixed earlier in the pass is skipped", func(t *testing.T) {
		players := fixture()
		players[1].Eligibility = models.EligibilityOut
		players[6] = player("Gus", models.RunningBack, models.EligibilityOut, 11, 7)
		r := mustRoster(t, players)

		actions, err := Plan(r, 5, false)

		require.NoError(t, err)
		assert.Equal(t, []action.Action{action.Swap(6, 14), action.Swap(1, 14)}, actions)
		assert.Equal(t, "Owen", slotName(t, r, 6))
	})

	t.Run("free agent precedes dependent swap", func(t *testing.T) {
		players := fixture()
		players[6].ByeWeek = 7
		players[8].ByeWeek = 7
		r := mustRoster(t, players)

		actions, err := Plan(r, 7, false)

		require.NoError(t, err)
		require.Len(t, actions, 4)
		for i := 0; i < len(actions); i += 2 {
			assert.Equal(t, action.KindAddFreeAgent, actions[i].Kind)
			assert.Equal(t, action.KindSwap, actions[i+1].Kind)
			assert.Equal(t, actions[i].DropSlot, actions[i+1].SlotB)
		}
	})
}

func TestGetSub(t *testing.T) {
	t.Run("best projection wins", func(t *testing.T) {
		players := fixture()
		players[3].Eligibility = models.EligibilityOut
		r := mustRoster(t, players)

		sub, slot, err := GetSub(r, 3, 5)

		require.NoError(t, err)
		assert.Equal(t, "Owen", sub.Name)
		assert.Equal(t, 14, slot)
	})

	t.Run("ties go to the first bench slot", func(t *testing.T) {
		players := fixture()
		players[11].Projected = 7
		r := mustRoster(t, players)

		sub, slot, err := GetSub(r, 3, 5)

		require.NoError(t, err)
		assert.Equal(t, "Luke", sub.Name)
		assert.Equal(t, 11, slot)
	})

	t.Run("no candidate returns null player", func(t *testing.T) {
		r := mustRoster(t, fixture())

		sub, slot, err := GetSub(r, 8, 5)

		require.NoError(t, err)
		assert.True(t, sub.IsNull())
		assert.Equal(t, models.Kicker, sub.Position)
		assert.Equal(t, roster.NotFound, slot)
	})

	t.Run("flex slot only takes its own position", func(t *testing.T) {
		r := mustRoster(t, fixture())

		sub, _, err := GetSub(r, roster.FlexSlot, 5)

		require.NoError(t, err)
		assert.True(t, sub.IsNull())
	})

	t.Run("bench slot is out of range", func(t *testing.T) {
		_, _, err := GetSub(mustRoster(t, fixture()), 9, 5)
		assert.True(t, errors.Is(err, models.ErrRange))
	})
}

func TestManager_ManageTeam(t *testing.T) {
	t.Run("rebuilt roster holds the bench quarterback", func(t *testing.T) {
		players := fixture()
		players[0].Eligibility = models.EligibilityOut
		players[0].Projected = 12
		team := newFakeTeam(players)

		m, err := NewManagerFromTeam(context.Background(), team, Options{})
		require.NoError(t, err)

		result, err := m.ManageTeam(context.Background(), 5)

		require.NoError(t, err)
		assert.NotEmpty(t, result.CycleID)
		assert.Equal(t, 5, result.Week)
		assert.Equal(t, []action.Action{action.Swap(0, 10)}, result.Actions)
		assert.Equal(t, 1, result.Report.Executed)
		assert.Equal(t, "Kyle", slotName(t, m.Roster(), 0))
	})

	t.Run("free agent fills the flex", func(t *testing.T) {
		players := fixture()
		players[6].ByeWeek = 7
		team := newFakeTeam(players)
		team.agents[models.TightEnd] = []models.Player{player("Tony", models.TightEnd, models.EligibilityOK, 9, 9)}

		m, err := NewManagerFromTeam(context.Background(), team, Options{})
		require.NoError(t, err)

		_, err = m.ManageTeam(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, "Tony", slotName(t, m.Roster(), 6))
		assert.Equal(t, "George", slotName(t, m.Roster(), 12))
		assert.Equal(t, roster.NotFound, m.Roster().PlayerSlot(players[12]))
	})

	t.Run("free agent fills the planned empty bench slot", func(t *testing.T) {
		players := fixture()
		players[5].Eligibility = models.EligibilityOut
		players[6] = models.NullPlayer(models.Flex)
		players[15] = models.NullPlayer(models.Flex)
		team := newFakeTeam(players)
		team.agents[models.TightEnd] = []models.Player{player("Tony", models.TightEnd, models.EligibilityOK, 9, 9)}

		m, err := NewManagerFromTeam(context.Background(), team, Options{})
		require.NoError(t, err)

		result, err := m.ManageTeam(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, []action.Action{
			action.AddFreeAgent(models.TightEnd, players[15], 15, false),
			action.Swap(5, 15),
		}, result.Actions)
		assert.Equal(t, "Tony", slotName(t, m.Roster(), 5))
		assert.Equal(t, "Fred", slotName(t, m.Roster(), 15))
		flex, _ := m.Roster().Player(roster.FlexSlot)
		assert.True(t, flex.IsNull())
	})

	t.Run("aborts after threshold failures", func(t *testing.T) {
		players := fixture()
		players[3].Eligibility = models.EligibilityOut
		players[4].Eligibility = models.EligibilityOut
		team := new(MockTeam)
		team.On("SwapPlayers", mock.Anything, 3, 14).Return(errors.New("row 3 cannot be moved")).Once()
		team.On("SwapPlayers", mock.Anything, 4, 11).Return(errors.New("row 4 cannot be moved")).Once()
		team.On("GetPlayers", mock.Anything).Return(players, nil).Once()

		m := NewManager(mustRoster(t, players), team, Options{FailureThreshold: 2})
		result, err := m.ManageTeam(context.Background(), 5)

		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrTooManyFailures))
		assert.Len(t, result.Report.Failures, 2)
		assert.Equal(t, "Dave", slotName(t, m.Roster(), 3))
		team.AssertExpectations(t)
	})

	t.Run("single failure is tolerated", func(t *testing.T) {
		players := fixture()
		players[3].Eligibility = models.EligibilityOut
		players[4].Eligibility = models.EligibilityOut
		team := new(MockTeam)
		team.On("SwapPlayers", mock.Anything, 3, 14).Return(errors.New("row 3 cannot be moved")).Once()
		team.On("SwapPlayers", mock.Anything, 4, 11).Return(nil).Once()
		team.On("GetPlayers", mock.Anything).Return(players, nil).Once()

		m := NewManager(mustRoster(t, players), team, Options{})
		result, err := m.ManageTeam(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Report.Executed)
		assert.Len(t, result.Report.Failures, 1)
		team.AssertExpectations(t)
	})

	t.Run("rebuild failure is reported", func(t *testing.T) {
		team := new(MockTeam)
		team.On("GetPlayers", mock.Anything).Return(nil, errors.New("espn unavailable")).Once()

		m := NewManager(mustRoster(t, fixture()), team, Options{})
		_, err := m.ManageTeam(context.Background(), 5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "espn unavailable")
		team.AssertExpectations(t)
	})

	t.Run("short roster from team", func(t *testing.T) {
		team := newFakeTeam(fixture()[:12])

		_, err := NewManagerFromTeam(context.Background(), team, Options{})

		assert.True(t, errors.Is(err, models.ErrInsufficientPlayers))
	})
}
