package planner

import (
	"context"
	"fmt"

	"github.com/omarshaarawi/rosterbot/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockTeam struct {
	mock.Mock
}

func (m *MockTeam) GetPlayers(ctx context.Context) ([]models.Player, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Player), args.Error(1)
}

func (m *MockTeam) GetPlayer(ctx context.Context, slot int) (models.Player, error) {
	args := m.Called(ctx, slot)
	return args.Get(0).(models.Player), args.Error(1)
}

func (m *MockTeam) UpdatePlayer(ctx context.Context, player models.Player) (models.Player, error) {
	args := m.Called(ctx, player)
	return args.Get(0).(models.Player), args.Error(1)
}

func (m *MockTeam) SwapPlayers(ctx context.Context, slotA, slotB int) error {
	args := m.Called(ctx, slotA, slotB)
	return args.Error(0)
}

func (m *MockTeam) AddFreeAgent(ctx context.Context, pos models.Position, drop models.Player, slot int, useWaivers bool) error {
	args := m.Called(ctx, pos, drop, slot, useWaivers)
	return args.Error(0)
}

// fakeTeam applies actions to an in-memory lineup the way the provider
// would: swaps exchange slots and an added agent takes the dropped slot.
type fakeTeam struct {
	players []models.Player
	agents  map[models.Position][]models.Player
}

func newFakeTeam(players []models.Player) *fakeTeam {
	cp := make([]models.Player, len(players))
	copy(cp, players)
	return &fakeTeam{players: cp, agents: map[models.Position][]models.Player{}}
}

func (f *fakeTeam) GetPlayers(context.Context) ([]models.Player, error) {
	cp := make([]models.Player, len(f.players))
	copy(cp, f.players)
	return cp, nil
}

func (f *fakeTeam) GetPlayer(_ context.Context, slot int) (models.Player, error) {
	if slot < 0 || slot >= len(f.players) {
		return models.Player{}, models.NewRangeError(slot, 0, len(f.players)-1)
	}
	return f.players[slot], nil
}

func (f *fakeTeam) UpdatePlayer(_ context.Context, player models.Player) (models.Player, error) {
	for _, p := range f.players {
		if p.Name == player.Name {
			return p, nil
		}
	}
	return models.Player{}, models.NewNotFoundError(player.Name)
}

func (f *fakeTeam) SwapPlayers(_ context.Context, a, b int) error {
	for _, slot := range []int{a, b} {
		if p := f.players[slot]; !p.IsNull() && !p.IsMovable {
			return models.NewNotMovableError(slot)
		}
	}
	f.players[a], f.players[b] = f.players[b], f.players[a]
	return nil
}

func (f *fakeTeam) AddFreeAgent(_ context.Context, pos models.Position, drop models.Player, slot int, _ bool) error {
	pool := f.agents[pos]
	if len(pool) == 0 {
		return fmt.Errorf("no free agents at %s", pos)
	}
	if slot < 0 || slot >= len(f.players) {
		return models.NewRangeError(slot, 0, len(f.players)-1)
	}
	if current := f.players[slot]; current.IsNull() != drop.IsNull() || (!drop.IsNull() && !current.Equal(drop)) {
		return models.NewNotFoundError(fmt.Sprintf("%s at slot %d", drop, slot))
	}
	f.players[slot] = pool[0]
	f.agents[pos] = pool[1:]
	return nil
}
