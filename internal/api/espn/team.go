package espn

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/rosterbot/internal/models"
	"github.com/omarshaarawi/rosterbot/internal/roster"
)

const nameMatchThreshold = 0.7

// Team is one fantasy team's roster as seen by ESPN for a given week. It
// keeps a stable 16 slot layout across refreshes: players stay on the index
// they had, and an added free agent takes the index of the player it
// replaced. A Team is meant to live for one planning cycle.
type Team struct {
	api      *API
	teamID   int
	week     int
	poolSize int

	layout   [roster.Size]int
	entries  map[int]models.PlayerPoolEntry
	byeWeeks map[int]int
	loaded   bool
}

func NewTeam(api *API, teamID, week, poolSize int) *Team {
	if poolSize < 1 {
		poolSize = 10
	}
	return &Team{
		api:      api,
		teamID:   teamID,
		week:     week,
		poolSize: poolSize,
		entries:  make(map[int]models.PlayerPoolEntry),
	}
}

func (t *Team) GetPlayers(ctx context.Context) ([]models.Player, error) {
	if err := t.refresh(ctx); err != nil {
		return nil, err
	}
	players := make([]models.Player, roster.Size)
	for i := range t.layout {
		players[i] = t.playerAt(i)
	}
	return players, nil
}

func (t *Team) GetPlayer(ctx context.Context, slot int) (models.Player, error) {
	if slot < 0 || slot >= roster.Size {
		return models.Player{}, models.NewRangeError(slot, 0, roster.Size-1)
	}
	if err := t.ensureLoaded(ctx); err != nil {
		return models.Player{}, err
	}
	return t.playerAt(slot), nil
}

// UpdatePlayer re-reads the roster and returns the current state of the
// player whose name best matches p.Name.
func (t *Team) UpdatePlayer(ctx context.Context, p models.Player) (models.Player, error) {
	if err := t.refresh(ctx); err != nil {
		return models.Player{}, err
	}

	bestSlot := -1
	bestScore := -1.0
	for i := range t.layout {
		current := t.playerAt(i)
		if current.IsNull() {
			continue
		}
		if p.ID != 0 && current.ID == p.ID {
			return current, nil
		}
		similarity := nameSimilarity(p.Name, current.Name)
		if similarity > nameMatchThreshold && similarity > bestScore {
			bestScore = similarity
			bestSlot = i
		}
	}

	if bestSlot == -1 {
		return models.Player{}, models.NewNotFoundError("player " + p.Name)
	}
	return t.playerAt(bestSlot), nil
}

func nameSimilarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 0
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(distance)/float64(maxLen)
}

// SwapPlayers exchanges two roster slots. Either side may be empty. Moves
// between bench slots only reorder the local layout.
func (t *Team) SwapPlayers(ctx context.Context, slotA, slotB int) error {
	for _, slot := range []int{slotA, slotB} {
		if slot < 0 || slot >= roster.Size {
			return models.NewRangeError(slot, 0, roster.Size-1)
		}
	}
	if err := t.ensureLoaded(ctx); err != nil {
		return err
	}

	idA, idB := t.layout[slotA], t.layout[slotB]
	for _, pair := range [][2]int{{slotA, idA}, {slotB, idB}} {
		if pair[1] != 0 && t.entries[pair[1]].LineupLocked {
			return models.NewNotMovableError(pair[0])
		}
	}

	fromA, fromB := lineupSlotID(slotA), lineupSlotID(slotB)
	var items []models.TransactionItem
	if idA != 0 && fromA != fromB {
		items = append(items, models.TransactionItem{
			PlayerID:         idA,
			Type:             "LINEUP",
			FromLineupSlotID: fromA,
			ToLineupSlotID:   fromB,
		})
	}
	if idB != 0 && fromA != fromB {
		items = append(items, models.TransactionItem{
			PlayerID:         idB,
			Type:             "LINEUP",
			FromLineupSlotID: fromB,
			ToLineupSlotID:   fromA,
		})
	}

	if len(items) > 0 {
		slog.Info("Swapping players", "slot_a", slotA, "slot_b", slotB)
		err := t.api.SubmitTransaction(ctx, models.TransactionRequest{
			TeamID:          t.teamID,
			Type:            "ROSTER",
			ScoringPeriodID: t.week,
			ExecutionType:   "EXECUTE",
			Items:           items,
		})
		if err != nil {
			return err
		}
	}

	t.layout[slotA], t.layout[slotB] = idB, idA
	return nil
}

// AddFreeAgent claims the best projected available player at pos, releasing
// drop from slot and placing the new player there. A null drop fills the
// empty slot without releasing anyone.
func (t *Team) AddFreeAgent(ctx context.Context, pos models.Position, drop models.Player, slot int, useWaivers bool) error {
	if slot < 0 || slot >= roster.Size {
		return models.NewRangeError(slot, 0, roster.Size-1)
	}
	if roster.IsStarterSlot(slot) && !roster.CanFit(pos, slot) {
		return models.NewInvalidSlotError(models.NullPlayer(pos), slot)
	}
	if err := t.ensureLoaded(ctx); err != nil {
		return err
	}
	if !t.holds(slot, drop) {
		return models.NewNotFoundError(fmt.Sprintf("player %s at slot %d", drop, slot))
	}

	slotID := positionSlotID(pos)
	if slotID == slotNone {
		return fmt.Errorf("no free agent slot for position %s", pos)
	}
	agents, err := t.api.GetFreeAgents(ctx, slotID, t.week, useWaivers, t.poolSize)
	if err != nil {
		return err
	}
	best, ok := t.bestAgent(agents)
	if !ok {
		return models.NewNotFoundError(fmt.Sprintf("free agent at %s", pos))
	}

	txType := "FREEAGENT"
	if best.Status == "WAIVERS" {
		txType = "WAIVER"
	}

	items := []models.TransactionItem{{
		PlayerID:         best.ID,
		Type:             "ADD",
		ToTeamID:         t.teamID,
		FromLineupSlotID: slotNone,
		ToLineupSlotID:   lineupSlotID(slot),
	}}
	if dropID := t.layout[slot]; dropID != 0 {
		items = append(items, models.TransactionItem{
			PlayerID:         dropID,
			Type:             "DROP",
			FromTeamID:       t.teamID,
			FromLineupSlotID: slotNone,
			ToLineupSlotID:   slotNone,
		})
	}

	slog.Info("Adding free agent", "position", pos.String(), "slot", slot, "add", best.Player.FullName, "drop", drop.Name, "type", txType)
	err = t.api.SubmitTransaction(ctx, models.TransactionRequest{
		TeamID:          t.teamID,
		Type:            txType,
		ScoringPeriodID: t.week,
		ExecutionType:   "EXECUTE",
		Items:           items,
	})
	if err != nil {
		return err
	}

	delete(t.entries, t.layout[slot])
	t.layout[slot] = best.ID
	t.entries[best.ID] = best
	return nil
}

// bestAgent prefers agents who can play this week and then the highest
// projection; earlier entries win ties.
func (t *Team) bestAgent(agents []models.PlayerPoolEntry) (models.PlayerPoolEntry, bool) {
	var best models.PlayerPoolEntry
	var bestPlayer models.Player
	found := false
	for _, agent := range agents {
		if _, ok := positionFromID(agent.Player.DefaultPositionID); !ok {
			continue
		}
		p := toPlayer(agent, t.byeWeeks, t.week)
		if !found {
			best, bestPlayer, found = agent, p, true
			continue
		}
		playing, bestPlaying := p.IsPlaying(t.week), bestPlayer.IsPlaying(t.week)
		if (playing && !bestPlaying) || (playing == bestPlaying && p.Compare(bestPlayer) > 0) {
			best, bestPlayer = agent, p
		}
	}
	return best, found
}

// holds reports whether p occupies slot: by provider id when p has one,
// by value otherwise. A null player holds only an empty slot.
func (t *Team) holds(slot int, p models.Player) bool {
	id := t.layout[slot]
	if p.IsNull() || id == 0 {
		return p.IsNull() && id == 0
	}
	if p.ID != 0 {
		return id == p.ID
	}
	return t.playerAt(slot).Equal(p)
}

func (t *Team) playerAt(slot int) models.Player {
	id := t.layout[slot]
	if id == 0 {
		if pos, err := roster.SlotPosition(slot); err == nil {
			return models.NullPlayer(pos)
		}
		return models.NullPlayer(models.Flex)
	}
	return toPlayer(t.entries[id], t.byeWeeks, t.week)
}

func (t *Team) ensureLoaded(ctx context.Context) error {
	if t.loaded {
		return nil
	}
	return t.refresh(ctx)
}

func (t *Team) refresh(ctx context.Context) error {
	if t.byeWeeks == nil {
		byeWeeks, err := t.api.GetProSchedule(ctx)
		if err != nil {
			return err
		}
		t.byeWeeks = byeWeeks
	}

	entries, err := t.api.GetTeamRoster(ctx, t.teamID, t.week)
	if err != nil {
		return err
	}
	t.reconcile(entries)
	t.loaded = true
	return nil
}

// reconcile rebuilds the layout from ESPN's lineup slots, keeping every
// player that is still in the same group on its previous index.
func (t *Team) reconcile(entries []models.RosterEntry) {
	var next [roster.Size]int
	t.entries = make(map[int]models.PlayerPoolEntry, len(entries))

	type placement struct {
		id      int
		indices []int
	}
	var pending []placement

	bench := make([]int, 0, roster.BenchCount)
	for i := roster.StarterCount; i < roster.Size; i++ {
		bench = append(bench, i)
	}

	for _, entry := range entries {
		if entry.LineupSlotID == slotIR {
			continue
		}
		id := entry.PlayerPoolEntry.ID
		if id == 0 {
			id = entry.PlayerID
		}
		if _, ok := positionFromID(entry.PlayerPoolEntry.Player.DefaultPositionID); !ok {
			slog.Warn("Skipping player with unknown position", "player_id", id,
				"position_id", entry.PlayerPoolEntry.Player.DefaultPositionID)
			continue
		}
		pool := entry.PlayerPoolEntry
		pool.ID = id
		t.entries[id] = pool

		indices, ok := starterIndices[entry.LineupSlotID]
		if !ok {
			indices = bench
		}
		pending = append(pending, placement{id: id, indices: indices})
	}

	var unplaced []placement
	for _, p := range pending {
		placed := false
		for _, i := range p.indices {
			if t.layout[i] == p.id && next[i] == 0 {
				next[i] = p.id
				placed = true
				break
			}
		}
		if !placed {
			unplaced = append(unplaced, p)
		}
	}

	for _, p := range unplaced {
		if i, ok := firstFree(next[:], p.indices); ok {
			next[i] = p.id
			continue
		}
		if i, ok := firstFree(next[:], bench); ok {
			next[i] = p.id
			continue
		}
		slog.Warn("No roster slot for player", "player_id", p.id)
	}

	t.layout = next
}

func firstFree(layout []int, indices []int) (int, bool) {
	for _, i := range indices {
		if layout[i] == 0 {
			return i, true
		}
	}
	return 0, false
}
