// Package roster holds the local projection of a fantasy lineup: nine
// structural starter slots followed by seven bench slots.
package roster

import (
	"github.com/omarshaarawi/rosterbot/internal/models"
)

// NotFound is returned by PlayerSlot when the player is not on the roster.
const NotFound = -1

type Roster struct {
	starters [StarterCount]models.Player
	bench    [BenchCount]models.Player
}

// New builds a roster from an ordered snapshot. Indices 0-8 are starters in
// structural order, 9-15 the bench. Extra players past 16 are ignored.
func New(players []models.Player) (*Roster, error) {
	if len(players) < Size {
		return nil, models.NewInsufficientPlayersError(len(players), Size)
	}

	r := &Roster{}
	for i := 0; i < StarterCount; i++ {
		if !CanFit(players[i].Position, i) {
			return nil, models.NewInvalidSlotError(players[i], i)
		}
		r.starters[i] = players[i]
	}
	for i := StarterCount; i < Size; i++ {
		r.bench[i-StarterCount] = players[i]
	}
	return r, nil
}

// Players returns a copy of all 16 slots in order.
func (r *Roster) Players() []models.Player {
	players := make([]models.Player, 0, Size)
	players = append(players, r.starters[:]...)
	players = append(players, r.bench[:]...)
	return players
}

func (r *Roster) Player(slot int) (models.Player, error) {
	if slot < 0 || slot >= Size {
		return models.Player{}, models.NewRangeError(slot, 0, Size-1)
	}
	if slot < StarterCount {
		return r.starters[slot], nil
	}
	return r.bench[slot-StarterCount], nil
}

// Starter is Player restricted to the starting lineup.
func (r *Roster) Starter(slot int) (models.Player, error) {
	if !IsStarterSlot(slot) {
		return models.Player{}, models.NewRangeError(slot, 0, StarterCount-1)
	}
	return r.starters[slot], nil
}

func (r *Roster) ReplacePlayer(slot int, p models.Player) error {
	if slot < 0 || slot >= Size {
		return models.NewRangeError(slot, 0, Size-1)
	}
	if slot < StarterCount {
		r.starters[slot] = p
	} else {
		r.bench[slot-StarterCount] = p
	}
	return nil
}

// PlayerSlot finds p by value, starters first, and returns NotFound when
// absent.
func (r *Roster) PlayerSlot(p models.Player) int {
	for i, s := range r.starters {
		if s.Equal(p) {
			return i
		}
	}
	for i, b := range r.bench {
		if b.Equal(p) {
			return i + StarterCount
		}
	}
	return NotFound
}

// SwapPlayers puts b where a is. If b is already on the roster, a moves into
// b's old slot; otherwise b is inserted and a leaves the roster.
func (r *Roster) SwapPlayers(a, b models.Player) error {
	pa := r.PlayerSlot(a)
	if pa == NotFound {
		return models.NewNotFoundError("player " + a.String())
	}
	pb := r.PlayerSlot(b)

	if err := r.ReplacePlayer(pa, b); err != nil {
		return err
	}
	if pb != NotFound {
		return r.ReplacePlayer(pb, a)
	}
	return nil
}

// SwapSlots exchanges the occupants of two slots.
func (r *Roster) SwapSlots(a, b int) error {
	pa, err := r.Player(a)
	if err != nil {
		return err
	}
	pb, err := r.Player(b)
	if err != nil {
		return err
	}
	if err := r.ReplacePlayer(a, pb); err != nil {
		return err
	}
	return r.ReplacePlayer(b, pa)
}

// BenchCandidates returns the roster slots (9-15) of bench players that can
// play in week and either share position or, when allowFlex is set and the
// flex starter also plays position, are flex eligible. In the flex case the
// bench player goes to the flex slot and the flex starter covers the vacated
// slot, which is only legal when the flex starter shares position.
func (r *Roster) BenchCandidates(position models.Position, week int, allowFlex bool) []int {
	canFlex := allowFlex && position.IsFlexEligible() && r.starters[FlexSlot].Position == position

	var candidates []int
	for i, p := range r.bench {
		if p.Position != position && !(canFlex && p.Position.IsFlexEligible()) {
			continue
		}
		if p.IsPlaying(week) {
			candidates = append(candidates, i+StarterCount)
		}
	}
	return candidates
}

// IneligibleStarters lists starter slots, ascending, whose player is on bye
// in week or carries any status other than OK.
func (r *Roster) IneligibleStarters(week int) []int {
	var slots []int
	for i, s := range r.starters {
		if s.ByeWeek == week || s.Eligibility != models.EligibilityOK {
			slots = append(slots, i)
		}
	}
	return slots
}
