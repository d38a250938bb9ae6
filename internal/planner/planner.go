// Package planner decides weekly lineup substitutions and drives the
// resulting roster actions against the league provider.
package planner

import (
	"fmt"

	"github.com/omarshaarawi/rosterbot/internal/action"
	"github.com/omarshaarawi/rosterbot/internal/models"
	"github.com/omarshaarawi/rosterbot/internal/roster"
)

// Plan walks the starters that cannot play in week, in slot order, and
// records the actions that replace them. r is updated as each decision is
// made so later slots see earlier moves.
func Plan(r *roster.Roster, week int, useWaivers bool) ([]action.Action, error) {
	var actions []action.Action

	for _, s := range r.IneligibleStarters(week) {
		starter, err := r.Starter(s)
		if err != nil {
			return nil, err
		}
		// an earlier move in this pass may already have filled the slot
		if starter.IsPlaying(week) {
			continue
		}

		sub, subSlot, err := GetSub(r, s, week)
		if err != nil {
			return nil, err
		}

		if sub.IsNull() {
			planned, err := planDrop(r, s, starter, sub, useWaivers)
			if err != nil {
				return nil, err
			}
			actions = append(actions, planned...)
			continue
		}

		if sub.Position != starter.Position {
			// the sub enters through the flex slot and the flex starter,
			// who shares the starter's position, moves over
			actions = append(actions, action.Swap(roster.FlexSlot, subSlot))
			if err := r.SwapSlots(roster.FlexSlot, subSlot); err != nil {
				return nil, err
			}
		}

		actions = append(actions, action.Swap(s, subSlot))
		if err := r.SwapSlots(s, subSlot); err != nil {
			return nil, err
		}
	}

	return actions, nil
}

// planDrop handles a starter with no playable bench replacement. Whichever
// of the starter and the worst bench player projects lower is released for a
// free agent.
func planDrop(r *roster.Roster, s int, starter, sub models.Player, useWaivers bool) ([]action.Action, error) {
	worst, worstSlot, err := worstBenchPlayer(r)
	if err != nil {
		return nil, err
	}

	if starter.Compare(worst) < 0 {
		if err := r.ReplacePlayer(s, models.NullPlayer(starter.Position)); err != nil {
			return nil, err
		}
		return []action.Action{
			action.AddFreeAgent(starter.Position, starter, s, useWaivers),
		}, nil
	}

	if err := r.ReplacePlayer(worstSlot, models.NullPlayer(sub.Position)); err != nil {
		return nil, err
	}
	if err := r.SwapSlots(s, worstSlot); err != nil {
		return nil, err
	}
	return []action.Action{
		action.AddFreeAgent(sub.Position, worst, worstSlot, useWaivers),
		action.Swap(s, worstSlot),
	}, nil
}

// GetSub returns the best playable bench replacement for starter slot and
// its roster slot. With no candidate it returns NullPlayer of the starter's
// position and roster.NotFound.
func GetSub(r *roster.Roster, slot, week int) (models.Player, int, error) {
	starter, err := r.Starter(slot)
	if err != nil {
		return models.Player{}, roster.NotFound, err
	}

	candidates := r.BenchCandidates(starter.Position, week, slot != roster.FlexSlot)
	if len(candidates) == 0 {
		return models.NullPlayer(starter.Position), roster.NotFound, nil
	}

	best, bestSlot, err := bestPlayer(r, candidates)
	if err != nil {
		return models.Player{}, roster.NotFound, err
	}
	return best, bestSlot, nil
}

// bestPlayer picks the highest projection; the first slot wins ties.
func bestPlayer(r *roster.Roster, slots []int) (models.Player, int, error) {
	var best models.Player
	bestSlot := roster.NotFound
	for _, slot := range slots {
		p, err := r.Player(slot)
		if err != nil {
			return models.Player{}, roster.NotFound, err
		}
		if bestSlot == roster.NotFound || p.Compare(best) > 0 {
			best, bestSlot = p, slot
		}
	}
	if bestSlot == roster.NotFound {
		return models.Player{}, roster.NotFound, models.NewNotFoundError("bench candidate")
	}
	return best, bestSlot, nil
}

// worstBenchPlayer picks the lowest projection on the bench regardless of
// whether that player can play; the first slot wins ties.
func worstBenchPlayer(r *roster.Roster) (models.Player, int, error) {
	var worst models.Player
	worstSlot := roster.NotFound
	for slot := roster.StarterCount; slot < roster.Size; slot++ {
		p, err := r.Player(slot)
		if err != nil {
			return models.Player{}, roster.NotFound, fmt.Errorf("reading bench: %w", err)
		}
		if worstSlot == roster.NotFound || p.Compare(worst) < 0 {
			worst, worstSlot = p, slot
		}
	}
	return worst, worstSlot, nil
}
