// Package action records remote roster mutations and replays them against
// the league provider.
package action

import (
	"fmt"

	"github.com/omarshaarawi/rosterbot/internal/models"
)

type Kind int

const (
	KindSwap Kind = iota
	KindAddFreeAgent
)

func (k Kind) String() string {
	switch k {
	case KindSwap:
		return "SwapPlayers"
	case KindAddFreeAgent:
		return "AddFreeAgent"
	default:
		return "Unknown"
	}
}

// Action is one queued mutation. Which fields are meaningful depends on Kind:
// SlotA/SlotB for KindSwap, Position/Drop/DropSlot/UseWaivers for
// KindAddFreeAgent.
type Action struct {
	Kind Kind

	SlotA int
	SlotB int

	Position   models.Position
	Drop       models.Player
	DropSlot   int
	UseWaivers bool
}

func Swap(a, b int) Action {
	return Action{Kind: KindSwap, SlotA: a, SlotB: b}
}

// AddFreeAgent acquires the best free agent at pos, releasing drop from
// dropSlot.
func AddFreeAgent(pos models.Position, drop models.Player, dropSlot int, useWaivers bool) Action {
	return Action{
		Kind:       KindAddFreeAgent,
		Position:   pos,
		Drop:       drop,
		DropSlot:   dropSlot,
		UseWaivers: useWaivers,
	}
}

func (a Action) String() string {
	switch a.Kind {
	case KindSwap:
		return fmt.Sprintf("swap slots %d and %d", a.SlotA, a.SlotB)
	case KindAddFreeAgent:
		s := fmt.Sprintf("add free agent %s, dropping %s from slot %d", a.Position, a.Drop, a.DropSlot)
		if a.UseWaivers {
			s += " (waivers allowed)"
		}
		return s
	default:
		return "unknown action"
	}
}
