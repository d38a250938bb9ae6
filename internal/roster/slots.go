package roster

import "github.com/omarshaarawi/rosterbot/internal/models"

const (
	StarterCount = 9
	BenchCount   = 7
	Size         = StarterCount + BenchCount

	// FlexSlot is the only starter slot that accepts RB, WR or TE.
	FlexSlot = 6
)

// validSlots maps a position to the starter indices it may occupy. Bench
// slots accept any position and are not listed.
var validSlots = map[models.Position][]int{
	models.Quarterback:  {0},
	models.RunningBack:  {1, 2, FlexSlot},
	models.WideReceiver: {3, 4, FlexSlot},
	models.TightEnd:     {5, FlexSlot},
	models.Defense:      {7},
	models.Kicker:       {8},
	models.Flex:         {FlexSlot},
}

// slotPositions is the structural order of the starting lineup.
var slotPositions = [StarterCount]models.Position{
	models.Quarterback,
	models.RunningBack,
	models.RunningBack,
	models.WideReceiver,
	models.WideReceiver,
	models.TightEnd,
	models.Flex,
	models.Defense,
	models.Kicker,
}

// ValidSlots returns the starter indices that accept p.
func ValidSlots(p models.Position) []int {
	slots := validSlots[p]
	out := make([]int, len(slots))
	copy(out, slots)
	return out
}

// CanFit reports whether a player at position p may start in slot.
func CanFit(p models.Position, slot int) bool {
	for _, s := range validSlots[p] {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotPosition returns the position a starter slot is built for.
func SlotPosition(slot int) (models.Position, error) {
	if slot < 0 || slot >= StarterCount {
		return 0, models.NewRangeError(slot, 0, StarterCount-1)
	}
	return slotPositions[slot], nil
}

func IsStarterSlot(slot int) bool {
	return slot >= 0 && slot < StarterCount
}

func IsBenchSlot(slot int) bool {
	return slot >= StarterCount && slot < Size
}
