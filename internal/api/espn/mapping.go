package espn

import (
	"github.com/omarshaarawi/rosterbot/internal/models"
	"github.com/omarshaarawi/rosterbot/internal/roster"
)

// ESPN lineup slot ids.
const (
	slotQB    = 0
	slotRB    = 2
	slotWR    = 4
	slotTE    = 6
	slotDST   = 16
	slotK     = 17
	slotBench = 20
	slotIR    = 21
	slotFlex  = 23

	slotNone = -1
)

// starterIndices maps an ESPN starting slot id to the roster indices it
// fills, in structural order.
var starterIndices = map[int][]int{
	slotQB:   {0},
	slotRB:   {1, 2},
	slotWR:   {3, 4},
	slotTE:   {5},
	slotFlex: {roster.FlexSlot},
	slotDST:  {7},
	slotK:    {8},
}

func positionSlotID(p models.Position) int {
	switch p {
	case models.Quarterback:
		return slotQB
	case models.RunningBack:
		return slotRB
	case models.WideReceiver:
		return slotWR
	case models.TightEnd:
		return slotTE
	case models.Defense:
		return slotDST
	case models.Kicker:
		return slotK
	case models.Flex:
		return slotFlex
	default:
		return slotNone
	}
}

// lineupSlotID is the ESPN slot id for a roster index.
func lineupSlotID(index int) int {
	if !roster.IsStarterSlot(index) {
		return slotBench
	}
	pos, _ := roster.SlotPosition(index)
	return positionSlotID(pos)
}

func positionFromID(positionID int) (models.Position, bool) {
	switch positionID {
	case 1:
		return models.Quarterback, true
	case 2:
		return models.RunningBack, true
	case 3:
		return models.WideReceiver, true
	case 4:
		return models.TightEnd, true
	case 5:
		return models.Kicker, true
	case 16:
		return models.Defense, true
	default:
		return 0, false
	}
}

func eligibilityFromStatus(status string) models.Eligibility {
	switch status {
	case "", "ACTIVE", "NORMAL":
		return models.EligibilityOK
	case "QUESTIONABLE", "DOUBTFUL", "PROBABLE", "DAY_TO_DAY":
		return models.EligibilityQuestionable
	case "OUT":
		return models.EligibilityOut
	case "INJURY_RESERVE":
		return models.EligibilityInjured
	case "SUSPENSION":
		return models.EligibilitySuspended
	default:
		return models.EligibilityOut
	}
}

func getProTeamString(proTeamID int) string {
	teams := map[int]string{
		1: "ATL", 2: "BUF", 3: "CHI", 4: "CIN", 5: "CLE", 6: "DAL", 7: "DEN", 8: "DET",
		9: "GB", 10: "TEN", 11: "IND", 12: "KC", 13: "LV", 14: "LAR", 15: "MIA", 16: "MIN",
		17: "NE", 18: "NO", 19: "NYG", 20: "NYJ", 21: "PHI", 22: "ARI", 23: "PIT", 24: "LAC",
		25: "SF", 26: "SEA", 27: "TB", 28: "WSH", 29: "CAR", 30: "JAX", 33: "BAL", 34: "HOU",
	}

	if team, ok := teams[proTeamID]; ok {
		return team
	}

	return "FA"
}

// projectedPoints prefers the projection for week, then the season total.
func projectedPoints(entry models.PlayerPoolEntry, week int) float64 {
	for _, stat := range entry.Player.Stats {
		if stat.ScoringPeriodID == week && stat.StatSourceID == 1 {
			return stat.AppliedTotal
		}
	}
	return entry.AppliedStatTotal
}

// toPlayer expects a known default position; callers drop entries that
// positionFromID rejects.
func toPlayer(entry models.PlayerPoolEntry, byeWeeks map[int]int, week int) models.Player {
	info := entry.Player
	pos, _ := positionFromID(info.DefaultPositionID)
	id := entry.ID
	if id == 0 {
		id = info.ID
	}
	return models.Player{
		ID:          id,
		Name:        info.FullName,
		Team:        getProTeamString(info.ProTeamID),
		Eligibility: eligibilityFromStatus(info.InjuryStatus),
		ByeWeek:     byeWeeks[info.ProTeamID],
		Position:    pos,
		Projected:   projectedPoints(entry, week),
		IsMovable:   !entry.LineupLocked,
	}
}
