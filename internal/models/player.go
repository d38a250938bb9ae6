package models

import (
	"fmt"
	"math"
)

type Position int

const (
	Quarterback Position = iota
	RunningBack
	WideReceiver
	TightEnd
	Defense
	Kicker
	Flex
)

func (p Position) String() string {
	switch p {
	case Quarterback:
		return "QB"
	case RunningBack:
		return "RB"
	case WideReceiver:
		return "WR"
	case TightEnd:
		return "TE"
	case Defense:
		return "D/ST"
	case Kicker:
		return "K"
	case Flex:
		return "FLEX"
	default:
		return "Unknown"
	}
}

// IsFlexEligible reports whether a player at p may start in the flex slot.
func (p Position) IsFlexEligible() bool {
	return p == RunningBack || p == WideReceiver || p == TightEnd
}

type Eligibility int

const (
	EligibilityOK Eligibility = iota
	EligibilityQuestionable
	EligibilityOut
	EligibilityInjured
	EligibilitySuspended
)

func (e Eligibility) String() string {
	switch e {
	case EligibilityOK:
		return "OK"
	case EligibilityQuestionable:
		return "Questionable"
	case EligibilityOut:
		return "Out"
	case EligibilityInjured:
		return "Injured"
	case EligibilitySuspended:
		return "Suspended"
	default:
		return "Unknown"
	}
}

// projectionTolerance is the slack allowed when matching projected scores
// between two snapshots of the same player.
const projectionTolerance = 0.1

// Player is a rostered (or free agent) fantasy player. ID is the provider's
// player id and is zero for players that did not come from a provider.
type Player struct {
	ID          int
	Name        string
	Team        string
	Eligibility Eligibility
	ByeWeek     int
	Position    Position
	Projected   float64
	IsMovable   bool
}

// NullPlayer is the placeholder for an empty slot that still requires a
// player at position p.
func NullPlayer(p Position) Player {
	return Player{Position: p, IsMovable: true}
}

func (p Player) IsNull() bool {
	return p.Name == "" && p.Team == ""
}

// IsPlaying reports whether the player can score in week: not on bye and
// fully healthy. Any status other than OK disqualifies.
func (p Player) IsPlaying(week int) bool {
	if p.IsNull() {
		return false
	}
	return p.ByeWeek != week && p.Eligibility == EligibilityOK
}

// Equal compares players by value. Projections within 0.1 of each other are
// considered equal.
func (p Player) Equal(other Player) bool {
	return p.Name == other.Name &&
		p.Team == other.Team &&
		p.Eligibility == other.Eligibility &&
		p.ByeWeek == other.ByeWeek &&
		p.Position == other.Position &&
		math.Abs(p.Projected-other.Projected) < projectionTolerance
}

// Compare orders players by projected score.
func (p Player) Compare(other Player) int {
	switch {
	case p.Projected > other.Projected:
		return 1
	case p.Projected < other.Projected:
		return -1
	default:
		return 0
	}
}

func (p Player) String() string {
	if p.IsNull() {
		return fmt.Sprintf("<empty %s>", p.Position)
	}
	return fmt.Sprintf("%s: %s (%s)", p.Name, p.Position, p.Team)
}
