package models

type LeagueResponse struct {
	ID              int      `json:"id"`
	ScoringPeriodID int      `json:"scoringPeriodId"`
	SeasonID        int      `json:"seasonId"`
	SegmentID       int      `json:"segmentId"`
	Status          Status   `json:"status"`
	Teams           []Team   `json:"teams"`
	Settings        Settings `json:"settings"`
}

type Settings struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type Status struct {
	CurrentMatchupPeriod int  `json:"currentMatchupPeriod"`
	FinalScoringPeriod   int  `json:"finalScoringPeriod"`
	FirstScoringPeriod   int  `json:"firstScoringPeriod"`
	IsActive             bool `json:"isActive"`
}

type Team struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbrev"`
	Name         string `json:"name"`
	Roster       Roster `json:"roster"`
}

type Roster struct {
	Entries []RosterEntry `json:"entries"`
}

type RosterEntry struct {
	PlayerID        int             `json:"playerId"`
	PlayerPoolEntry PlayerPoolEntry `json:"playerPoolEntry"`
	LineupSlotID    int             `json:"lineupSlotId"`
}

type PlayerCardResponse struct {
	Players []PlayerPoolEntry `json:"players"`
}

type PlayerPoolEntry struct {
	ID               int        `json:"id"`
	OnTeamID         int        `json:"onTeamId"`
	Status           string     `json:"status"`
	LineupLocked     bool       `json:"lineupLocked"`
	Player           PlayerInfo `json:"player"`
	AppliedStatTotal float64    `json:"appliedStatTotal"`
}

type PlayerInfo struct {
	ID                int       `json:"id"`
	FullName          string    `json:"fullName"`
	DefaultPositionID int       `json:"defaultPositionId"`
	ProTeamID         int       `json:"proTeamId"`
	Ownership         Ownership `json:"ownership"`
	Stats             []Stat    `json:"stats"`
	InjuryStatus      string    `json:"injuryStatus"`
}

type Ownership struct {
	PercentOwned float64 `json:"percentOwned"`
}

type Stat struct {
	StatSourceID    int                `json:"statSourceId"`
	ScoringPeriodID int                `json:"scoringPeriodId"`
	AppliedTotal    float64            `json:"appliedTotal"`
	AppliedStats    map[string]float64 `json:"appliedStats"`
}

type ProTeamInfo struct {
	ID      int    `json:"id"`
	Abbrev  string `json:"abbrev"`
	ByeWeek int    `json:"byeWeek"`
	Name    string `json:"name"`
}

type ProScheduleResponse struct {
	Settings struct {
		ProTeams []ProTeamInfo `json:"proTeams"`
	} `json:"settings"`
}

// TransactionRequest is the body of a lineup or add/drop write. Lineup slot
// ids use -1 for "not applicable" since 0 is the QB slot.
type TransactionRequest struct {
	IsLeagueManager bool              `json:"isLeagueManager"`
	TeamID          int               `json:"teamId"`
	Type            string            `json:"type"`
	ScoringPeriodID int               `json:"scoringPeriodId"`
	ExecutionType   string            `json:"executionType"`
	Items           []TransactionItem `json:"items"`
}

type TransactionItem struct {
	PlayerID         int    `json:"playerId"`
	Type             string `json:"type"`
	FromTeamID       int    `json:"fromTeamId,omitempty"`
	ToTeamID         int    `json:"toTeamId,omitempty"`
	FromLineupSlotID int    `json:"fromLineupSlotId"`
	ToLineupSlotID   int    `json:"toLineupSlotId"`
}

type TransactionResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
