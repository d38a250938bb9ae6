package models

import "time"

type LeagueMetadata struct {
	LeagueID             int
	Name                 string
	CurrentWeek          int
	CurrentScoringPeriod int
	SeasonID             int
	FirstWeek            int
	LastWeek             int
	IsActive             bool
	LastUpdated          time.Time
}

// CycleReport summarises one ManageTeam run for later display.
type CycleReport struct {
	CycleID  string
	Week     int
	RanAt    time.Time
	DryRun   bool
	Actions  []string
	Executed int
	Failures []string
	Skipped  int
	Lineup   []Player
	Error    string
}
