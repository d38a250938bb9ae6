package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	TelegramBot TelegramBot
	ESPNAPI     ESPNAPI
	Planner     Planner
	Schedule    Schedule
	HTTP        HTTP
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID int64  `envconfig:"CHAT_ID" required:"true"`
}

type ESPNAPI struct {
	Year      string `envconfig:"YEAR" required:"true"`
	LeagueID  string `envconfig:"LEAGUE_ID" required:"true"`
	TeamID    int    `envconfig:"TEAM_ID" required:"true"`
	SWID      string `envconfig:"SWID" required:"true"`
	ESPNS2    string `envconfig:"ESPN_S2" required:"true"`
	ReadsURL  string `envconfig:"ESPN_READS_URL" default:"https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"`
	WritesURL string `envconfig:"ESPN_WRITES_URL" default:"https://lm-api-writes.fantasy.espn.com/apis/v3/games/ffl"`
}

type Planner struct {
	// FailureThreshold is the number of failed roster actions that ends a cycle.
	FailureThreshold int  `envconfig:"FAILURE_THRESHOLD" default:"2"`
	UseWaivers       bool `envconfig:"USE_WAIVERS" default:"false"`
	FreeAgentPool    int  `envconfig:"FREE_AGENT_POOL" default:"10"`
}

type Schedule struct {
	// ManageCron is a standard five field cron expression.
	ManageCron string `envconfig:"MANAGE_SCHEDULE" default:"0 9 * * 0"`
	Timezone   string `envconfig:"TIMEZONE" default:"America/Chicago"`
}

type HTTP struct {
	Addr            string        `envconfig:"HTTP_ADDR" default:":80"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"5s"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c.Planner.FailureThreshold < 1 {
		return fmt.Errorf("FAILURE_THRESHOLD must be at least 1, got %d", c.Planner.FailureThreshold)
	}
	if c.Planner.FreeAgentPool < 1 {
		return fmt.Errorf("FREE_AGENT_POOL must be at least 1, got %d", c.Planner.FreeAgentPool)
	}
	if _, err := c.Schedule.Parse(); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Schedule.Timezone, err)
	}
	return nil
}

// Parse validates ManageCron.
func (s Schedule) Parse() (cron.Schedule, error) {
	sched, err := cron.ParseStandard(s.ManageCron)
	if err != nil {
		return nil, fmt.Errorf("invalid MANAGE_SCHEDULE %q: %w", s.ManageCron, err)
	}
	return sched, nil
}

// NextRun reports when the manage job fires next after t.
func (s Schedule) NextRun(t time.Time) (time.Time, error) {
	sched, err := s.Parse()
	if err != nil {
		return time.Time{}, err
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid TIMEZONE %q: %w", s.Timezone, err)
	}
	return sched.Next(t.In(loc)), nil
}
