package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/rosterbot/internal/config"
)

// TeamManager runs one roster cycle and returns a chat summary.
type TeamManager interface {
	ManageTeam(ctx context.Context) (string, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	cfg         config.Schedule
	manager     TeamManager
	sendMessage func(string) error
}

func NewScheduler(cfg config.Schedule, manager TeamManager, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", cfg.Timezone, err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		cfg:         cfg,
		manager:     manager,
		sendMessage: sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	// Roster management - MANAGE_SCHEDULE, Sunday 9:00 by default
	_, err := s.s.NewJob(
		gocron.CronJob(s.cfg.ManageCron, false),
		gocron.NewTask(s.manageTeam),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create manage team job: %w", err)
	}

	s.s.Start()

	if next, err := s.cfg.NextRun(time.Now()); err == nil {
		slog.Info("Roster management scheduled", "schedule", s.cfg.ManageCron, "next_run", next)
	}
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) manageTeam() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	summary, err := s.manager.ManageTeam(ctx)
	if err != nil {
		slog.Error("Failed to manage team", "error", err)
		if summary == "" {
			summary = fmt.Sprintf("❌ Roster update failed: %v", err)
		}
	}
	if err := s.sendMessage(summary); err != nil {
		slog.Error("Failed to send roster update", "error", err)
	}
}
