package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/omarshaarawi/rosterbot/internal/action"
	"github.com/omarshaarawi/rosterbot/internal/config"
	"github.com/omarshaarawi/rosterbot/internal/models"
	"github.com/omarshaarawi/rosterbot/internal/planner"
	"github.com/omarshaarawi/rosterbot/internal/repository/memory"
	"github.com/omarshaarawi/rosterbot/internal/roster"
)

// League is the provider the service plans against.
type League interface {
	GetLeagueMetadata(ctx context.Context) (*models.LeagueMetadata, error)
	Team(week int) planner.Team
}

type RosterService struct {
	api  League
	repo *memory.Repository
	opts planner.Options
	now  func() time.Time

	// cycles serialises ManageTeam so the scheduler and a chat command
	// never replay against the provider at the same time
	cycles sync.Mutex
}

func NewRosterService(api League, repo *memory.Repository, cfg config.Planner) *RosterService {
	return &RosterService{
		api:  api,
		repo: repo,
		opts: planner.Options{
			FailureThreshold: cfg.FailureThreshold,
			UseWaivers:       cfg.UseWaivers,
		},
		now: time.Now,
	}
}

func (s *RosterService) GetCurrentWeek(ctx context.Context) (int, error) {
	metadata, err := s.getLeagueMetadata(ctx)
	if err != nil {
		week := WeekForDate(s.now())
		slog.Warn("Using calendar week", "week", week, "error", err)
		return week, nil
	}

	week := metadata.CurrentScoringPeriod
	if week < 1 {
		week = WeekForDate(s.now())
	}
	slog.Info("Current week", "week", week)
	return week, nil
}

func (s *RosterService) getLeagueMetadata(ctx context.Context) (*models.LeagueMetadata, error) {
	metadata := s.repo.GetMetadata()
	if metadata == nil || s.now().Sub(metadata.LastUpdated) > 24*time.Hour {
		newMetadata, err := s.api.GetLeagueMetadata(ctx)
		if err != nil {
			return nil, err
		}
		s.repo.SaveMetadata(newMetadata)
		return newMetadata, nil
	}
	return metadata, nil
}

// ManageTeam runs one planning cycle for the current week and returns a
// summary. The summary is returned alongside a cycle error whenever the
// cycle got far enough to produce one.
func (s *RosterService) ManageTeam(ctx context.Context) (string, error) {
	s.cycles.Lock()
	defer s.cycles.Unlock()

	week, err := s.GetCurrentWeek(ctx)
	if err != nil {
		return "", fmt.Errorf("error fetching current week: %w", err)
	}

	m, err := planner.NewManagerFromTeam(ctx, s.api.Team(week), s.opts)
	if err != nil {
		return "", fmt.Errorf("error loading roster: %w", err)
	}

	result, runErr := m.ManageTeam(ctx, week)
	report := &models.CycleReport{
		CycleID:  result.CycleID,
		Week:     week,
		RanAt:    s.now(),
		Executed: result.Report.Executed,
		Skipped:  result.Report.Skipped,
		Lineup:   m.Roster().Players(),
	}
	for _, a := range result.Actions {
		report.Actions = append(report.Actions, a.String())
	}
	for _, f := range result.Report.Failures {
		report.Failures = append(report.Failures, fmt.Sprintf("%s: %v", f.Action, f.Err))
	}
	if runErr != nil {
		report.Error = runErr.Error()
	}
	s.repo.SaveCycle(report)

	summary := formatCycle(report)
	if runErr != nil {
		return summary, fmt.Errorf("error managing team: %w", runErr)
	}
	return summary, nil
}

// PreviewPlan plans the current week without touching the provider.
func (s *RosterService) PreviewPlan(ctx context.Context) (string, error) {
	week, err := s.GetCurrentWeek(ctx)
	if err != nil {
		return "", fmt.Errorf("error fetching current week: %w", err)
	}

	players, err := s.api.Team(week).GetPlayers(ctx)
	if err != nil {
		return "", fmt.Errorf("error fetching roster: %w", err)
	}
	r, err := roster.New(players)
	if err != nil {
		return "", fmt.Errorf("error building roster: %w", err)
	}

	actions, err := planner.Plan(r, week, s.opts.UseWaivers)
	if err != nil {
		return "", fmt.Errorf("error planning week %d: %w", week, err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📝 *Week %d Plan* (dry run)\n\n", week))
	if len(actions) == 0 {
		sb.WriteString("✅ Every starter can play. Nothing to do.\n")
		return sb.String(), nil
	}
	for i, line := range describeActions(players, actions) {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, line))
	}
	return sb.String(), nil
}

func (s *RosterService) GetLineup(ctx context.Context) (string, error) {
	week, err := s.GetCurrentWeek(ctx)
	if err != nil {
		return "", fmt.Errorf("error fetching current week: %w", err)
	}

	players, err := s.api.Team(week).GetPlayers(ctx)
	if err != nil {
		return "", fmt.Errorf("error fetching roster: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *Week %d Lineup*\n", week))
	writeLineup(&sb, players, week)
	return sb.String(), nil
}

func (s *RosterService) LastCycle() string {
	report := s.repo.LastCycle()
	if report == nil {
		return "No roster update has run yet."
	}
	return formatCycle(report)
}

func formatCycle(report *models.CycleReport) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🤖 *Week %d Roster Update*\n", report.Week))
	sb.WriteString(fmt.Sprintf("_%s_\n\n", report.RanAt.Format("Mon Jan 2 15:04 MST")))

	if len(report.Actions) == 0 {
		sb.WriteString("✅ Every starter can play. No changes made.\n")
	} else {
		sb.WriteString(fmt.Sprintf("Executed %d of %d actions\n", report.Executed, len(report.Actions)))
		for _, a := range report.Actions {
			sb.WriteString(fmt.Sprintf("• %s\n", a))
		}
	}

	if len(report.Failures) > 0 {
		sb.WriteString("\n⚠️ *Failures*\n")
		for _, f := range report.Failures {
			sb.WriteString(fmt.Sprintf("• %s\n", f))
		}
	}
	if report.Skipped > 0 {
		sb.WriteString(fmt.Sprintf("⏭️ %d actions skipped\n", report.Skipped))
	}
	if report.Error != "" {
		sb.WriteString(fmt.Sprintf("\n❌ %s\n", report.Error))
	}

	if len(report.Lineup) > 0 {
		writeLineup(&sb, report.Lineup, report.Week)
	}
	return sb.String()
}

func writeLineup(sb *strings.Builder, players []models.Player, week int) {
	sb.WriteString("\n*Starters*\n")
	for i, p := range players {
		if i == roster.StarterCount {
			sb.WriteString("\n*Bench*\n")
		}
		sb.WriteString(formatPlayerLine(i, p, week))
	}
}

func formatPlayerLine(slot int, p models.Player, week int) string {
	label := slotLabel(slot)
	if p.IsNull() {
		return fmt.Sprintf("`%-4s` _empty_\n", label)
	}

	line := fmt.Sprintf("`%-4s` %s (%s) %.1f pts", label, p.Name, p.Team, p.Projected)
	switch {
	case p.ByeWeek == week:
		line += " 💤 bye"
	case p.Eligibility != models.EligibilityOK:
		line += " 🚑 " + p.Eligibility.String()
	}
	return line + "\n"
}

func slotLabel(slot int) string {
	pos, err := roster.SlotPosition(slot)
	if err != nil {
		return "BN"
	}
	return pos.String()
}

// describeActions replays actions over players so each step can be named
// by the players it moves rather than by slot index.
func describeActions(players []models.Player, actions []action.Action) []string {
	lineup := make([]models.Player, len(players))
	copy(lineup, players)

	name := func(slot int) string {
		p := lineup[slot]
		if p.IsNull() {
			return fmt.Sprintf("free agent %s", p.Position)
		}
		return p.Name
	}

	lines := make([]string, 0, len(actions))
	for _, a := range actions {
		switch a.Kind {
		case action.KindSwap:
			lines = append(lines, fmt.Sprintf("Start %s at %s, bench %s",
				name(a.SlotB), slotLabel(a.SlotA), name(a.SlotA)))
			lineup[a.SlotA], lineup[a.SlotB] = lineup[a.SlotB], lineup[a.SlotA]
		case action.KindAddFreeAgent:
			line := fmt.Sprintf("Drop %s for the best %s free agent", name(a.DropSlot), a.Position)
			if lineup[a.DropSlot].IsNull() {
				line = fmt.Sprintf("Sign the best %s free agent", a.Position)
			}
			if a.UseWaivers {
				line += " (waivers allowed)"
			}
			lines = append(lines, line)
			lineup[a.DropSlot] = models.NullPlayer(a.Position)
		default:
			lines = append(lines, a.String())
		}
	}
	return lines
}
