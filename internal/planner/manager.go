package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/omarshaarawi/rosterbot/internal/action"
	"github.com/omarshaarawi/rosterbot/internal/models"
	"github.com/omarshaarawi/rosterbot/internal/roster"
)

// Team is the league provider. It is the source of truth for the roster;
// GetPlayers returns starters in structural order followed by the bench.
// GetPlayer and UpdatePlayer complete the provider contract for callers
// that inspect single players; the planning cycle itself only reads
// GetPlayers.
type Team interface {
	action.Team
	GetPlayers(ctx context.Context) ([]models.Player, error)
	GetPlayer(ctx context.Context, slot int) (models.Player, error)
	UpdatePlayer(ctx context.Context, player models.Player) (models.Player, error)
}

type Options struct {
	FailureThreshold int
	UseWaivers       bool
	Logger           *slog.Logger
}

type Result struct {
	CycleID string
	Week    int
	Actions []action.Action
	Report  action.Report
}

// Manager owns a roster for the length of a planning cycle. It is not safe
// for concurrent use.
type Manager struct {
	roster     *roster.Roster
	team       Team
	threshold  int
	useWaivers bool
	logger     *slog.Logger
}

func NewManager(r *roster.Roster, team Team, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		roster:     r,
		team:       team,
		threshold:  opts.FailureThreshold,
		useWaivers: opts.UseWaivers,
		logger:     logger,
	}
}

// NewManagerFromTeam reads the current roster from team.
func NewManagerFromTeam(ctx context.Context, team Team, opts Options) (*Manager, error) {
	r, err := fetchRoster(ctx, team)
	if err != nil {
		return nil, err
	}
	return NewManager(r, team, opts), nil
}

func (m *Manager) Roster() *roster.Roster {
	return m.roster
}

// ManageTeam plans substitutions for week, replays them against the team and
// rebuilds the roster from the team afterwards. The roster is rebuilt even
// when replay gives up, so Roster always reflects the provider.
func (m *Manager) ManageTeam(ctx context.Context, week int) (Result, error) {
	result := Result{CycleID: uuid.NewString(), Week: week}
	logger := m.logger.With("cycle_id", result.CycleID, "week", week)

	actions, err := Plan(m.roster, week, m.useWaivers)
	if err != nil {
		return result, fmt.Errorf("planning week %d: %w", week, err)
	}
	result.Actions = actions
	logger.Info("Planned roster actions", "count", len(actions))
	for i, a := range actions {
		logger.Debug("Planned action", "index", i, "action", a.String())
	}

	report, execErr := action.NewExecutor(m.team, m.threshold, logger).Run(ctx, actions)
	result.Report = report

	r, err := fetchRoster(ctx, m.team)
	if err != nil {
		return result, errors.Join(execErr, fmt.Errorf("rebuilding roster: %w", err))
	}
	m.roster = r

	if execErr != nil {
		return result, execErr
	}
	logger.Info("Roster managed", "executed", report.Executed, "failures", len(report.Failures))
	return result, nil
}

func fetchRoster(ctx context.Context, team Team) (*roster.Roster, error) {
	players, err := team.GetPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching players: %w", err)
	}
	r, err := roster.New(players)
	if err != nil {
		return nil, fmt.Errorf("building roster: %w", err)
	}
	return r, nil
}
