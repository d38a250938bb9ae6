package action

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omarshaarawi/rosterbot/internal/models"
)

const DefaultFailureThreshold = 2

// Team is the subset of the league provider that actions mutate. Both calls
// address roster slots by index; AddFreeAgent places the new player in slot,
// which drop currently occupies (or which is empty when drop is null).
type Team interface {
	SwapPlayers(ctx context.Context, slotA, slotB int) error
	AddFreeAgent(ctx context.Context, pos models.Position, drop models.Player, slot int, useWaivers bool) error
}

type Failure struct {
	Action Action
	Err    error
}

type Report struct {
	Executed int
	Failures []Failure
	// Skipped counts actions discarded after the threshold was reached.
	Skipped int
}

type Executor struct {
	team      Team
	threshold int
	logger    *slog.Logger
}

func NewExecutor(team Team, threshold int, logger *slog.Logger) *Executor {
	if threshold < 1 {
		threshold = DefaultFailureThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{team: team, threshold: threshold, logger: logger}
}

func (e *Executor) Threshold() int {
	return e.threshold
}

// Run replays actions in order. A failed action is abandoned and counted;
// the threshold-th failure stops the replay and discards everything left in
// the queue.
func (e *Executor) Run(ctx context.Context, actions []Action) (Report, error) {
	var report Report

	for i, a := range actions {
		if err := ctx.Err(); err != nil {
			report.Skipped = len(actions) - i
			return report, fmt.Errorf("replaying actions: %w", err)
		}

		e.logger.Info("Executing action", "index", i, "action", a.String())
		err := e.apply(ctx, a)
		if err == nil {
			report.Executed++
			continue
		}

		report.Failures = append(report.Failures, Failure{Action: a, Err: err})
		if len(report.Failures) >= e.threshold {
			report.Skipped = len(actions) - i - 1
			e.logger.Error("Action failed, giving up", "action", a.String(), "failures", len(report.Failures), "skipped", report.Skipped, "error", err)
			return report, fmt.Errorf("%w: %d of %d actions failed, last: %w", models.ErrTooManyFailures, len(report.Failures), len(actions), err)
		}
		e.logger.Warn("Action failed", "action", a.String(), "failures", len(report.Failures), "error", err)
	}

	return report, nil
}

func (e *Executor) apply(ctx context.Context, a Action) error {
	switch a.Kind {
	case KindSwap:
		return e.team.SwapPlayers(ctx, a.SlotA, a.SlotB)
	case KindAddFreeAgent:
		return e.team.AddFreeAgent(ctx, a.Position, a.Drop, a.DropSlot, a.UseWaivers)
	default:
		return fmt.Errorf("unknown action kind %d", a.Kind)
	}
}
