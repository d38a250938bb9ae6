package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/rosterbot/internal/api/espn"
	"github.com/omarshaarawi/rosterbot/internal/api/fantasy"
	"github.com/omarshaarawi/rosterbot/internal/bot"
	"github.com/omarshaarawi/rosterbot/internal/config"
	"github.com/omarshaarawi/rosterbot/internal/repository/memory"
	"github.com/omarshaarawi/rosterbot/internal/scheduler"
	"github.com/omarshaarawi/rosterbot/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	espnClient := espn.NewClient(cfg.ESPNAPI)
	espnAPI := espn.NewAPI(espnClient)
	fantasyAPI := fantasy.NewAPI(espnAPI, cfg.ESPNAPI.TeamID, cfg.Planner.FreeAgentPool)

	repo := memory.NewRepository()
	rosterService := service.NewRosterService(fantasyAPI, repo, cfg.Planner)

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, rosterService)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(cfg.Schedule, rosterService, telegramBot.SendMessage)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := newHTTPServer(cfg.HTTP.Addr, repo)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
			stop()
		}
	}()

	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
			stop()
		}
	}()

	slog.Info("RosterBot started",
		"league_id", cfg.ESPNAPI.LeagueID,
		"team_id", cfg.ESPNAPI.TeamID,
		"schedule", cfg.Schedule.ManageCron,
		"timezone", cfg.Schedule.Timezone,
		"use_waivers", cfg.Planner.UseWaivers,
		"http_addr", cfg.HTTP.Addr)

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error stopping HTTP server", "error", err)
	}

	select {
	case <-botDone:
	case <-shutdownCtx.Done():
		slog.Warn("Telegram bot did not stop in time")
	}

	return nil
}
