package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// RosterService is what the chat commands drive.
type RosterService interface {
	GetCurrentWeek(ctx context.Context) (int, error)
	ManageTeam(ctx context.Context) (string, error)
	PreviewPlan(ctx context.Context) (string, error)
	GetLineup(ctx context.Context) (string, error)
	LastCycle() string
}

const helpText = "Available commands:\n" +
	"/lineup - Show the current lineup\n" +
	"/plan - Preview this week's substitutions without making them\n" +
	"/manage - Run the substitutions now\n" +
	"/week - Show the current week\n" +
	"/last - Show the last roster update"

type Handler struct {
	rosterService RosterService
	// chatID is the only chat allowed to change the roster
	chatID int64
}

func NewHandler(rosterService RosterService, chatID int64) *Handler {
	return &Handler{rosterService: rosterService, chatID: chatID}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to RosterBot! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "lineup":
		h.handleLineup(ctx, &msg)
	case "plan":
		h.handlePlan(ctx, &msg)
	case "manage":
		h.handleManage(ctx, &msg, update.Message.Chat.ID)
	case "week":
		h.handleWeek(ctx, &msg)
	case "last":
		msg.Text = h.rosterService.LastCycle()
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleLineup(ctx context.Context, msg *tgbotapi.MessageConfig) {
	lineup, err := h.rosterService.GetLineup(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching lineup: %v", err)
	} else {
		msg.Text = lineup
	}
}

func (h *Handler) handlePlan(ctx context.Context, msg *tgbotapi.MessageConfig) {
	plan, err := h.rosterService.PreviewPlan(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error planning substitutions: %v", err)
	} else {
		msg.Text = plan
	}
}

func (h *Handler) handleManage(ctx context.Context, msg *tgbotapi.MessageConfig, fromChat int64) {
	if h.chatID != 0 && fromChat != h.chatID {
		msg.Text = "This chat is not allowed to change the roster."
		return
	}
	summary, err := h.rosterService.ManageTeam(ctx)
	switch {
	case err != nil && summary != "":
		msg.Text = summary
	case err != nil:
		msg.Text = fmt.Sprintf("Error managing team: %v", err)
	default:
		msg.Text = summary
	}
}

func (h *Handler) handleWeek(ctx context.Context, msg *tgbotapi.MessageConfig) {
	week, err := h.rosterService.GetCurrentWeek(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching current week: %v", err)
	} else {
		msg.Text = fmt.Sprintf("📅 It is week %d.", week)
	}
}
