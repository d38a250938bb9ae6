package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxMessageLength is Telegram's limit on a single message text.
const maxMessageLength = 4096

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, rosterService RosterService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(rosterService, chatID),
		chatID:  chatID,
	}, nil
}

// Start answers commands until ctx is cancelled. It returns an error if
// Telegram closes the update stream first.
func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName, "chat_id", t.chatID)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return errors.New("telegram update channel closed")
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			start := time.Now()
			msg := t.handler.HandleCommand(ctx, update)
			if err := t.send(msg); err != nil {
				slog.Error("Error sending message", "error", err, "chat_id", msg.ChatID)
				continue
			}
			slog.Info("Handled command",
				"command", update.Message.Command(),
				"chat_id", update.Message.Chat.ID,
				"duration", time.Since(start))
		case <-ctx.Done():
			return nil
		}
	}
}

func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Chat ID not set")
		return fmt.Errorf("chat ID not set")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "Markdown"
	err := t.send(msg)
	if err != nil {
		slog.Error("Error sending message", "error", err)
	}
	return err
}

// send delivers msg, split on line boundaries when it is too long for a
// single Telegram message.
func (t *TelegramBot) send(msg tgbotapi.MessageConfig) error {
	for _, part := range splitMessage(msg.Text, maxMessageLength) {
		chunk := msg
		chunk.Text = part
		if _, err := t.bot.Send(chunk); err != nil {
			return err
		}
	}
	return nil
}

// splitMessage cuts text into pieces of at most limit bytes, breaking after
// a newline where possible. A single line longer than limit is cut at a rune boundary.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var parts []string
	var sb strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > limit {
			if sb.Len() > 0 {
				parts = append(parts, sb.String())
				sb.Reset()
			}
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			parts = append(parts, line[:cut])
			line = line[cut:]
		}
		if sb.Len()+len(line) > limit {
			parts = append(parts, sb.String())
			sb.Reset()
		}
		sb.WriteString(line)
	}
	if sb.Len() > 0 {
		parts = append(parts, sb.String())
	}
	return parts
}
