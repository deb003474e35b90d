package notifier

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-rest-api/pkg/config"
	"github.com/orgball2608/insta-rest-api/pkg/logger"
)

// Telegram sends alerts to the configured operator chat. Messages are
// MarkdownV2; callers escape dynamic parts with formatter.EscapeMarkdownV2.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger logger.Logger
}

func newTelegram(cfg *config.Config, log logger.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Telegram{
		bot:    bot,
		chatID: cfg.Telegram.User,
		logger: log.WithComponent("Notifier"),
	}, nil
}

var _ Notifier = (*Telegram)(nil)

func (t *Telegram) Notify(message string) {
	msg := tgbotapi.NewMessage(t.chatID, message)
	msg.ParseMode = tgbotapi.ModeMarkdownV2

	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Error("Failed to send alert", "chatID", t.chatID, "error", err)
		return
	}
	t.logger.Debug("Alert sent", "chatID", t.chatID)
}
