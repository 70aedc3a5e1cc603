package bot

import (
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier - доставка алертов воркера в Telegram (domain.NotificationService)
type Notifier struct {
	bot    *tgbotapi.BotAPI
	logger *slog.Logger
}

func NewNotifier(bot *tgbotapi.BotAPI, logger *slog.Logger) *Notifier {
	return &Notifier{bot: bot, logger: logger}
}

func (n *Notifier) NotifyUser(chatID int64, message string) error {
	msg := tgbotapi.NewMessage(chatID, message)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to notify user",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
