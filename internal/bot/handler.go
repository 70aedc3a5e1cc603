package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
	"github.com/romanzzaa/cex-arbitrage-bot/internal/presenter"
	"github.com/romanzzaa/cex-arbitrage-bot/internal/worker"
)

// callback data для inline-кнопок
const (
	cbCheckPrefix = "check_"
	cbCheckAll    = "check_ALL"
	cbMonitorOn   = "auto_monitor"
	cbMonitorOff  = "stop_monitor"
	cbBack        = "back"
)

// пауза между символами при проверке всех монет, чтобы не упереться
// в лимиты Telegram на отправку сообщений
const checkAllPause = time.Second

type Handler struct {
	bot       *tgbotapi.BotAPI
	screener  domain.SnapshotProvider
	manager   *worker.Manager
	symbols   []domain.SymbolConfig
	threshold decimal.Decimal
	logger    *slog.Logger
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	screener domain.SnapshotProvider,
	manager *worker.Manager,
	symbols []domain.SymbolConfig,
	threshold decimal.Decimal,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		bot:       bot,
		screener:  screener,
		manager:   manager,
		symbols:   symbols,
		threshold: threshold,
		logger:    logger,
	}
}

func (h *Handler) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			h.bot.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message != nil {
				go h.handleMessage(ctx, update.Message)
			} else if update.CallbackQuery != nil {
				go h.handleCallback(ctx, update.CallbackQuery)
			}
		}
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		return
	}

	switch msg.Command() {
	case "start":
		h.cmdStart(msg.Chat.ID)
	case "stop":
		h.manager.Stop(ctx, msg.Chat.ID)
		h.send(msg.Chat.ID, "⛔ Мониторинг остановлен")
	}
}

func (h *Handler) cmdStart(chatID int64) {
	text := "🤖 <b>DEX-CEX Арбитражный бот</b>\n\n" +
		"Отслеживаю разницу цен на:\n" +
		"• Binance, Gate.io, Bybit\n" +
		"• KuCoin, OKX, MEXC\n" +
		"• Huobi, Uniswap V3\n\n" +
		"Выберите действие:"

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = h.mainKeyboard()
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Error("failed to send start message", slog.String("error", err.Error()))
	}
}

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID

	switch {
	case cb.Data == cbCheckAll:
		h.answer(cb, "")
		h.checkAll(ctx, cb)

	case cb.Data == cbMonitorOn:
		h.monitorOn(ctx, cb)

	case cb.Data == cbMonitorOff:
		h.answer(cb, "")
		h.manager.Stop(ctx, chatID)
		h.edit(chatID, cb.Message.MessageID, "⛔ Мониторинг остановлен", nil)

	case cb.Data == cbBack:
		h.answer(cb, "")
		keyboard := h.mainKeyboard()
		h.edit(chatID, cb.Message.MessageID, "🤖 <b>DEX-CEX Арбитражный бот</b>\n\nВыберите действие:", &keyboard)

	case strings.HasPrefix(cb.Data, cbCheckPrefix):
		h.answer(cb, "")
		h.checkSymbol(ctx, cb, strings.TrimPrefix(cb.Data, cbCheckPrefix))
	}
}

// checkSymbol - разовая проверка одного символа по кнопке
func (h *Handler) checkSymbol(ctx context.Context, cb *tgbotapi.CallbackQuery, key string) {
	chatID := cb.Message.Chat.ID

	cfg, ok := domain.FindSymbol(h.symbols, key)
	if !ok {
		h.edit(chatID, cb.Message.MessageID, "❌ Неизвестный символ", nil)
		return
	}

	h.edit(chatID, cb.Message.MessageID, fmt.Sprintf("⏳ Проверяю %s...", cfg.Name), nil)

	snapshot, err := h.screener.Snapshot(ctx, cfg)
	if err != nil {
		if errors.Is(err, domain.ErrNotEnoughData) {
			h.edit(chatID, cb.Message.MessageID, fmt.Sprintf("❌ Недостаточно данных для %s", cfg.Name), nil)
			return
		}
		h.logger.Error("symbol check failed",
			slog.String("symbol", key),
			slog.String("error", err.Error()))
		h.edit(chatID, cb.Message.MessageID, "❌ Ошибка проверки, попробуйте позже", nil)
		return
	}

	keyboard := backKeyboard()
	h.edit(chatID, cb.Message.MessageID, presenter.FormatReport(snapshot, h.threshold), &keyboard)
}

// checkAll - последовательная проверка всех символов, каждый отдельным сообщением
func (h *Handler) checkAll(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	h.edit(chatID, cb.Message.MessageID, "⏳ Проверяю все монеты...", nil)

	for _, cfg := range h.symbols {
		snapshot, err := h.screener.Snapshot(ctx, cfg)
		if err != nil {
			// Символ без данных просто пропускаем, остальные не страдают
			if !errors.Is(err, domain.ErrNotEnoughData) {
				h.logger.Error("symbol check failed",
					slog.String("symbol", cfg.Key),
					slog.String("error", err.Error()))
			}
			continue
		}

		h.send(chatID, presenter.FormatReport(snapshot, h.threshold))

		select {
		case <-ctx.Done():
			return
		case <-time.After(checkAllPause):
		}
	}

	msg := tgbotapi.NewMessage(chatID, "✅ Проверка завершена!")
	msg.ReplyMarkup = backKeyboard()
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Error("failed to send message", slog.String("error", err.Error()))
	}
}

func (h *Handler) monitorOn(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID

	if err := h.manager.Start(ctx, chatID); err != nil {
		if errors.Is(err, worker.ErrAlreadyRunning) {
			h.answer(cb, "Мониторинг уже запущен!")
			return
		}
		h.logger.Error("failed to start monitoring",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
		h.answer(cb, "Не удалось запустить мониторинг")
		return
	}

	h.answer(cb, "")
	text := "🔔 <b>Авто-мониторинг включен!</b>\n\n" +
		fmt.Sprintf("Буду отправлять уведомления о разнице &gt; %s%%\n", h.threshold.String()) +
		"Проверка каждые 60 секунд\n\n" +
		"Для остановки нажмите 'Остановить мониторинг'"
	h.edit(chatID, cb.Message.MessageID, text, nil)
}

// --- UI helpers ---

func (h *Handler) mainKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range h.symbols {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 "+s.Name, cbCheckPrefix+s.Key),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔄 Все монеты", cbCheckAll)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🔔 Авто-мониторинг", cbMonitorOn)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("⛔ Остановить мониторинг", cbMonitorOff)),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", cbBack),
		),
	)
}

func (h *Handler) send(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := h.bot.Send(msg)
	if err != nil {
		h.logger.Error("failed to send message",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
	}
	return err
}

func (h *Handler) edit(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewEditMessageText(chatID, messageID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Error("failed to edit message", slog.String("error", err.Error()))
	}
}

func (h *Handler) answer(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		h.logger.Error("failed to answer callback", slog.String("error", err.Error()))
	}
}
