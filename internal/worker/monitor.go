package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
)

// ErrAlreadyRunning - у чата уже есть активный мониторинг.
// Это мягкое предупреждение для UI, а не сбой.
var ErrAlreadyRunning = errors.New("monitoring already running for this chat")

// RenderFunc превращает результат проверки в текст уведомления.
// Передается снаружи, чтобы воркер не зависел от Telegram-формата.
type RenderFunc func(snapshot domain.Snapshot, threshold decimal.Decimal) string

// Options - параметры цикла мониторинга
type Options struct {
	Interval     time.Duration   // период тика
	InitialDelay time.Duration   // пауза до первого тика
	Threshold    decimal.Decimal // порог алерта в процентах
	Cooldown     time.Duration   // окно подавления повторов (throttle)
}

// Manager владеет всеми подписками на авто-мониторинг: по одному
// повторяющемуся циклу на чат. Инвариант: не больше одного активного
// цикла на chatID, start поверх активного - no-op c ErrAlreadyRunning,
// stop идемпотентен.
type Manager struct {
	screener  domain.SnapshotProvider
	notifier  domain.NotificationService
	subRepo   domain.SubscriptionRepository
	alertRepo domain.AlertRepository // может быть nil - журнал опционален
	throttle  domain.AlertThrottle   // может быть nil - подавление опционально
	render    RenderFunc
	symbols   []domain.SymbolConfig
	opts      Options
	logger    *slog.Logger

	mu   sync.Mutex
	subs map[int64]context.CancelFunc
}

func NewManager(
	screener domain.SnapshotProvider,
	notifier domain.NotificationService,
	subRepo domain.SubscriptionRepository,
	alertRepo domain.AlertRepository,
	throttle domain.AlertThrottle,
	render RenderFunc,
	symbols []domain.SymbolConfig,
	opts Options,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		screener:  screener,
		notifier:  notifier,
		subRepo:   subRepo,
		alertRepo: alertRepo,
		throttle:  throttle,
		render:    render,
		symbols:   symbols,
		opts:      opts,
		logger:    logger,
		subs:      make(map[int64]context.CancelFunc),
	}
}

// Start запускает цикл мониторинга для чата. Проверка флага и запуск -
// одна критическая секция, иначе два конкурентных start создадут два цикла.
func (m *Manager) Start(ctx context.Context, chatID int64) error {
	m.mu.Lock()
	if _, running := m.subs[chatID]; running {
		m.mu.Unlock()
		return ErrAlreadyRunning
	}
	loopCtx, cancel := context.WithCancel(ctx)
	m.subs[chatID] = cancel
	m.mu.Unlock()

	if err := m.subRepo.SetActive(ctx, chatID, true); err != nil {
		m.logger.Error("failed to persist subscription",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
	}

	go m.runLoop(loopCtx, chatID)

	m.logger.Info("monitoring started",
		slog.Int64("chat_id", chatID),
		slog.Duration("interval", m.opts.Interval))
	return nil
}

// Stop отменяет цикл чата. Уже идущий тик довершится, но перед отправкой
// еще раз проверит флаг и выйдет без побочных эффектов. Повторный stop - no-op.
func (m *Manager) Stop(ctx context.Context, chatID int64) {
	m.mu.Lock()
	cancel, running := m.subs[chatID]
	if running {
		delete(m.subs, chatID)
	}
	m.mu.Unlock()

	if !running {
		return
	}
	cancel()

	if err := m.subRepo.SetActive(ctx, chatID, false); err != nil {
		m.logger.Error("failed to persist subscription",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
	}

	m.logger.Info("monitoring stopped", slog.Int64("chat_id", chatID))
}

// IsRunning - активен ли мониторинг для чата
func (m *Manager) IsRunning(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, running := m.subs[chatID]
	return running
}

// Restore поднимает мониторинг для чатов, у которых подписка была активна
// до рестарта процесса.
func (m *Manager) Restore(ctx context.Context) error {
	chatIDs, err := m.subRepo.GetActiveChatIDs(ctx)
	if err != nil {
		return err
	}

	for _, chatID := range chatIDs {
		if err := m.Start(ctx, chatID); err != nil && !errors.Is(err, ErrAlreadyRunning) {
			m.logger.Error("failed to restore subscription",
				slog.Int64("chat_id", chatID),
				slog.String("error", err.Error()))
		}
	}

	m.logger.Info("subscriptions restored", slog.Int("count", len(chatIDs)))
	return nil
}

func (m *Manager) runLoop(ctx context.Context, chatID int64) {
	delay := time.NewTimer(m.opts.InitialDelay)
	defer delay.Stop()

	select {
	case <-ctx.Done():
		return
	case <-delay.C:
	}
	m.tick(ctx, chatID)

	ticker := time.NewTicker(m.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx, chatID)
		}
	}
}

// tick - одно прохождение по всем символам. Сбой на одном символе не
// прерывает обработку остальных.
func (m *Manager) tick(ctx context.Context, chatID int64) {
	// Гонка stop/tick: тик, стартовавший одновременно с остановкой,
	// должен увидеть снятый флаг и выйти молча.
	if !m.IsRunning(chatID) || ctx.Err() != nil {
		return
	}

	for _, cfg := range m.symbols {
		snapshot, err := m.screener.Snapshot(ctx, cfg)
		if err != nil {
			if !errors.Is(err, domain.ErrNotEnoughData) {
				m.logger.Warn("symbol check failed",
					slog.String("symbol", cfg.Key),
					slog.String("error", err.Error()))
			}
			continue
		}

		if !snapshot.HasOpportunityAbove(m.opts.Threshold) {
			continue
		}

		m.deliver(ctx, chatID, snapshot)
	}
}

func (m *Manager) deliver(ctx context.Context, chatID int64, snapshot domain.Snapshot) {
	if m.throttle != nil {
		allowed, err := m.throttle.Allow(ctx, chatID, snapshot.Symbol.Key, m.opts.Cooldown)
		if err != nil {
			// Недоступный throttle не должен глушить алерты
			m.logger.Warn("alert throttle failed",
				slog.String("error", err.Error()))
		} else if !allowed {
			return
		}
	}

	message := m.render(snapshot, m.opts.Threshold)
	if err := m.notifier.NotifyUser(chatID, message); err != nil {
		m.logger.Error("failed to deliver alert",
			slog.Int64("chat_id", chatID),
			slog.String("symbol", snapshot.Symbol.Key),
			slog.String("error", err.Error()))
		return
	}

	m.logger.Info("alert delivered",
		slog.Int64("chat_id", chatID),
		slog.String("symbol", snapshot.Symbol.Key),
		slog.String("max_diff", snapshot.MaxDifference().StringFixed(2)))

	if m.alertRepo != nil {
		alert := domain.Alert{
			ID:         uuid.NewString(),
			ChatID:     chatID,
			SymbolKey:  snapshot.Symbol.Key,
			Difference: snapshot.MaxDifference(),
			SentAt:     time.Now(),
		}
		if err := m.alertRepo.Save(ctx, alert); err != nil {
			m.logger.Error("failed to log alert", slog.String("error", err.Error()))
		}
	}
}
