package domain

import (
	"context"
	"time"
)

// QuoteSource - адаптер к одному источнику цен (CEX).
// Любая проблема (сеть, статус, битый ответ) возвращается ошибкой,
// которую вызывающий трактует как "данных нет". Паник не бывает.
type QuoteSource interface {
	Name() string
	Fetch(ctx context.Context, symbolID string) (*Quote, error)
}

// PairQuoteSource - источник цен DEX: вместо тикера принимает пару токенов.
// В остальном контракт тот же, что у QuoteSource.
type PairQuoteSource interface {
	Name() string
	FetchPair(ctx context.Context, pair TokenPair) (*Quote, error)
}

// SnapshotProvider - вход ядра: одна проверка одного символа.
// При <2 котировок возвращает ErrNotEnoughData.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, cfg SymbolConfig) (Snapshot, error)
}

// NotificationService - доставка сообщений подписчику (Telegram)
type NotificationService interface {
	NotifyUser(chatID int64, message string) error
}

// SubscriptionRepository - хранение подписок на мониторинг
type SubscriptionRepository interface {
	// Сохранить/обновить признак активности подписки
	SetActive(ctx context.Context, chatID int64, active bool) error

	// Все чаты с активной подпиской (для восстановления после рестарта)
	GetActiveChatIDs(ctx context.Context) ([]int64, error)
}

// AlertRepository - журнал отправленных уведомлений
type AlertRepository interface {
	Save(ctx context.Context, alert Alert) error
}

// AlertThrottle - защита от повторной отправки одного и того же алерта.
// Allow возвращает true, если уведомление по (chatID, symbolKey) можно отправить,
// и одновременно закрывает окно на ttl.
type AlertThrottle interface {
	Allow(ctx context.Context, chatID int64, symbolKey string, ttl time.Duration) (bool, error)
}
