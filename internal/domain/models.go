package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// --- Enums & Constants ---

// Direction - направление арбитража относительно порядка пары (см. FindOpportunities)
type Direction string

const (
	DirectionBuy  Direction = "BUY"  // цена продажи выше цены покупки
	DirectionSell Direction = "SELL" // цена продажи ниже цены покупки
)

// ErrNotEnoughData - для символа получено меньше двух котировок, сравнивать нечего.
// Это штатный исход, а не сбой.
var ErrNotEnoughData = errors.New("not enough quotes to compare")

// --- Value Objects ---

// Quote - снимок цены одной биржи по одному символу.
// Создается адаптером один раз за цикл опроса и дальше не мутируется.
type Quote struct {
	Exchange string
	Symbol   string
	Price    decimal.Decimal
	Volume   decimal.Decimal // объем за 24ч, 0 если биржа его не отдает
	Bid      decimal.Decimal
	Ask      decimal.Decimal
}

// Opportunity - разница цен между двумя биржами.
// Живет только в рамках одного расчета, никуда не сохраняется.
type Opportunity struct {
	BuyExchange  string
	SellExchange string
	BuyPrice     decimal.Decimal
	SellPrice    decimal.Decimal
	Difference   decimal.Decimal // модуль процентной разницы
	Direction    Direction
}

// Snapshot - результат одной проверки символа: выжившие котировки
// плюс все пары, отсортированные по убыванию разницы.
type Snapshot struct {
	Symbol        SymbolConfig
	Quotes        []Quote
	Opportunities []Opportunity
	CheckedAt     time.Time
}

// MaxDifference возвращает наибольшую разницу среди пар (ноль, если пар нет).
func (s Snapshot) MaxDifference() decimal.Decimal {
	if len(s.Opportunities) == 0 {
		return decimal.Zero
	}
	return s.Opportunities[0].Difference
}

// HasOpportunityAbove - есть ли пара с разницей не меньше порога.
func (s Snapshot) HasOpportunityAbove(threshold decimal.Decimal) bool {
	return len(s.Opportunities) > 0 && s.Opportunities[0].Difference.GreaterThanOrEqual(threshold)
}

// --- Entities (Сущности БД) ---

// Subscription - подписка чата на авто-мониторинг.
// Запись живет вечно, признак активности переключается при start/stop.
type Subscription struct {
	ChatID    int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Alert - отправленное уведомление (журнал для истории).
type Alert struct {
	ID         string // uuid
	ChatID     int64
	SymbolKey  string
	Difference decimal.Decimal
	SentAt     time.Time
}
