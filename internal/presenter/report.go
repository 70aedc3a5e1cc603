// Package presenter форматирует результаты проверки в текст для Telegram.
// Вынесен отдельно, чтобы и bot, и worker могли пользоваться одним форматом
// без циклических импортов.
package presenter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
)

// максимум возможностей в одном сообщении
const maxOpportunities = 3

// FormatReport строит HTML-сообщение: цены по возрастанию, затем топ-3
// возможности с разницей не ниже порога. Входной snapshot не мутируется.
func FormatReport(snapshot domain.Snapshot, threshold decimal.Decimal) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🔄 <b>%s</b>\n", snapshot.Symbol.Name))
	sb.WriteString(fmt.Sprintf("⏰ %s\n\n", snapshot.CheckedAt.Format("15:04:05")))

	sb.WriteString("💰 <b>ЦЕНЫ НА БИРЖАХ:</b>\n")

	sorted := make([]domain.Quote, len(snapshot.Quotes))
	copy(sorted, snapshot.Quotes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price.LessThan(sorted[j].Price)
	})

	for _, quote := range sorted {
		sb.WriteString(fmt.Sprintf("├ <code>%-12s</code> $%s\n", quote.Exchange, quote.Price.StringFixed(4)))
	}

	var filtered []domain.Opportunity
	for _, opp := range snapshot.Opportunities {
		if opp.Difference.GreaterThanOrEqual(threshold) {
			filtered = append(filtered, opp)
		}
	}

	if len(filtered) == 0 {
		sb.WriteString(fmt.Sprintf("\n✅ Нет арбитража &gt; %s%%\n", threshold.String()))
		return sb.String()
	}

	if len(filtered) > maxOpportunities {
		filtered = filtered[:maxOpportunities]
	}

	sb.WriteString(fmt.Sprintf("\n🔥 <b>АРБИТРАЖ &gt; %s%%:</b>\n", threshold.String()))
	for i, opp := range filtered {
		sb.WriteString(fmt.Sprintf("\n%d. <b>%s%%</b> разница\n", i+1, opp.Difference.StringFixed(2)))
		sb.WriteString(fmt.Sprintf("├ Купить:  %s @ $%s\n", opp.BuyExchange, opp.BuyPrice.StringFixed(4)))
		sb.WriteString(fmt.Sprintf("└ Продать: %s @ $%s\n", opp.SellExchange, opp.SellPrice.StringFixed(4)))
	}

	return sb.String()
}
