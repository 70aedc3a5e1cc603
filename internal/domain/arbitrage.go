package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FindOpportunities перебирает все неупорядоченные пары котировок (i < j)
// и считает процентную разницу цены j относительно цены i:
//
//	diff = (price_j - price_i) / price_i * 100
//
// Сторона покупки - всегда биржа i, сторона продажи - биржа j, то есть
// назначение идет по порядку входа, а не по тому, где цена ниже.
// Метка направления при этом считается по знаку разницы.
// Так работала первая версия бота, и потребители формата на это завязаны - не "чинить".
//
// Результат отсортирован по убыванию разницы, при равенстве сохраняется
// порядок перебора пар. Пары с нулевой ценой с любой стороны пропускаются:
// на живых данных такого не бывает, но падать на мусоре нельзя.
func FindOpportunities(quotes []Quote) []Opportunity {
	var opportunities []Opportunity

	for i := 0; i < len(quotes); i++ {
		for j := i + 1; j < len(quotes); j++ {
			base := quotes[i]
			other := quotes[j]

			if base.Price.IsZero() || other.Price.IsZero() {
				continue
			}

			diff := other.Price.Sub(base.Price).Div(base.Price).Mul(hundred)

			direction := DirectionSell
			if diff.IsPositive() {
				direction = DirectionBuy
			}

			opportunities = append(opportunities, Opportunity{
				BuyExchange:  base.Exchange,
				SellExchange: other.Exchange,
				BuyPrice:     base.Price,
				SellPrice:    other.Price,
				Difference:   diff.Abs(),
				Direction:    direction,
			})
		}
	}

	sort.SliceStable(opportunities, func(a, b int) bool {
		return opportunities[a].Difference.GreaterThan(opportunities[b].Difference)
	})

	return opportunities
}
