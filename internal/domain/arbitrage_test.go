package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func quote(exchange string, price float64) Quote {
	return Quote{
		Exchange: exchange,
		Symbol:   "BTCUSDT",
		Price:    decimal.NewFromFloat(price),
	}
}

func TestFindOpportunitiesPairCount(t *testing.T) {
	quotes := []Quote{
		quote("A", 100),
		quote("B", 101),
		quote("C", 102),
		quote("D", 103),
	}

	opps := FindOpportunities(quotes)

	// C(4,2) = 6
	if len(opps) != 6 {
		t.Fatalf("expected 6 opportunities, got %d", len(opps))
	}

	for _, opp := range opps {
		if opp.Difference.IsNegative() {
			t.Errorf("negative difference for %s/%s: %s", opp.BuyExchange, opp.SellExchange, opp.Difference)
		}
	}

	for i := 1; i < len(opps); i++ {
		if opps[i].Difference.GreaterThan(opps[i-1].Difference) {
			t.Fatalf("opportunities not sorted descending at index %d", i)
		}
	}
}

func TestFindOpportunitiesDirectionAndAssignment(t *testing.T) {
	opps := FindOpportunities([]Quote{quote("A", 100), quote("B", 102)})

	if len(opps) != 1 {
		t.Fatalf("expected 1 opportunity, got %d", len(opps))
	}

	opp := opps[0]
	if opp.BuyExchange != "A" || opp.SellExchange != "B" {
		t.Errorf("buy/sell assignment must follow input order, got buy=%s sell=%s", opp.BuyExchange, opp.SellExchange)
	}
	if !opp.Difference.Equal(decimal.NewFromInt(2)) {
		t.Errorf("expected 2.0%% difference, got %s", opp.Difference)
	}
	if opp.Direction != DirectionBuy {
		t.Errorf("expected BUY direction, got %s", opp.Direction)
	}
}

func TestFindOpportunitiesNegativeDiffKeepsInputOrder(t *testing.T) {
	// Цена второй биржи ниже: сторона покупки все равно первая биржа,
	// меняется только метка направления.
	opps := FindOpportunities([]Quote{quote("A", 102), quote("B", 100)})

	opp := opps[0]
	if opp.BuyExchange != "A" || opp.SellExchange != "B" {
		t.Errorf("buy/sell assignment must follow input order, got buy=%s sell=%s", opp.BuyExchange, opp.SellExchange)
	}
	if opp.Direction != DirectionSell {
		t.Errorf("expected SELL direction, got %s", opp.Direction)
	}
	if opp.Difference.IsNegative() {
		t.Errorf("difference must be absolute, got %s", opp.Difference)
	}
}

func TestFindOpportunitiesZeroPriceSkipped(t *testing.T) {
	// Нулевая цена с любой стороны пары - мусор, пара выбрасывается
	if opps := FindOpportunities([]Quote{quote("A", 100), quote("B", 0)}); len(opps) != 0 {
		t.Fatalf("expected 0 opportunities with zero sell price, got %d", len(opps))
	}
	if opps := FindOpportunities([]Quote{quote("A", 0), quote("B", 100)}); len(opps) != 0 {
		t.Fatalf("expected 0 opportunities with zero base price, got %d", len(opps))
	}

	// Здоровые пары при этом остаются
	opps := FindOpportunities([]Quote{quote("A", 100), quote("B", 0), quote("C", 101)})
	if len(opps) != 1 {
		t.Fatalf("expected 1 opportunity among healthy quotes, got %d", len(opps))
	}
	if opps[0].BuyExchange != "A" || opps[0].SellExchange != "C" {
		t.Errorf("unexpected surviving pair: %s/%s", opps[0].BuyExchange, opps[0].SellExchange)
	}
}

func TestFindOpportunitiesFewQuotes(t *testing.T) {
	if opps := FindOpportunities(nil); len(opps) != 0 {
		t.Fatalf("expected no opportunities for empty input, got %d", len(opps))
	}
	if opps := FindOpportunities([]Quote{quote("A", 100)}); len(opps) != 0 {
		t.Fatalf("expected no opportunities for single quote, got %d", len(opps))
	}
}

func TestFindOpportunitiesRanking(t *testing.T) {
	// Цены {100, 101, 103}: разницы 1.0, 3.0, ~1.98 -> порядок [3.0, ~1.98, 1.0]
	opps := FindOpportunities([]Quote{
		quote("A", 100),
		quote("B", 101),
		quote("C", 103),
	})

	if len(opps) != 3 {
		t.Fatalf("expected 3 opportunities, got %d", len(opps))
	}

	if !opps[0].Difference.Equal(decimal.NewFromInt(3)) {
		t.Errorf("expected top difference 3.0, got %s", opps[0].Difference)
	}
	if opps[0].BuyExchange != "A" || opps[0].SellExchange != "C" {
		t.Errorf("unexpected top pair: %s/%s", opps[0].BuyExchange, opps[0].SellExchange)
	}

	// (103-101)/101*100 = 1.9801...
	second := opps[1].Difference
	if second.LessThan(decimal.NewFromFloat(1.98)) || second.GreaterThan(decimal.NewFromFloat(1.99)) {
		t.Errorf("expected second difference ~1.98, got %s", second)
	}

	if !opps[2].Difference.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected last difference 1.0, got %s", opps[2].Difference)
	}
}
