package exchanges

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
)

const binanceBaseURL = "https://api.binance.com"

// binanceTicker - ответ /api/v3/ticker/24hr (цены приходят строками)
type binanceTicker struct {
	Symbol    string          `json:"symbol"`
	LastPrice decimal.Decimal `json:"lastPrice"`
	Volume    decimal.Decimal `json:"volume"`
	BidPrice  decimal.Decimal `json:"bidPrice"`
	AskPrice  decimal.Decimal `json:"askPrice"`
}

type Binance struct {
	rest    *RESTClient
	baseURL string
}

func NewBinance(rest *RESTClient) *Binance {
	return &Binance{rest: rest, baseURL: binanceBaseURL}
}

func (b *Binance) Name() string { return "Binance" }

func (b *Binance) Fetch(ctx context.Context, symbolID string) (*domain.Quote, error) {
	url := fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%s", b.baseURL, symbolID)

	var ticker binanceTicker
	if err := b.rest.GetJSON(ctx, url, &ticker); err != nil {
		return nil, err
	}

	if ticker.LastPrice.IsZero() {
		return nil, fmt.Errorf("binance: empty ticker for %s", symbolID)
	}

	return &domain.Quote{
		Exchange: b.Name(),
		Symbol:   symbolID,
		Price:    ticker.LastPrice,
		Volume:   ticker.Volume,
		Bid:      ticker.BidPrice,
		Ask:      ticker.AskPrice,
	}, nil
}
