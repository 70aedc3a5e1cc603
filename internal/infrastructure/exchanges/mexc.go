package exchanges

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
)

const mexcBaseURL = "https://api.mexc.com"

// mexcTicker - ответ /api/v3/ticker/24hr (API совместим с Binance)
type mexcTicker struct {
	Symbol    string          `json:"symbol"`
	LastPrice decimal.Decimal `json:"lastPrice"`
	Volume    decimal.Decimal `json:"volume"`
	BidPrice  decimal.Decimal `json:"bidPrice"`
	AskPrice  decimal.Decimal `json:"askPrice"`
}

type MEXC struct {
	rest    *RESTClient
	baseURL string
}

func NewMEXC(rest *RESTClient) *MEXC {
	return &MEXC{rest: rest, baseURL: mexcBaseURL}
}

func (m *MEXC) Name() string { return "MEXC" }

func (m *MEXC) Fetch(ctx context.Context, symbolID string) (*domain.Quote, error) {
	url := fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%s", m.baseURL, symbolID)

	var ticker mexcTicker
	if err := m.rest.GetJSON(ctx, url, &ticker); err != nil {
		return nil, err
	}

	if ticker.LastPrice.IsZero() {
		return nil, fmt.Errorf("mexc: empty ticker for %s", symbolID)
	}

	return &domain.Quote{
		Exchange: m.Name(),
		Symbol:   symbolID,
		Price:    ticker.LastPrice,
		Volume:   ticker.Volume,
		Bid:      ticker.BidPrice,
		Ask:      ticker.AskPrice,
	}, nil
}
