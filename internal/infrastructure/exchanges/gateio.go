package exchanges

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
)

const gateioBaseURL = "https://api.gateio.ws"

// gateioTicker - элемент массива /api/v4/spot/tickers
type gateioTicker struct {
	CurrencyPair string          `json:"currency_pair"`
	Last         decimal.Decimal `json:"last"`
	BaseVolume   decimal.Decimal `json:"base_volume"`
	HighestBid   decimal.Decimal `json:"highest_bid"`
	LowestAsk    decimal.Decimal `json:"lowest_ask"`
}

type Gateio struct {
	rest    *RESTClient
	baseURL string
}

func NewGateio(rest *RESTClient) *Gateio {
	return &Gateio{rest: rest, baseURL: gateioBaseURL}
}

func (g *Gateio) Name() string { return "Gate.io" }

func (g *Gateio) Fetch(ctx context.Context, symbolID string) (*domain.Quote, error) {
	url := fmt.Sprintf("%s/api/v4/spot/tickers?currency_pair=%s", g.baseURL, symbolID)

	var tickers []gateioTicker
	if err := g.rest.GetJSON(ctx, url, &tickers); err != nil {
		return nil, err
	}

	if len(tickers) == 0 {
		return nil, fmt.Errorf("gateio: ticker not found for %s", symbolID)
	}

	ticker := tickers[0]
	return &domain.Quote{
		Exchange: g.Name(),
		Symbol:   symbolID,
		Price:    ticker.Last,
		Volume:   ticker.BaseVolume,
		Bid:      ticker.HighestBid,
		Ask:      ticker.LowestAsk,
	}, nil
}
