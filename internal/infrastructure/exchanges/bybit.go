package exchanges

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
)

const bybitBaseURL = "https://api.bybit.com"

// bybitResponse - стандартная обертка ответа Bybit V5
type bybitResponse[T any] struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  T      `json:"result"`
}

type bybitTickerResult struct {
	List []struct {
		Symbol    string          `json:"symbol"`
		LastPrice decimal.Decimal `json:"lastPrice"`
		Volume24h decimal.Decimal `json:"volume24h"`
		Bid1Price decimal.Decimal `json:"bid1Price"`
		Ask1Price decimal.Decimal `json:"ask1Price"`
	} `json:"list"`
}

type Bybit struct {
	rest    *RESTClient
	baseURL string
}

func NewBybit(rest *RESTClient) *Bybit {
	return &Bybit{rest: rest, baseURL: bybitBaseURL}
}

func (b *Bybit) Name() string { return "Bybit" }

func (b *Bybit) Fetch(ctx context.Context, symbolID string) (*domain.Quote, error) {
	url := fmt.Sprintf("%s/v5/market/tickers?category=spot&symbol=%s", b.baseURL, symbolID)

	var resp bybitResponse[bybitTickerResult]
	if err := b.rest.GetJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	if resp.RetCode != 0 {
		return nil, fmt.Errorf("bybit api error: [%d] %s", resp.RetCode, resp.RetMsg)
	}
	if len(resp.Result.List) == 0 {
		return nil, fmt.Errorf("bybit: ticker not found for %s", symbolID)
	}

	ticker := resp.Result.List[0]
	return &domain.Quote{
		Exchange: b.Name(),
		Symbol:   symbolID,
		Price:    ticker.LastPrice,
		Volume:   ticker.Volume24h,
		Bid:      ticker.Bid1Price,
		Ask:      ticker.Ask1Price,
	}, nil
}
