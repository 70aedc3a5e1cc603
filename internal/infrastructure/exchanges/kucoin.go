package exchanges

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
)

const kucoinBaseURL = "https://api.kucoin.com"

// kucoinLevel1 - ответ /api/v1/market/orderbook/level1.
// Объема за 24ч в этом эндпоинте нет, оставляем ноль.
type kucoinLevel1 struct {
	Code string `json:"code"`
	Data struct {
		Price   decimal.Decimal `json:"price"`
		BestBid decimal.Decimal `json:"bestBid"`
		BestAsk decimal.Decimal `json:"bestAsk"`
	} `json:"data"`
}

type Kucoin struct {
	rest    *RESTClient
	baseURL string
}

func NewKucoin(rest *RESTClient) *Kucoin {
	return &Kucoin{rest: rest, baseURL: kucoinBaseURL}
}

func (k *Kucoin) Name() string { return "KuCoin" }

func (k *Kucoin) Fetch(ctx context.Context, symbolID string) (*domain.Quote, error) {
	url := fmt.Sprintf("%s/api/v1/market/orderbook/level1?symbol=%s", k.baseURL, symbolID)

	var resp kucoinLevel1
	if err := k.rest.GetJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	if resp.Code != "200000" {
		return nil, fmt.Errorf("kucoin api error: code %s", resp.Code)
	}
	if resp.Data.Price.IsZero() {
		return nil, fmt.Errorf("kucoin: empty ticker for %s", symbolID)
	}

	return &domain.Quote{
		Exchange: k.Name(),
		Symbol:   symbolID,
		Price:    resp.Data.Price,
		Volume:   decimal.Zero,
		Bid:      resp.Data.BestBid,
		Ask:      resp.Data.BestAsk,
	}, nil
}
