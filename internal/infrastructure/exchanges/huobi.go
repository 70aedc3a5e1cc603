package exchanges

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
)

const huobiBaseURL = "https://api.huobi.pro"

// huobiMerged - ответ /market/detail/merged.
// bid/ask приходят массивами [цена, размер], иногда пустыми.
type huobiMerged struct {
	Status string `json:"status"`
	Tick   struct {
		Close decimal.Decimal   `json:"close"`
		Vol   decimal.Decimal   `json:"vol"`
		Bid   []decimal.Decimal `json:"bid"`
		Ask   []decimal.Decimal `json:"ask"`
	} `json:"tick"`
}

type Huobi struct {
	rest    *RESTClient
	baseURL string
}

func NewHuobi(rest *RESTClient) *Huobi {
	return &Huobi{rest: rest, baseURL: huobiBaseURL}
}

func (h *Huobi) Name() string { return "Huobi" }

func (h *Huobi) Fetch(ctx context.Context, symbolID string) (*domain.Quote, error) {
	url := fmt.Sprintf("%s/market/detail/merged?symbol=%s", h.baseURL, symbolID)

	var resp huobiMerged
	if err := h.rest.GetJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "ok" {
		return nil, fmt.Errorf("huobi api error: status %q", resp.Status)
	}

	bid := decimal.Zero
	if len(resp.Tick.Bid) > 0 {
		bid = resp.Tick.Bid[0]
	}
	ask := decimal.Zero
	if len(resp.Tick.Ask) > 0 {
		ask = resp.Tick.Ask[0]
	}

	return &domain.Quote{
		Exchange: h.Name(),
		Symbol:   symbolID,
		Price:    resp.Tick.Close,
		Volume:   resp.Tick.Vol,
		Bid:      bid,
		Ask:      ask,
	}, nil
}
