package exchanges

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
)

const okxBaseURL = "https://www.okx.com"

// okxTicker - ответ /api/v5/market/ticker
type okxTicker struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data []struct {
		InstID string          `json:"instId"`
		Last   decimal.Decimal `json:"last"`
		Vol24h decimal.Decimal `json:"vol24h"`
		BidPx  decimal.Decimal `json:"bidPx"`
		AskPx  decimal.Decimal `json:"askPx"`
	} `json:"data"`
}

type OKX struct {
	rest    *RESTClient
	baseURL string
}

func NewOKX(rest *RESTClient) *OKX {
	return &OKX{rest: rest, baseURL: okxBaseURL}
}

func (o *OKX) Name() string { return "OKX" }

func (o *OKX) Fetch(ctx context.Context, symbolID string) (*domain.Quote, error) {
	url := fmt.Sprintf("%s/api/v5/market/ticker?instId=%s", o.baseURL, symbolID)

	var resp okxTicker
	if err := o.rest.GetJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	if resp.Code != "0" {
		return nil, fmt.Errorf("okx api error: [%s] %s", resp.Code, resp.Msg)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("okx: ticker not found for %s", symbolID)
	}

	ticker := resp.Data[0]
	return &domain.Quote{
		Exchange: o.Name(),
		Symbol:   symbolID,
		Price:    ticker.Last,
		Volume:   ticker.Vol24h,
		Bid:      ticker.BidPx,
		Ask:      ticker.AskPx,
	}, nil
}
