package exchanges

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
)

const uniswapSubgraphURL = "https://api.thegraph.com/subgraphs/name/uniswap/uniswap-v3"

// graphqlRequest - стандартный конверт GraphQL-запроса
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse - стандартный конверт GraphQL-ответа
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Uniswap берет цену из сабграфа Uniswap V3 (The Graph): самый ликвидный пул
// по паре token0/token1. Это не биржевой тикер, bid/ask у пула нет.
type Uniswap struct {
	rest        *RESTClient
	subgraphURL string
}

func NewUniswap(rest *RESTClient) *Uniswap {
	return &Uniswap{rest: rest, subgraphURL: uniswapSubgraphURL}
}

func (u *Uniswap) Name() string { return "Uniswap V3" }

func (u *Uniswap) FetchPair(ctx context.Context, pair domain.TokenPair) (*domain.Quote, error) {
	query := `
		query TopPool($token0: String!, $token1: String!) {
			pools(
				first: 1
				orderBy: totalValueLockedUSD
				orderDirection: desc
				where: { token0: $token0, token1: $token1 }
			) {
				token0Price
				volumeUSD
			}
		}
	`

	req := graphqlRequest{
		Query: query,
		Variables: map[string]any{
			"token0": strings.ToLower(pair.Token0),
			"token1": strings.ToLower(pair.Token1),
		},
	}

	var resp graphqlResponse
	if err := u.rest.PostJSON(ctx, u.subgraphURL, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("uniswap subgraph error: %s", resp.Errors[0].Message)
	}

	var result struct {
		Pools []struct {
			Token0Price decimal.Decimal `json:"token0Price"`
			VolumeUSD   decimal.Decimal `json:"volumeUSD"`
		} `json:"pools"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("uniswap: decode pools: %w", err)
	}

	if len(result.Pools) == 0 {
		return nil, fmt.Errorf("uniswap: pool not found for %s/%s", pair.Token0, pair.Token1)
	}

	pool := result.Pools[0]
	return &domain.Quote{
		Exchange: u.Name(),
		Symbol:   fmt.Sprintf("%s/%s", shortAddr(pair.Token0), shortAddr(pair.Token1)),
		Price:    pool.Token0Price,
		Volume:   pool.VolumeUSD,
		Bid:      decimal.Zero,
		Ask:      decimal.Zero,
	}, nil
}

func shortAddr(addr string) string {
	if len(addr) <= 6 {
		return addr
	}
	return addr[:6]
}
