// Консольная проверка без Telegram и БД: один проход по всем символам
// с выводом цен и арбитража в stdout. Удобно для отладки адаптеров.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/shopspring/decimal"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
	"github.com/romanzzaa/cex-arbitrage-bot/internal/infrastructure/exchanges"
	"github.com/romanzzaa/cex-arbitrage-bot/internal/usecase"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	httpClient := &http.Client{Timeout: 10 * time.Second}
	defer httpClient.CloseIdleConnections()

	rest := exchanges.NewRESTClient(httpClient)
	sources := usecase.Sources{
		Binance: exchanges.NewBinance(rest),
		Gateio:  exchanges.NewGateio(rest),
		Bybit:   exchanges.NewBybit(rest),
		Kucoin:  exchanges.NewKucoin(rest),
		OKX:     exchanges.NewOKX(rest),
		Huobi:   exchanges.NewHuobi(rest),
		MEXC:    exchanges.NewMEXC(rest),
		Uniswap: exchanges.NewUniswap(rest),
	}

	aggregator := usecase.NewAggregator(sources, logger)
	screener := usecase.NewScreenerService(aggregator, logger)
	threshold := decimal.RequireFromString("0.5")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, cfg := range domain.DefaultSymbols() {
		snapshot, err := screener.Snapshot(ctx, cfg)
		if err != nil {
			if errors.Is(err, domain.ErrNotEnoughData) {
				fmt.Printf("%s: not enough data\n\n", cfg.Name)
				continue
			}
			fmt.Printf("%s: check failed: %v\n\n", cfg.Name, err)
			continue
		}

		fmt.Printf("=== %s ===\n", cfg.Name)
		for _, q := range snapshot.Quotes {
			fmt.Printf("  %-12s $%s\n", q.Exchange, q.Price.StringFixed(4))
		}
		for i, opp := range snapshot.Opportunities {
			if i >= 3 || opp.Difference.LessThan(threshold) {
				break
			}
			fmt.Printf("  %s%%: buy %s @ $%s, sell %s @ $%s\n",
				opp.Difference.StringFixed(2),
				opp.BuyExchange, opp.BuyPrice.StringFixed(4),
				opp.SellExchange, opp.SellPrice.StringFixed(4))
		}
		fmt.Println()
	}
}
