package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
)

// Sources - все источники котировок. Поле nil допустимо: такой источник
// просто не участвует в опросе (удобно в тестах и при отключении биржи).
type Sources struct {
	Binance domain.QuoteSource
	Gateio  domain.QuoteSource
	Bybit   domain.QuoteSource
	Kucoin  domain.QuoteSource
	OKX     domain.QuoteSource
	Huobi   domain.QuoteSource
	MEXC    domain.QuoteSource
	Uniswap domain.PairQuoteSource
}

// Aggregator опрашивает настроенные для символа источники параллельно
// и возвращает только успешные котировки. Ошибка одного источника не
// влияет на остальные: она логируется и превращается в отсутствие данных.
type Aggregator struct {
	sources Sources
	logger  *slog.Logger
}

func NewAggregator(sources Sources, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		sources: sources,
		logger:  logger,
	}
}

type fetchJob struct {
	source string
	fetch  func(ctx context.Context) (*domain.Quote, error)
}

// jobs собирает задачи опроса в фиксированном порядке перечисления бирж.
// Этот порядок определяет порядок котировок на выходе, а значит и назначение
// сторон buy/sell в калькуляторе - менять его нельзя без пересмотра формата.
func (a *Aggregator) jobs(cfg domain.SymbolConfig) []fetchJob {
	var jobs []fetchJob

	addTicker := func(src domain.QuoteSource, symbolID string) {
		if src == nil || symbolID == "" {
			return
		}
		jobs = append(jobs, fetchJob{
			source: src.Name(),
			fetch: func(ctx context.Context) (*domain.Quote, error) {
				return src.Fetch(ctx, symbolID)
			},
		})
	}

	addTicker(a.sources.Binance, cfg.Binance)
	addTicker(a.sources.Gateio, cfg.Gateio)
	addTicker(a.sources.Bybit, cfg.Bybit)
	addTicker(a.sources.Kucoin, cfg.Kucoin)
	addTicker(a.sources.OKX, cfg.OKX)
	addTicker(a.sources.Huobi, cfg.Huobi)
	addTicker(a.sources.MEXC, cfg.MEXC)

	if a.sources.Uniswap != nil && cfg.Uniswap != nil {
		pair := *cfg.Uniswap
		src := a.sources.Uniswap
		jobs = append(jobs, fetchJob{
			source: src.Name(),
			fetch: func(ctx context.Context) (*domain.Quote, error) {
				return src.FetchPair(ctx, pair)
			},
		})
	}

	return jobs
}

// Aggregate запускает все настроенные источники одновременно и ждет всех.
// Медленный источник ограничен таймаутом общего http.Client, поэтому дольше
// этого таймаута ожидание не длится.
func (a *Aggregator) Aggregate(ctx context.Context, cfg domain.SymbolConfig) []domain.Quote {
	jobs := a.jobs(cfg)
	results := make([]*domain.Quote, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			quote, err := job.fetch(gctx)
			if err != nil {
				a.logger.Warn("quote source failed",
					slog.String("source", job.source),
					slog.String("symbol", cfg.Key),
					slog.String("error", err.Error()))
				return nil // отсутствие данных - не ошибка агрегации
			}
			results[i] = quote
			return nil
		})
	}
	g.Wait()

	quotes := make([]domain.Quote, 0, len(results))
	for _, q := range results {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	return quotes
}
