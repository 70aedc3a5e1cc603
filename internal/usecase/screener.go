package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
)

// ScreenerService - один шаг конвейера: опрос бирж + расчет арбитража.
// Реализует domain.SnapshotProvider.
type ScreenerService struct {
	aggregator *Aggregator
	logger     *slog.Logger
}

func NewScreenerService(aggregator *Aggregator, logger *slog.Logger) *ScreenerService {
	return &ScreenerService{
		aggregator: aggregator,
		logger:     logger,
	}
}

// Snapshot собирает котировки по символу и считает все пары.
// Если котировок меньше двух, возвращает domain.ErrNotEnoughData -
// вызывающий сам решает, как это показать.
func (s *ScreenerService) Snapshot(ctx context.Context, cfg domain.SymbolConfig) (domain.Snapshot, error) {
	quotes := s.aggregator.Aggregate(ctx, cfg)

	if len(quotes) < 2 {
		s.logger.Info("not enough quotes for symbol",
			slog.String("symbol", cfg.Key),
			slog.Int("quotes", len(quotes)))
		return domain.Snapshot{}, domain.ErrNotEnoughData
	}

	return domain.Snapshot{
		Symbol:        cfg,
		Quotes:        quotes,
		Opportunities: domain.FindOpportunities(quotes),
		CheckedAt:     time.Now(),
	}, nil
}
