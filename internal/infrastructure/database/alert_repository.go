package database

import (
	"context"
	"fmt"

	"github.com/romanzzaa/cex-arbitrage-bot/internal/domain"
)

// AlertRepository пишет журнал отправленных уведомлений.
// Журнал ни на что не влияет, он для постанализа.
type AlertRepository struct {
	db *DB
}

func NewAlertRepository(db *DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Save(ctx context.Context, alert domain.Alert) error {
	query := `
		INSERT INTO alerts (id, chat_id, symbol_key, difference, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.ChatID, alert.SymbolKey, alert.Difference, alert.SentAt)
	if err != nil {
		return fmt.Errorf("failed to save alert: %w", err)
	}
	return nil
}
