package database

import (
	"context"
	"fmt"
)

type SubscriptionRepository struct {
	db *DB
}

func NewSubscriptionRepository(db *DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// SetActive создает запись подписки или переключает признак активности.
// Запись не удаляется при остановке: chat_id переиспользуется.
func (r *SubscriptionRepository) SetActive(ctx context.Context, chatID int64, active bool) error {
	query := `
		INSERT INTO subscriptions (chat_id, active, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (chat_id)
		DO UPDATE SET active = EXCLUDED.active, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, chatID, active); err != nil {
		return fmt.Errorf("failed to set subscription state: %w", err)
	}
	return nil
}

func (r *SubscriptionRepository) GetActiveChatIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT chat_id FROM subscriptions WHERE active = TRUE`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get active subscriptions: %w", err)
	}
	defer rows.Close()

	var chatIDs []int64
	for rows.Next() {
		var chatID int64
		if err := rows.Scan(&chatID); err != nil {
			return nil, fmt.Errorf("db scan error: %w", err)
		}
		chatIDs = append(chatIDs, chatID)
	}
	return chatIDs, rows.Err()
}
