package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "arbbot:alert:"

// AlertThrottle подавляет повторные алерты через Redis SETNX с TTL:
// первый вызов по ключу (chat, symbol) открывает окно и возвращает true,
// остальные в пределах TTL получают false.
type AlertThrottle struct {
	client *redis.Client
}

func NewAlertThrottle(addr, password string, db int) *AlertThrottle {
	return &AlertThrottle{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (t *AlertThrottle) Allow(ctx context.Context, chatID int64, symbolKey string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("%s%d:%s", keyPrefix, chatID, symbolKey)

	ok, err := t.client.SetNX(ctx, key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func (t *AlertThrottle) Close() error {
	return t.client.Close()
}
