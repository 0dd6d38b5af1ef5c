// Package redis 账号事件总线（Redis Streams）
package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"accounts-auth/internal/shared/eventbus"
	"accounts-auth/internal/shared/model"
)

// Store Redis Streams 事件总线
type Store struct {
	client *redis.Client
}

var _ eventbus.AccountEventBus = (*Store)(nil)

// NewStoreFromClient 使用已有连接创建事件总线
func NewStoreFromClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Close 关闭底层连接
func (s *Store) Close() error {
	return s.client.Close()
}

func streamKey(kind model.AccountKind) string {
	return eventbus.KeyAccountEvents + string(kind)
}

// PublishAccountEvent 发布账号事件
func (s *Store) PublishAccountEvent(ctx context.Context, event *eventbus.AccountEvent) error {
	args := &redis.XAddArgs{
		Stream: streamKey(event.Kind),
		MaxLen: eventbus.MaxStreamLength,
		Approx: true,
		Values: map[string]interface{}{
			"type":       string(event.Type),
			"account_id": event.AccountID,
			"email":      event.Email,
			"timestamp":  event.Timestamp.Format(time.RFC3339Nano),
		},
	}

	id, err := s.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("failed to publish account event: %w", err)
	}
	event.ID = id

	log.Printf("[Redis/EventBus] Published event: %s id=%s type=%s account=%s", event.Kind, id, event.Type, event.AccountID)
	return nil
}
