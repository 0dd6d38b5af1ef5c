package infra

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"accounts-auth/internal/shared/eventbus"
	eventbusredis "accounts-auth/internal/shared/eventbus/redis"
)

// NewEventBus 从 URL 创建账号事件总线
//
// redisURL 为空或 Redis 不可达时返回 NoOpEventBus，事件发布不影响认证流程。
// URL 格式错误属于配置错误，直接返回。
func NewEventBus(redisURL string) (eventbus.AccountEventBus, error) {
	if redisURL == "" {
		log.Printf("[infra] Redis not configured, account events disabled")
		return eventbus.NewNoOpEventBus(), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		log.Printf("[infra] WARNING: Redis unavailable at %s (%v), account events disabled", opts.Addr, err)
		return eventbus.NewNoOpEventBus(), nil
	}

	log.Printf("[Redis/Infra] Connected to %s", opts.Addr)
	return eventbusredis.NewStoreFromClient(client), nil
}
