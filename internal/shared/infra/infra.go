// Package infra 基础设施聚合层
//
// 提供统一的基础设施初始化和依赖注入，包括：
//   - Store：账号存储（MongoDB / PostgreSQL / SQLite）
//   - EventBus：账号事件流（Redis Streams，未配置或不可达时为 NoOp）
package infra

import (
	"fmt"

	"accounts-auth/internal/config"
	"accounts-auth/internal/shared/eventbus"
	"accounts-auth/internal/shared/storage"
)

// Infrastructure 基础设施聚合结构
type Infrastructure struct {
	// Store 账号存储
	Store storage.AccountStore

	// EventBus 账号事件总线
	EventBus eventbus.AccountEventBus
}

// New 根据配置初始化全部基础设施
//
// 任一组件初始化失败时，已创建的连接会被关闭。
func New(cfg *config.Config) (*Infrastructure, error) {
	store, err := NewAccountStore(cfg)
	if err != nil {
		return nil, err
	}

	bus, err := NewEventBus(cfg.RedisURL)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("init event bus: %w", err)
	}

	return &Infrastructure{Store: store, EventBus: bus}, nil
}

// Close 关闭所有基础设施连接
func (i *Infrastructure) Close() error {
	var lastErr error

	if i.Store != nil {
		if err := i.Store.Close(); err != nil {
			lastErr = err
		}
	}

	if i.EventBus != nil {
		if err := i.EventBus.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
