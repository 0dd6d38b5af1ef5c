// Package eventbus 事件总线抽象接口
//
// 提供账号事件（注册、登录）的发布能力，当前由 Redis Streams 实现。
// 未配置 Redis 时使用 NoOpEventBus。
package eventbus

import (
	"context"
)

// AccountEventBus 账号事件总线接口
type AccountEventBus interface {
	// PublishAccountEvent 发布账号事件
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error
	Close() error
}
