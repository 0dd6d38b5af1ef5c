// Package eventbus 事件总线 mock 实现
package eventbus

import (
	"context"
	"sync"
)

// ============================================================================
// NoOpEventBus - 空操作的 EventBus 实现（未配置 Redis 时使用）
// ============================================================================

// NoOpEventBus 是一个不做任何操作的 EventBus 实现
type NoOpEventBus struct{}

var _ AccountEventBus = (*NoOpEventBus)(nil)

// NewNoOpEventBus 创建 NoOpEventBus 实例
func NewNoOpEventBus() *NoOpEventBus {
	return &NoOpEventBus{}
}

// Close 关闭事件总线
func (e *NoOpEventBus) Close() error {
	return nil
}

func (e *NoOpEventBus) PublishAccountEvent(ctx context.Context, event *AccountEvent) error {
	return nil
}

// ============================================================================
// MemoryEventBus - 进程内记录事件（用于测试）
// ============================================================================

// MemoryEventBus 将事件保存在内存中
type MemoryEventBus struct {
	mu     sync.Mutex
	events []*AccountEvent
	err    error
}

var _ AccountEventBus = (*MemoryEventBus)(nil)

// NewMemoryEventBus 创建 MemoryEventBus 实例
func NewMemoryEventBus() *MemoryEventBus {
	return &MemoryEventBus{}
}

// FailWith 之后的发布均返回 err
func (e *MemoryEventBus) FailWith(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}

func (e *MemoryEventBus) PublishAccountEvent(ctx context.Context, event *AccountEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.events = append(e.events, event)
	return nil
}

// Events 返回全部已发布事件的副本
func (e *MemoryEventBus) Events() []*AccountEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*AccountEvent(nil), e.events...)
}

func (e *MemoryEventBus) Close() error {
	return nil
}
