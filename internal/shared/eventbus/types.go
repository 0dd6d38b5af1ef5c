// Package eventbus 事件总线类型定义
package eventbus

import (
	"time"

	"accounts-auth/internal/shared/model"
)

// ============================================================================
// 事件类型
// ============================================================================

// AccountEventType 账号事件类型
type AccountEventType string

const (
	AccountEventRegistered AccountEventType = "account.registered"
	AccountEventLogin      AccountEventType = "account.login"
)

// AccountEvent 账号事件
type AccountEvent struct {
	ID        string            `json:"id"`
	Type      AccountEventType  `json:"type"`
	Kind      model.AccountKind `json:"kind"`
	AccountID string            `json:"account_id"`
	Email     string            `json:"email"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewAccountEvent 根据账号创建事件
func NewAccountEvent(typ AccountEventType, account *model.Account) *AccountEvent {
	return &AccountEvent{
		Type:      typ,
		Kind:      account.Kind,
		AccountID: account.ID,
		Email:     account.Email,
		Timestamp: time.Now().UTC(),
	}
}

// ============================================================================
// Key 前缀和常量
// ============================================================================

const (
	// Key 前缀，完整 key 为 account_events:{kind}
	KeyAccountEvents = "account_events:"

	// Stream 最大长度
	MaxStreamLength = 10000
)
