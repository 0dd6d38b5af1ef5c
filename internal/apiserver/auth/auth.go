// Package auth 账号认证：密码哈希、JWT 令牌、注册/登录流程、HTTP 处理器与中间件
package auth

import (
	"context"
)

// contextKey context 键类型
type contextKey string

const ctxKeyClaims contextKey = "auth_claims"

// ============================================================================
// Context 辅助函数
// ============================================================================

// WithClaims 将令牌声明注入 context
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, claims)
}

// ClaimsFromContext 从 context 获取令牌声明，未认证时返回 nil
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(ctxKeyClaims).(*Claims)
	return claims
}
