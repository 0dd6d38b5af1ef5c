// Package model 定义核心数据模型
//
// account.go 包含账号认证相关的数据模型定义：
//   - AccountKind：账号类型（user / admin）
//   - Account：用户与管理员共用的账号结构
package model

import (
	"strings"
	"time"
)

// ============================================================================
// AccountKind - 账号类型
// ============================================================================

// AccountKind 账号类型
//
// User 与 Admin 分别存储，不共享身份空间：同一邮箱可以同时注册为两种类型。
type AccountKind string

const (
	// AccountKindUser 普通用户
	AccountKindUser AccountKind = "user"

	// AccountKindAdmin 管理员
	AccountKindAdmin AccountKind = "admin"
)

// AccountKinds 全部账号类型
var AccountKinds = []AccountKind{AccountKindUser, AccountKindAdmin}

// Valid 是否为已知类型
func (k AccountKind) Valid() bool {
	return k == AccountKindUser || k == AccountKindAdmin
}

// Collection 返回该类型对应的集合/表名
func (k AccountKind) Collection() string {
	switch k {
	case AccountKindAdmin:
		return "admins"
	default:
		return "users"
	}
}

// ============================================================================
// Account - 账号
// ============================================================================

// Account 账号
//
// ID 由存储层在创建时分配，之后不可修改。
// PasswordHash 只保存哈希摘要，不会出现在 JSON 响应中。
type Account struct {
	ID           string      `json:"id" bson:"_id"`
	Kind         AccountKind `json:"kind" bson:"kind"`
	Username     string      `json:"username" bson:"username"`
	Email        string      `json:"email" bson:"email"`
	PasswordHash string      `json:"-" bson:"password_hash"` // never expose in JSON
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
}

// NormalizeEmail 规范化邮箱（去空白、转小写），查询与存储前统一调用
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
