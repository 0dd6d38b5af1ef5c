// Package storage 定义持久化存储层抽象接口
//
// 设计原则：依赖倒置 (DIP)
//   - 调用方只依赖接口，不知道具体实现
//   - 具体实现在子包中：mongostore/（MongoDB）、repository/（SQLite / PostgreSQL）
//   - 初始化时通过依赖注入传入实现（见 infra.NewAccountStore）
package storage

import (
	"context"

	"accounts-auth/internal/shared/model"
)

// AccountStore 账号存储接口
//
// 查询类方法在记录不存在时返回 (nil, nil)。
// CreateAccount 负责分配 ID；同一 Kind 下邮箱重复时返回 ErrDuplicate，
// 唯一性由存储层约束保证，并发创建不会产生重复账号。
type AccountStore interface {
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccountByEmail(ctx context.Context, kind model.AccountKind, email string) (*model.Account, error)
	GetAccountByID(ctx context.Context, kind model.AccountKind, id string) (*model.Account, error)
	Close() error
}
