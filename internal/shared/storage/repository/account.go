package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"accounts-auth/internal/shared/model"

	"github.com/google/uuid"
)

const accountColumns = `id, username, email, password_hash, created_at`

// table 返回账号类型对应的表名（仅允许已知类型，避免拼接任意标识符）
func table(kind model.AccountKind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("repository: unknown account kind %q", kind)
	}
	return kind.Collection(), nil
}

// CreateAccount 创建账号，分配 ID 与创建时间
func (s *Store) CreateAccount(ctx context.Context, account *model.Account) error {
	tbl, err := table(account.Kind)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	createdAt := account.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO `+tbl+` (`+accountColumns+`) VALUES ($1, $2, $3, $4, $5)`),
		id, account.Username, account.Email, account.PasswordHash, createdAt,
	)
	if err != nil {
		return s.wrapError(err)
	}

	account.ID = id
	account.CreatedAt = createdAt
	return nil
}

// GetAccountByEmail 通过邮箱查找账号
func (s *Store) GetAccountByEmail(ctx context.Context, kind model.AccountKind, email string) (*model.Account, error) {
	return s.getAccount(ctx, kind, "email", email)
}

// GetAccountByID 通过 ID 查找账号
func (s *Store) GetAccountByID(ctx context.Context, kind model.AccountKind, id string) (*model.Account, error) {
	return s.getAccount(ctx, kind, "id", id)
}

func (s *Store) getAccount(ctx context.Context, kind model.AccountKind, column, value string) (*model.Account, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}

	acc := &model.Account{Kind: kind}
	err = s.db.QueryRowContext(ctx, s.rebind(
		`SELECT `+accountColumns+` FROM `+tbl+` WHERE `+column+` = $1`), value,
	).Scan(&acc.ID, &acc.Username, &acc.Email, &acc.PasswordHash, &acc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return acc, nil
}
