package mongostore

import (
	"context"
	"time"

	"accounts-auth/internal/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ============================================================================
// AccountStore
// ============================================================================

// CreateAccount 插入账号，_id 使用新生成的 ObjectID（十六进制字符串）
func (s *Store) CreateAccount(ctx context.Context, account *model.Account) error {
	col, err := s.accountCol(account.Kind)
	if err != nil {
		return err
	}

	doc := *account
	doc.ID = bson.NewObjectID().Hex()
	if doc.CreatedAt.IsZero() {
		// BSON datetime 精度为毫秒
		doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	if err := insertOne(ctx, col, &doc); err != nil {
		return err
	}

	*account = doc
	return nil
}

// GetAccountByEmail 按邮箱查找账号，不存在时返回 (nil, nil)
func (s *Store) GetAccountByEmail(ctx context.Context, kind model.AccountKind, email string) (*model.Account, error) {
	col, err := s.accountCol(kind)
	if err != nil {
		return nil, err
	}
	return findOne[model.Account](ctx, col, bson.D{{Key: "email", Value: email}})
}

// GetAccountByID 按 ID 查找账号
func (s *Store) GetAccountByID(ctx context.Context, kind model.AccountKind, id string) (*model.Account, error) {
	col, err := s.accountCol(kind)
	if err != nil {
		return nil, err
	}
	return findOne[model.Account](ctx, col, bson.D{{Key: "_id", Value: id}})
}
