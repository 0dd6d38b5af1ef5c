package mongostore

import (
	"context"
	"os"
	"sync"
	"testing"

	"accounts-auth/internal/shared/model"
	"accounts-auth/internal/shared/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore 创建测试用 Store，使用独立数据库避免污染
func testStore(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	dbName := "accounts_auth_test"
	s, err := NewStore(uri, dbName)
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	// 清空测试数据库
	ctx := context.Background()
	if err := s.db.Drop(ctx); err != nil {
		t.Fatalf("Failed to drop test database: %v", err)
	}
	// 重新创建索引
	if err := s.ensureIndexes(ctx); err != nil {
		t.Fatalf("Failed to create indexes: %v", err)
	}

	t.Cleanup(func() {
		s.db.Drop(context.Background())
		s.Close()
	})

	return s
}

func TestAccountCRUD(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	acc := &model.Account{
		Kind:         model.AccountKindUser,
		Username:     "bob",
		Email:        "bob@x.com",
		PasswordHash: "$2a$10$hash",
	}

	// Create
	require.NoError(t, s.CreateAccount(ctx, acc))
	assert.Len(t, acc.ID, 24)
	assert.False(t, acc.CreatedAt.IsZero())

	// Duplicate insert
	dup := *acc
	dup.ID = ""
	err := s.CreateAccount(ctx, &dup)
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	// GetByEmail
	got, err := s.GetAccountByEmail(ctx, model.AccountKindUser, "bob@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, acc.ID, got.ID)
	assert.Equal(t, model.AccountKindUser, got.Kind)
	assert.Equal(t, "$2a$10$hash", got.PasswordHash)
	assert.True(t, acc.CreatedAt.Equal(got.CreatedAt))

	// GetByID
	got, err = s.GetAccountByID(ctx, model.AccountKindUser, acc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "bob", got.Username)

	// Not found
	got, err = s.GetAccountByEmail(ctx, model.AccountKindUser, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAccountKindsAreSeparate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	user := &model.Account{Kind: model.AccountKindUser, Username: "u", Email: "same@x.com", PasswordHash: "h"}
	admin := &model.Account{Kind: model.AccountKindAdmin, Username: "a", Email: "same@x.com", PasswordHash: "h"}
	require.NoError(t, s.CreateAccount(ctx, user))
	require.NoError(t, s.CreateAccount(ctx, admin))

	got, err := s.GetAccountByEmail(ctx, model.AccountKindAdmin, "same@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, admin.ID, got.ID)
}

func TestAccountConcurrentCreate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.CreateAccount(ctx, &model.Account{
				Kind: model.AccountKindUser, Username: "r", Email: "race@x.com", PasswordHash: "h",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, storage.ErrDuplicate)
	}
	assert.Equal(t, 1, succeeded)
}

func TestAccountUnknownKind(t *testing.T) {
	s := testStore(t)
	_, err := s.GetAccountByEmail(context.Background(), model.AccountKind("guest"), "g@x.com")
	assert.Error(t, err)
}
