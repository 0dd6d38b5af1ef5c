package infra

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounts-auth/internal/config"
	"accounts-auth/internal/shared/eventbus"
	"accounts-auth/internal/shared/model"
)

func TestNew_SQLite(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "accounts.db") + "?mode=rwc"
	infra, err := New(&config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseURL:    dsn,
	})
	require.NoError(t, err)
	defer infra.Close()

	_, ok := infra.EventBus.(*eventbus.NoOpEventBus)
	assert.True(t, ok, "no Redis URL should yield a no-op bus")

	ctx := context.Background()
	acc := &model.Account{Kind: model.AccountKindUser, Username: "bob", Email: "bob@x.com", PasswordHash: "h"}
	require.NoError(t, infra.Store.CreateAccount(ctx, acc))

	got, err := infra.Store.GetAccountByEmail(ctx, model.AccountKindUser, "bob@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, acc.ID, got.ID)
}

// TestNewAccountStore_SQLiteReopen 重复打开同一文件，建表可重复执行
func TestNewAccountStore_SQLiteReopen(t *testing.T) {
	cfg := &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseURL:    "file:" + filepath.Join(t.TempDir(), "accounts.db") + "?mode=rwc",
	}

	store, err := NewAccountStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.CreateAccount(context.Background(),
		&model.Account{Kind: model.AccountKindAdmin, Username: "root", Email: "root@x.com", PasswordHash: "h"}))
	require.NoError(t, store.Close())

	store, err = NewAccountStore(cfg)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.GetAccountByEmail(context.Background(), model.AccountKindAdmin, "root@x.com")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestNewAccountStore_UnknownDriver(t *testing.T) {
	_, err := NewAccountStore(&config.Config{DatabaseDriver: "oracle"})
	assert.Error(t, err)
}

func TestNewEventBus(t *testing.T) {
	bus, err := NewEventBus("")
	require.NoError(t, err)
	assert.IsType(t, &eventbus.NoOpEventBus{}, bus)

	_, err = NewEventBus("not a url")
	assert.Error(t, err)
}

// TestNewEventBus_RedisUnreachable Redis 不可达时降级为 NoOp，不阻止启动
func TestNewEventBus_RedisUnreachable(t *testing.T) {
	bus, err := NewEventBus("redis://127.0.0.1:1/0?dial_timeout=200ms&max_retries=-1")
	require.NoError(t, err)
	assert.IsType(t, &eventbus.NoOpEventBus{}, bus)
	assert.NoError(t, bus.Close())
}

func TestInfrastructure_CloseNil(t *testing.T) {
	assert.NoError(t, (&Infrastructure{}).Close())
	assert.NoError(t, (&Infrastructure{EventBus: eventbus.NewNoOpEventBus()}).Close())
}
