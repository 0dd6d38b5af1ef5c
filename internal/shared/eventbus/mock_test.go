package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accounts-auth/internal/shared/model"
)

func TestMemoryEventBus(t *testing.T) {
	bus := NewMemoryEventBus()
	ctx := context.Background()

	user := &model.Account{ID: "u1", Kind: model.AccountKindUser, Email: "u@x.com"}
	admin := &model.Account{ID: "a1", Kind: model.AccountKindAdmin, Email: "a@x.com"}

	require.NoError(t, bus.PublishAccountEvent(ctx, NewAccountEvent(AccountEventRegistered, user)))
	require.NoError(t, bus.PublishAccountEvent(ctx, NewAccountEvent(AccountEventLogin, user)))
	require.NoError(t, bus.PublishAccountEvent(ctx, NewAccountEvent(AccountEventRegistered, admin)))

	events := bus.Events()
	require.Len(t, events, 3)
	assert.Equal(t, AccountEventLogin, events[1].Type)
	assert.Equal(t, model.AccountKindAdmin, events[2].Kind)
	assert.Equal(t, "a1", events[2].AccountID)
	assert.False(t, events[0].Timestamp.IsZero())

	bus.FailWith(errors.New("redis down"))
	assert.Error(t, bus.PublishAccountEvent(ctx, NewAccountEvent(AccountEventLogin, admin)))
	assert.Len(t, bus.Events(), 3)
}

func TestNoOpEventBus(t *testing.T) {
	bus := NewNoOpEventBus()
	assert.NoError(t, bus.PublishAccountEvent(context.Background(), &AccountEvent{Kind: model.AccountKindUser}))
	assert.NoError(t, bus.Close())
}
