package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/gameportal/internal/model"
	"github.com/mcoot/gameportal/internal/storage"
	"github.com/mcoot/gameportal/internal/storage/memory"
)

func TestHistoryKey(t *testing.T) {
	assert.Equal(t, "gameHistory_42", storage.HistoryKey(model.UserID("42")))
}

func TestJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	in := []model.Account{{ID: "1", Username: "admin", PasswordHash: "h"}}

	require.NoError(t, storage.SetJSON(ctx, s, storage.UsersKey, in))

	out, err := storage.GetJSON[[]model.Account](ctx, s, storage.UsersKey)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestGetJSONMissing(t *testing.T) {
	_, err := storage.GetJSON[model.Session](context.Background(), memory.New(), storage.SessionKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetJSONMalformed(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Set(ctx, storage.SessionKey, "{not json"))

	_, err := storage.GetJSON[model.Session](ctx, s, storage.SessionKey)
	assert.ErrorIs(t, err, storage.ErrMalformed)
}

func TestWithPrefixIsolatesNamespaces(t *testing.T) {
	ctx := context.Background()
	base := memory.New()
	a := storage.WithPrefix(base, "client:a:")
	b := storage.WithPrefix(base, "client:b:")

	require.NoError(t, a.Set(ctx, storage.SessionKey, "alice"))

	_, err := b.Get(ctx, storage.SessionKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	raw, err := base.Get(ctx, "client:a:gamePortalUser")
	require.NoError(t, err)
	assert.Equal(t, "alice", raw)

	require.NoError(t, a.Remove(ctx, storage.SessionKey))
	assert.Equal(t, 0, base.Len())
}
