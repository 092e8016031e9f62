package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MultiStepForm/internal/form"
)

type failingStore struct {
	getErr error
	setErr error
}

func (f failingStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	return "", false, f.getErr
}

func (f failingStore) SetItem(ctx context.Context, key, value string) error {
	return f.setErr
}

func TestAdapterKey(t *testing.T) {
	assert.Equal(t, "multistep_form_data", NewAdapter(NewMemoryStore(), "").Key())
	assert.Equal(t, "multistep_form_data:42", NewAdapter(NewMemoryStore(), "42").Key())
}

func TestAdapterSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	adapter := NewAdapter(store, "visitor")

	rec := form.Record{
		Name:                   "Yago Cunha",
		Email:                  "yago@gmail.com",
		Street:                 "Paulista Avenue",
		Number:                 form.Float(100),
		ReceiveMarketingEmails: true,
	}
	require.NoError(t, adapter.Save(ctx, rec))

	raw, ok, err := store.GetItem(ctx, adapter.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t,
		`{"name":"Yago Cunha","email":"yago@gmail.com","street":"Paulista Avenue","number":100,"receiveMarketingEmails":true,"receiveNotifications":false}`,
		raw,
	)

	loaded, ok := adapter.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, rec, loaded)
}

func TestAdapterLoadFallsBack(t *testing.T) {
	ctx := context.Background()

	t.Run("absent", func(t *testing.T) {
		rec, ok := NewAdapter(NewMemoryStore(), "x").Load(ctx)
		assert.False(t, ok)
		assert.Equal(t, form.DefaultRecord(), rec)
	})

	t.Run("unparseable", func(t *testing.T) {
		store := NewMemoryStore()
		adapter := NewAdapter(store, "x")
		require.NoError(t, store.SetItem(ctx, adapter.Key(), "{not json"))

		rec, ok := adapter.Load(ctx)
		assert.False(t, ok)
		assert.Equal(t, form.DefaultRecord(), rec)
	})

	t.Run("wrong types", func(t *testing.T) {
		store := NewMemoryStore()
		adapter := NewAdapter(store, "x")
		require.NoError(t, store.SetItem(ctx, adapter.Key(), `{"name":"A","number":"five"}`))

		rec, ok := adapter.Load(ctx)
		assert.False(t, ok)
		assert.Equal(t, form.DefaultRecord(), rec)
	})

	t.Run("read error", func(t *testing.T) {
		rec, ok := NewAdapter(failingStore{getErr: errors.New("boom")}, "x").Load(ctx)
		assert.False(t, ok)
		assert.Equal(t, form.DefaultRecord(), rec)
	})
}

func TestAdapterLoadFillsMissingKeys(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	adapter := NewAdapter(store, "x")
	require.NoError(t, store.SetItem(ctx, adapter.Key(), `{"name":"A"}`))

	rec, ok := adapter.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, form.Record{Name: "A"}, rec)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	var keys map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &keys))
	assert.Len(t, keys, 6)
}

func TestAdapterSavePropagatesWriteError(t *testing.T) {
	writeErr := errors.New("quota exceeded")
	err := NewAdapter(failingStore{setErr: writeErr}, "x").Save(context.Background(), form.DefaultRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, writeErr)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client)

	_, ok, err := store.GetItem(ctx, "multistep_form_data:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetItem(ctx, "multistep_form_data:1", `{"name":"A"}`))

	value, ok, err := store.GetItem(ctx, "multistep_form_data:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"name":"A"}`, value)

	// 键带前缀且不过期
	stored, err := mr.Get("msf:multistep_form_data:1")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"A"}`, stored)
	assert.Zero(t, mr.TTL("msf:multistep_form_data:1"))
}

func TestRedisStoreReadErrorFallsBack(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	rec, ok := NewAdapter(NewRedisStore(client), "1").Load(context.Background())
	assert.False(t, ok)
	assert.Equal(t, form.DefaultRecord(), rec)
}
