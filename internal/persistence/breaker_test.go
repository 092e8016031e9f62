package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MultiStepForm/internal/form"
)

type flakyStore struct {
	*MemoryStore
	fail  bool
	calls int
}

func (f *flakyStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	f.calls++
	if f.fail {
		return "", false, errors.New("connection refused")
	}
	return f.MemoryStore.GetItem(ctx, key)
}

func (f *flakyStore) SetItem(ctx context.Context, key, value string) error {
	f.calls++
	if f.fail {
		return errors.New("connection refused")
	}
	return f.MemoryStore.SetItem(ctx, key, value)
}

func TestCircuitBreakerOpensAndRecovers(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	breaker := NewCircuitBreaker("test", 2, 30*time.Second)
	breaker.now = func() time.Time { return now }

	backend := &flakyStore{MemoryStore: NewMemoryStore(), fail: true}
	store := NewBreakerStore(backend, breaker)

	for i := 0; i < 2; i++ {
		assert.Error(t, store.SetItem(ctx, "k", "v"))
	}
	assert.Equal(t, StateOpen, breaker.GetState())

	// 熔断期间不访问后端
	calls := backend.calls
	err := store.SetItem(ctx, "k", "v")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, calls, backend.calls)

	// 超时后半开，试探成功即恢复
	backend.fail = false
	now = now.Add(31 * time.Second)
	require.NoError(t, store.SetItem(ctx, "k", "v"))
	assert.Equal(t, StateClosed, breaker.GetState())

	value, ok, err := store.GetItem(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	breaker := NewCircuitBreaker("test", 1, time.Second)
	breaker.now = func() time.Time { return now }

	store := NewBreakerStore(&flakyStore{MemoryStore: NewMemoryStore(), fail: true}, breaker)

	_, _, err := store.GetItem(ctx, "k")
	assert.Error(t, err)
	assert.Equal(t, StateOpen, breaker.GetState())

	now = now.Add(2 * time.Second)
	_, _, err = store.GetItem(ctx, "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, StateOpen, breaker.GetState())
}

func TestAdapterFallsBackWhenCircuitOpen(t *testing.T) {
	ctx := context.Background()
	breaker := NewCircuitBreaker("test", 1, time.Minute)
	backend := &flakyStore{MemoryStore: NewMemoryStore(), fail: true}
	adapter := NewAdapter(NewBreakerStore(backend, breaker), "v")

	assert.Error(t, adapter.Save(ctx, form.DefaultRecord()))

	rec, ok := adapter.Load(ctx)
	assert.False(t, ok)
	assert.Equal(t, form.DefaultRecord(), rec)
}
