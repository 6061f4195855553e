package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fjod/go_shop/internal/cache"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockCache struct {
	m     sync.Mutex
	calls int
	err   error
	data  map[string][]byte
}

func (m *mockCache) Get(_ context.Context, orderID string) ([]byte, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	doc, ok := m.data[orderID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return doc, nil
}

func (m *mockCache) Set(_ context.Context, orderID string, doc []byte) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[orderID] = doc
	return nil
}

func (m *mockCache) Delete(_ context.Context, orderID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	delete(m.data, orderID)
	return nil
}

func (m *mockCache) setErr(err error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.err = err
}

func (m *mockCache) callCount() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.calls
}

func testSettings() Settings {
	return Settings{Name: "test", FailureThreshold: 3, OpenTimeout: 50 * time.Millisecond}
}

func TestCache_PassesThrough(t *testing.T) {
	next := &mockCache{}
	c := NewCache(next, testSettings(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "ORD-000001", []byte("<order/>")))
	doc, err := c.Get(ctx, "ORD-000001")
	require.NoError(t, err)
	assert.Equal(t, "<order/>", string(doc))

	require.NoError(t, c.Delete(ctx, "ORD-000001"))
	_, err = c.Get(ctx, "ORD-000001")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestCache_MissesDoNotTrip(t *testing.T) {
	next := &mockCache{}
	c := NewCache(next, testSettings(), zap.NewNop())

	for i := 0; i < 10; i++ {
		_, err := c.Get(context.Background(), "ORD-000404")
		assert.ErrorIs(t, err, cache.ErrCacheMiss)
	}
	assert.Equal(t, gobreaker.StateClosed, c.State())
}

func TestCache_OpensAfterConsecutiveFailures(t *testing.T) {
	next := &mockCache{err: errors.New("redis down")}
	c := NewCache(next, testSettings(), zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.Get(ctx, "ORD-000001")
		assert.ErrorContains(t, err, "redis down")
	}
	assert.Equal(t, gobreaker.StateOpen, c.State())

	// Open breaker does not call through
	_, err := c.Get(ctx, "ORD-000001")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.ErrorIs(t, c.Set(ctx, "ORD-000001", nil), gobreaker.ErrOpenState)
	assert.Equal(t, 3, next.callCount())
}

func TestCache_RecoversAfterTimeout(t *testing.T) {
	next := &mockCache{err: errors.New("redis down")}
	c := NewCache(next, testSettings(), zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = c.Delete(ctx, "ORD-000001")
	}
	require.Equal(t, gobreaker.StateOpen, c.State())

	next.setErr(nil)
	require.Eventually(t, func() bool {
		return c.State() == gobreaker.StateHalfOpen
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, c.Set(ctx, "ORD-000001", []byte("<order/>")))
	assert.Equal(t, gobreaker.StateClosed, c.State())
}
