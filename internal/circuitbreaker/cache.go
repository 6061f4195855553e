// Package circuitbreaker guards the document cache so that a failing Redis
// is skipped instead of slowing every export.
package circuitbreaker

import (
	"context"
	"errors"
	"time"

	"github.com/fjod/go_shop/internal/cache"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

type Settings struct {
	Name string
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		Name:             "document-cache",
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}
}

// Cache is a cache.DocumentCache whose calls go through a circuit breaker.
// A cache miss counts as success.
type Cache struct {
	next cache.DocumentCache
	cb   *gobreaker.CircuitBreaker[[]byte]
}

func NewCache(next cache.DocumentCache, s Settings, logger *zap.Logger) *Cache {
	threshold := s.FailureThreshold
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, cache.ErrCacheMiss)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to))
		},
	})
	return &Cache{next: next, cb: cb}
}

func (c *Cache) Get(ctx context.Context, orderID string) ([]byte, error) {
	return c.cb.Execute(func() ([]byte, error) {
		return c.next.Get(ctx, orderID)
	})
}

func (c *Cache) Set(ctx context.Context, orderID string, doc []byte) error {
	_, err := c.cb.Execute(func() ([]byte, error) {
		return nil, c.next.Set(ctx, orderID, doc)
	})
	return err
}

func (c *Cache) Delete(ctx context.Context, orderID string) error {
	_, err := c.cb.Execute(func() ([]byte, error) {
		return nil, c.next.Delete(ctx, orderID)
	})
	return err
}

func (c *Cache) State() gobreaker.State {
	return c.cb.State()
}
