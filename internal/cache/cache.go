package cache

import (
	"context"
	"errors"
)

// DocumentCache stores rendered order documents keyed by order id.
type DocumentCache interface {
	Get(ctx context.Context, orderID string) ([]byte, error)
	Set(ctx context.Context, orderID string, doc []byte) error
	Delete(ctx context.Context, orderID string) error
}

var ErrCacheMiss = errors.New("cache miss")

// NopCache never holds anything. It is used when no Redis address is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string) ([]byte, error) { return nil, ErrCacheMiss }

func (NopCache) Set(context.Context, string, []byte) error { return nil }

func (NopCache) Delete(context.Context, string) error { return nil }
