package cache

import (
	"context"
	"time"
)

// NullCache satisfies [Cache] without storing anything. It backs --no-cache
// and a disabled cache in the config, so every run enumerates and renders.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache returns a [NullCache].
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }
