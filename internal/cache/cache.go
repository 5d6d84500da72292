// Package cache is the TTL'd result cache consulted by the HTTP handlers.
// The engine itself stays stateless; expired entries are simply recomputed.
package cache

import (
	"context"
	"time"
)

// Store caches serialized endpoint results by key.
type Store interface {
	// Get returns the cached payload and whether a live entry exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores payload under key with the given time-to-live.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	// PurgeExpired deletes expired rows and reports how many were removed.
	PurgeExpired(ctx context.Context) (int, error)
	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Noop is a Store that caches nothing; used when caching is disabled.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error)            { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error     { return nil }
func (Noop) PurgeExpired(context.Context) (int, error)                    { return 0, nil }
func (Noop) Migrate(context.Context) error                                { return nil }
func (Noop) Close() error                                                 { return nil }
