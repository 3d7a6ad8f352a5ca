package cache

import (
	"context"
	"time"
)

// CleanAll is the match pattern that removes every entry a backend owns.
const CleanAll = "**"

// Store is the contract a concrete cache backend must satisfy. The
// cacher owns no persisted state of its own: every entry lives in the
// injected Store.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: methods must honor cancellation/deadlines.
// - Errors: Get returns (nil, nil) on miss. Whether a transient backend
//   failure surfaces as an error or as a miss is the implementation's
//   policy; the cacher propagates whatever Get returns.
type Store interface {
	// Get retrieves the content stored under key. A nil value with a
	// nil error is a miss.
	Get(ctx context.Context, key string) (any, error)

	// Set stores value under key. ttl <= 0 means the backend default.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Del removes the entry under key. Idempotent - no error on miss.
	Del(ctx context.Context, key string) error

	// Clean removes every entry matching pattern. CleanAll matches all.
	Clean(ctx context.Context, pattern string) error
}

// UnimplementedStore is a Store whose every method fails with
// ErrNotImplemented. Embed it when building a partial backend so that
// missing operations fail loudly instead of silently caching nothing.
type UnimplementedStore struct{}

func (UnimplementedStore) Get(context.Context, string) (any, error) {
	return nil, ErrNotImplemented
}

func (UnimplementedStore) Set(context.Context, string, any, time.Duration) error {
	return ErrNotImplemented
}

func (UnimplementedStore) Del(context.Context, string) error {
	return ErrNotImplemented
}

func (UnimplementedStore) Clean(context.Context, string) error {
	return ErrNotImplemented
}

// Ensure UnimplementedStore implements Store
var _ Store = UnimplementedStore{}
