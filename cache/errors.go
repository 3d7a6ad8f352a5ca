package cache

import "errors"

// Sentinel errors for cacher construction and the store contract.
var (
	// ErrNilStore indicates a Cacher was constructed without a Store.
	ErrNilStore = errors.New("cache: store is nil")

	// ErrNotImplemented indicates a Store method was invoked on
	// UnimplementedStore. It signals an incomplete backend
	// implementation, not a transient fault, and must never be retried.
	ErrNotImplemented = errors.New("cache: operation not implemented by store")
)
