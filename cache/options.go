package cache

import "time"

// DefaultMaxKeyLength is the default bound on derived cache keys. It
// equals the length of one base64-encoded SHA-256 digest, the shortest
// bound under which hashing stays enabled.
const DefaultMaxKeyLength = 44

// Options configures a Cacher. The zero value is usable: every field has
// a documented default applied at construction, and caller-supplied
// values always win. Options are immutable once the Cacher is built.
type Options struct {
	// TTL is the time-to-live handed to the store when a cached action
	// carries no TTL of its own. Zero delegates the default to the
	// backend.
	TTL time.Duration

	// Keyer overrides cache-key derivation. Nil selects a DefaultKeyer
	// bound to MaxKeyLength. Custom keyer output is used verbatim.
	Keyer Keyer

	// MaxKeyLength bounds derived keys. Zero means DefaultMaxKeyLength;
	// values below 44 disable length bounding.
	MaxKeyLength int

	// Prefix overrides the namespace-derived key prefix. A trailing
	// separator is appended automatically.
	Prefix string

	// Coalesce collapses concurrent misses on the same key into a
	// single handler invocation. Off by default: concurrent identical
	// invocations may each miss and each invoke the handler.
	Coalesce bool
}

// withDefaults returns a copy of o with defaults applied field by field.
func (o Options) withDefaults() Options {
	if o.MaxKeyLength == 0 {
		o.MaxKeyLength = DefaultMaxKeyLength
	}
	if o.Keyer == nil {
		o.Keyer = NewDefaultKeyer(o.MaxKeyLength)
	}
	return o
}
