package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/actioncache/observe"
)

// componentName keys the cacher's logger in the logger factory.
const componentName = "cacher"

// defaultPrefixBase is the stem of the namespace-derived key prefix.
const defaultPrefixBase = "AC"

// Cacher derives cache keys and serves action results from a Store
// through Middleware. Key computation is pure and synchronous; all
// persisted state belongs to the store.
type Cacher struct {
	store  Store
	opts   Options
	prefix string
	keyer  Keyer
	log    observe.Logger
	flight *singleflight.Group
}

// New creates a Cacher over the given store. The namespace isolates
// tenants sharing one backend: it feeds the default key prefix unless
// Options.Prefix overrides it. The logger factory may be nil, in which
// case the cacher logs nowhere.
func New(store Store, namespace string, opts Options, logs observe.LoggerFactory) (*Cacher, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	opts = opts.withDefaults()

	log := observe.NopLogger()
	if logs != nil {
		log = logs(componentName)
	}

	c := &Cacher{
		store:  store,
		opts:   opts,
		prefix: keyPrefix(opts.Prefix, namespace),
		keyer:  opts.Keyer,
		log:    log,
	}
	if opts.Coalesce {
		c.flight = new(singleflight.Group)
	}
	return c, nil
}

// keyPrefix derives the process-wide key prefix, set once per Cacher.
// A caller-supplied prefix wins; otherwise the namespace is folded in
// so tenants sharing a backend cannot collide.
func keyPrefix(prefix, namespace string) string {
	if prefix != "" {
		return prefix + "-"
	}
	if namespace != "" {
		return defaultPrefixBase + "-" + namespace + "-"
	}
	return defaultPrefixBase + "-"
}

// CacheKey returns the derived key for one invocation, without the
// process-wide prefix. A custom keyer's output is returned verbatim;
// otherwise the default derivation applies.
func (c *Cacher) CacheKey(action string, params, meta map[string]any, keys []string) string {
	return c.keyer.Key(action, params, meta, keys)
}

// Get retrieves the content stored under the prefixed key.
func (c *Cacher) Get(ctx context.Context, key string) (any, error) {
	return c.store.Get(ctx, c.prefix+key)
}

// Set stores value under the prefixed key. A zero ttl falls back to the
// cacher-wide TTL.
func (c *Cacher) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.opts.TTL
	}
	return c.store.Set(ctx, c.prefix+key, value, ttl)
}

// Del removes the entry under the prefixed key.
func (c *Cacher) Del(ctx context.Context, key string) error {
	return c.store.Del(ctx, c.prefix+key)
}

// Clean removes every entry of this cacher's namespace matching pattern.
// An empty pattern means CleanAll.
func (c *Cacher) Clean(ctx context.Context, pattern string) error {
	if pattern == "" {
		pattern = CleanAll
	}
	return c.store.Clean(ctx, c.prefix+pattern)
}
