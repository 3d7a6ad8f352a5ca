package cache

import (
	"context"
	"time"

	"github.com/jonwraymond/actioncache/observe"
)

// HandlerFunc is the signature of an action handler.
type HandlerFunc func(ctx context.Context, req *Request) (any, error)

// Request carries one invocation's inputs to its handler. Params and
// Meta are read-only for the duration of the call. FromCache is an
// output flag: the middleware sets it when it serves the result from the
// store instead of invoking the handler, and never reads it back.
type Request struct {
	Params map[string]any
	Meta   map[string]any

	FromCache bool
}

// Policy activates caching for one action. Its presence on an Action is
// what turns the middleware on; a handler whose action carries no policy
// is returned untouched.
type Policy struct {
	// Keys lists the field selectors contributing to the cache key.
	// Selectors prefixed with "#" read from Meta, dotted selectors walk
	// nested maps. Nil or empty hashes the whole params bag instead.
	Keys []string

	// TTL overrides the cacher-wide TTL for this action.
	TTL time.Duration
}

// Action describes a remote-callable action to the middleware.
type Action struct {
	Name  string
	Cache *Policy
}

// Middleware wraps an action handler, returning the handler to install
// in its place.
type Middleware func(next HandlerFunc, action Action) HandlerFunc

// Middleware returns the factory the broker installs around action
// handlers. Per invocation of a cached action: the key is computed, the
// store consulted, and on a hit the cached content is returned without
// invoking the handler. On a miss the handler runs once and its result
// is written back. The get/invoke/set sequence is not atomic: without
// Options.Coalesce, concurrent invocations sharing a key may each miss
// and each invoke the handler.
func (c *Cacher) Middleware() Middleware {
	return func(next HandlerFunc, action Action) HandlerFunc {
		if action.Cache == nil {
			return next
		}

		return func(ctx context.Context, req *Request) (any, error) {
			key := c.prefix + c.CacheKey(action.Name, req.Params, req.Meta, action.Cache.Keys)

			cached, err := c.store.Get(ctx, key)
			if err != nil {
				// The backend chose to surface this; propagate.
				return nil, err
			}
			if cached != nil {
				req.FromCache = true
				c.log.Debug(ctx, "serving from cache",
					observe.Field{Key: "action", Value: action.Name},
				)
				return cached, nil
			}

			if c.flight != nil {
				// Followers share the leader's result; the leader runs
				// under its own context.
				result, ferr, _ := c.flight.Do(key, func() (any, error) {
					return c.invoke(ctx, key, action, next, req)
				})
				return result, ferr
			}
			return c.invoke(ctx, key, action, next, req)
		}
	}
}

// invoke runs the handler and populates the store. Handler errors are
// never cached. A store failure on the write path is logged and
// discarded: the handler's result always wins.
func (c *Cacher) invoke(ctx context.Context, key string, action Action, next HandlerFunc, req *Request) (any, error) {
	result, err := next(ctx, req)
	if err != nil {
		return result, err
	}

	ttl := action.Cache.TTL
	if ttl <= 0 {
		ttl = c.opts.TTL
	}
	if serr := c.store.Set(ctx, key, result, ttl); serr != nil {
		c.log.Warn(ctx, "cache store failed",
			observe.Field{Key: "action", Value: action.Name},
			observe.Field{Key: "error", Value: serr.Error()},
		)
	}
	return result, nil
}
