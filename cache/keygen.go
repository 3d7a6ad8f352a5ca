package cache

import "strings"

// MetaSelectorPrefix marks a field selector that resolves against the
// invocation's meta bag instead of its params.
const MetaSelectorPrefix = "#"

// Keyer derives the cache-key suffix for one invocation.
//
// Contract:
// - Determinism: deep-equal arguments must produce identical keys.
// - Concurrency: implementations must be safe for concurrent use.
// - Trust: custom implementations are not validated. Their output is
//   used verbatim and never length-bounded by the cacher.
type Keyer interface {
	// Key derives the key for action from the params and meta bags,
	// optionally restricted to the listed field selectors.
	Key(action string, params, meta map[string]any, keys []string) string
}

// KeyerFunc adapts a plain function to the Keyer interface.
type KeyerFunc func(action string, params, meta map[string]any, keys []string) string

// Key calls f.
func (f KeyerFunc) Key(action string, params, meta map[string]any, keys []string) string {
	return f(action, params, meta, keys)
}

// DefaultKeyer derives keys from selected invocation fields, hashing
// structured values and bounding whole-params keys to MaxKeyLength.
type DefaultKeyer struct {
	// MaxKeyLength bounds derived keys. Values below 44 disable
	// hashing entirely.
	MaxKeyLength int
}

// NewDefaultKeyer creates a DefaultKeyer. A zero maxKeyLength selects
// DefaultMaxKeyLength.
func NewDefaultKeyer(maxKeyLength int) *DefaultKeyer {
	if maxKeyLength == 0 {
		maxKeyLength = DefaultMaxKeyLength
	}
	return &DefaultKeyer{MaxKeyLength: maxKeyLength}
}

// Key derives the cache-key suffix for one invocation.
//
// With no params and no meta the action name alone is the key: an
// invocation with no inputs has one canonical key. With field selectors,
// each selected value contributes in list order, structured values
// hashed and scalars rendered plainly, joined with "|". Without
// selectors the whole params bag is hashed. An explicit empty selector
// list behaves exactly like no list at all and falls through to
// whole-params hashing.
func (k *DefaultKeyer) Key(action string, params, meta map[string]any, keys []string) string {
	if params == nil && meta == nil {
		return action
	}

	// Fast path for the common single-selector configuration.
	if len(keys) == 1 {
		return action + ":" + k.keyPart(fieldValue(keys[0], params, meta))
	}

	if len(keys) > 1 {
		parts := make([]string, len(keys))
		for i, sel := range keys {
			parts[i] = k.keyPart(fieldValue(sel, params, meta))
		}
		return action + ":" + strings.Join(parts, "|")
	}

	return action + ":" + BoundedHash(params, k.MaxKeyLength)
}

// keyPart renders one selected value: structured values are hashed,
// scalars and missing values use their plain string form.
func (k *DefaultKeyer) keyPart(v any) string {
	switch classify(v) {
	case kindKeyed, kindSequence:
		return BoundedHash(v, k.MaxKeyLength)
	default:
		return Stringify(v)
	}
}

// fieldValue resolves one field selector against the invocation's bags.
// Selectors prefixed with "#" read from meta, all others from params.
// Dotted selectors walk nested maps; a missing bag or segment resolves
// to nil.
func fieldValue(selector string, params, meta map[string]any) any {
	if rest, ok := strings.CutPrefix(selector, MetaSelectorPrefix); ok {
		return lookup(meta, rest)
	}
	return lookup(params, selector)
}

func lookup(bag map[string]any, path string) any {
	if bag == nil {
		return nil
	}
	cur := any(bag)
	for _, seg := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		if cur, ok = m[seg]; !ok {
			return nil
		}
	}
	return cur
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
