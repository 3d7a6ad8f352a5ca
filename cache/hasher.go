package cache

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// hashLength is the length of base64(sha256(key)): a 32-byte digest
// encodes to 44 characters.
const hashLength = 44

// valueKind classifies a value once at the serialization boundary so
// Stringify dispatches on a closed set of variants instead of repeated
// runtime type inspection.
type valueKind int

const (
	kindNull valueKind = iota
	kindScalar
	kindSequence
	kindKeyed
)

func classify(v any) valueKind {
	if v == nil {
		return kindNull
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return kindNull
		}
		return kindKeyed
	case reflect.Slice:
		if rv.IsNil() {
			return kindNull
		}
		return kindSequence
	case reflect.Array:
		return kindSequence
	case reflect.Pointer:
		if rv.IsNil() {
			return kindNull
		}
		return classify(rv.Elem().Interface())
	default:
		return kindScalar
	}
}

// Stringify converts an arbitrary structured value into a deterministic
// string. Sequences render as their elements stringified and joined with
// "|". Keyed structures render as key|value entries joined with "|",
// keys enumerated in sorted order: Go maps carry no insertion order, so
// sorted order is the canonical enumeration and deep-equal maps always
// stringify identically. Nil renders as "null" and scalars as their
// plain string form.
func Stringify(v any) string {
	switch classify(v) {
	case kindNull:
		return "null"

	case kindSequence:
		rv := reflect.ValueOf(v)
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = Stringify(rv.Index(i).Interface())
		}
		return strings.Join(parts, "|")

	case kindKeyed:
		rv := reflect.ValueOf(v)
		keys := make([]string, 0, rv.Len())
		vals := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			ks := fmt.Sprint(k.Interface())
			keys = append(keys, ks)
			vals[ks] = rv.MapIndex(k).Interface()
		}
		sort.Strings(keys)

		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "|" + Stringify(vals[k])
		}
		return strings.Join(parts, "|")

	default:
		return fmt.Sprint(v)
	}
}

// BoundedHash stringifies v and bounds the result to maxKeyLength.
//
// Keys at or under the limit pass through unchanged. So does everything
// when maxKeyLength is below 44: a limit smaller than one base64-encoded
// SHA-256 digest disables hashing rather than erroring. Longer keys keep
// a readable prefix of maxKeyLength-44 leading characters followed by
// base64(sha256(key)), so the bound holds while the suffix carries the
// collision resistance.
func BoundedHash(v any, maxKeyLength int) string {
	key := Stringify(v)
	if maxKeyLength < hashLength || len(key) <= maxKeyLength {
		return key
	}

	digest := sha256.Sum256([]byte(key))
	hash := base64.StdEncoding.EncodeToString(digest[:])

	prefixLength := maxKeyLength - hashLength
	if prefixLength < 1 {
		return hash
	}
	return key[:prefixLength] + hash
}
