// Package cache provides a pluggable result cache for action handlers.
//
// It defines the Store contract concrete backends satisfy, deterministic
// cache-key derivation with length bounding, and a middleware that serves
// action results from the store or invokes the handler and populates the
// store on a miss.
package cache
