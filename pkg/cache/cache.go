// Package cache stores rendered artifacts so repeated renders of an unchanged
// graph skip Graphviz.
//
// Keys are derived from the rendered input, so an entry never needs to be
// invalidated when the graph changes; it just stops being looked up. Entries
// still expire after a TTL to keep the directory from growing without bound.
//
//	c, err := cache.NewFileCache(dir, cache.DefaultTTL)
//	key := cache.Key("svg", dot)
//	if svg, ok, _ := c.Get(ctx, key); ok {
//	    return svg, nil
//	}
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store keyed by strings.
type Cache interface {
	// Get returns the stored value and whether it was found and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value, replacing any previous one.
	Set(ctx context.Context, key string, data []byte) error

	// Delete removes a value. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
