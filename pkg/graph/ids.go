package graph

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces identifiers for nodes, ports and resource names.
// Implementations must not return the same ID twice.
type IDGenerator interface {
	NewID() string
}

// Counter is a deterministic IDGenerator yielding "1", "2", "3", ...
// It is safe for concurrent use. The zero value starts at 1.
type Counter struct {
	n atomic.Uint64
}

// NewCounter returns a counter whose first ID is start+1. Use it to continue
// numbering after IDs already present in a loaded graph.
func NewCounter(start uint64) *Counter {
	c := &Counter{}
	c.n.Store(start)
	return c
}

func (c *Counter) NewID() string {
	return strconv.FormatUint(c.n.Add(1), 10)
}

// UUIDs is an IDGenerator backed by random (version 4) UUIDs.
type UUIDs struct{}

func (UUIDs) NewID() string {
	return uuid.NewString()
}

var (
	_ IDGenerator = (*Counter)(nil)
	_ IDGenerator = UUIDs{}
)
