package graph

import (
	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
)

// CanConnect reports whether c may be added to g. It is a pure predicate;
// see Explain for the rules.
func CanConnect(g *Graph, c Connection) bool {
	return Explain(g, c) == nil
}

// Explain checks c against the connection rules and returns an
// INVALID_CONNECTION error naming the first rule it breaks:
//
//  1. Source and target must differ.
//  2. The edge must not close a cycle: no path may already lead from the
//     target back to the source.
//  3. A texture may only feed a declared texture port of a pass.
//  4. The Input sentinel or a pass may feed the Output sentinel, or a
//     declared input port of a pass. The Output sentinel has a single
//     input; the target handle of a connection to it is ignored.
//  5. Every other combination is rejected.
func Explain(g *Graph, c Connection) error {
	if c.Source == c.Target {
		return reject("cannot connect %s to itself", c.Source)
	}
	if reaches(g, c.Target, c.Source) {
		return reject("connecting %s to %s would create a cycle", c.Source, c.Target)
	}

	src, okS := g.Node(c.Source)
	dst, okD := g.Node(c.Target)
	if !okS || !okD {
		return reject("unknown node in %s -> %s", c.Source, c.Target)
	}

	switch src.Kind {
	case KindTexture:
		if dst.Kind != KindPass {
			return reject("texture %s can only feed a pass, not %s", src.ID, dst.Kind)
		}
		d, _ := dst.Pass()
		if _, ok := d.TexturePort(c.TargetHandle); !ok {
			return reject("%q is not a texture port of %s", c.TargetHandle, dst.ID)
		}
		return nil
	case KindInput, KindPass:
		switch dst.Kind {
		case KindOutput:
			return nil
		case KindPass:
			d, _ := dst.Pass()
			if _, ok := d.InputPort(c.TargetHandle); !ok {
				return reject("%q is not an input port of %s", c.TargetHandle, dst.ID)
			}
			return nil
		}
	}
	return reject("%s node %s cannot feed %s node %s", src.Kind, src.ID, dst.Kind, dst.ID)
}

func reject(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConnection, format, args...)
}

// reaches reports whether a path from -> ... -> to exists, following edges
// from source to target with an iterative depth-first search.
func reaches(g *Graph, from, to string) bool {
	stack := []string{from}
	visited := make(map[string]bool)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == to {
			return true
		}
		if visited[id] {
			continue
		}
		visited[id] = true
		for _, e := range g.edges {
			if e.Source == id {
				stack = append(stack, e.Target)
			}
		}
	}
	return false
}
