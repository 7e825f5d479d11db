package graph

import (
	"slices"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
)

// DefaultName is the pipeline name of a new graph.
const DefaultName = "后处理蓝图"

// Graph is an immutable snapshot of the editor state: nodes and edges in
// insertion order plus the pipeline name. Every command method returns a new
// Graph and leaves the receiver untouched, so snapshots can be kept for undo
// or shared between goroutines.
//
// The zero value is not usable - use New or FromParts.
type Graph struct {
	name  string
	nodes []Node
	edges []Edge
}

// New returns a graph holding only the Input and Output sentinels.
func New(name string) *Graph {
	return &Graph{
		name:  name,
		nodes: []Node{newInputNode(), newOutputNode()},
	}
}

func newInputNode() Node {
	return Node{
		ID:       InputNodeID,
		Kind:     KindInput,
		Position: Position{X: -200, Y: 200},
		Data: PassData{
			Name:     "Input",
			Output:   ResourceInScreen,
			Uniforms: map[string]Uniform{},
			Static:   true,
		},
	}
}

func newOutputNode() Node {
	return Node{
		ID:       OutputNodeID,
		Kind:     KindOutput,
		Position: Position{X: 800, Y: 200},
		Data: PassData{
			Name:     "Output",
			Output:   ResourceOutScreen,
			Uniforms: map[string]Uniform{},
			Static:   true,
		},
	}
}

// FromParts assembles a graph from decoded nodes and edges, checking the
// invariants the command methods otherwise maintain:
//
//  1. Node IDs are non-empty and unique, and each payload matches its kind
//  2. Both sentinels are present with their fixed kinds
//  3. Every edge references existing nodes
//  4. No two edges share a (target, target handle) pair
//
// Sentinels are re-marked static regardless of the decoded flag.
func FromParts(name string, nodes []Node, edges []Edge) (*Graph, error) {
	g := &Graph{name: name}
	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if n.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node ID must not be empty")
		}
		if seen[n.ID] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate node ID %q", n.ID)
		}
		seen[n.ID] = true
		if !payloadMatches(n) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %q: %T payload does not match kind %s", n.ID, n.Data, n.Kind)
		}
		if d, ok := n.Pass(); ok {
			d = d.clone()
			d.Static = n.Kind == KindInput || n.Kind == KindOutput
			n.Data = d
		}
		g.nodes = append(g.nodes, n)
	}

	for id, kind := range map[string]Kind{InputNodeID: KindInput, OutputNodeID: KindOutput} {
		n, ok := g.Node(id)
		if !ok || n.Kind != kind {
			return nil, errors.New(errors.ErrCodeInvalidInput, "missing %s sentinel %q", kind, id)
		}
	}

	occupied := make(map[[2]string]bool, len(edges))
	for _, e := range edges {
		if !seen[e.Source] || !seen[e.Target] {
			return nil, errors.New(errors.ErrCodeNodeNotFound, "edge %s references unknown node", e.ID)
		}
		key := [2]string{e.Target, e.TargetHandle}
		if occupied[key] {
			return nil, errors.New(errors.ErrCodeInvalidInput, "port %s of %s has more than one incoming edge", e.TargetHandle, e.Target)
		}
		occupied[key] = true
		g.edges = append(g.edges, e)
	}
	return g, nil
}

func payloadMatches(n Node) bool {
	switch n.Kind {
	case KindInput, KindOutput, KindPass:
		_, ok := n.Data.(PassData)
		return ok
	case KindTexture:
		_, ok := n.Data.(TextureData)
		return ok
	case KindParticle:
		_, ok := n.Data.(ParticleData)
		return ok
	}
	return false
}

// Name returns the pipeline name.
func (g *Graph) Name() string { return g.name }

// Nodes returns the nodes in insertion order. The slice is a copy; the
// payloads are shared and must not be modified.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns the edges in insertion order as a copy.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes, sentinels included.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	i := g.nodeIndex(id)
	if i < 0 {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Edge returns the edge with the given ID.
func (g *Graph) Edge(id string) (Edge, bool) {
	i := slices.IndexFunc(g.edges, func(e Edge) bool { return e.ID == id })
	if i < 0 {
		return Edge{}, false
	}
	return g.edges[i], true
}

// Incoming returns the edges ending at the node, in insertion order.
func (g *Graph) Incoming(id string) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Target == id {
			out = append(out, e)
		}
	}
	return out
}

// Outgoing returns the edges leaving the node, in insertion order.
func (g *Graph) Outgoing(id string) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Source == id {
			out = append(out, e)
		}
	}
	return out
}

// NodesOfKind returns the nodes of one kind in insertion order.
func (g *Graph) NodesOfKind(k Kind) []Node {
	var out []Node
	for _, n := range g.nodes {
		if n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}

// FeedsOutput reports whether any edge from the node ends at the Output sentinel.
func (g *Graph) FeedsOutput(id string) bool {
	return slices.ContainsFunc(g.edges, func(e Edge) bool {
		return e.Source == id && e.Target == OutputNodeID
	})
}

// EffectiveOutput returns the resource name a node writes to once compiled:
// outScreen for passes feeding the Output sentinel, the stored output
// otherwise.
func (g *Graph) EffectiveOutput(n Node) string {
	if n.Kind == KindPass && g.FeedsOutput(n.ID) {
		return ResourceOutScreen
	}
	return n.Output()
}

func (g *Graph) nodeIndex(id string) int {
	return slices.IndexFunc(g.nodes, func(n Node) bool { return n.ID == id })
}

// clone copies the node and edge slices. Payloads stay shared until a
// command replaces them.
func (g *Graph) clone() *Graph {
	return &Graph{
		name:  g.name,
		nodes: slices.Clone(g.nodes),
		edges: slices.Clone(g.edges),
	}
}
