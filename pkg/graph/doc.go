// Package graph models a post-process pipeline as a directed acyclic graph
// of render passes and provides the editor's command surface over it.
//
// # Nodes
//
// A [Node] has a [Kind] and a payload whose type depends on that kind:
//
//	KindInput, KindOutput, KindPass   PassData
//	KindTexture                       TextureData
//	KindParticle                      ParticleData
//
// Every graph contains two static sentinels, [InputNodeID] (the screen
// source, resource "inScreen") and [OutputNodeID] (the screen sink, resource
// "outScreen"). They can never be removed.
//
// Passes expose ordered input ports and texture ports. A [Port] has a
// stable ID, used as the edge handle, and a Name, used as the shader binding
// name when the graph is compiled.
//
// # Snapshots
//
// A [Graph] is immutable. Each command returns a new snapshot:
//
//	g := graph.New("bloom")
//	ids := graph.NewCounter(0)
//	g, blur := g.AddPass(ids)
//	g = g.Update(blur, graph.PassPatch{Name: graph.Ptr("Blur")})
//	g = g.SetUniform(blur, "u_radius", graph.Float(4))
//
// IDs come from an injected [IDGenerator]; [Counter] makes runs reproducible
// and [UUIDs] gives globally unique IDs.
//
// # Connections
//
// [CanConnect] decides whether a proposed edge is admissible: no self loops,
// no cycles, textures only into texture ports, render targets only into
// input ports or the output sentinel. [Graph.Connect] replaces whatever edge
// already occupies the target port, so a port never has two incoming edges.
//
//	c := graph.Connection{Source: graph.InputNodeID, Target: blur, TargetHandle: port}
//	if graph.CanConnect(g, c) {
//	    g = g.Connect(c)
//	}
//
// # Ordering
//
// [TopoSort] orders nodes with Kahn's algorithm, breaking ties by insertion
// order. [Arrange] regenerates canvas positions from that order.
package graph
