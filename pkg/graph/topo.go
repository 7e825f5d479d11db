package graph

// TopoSort orders node IDs with Kahn's algorithm. Zero in-degree nodes are
// queued in insertion order and dequeued FIFO; successors are visited in
// edge insertion order, so ties always resolve the same way.
//
// Nodes that never reach in-degree zero (members of a cycle and everything
// downstream of one) are returned in skipped, in insertion order.
func TopoSort(g *Graph) (order, skipped []string) {
	adj := make(map[string][]string, len(g.nodes))
	inDegree := make(map[string]int, len(g.nodes))
	for _, n := range g.nodes {
		inDegree[n.ID] = 0
	}
	for _, e := range g.edges {
		_, okS := inDegree[e.Source]
		_, okT := inDegree[e.Target]
		if !okS || !okT {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		inDegree[e.Target]++
	}

	var queue []string
	for _, n := range g.nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	order = make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)
		for _, v := range adj[u] {
			inDegree[v]--
			if inDegree[v] == 0 {
				queue = append(queue, v)
			}
		}
	}

	if len(order) < len(g.nodes) {
		for _, n := range g.nodes {
			if inDegree[n.ID] > 0 {
				skipped = append(skipped, n.ID)
			}
		}
	}
	return order, skipped
}
