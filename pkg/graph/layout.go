package graph

// Grid spacing used by Arrange.
const (
	ColumnWidth = 300.0
	RowHeight   = 160.0
)

// Arrange returns a copy of g with every node placed on a column grid: each
// node sits one column right of its deepest predecessor, the Input sentinel
// in column 0 and the Output sentinel in the last column. Nodes the
// topological sort skips share the column after the deepest sorted node.
//
// Positions are cosmetic; the importer uses Arrange to regenerate a layout
// for graphs decoded from pipeline JSON, which carries none.
func Arrange(g *Graph) *Graph {
	order, skipped := TopoSort(g)

	depth := make(map[string]int, len(g.nodes))
	maxDepth := 0
	for _, id := range order {
		d := depth[id]
		for _, e := range g.edges {
			if e.Source == id && depth[e.Target] < d+1 {
				depth[e.Target] = d + 1
			}
		}
		if d > maxDepth {
			maxDepth = d
		}
	}
	for _, id := range skipped {
		depth[id] = maxDepth + 1
	}
	if len(skipped) > 0 {
		maxDepth++
	}
	depth[OutputNodeID] = max(maxDepth, 1)
	depth[InputNodeID] = 0

	rows := make(map[int]int)
	h := g.clone()
	for i := range h.nodes {
		col := depth[h.nodes[i].ID]
		h.nodes[i].Position = Position{
			X: float64(col) * ColumnWidth,
			Y: float64(rows[col]) * RowHeight,
		}
		rows[col]++
	}
	return h
}
