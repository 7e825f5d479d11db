package pipeline

import (
	"cmp"
	"maps"
	"slices"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
)

// Compile turns g into a pipeline description.
//
// Passes are emitted in the order produced by graph.TopoSort. For each pass:
//
//   - every edge ending on a declared input port becomes a binding from the
//     port name (or "u_texture" when unnamed) to the source's output; a pass
//     with no such edge gets the single binding u_texture → inScreen
//   - every edge from a texture node into a declared texture port becomes a
//     texture binding from the port name to the file path
//   - the output is outScreen when the pass feeds the Output sentinel, and
//     its stored output name otherwise
//
// The source's output in a binding is deliberately its effective output: a
// pass feeding the Output sentinel is read as outScreen, not by its stored
// name. The stored name is not in the pool once the pass writes outScreen,
// so a binding to it could not be resolved on import.
//
// The resource pool always starts with inScreen and outScreen, followed by
// particle outputs and then pass outputs, without duplicates.
//
// Passes the sort cannot place (members of a cycle) are omitted with a
// warning, or reported as a CYCLE error when opts.Strict is set.
func Compile(g *graph.Graph, opts Options) (*Config, error) {
	opts.SetDefaults()

	order, skipped := graph.TopoSort(g)
	if err := checkSkipped(g, skipped, opts); err != nil {
		return nil, err
	}

	pool := newPool(graph.ResourceInScreen, graph.ResourceOutScreen)
	for _, n := range g.NodesOfKind(graph.KindParticle) {
		pool.add(n.Output())
	}

	passes := make([]Pass, 0, len(order))
	for _, id := range order {
		n, _ := g.Node(id)
		if n.Kind != graph.KindPass {
			continue
		}
		p := compilePass(g, n, opts)
		pool.add(p.Output)
		passes = append(passes, p)
	}

	opts.Logger.Debug("compiled pipeline", "name", g.Name(), "passes", len(passes), "resources", len(pool.names))
	return &Config{PostProcess: &PostProcess{
		Name:   g.Name(),
		RTPool: pool.names,
		Hint:   opts.Hint,
		Graph:  passes,
	}}, nil
}

func checkSkipped(g *graph.Graph, skipped []string, opts Options) error {
	var passes []string
	for _, id := range skipped {
		if n, _ := g.Node(id); n.Kind == graph.KindPass {
			passes = append(passes, id)
		}
	}
	if len(passes) == 0 {
		return nil
	}
	if opts.Strict {
		return errors.New(errors.ErrCodeCycle, "passes %v are part of a cycle", passes)
	}
	opts.Logger.Warn("omitting passes outside the topological order", "passes", passes)
	return nil
}

func compilePass(g *graph.Graph, n graph.Node, opts Options) Pass {
	d, _ := n.Pass()

	var inputs []Binding
	textures := map[string]string{}
	for _, e := range g.Incoming(n.ID) {
		src, ok := g.Node(e.Source)
		if port, isInput := d.InputPort(e.TargetHandle); isInput {
			name := port.Name
			if name == "" {
				name = graph.DefaultInputName
			}
			inputs = append(inputs, Binding{name, sourceResource(g, src, ok)})
			continue
		}
		if port, isTex := d.TexturePort(e.TargetHandle); isTex && ok {
			if t, isTexture := src.Texture(); isTexture {
				textures[port.Name] = t.Path
			}
		}
	}
	if len(inputs) == 0 {
		inputs = []Binding{{graph.DefaultInputName, graph.ResourceInScreen}}
	}
	if len(textures) == 0 {
		textures = nil
	}

	p := Pass{
		Name:     d.Name,
		VS:       cmp.Or(d.VS, opts.VS),
		FS:       cmp.Or(d.FS, opts.FS),
		Inputs:   inputs,
		Output:   g.EffectiveOutput(n),
		Uniforms: maps.Clone(d.Uniforms),
		Textures: textures,
	}
	if p.Uniforms == nil {
		p.Uniforms = map[string]graph.Uniform{}
	}
	if d.BaseColor != nil {
		c := *d.BaseColor
		p.BaseColor = &c
	}
	return p
}

// sourceResource names what an input port reads from src: the file path
// of a texture, the effective output of anything else.
func sourceResource(g *graph.Graph, src graph.Node, ok bool) string {
	if !ok {
		return ""
	}
	if t, isTexture := src.Texture(); isTexture {
		return t.Path
	}
	return g.EffectiveOutput(src)
}

// pool is an insertion-ordered set of resource names.
type pool struct {
	names []string
}

func newPool(names ...string) *pool {
	return &pool{names: names}
}

func (p *pool) add(name string) {
	if name == "" || graph.IsReserved(name) || slices.Contains(p.names, name) {
		return
	}
	p.names = append(p.names, name)
}
