package pipeline

import (
	"maps"
	"slices"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
)

// DefaultImportName names graphs built from a pipeline without a name.
const DefaultImportName = "Imported Graph"

// ImportedTextureName is the display name of texture nodes created by Build.
const ImportedTextureName = "Texture"

// Report describes what Build could not carry over.
type Report struct {
	// Dropped lists input bindings whose source resource was not produced
	// by the Input sentinel, a particle or an earlier pass.
	Dropped []DroppedBinding

	// Detached lists the node IDs of passes that write outScreen but lost
	// their edge to the Output sentinel to a later pass. Their stored output
	// stays outScreen.
	Detached []string

	Particles int
	Textures  int
	Passes    int
}

// DroppedBinding is an input binding Build could not resolve. The port is
// still created, just left unconnected.
type DroppedBinding struct {
	Pass   string
	Port   string
	Source string
}

// Validate checks the structure Build relies on.
func (c *Config) Validate() error {
	if c == nil || c.PostProcess == nil {
		return errors.New(errors.ErrCodeInvalidPipeline, "missing postProcess")
	}
	for i, p := range c.PostProcess.Graph {
		if p.Name == "" {
			return errors.New(errors.ErrCodeInvalidPipeline, "pass %d has no name", i)
		}
	}
	return nil
}

// Build reconstructs an editable graph from cfg:
//
//  1. the Input and Output sentinels with their fixed IDs
//  2. one particle node per pooled resource that is neither reserved nor
//     written by any pass
//  3. one texture node per distinct texture path
//  4. one pass node per entry, with fresh port IDs for every binding
//
// Input bindings are resolved against the resources produced so far,
// starting with inScreen from the Input sentinel; a pass registers its own
// output only after its inputs are resolved. Unresolved bindings are listed
// in the report. A pass writing outScreen is connected to the Output
// sentinel.
//
// Build fails without partial results when cfg is structurally invalid.
// Node positions are generated with graph.Arrange.
func Build(cfg *Config, ids graph.IDGenerator) (*graph.Graph, *Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	pp := cfg.PostProcess
	name := pp.Name
	if name == "" {
		name = DefaultImportName
	}

	b := &builder{
		ids:      ids,
		nodes:    graph.New(name).Nodes(),
		produced: map[string]string{graph.ResourceInScreen: graph.InputNodeID},
		textures: map[string]string{},
		report:   &Report{},
	}

	written := make(map[string]bool, len(pp.Graph))
	for _, p := range pp.Graph {
		written[p.Output] = true
	}
	for _, rt := range pp.RTPool {
		if graph.IsReserved(rt) || written[rt] || b.produced[rt] != "" {
			continue
		}
		b.addParticle(rt)
	}

	for _, p := range pp.Graph {
		b.addPass(p)
	}

	g, err := graph.FromParts(name, b.nodes, b.edges)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "assemble imported graph")
	}
	return graph.Arrange(g), b.report, nil
}

type builder struct {
	ids      graph.IDGenerator
	nodes    []graph.Node
	edges    []graph.Edge
	produced map[string]string // resource name -> producing node
	textures map[string]string // path -> texture node
	report   *Report
}

func (b *builder) addParticle(rt string) {
	id := b.ids.NewID()
	b.nodes = append(b.nodes, graph.Node{
		ID:   id,
		Kind: graph.KindParticle,
		Data: graph.ParticleData{Name: rt, Output: rt},
	})
	b.produced[rt] = id
	b.report.Particles++
}

func (b *builder) texture(path string) string {
	if id, ok := b.textures[path]; ok {
		return id
	}
	id := b.ids.NewID()
	b.nodes = append(b.nodes, graph.Node{
		ID:   id,
		Kind: graph.KindTexture,
		Data: graph.TextureData{Name: ImportedTextureName, Path: path, Output: path},
	})
	b.textures[path] = id
	b.report.Textures++
	return id
}

func (b *builder) addPass(p Pass) {
	id := b.ids.NewID()

	inputs := make([]graph.Port, 0, len(p.Inputs))
	for _, in := range p.Inputs {
		inputs = append(inputs, graph.Port{ID: "in_" + b.ids.NewID(), Name: in.Name()})
	}

	var texPorts []graph.Port
	var texNodes []string
	for _, name := range slices.Sorted(maps.Keys(p.Textures)) {
		texPorts = append(texPorts, graph.Port{ID: "tex_" + b.ids.NewID(), Name: name})
		texNodes = append(texNodes, b.texture(p.Textures[name]))
	}

	uniforms := maps.Clone(p.Uniforms)
	if uniforms == nil {
		uniforms = map[string]graph.Uniform{}
	}
	d := graph.PassData{
		Name:         p.Name,
		VS:           p.VS,
		FS:           p.FS,
		InputPorts:   inputs,
		TexturePorts: texPorts,
		Uniforms:     uniforms,
		Output:       p.Output,
	}
	if p.BaseColor != nil {
		c := *p.BaseColor
		d.BaseColor = &c
	}
	b.nodes = append(b.nodes, graph.Node{ID: id, Kind: graph.KindPass, Data: d})
	b.report.Passes++

	for i, in := range p.Inputs {
		src, ok := b.produced[in.Source()]
		if !ok {
			b.report.Dropped = append(b.report.Dropped, DroppedBinding{Pass: p.Name, Port: in.Name(), Source: in.Source()})
			continue
		}
		b.connect(graph.Connection{Source: src, Target: id, TargetHandle: inputs[i].ID})
	}
	for i, tex := range texNodes {
		b.connect(graph.Connection{Source: tex, Target: id, TargetHandle: texPorts[i].ID})
	}

	if p.Output != "" && p.Output != graph.ResourceInScreen {
		b.produced[p.Output] = id
	}
	if p.Output == graph.ResourceOutScreen {
		b.connectOutput(id)
	}
}

func (b *builder) connect(c graph.Connection) {
	b.edges = append(b.edges, c.Edge())
}

// connectOutput links the pass to the Output sentinel, replacing the edge of
// any earlier pass since the sentinel has a single input.
func (b *builder) connectOutput(id string) {
	i := slices.IndexFunc(b.edges, func(e graph.Edge) bool { return e.Target == graph.OutputNodeID })
	if i >= 0 {
		b.report.Detached = append(b.report.Detached, b.edges[i].Source)
		b.edges = slices.Delete(b.edges, i, i+1)
	}
	b.connect(graph.Connection{Source: id, Target: graph.OutputNodeID})
}
