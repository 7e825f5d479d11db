package graph

import (
	"fmt"
	"slices"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
)

// Defaults for newly created nodes.
const (
	DefaultPassName     = "New Pass"
	DefaultPortName     = "u_tex0"
	DefaultTextureName  = "TextureAsset"
	DefaultTexturePath  = "assets/textures/test.png"
	DefaultParticleName = "Particles"
)

// Ptr returns a pointer to v, for filling patch fields.
func Ptr[T any](v T) *T { return &v }

// =============================================================================
// Node creation
// =============================================================================

// AddPass appends a pass node with one input port and a fresh output name
// that collides with no existing output. It returns the new snapshot and the
// node ID.
func (g *Graph) AddPass(ids IDGenerator) (*Graph, string) {
	id := ids.NewID()
	port := Port{ID: "in_" + ids.NewID(), Name: DefaultPortName}
	n := Node{
		ID:       id,
		Kind:     KindPass,
		Position: g.nextPosition(),
		Data: PassData{
			Name:       DefaultPassName,
			InputPorts: []Port{port},
			Uniforms:   map[string]Uniform{},
			Output:     g.newResourceName(ids),
		},
	}
	return g.appendNode(n), id
}

// AddTexture appends a texture node reading path, or DefaultTexturePath when
// path is empty.
func (g *Graph) AddTexture(ids IDGenerator, path string) (*Graph, string) {
	if path == "" {
		path = DefaultTexturePath
	}
	n := Node{
		ID:       ids.NewID(),
		Kind:     KindTexture,
		Position: g.nextPosition(),
		Data:     TextureData{Name: DefaultTextureName, Path: path, Output: path},
	}
	return g.appendNode(n), n.ID
}

// AddParticle appends a particle node with a fresh output name.
func (g *Graph) AddParticle(ids IDGenerator) (*Graph, string) {
	id := ids.NewID()
	n := Node{
		ID:       id,
		Kind:     KindParticle,
		Position: g.nextPosition(),
		Data:     ParticleData{Name: DefaultParticleName, Output: g.newResourceName(ids)},
	}
	return g.appendNode(n), id
}

func (g *Graph) appendNode(n Node) *Graph {
	h := g.clone()
	h.nodes = append(h.nodes, n)
	return h
}

// newResourceName draws "rt_<id>" names until one is unused by any node.
func (g *Graph) newResourceName(ids IDGenerator) string {
	for {
		name := "rt_" + ids.NewID()
		if !slices.ContainsFunc(g.nodes, func(n Node) bool { return n.Kind != KindTexture && n.Output() == name }) {
			return name
		}
	}
}

// nextPosition staggers new nodes between the two sentinels.
func (g *Graph) nextPosition() Position {
	k := len(g.nodes)
	return Position{X: float64(100 + (k%4)*120), Y: float64(100 + (k%6)*60)}
}

// MoveNode sets the canvas position of a node.
func (g *Graph) MoveNode(id string, pos Position) *Graph {
	i := g.nodeIndex(id)
	if i < 0 {
		return g
	}
	h := g.clone()
	h.nodes[i].Position = pos
	return h
}

// SetName sets the pipeline name.
func (g *Graph) SetName(name string) *Graph {
	h := g.clone()
	h.name = name
	return h
}

// =============================================================================
// Node update
// =============================================================================

// Patch is a partial payload for Update. Nil fields are left unchanged.
type Patch interface {
	apply(n Node) (Payload, bool)
}

// PassPatch updates a pass node. It is ignored for every other kind.
type PassPatch struct {
	Name           *string
	VS             *string
	FS             *string
	Output         *string
	BaseColor      *[4]float64
	ClearBaseColor bool
	ThemeColor     *string
}

// TexturePatch updates a texture node. Setting Path also sets Output.
type TexturePatch struct {
	Name       *string
	Path       *string
	ThemeColor *string
}

// ParticlePatch updates a particle node.
type ParticlePatch struct {
	Name       *string
	Output     *string
	ThemeColor *string
}

func (p PassPatch) apply(n Node) (Payload, bool) {
	d, ok := n.Pass()
	if !ok || n.Kind != KindPass {
		return nil, false
	}
	d = d.clone()
	setIf(&d.Name, p.Name)
	setIf(&d.VS, p.VS)
	setIf(&d.FS, p.FS)
	setIf(&d.Output, p.Output)
	setIf(&d.ThemeColor, p.ThemeColor)
	if p.BaseColor != nil {
		c := *p.BaseColor
		d.BaseColor = &c
	}
	if p.ClearBaseColor {
		d.BaseColor = nil
	}
	return d, true
}

func (p TexturePatch) apply(n Node) (Payload, bool) {
	d, ok := n.Texture()
	if !ok {
		return nil, false
	}
	setIf(&d.Name, p.Name)
	setIf(&d.ThemeColor, p.ThemeColor)
	if p.Path != nil {
		d.Path = *p.Path
		d.Output = *p.Path
	}
	return d, true
}

func (p ParticlePatch) apply(n Node) (Payload, bool) {
	d, ok := n.Particle()
	if !ok {
		return nil, false
	}
	setIf(&d.Name, p.Name)
	setIf(&d.Output, p.Output)
	setIf(&d.ThemeColor, p.ThemeColor)
	return d, true
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Update shallow-merges p into the node's payload. Unknown nodes and
// patches of the wrong kind are ignored.
func (g *Graph) Update(id string, p Patch) *Graph {
	i := g.nodeIndex(id)
	if i < 0 {
		return g
	}
	d, ok := p.apply(g.nodes[i])
	if !ok {
		return g
	}
	h := g.clone()
	h.nodes[i].Data = d
	return h
}

// updatePass applies fn to a copy of a pass node's payload.
func (g *Graph) updatePass(id string, fn func(d *PassData)) *Graph {
	i := g.nodeIndex(id)
	if i < 0 || g.nodes[i].Kind != KindPass {
		return g
	}
	h := g.clone()
	d := h.nodes[i].Data.(PassData).clone()
	fn(&d)
	h.nodes[i].Data = d
	return h
}

// =============================================================================
// Ports
// =============================================================================

// AddInputPort appends an input port to a pass. An empty name becomes
// "u_tex<N>". It returns the new snapshot and the port handle.
func (g *Graph) AddInputPort(id string, ids IDGenerator, name string) (*Graph, string) {
	port := Port{ID: "in_" + ids.NewID(), Name: name}
	h := g.updatePass(id, func(d *PassData) {
		if port.Name == "" {
			port.Name = fmt.Sprintf("u_tex%d", len(d.InputPorts))
		}
		d.InputPorts = append(d.InputPorts, port)
	})
	if h == g {
		return g, ""
	}
	return h, port.ID
}

// AddTexturePort appends a texture port to a pass. An empty name becomes
// "u_map<N>".
func (g *Graph) AddTexturePort(id string, ids IDGenerator, name string) (*Graph, string) {
	port := Port{ID: "tex_" + ids.NewID(), Name: name}
	h := g.updatePass(id, func(d *PassData) {
		if port.Name == "" {
			port.Name = fmt.Sprintf("u_map%d", len(d.TexturePorts))
		}
		d.TexturePorts = append(d.TexturePorts, port)
	})
	if h == g {
		return g, ""
	}
	return h, port.ID
}

// RemoveInputPort removes an input port and every edge bound to it.
func (g *Graph) RemoveInputPort(id, portID string) *Graph {
	h := g.updatePass(id, func(d *PassData) {
		d.InputPorts = slices.DeleteFunc(d.InputPorts, func(p Port) bool { return p.ID == portID })
	})
	return h.dropEdgesAt(id, portID)
}

// RemoveTexturePort removes a texture port and every edge bound to it.
func (g *Graph) RemoveTexturePort(id, portID string) *Graph {
	h := g.updatePass(id, func(d *PassData) {
		d.TexturePorts = slices.DeleteFunc(d.TexturePorts, func(p Port) bool { return p.ID == portID })
	})
	return h.dropEdgesAt(id, portID)
}

// RenameInputPort changes the binding name of an input port.
func (g *Graph) RenameInputPort(id, portID, name string) *Graph {
	return g.updatePass(id, func(d *PassData) { renamePort(d.InputPorts, portID, name) })
}

// RenameTexturePort changes the binding name of a texture port.
func (g *Graph) RenameTexturePort(id, portID, name string) *Graph {
	return g.updatePass(id, func(d *PassData) { renamePort(d.TexturePorts, portID, name) })
}

func renamePort(ports []Port, portID, name string) {
	for i := range ports {
		if ports[i].ID == portID {
			ports[i].Name = name
		}
	}
}

func (g *Graph) dropEdgesAt(target, handle string) *Graph {
	if !slices.ContainsFunc(g.edges, func(e Edge) bool { return e.Target == target && e.TargetHandle == handle }) {
		return g
	}
	h := g.clone()
	h.edges = slices.DeleteFunc(h.edges, func(e Edge) bool { return e.Target == target && e.TargetHandle == handle })
	return h
}

// =============================================================================
// Uniforms
// =============================================================================

// SetUniform stores a uniform value under key, adding it if absent.
func (g *Graph) SetUniform(id, key string, v Uniform) *Graph {
	return g.updatePass(id, func(d *PassData) { d.Uniforms[key] = v })
}

// AddUniform is SetUniform under the name the editor panel uses.
func (g *Graph) AddUniform(id, key string, v Uniform) *Graph {
	return g.SetUniform(id, key, v)
}

// RemoveUniform deletes a uniform.
func (g *Graph) RemoveUniform(id, key string) *Graph {
	return g.updatePass(id, func(d *PassData) { delete(d.Uniforms, key) })
}

// RenameUniform moves a uniform's value to a new key. Renaming a key to
// itself is a no-op; renaming onto an existing key overwrites it.
func (g *Graph) RenameUniform(id, oldKey, newKey string) *Graph {
	if oldKey == newKey {
		return g
	}
	return g.updatePass(id, func(d *PassData) {
		v, ok := d.Uniforms[oldKey]
		if !ok {
			return
		}
		delete(d.Uniforms, oldKey)
		d.Uniforms[newKey] = v
	})
}

// RetypeUniform replaces a uniform with the zero value of type t, discarding
// the previous value.
func (g *Graph) RetypeUniform(id, key string, t UniformType) *Graph {
	return g.updatePass(id, func(d *PassData) { d.Uniforms[key] = Zero(t) })
}

// =============================================================================
// Edges
// =============================================================================

// Connect inserts the edge for c after removing any edge already bound to the
// same target handle. It does not validate c; run CanConnect first. A
// connection naming an unknown node is ignored.
func (g *Graph) Connect(c Connection) *Graph {
	if g.nodeIndex(c.Source) < 0 || g.nodeIndex(c.Target) < 0 {
		return g
	}
	e := c.Edge()
	h := g.clone()
	h.edges = slices.DeleteFunc(h.edges, func(x Edge) bool {
		return x.Target == e.Target && x.TargetHandle == e.TargetHandle
	})
	h.edges = append(h.edges, e)
	return h
}

// RemoveEdges removes edges by ID. Unknown IDs are ignored.
func (g *Graph) RemoveEdges(ids ...string) *Graph {
	h := g.clone()
	h.edges = slices.DeleteFunc(h.edges, func(e Edge) bool { return slices.Contains(ids, e.ID) })
	return h
}

// RemoveNodes removes nodes by ID together with their edges. Static nodes
// are silently kept.
func (g *Graph) RemoveNodes(ids ...string) *Graph {
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		if n, ok := g.Node(id); ok && !n.IsStatic() {
			doomed[id] = true
		}
	}
	h := g.clone()
	h.nodes = slices.DeleteFunc(h.nodes, func(n Node) bool { return doomed[n.ID] })
	h.edges = slices.DeleteFunc(h.edges, func(e Edge) bool { return doomed[e.Source] || doomed[e.Target] })
	return h
}

// =============================================================================
// Name checks
// =============================================================================

// CheckOutputName reports whether name may be used as the output of the
// node. It returns a DUPLICATE_NAME error for inScreen, which always
// belongs to the screen input, and when another pass or particle node
// already writes to name. Exported pipelines name resources only, so two
// writers of one name could not be told apart on import.
func (g *Graph) CheckOutputName(name, nodeID string) error {
	if name == ResourceInScreen {
		return errors.New(errors.ErrCodeDuplicateName, "%q is reserved for the screen input", name)
	}
	for _, n := range g.nodes {
		if n.ID == nodeID || (n.Kind != KindPass && n.Kind != KindParticle) {
			continue
		}
		if n.Output() == name {
			return errors.New(errors.ErrCodeDuplicateName, "output %q is already used by %s %q", name, n.Kind, n.Name())
		}
	}
	return nil
}
