package graph

import (
	"fmt"
	"maps"
	"slices"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Sentinel node IDs. Every graph contains both and neither can be removed.
const (
	InputNodeID  = "START_NODE"
	OutputNodeID = "END_NODE"
)

// Reserved resource names for the screen source and sink.
const (
	ResourceInScreen  = "inScreen"
	ResourceOutScreen = "outScreen"
)

// DefaultInputName is the sampler name bound to inScreen when a pass has no
// connected input ports, and the fallback for unnamed input ports.
const DefaultInputName = "u_texture"

// OutputHandle is the source handle of every edge. Nodes expose a single output.
const OutputHandle = "out"

// IsReserved reports whether name is one of the two screen resources.
func IsReserved(name string) bool {
	return name == ResourceInScreen || name == ResourceOutScreen
}

// =============================================================================
// Kind
// =============================================================================

// Kind identifies the variant of a node and therefore the type of its payload.
type Kind int

const (
	KindInput    Kind = iota // screen source sentinel, payload PassData
	KindOutput               // screen sink sentinel, payload PassData
	KindPass                 // shader pass, payload PassData
	KindTexture              // file texture, payload TextureData
	KindParticle             // externally produced render target, payload ParticleData
)

var kindNames = map[Kind]string{
	KindInput:    "input",
	KindOutput:   "output",
	KindPass:     "pass",
	KindTexture:  "texture",
	KindParticle: "particle",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a kind name ("pass", "texture", ...) to a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown node kind %q", s)
}

// =============================================================================
// Payloads
// =============================================================================

// Payload is the kind-specific data of a node. It is implemented only by
// PassData, TextureData and ParticleData.
type Payload interface {
	payload()
}

// Port is a named attachment point on a pass. ID is the edge handle and never
// changes; Name is the shader binding name and may be renamed freely.
type Port struct {
	ID   string
	Name string
}

// PassData is the payload of pass nodes and of the two sentinels.
type PassData struct {
	Name         string
	VS           string // vertex shader path, empty means the configured default
	FS           string // fragment shader path, empty means the configured default
	InputPorts   []Port
	TexturePorts []Port
	Uniforms     map[string]Uniform
	Output       string
	BaseColor    *[4]float64
	Static       bool
	ThemeColor   string
}

// TextureData is the payload of texture nodes. Output always equals Path.
type TextureData struct {
	Name       string
	Path       string
	Output     string
	ThemeColor string
}

// ParticleData is the payload of particle nodes, which stand in for render
// targets produced outside the post-process graph.
type ParticleData struct {
	Name       string
	Output     string
	ThemeColor string
}

func (PassData) payload()     {}
func (TextureData) payload()  {}
func (ParticleData) payload() {}

// InputPort returns the input port with the given handle.
func (p PassData) InputPort(id string) (Port, bool) {
	return findPort(p.InputPorts, id)
}

// TexturePort returns the texture port with the given handle.
func (p PassData) TexturePort(id string) (Port, bool) {
	return findPort(p.TexturePorts, id)
}

func findPort(ports []Port, id string) (Port, bool) {
	i := slices.IndexFunc(ports, func(p Port) bool { return p.ID == id })
	if i < 0 {
		return Port{}, false
	}
	return ports[i], true
}

func (p PassData) clone() PassData {
	p.InputPorts = slices.Clone(p.InputPorts)
	p.TexturePorts = slices.Clone(p.TexturePorts)
	p.Uniforms = maps.Clone(p.Uniforms)
	if p.Uniforms == nil {
		p.Uniforms = map[string]Uniform{}
	}
	if p.BaseColor != nil {
		c := *p.BaseColor
		p.BaseColor = &c
	}
	return p
}

// =============================================================================
// Node and Edge
// =============================================================================

// Position is the canvas location of a node. The engine never reads it.
type Position struct {
	X float64
	Y float64
}

// Node is a vertex of the pipeline graph. Data holds PassData for input,
// output and pass nodes, TextureData for textures and ParticleData for
// particles. Nodes returned by a Graph must be treated as read-only.
type Node struct {
	ID       string
	Kind     Kind
	Position Position
	Data     Payload
}

// Pass returns the node's PassData. It reports false for textures and particles.
func (n Node) Pass() (PassData, bool) {
	d, ok := n.Data.(PassData)
	return d, ok
}

// Texture returns the node's TextureData if the node is a texture.
func (n Node) Texture() (TextureData, bool) {
	d, ok := n.Data.(TextureData)
	return d, ok
}

// Particle returns the node's ParticleData if the node is a particle.
func (n Node) Particle() (ParticleData, bool) {
	d, ok := n.Data.(ParticleData)
	return d, ok
}

// Name returns the display name of the node.
func (n Node) Name() string {
	switch d := n.Data.(type) {
	case PassData:
		return d.Name
	case TextureData:
		return d.Name
	case ParticleData:
		return d.Name
	}
	return ""
}

// Output returns the stored output identifier: the resource name for passes,
// sentinels and particles, the file path for textures.
func (n Node) Output() string {
	switch d := n.Data.(type) {
	case PassData:
		return d.Output
	case TextureData:
		return d.Output
	case ParticleData:
		return d.Output
	}
	return ""
}

// IsStatic reports whether the node is protected from deletion.
func (n Node) IsStatic() bool {
	d, ok := n.Data.(PassData)
	return ok && d.Static
}

// Edge connects the output of Source to the port TargetHandle of Target.
type Edge struct {
	ID           string
	Source       string
	SourceHandle string
	Target       string
	TargetHandle string
}

// Connection is a proposed edge, before it has an ID.
type Connection struct {
	Source       string
	SourceHandle string
	Target       string
	TargetHandle string
}

// EdgeID derives the stable ID of the edge a connection would create.
func (c Connection) EdgeID() string {
	c = c.normalize()
	return fmt.Sprintf("e-%s-%s-%s-%s", c.Source, c.SourceHandle, c.Target, c.TargetHandle)
}

// Edge converts the connection into an edge.
func (c Connection) Edge() Edge {
	c = c.normalize()
	return Edge{
		ID:           c.EdgeID(),
		Source:       c.Source,
		SourceHandle: c.SourceHandle,
		Target:       c.Target,
		TargetHandle: c.TargetHandle,
	}
}

// normalize fills in the default source handle. The Output sentinel has a
// single unnamed input, so any target handle on it is cleared.
func (c Connection) normalize() Connection {
	if c.SourceHandle == "" {
		c.SourceHandle = OutputHandle
	}
	if c.Target == OutputNodeID {
		c.TargetHandle = ""
	}
	return c
}
