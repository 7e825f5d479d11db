package editor

import (
	"slices"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
)

// =============================================================================
// Nodes
// =============================================================================

// AddPass adds a pass with default settings and returns its ID.
func (e *Editor) AddPass() string {
	g, id := e.g.AddPass(e.ids)
	e.commit(g)
	e.logger.Debug("added pass", "node", id)
	return id
}

// AddTexture adds a texture node. An empty path uses the configured default.
func (e *Editor) AddTexture(path string) (string, error) {
	if path == "" {
		path = e.cfg.TexturePath
	}
	if err := errors.ValidateAssetPath(path); err != nil {
		return "", err
	}
	g, id := e.g.AddTexture(e.ids, path)
	e.commit(g)
	e.logger.Debug("added texture", "node", id, "path", path)
	return id, nil
}

// AddParticle adds a particle source and returns its ID.
func (e *Editor) AddParticle() string {
	g, id := e.g.AddParticle(e.ids)
	e.commit(g)
	e.logger.Debug("added particle", "node", id)
	return id
}

// RemoveNodes deletes nodes and their edges. The sentinels are skipped
// silently; the IDs actually removed are returned.
func (e *Editor) RemoveNodes(ids ...string) []string {
	var removed []string
	for _, id := range ids {
		n, ok := e.g.Node(id)
		if !ok {
			continue
		}
		if n.IsStatic() {
			e.logger.Debug("skipping static node", "node", id)
			continue
		}
		removed = append(removed, id)
	}
	if len(removed) > 0 {
		e.commit(e.g.RemoveNodes(removed...))
	}
	return removed
}

// MoveNode sets the canvas position of a node.
func (e *Editor) MoveNode(id string, pos graph.Position) error {
	if _, err := e.node(id); err != nil {
		return err
	}
	e.commit(e.g.MoveNode(id, pos))
	return nil
}

// UpdatePass applies p to a pass. A new output name must be a valid resource
// name not used by another pass or particle and not inScreen; shader paths
// must be valid asset paths.
func (e *Editor) UpdatePass(id string, p graph.PassPatch) error {
	if _, err := e.node(id, graph.KindPass); err != nil {
		return err
	}
	if p.Output != nil {
		if err := e.checkOutput(id, *p.Output); err != nil {
			return err
		}
	}
	for _, path := range []*string{p.VS, p.FS} {
		if path != nil && *path != "" {
			if err := errors.ValidateAssetPath(*path); err != nil {
				return err
			}
		}
	}
	e.commit(e.g.Update(id, p))
	return nil
}

// UpdateTexture applies p to a texture node.
func (e *Editor) UpdateTexture(id string, p graph.TexturePatch) error {
	if _, err := e.node(id, graph.KindTexture); err != nil {
		return err
	}
	if p.Path != nil {
		if err := errors.ValidateAssetPath(*p.Path); err != nil {
			return err
		}
	}
	e.commit(e.g.Update(id, p))
	return nil
}

// UpdateParticle applies p to a particle node.
func (e *Editor) UpdateParticle(id string, p graph.ParticlePatch) error {
	if _, err := e.node(id, graph.KindParticle); err != nil {
		return err
	}
	if p.Output != nil {
		if err := e.checkOutput(id, *p.Output); err != nil {
			return err
		}
	}
	e.commit(e.g.Update(id, p))
	return nil
}

func (e *Editor) checkOutput(id, name string) error {
	if err := errors.ValidateResourceName(name); err != nil {
		return err
	}
	if name == graph.ResourceOutScreen {
		return errors.New(errors.ErrCodeDuplicateName, "%q is written by connecting to the output node", name)
	}
	return e.g.CheckOutputName(name, id)
}

// =============================================================================
// Ports
// =============================================================================

// AddInputPort adds an input port to a pass and returns its handle.
func (e *Editor) AddInputPort(id, name string) (string, error) {
	if _, err := e.node(id, graph.KindPass); err != nil {
		return "", err
	}
	g, port := e.g.AddInputPort(id, e.ids, name)
	e.commit(g)
	return port, nil
}

// AddTexturePort adds a texture port to a pass and returns its handle.
func (e *Editor) AddTexturePort(id, name string) (string, error) {
	if _, err := e.node(id, graph.KindPass); err != nil {
		return "", err
	}
	g, port := e.g.AddTexturePort(id, e.ids, name)
	e.commit(g)
	return port, nil
}

// RemovePort removes an input or texture port and every edge bound to it.
func (e *Editor) RemovePort(id, portID string) error {
	input, err := e.port(id, portID)
	if err != nil {
		return err
	}
	if input {
		e.commit(e.g.RemoveInputPort(id, portID))
	} else {
		e.commit(e.g.RemoveTexturePort(id, portID))
	}
	return nil
}

// RenamePort changes the binding name of an input or texture port.
func (e *Editor) RenamePort(id, portID, name string) error {
	input, err := e.port(id, portID)
	if err != nil {
		return err
	}
	if err := errors.ValidateResourceName(name); err != nil {
		return err
	}
	if input {
		e.commit(e.g.RenameInputPort(id, portID, name))
	} else {
		e.commit(e.g.RenameTexturePort(id, portID, name))
	}
	return nil
}

// port locates a port on a pass and reports whether it is an input port.
func (e *Editor) port(id, portID string) (bool, error) {
	n, err := e.node(id, graph.KindPass)
	if err != nil {
		return false, err
	}
	d, _ := n.Pass()
	if _, ok := d.InputPort(portID); ok {
		return true, nil
	}
	if _, ok := d.TexturePort(portID); ok {
		return false, nil
	}
	return false, errors.New(errors.ErrCodePortNotFound, "node %q has no port %q", id, portID)
}

// =============================================================================
// Uniforms
// =============================================================================

// SetUniform adds or replaces a uniform on a pass.
func (e *Editor) SetUniform(id, key string, v graph.Uniform) error {
	if _, err := e.node(id, graph.KindPass); err != nil {
		return err
	}
	if err := errors.ValidateResourceName(key); err != nil {
		return err
	}
	e.commit(e.g.SetUniform(id, key, v))
	return nil
}

// RemoveUniform deletes a uniform from a pass.
func (e *Editor) RemoveUniform(id, key string) error {
	if _, err := e.uniform(id, key); err != nil {
		return err
	}
	e.commit(e.g.RemoveUniform(id, key))
	return nil
}

// RenameUniform moves a uniform to a new key. Renaming onto another
// existing key is rejected.
func (e *Editor) RenameUniform(id, oldKey, newKey string) error {
	d, err := e.uniform(id, oldKey)
	if err != nil {
		return err
	}
	if oldKey == newKey {
		return nil
	}
	if err := errors.ValidateResourceName(newKey); err != nil {
		return err
	}
	if _, taken := d.Uniforms[newKey]; taken {
		return errors.New(errors.ErrCodeDuplicateName, "uniform %q already exists", newKey)
	}
	e.commit(e.g.RenameUniform(id, oldKey, newKey))
	return nil
}

// RetypeUniform resets a uniform to the zero value of t.
func (e *Editor) RetypeUniform(id, key string, t graph.UniformType) error {
	if _, err := e.uniform(id, key); err != nil {
		return err
	}
	e.commit(e.g.RetypeUniform(id, key, t))
	return nil
}

func (e *Editor) uniform(id, key string) (graph.PassData, error) {
	n, err := e.node(id, graph.KindPass)
	if err != nil {
		return graph.PassData{}, err
	}
	d, _ := n.Pass()
	if _, ok := d.Uniforms[key]; !ok {
		return graph.PassData{}, errors.New(errors.ErrCodeInvalidUniform, "node %q has no uniform %q", id, key)
	}
	return d, nil
}

// =============================================================================
// Edges
// =============================================================================

// Connect adds an edge after checking it with graph.Explain. A rejected
// connection leaves the graph unchanged and returns INVALID_CONNECTION.
// An edge already bound to the same target port is replaced.
func (e *Editor) Connect(c graph.Connection) error {
	if err := graph.Explain(e.g, c); err != nil {
		e.logger.Debug("connection rejected", "source", c.Source, "target", c.Target, "handle", c.TargetHandle, "err", err)
		return err
	}
	e.commit(e.g.Connect(c))
	e.logger.Debug("connected", "source", c.Source, "target", c.Target, "handle", c.TargetHandle)
	return nil
}

// Disconnect removes edges by ID and returns how many existed.
func (e *Editor) Disconnect(ids ...string) int {
	n := 0
	for _, edge := range e.g.Edges() {
		if slices.Contains(ids, edge.ID) {
			n++
		}
	}
	if n > 0 {
		e.commit(e.g.RemoveEdges(ids...))
	}
	return n
}
