package io

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/pipeline"
)

// ReadJSON decodes a pipeline description from r.
//
// ReadJSON returns an INVALID_PIPELINE error if:
//   - The JSON is malformed
//   - The postProcess object is missing
//   - A pass has no name
//   - A uniform is neither a number nor an array of 2 to 4 numbers
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*pipeline.Config, error) {
	var cfg pipeline.Config
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPipeline, err, "decode pipeline")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ImportJSON reads a pipeline description from the file at path.
func ImportJSON(path string) (*pipeline.Config, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ReadProject decodes a project document from r into a graph snapshot.
// The result passes the same checks as [graph.FromParts]: unique node IDs,
// both sentinels present, no dangling edges and one edge per port.
func ReadProject(r io.Reader) (*graph.Graph, error) {
	var data project
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode project")
	}

	nodes := make([]graph.Node, 0, len(data.Nodes))
	for _, n := range data.Nodes {
		kind, err := graph.ParseKind(n.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
		payload, err := decodePayload(kind, n.Data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %s data", n.ID)
		}
		nodes = append(nodes, graph.Node{
			ID:       n.ID,
			Kind:     kind,
			Position: graph.Position{X: n.Position.X, Y: n.Position.Y},
			Data:     payload,
		})
	}
	edges := make([]graph.Edge, 0, len(data.Edges))
	for _, e := range data.Edges {
		edges = append(edges, graph.Edge(e))
	}

	name := data.Name
	if name == "" {
		name = graph.DefaultName
	}
	return graph.FromParts(name, nodes, edges)
}

// LoadProject reads a project file at path.
func LoadProject(path string) (*graph.Graph, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := ReadProject(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
