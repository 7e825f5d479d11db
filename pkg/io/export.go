package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/pipeline"
)

const indent = "    "

// WriteJSON encodes a pipeline description as indented JSON and writes it
// to w. The output can be read back with [ReadJSON].
func WriteJSON(cfg *pipeline.Config, w io.Writer) error {
	return encode(cfg, w)
}

// ExportJSON writes a pipeline description to a JSON file at path.
func ExportJSON(cfg *pipeline.Config, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteJSON(cfg, w) })
}

// ExportFileName returns "<name>.json" with path separators replaced, or
// "pipeline.json" for an empty name.
func ExportFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "pipeline"
	}
	return strings.NewReplacer("/", "_", "\\", "_").Replace(name) + ".json"
}

// WriteProject encodes a graph snapshot in the project format.
func WriteProject(g *graph.Graph, w io.Writer) error {
	out := project{Name: g.Name()}
	for _, n := range g.Nodes() {
		data, err := json.Marshal(encodePayload(n.Data))
		if err != nil {
			return fmt.Errorf("node %s: %w", n.ID, err)
		}
		out.Nodes = append(out.Nodes, node{
			ID:       n.ID,
			Kind:     n.Kind.String(),
			Position: position{X: n.Position.X, Y: n.Position.Y},
			Data:     data,
		})
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, edge(e))
	}
	return encode(out, w)
}

// SaveProject writes a graph snapshot to a project file at path.
func SaveProject(g *graph.Graph, path string) error {
	return writeFile(path, func(w io.Writer) error { return WriteProject(g, w) })
}

func encode(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
