// Package editor holds the current pipeline graph and applies editing
// commands to it with validation and logging.
//
// An Editor wraps the immutable snapshots of package graph: every command
// replaces the current snapshot with the one the command returns. Rejected
// commands leave the snapshot unchanged and report a coded error from package
// errors. Previous snapshots are kept for Undo.
//
// An Editor is not safe for concurrent use.
package editor

import (
	"io"
	"regexp"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/config"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/pipeline"
)

// MaxHistory bounds the number of snapshots kept for Undo.
const MaxHistory = 64

// Editor is the stateful holder of a pipeline graph.
type Editor struct {
	g       *graph.Graph
	ids     graph.IDGenerator
	cfg     config.Config
	logger  *log.Logger
	history []*graph.Graph
}

// New returns an editor on an empty graph named after cfg.Name.
// A nil logger discards output.
func New(cfg config.Config, logger *log.Logger) *Editor {
	return Open(graph.New(cfg.Name), cfg, logger)
}

// Open returns an editor on an existing graph. With counter IDs, numbering
// continues after the largest number already used in g.
func Open(g *graph.Graph, cfg config.Config, logger *log.Logger) *Editor {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Editor{
		g:      g,
		ids:    newIDs(cfg, g),
		cfg:    cfg,
		logger: logger,
	}
}

func newIDs(cfg config.Config, g *graph.Graph) graph.IDGenerator {
	if cfg.IDs == config.IDsUUID {
		return graph.UUIDs{}
	}
	return graph.NewCounter(MaxNumericID(g))
}

var numericSuffix = regexp.MustCompile(`^(?:in_|tex_|rt_)?(\d+)$`)

// MaxNumericID returns the largest counter value found in node IDs, port
// IDs and generated output names of g, or 0.
func MaxNumericID(g *graph.Graph) uint64 {
	var hi uint64
	see := func(s string) {
		m := numericSuffix.FindStringSubmatch(s)
		if m == nil {
			return
		}
		if n, err := strconv.ParseUint(m[1], 10, 64); err == nil && n > hi {
			hi = n
		}
	}
	for _, n := range g.Nodes() {
		see(n.ID)
		see(n.Output())
		if d, ok := n.Pass(); ok {
			for _, p := range d.InputPorts {
				see(p.ID)
			}
			for _, p := range d.TexturePorts {
				see(p.ID)
			}
		}
	}
	return hi
}

// Graph returns the current snapshot.
func (e *Editor) Graph() *graph.Graph { return e.g }

// Config returns the defaults the editor was created with.
func (e *Editor) Config() config.Config { return e.cfg }

// commit records the current snapshot for Undo and installs next.
func (e *Editor) commit(next *graph.Graph) {
	if next == e.g {
		return
	}
	e.history = append(e.history, e.g)
	if len(e.history) > MaxHistory {
		e.history = e.history[len(e.history)-MaxHistory:]
	}
	e.g = next
}

// Undo restores the previous snapshot. It reports false when there is none.
func (e *Editor) Undo() bool {
	if len(e.history) == 0 {
		return false
	}
	e.g = e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	e.logger.Debug("undo", "nodes", e.g.NodeCount(), "edges", e.g.EdgeCount())
	return true
}

// Compile compiles the current graph with the configured defaults.
func (e *Editor) Compile() (*pipeline.Config, error) {
	opts := e.cfg.PipelineOptions()
	opts.Logger = e.logger
	return pipeline.Compile(e.g, opts)
}

// Import replaces the graph with one built from cfg. On error the current
// graph is kept. Dropped bindings are logged as warnings.
func (e *Editor) Import(cfg *pipeline.Config) (*pipeline.Report, error) {
	g, report, err := pipeline.Build(cfg, e.ids)
	if err != nil {
		e.logger.Error("import failed, keeping current graph", "err", err)
		return nil, err
	}
	for _, d := range report.Dropped {
		e.logger.Warn("dropped unresolved input", "pass", d.Pass, "port", d.Port, "source", d.Source)
	}
	for _, id := range report.Detached {
		e.logger.Warn("pass lost its edge to the output", "node", id)
	}
	e.commit(g)
	e.logger.Info("imported pipeline", "name", g.Name(), "passes", report.Passes,
		"textures", report.Textures, "particles", report.Particles)
	return report, nil
}

// SetName renames the pipeline.
func (e *Editor) SetName(name string) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "pipeline name cannot be empty")
	}
	e.commit(e.g.SetName(name))
	return nil
}

// node returns the node with the given ID and checks its kind.
func (e *Editor) node(id string, kinds ...graph.Kind) (graph.Node, error) {
	n, ok := e.g.Node(id)
	if !ok {
		return graph.Node{}, errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id)
	}
	if len(kinds) == 0 {
		return n, nil
	}
	for _, k := range kinds {
		if n.Kind == k {
			return n, nil
		}
	}
	return graph.Node{}, errors.New(errors.ErrCodeInvalidInput, "node %q is a %s node, want %v", id, n.Kind, kinds)
}
