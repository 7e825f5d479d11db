package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/cache"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
	ppio "github.com/IQ-Director/Neural-Wings-demo/pkg/io"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/render/nodelink"
)

// Output formats of the visualize command.
const (
	formatSVG = "svg"
	formatDOT = "dot"
)

// visualizeCommand creates the visualize command for drawing the node graph.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		format  string
		output  string
		noCache bool
		opts    nodelink.Options
	)

	cmd := &cobra.Command{
		Use:   "visualize",
		Short: "Draw the node graph as SVG or DOT",
		Long: `Draw the node graph as SVG or Graphviz DOT.

Nodes are laid out left to right in execution order. Passes use their theme
color, textures are blue notes and particles are dashed. The edge into the
screen output is red.

The file is named after the pipeline unless -o is given; use -o - to write
to stdout. Rendered SVGs are cached under $XDG_CACHE_HOME/ppgraph.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != formatSVG && format != formatDOT {
				return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want svg or dot)", format)
			}
			return c.runVisualize(cmd.Context(), format, output, noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>.<format>)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show ports, uniforms and shaders")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// runVisualize loads the project and renders it.
func (c *CLI) runVisualize(ctx context.Context, format, output string, noCache bool, opts nodelink.Options) error {
	ed, err := c.openEditor()
	if err != nil {
		return err
	}
	g := ed.Graph()
	logger := loggerFromContext(ctx)

	store := c.newCache(noCache)
	defer store.Close()

	prog := newProgress(logger)
	sp := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", format))
	sp.Start()
	data, cached, err := drawGraph(ctx, store, g, format, opts)
	sp.Stop()
	if err != nil {
		printError("Visualization failed")
		return err
	}

	if output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if output == "" {
		output = strings.TrimSuffix(ppio.ExportFileName(g.Name()), ".json") + "." + format
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	prog.done("Rendered " + output)

	printSuccess("Visualized %s", StyleHighlight.Render(g.Name()))
	printStats(len(g.NodesOfKind(graph.KindPass)), g.NodeCount(), g.EdgeCount())
	if cached {
		printDetail("cached render")
	}
	printFile(output)
	return nil
}

// drawGraph renders g in the given format. SVG output is looked up in and
// written to store, keyed by the DOT source.
func drawGraph(ctx context.Context, store cache.Cache, g *graph.Graph, format string, opts nodelink.Options) ([]byte, bool, error) {
	dot := nodelink.ToDOT(g, opts)
	if format == formatDOT {
		return []byte(dot), false, nil
	}

	logger := loggerFromContext(ctx)
	key := cache.Key(formatSVG, dot)
	if svg, ok, err := store.Get(ctx, key); err != nil {
		logger.Warn("render cache read failed", "err", err)
	} else if ok {
		logger.Debug("render cache hit", "key", key)
		return svg, true, nil
	}

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, fmt.Errorf("render svg: %w", err)
	}
	if err := store.Set(ctx, key, svg); err != nil {
		logger.Warn("render cache write failed", "err", err)
	}
	return svg, false, nil
}
