package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
)

// Edge colors, matching the editor canvas.
const (
	colorRT      = "#999999"
	colorTexture = "#3a8ee6"
	colorOutput  = "#e84855"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds ports, uniforms and shader paths to pass labels and
	// port names to edges. When false, only names and outputs are shown.
	Detailed bool
}

// ToDOT converts a pipeline graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Passes are rounded boxes, the sentinels are double octagons, textures are
// notes and particles are dashed ellipses. Edges into texture ports are
// blue and the edge into the Output sentinel is red.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n", g.Name())
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := fmtAttrs(n, fmtLabel(g, n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := edgeAttrs(g, e, opts.Detailed)
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *graph.Graph, n graph.Node, detailed bool) string {
	switch d := n.Data.(type) {
	case graph.TextureData:
		return d.Name + "\n" + d.Path
	case graph.ParticleData:
		return d.Name + "\n" + d.Output
	case graph.PassData:
		if n.Kind != graph.KindPass {
			return d.Name + "\n" + d.Output
		}
		lines := []string{d.Name, "→ " + g.EffectiveOutput(n)}
		if !detailed {
			return strings.Join(lines, "\n")
		}
		for _, p := range d.InputPorts {
			lines = append(lines, "in: "+p.Name)
		}
		for _, p := range d.TexturePorts {
			lines = append(lines, "tex: "+p.Name)
		}
		for _, k := range slices.Sorted(maps.Keys(d.Uniforms)) {
			lines = append(lines, fmt.Sprintf("%s = %s", k, d.Uniforms[k]))
		}
		if d.FS != "" {
			lines = append(lines, "fs: "+d.FS)
		}
		return strings.Join(lines, "\n")
	}
	return n.ID
}

func fmtAttrs(n graph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Kind {
	case graph.KindInput, graph.KindOutput:
		attrs = append(attrs, "shape=doubleoctagon", "fillcolor=\"#f0f0f0\"")
	case graph.KindTexture:
		attrs = append(attrs, "shape=note")
	case graph.KindParticle:
		attrs = append(attrs, "shape=ellipse", "style=\"filled,dashed\"")
	}
	if c := themeColor(n); c != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", c), "penwidth=2")
	}
	return attrs
}

func themeColor(n graph.Node) string {
	switch d := n.Data.(type) {
	case graph.PassData:
		return d.ThemeColor
	case graph.TextureData:
		return d.ThemeColor
	case graph.ParticleData:
		return d.ThemeColor
	}
	return ""
}

func edgeAttrs(g *graph.Graph, e graph.Edge, detailed bool) []string {
	color := colorRT
	var port string
	if dst, ok := g.Node(e.Target); ok {
		if e.Target == graph.OutputNodeID {
			color = colorOutput
		} else if d, ok := dst.Pass(); ok {
			if p, ok := d.TexturePort(e.TargetHandle); ok {
				color, port = colorTexture, p.Name
			} else if p, ok := d.InputPort(e.TargetHandle); ok {
				port = p.Name
			}
		}
	}
	attrs := []string{fmt.Sprintf("color=%q", color)}
	if detailed && port != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", port))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the drawing scales from the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
