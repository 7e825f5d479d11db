package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/editor"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
)

// nodeCommand creates the node command group.
func (c *CLI) nodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Add, remove, update and list nodes",
	}

	cmd.AddCommand(c.nodeAddCommand())
	cmd.AddCommand(c.nodeRemoveCommand())
	cmd.AddCommand(c.nodeSetCommand())
	cmd.AddCommand(c.nodeListCommand())

	return cmd
}

// =============================================================================
// node add
// =============================================================================

func (c *CLI) nodeAddCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "add <pass|texture|particle>",
		Short: "Add a node",
		Long: `Add a node and print its ID.

A pass gets one input port and a fresh render target output. A texture
reads the file given by --path (default from config). A particle stands in
for a render target produced outside the post-process chain.`,
		ValidArgs: []string{"pass", "texture", "particle"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := graph.ParseKind(args[0])
			if err != nil {
				return err
			}

			var id string
			err = c.edit(func(ed *editor.Editor) error {
				id, err = addNode(ed, kind, path)
				return err
			})
			if err != nil {
				return err
			}
			printSuccess("Added %s %s", kind, StyleHighlight.Render(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "texture file path")

	return cmd
}

func addNode(ed *editor.Editor, kind graph.Kind, path string) (string, error) {
	switch kind {
	case graph.KindPass:
		return ed.AddPass(), nil
	case graph.KindTexture:
		return ed.AddTexture(path)
	case graph.KindParticle:
		return ed.AddParticle(), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "cannot add %s nodes", kind)
}

// =============================================================================
// node rm
// =============================================================================

func (c *CLI) nodeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"remove"},
		Short:   "Remove nodes and their edges",
		Long: `Remove nodes and every edge touching them.

The screen input and output cannot be removed and are skipped.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeArgs(true, editableNodes),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed []string
			err := c.edit(func(ed *editor.Editor) error {
				removed = ed.RemoveNodes(args...)
				return nil
			})
			if err != nil {
				return err
			}
			if len(removed) == 0 {
				printWarning("Nothing removed")
				return nil
			}
			printSuccess("Removed %s", strings.Join(removed, ", "))
			return nil
		},
	}
}

// =============================================================================
// node set
// =============================================================================

// nodeFlags holds the values of node set. Only flags the user changed are
// applied.
type nodeFlags struct {
	name, vs, fs, output, path string
	themeColor                 string
	baseColor                  []float64
	clearBaseColor             bool
	x, y                       float64
}

func (c *CLI) nodeSetCommand() *cobra.Command {
	var f nodeFlags

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Update node properties",
		Long: `Update node properties.

Passes accept --name, --vs, --fs, --output, --base-color and --theme-color.
Textures accept --name, --path and --theme-color. Particles accept --name,
--output and --theme-color. Any node can be moved with --x and --y.

Output names must be unique among passes and particles and cannot be
inScreen or outScreen.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeArgs(false, editableNodes),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.edit(func(ed *editor.Editor) error {
				return setNode(ed, args[0], cmd, f)
			})
			if err != nil {
				return err
			}
			printSuccess("Updated %s", StyleHighlight.Render(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.name, "name", "", "display name")
	cmd.Flags().StringVar(&f.vs, "vs", "", "vertex shader path")
	cmd.Flags().StringVar(&f.fs, "fs", "", "fragment shader path")
	cmd.Flags().StringVar(&f.output, "output", "", "output resource name")
	cmd.Flags().StringVar(&f.path, "path", "", "texture file path")
	cmd.Flags().StringVar(&f.themeColor, "theme-color", "", "editor color, e.g. #8e44ad")
	cmd.Flags().Float64SliceVar(&f.baseColor, "base-color", nil, "clear color as r,g,b,a")
	cmd.Flags().BoolVar(&f.clearBaseColor, "clear-base-color", false, "remove the clear color")
	cmd.Flags().Float64Var(&f.x, "x", 0, "canvas x position")
	cmd.Flags().Float64Var(&f.y, "y", 0, "canvas y position")
	cmd.MarkFlagsMutuallyExclusive("base-color", "clear-base-color")

	return cmd
}

// setNode applies the changed flags of cmd to node id.
func setNode(ed *editor.Editor, id string, cmd *cobra.Command, f nodeFlags) error {
	n, ok := ed.Graph().Node(id)
	if !ok {
		return errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id)
	}
	changed := cmd.Flags().Changed
	str := func(flag, v string) *string {
		if changed(flag) {
			return graph.Ptr(v)
		}
		return nil
	}

	var err error
	switch n.Kind {
	case graph.KindPass:
		p := graph.PassPatch{
			Name:           str("name", f.name),
			VS:             str("vs", f.vs),
			FS:             str("fs", f.fs),
			Output:         str("output", f.output),
			ThemeColor:     str("theme-color", f.themeColor),
			ClearBaseColor: f.clearBaseColor,
		}
		if changed("base-color") {
			if len(f.baseColor) != 4 {
				return errors.New(errors.ErrCodeInvalidInput, "base color needs 4 components, got %d", len(f.baseColor))
			}
			p.BaseColor = (*[4]float64)(f.baseColor)
		}
		err = ed.UpdatePass(id, p)
	case graph.KindTexture:
		err = ed.UpdateTexture(id, graph.TexturePatch{
			Name:       str("name", f.name),
			Path:       str("path", f.path),
			ThemeColor: str("theme-color", f.themeColor),
		})
	case graph.KindParticle:
		err = ed.UpdateParticle(id, graph.ParticlePatch{
			Name:       str("name", f.name),
			Output:     str("output", f.output),
			ThemeColor: str("theme-color", f.themeColor),
		})
	default:
		if changed("name") || changed("vs") || changed("fs") || changed("output") ||
			changed("path") || changed("theme-color") || changed("base-color") || changed("clear-base-color") {
			return errors.New(errors.ErrCodeStaticNode, "%s node %q has no editable properties", n.Kind, id)
		}
	}
	if err != nil {
		return err
	}

	if changed("x") || changed("y") {
		pos := n.Position
		if changed("x") {
			pos.X = f.x
		}
		if changed("y") {
			pos.Y = f.y
		}
		return ed.MoveNode(id, pos)
	}
	return nil
}

// =============================================================================
// node ls
// =============================================================================

func (c *CLI) nodeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List nodes and edges",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := c.openEditor()
			if err != nil {
				return err
			}
			g := ed.Graph()

			fmt.Println(StyleTitle.Render(g.Name()))
			printStats(len(g.NodesOfKind(graph.KindPass)), g.NodeCount(), g.EdgeCount())
			printNewline()
			fmt.Println(nodeTable(g))
			if g.EdgeCount() > 0 {
				printNewline()
				fmt.Println(edgeTable(g))
			}
			return nil
		},
	}
}

var tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
}

// nodeTable renders one row per node in insertion order.
func nodeTable(g *graph.Graph) string {
	t := newTable("ID", "Kind", "Name", "Output", "Ports", "Uniforms")
	for _, n := range g.Nodes() {
		ports, uniforms := "—", "—"
		if d, ok := n.Pass(); ok && n.Kind == graph.KindPass {
			ports = formatPorts(d)
			uniforms = formatUniforms(d.Uniforms)
		}
		t.Row(n.ID, n.Kind.String(), orDash(n.Name()), orDash(g.EffectiveOutput(n)), ports, uniforms)
	}
	return t.Render()
}

// edgeTable renders one row per edge.
func edgeTable(g *graph.Graph) string {
	t := newTable("Edge", "From", "To", "Port")
	for _, e := range g.Edges() {
		t.Row(e.ID, e.Source, e.Target, orDash(portName(g, e)))
	}
	return t.Render()
}

func formatPorts(d graph.PassData) string {
	var parts []string
	for _, p := range d.InputPorts {
		parts = append(parts, p.ID+"="+p.Name)
	}
	for _, p := range d.TexturePorts {
		parts = append(parts, p.ID+"="+p.Name+" (tex)")
	}
	return orDash(strings.Join(parts, "\n"))
}

func formatUniforms(us map[string]graph.Uniform) string {
	var parts []string
	for _, k := range slices.Sorted(maps.Keys(us)) {
		parts = append(parts, fmt.Sprintf("%s %s = %s", us[k].Type(), k, us[k]))
	}
	return orDash(strings.Join(parts, "\n"))
}

// portName returns the binding name of the port an edge enters.
func portName(g *graph.Graph, e graph.Edge) string {
	n, ok := g.Node(e.Target)
	if !ok {
		return ""
	}
	d, ok := n.Pass()
	if !ok {
		return ""
	}
	if p, ok := d.InputPort(e.TargetHandle); ok {
		return p.Name
	}
	if p, ok := d.TexturePort(e.TargetHandle); ok {
		return p.Name
	}
	return ""
}
