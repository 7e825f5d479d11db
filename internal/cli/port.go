package cli

import (
	"github.com/spf13/cobra"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/editor"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
)

// portCommand creates the port command group.
func (c *CLI) portCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "port",
		Short: "Manage the input and texture ports of a pass",
		Long: `Manage the input and texture ports of a pass.

Ports are addressed by ID (shown by 'node ls') or by binding name. Input
ports receive render targets; texture ports receive texture files.`,
	}

	cmd.AddCommand(c.portAddCommand())
	cmd.AddCommand(c.portRemoveCommand())
	cmd.AddCommand(c.portRenameCommand())

	return cmd
}

func (c *CLI) portAddCommand() *cobra.Command {
	var (
		name    string
		texture bool
	)

	cmd := &cobra.Command{
		Use:               "add <pass>",
		Short:             "Add a port to a pass",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeArgs(false, nodeIDs(graph.KindPass)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			err := c.edit(func(ed *editor.Editor) error {
				var err error
				if texture {
					id, err = ed.AddTexturePort(args[0], name)
				} else {
					id, err = ed.AddInputPort(args[0], name)
				}
				return err
			})
			if err != nil {
				return err
			}
			printSuccess("Added port %s to %s", StyleHighlight.Render(id), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "binding name (default u_tex<N>, or u_map<N> for textures)")
	cmd.Flags().BoolVarP(&texture, "texture", "t", false, "add a texture port")

	return cmd
}

func (c *CLI) portRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "rm <pass> <port>",
		Aliases:           []string{"remove"},
		Short:             "Remove a port and its edge",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeArgs(false, nodeIDs(graph.KindPass), passPorts(0)),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.edit(func(ed *editor.Editor) error {
				id, err := findPort(ed.Graph(), args[0], args[1])
				if err != nil {
					return err
				}
				return ed.RemovePort(args[0], id)
			})
			if err != nil {
				return err
			}
			printSuccess("Removed port %s from %s", args[1], args[0])
			return nil
		},
	}
}

func (c *CLI) portRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "rename <pass> <port> <name>",
		Short:             "Change the binding name of a port",
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: c.completeArgs(false, nodeIDs(graph.KindPass), passPorts(0)),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.edit(func(ed *editor.Editor) error {
				id, err := findPort(ed.Graph(), args[0], args[1])
				if err != nil {
					return err
				}
				return ed.RenamePort(args[0], id, args[2])
			})
			if err != nil {
				return err
			}
			printSuccess("Renamed port %s to %s", args[1], StyleHighlight.Render(args[2]))
			return nil
		},
	}
}

// findPort resolves ref, a port ID or binding name, on pass id. IDs win
// over names.
func findPort(g *graph.Graph, id, ref string) (string, error) {
	n, ok := g.Node(id)
	if !ok {
		return "", errors.New(errors.ErrCodeNodeNotFound, "node %q not found", id)
	}
	d, ok := n.Pass()
	if !ok || n.Kind != graph.KindPass {
		return "", errors.New(errors.ErrCodeInvalidInput, "node %q is a %s node, not a pass", id, n.Kind)
	}
	ports := append(append([]graph.Port{}, d.InputPorts...), d.TexturePorts...)
	for _, p := range ports {
		if p.ID == ref {
			return p.ID, nil
		}
	}
	for _, p := range ports {
		if p.Name == ref {
			return p.ID, nil
		}
	}
	return "", errors.New(errors.ErrCodePortNotFound, "node %q has no port %q", id, ref)
}
