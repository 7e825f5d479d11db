package cli

import (
	"github.com/spf13/cobra"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/editor"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
)

// connectCommand creates the connect command for adding edges.
func (c *CLI) connectCommand() *cobra.Command {
	complete := c.completeArgs(false,
		nodeIDs(graph.KindInput, graph.KindPass, graph.KindTexture),
		nodeIDs(graph.KindPass, graph.KindOutput),
		connectPorts)

	return &cobra.Command{
		Use:   "connect <source> <target> [port]",
		Short: "Connect a node's output to a pass port or the screen output",
		Long: `Connect a node's output to a pass port or to the screen output.

The port is a port ID or binding name on the target pass. It may be omitted
when the target is the screen output (END_NODE), or when the target has a
single port of the kind the source needs: an input port for passes and the
screen input, a texture port for textures.

Connections that would create a cycle, put a texture into an input port, or
read from a particle are rejected. An existing edge on the same port is
replaced.`,
		Example: `  ppgraph connect START_NODE 1
  ppgraph connect 1 4 u_bloom
  ppgraph connect 4 END_NODE`,
		Args:              cobra.RangeArgs(2, 3),
		ValidArgsFunction: complete,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 3 {
				ref = args[2]
			}
			var conn graph.Connection
			err := c.edit(func(ed *editor.Editor) error {
				var err error
				conn, err = resolveConnection(ed.Graph(), args[0], args[1], ref)
				if err != nil {
					return err
				}
				return ed.Connect(conn)
			})
			if err != nil {
				return err
			}
			printSuccess("Connected %s %s %s", args[0], iconArrow, args[1])
			printDetail("edge %s", conn.EdgeID())
			return nil
		},
	}
}

// resolveConnection builds the connection source -> target, resolving ref to
// a port ID. Admissibility is left to the editor.
func resolveConnection(g *graph.Graph, source, target, ref string) (graph.Connection, error) {
	conn := graph.Connection{Source: source, SourceHandle: graph.OutputHandle, Target: target}
	if target == graph.OutputNodeID {
		return conn, nil
	}
	if ref != "" {
		id, err := findPort(g, target, ref)
		if err != nil {
			return conn, err
		}
		conn.TargetHandle = id
		return conn, nil
	}

	n, ok := g.Node(target)
	if !ok {
		return conn, errors.New(errors.ErrCodeNodeNotFound, "node %q not found", target)
	}
	d, _ := n.Pass()
	ports := d.InputPorts
	if src, ok := g.Node(source); ok && src.Kind == graph.KindTexture {
		ports = d.TexturePorts
	}
	if len(ports) != 1 {
		return conn, errors.New(errors.ErrCodePortNotFound, "node %q has %d candidate ports, name one", target, len(ports))
	}
	conn.TargetHandle = ports[0].ID
	return conn, nil
}

// disconnectCommand creates the disconnect command for removing edges.
func (c *CLI) disconnectCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "disconnect <edge>...",
		Short:             "Remove edges by ID",
		Long:              `Remove edges by ID. Edge IDs are shown by 'node ls'.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: c.completeArgs(true, edgeIDs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n int
			err := c.edit(func(ed *editor.Editor) error {
				n = ed.Disconnect(args...)
				return nil
			})
			if err != nil {
				return err
			}
			if n == 0 {
				printWarning("No matching edges")
				return nil
			}
			printSuccess("Removed %d edge(s)", n)
			return nil
		},
	}
}
