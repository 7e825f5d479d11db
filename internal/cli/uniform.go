package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/editor"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
)

// uniformCommand creates the uniform command group.
func (c *CLI) uniformCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uniform",
		Short: "Edit the shader uniforms of a pass",
		Long: `Edit the shader uniforms of a pass.

A uniform is a float or a vec2, vec3 or vec4. Its type follows the number
of values given to 'uniform set'.`,
	}

	cmd.AddCommand(c.uniformSetCommand())
	cmd.AddCommand(c.uniformRemoveCommand())
	cmd.AddCommand(c.uniformRenameCommand())
	cmd.AddCommand(c.uniformRetypeCommand())

	return cmd
}

func (c *CLI) uniformSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <pass> <key> <value>...",
		Short: "Add or replace a uniform",
		Example: `  ppgraph uniform set 1 u_strength 0.8
  ppgraph uniform set 1 u_tint 1 0.5 0.5`,
		Args:              cobra.RangeArgs(3, 6),
		ValidArgsFunction: c.completeArgs(false, nodeIDs(graph.KindPass), uniformKeys(0)),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parseUniform(args[2:])
			if err != nil {
				return err
			}
			err = c.edit(func(ed *editor.Editor) error {
				return ed.SetUniform(args[0], args[1], u)
			})
			if err != nil {
				return err
			}
			printSuccess("%s %s = %s", u.Type(), StyleHighlight.Render(args[1]), u)
			return nil
		},
	}
}

// parseUniform converts one to four numbers into a uniform.
func parseUniform(args []string) (graph.Uniform, error) {
	vals := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return graph.Uniform{}, errors.Wrap(errors.ErrCodeInvalidUniform, err, "value %q is not a number", a)
		}
		vals[i] = v
	}
	if len(vals) == 1 {
		return graph.Float(vals[0]), nil
	}
	return graph.Vec(vals...)
}

func (c *CLI) uniformRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "rm <pass> <key>",
		Aliases:           []string{"remove"},
		Short:             "Remove a uniform",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: c.completeArgs(false, nodeIDs(graph.KindPass), uniformKeys(0)),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.edit(func(ed *editor.Editor) error {
				return ed.RemoveUniform(args[0], args[1])
			})
			if err != nil {
				return err
			}
			printSuccess("Removed uniform %s", args[1])
			return nil
		},
	}
}

func (c *CLI) uniformRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "rename <pass> <key> <new-key>",
		Short:             "Rename a uniform, keeping its value",
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: c.completeArgs(false, nodeIDs(graph.KindPass), uniformKeys(0)),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.edit(func(ed *editor.Editor) error {
				return ed.RenameUniform(args[0], args[1], args[2])
			})
			if err != nil {
				return err
			}
			printSuccess("Renamed uniform %s to %s", args[1], StyleHighlight.Render(args[2]))
			return nil
		},
	}
}

func (c *CLI) uniformRetypeCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "retype <pass> <key> <float|vec2|vec3|vec4>",
		Short:             "Change a uniform's type, resetting it to zero",
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: c.completeArgs(false, nodeIDs(graph.KindPass), uniformKeys(0), fixed("float", "vec2", "vec3", "vec4")),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := graph.ParseUniformType(args[2])
			if err != nil {
				return err
			}
			err = c.edit(func(ed *editor.Editor) error {
				return ed.RetypeUniform(args[0], args[1], t)
			})
			if err != nil {
				return err
			}
			printSuccess("%s %s = %s", t, StyleHighlight.Render(args[1]), graph.Zero(t))
			return nil
		},
	}
}
