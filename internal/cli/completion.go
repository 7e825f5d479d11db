package cli

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
	ppio "github.com/IQ-Director/Neural-Wings-demo/pkg/io"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for ppgraph.

Besides commands and flags, the scripts complete node IDs, port names,
uniform keys and edge IDs from the project file given by --project.

  $ source <(ppgraph completion bash)
  $ ppgraph completion zsh > "${fpath[1]}/_ppgraph"
  $ ppgraph completion fish | source
  PS> ppgraph completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// =============================================================================
// Argument completion
// =============================================================================

// argCompleter lists candidates for one positional argument. args holds the
// arguments already typed. Candidates may carry a tab-separated description.
type argCompleter func(g *graph.Graph, args []string) []string

type completeFunc func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// completeArgs completes positional argument i with fns[i]. With repeat set
// the last completer serves every further argument and skips values already
// given. The project is read quietly; when it cannot be read nothing is
// suggested.
func (c *CLI) completeArgs(repeat bool, fns ...argCompleter) completeFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		i := len(args)
		if i >= len(fns) {
			if !repeat {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			i = len(fns) - 1
		}
		g, err := ppio.LoadProject(c.projectPath)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var out []string
		for _, s := range fns[i](g, args) {
			value, _, _ := strings.Cut(s, "\t")
			if !strings.HasPrefix(value, toComplete) || (repeat && slices.Contains(args, value)) {
				continue
			}
			out = append(out, s)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// nodeIDs completes the IDs of nodes of the given kinds.
func nodeIDs(kinds ...graph.Kind) argCompleter {
	return func(g *graph.Graph, _ []string) []string {
		var out []string
		for _, n := range g.Nodes() {
			if slices.Contains(kinds, n.Kind) {
				out = append(out, fmt.Sprintf("%s\t%s %s", n.ID, n.Kind, n.Name()))
			}
		}
		return out
	}
}

// editableNodes completes every node that is not a sentinel.
var editableNodes = nodeIDs(graph.KindPass, graph.KindTexture, graph.KindParticle)

// passPorts completes the port names of the pass named by args[pos].
func passPorts(pos int) argCompleter {
	return func(g *graph.Graph, args []string) []string {
		d, ok := passAt(g, args, pos)
		if !ok {
			return nil
		}
		return append(portNames(d.InputPorts, "input"), portNames(d.TexturePorts, "texture")...)
	}
}

// connectPorts completes the ports of the target (args[1]) that the source
// (args[0]) may bind to: texture ports for a texture, input ports otherwise.
func connectPorts(g *graph.Graph, args []string) []string {
	d, ok := passAt(g, args, 1)
	if !ok {
		return nil
	}
	if src, ok := g.Node(args[0]); ok && src.Kind == graph.KindTexture {
		return portNames(d.TexturePorts, "texture")
	}
	return portNames(d.InputPorts, "input")
}

func portNames(ports []graph.Port, kind string) []string {
	out := make([]string, 0, len(ports))
	for _, p := range ports {
		out = append(out, fmt.Sprintf("%s\t%s port %s", p.Name, kind, p.ID))
	}
	return out
}

// uniformKeys completes the uniform keys of the pass named by args[pos].
func uniformKeys(pos int) argCompleter {
	return func(g *graph.Graph, args []string) []string {
		d, ok := passAt(g, args, pos)
		if !ok {
			return nil
		}
		var out []string
		for _, key := range slices.Sorted(maps.Keys(d.Uniforms)) {
			u := d.Uniforms[key]
			out = append(out, fmt.Sprintf("%s\t%s %s", key, u.Type(), u))
		}
		return out
	}
}

// edgeIDs completes edge IDs.
func edgeIDs(g *graph.Graph, _ []string) []string {
	out := make([]string, 0, g.EdgeCount())
	for _, e := range g.Edges() {
		out = append(out, fmt.Sprintf("%s\t%s → %s", e.ID, e.Source, e.Target))
	}
	return out
}

// fixed completes a constant list.
func fixed(values ...string) argCompleter {
	return func(*graph.Graph, []string) []string { return values }
}

func passAt(g *graph.Graph, args []string, pos int) (graph.PassData, bool) {
	if pos >= len(args) {
		return graph.PassData{}, false
	}
	n, ok := g.Node(args[pos])
	if !ok || n.Kind != graph.KindPass {
		return graph.PassData{}, false
	}
	return n.Pass()
}
