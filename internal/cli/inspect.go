package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	ppio "github.com/IQ-Director/Neural-Wings-demo/pkg/io"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/pipeline"
)

// inspectCommand creates the inspect command for browsing compiled passes.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [pipeline.json]",
		Short: "Browse the passes of a compiled pipeline",
		Long: `Browse the passes of a compiled pipeline in execution order.

Without an argument the project is compiled first. With an argument the
given pipeline JSON is read instead. Use --plain to print a table instead
of starting the interactive viewer.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runInspect(cmd.Context(), input, plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of the interactive viewer")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, plain bool) error {
	cfg, err := c.loadPipeline(input)
	if err != nil {
		return err
	}
	pp := cfg.PostProcess

	if plain {
		fmt.Println(StyleTitle.Render(pp.Name))
		printKeyValue("hint", pp.Hint)
		printKeyValue("passes", fmt.Sprint(len(pp.Graph)))
		printKeyValue("rtPool", fmt.Sprint(pp.RTPool))
		if len(pp.Graph) > 0 {
			printNewline()
			fmt.Println(passTable(pp.Graph, 0, -1))
		}
		return nil
	}

	_, err = tea.NewProgram(NewPassListModel(pp), tea.WithContext(ctx)).Run()
	return err
}

// loadPipeline reads pipeline JSON from input, or compiles the project when
// input is empty.
func (c *CLI) loadPipeline(input string) (*pipeline.Config, error) {
	if input != "" {
		return ppio.ImportJSON(input)
	}
	ed, err := c.openEditor()
	if err != nil {
		return nil, err
	}
	return ed.Compile()
}
