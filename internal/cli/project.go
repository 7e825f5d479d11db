package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/editor"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
	ppio "github.com/IQ-Director/Neural-Wings-demo/pkg/io"
)

// initCommand creates the init command for starting a new project.
func (c *CLI) initCommand() *cobra.Command {
	var (
		name  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty project",
		Long: `Create an empty project containing only the screen input and output.

The pipeline name defaults to the configured name. An existing project is
not overwritten unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInit(name, force)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "pipeline name (default from config)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing project")

	return cmd
}

func (c *CLI) runInit(name string, force bool) error {
	if _, err := os.Stat(c.projectPath); err == nil && !force {
		return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", c.projectPath)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if name != "" {
		cfg.Name = name
	}

	ed := editor.New(cfg, c.Logger)
	if err := c.save(ed); err != nil {
		return err
	}

	printSuccess("Created %s", StyleHighlight.Render(ed.Graph().Name()))
	printFile(c.projectPath)
	printNewline()
	printNextStep("Add a pass", appName+" node add pass")
	return nil
}

// renameCommand creates the rename command for changing the pipeline name.
func (c *CLI) renameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name>",
		Short: "Rename the pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := c.edit(func(ed *editor.Editor) error {
				return ed.SetName(args[0])
			})
			if err != nil {
				return err
			}
			printSuccess("Renamed pipeline to %s", StyleHighlight.Render(args[0]))
			return nil
		},
	}
}

// exportCommand creates the export command for writing pipeline JSON.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Compile the project to pipeline JSON",
		Long: `Compile the project to the pipeline JSON consumed by the engine.

Passes are written in topological order. Passes feeding the screen output
write to outScreen. The file is named after the pipeline unless -o is given;
use -o - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>.json)")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, output string) error {
	ed, err := c.openEditor()
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	cfg, err := ed.Compile()
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	if output == "-" {
		return ppio.WriteJSON(cfg, os.Stdout)
	}
	if output == "" {
		output = ppio.ExportFileName(cfg.PostProcess.Name)
	}
	if err := ppio.ExportJSON(cfg, output); err != nil {
		return err
	}
	prog.done("Exported " + output)

	g := ed.Graph()
	printSuccess("Exported %s", StyleHighlight.Render(cfg.PostProcess.Name))
	printStats(len(cfg.PostProcess.Graph), g.NodeCount(), g.EdgeCount())
	printFile(output)
	return nil
}

// importCommand creates the import command for loading pipeline JSON.
func (c *CLI) importCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <pipeline.json>",
		Short: "Replace the project with a graph built from pipeline JSON",
		Long: `Replace the project with a graph built from pipeline JSON.

Resources written by no pass become particle nodes, texture bindings become
texture nodes, and passes are connected by the resources they read. Inputs
naming resources that no pass produces are dropped with a warning. The
layout is regenerated from the topological order.

An existing project is replaced only with --force.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing project")

	return cmd
}

func (c *CLI) runImport(input string, force bool) error {
	if _, err := os.Stat(c.projectPath); err == nil && !force {
		return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to replace it)", c.projectPath)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	pipe, err := ppio.ImportJSON(input)
	if err != nil {
		return err
	}

	ed := editor.Open(graph.New(cfg.Name), cfg, c.Logger)
	report, err := ed.Import(pipe)
	if err != nil {
		return err
	}
	if err := c.save(ed); err != nil {
		return err
	}

	g := ed.Graph()
	printSuccess("Imported %s", StyleHighlight.Render(g.Name()))
	printStats(report.Passes, g.NodeCount(), g.EdgeCount())
	for _, d := range report.Dropped {
		printWarning("%s: input %s reads unknown resource %s", d.Pass, d.Port, d.Source)
	}
	for _, id := range report.Detached {
		printWarning("pass %s no longer feeds the screen output", id)
	}
	printFile(c.projectPath)
	return nil
}
