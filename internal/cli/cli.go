// Package cli implements the ppgraph command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/buildinfo"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/cache"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/config"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/editor"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
	ppio "github.com/IQ-Director/Neural-Wings-demo/pkg/io"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = config.AppName

	// defaultProject is the project file used when --project is not given.
	defaultProject = "ppgraph.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath  string
	projectPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:      newLogger(w, level),
		projectPath: defaultProject,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ppgraph edits post-process pipelines as node graphs",
		Long: `ppgraph edits a post-process rendering pipeline as a graph of shader
passes, textures and particle render targets, and compiles it to the
pipeline JSON consumed by the engine.

The graph is kept in a project file (ppgraph.json by default). Each command
loads the project, applies one edit and saves it back.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ppgraph/config.toml)")
	root.PersistentFlags().StringVarP(&c.projectPath, "project", "p", defaultProject, "project file")

	// Register all subcommands
	root.AddCommand(c.initCommand())
	root.AddCommand(c.renameCommand())
	root.AddCommand(c.nodeCommand())
	root.AddCommand(c.portCommand())
	root.AddCommand(c.uniformCommand())
	root.AddCommand(c.connectCommand())
	root.AddCommand(c.disconnectCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Project Helpers
// =============================================================================

// loadConfig reads the config file named by --config or the default location.
// Unknown keys are logged as warnings.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			c.Logger.Debug("no config directory, using defaults", "err", err)
			return config.Default(), nil
		}
		path = p
	}

	cfg, unknown, err := config.Load(path)
	for _, key := range unknown {
		c.Logger.Warn("unknown config key", "key", key, "file", path)
	}
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("config loaded", "file", path, "ids", cfg.IDs, "strict", cfg.Strict)
	return cfg, nil
}

// openEditor loads the project file into an editor.
func (c *CLI) openEditor() (*editor.Editor, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	g, err := ppio.LoadProject(c.projectPath)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err,
			"no project at %s, run '%s init' first", c.projectPath, appName)
	}
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("project loaded", "file", c.projectPath, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return editor.Open(g, cfg, c.Logger), nil
}

// save writes the editor's graph back to the project file.
func (c *CLI) save(ed *editor.Editor) error {
	g := ed.Graph()
	if err := ppio.SaveProject(g, c.projectPath); err != nil {
		return err
	}
	c.Logger.Debug("project saved", "file", c.projectPath, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return nil
}

// edit opens the project, applies fn and saves the result.
func (c *CLI) edit(fn func(ed *editor.Editor) error) error {
	ed, err := c.openEditor()
	if err != nil {
		return err
	}
	if err := fn(ed); err != nil {
		return err
	}
	return c.save(ed)
}

// =============================================================================
// Render Cache
// =============================================================================

// newCache opens the render cache, falling back to a null cache when
// caching is disabled or the directory is unusable.
func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir, cache.DefaultTTL)
	if err != nil {
		c.Logger.Warn("render cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using XDG standard (~/.cache/ppgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
