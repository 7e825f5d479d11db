// Package config loads editor defaults from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/ppgraph/config.toml (falling back to
// ~/.config/ppgraph/config.toml) unless a path is given explicitly:
//
//	name            = "后处理蓝图"
//	hint            = "拓扑序"
//	vertex_shader   = "assets/shaders/postprocess/default.vs"
//	fragment_shader = "assets/shaders/postprocess/default.fs"
//	texture_path    = "assets/textures/test.png"
//	ids             = "counter" # or "uuid"
//	strict          = false
//
// Missing keys keep their defaults and a missing file yields [Default].
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/pipeline"
)

// AppName names the configuration directory.
const AppName = "ppgraph"

// ID generator choices.
const (
	IDsCounter = "counter"
	IDsUUID    = "uuid"
)

// Config holds the editor defaults.
type Config struct {
	Name           string `toml:"name"`
	Hint           string `toml:"hint"`
	VertexShader   string `toml:"vertex_shader"`
	FragmentShader string `toml:"fragment_shader"`
	TexturePath    string `toml:"texture_path"`
	IDs            string `toml:"ids"`
	Strict         bool   `toml:"strict"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Name:           graph.DefaultName,
		Hint:           pipeline.DefaultHint,
		VertexShader:   pipeline.DefaultVS,
		FragmentShader: pipeline.DefaultFS,
		TexturePath:    graph.DefaultTexturePath,
		IDs:            IDsCounter,
	}
}

// Path returns the default location of the config file.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads the file at path on top of [Default]. A missing file is not an
// error. The returned keys are those present in the file but unknown to
// Config, so callers can warn about typos.
func Load(path string) (Config, []string, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if stderrors.Is(err, fs.ErrNotExist) {
		return Default(), nil, nil
	}
	if err != nil {
		return Config{}, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, unknown, err
	}
	return cfg, unknown, nil
}

// Validate checks the ID generator choice and the asset paths.
func (c Config) Validate() error {
	if c.IDs != IDsCounter && c.IDs != IDsUUID {
		return errors.New(errors.ErrCodeInvalidInput, "ids must be %q or %q, got %q", IDsCounter, IDsUUID, c.IDs)
	}
	for _, p := range []string{c.VertexShader, c.FragmentShader, c.TexturePath} {
		if err := errors.ValidateAssetPath(p); err != nil {
			return err
		}
	}
	return nil
}

// PipelineOptions returns the compile options implied by the config.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		VS:     c.VertexShader,
		FS:     c.FragmentShader,
		Hint:   c.Hint,
		Strict: c.Strict,
	}
}
