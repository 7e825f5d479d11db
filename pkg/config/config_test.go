package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, unknown, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file should give defaults (-want +got):\n%s", diff)
	}
	if len(unknown) != 0 {
		t.Errorf("unknown = %v", unknown)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
name = "bloom"
fragment_shader = "shaders/bloom.fs"
ids = "uuid"
strict = true
colour = "blue"
`)
	cfg, unknown, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Default()
	want.Name = "bloom"
	want.FragmentShader = "shaders/bloom.fs"
	want.IDs = IDsUUID
	want.Strict = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"colour"}, unknown); diff != "" {
		t.Errorf("unknown keys mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", `name = `, errors.ErrCodeInvalidInput},
		{"ids", `ids = "random"`, errors.ErrCodeInvalidInput},
		{"absolute shader", `vertex_shader = "/etc/shader.vs"`, errors.ErrCodeInvalidPath},
		{"empty texture", `texture_path = ""`, errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(writeConfig(t, tt.body))
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Load err = %v, code %q, want %q", err, got, tt.code)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", AppName, "config.toml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := Default()
	cfg.Strict = true
	opts := cfg.PipelineOptions()
	if opts.VS != cfg.VertexShader || opts.FS != cfg.FragmentShader || opts.Hint != cfg.Hint || !opts.Strict {
		t.Errorf("PipelineOptions() = %+v", opts)
	}
}
