package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/cache"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/render/nodelink"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c := New(&strings.Builder{}, LogInfo)
	if _, ok := c.newCache(true).(cache.NullCache); !ok {
		t.Error("newCache(true) should return a null cache")
	}
}

func TestDrawGraphUsesCache(t *testing.T) {
	ctx := context.Background()
	store, err := cache.NewFileCache(t.TempDir(), cache.DefaultTTL)
	if err != nil {
		t.Fatal(err)
	}
	g := graph.New("p")
	opts := nodelink.Options{}

	key := cache.Key(formatSVG, nodelink.ToDOT(g, opts))
	if err := store.Set(ctx, key, []byte("<svg>cached</svg>")); err != nil {
		t.Fatal(err)
	}

	data, cached, err := drawGraph(ctx, store, g, formatSVG, opts)
	if err != nil {
		t.Fatalf("drawGraph() error: %v", err)
	}
	if !cached || string(data) != "<svg>cached</svg>" {
		t.Errorf("drawGraph() = %q, cached %v, want the cached render", data, cached)
	}

	data, cached, err = drawGraph(ctx, store, g, formatDOT, opts)
	if err != nil || cached {
		t.Fatalf("drawGraph(dot) cached %v, err %v", cached, err)
	}
	if !strings.HasPrefix(string(data), "digraph") {
		t.Errorf("drawGraph(dot) = %q", data)
	}
}
