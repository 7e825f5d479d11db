// Package pipeline converts between the editor's node graph and the
// post-process pipeline description consumed by the renderer.
//
// # Architecture
//
// The package has two directions:
//
//  1. Compile: graph → Config. Passes are emitted in topological order with
//     their input bindings, texture bindings and resolved output resource.
//  2. Build: Config → graph. Sentinels, particle sources, textures and passes
//     are recreated and their edges resolved by resource name.
//
// Both directions are pure: neither touches the filesystem. Use package io to
// read and write the JSON form.
//
// # Usage
//
//	cfg, err := pipeline.Compile(g, pipeline.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//
//	g2, report, err := pipeline.Build(cfg, graph.NewCounter(0))
//	for _, d := range report.Dropped {
//	    logger.Warn("dropped binding", "pass", d.Pass, "source", d.Source)
//	}
package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultVS is the vertex shader emitted for passes without one.
	DefaultVS = "assets/shaders/postprocess/default.vs"

	// DefaultFS is the fragment shader emitted for passes without one.
	DefaultFS = "assets/shaders/postprocess/default.fs"

	// DefaultHint is the hint string written into every pipeline.
	DefaultHint = "拓扑序"
)

// =============================================================================
// Wire Types
// =============================================================================

// Config is the root of the pipeline document.
type Config struct {
	PostProcess *PostProcess `json:"postProcess"`
}

// PostProcess describes one post-process chain.
type PostProcess struct {
	Name   string   `json:"name"`
	RTPool []string `json:"rtPool"`
	Hint   string   `json:"hint"`
	Graph  []Pass   `json:"postProcessGraph"`
}

// Pass is a single shader pass in execution order.
type Pass struct {
	Name      string                   `json:"name"`
	VS        string                   `json:"vs"`
	FS        string                   `json:"fs"`
	Inputs    []Binding                `json:"inputs"`
	Output    string                   `json:"output"`
	Uniforms  map[string]graph.Uniform `json:"uniforms"`
	Textures  map[string]string        `json:"textures,omitempty"`
	BaseColor *[4]float64              `json:"baseColor,omitempty"`
}

// Binding pairs a sampler name with the resource it reads. It encodes as a
// two-element JSON array.
type Binding [2]string

// Name returns the sampler name.
func (b Binding) Name() string { return b[0] }

// Source returns the resource name.
func (b Binding) Source() string { return b[1] }

// =============================================================================
// Options
// =============================================================================

// Options configures Compile.
type Options struct {
	VS     string // default vertex shader
	FS     string // default fragment shader
	Hint   string
	Strict bool // fail with CYCLE instead of omitting unsorted passes

	Logger *log.Logger
}

// SetDefaults fills zero fields with the package defaults.
func (o *Options) SetDefaults() {
	if o.VS == "" {
		o.VS = DefaultVS
	}
	if o.FS == "" {
		o.FS = DefaultFS
	}
	if o.Hint == "" {
		o.Hint = DefaultHint
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
