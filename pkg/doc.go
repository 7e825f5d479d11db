// Package pkg provides the libraries behind ppgraph, an editor and compiler
// for post-process rendering pipelines.
//
// # Overview
//
// A post-process pipeline is a chain of full-screen shader passes. Each pass
// samples render targets and textures and writes one render target; the last
// pass writes the screen. ppgraph edits the chain as a graph and compiles it
// to the JSON document the engine loads at startup.
//
// # Architecture
//
// The typical data flow:
//
//	project file ([io].LoadProject)
//	         ↓
//	    [graph] snapshot, edited through [editor]
//	         ↓
//	    [pipeline].Compile (topological order, resource pool)
//	         ↓
//	    pipeline JSON ([io].ExportJSON)
//
// and back: [io].ImportJSON reads a pipeline document and [pipeline].Build
// reconstructs an editable graph from it.
//
// # Main Packages
//
//   - [graph]: immutable graph snapshots, connection rules, topological sort
//   - [pipeline]: compile graphs to pipeline documents and build them back
//   - [editor]: stateful command surface with validation, logging and undo
//   - [io]: pipeline JSON and project file encoding
//   - [config]: TOML editor defaults
//   - [render/nodelink]: DOT and SVG diagrams of a graph
//   - [cache]: render cache for SVG output
//   - [errors]: coded errors shared by all packages
//   - [buildinfo]: version information injected at build time
//
// # Quick Start
//
//	ids := graph.NewCounter(0)
//	g, blur := graph.New("bloom").AddPass(ids)
//	n, _ := g.Node(blur)
//	d, _ := n.Pass()
//	port := d.InputPorts[0].ID
//	g = g.Connect(graph.Connection{Source: graph.InputNodeID, Target: blur, TargetHandle: port})
//	g = g.Connect(graph.Connection{Source: blur, Target: graph.OutputNodeID})
//
//	cfg, err := pipeline.Compile(g, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	return io.ExportJSON(cfg, io.ExportFileName(cfg.PostProcess.Name))
//
// [graph]: github.com/IQ-Director/Neural-Wings-demo/pkg/graph
// [pipeline]: github.com/IQ-Director/Neural-Wings-demo/pkg/pipeline
// [editor]: github.com/IQ-Director/Neural-Wings-demo/pkg/editor
// [io]: github.com/IQ-Director/Neural-Wings-demo/pkg/io
// [config]: github.com/IQ-Director/Neural-Wings-demo/pkg/config
// [render/nodelink]: github.com/IQ-Director/Neural-Wings-demo/pkg/render/nodelink
// [cache]: github.com/IQ-Director/Neural-Wings-demo/pkg/cache
// [errors]: github.com/IQ-Director/Neural-Wings-demo/pkg/errors
// [buildinfo]: github.com/IQ-Director/Neural-Wings-demo/pkg/buildinfo
package pkg
