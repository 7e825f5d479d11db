package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
	"github.com/IQ-Director/Neural-Wings-demo/pkg/pipeline"
)

const samplePipeline = `{
    "postProcess": {
        "name": "bloom",
        "rtPool": ["inScreen", "outScreen", "rt_bright"],
        "hint": "拓扑序",
        "postProcessGraph": [
            {
                "name": "Bright",
                "vs": "assets/shaders/postprocess/default.vs",
                "fs": "bright.fs",
                "inputs": [["u_tex0", "inScreen"]],
                "output": "rt_bright",
                "uniforms": {"u_threshold": 0.8, "u_tint": [1, 0.9, 0.8]}
            },
            {
                "name": "Mix",
                "vs": "assets/shaders/postprocess/default.vs",
                "fs": "mix.fs",
                "inputs": [["u_scene", "inScreen"], ["u_bloom", "rt_bright"]],
                "output": "outScreen",
                "uniforms": {},
                "textures": {"u_dirt": "dirt.png"},
                "baseColor": [0, 0, 0, 1]
            }
        ]
    }
}`

func TestReadJSON(t *testing.T) {
	cfg, err := ReadJSON(strings.NewReader(samplePipeline))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	pp := cfg.PostProcess
	if pp.Name != "bloom" || len(pp.Graph) != 2 {
		t.Fatalf("decoded %q with %d passes", pp.Name, len(pp.Graph))
	}
	tint := pp.Graph[0].Uniforms["u_tint"]
	if tint.Type() != graph.UniformVec3 {
		t.Errorf("u_tint type = %v, want vec3", tint.Type())
	}
	if diff := cmp.Diff([]pipeline.Binding{{"u_scene", "inScreen"}, {"u_bloom", "rt_bright"}}, pp.Graph[1].Inputs); diff != "" {
		t.Errorf("inputs mismatch (-want +got):\n%s", diff)
	}
	if pp.Graph[1].BaseColor == nil || pp.Graph[1].BaseColor[3] != 1 {
		t.Errorf("baseColor = %v", pp.Graph[1].BaseColor)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"malformed", `{"postProcess": `},
		{"missing postProcess", `{"other": {}}`},
		{"unnamed pass", `{"postProcess": {"postProcessGraph": [{"output": "rt"}]}}`},
		{"bad uniform", `{"postProcess": {"postProcessGraph": [{"name": "a", "uniforms": {"u": [1,2,3,4,5]}}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !errors.Is(err, errors.ErrCodeInvalidPipeline) {
				t.Errorf("ReadJSON err = %v, want INVALID_PIPELINE", err)
			}
		})
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	cfg, err := ReadJSON(strings.NewReader(samplePipeline))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(cfg, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), "\n    \"postProcess\": {") {
		t.Errorf("output should be indented with four spaces:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "拓扑序") {
		t.Error("hint should be written unescaped")
	}

	again, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON(WriteJSON): %v", err)
	}
	if diff := cmp.Diff(cfg, again); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExportImportFile(t *testing.T) {
	cfg, err := ReadJSON(strings.NewReader(samplePipeline))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	path := filepath.Join(t.TempDir(), ExportFileName(cfg.PostProcess.Name))
	if err := ExportJSON(cfg, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("file round trip mismatch (-want +got):\n%s", diff)
	}

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON(missing) err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExportFileName(t *testing.T) {
	tests := []struct{ in, want string }{
		{"bloom", "bloom.json"},
		{"后处理蓝图", "后处理蓝图.json"},
		{"a/b", "a_b.json"},
		{"  ", "pipeline.json"},
	}
	for _, tt := range tests {
		if got := ExportFileName(tt.in); got != tt.want {
			t.Errorf("ExportFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func sampleGraph() *graph.Graph {
	ids := graph.NewCounter(0)
	g, a := graph.New("project").AddPass(ids)
	g, b := g.AddPass(ids)
	g, tp := g.AddTexturePort(b, ids, "u_lut")
	g, tex := g.AddTexture(ids, "lut.png")
	g, _ = g.AddParticle(ids)
	g = g.Update(a, graph.PassPatch{
		Name:       graph.Ptr("Blur"),
		FS:         graph.Ptr("blur.fs"),
		BaseColor:  &[4]float64{1, 0, 0, 1},
		ThemeColor: graph.Ptr("#3a8ee6"),
	})
	v, _ := graph.Vec(1, 0)
	g = g.SetUniform(a, "u_dir", v)
	g = g.SetUniform(b, "u_gain", graph.Float(2))
	g = g.MoveNode(b, graph.Position{X: 420.5, Y: -30})

	na, _ := g.Node(a)
	da, _ := na.Pass()
	nb, _ := g.Node(b)
	db, _ := nb.Pass()
	g = g.Connect(graph.Connection{Source: graph.InputNodeID, Target: a, TargetHandle: da.InputPorts[0].ID})
	g = g.Connect(graph.Connection{Source: a, Target: b, TargetHandle: db.InputPorts[0].ID})
	g = g.Connect(graph.Connection{Source: tex, Target: b, TargetHandle: tp})
	g = g.Connect(graph.Connection{Source: b, Target: graph.OutputNodeID})
	return g
}

func TestProjectRoundTrip(t *testing.T) {
	g := sampleGraph()

	var buf bytes.Buffer
	if err := WriteProject(g, &buf); err != nil {
		t.Fatalf("WriteProject: %v", err)
	}
	got, err := ReadProject(&buf)
	if err != nil {
		t.Fatalf("ReadProject: %v\n%s", err, buf.String())
	}

	if got.Name() != g.Name() {
		t.Errorf("name = %q, want %q", got.Name(), g.Name())
	}
	if diff := cmp.Diff(g.Nodes(), got.Nodes()); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(g.Edges(), got.Edges()); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoadProject(t *testing.T) {
	g := sampleGraph()
	path := filepath.Join(t.TempDir(), "project.json")
	if err := SaveProject(g, path); err != nil {
		t.Fatalf("SaveProject: %v", err)
	}
	got, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if got.NodeCount() != g.NodeCount() || got.EdgeCount() != g.EdgeCount() {
		t.Errorf("loaded %d nodes / %d edges, want %d / %d", got.NodeCount(), got.EdgeCount(), g.NodeCount(), g.EdgeCount())
	}
}

func TestReadProjectErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"malformed", `{"nodes": [`, errors.ErrCodeInvalidInput},
		{"unknown kind", `{"nodes": [{"id": "x", "kind": "shader", "data": {}}]}`, errors.ErrCodeInvalidInput},
		{"missing sentinels", `{"nodes": [{"id": "x", "kind": "pass", "data": {"name": "x"}}]}`, errors.ErrCodeInvalidInput},
		{
			"dangling edge",
			`{"nodes": [
				{"id": "START_NODE", "kind": "input", "data": {"name": "Input", "output": "inScreen"}},
				{"id": "END_NODE", "kind": "output", "data": {"name": "Output", "output": "outScreen"}}
			], "edges": [{"id": "e", "source": "START_NODE", "target": "ghost"}]}`,
			errors.ErrCodeNodeNotFound,
		},
		{"bad uniform", `{"nodes": [{"id": "x", "kind": "pass", "data": {"uniforms": {"u": "s"}}}]}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadProject(strings.NewReader(tt.in))
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("ReadProject err = %v, code %q, want %q", err, got, tt.code)
			}
		})
	}
}
