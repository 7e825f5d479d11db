package graph

import (
	"testing"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
)

// addPass adds a pass and returns it with its first input port handle.
func addPass(t *testing.T, g *Graph, ids IDGenerator) (*Graph, string, string) {
	t.Helper()
	g, id := g.AddPass(ids)
	n, ok := g.Node(id)
	if !ok {
		t.Fatalf("AddPass: node %s missing", id)
	}
	d, _ := n.Pass()
	return g, id, d.InputPorts[0].ID
}

func passData(t *testing.T, g *Graph, id string) PassData {
	t.Helper()
	n, ok := g.Node(id)
	if !ok {
		t.Fatalf("node %s missing", id)
	}
	d, ok := n.Pass()
	if !ok {
		t.Fatalf("node %s is %s, not a pass", id, n.Kind)
	}
	return d
}

func TestNew(t *testing.T) {
	g := New("bloom")

	if g.Name() != "bloom" {
		t.Errorf("Name() = %q, want bloom", g.Name())
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 0 {
		t.Fatalf("NodeCount/EdgeCount = %d/%d, want 2/0", g.NodeCount(), g.EdgeCount())
	}
	for id, want := range map[string]string{InputNodeID: ResourceInScreen, OutputNodeID: ResourceOutScreen} {
		n, ok := g.Node(id)
		if !ok {
			t.Fatalf("sentinel %s missing", id)
		}
		if !n.IsStatic() {
			t.Errorf("sentinel %s is not static", id)
		}
		if n.Output() != want {
			t.Errorf("%s output = %q, want %q", id, n.Output(), want)
		}
	}
}

func TestAddPass(t *testing.T) {
	g, id := New("p").AddPass(NewCounter(0))

	if id != "1" {
		t.Errorf("id = %q, want 1", id)
	}
	d := passData(t, g, id)
	if d.Name != DefaultPassName {
		t.Errorf("Name = %q, want %q", d.Name, DefaultPassName)
	}
	if len(d.InputPorts) != 1 || d.InputPorts[0] != (Port{ID: "in_2", Name: DefaultPortName}) {
		t.Errorf("InputPorts = %v, want [{in_2 u_tex0}]", d.InputPorts)
	}
	if d.Output != "rt_3" {
		t.Errorf("Output = %q, want rt_3", d.Output)
	}
	if d.Uniforms == nil {
		t.Error("Uniforms should be initialized")
	}
}

func TestAddPassAvoidsOutputCollision(t *testing.T) {
	base := New("p")
	nodes := append(base.Nodes(), Node{
		ID:   "existing",
		Kind: KindPass,
		Data: PassData{Name: "Existing", Output: "rt_3", Uniforms: map[string]Uniform{}},
	})
	g, err := FromParts("p", nodes, nil)
	if err != nil {
		t.Fatalf("FromParts: %v", err)
	}

	g, id := g.AddPass(NewCounter(0))
	if got := passData(t, g, id).Output; got != "rt_4" {
		t.Errorf("Output = %q, want rt_4 (rt_3 is taken)", got)
	}
}

func TestAddTextureAndParticle(t *testing.T) {
	ids := NewCounter(0)
	g, tex := New("p").AddTexture(ids, "")
	g, part := g.AddParticle(ids)

	n, _ := g.Node(tex)
	td, ok := n.Texture()
	if !ok {
		t.Fatalf("texture payload = %T", n.Data)
	}
	if td.Path != DefaultTexturePath || td.Output != td.Path {
		t.Errorf("texture = %+v, want path and output %q", td, DefaultTexturePath)
	}

	n, _ = g.Node(part)
	pd, ok := n.Particle()
	if !ok {
		t.Fatalf("particle payload = %T", n.Data)
	}
	if pd.Output != "rt_3" {
		t.Errorf("particle output = %q, want rt_3", pd.Output)
	}
}

func TestCommandsDoNotMutateReceiver(t *testing.T) {
	ids := NewCounter(0)
	g, id, port := addPass(t, New("p"), ids)

	_ = g.SetUniform(id, "u_k", Float(1))
	_ = g.RenameInputPort(id, port, "u_src")
	_ = g.Update(id, PassPatch{Name: Ptr("Blur")})
	_ = g.Connect(Connection{Source: InputNodeID, Target: id, TargetHandle: port})
	_ = g.RemoveNodes(id)
	_ = g.SetName("other")

	d := passData(t, g, id)
	if len(d.Uniforms) != 0 {
		t.Errorf("Uniforms = %v, want empty", d.Uniforms)
	}
	if d.InputPorts[0].Name != DefaultPortName {
		t.Errorf("port name = %q, want %q", d.InputPorts[0].Name, DefaultPortName)
	}
	if d.Name != DefaultPassName {
		t.Errorf("Name = %q, want %q", d.Name, DefaultPassName)
	}
	if g.EdgeCount() != 0 || g.NodeCount() != 3 || g.Name() != "p" {
		t.Errorf("snapshot changed: %d edges, %d nodes, name %q", g.EdgeCount(), g.NodeCount(), g.Name())
	}
}

func TestUpdate(t *testing.T) {
	ids := NewCounter(0)
	g, pass, _ := addPass(t, New("p"), ids)
	g, tex := g.AddTexture(ids, "")

	t.Run("shallow merge", func(t *testing.T) {
		h := g.Update(pass, PassPatch{FS: Ptr("assets/shaders/blur.fs"), BaseColor: &[4]float64{1, 0, 0, 1}})
		d := passData(t, h, pass)
		if d.FS != "assets/shaders/blur.fs" {
			t.Errorf("FS = %q", d.FS)
		}
		if d.Name != DefaultPassName || d.Output != "rt_3" {
			t.Errorf("unpatched fields changed: %+v", d)
		}
		if d.BaseColor == nil || *d.BaseColor != [4]float64{1, 0, 0, 1} {
			t.Errorf("BaseColor = %v", d.BaseColor)
		}

		h = h.Update(pass, PassPatch{ClearBaseColor: true})
		if passData(t, h, pass).BaseColor != nil {
			t.Error("BaseColor should be cleared")
		}
	})

	t.Run("texture path sets output", func(t *testing.T) {
		h := g.Update(tex, TexturePatch{Path: Ptr("assets/textures/noise.png")})
		n, _ := h.Node(tex)
		if n.Output() != "assets/textures/noise.png" {
			t.Errorf("Output = %q", n.Output())
		}
	})

	t.Run("wrong kind ignored", func(t *testing.T) {
		if h := g.Update(tex, PassPatch{Name: Ptr("x")}); h != g {
			t.Error("PassPatch on a texture should be ignored")
		}
		if h := g.Update(InputNodeID, PassPatch{Output: Ptr("x")}); h != g {
			t.Error("PassPatch on a sentinel should be ignored")
		}
		if h := g.Update("missing", ParticlePatch{Name: Ptr("x")}); h != g {
			t.Error("patch on unknown node should be ignored")
		}
	})
}

func TestConnectReplacesOccupiedPort(t *testing.T) {
	ids := NewCounter(0)
	g, a, _ := addPass(t, New("p"), ids)
	g, b, bPort := addPass(t, g, ids)

	g = g.Connect(Connection{Source: InputNodeID, Target: b, TargetHandle: bPort})
	g = g.Connect(Connection{Source: a, Target: b, TargetHandle: bPort})

	in := g.Incoming(b)
	if len(in) != 1 {
		t.Fatalf("Incoming(%s) = %v, want exactly one edge", b, in)
	}
	if in[0].Source != a {
		t.Errorf("edge source = %q, want %q", in[0].Source, a)
	}

	// Reconnecting the same edge must not duplicate it.
	g = g.Connect(Connection{Source: a, Target: b, TargetHandle: bPort})
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
}

func TestConnectIgnoresUnknownNodes(t *testing.T) {
	g := New("p")
	if h := g.Connect(Connection{Source: "ghost", Target: OutputNodeID}); h != g {
		t.Error("Connect with unknown source should be a no-op")
	}
}

func TestRemovePortDropsEdges(t *testing.T) {
	ids := NewCounter(0)
	g, a, aPort := addPass(t, New("p"), ids)
	g, texPort := g.AddTexturePort(a, ids, "u_noise")
	g, tex := g.AddTexture(ids, "")

	g = g.Connect(Connection{Source: InputNodeID, Target: a, TargetHandle: aPort})
	g = g.Connect(Connection{Source: tex, Target: a, TargetHandle: texPort})
	g = g.Connect(Connection{Source: a, Target: OutputNodeID})

	h := g.RemoveInputPort(a, aPort)
	if _, ok := passData(t, h, a).InputPort(aPort); ok {
		t.Error("input port still declared")
	}
	for _, e := range h.Edges() {
		if e.Target == a && e.TargetHandle == aPort {
			t.Errorf("dangling edge %s on removed port", e.ID)
		}
	}
	if h.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", h.EdgeCount())
	}

	h = h.RemoveTexturePort(a, texPort)
	if len(passData(t, h, a).TexturePorts) != 0 {
		t.Error("texture port still declared")
	}
	if h.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", h.EdgeCount())
	}
}

func TestAddAndRenamePorts(t *testing.T) {
	ids := NewCounter(0)
	g, a, _ := addPass(t, New("p"), ids)

	g, p1 := g.AddInputPort(a, ids, "")
	g, p2 := g.AddTexturePort(a, ids, "")
	g = g.RenameTexturePort(a, p2, "u_lut")

	d := passData(t, g, a)
	if got, _ := d.InputPort(p1); got.Name != "u_tex1" {
		t.Errorf("default input port name = %q, want u_tex1", got.Name)
	}
	if got, _ := d.TexturePort(p2); got.Name != "u_lut" {
		t.Errorf("texture port name = %q, want u_lut", got.Name)
	}

	if _, id := g.AddInputPort(InputNodeID, ids, "x"); id != "" {
		t.Error("sentinels should not accept ports")
	}
}

func TestUniforms(t *testing.T) {
	ids := NewCounter(0)
	g, a, _ := addPass(t, New("p"), ids)
	v3, _ := Vec(1, 2, 3)
	g = g.AddUniform(a, "u_tint", v3)
	g = g.SetUniform(a, "u_strength", Float(0.5))

	t.Run("rename", func(t *testing.T) {
		h := g.RenameUniform(a, "u_tint", "u_color")
		u := passData(t, h, a).Uniforms
		if _, ok := u["u_tint"]; ok {
			t.Error("old key still present")
		}
		if !u["u_color"].Equal(v3) {
			t.Errorf("u_color = %v, want %v", u["u_color"], v3)
		}
		if h := g.RenameUniform(a, "u_tint", "u_tint"); h != g {
			t.Error("rename to same key should be a no-op")
		}
	})

	t.Run("remove", func(t *testing.T) {
		h := g.RemoveUniform(a, "u_strength")
		if _, ok := passData(t, h, a).Uniforms["u_strength"]; ok {
			t.Error("uniform not removed")
		}
	})

	t.Run("retype", func(t *testing.T) {
		tests := []struct {
			typ  UniformType
			want []float64
		}{
			{UniformFloat, []float64{0}},
			{UniformVec2, []float64{0, 0}},
			{UniformVec3, []float64{0, 0, 0}},
			{UniformVec4, []float64{0, 0, 0, 0}},
		}
		for _, tt := range tests {
			t.Run(tt.typ.String(), func(t *testing.T) {
				h := g.RetypeUniform(a, "u_tint", tt.typ)
				u := passData(t, h, a).Uniforms["u_tint"]
				if u.Type() != tt.typ {
					t.Errorf("Type() = %v, want %v", u.Type(), tt.typ)
				}
				got := u.Values()
				if len(got) != len(tt.want) {
					t.Fatalf("Values() = %v, want %v", got, tt.want)
				}
				for i := range got {
					if got[i] != 0 {
						t.Errorf("Values() = %v, want all zero", got)
					}
				}
			})
		}
	})
}

func TestRemoveNodes(t *testing.T) {
	ids := NewCounter(0)
	g, a, aPort := addPass(t, New("p"), ids)
	g = g.Connect(Connection{Source: InputNodeID, Target: a, TargetHandle: aPort})
	g = g.Connect(Connection{Source: a, Target: OutputNodeID})

	h := g.RemoveNodes(InputNodeID, OutputNodeID, a)
	if h.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2 (sentinels kept)", h.NodeCount())
	}
	if _, ok := h.Node(a); ok {
		t.Error("pass not removed")
	}
	if h.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0", h.EdgeCount())
	}
}

func TestRemoveEdges(t *testing.T) {
	ids := NewCounter(0)
	g, a, aPort := addPass(t, New("p"), ids)
	c := Connection{Source: InputNodeID, Target: a, TargetHandle: aPort}
	g = g.Connect(c)

	h := g.RemoveEdges(c.EdgeID(), "unknown")
	if h.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0", h.EdgeCount())
	}
}

func TestConnectOutputIgnoresHandle(t *testing.T) {
	ids := NewCounter(0)
	g, a, _ := addPass(t, New("p"), ids)
	g, b, _ := addPass(t, g, ids)

	g = g.Connect(Connection{Source: a, Target: OutputNodeID, TargetHandle: "x"})
	g = g.Connect(Connection{Source: b, Target: OutputNodeID, TargetHandle: "y"})

	in := g.Incoming(OutputNodeID)
	if len(in) != 1 {
		t.Fatalf("Output sentinel has %d incoming edges, want 1", len(in))
	}
	want := Edge{ID: "e-" + b + "-out-" + OutputNodeID + "-", Source: b, SourceHandle: OutputHandle, Target: OutputNodeID}
	if in[0] != want {
		t.Errorf("edge = %+v, want %+v", in[0], want)
	}
	if id := (Connection{Source: b, Target: OutputNodeID, TargetHandle: "z"}).EdgeID(); id != want.ID {
		t.Errorf("EdgeID = %q, want %q", id, want.ID)
	}
}

func TestCheckOutputName(t *testing.T) {
	ids := NewCounter(0)
	g, a, _ := addPass(t, New("p"), ids)
	g, b, _ := addPass(t, g, ids)
	g, part := g.AddParticle(ids)
	g = g.Update(a, PassPatch{Output: Ptr("rt_blur")})
	g = g.Update(part, ParticlePatch{Output: Ptr("rt_sparks")})

	tests := []struct {
		name   string
		output string
		node   string
		code   errors.Code
	}{
		{"reserved input", ResourceInScreen, b, errors.ErrCodeDuplicateName},
		{"used by other pass", "rt_blur", b, errors.ErrCodeDuplicateName},
		{"used by particle", "rt_sparks", b, errors.ErrCodeDuplicateName},
		{"particle takes pass output", "rt_blur", part, errors.ErrCodeDuplicateName},
		{"own name", "rt_blur", a, ""},
		{"own particle name", "rt_sparks", part, ""},
		{"fresh", "rt_new", b, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.CheckOutputName(tt.output, tt.node)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("CheckOutputName(%q, %s) code = %q, want %q (err %v)", tt.output, tt.node, got, tt.code, err)
			}
		})
	}
}

func TestFromParts(t *testing.T) {
	sentinels := New("p").Nodes()
	with := func(extra ...Node) []Node {
		return append(sentinels[:2:2], extra...)
	}
	pass := Node{ID: "a", Kind: KindPass, Data: PassData{InputPorts: []Port{{ID: "in_a", Name: "u"}}}}

	tests := []struct {
		name  string
		nodes []Node
		edges []Edge
		code  errors.Code
	}{
		{"valid", with(pass), []Edge{{ID: "e", Source: InputNodeID, Target: "a", TargetHandle: "in_a"}}, ""},
		{"missing sentinel", []Node{sentinels[0], pass}, nil, errors.ErrCodeInvalidInput},
		{"duplicate id", with(pass, pass), nil, errors.ErrCodeInvalidInput},
		{"empty id", with(Node{Kind: KindPass, Data: PassData{}}), nil, errors.ErrCodeInvalidInput},
		{"payload mismatch", with(Node{ID: "t", Kind: KindTexture, Data: PassData{}}), nil, errors.ErrCodeInvalidInput},
		{"unknown edge endpoint", sentinels, []Edge{{ID: "e", Source: "ghost", Target: OutputNodeID}}, errors.ErrCodeNodeNotFound},
		{
			"occupied port",
			with(pass),
			[]Edge{
				{ID: "e1", Source: InputNodeID, Target: "a", TargetHandle: "in_a"},
				{ID: "e2", Source: InputNodeID, Target: "a", TargetHandle: "in_a"},
			},
			errors.ErrCodeInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromParts("p", tt.nodes, tt.edges)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("FromParts() code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}
