package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/graph"
)

// complete asks cobra for the completions of the last argument and returns
// the suggested values without their descriptions.
func (w *workspace) complete(args ...string) []string {
	w.t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{cobra.ShellCompRequestCmd, "--project=" + w.project}, args...))
	require.NoError(w.t, root.ExecuteContext(context.Background()))

	var values []string
	for _, line := range strings.Split(out.String(), "\n") {
		if line == "" || strings.HasPrefix(line, ":") {
			break
		}
		value, _, _ := strings.Cut(line, "\t")
		values = append(values, value)
	}
	return values
}

func TestCompleteConnect(t *testing.T) {
	w := newWorkspace(t)
	w.chain()
	w.mustRun("port", "add", "4", "--texture", "--name", "u_lut")
	w.mustRun("node", "add", "texture")
	tex := w.graph().NodesOfKind(graph.KindTexture)[0].ID

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"sources", []string{"connect", ""}, []string{graph.InputNodeID, "1", "4", tex}},
		{"targets", []string{"connect", "1", ""}, []string{graph.OutputNodeID, "1", "4"}},
		{"input ports", []string{"connect", graph.InputNodeID, "4", ""}, []string{"u_tex0"}},
		{"texture ports", []string{"connect", tex, "4", ""}, []string{"u_lut"}},
		{"no ports on output", []string{"connect", "4", graph.OutputNodeID, ""}, nil},
		{"prefix", []string{"connect", "E"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.complete(tt.args...))
		})
	}
}

func TestCompleteNodesAndPorts(t *testing.T) {
	w := newWorkspace(t)
	w.chain()
	w.mustRun("port", "add", "4", "--name", "u_bloom")

	assert.Equal(t, []string{"1", "4"}, w.complete("node", "set", ""))
	assert.Equal(t, []string{"4"}, w.complete("node", "set", "4"))
	assert.Empty(t, w.complete("node", "set", "1", ""))
	assert.Equal(t, []string{"4"}, w.complete("node", "rm", "1", ""))

	assert.Equal(t, []string{"u_tex0", "u_bloom"}, w.complete("port", "rm", "4", ""))
	assert.Equal(t, []string{"u_bloom"}, w.complete("port", "rename", "4", "u_b"))
	assert.Empty(t, w.complete("port", "rm", graph.OutputNodeID, ""))
}

func TestCompleteEdges(t *testing.T) {
	w := newWorkspace(t)
	w.chain()

	first := graph.Connection{Source: graph.InputNodeID, Target: "1", TargetHandle: "in_2"}.EdgeID()
	mid := graph.Connection{Source: "1", Target: "4", TargetHandle: "in_5"}.EdgeID()
	last := graph.Connection{Source: "4", Target: graph.OutputNodeID}.EdgeID()

	assert.Equal(t, []string{first, mid, last}, w.complete("disconnect", ""))
	assert.Equal(t, []string{first, last}, w.complete("disconnect", mid, ""))
}

func TestCompleteUniforms(t *testing.T) {
	w := newWorkspace(t)
	w.chain()
	w.mustRun("uniform", "set", "1", "u_tint", "1", "0.5", "0.25")
	w.mustRun("uniform", "set", "1", "u_gain", "2")

	assert.Equal(t, []string{"u_gain", "u_tint"}, w.complete("uniform", "rm", "1", ""))
	assert.Equal(t, []string{"float", "vec2", "vec3", "vec4"}, w.complete("uniform", "retype", "1", "u_gain", ""))
	assert.Equal(t, []string{"vec2", "vec3", "vec4"}, w.complete("uniform", "retype", "1", "u_gain", "v"))
}

func TestCompleteWithoutProject(t *testing.T) {
	w := newWorkspace(t)
	assert.Empty(t, w.complete("node", "set", ""))
}
