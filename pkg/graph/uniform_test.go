package graph

import (
	"encoding/json"
	"testing"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
)

func TestUniformJSON(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantType UniformType
		wantOut  string
		wantCode errors.Code
	}{
		{"scalar", `0.5`, UniformFloat, `0.5`, ""},
		{"integer scalar", `3`, UniformFloat, `3`, ""},
		{"vec2", `[1, 2]`, UniformVec2, `[1,2]`, ""},
		{"vec3", `[0.1,0.2,0.3]`, UniformVec3, `[0.1,0.2,0.3]`, ""},
		{"vec4", `[0,0,0,1]`, UniformVec4, `[0,0,0,1]`, ""},
		{"single element", `[1]`, 0, "", errors.ErrCodeInvalidUniform},
		{"too long", `[1,2,3,4,5]`, 0, "", errors.ErrCodeInvalidUniform},
		{"string", `"1"`, 0, "", errors.ErrCodeInvalidUniform},
		{"mixed array", `[1,"a"]`, 0, "", errors.ErrCodeInvalidUniform},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u Uniform
			err := json.Unmarshal([]byte(tt.in), &u)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("Unmarshal(%s) err = %v, want code %s", tt.in, err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.in, err)
			}
			if u.Type() != tt.wantType {
				t.Errorf("Type() = %v, want %v", u.Type(), tt.wantType)
			}
			out, err := json.Marshal(u)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(out) != tt.wantOut {
				t.Errorf("Marshal = %s, want %s", out, tt.wantOut)
			}
		})
	}
}

func TestUniformZeroValue(t *testing.T) {
	var u Uniform
	if u.Type() != UniformFloat {
		t.Errorf("zero Uniform type = %v, want float", u.Type())
	}
	if !u.Equal(Float(0)) {
		t.Error("zero Uniform should equal Float(0)")
	}
	if !Zero(UniformType(9)).Equal(Float(0)) {
		t.Error("Zero of an unknown type should fall back to float")
	}
}

func TestParseUniformType(t *testing.T) {
	for _, typ := range []UniformType{UniformFloat, UniformVec2, UniformVec3, UniformVec4} {
		got, err := ParseUniformType(typ.String())
		if err != nil || got != typ {
			t.Errorf("ParseUniformType(%q) = %v, %v", typ.String(), got, err)
		}
	}
	if _, err := ParseUniformType("mat4"); !errors.Is(err, errors.ErrCodeInvalidUniform) {
		t.Errorf("ParseUniformType(mat4) err = %v", err)
	}
}
