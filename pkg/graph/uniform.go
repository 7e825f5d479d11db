package graph

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/IQ-Director/Neural-Wings-demo/pkg/errors"
)

// UniformType is the GLSL type of a uniform. Its value equals the arity.
type UniformType int

const (
	UniformFloat UniformType = 1
	UniformVec2  UniformType = 2
	UniformVec3  UniformType = 3
	UniformVec4  UniformType = 4
)

func (t UniformType) String() string {
	switch t {
	case UniformFloat:
		return "float"
	case UniformVec2:
		return "vec2"
	case UniformVec3:
		return "vec3"
	case UniformVec4:
		return "vec4"
	}
	return fmt.Sprintf("UniformType(%d)", int(t))
}

// ParseUniformType converts "float", "vec2", "vec3" or "vec4" to a UniformType.
func ParseUniformType(s string) (UniformType, error) {
	switch s {
	case "float":
		return UniformFloat, nil
	case "vec2":
		return UniformVec2, nil
	case "vec3":
		return UniformVec3, nil
	case "vec4":
		return UniformVec4, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidUniform, "unknown uniform type %q (want float, vec2, vec3 or vec4)", s)
}

// Uniform is a scalar or a 2-4 component vector. The zero value is the
// scalar 0. In JSON a scalar is a number and a vector is an array.
type Uniform struct {
	typ  UniformType
	vals [4]float64
}

// Float returns a scalar uniform.
func Float(v float64) Uniform {
	return Uniform{typ: UniformFloat, vals: [4]float64{v}}
}

// Vec returns a vector uniform. It fails unless 2 to 4 components are given.
func Vec(vs ...float64) (Uniform, error) {
	if len(vs) < 2 || len(vs) > 4 {
		return Uniform{}, errors.New(errors.ErrCodeInvalidUniform, "vector uniform needs 2 to 4 components, got %d", len(vs))
	}
	u := Uniform{typ: UniformType(len(vs))}
	copy(u.vals[:], vs)
	return u, nil
}

// Zero returns the zero value of the given type: 0, [0,0], [0,0,0] or [0,0,0,0].
func Zero(t UniformType) Uniform {
	if t < UniformFloat || t > UniformVec4 {
		t = UniformFloat
	}
	return Uniform{typ: t}
}

// Type returns the uniform's type.
func (u Uniform) Type() UniformType {
	if u.typ == 0 {
		return UniformFloat
	}
	return u.typ
}

// Values returns the components, one for scalars.
func (u Uniform) Values() []float64 {
	out := make([]float64, u.Type())
	copy(out, u.vals[:])
	return out
}

func (u Uniform) String() string {
	if u.Type() == UniformFloat {
		return fmt.Sprint(u.vals[0])
	}
	return fmt.Sprint(u.Values())
}

// MarshalJSON writes a number for scalars and an array for vectors.
func (u Uniform) MarshalJSON() ([]byte, error) {
	if u.Type() == UniformFloat {
		return json.Marshal(u.vals[0])
	}
	return json.Marshal(u.Values())
}

// UnmarshalJSON accepts a number or an array of 2 to 4 numbers.
func (u *Uniform) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var vs []float64
		if err := json.Unmarshal(data, &vs); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidUniform, err, "uniform vector")
		}
		v, err := Vec(vs...)
		if err != nil {
			return err
		}
		*u = v
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidUniform, err, "uniform value")
	}
	*u = Float(f)
	return nil
}

// Equal reports whether u and o have the same type and components.
func (u Uniform) Equal(o Uniform) bool {
	return u.Type() == o.Type() && u.vals == o.vals
}
