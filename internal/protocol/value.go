// Package protocol implements the ResoniteLink wire format: $type-tagged
// JSON messages over a duplex connection, with an integer id used for
// request/response correlation.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Value is one typed wire value. The set of kinds is closed; DecodeValue
// rejects any $type outside it.
type Value interface {
	typeName() string
	json.Marshaler
}

// Float is a numeric scalar.
type Float struct {
	Value float64
}

// Int is an integer scalar.
type Int struct {
	Value int64
}

// Bool is a boolean value.
type Bool struct {
	Value bool
}

// String is a string value.
type String struct {
	Value string
}

// Float2 is a 2D vector.
type Float2 struct {
	X, Y float64
}

// Float3 is a 3D vector.
type Float3 struct {
	X, Y, Z float64
}

// FloatQ is a quaternion rotation.
type FloatQ struct {
	X, Y, Z, W float64
}

// ColorX is a color with an explicit color-space profile.
type ColorX struct {
	R, G, B, A float64
	Profile    string
}

// Enum is a named enum member, e.g. {LightType, Point}.
type Enum struct {
	Value    string
	EnumType string
}

// Reference points at another object or component. An empty Reference
// (no target) appends a blank element when written into a list field.
// ID is only set when addressing an existing list element.
type Reference struct {
	ID       string
	TargetID string
}

// List is an ordered list of values, used for list-typed component fields.
type List struct {
	Elements []Value
}

func (Float) typeName() string     { return "float" }
func (Int) typeName() string       { return "int" }
func (Bool) typeName() string      { return "bool" }
func (String) typeName() string    { return "string" }
func (Float2) typeName() string    { return "float2" }
func (Float3) typeName() string    { return "float3" }
func (FloatQ) typeName() string    { return "floatQ" }
func (ColorX) typeName() string    { return "colorX" }
func (Enum) typeName() string      { return "enum" }
func (Reference) typeName() string { return "reference" }
func (List) typeName() string      { return "list" }

func (v Float) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string  `json:"$type"`
		Value float64 `json:"value"`
	}{v.typeName(), v.Value})
}

func (v Int) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"$type"`
		Value int64  `json:"value"`
	}{v.typeName(), v.Value})
}

func (v Bool) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"$type"`
		Value bool   `json:"value"`
	}{v.typeName(), v.Value})
}

func (v String) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"$type"`
		Value string `json:"value"`
	}{v.typeName(), v.Value})
}

type xy struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type xyz struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type xyzw struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

type rgba struct {
	R       float64 `json:"r"`
	G       float64 `json:"g"`
	B       float64 `json:"b"`
	A       float64 `json:"a"`
	Profile string  `json:"profile"`
}

func (v Float2) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"$type"`
		Value xy     `json:"value"`
	}{v.typeName(), xy{v.X, v.Y}})
}

func (v Float3) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"$type"`
		Value xyz    `json:"value"`
	}{v.typeName(), xyz{v.X, v.Y, v.Z}})
}

func (v FloatQ) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"$type"`
		Value xyzw   `json:"value"`
	}{v.typeName(), xyzw{v.X, v.Y, v.Z, v.W}})
}

func (v ColorX) MarshalJSON() ([]byte, error) {
	profile := v.Profile
	if profile == "" {
		profile = "sRGB"
	}
	return json.Marshal(struct {
		Type  string `json:"$type"`
		Value rgba   `json:"value"`
	}{v.typeName(), rgba{v.R, v.G, v.B, v.A, profile}})
}

func (v Enum) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"$type"`
		Value    string `json:"value"`
		EnumType string `json:"enumType"`
	}{v.typeName(), v.Value, v.EnumType})
}

func (v Reference) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string `json:"$type"`
		ID       string `json:"id,omitempty"`
		TargetID string `json:"targetId,omitempty"`
	}{v.typeName(), v.ID, v.TargetID})
}

func (v List) MarshalJSON() ([]byte, error) {
	elements := v.Elements
	if elements == nil {
		elements = []Value{}
	}
	return json.Marshal(struct {
		Type     string  `json:"$type"`
		Elements []Value `json:"elements"`
	}{v.typeName(), elements})
}

// DecodeValue parses one $type-tagged value. Unknown $type values are an
// error, never passed through.
func DecodeValue(raw json.RawMessage) (Value, error) {
	var tag struct {
		Type string `json:"$type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("decode value tag: %w", err)
	}

	switch tag.Type {
	case "float":
		var v struct {
			Value float64 `json:"value"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode float: %w", err)
		}
		return Float{Value: v.Value}, nil

	case "int":
		var v struct {
			Value int64 `json:"value"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode int: %w", err)
		}
		return Int{Value: v.Value}, nil

	case "bool":
		var v struct {
			Value bool `json:"value"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode bool: %w", err)
		}
		return Bool{Value: v.Value}, nil

	case "string":
		var v struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode string: %w", err)
		}
		return String{Value: v.Value}, nil

	case "float2":
		var v struct {
			Value xy `json:"value"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode float2: %w", err)
		}
		return Float2{X: v.Value.X, Y: v.Value.Y}, nil

	case "float3":
		var v struct {
			Value xyz `json:"value"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode float3: %w", err)
		}
		return Float3{X: v.Value.X, Y: v.Value.Y, Z: v.Value.Z}, nil

	case "floatQ":
		var v struct {
			Value xyzw `json:"value"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode floatQ: %w", err)
		}
		return FloatQ{X: v.Value.X, Y: v.Value.Y, Z: v.Value.Z, W: v.Value.W}, nil

	case "colorX":
		var v struct {
			Value rgba `json:"value"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode colorX: %w", err)
		}
		return ColorX{R: v.Value.R, G: v.Value.G, B: v.Value.B, A: v.Value.A, Profile: v.Value.Profile}, nil

	case "enum":
		var v struct {
			Value    string `json:"value"`
			EnumType string `json:"enumType"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode enum: %w", err)
		}
		return Enum{Value: v.Value, EnumType: v.EnumType}, nil

	case "reference":
		var v struct {
			ID       string `json:"id"`
			TargetID string `json:"targetId"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode reference: %w", err)
		}
		return Reference{ID: v.ID, TargetID: v.TargetID}, nil

	case "list":
		var v struct {
			Elements []json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		list := List{Elements: make([]Value, 0, len(v.Elements))}
		for i, el := range v.Elements {
			decoded, err := DecodeValue(el)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			list.Elements = append(list.Elements, decoded)
		}
		return list, nil

	case "":
		return nil, fmt.Errorf("value has no $type tag")

	default:
		return nil, fmt.Errorf("unknown value $type %q", tag.Type)
	}
}
