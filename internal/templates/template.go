// Package templates holds pre-built multi-object scenes that expand
// into command batches without a generation round-trip.
package templates

import (
	"fmt"
	"math"

	"vibebuilder/internal/catalog"
	"vibebuilder/internal/command"
	"vibebuilder/internal/protocol"
)

// Object is one piece of a scene template. Mesh objects get a mesh,
// material, renderer and collider; light objects get a Light component.
type Object struct {
	Name          string      `yaml:"name"`
	Mesh          string      `yaml:"mesh,omitempty"`
	Type          string      `yaml:"type,omitempty"`
	Position      [3]float64  `yaml:"position"`
	RotationEuler *[3]float64 `yaml:"rotation_euler,omitempty"`
	Scale         *[3]float64 `yaml:"scale,omitempty"`
	Color         *[3]float64 `yaml:"color,omitempty"`
	LightType     string      `yaml:"light_type,omitempty"`
	Intensity     float64     `yaml:"intensity,omitempty"`
	Range         float64     `yaml:"range,omitempty"`
}

// Template is a named scene with a fixed object layout.
type Template struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Objects     []Object `yaml:"objects"`
}

// Validate checks the template can be expanded.
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template has no name")
	}
	if len(t.Objects) == 0 {
		return fmt.Errorf("template %q has no objects", t.Name)
	}
	for i, obj := range t.Objects {
		if obj.Name == "" {
			return fmt.Errorf("template %q: object %d has no name", t.Name, i)
		}
		if obj.Type == "" && obj.Mesh == "" {
			return fmt.Errorf("template %q: object %q has neither mesh nor type", t.Name, obj.Name)
		}
		if obj.Mesh != "" {
			if _, ok := catalog.ComponentType(obj.Mesh); !ok {
				return fmt.Errorf("template %q: object %q: unknown mesh %q", t.Name, obj.Name, obj.Mesh)
			}
		}
	}
	return nil
}

// Expand turns the template into the command batch that builds it under
// parent. Placeholders are scoped per expansion, so a fresh reference
// namespace is expected for each run.
func (t *Template) Expand(parent string) ([]command.Command, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	var cmds []command.Command
	for i, obj := range t.Objects {
		slot := fmt.Sprintf("$TPL_%d", i)
		create := command.CreateObject{
			Placeholder: slot,
			Parent:      parent,
			Name:        obj.Name,
			Position:    &protocol.Float3{X: obj.Position[0], Y: obj.Position[1], Z: obj.Position[2]},
		}
		if obj.RotationEuler != nil {
			create.Rotation = eulerToQuat(*obj.RotationEuler)
		}
		if obj.Scale != nil {
			create.Scale = &protocol.Float3{X: obj.Scale[0], Y: obj.Scale[1], Z: obj.Scale[2]}
		}
		cmds = append(cmds, create)

		if obj.Type == "light" {
			cmds = append(cmds, lightCommands(slot, i, obj)...)
			continue
		}
		meshCmds, err := meshCommands(slot, i, obj)
		if err != nil {
			return nil, fmt.Errorf("template %q: object %q: %w", t.Name, obj.Name, err)
		}
		cmds = append(cmds, meshCmds...)
	}
	return cmds, nil
}

func lightCommands(slot string, index int, obj Object) []command.Command {
	lightType, _ := catalog.ComponentType("light")
	members := map[string]protocol.Value{}
	if obj.LightType != "" {
		members["LightType"] = protocol.Enum{Value: obj.LightType, EnumType: "LightType"}
	}
	if obj.Color != nil {
		members["Color"] = colorX(*obj.Color)
	}
	if obj.Intensity != 0 {
		members["Intensity"] = protocol.Float{Value: obj.Intensity}
	}
	if obj.Range != 0 {
		members["Range"] = protocol.Float{Value: obj.Range}
	}
	return []command.Command{
		command.AttachComponent{
			Placeholder: fmt.Sprintf("$TPL_%d_LIGHT", index),
			Target:      slot,
			Type:        lightType,
			Members:     members,
		},
	}
}

func meshCommands(slot string, index int, obj Object) ([]command.Command, error) {
	meshType, ok := catalog.ComponentType(obj.Mesh)
	if !ok {
		return nil, fmt.Errorf("unknown mesh %q", obj.Mesh)
	}
	materialType, _ := catalog.ComponentType("material")
	rendererType, _ := catalog.ComponentType("renderer")
	colliderType, _ := catalog.ComponentType(catalog.ColliderForMesh(obj.Mesh))

	meshPH := fmt.Sprintf("$TPL_%d_MESH", index)
	matPH := fmt.Sprintf("$TPL_%d_MAT", index)
	rendPH := fmt.Sprintf("$TPL_%d_REND", index)

	var materialMembers map[string]protocol.Value
	if obj.Color != nil {
		materialMembers = map[string]protocol.Value{
			"AlbedoColor": colorX(*obj.Color),
		}
	}

	return []command.Command{
		command.AttachComponent{Placeholder: meshPH, Target: slot, Type: meshType},
		command.AttachComponent{Placeholder: matPH, Target: slot, Type: materialType, Members: materialMembers},
		command.AttachComponent{
			Placeholder: rendPH,
			Target:      slot,
			Type:        rendererType,
			Members: map[string]protocol.Value{
				"Mesh": protocol.Reference{TargetID: meshPH},
			},
		},
		command.LinkListElement{Target: rendPH, Field: "Materials", Element: matPH},
		command.AttachComponent{
			Placeholder: fmt.Sprintf("$TPL_%d_COLL", index),
			Target:      slot,
			Type:        colliderType,
		},
	}, nil
}

func colorX(rgb [3]float64) protocol.ColorX {
	return protocol.ColorX{R: rgb[0], G: rgb[1], B: rgb[2], A: 1}
}

// eulerToQuat converts XYZ euler angles in degrees to a quaternion.
func eulerToQuat(deg [3]float64) *protocol.FloatQ {
	hx := deg[0] * math.Pi / 360
	hy := deg[1] * math.Pi / 360
	hz := deg[2] * math.Pi / 360
	cx, sx := math.Cos(hx), math.Sin(hx)
	cy, sy := math.Cos(hy), math.Sin(hy)
	cz, sz := math.Cos(hz), math.Sin(hz)
	return &protocol.FloatQ{
		X: sx*cy*cz - cx*sy*sz,
		Y: cx*sy*cz + sx*cy*sz,
		Z: cx*cy*sz - sx*sy*cz,
		W: cx*cy*cz + sx*sy*sz,
	}
}
