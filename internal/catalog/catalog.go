// Package catalog maps the short component vocabulary used in prompts
// and scene templates to full engine type names, field names, and enum
// values.
package catalog

import "strings"

// components maps short names to fully qualified engine types.
var components = map[string]string{
	// Meshes
	"box":       "[FrooxEngine]FrooxEngine.BoxMesh",
	"sphere":    "[FrooxEngine]FrooxEngine.SphereMesh",
	"cylinder":  "[FrooxEngine]FrooxEngine.CylinderMesh",
	"cone":      "[FrooxEngine]FrooxEngine.ConeMesh",
	"capsule":   "[FrooxEngine]FrooxEngine.CapsuleMesh",
	"torus":     "[FrooxEngine]FrooxEngine.TorusMesh",
	"bevel_box": "[FrooxEngine]FrooxEngine.BevelBoxMesh",
	"quad":      "[FrooxEngine]FrooxEngine.QuadMesh",
	"triangle":  "[FrooxEngine]FrooxEngine.TriangleMesh",

	// Rendering
	"material":          "[FrooxEngine]FrooxEngine.PBS_Metallic",
	"material_metallic": "[FrooxEngine]FrooxEngine.PBS_Metallic",
	"material_specular": "[FrooxEngine]FrooxEngine.PBS_Specular",
	"unlit_material":    "[FrooxEngine]FrooxEngine.UnlitMaterial",
	"renderer":          "[FrooxEngine]FrooxEngine.MeshRenderer",
	"mesh_renderer":     "[FrooxEngine]FrooxEngine.MeshRenderer",

	// Physics
	"box_collider":      "[FrooxEngine]FrooxEngine.BoxCollider",
	"sphere_collider":   "[FrooxEngine]FrooxEngine.SphereCollider",
	"mesh_collider":     "[FrooxEngine]FrooxEngine.MeshCollider",
	"capsule_collider":  "[FrooxEngine]FrooxEngine.CapsuleCollider",
	"cylinder_collider": "[FrooxEngine]FrooxEngine.CylinderCollider",

	// Interaction
	"grabbable": "[FrooxEngine]FrooxEngine.Grabbable",

	// Animation
	"spinner":  "[FrooxEngine]FrooxEngine.Spinner",
	"wiggler":  "[FrooxEngine]FrooxEngine.Wiggler",
	"wobbler":  "[FrooxEngine]FrooxEngine.Wobbler",
	"panner1d": "[FrooxEngine]FrooxEngine.Panner1D",
	"panner2d": "[FrooxEngine]FrooxEngine.Panner2D",
	"panner3d": "[FrooxEngine]FrooxEngine.Panner3D",

	// Lighting
	"light": "[FrooxEngine]FrooxEngine.Light",

	// Metadata
	"comment": "[FrooxEngine]FrooxEngine.Comment",
	"license": "[FrooxEngine]FrooxEngine.License",
}

// enums lists the allowed values per enum type.
var enums = map[string][]string{
	"LightType":      {"Directional", "Point", "Spot"},
	"BlendMode":      {"Opaque", "Cutout", "Alpha"},
	"ShadowCastMode": {"Off", "On", "TwoSided", "ShadowsOnly"},
	"Sidedness":      {"Auto", "Front", "Back", "Double"},
}

// fieldAliases maps per-component prompt aliases to engine member names.
var fieldAliases = map[string]map[string]string{
	"spinner": {
		"speed": "_speed",
	},
	"wiggler": {
		"speed":     "_speed",
		"magnitude": "_magnitude",
	},
	"wobbler": {
		"speed":     "_speed",
		"magnitude": "_magnitude",
	},
	"light": {
		"type":       "LightType",
		"intensity":  "Intensity",
		"color":      "Color",
		"range":      "Range",
		"spot_angle": "SpotAngle",
	},
	"material": {
		"color":      "AlbedoColor",
		"albedo":     "AlbedoColor",
		"metallic":   "Metallic",
		"smoothness": "Smoothness",
		"blend_mode": "BlendMode",
		"emission":   "EmissiveColor",
	},
	"renderer": {
		"mesh":      "Mesh",
		"materials": "Materials",
	},
	"comment": {
		"text": "Text",
	},
	"license": {
		"credit":         "CreditString",
		"require_credit": "RequireCredit",
		"can_export":     "CanExport",
	},
}

// meshColliders picks the right collider for each mesh shape.
var meshColliders = map[string]string{
	"box":       "box_collider",
	"bevel_box": "box_collider",
	"sphere":    "sphere_collider",
	"cylinder":  "cylinder_collider",
	"capsule":   "capsule_collider",
}

// systemObjects are world-infrastructure slots that must never be
// touched by a build.
var systemObjects = map[string]bool{
	"Controllers":        true,
	"Roles":              true,
	"SpawnArea":          true,
	"Light":              true,
	"Skybox":             true,
	"__TEMP":             true,
	"Undo Manager":       true,
	"Assets":             true,
	"Clipboard Importer": true,
}

// ComponentType returns the full engine type for a short name.
func ComponentType(shortName string) (string, bool) {
	full, ok := components[strings.ToLower(shortName)]
	return full, ok
}

// ColliderForMesh returns the collider short name matching a mesh short
// name. Irregular shapes fall back to a mesh collider.
func ColliderForMesh(meshName string) string {
	if collider, ok := meshColliders[strings.ToLower(meshName)]; ok {
		return collider
	}
	return "mesh_collider"
}

// FieldName resolves a prompt-level field alias to the engine member
// name. Unknown aliases pass through unchanged.
func FieldName(componentName, alias string) string {
	fields, ok := fieldAliases[strings.ToLower(componentName)]
	if !ok {
		return alias
	}
	if name, ok := fields[strings.ToLower(alias)]; ok {
		return name
	}
	return alias
}

// EnumValues returns the allowed values for an enum type.
func EnumValues(enumType string) ([]string, bool) {
	values, ok := enums[enumType]
	return values, ok
}

// IsSystemObject reports whether a slot name belongs to world
// infrastructure. Per-user slots ("User <name>") count as well.
func IsSystemObject(name string) bool {
	return systemObjects[name] || strings.HasPrefix(name, "User ")
}

// ShortNames returns every registered short component name, for
// listings and prompt construction.
func ShortNames() []string {
	names := make([]string, 0, len(components))
	for name := range components {
		names = append(names, name)
	}
	return names
}
