package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentType(t *testing.T) {
	full, ok := ComponentType("box")
	assert.True(t, ok)
	assert.Equal(t, "[FrooxEngine]FrooxEngine.BoxMesh", full)

	full, ok = ComponentType("MATERIAL")
	assert.True(t, ok)
	assert.Equal(t, "[FrooxEngine]FrooxEngine.PBS_Metallic", full, "case insensitive")

	_, ok = ComponentType("teapot")
	assert.False(t, ok)
}

func TestColliderForMesh(t *testing.T) {
	assert.Equal(t, "box_collider", ColliderForMesh("box"))
	assert.Equal(t, "box_collider", ColliderForMesh("bevel_box"))
	assert.Equal(t, "cylinder_collider", ColliderForMesh("cylinder"))
	assert.Equal(t, "mesh_collider", ColliderForMesh("torus"), "irregular shapes fall back")
	assert.Equal(t, "mesh_collider", ColliderForMesh("unknown"))
}

func TestFieldName(t *testing.T) {
	assert.Equal(t, "AlbedoColor", FieldName("material", "color"))
	assert.Equal(t, "_speed", FieldName("spinner", "speed"))
	assert.Equal(t, "CustomField", FieldName("material", "CustomField"), "unknown alias passes through")
	assert.Equal(t, "anything", FieldName("nosuch", "anything"))
}

func TestIsSystemObject(t *testing.T) {
	assert.True(t, IsSystemObject("Controllers"))
	assert.True(t, IsSystemObject("Skybox"))
	assert.True(t, IsSystemObject("User Alice"))
	assert.False(t, IsSystemObject("MyHouse"))
	assert.False(t, IsSystemObject("Userdata"), "only the 'User ' prefix is protected")
}

func TestEnumValues(t *testing.T) {
	values, ok := EnumValues("LightType")
	assert.True(t, ok)
	assert.Equal(t, []string{"Directional", "Point", "Spot"}, values)

	_, ok = EnumValues("NoSuchEnum")
	assert.False(t, ok)
}
