package templates

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vibebuilder/internal/command"
	"vibebuilder/internal/protocol"
)

func TestBuiltinsValid(t *testing.T) {
	for _, tpl := range builtins {
		assert.NoError(t, tpl.Validate(), tpl.Name)
	}
}

func TestExpandMeshObject(t *testing.T) {
	tpl := &Template{
		Name:        "crate",
		Description: "a single box",
		Objects: []Object{
			{Name: "Crate", Mesh: "box", Position: [3]float64{1, 0.5, 0}, Scale: f3(1, 1, 1), Color: f3(0.6, 0.4, 0.2)},
		},
	}
	cmds, err := tpl.Expand("$PARENT")
	require.NoError(t, err)

	// slot, mesh, material, renderer, materials link, collider
	require.Len(t, cmds, 6)

	create := cmds[0].(command.CreateObject)
	assert.Equal(t, "$TPL_0", create.Placeholder)
	assert.Equal(t, "$PARENT", create.Parent)
	assert.Equal(t, "Crate", create.Name)

	mesh := cmds[1].(command.AttachComponent)
	assert.Equal(t, "[FrooxEngine]FrooxEngine.BoxMesh", mesh.Type)
	assert.Equal(t, "$TPL_0", mesh.Target)

	material := cmds[2].(command.AttachComponent)
	assert.Equal(t, "[FrooxEngine]FrooxEngine.PBS_Metallic", material.Type)
	color := material.Members["AlbedoColor"].(protocol.ColorX)
	assert.Equal(t, 0.6, color.R)
	assert.Equal(t, 1.0, color.A)

	renderer := cmds[3].(command.AttachComponent)
	assert.Equal(t, "[FrooxEngine]FrooxEngine.MeshRenderer", renderer.Type)
	meshRef := renderer.Members["Mesh"].(protocol.Reference)
	assert.Equal(t, "$TPL_0_MESH", meshRef.TargetID)

	link := cmds[4].(command.LinkListElement)
	assert.Equal(t, "$TPL_0_REND", link.Target)
	assert.Equal(t, "Materials", link.Field)
	assert.Equal(t, "$TPL_0_MAT", link.Element)

	collider := cmds[5].(command.AttachComponent)
	assert.Equal(t, "[FrooxEngine]FrooxEngine.BoxCollider", collider.Type)
}

func TestExpandLightObject(t *testing.T) {
	tpl := &Template{
		Name: "glow",
		Objects: []Object{
			{Name: "Glow", Type: "light", Position: [3]float64{0, 2, 0}, LightType: "Point", Color: f3(1, 1, 1), Intensity: 2, Range: 5},
		},
	}
	cmds, err := tpl.Expand("")
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	light := cmds[1].(command.AttachComponent)
	assert.Equal(t, "[FrooxEngine]FrooxEngine.Light", light.Type)
	assert.Equal(t, protocol.Enum{Value: "Point", EnumType: "LightType"}, light.Members["LightType"])
	assert.Equal(t, protocol.Float{Value: 2}, light.Members["Intensity"])
}

func TestExpandRejectsUnknownMesh(t *testing.T) {
	tpl := &Template{
		Name:    "bad",
		Objects: []Object{{Name: "X", Mesh: "dodecahedron"}},
	}
	_, err := tpl.Expand("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dodecahedron")
}

func TestEulerToQuatIdentity(t *testing.T) {
	q := eulerToQuat([3]float64{0, 0, 0})
	assert.InDelta(t, 0, q.X, 1e-12)
	assert.InDelta(t, 0, q.Y, 1e-12)
	assert.InDelta(t, 0, q.Z, 1e-12)
	assert.InDelta(t, 1, q.W, 1e-12)
}

func TestEulerToQuatQuarterTurn(t *testing.T) {
	q := eulerToQuat([3]float64{90, 0, 0})
	assert.InDelta(t, 0.7071, q.X, 1e-3)
	assert.InDelta(t, 0.7071, q.W, 1e-3)
}

func TestRegistryGetNormalizesName(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	tpl, ok := r.Get("Table With Chairs")
	require.True(t, ok)
	assert.Equal(t, "table_with_chairs", tpl.Name)

	_, ok = r.Get("no-such-template")
	assert.False(t, ok)
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry(zap.NewNop())
	infos := r.List()
	require.Len(t, infos, len(builtins))
	for i := 1; i < len(infos); i++ {
		assert.Less(t, infos[i-1].Name, infos[i].Name, "sorted by name")
	}
}

func TestRegistryLoadDir(t *testing.T) {
	dir := t.TempDir()
	content := `
name: pillar
description: a stone pillar
objects:
  - name: Pillar
    mesh: cylinder
    position: [0, 1, 0]
    scale: [0.3, 2, 0.3]
    color: [0.5, 0.5, 0.5]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pillar.yaml"), []byte(content), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	r := NewRegistry(zap.NewNop())
	require.NoError(t, r.LoadDir(context.Background(), dir))

	tpl, ok := r.Get("pillar")
	require.True(t, ok)
	assert.Equal(t, "a stone pillar", tpl.Description)
	require.Len(t, tpl.Objects, 1)
	assert.Equal(t, "cylinder", tpl.Objects[0].Mesh)
}

func TestRegistryLoadDirRejectsBadTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.yaml"), []byte("name: empty\nobjects: []\n"), 0o644))

	r := NewRegistry(zap.NewNop())
	assert.Error(t, r.LoadDir(context.Background(), dir))
}

func TestRegistryDirShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	content := `
name: lamp
description: a replacement lamp
objects:
  - name: Bulb
    mesh: sphere
    position: [0, 1, 0]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lamp.yaml"), []byte(content), 0o644))

	r := NewRegistry(zap.NewNop())
	require.NoError(t, r.LoadDir(context.Background(), dir))

	tpl, ok := r.Get("lamp")
	require.True(t, ok)
	assert.Equal(t, "a replacement lamp", tpl.Description)
}
