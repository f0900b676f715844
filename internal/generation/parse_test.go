package generation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vibebuilder/internal/command"
	"vibebuilder/internal/protocol"
)

func TestUnmarshalResponseStripsFences(t *testing.T) {
	var out map[string]string
	err := unmarshalResponse("```json\n{\"plan\":\"a box\"}\n```", &out)
	require.NoError(t, err)
	assert.Equal(t, "a box", out["plan"])
}

func TestUnmarshalResponseTrimsSurroundingProse(t *testing.T) {
	var out map[string]string
	err := unmarshalResponse("Here is the build:\n{\"plan\":\"a box\"}\nHope that helps!", &out)
	require.NoError(t, err)
	assert.Equal(t, "a box", out["plan"])
}

func TestUnmarshalResponseNoJSON(t *testing.T) {
	var out map[string]string
	err := unmarshalResponse("I can't build that.", &out)
	assert.Error(t, err)
}

func TestTrimToBalancedJSONRespectsStrings(t *testing.T) {
	got := trimToBalancedJSON(`{"a":"brace } in string","b":{"c":1}} trailing`)
	assert.Equal(t, `{"a":"brace } in string","b":{"c":1}}`, got)
}

func decodeRaw(t *testing.T, raw string, defaultParent string) []command.Command {
	t.Helper()
	var raws []rawCommand
	require.NoError(t, json.Unmarshal([]byte(raw), &raws))
	cmds, err := decodeBatch(raws, defaultParent)
	require.NoError(t, err)
	return cmds
}

func TestDecodeBatchAddSlot(t *testing.T) {
	cmds := decodeRaw(t, `[
		{"cmd":"addSlot","id":"$SLOT_0","name":"Box","position":[0,1.5,2],"scale":[1,1,1]}
	]`, "$PARENT")

	require.Len(t, cmds, 1)
	c := cmds[0].(command.CreateObject)
	assert.Equal(t, "$SLOT_0", c.Placeholder)
	assert.Equal(t, "$PARENT", c.Parent, "missing parent defaults")
	assert.Equal(t, "Box", c.Name)
	assert.Equal(t, &protocol.Float3{X: 0, Y: 1.5, Z: 2}, c.Position)
}

func TestDecodeBatchFoldsListAttachment(t *testing.T) {
	cmds := decodeRaw(t, `[
		{"cmd":"addSlot","id":"$SLOT_0","name":"Box"},
		{"cmd":"addComponent","slot":"$SLOT_0","id":"$MAT","type":"[FrooxEngine]FrooxEngine.PBS_Metallic"},
		{"cmd":"addComponent","slot":"$SLOT_0","id":"$RENDERER","type":"[FrooxEngine]FrooxEngine.MeshRenderer"},
		{"cmd":"updateComponent","id":"$RENDERER","members":{"Materials":{"$type":"list","elements":[{"$type":"reference"}]}}},
		{"cmd":"getComponent","id":"$RENDERER","purpose":"get_materials_element_id"},
		{"cmd":"setMaterialsElement","renderer":"$RENDERER","material":"$MAT"}
	]`, "")

	// addSlot + two addComponent + one LinkListElement; the empty-list
	// update and the purpose query are folded away.
	require.Len(t, cmds, 4)
	link := cmds[3].(command.LinkListElement)
	assert.Equal(t, "$RENDERER", link.Target)
	assert.Equal(t, "Materials", link.Field)
	assert.Equal(t, "$MAT", link.Element)
}

func TestDecodeBatchKeepsUnrelatedUpdates(t *testing.T) {
	cmds := decodeRaw(t, `[
		{"cmd":"updateComponent","id":"$MAT","members":{
			"AlbedoColor":{"$type":"colorX","value":{"r":1,"g":0,"b":0,"a":1,"profile":"sRGB"}},
			"Metallic":{"$type":"float","value":0.2}
		}}
	]`, "")

	require.Len(t, cmds, 2, "one SetField per member")
	first := cmds[0].(command.SetField)
	assert.Equal(t, "AlbedoColor", first.Field)
	second := cmds[1].(command.SetField)
	assert.Equal(t, "Metallic", second.Field)
}

func TestDecodeBatchRejectsUnknownCmd(t *testing.T) {
	var raws []rawCommand
	require.NoError(t, json.Unmarshal([]byte(`[{"cmd":"teleport","id":"$X"}]`), &raws))
	_, err := decodeBatch(raws, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teleport")
}

func TestSnapToGroundFloor(t *testing.T) {
	c := command.CreateObject{
		Name:     "Floor",
		Position: &protocol.Float3{X: 0, Y: 0, Z: 0},
		Scale:    &protocol.Float3{X: 4, Y: 0.1, Z: 4},
	}
	snapToGround(&c)
	assert.InDelta(t, 0.05, c.Position.Y, 1e-9, "floor bottom sits at Y=0")
}

func TestSnapToGroundIgnoresElevated(t *testing.T) {
	c := command.CreateObject{
		Name:     "UpperFloor",
		Position: &protocol.Float3{X: 0, Y: 3, Z: 0},
		Scale:    &protocol.Float3{X: 4, Y: 0.1, Z: 4},
	}
	snapToGround(&c)
	assert.Equal(t, 3.0, c.Position.Y)
}

func TestPlanValidate(t *testing.T) {
	valid := Plan{
		RootName:      "House",
		Substructures: []Substructure{{Name: "floor"}, {Name: "walls"}},
	}
	assert.NoError(t, valid.Validate())

	empty := Plan{RootName: "House"}
	assert.ErrorIs(t, empty.Validate(), ErrPlanning)

	dup := Plan{
		RootName:      "House",
		Substructures: []Substructure{{Name: "floor"}, {Name: "floor"}},
	}
	assert.ErrorIs(t, dup.Validate(), ErrPlanning)
}
