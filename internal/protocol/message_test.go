package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRequestAddSlot(t *testing.T) {
	req := AddSlot{Data: SlotData{
		ID:       "Vibe_1_0",
		Parent:   &Reference{TargetID: "Root"},
		Name:     &String{Value: "Box1"},
		Position: &Float3{X: 0, Y: 1.5, Z: 2},
	}}

	raw, err := EncodeRequest(7, req)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.JSONEq(t, `"addSlot"`, string(decoded["$type"]))
	assert.JSONEq(t, `7`, string(decoded["id"]))

	var data map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(decoded["data"], &data))
	assert.JSONEq(t, `"Vibe_1_0"`, string(data["id"]))
	assert.JSONEq(t, `{"$type":"reference","targetId":"Root"}`, string(data["parent"]))
	assert.JSONEq(t, `{"$type":"string","value":"Box1"}`, string(data["name"]))
	assert.JSONEq(t, `{"$type":"float3","value":{"x":0,"y":1.5,"z":2}}`, string(data["position"]))
	_, hasScale := data["scale"]
	assert.False(t, hasScale, "omitted scale should not be serialized")
}

func TestEncodeRequestGetUsers(t *testing.T) {
	raw, err := EncodeRequest(3, GetUsers{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"$type":"getUsers","id":3}`, string(raw))
}

func TestDecodeResponseError(t *testing.T) {
	resp, err := DecodeResponse([]byte(`{"id":4,"success":false,"errorCode":"schema","errorInfo":"bad member"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(4), resp.ID)
	assert.False(t, resp.Success)
	assert.Equal(t, "schema", resp.ErrorCode)
	assert.Equal(t, "bad member", resp.ErrorInfo)
}

func TestListElementIDs(t *testing.T) {
	resp := &Response{
		Success: true,
		Data: json.RawMessage(`{
			"id": "renderer0",
			"componentType": "[FrooxEngine]FrooxEngine.MeshRenderer",
			"members": {
				"Materials": {"$type":"list","elements":[{"$type":"reference","id":"elem0"}]}
			}
		}`),
	}
	info, err := ComponentInfoFrom(resp)
	require.NoError(t, err)

	ids, err := info.ListElementIDs("Materials")
	require.NoError(t, err)
	assert.Equal(t, []string{"elem0"}, ids)

	_, err = info.ListElementIDs("Mesh")
	assert.Error(t, err)
}
