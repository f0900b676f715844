package protocol

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		value Value
	}{
		{"float", Float{Value: 1.5}},
		{"int", Int{Value: -42}},
		{"bool", Bool{Value: true}},
		{"string", String{Value: "BoxMesh"}},
		{"float2", Float2{X: 0.5, Y: 1}},
		{"float3", Float3{X: 1, Y: 2.5, Z: -3}},
		{"floatQ", FloatQ{X: 0, Y: 0.707, Z: 0, W: 0.707}},
		{"colorX", ColorX{R: 0.95, G: 0.93, B: 0.88, A: 1, Profile: "sRGB"}},
		{"enum", Enum{Value: "Point", EnumType: "LightType"}},
		{"reference", Reference{TargetID: "Vibe_1_0"}},
		{"reference with element id", Reference{ID: "elem0", TargetID: "Vibe_1_1"}},
		{"empty reference", Reference{}},
		{"list", List{Elements: []Value{Reference{TargetID: "Vibe_1_2"}, Float{Value: 3}}}},
		{"empty list", List{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.value)
			require.NoError(t, err)

			decoded, err := DecodeValue(raw)
			require.NoError(t, err)

			want := tc.value
			if l, ok := want.(List); ok && l.Elements == nil {
				// marshaling normalizes a nil element slice to empty
				want = List{Elements: []Value{}}
			}
			if c, ok := want.(ColorX); ok && c.Profile == "" {
				c.Profile = "sRGB"
				want = c
			}
			if diff := cmp.Diff(want, decoded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeValueRejectsUnknownType(t *testing.T) {
	_, err := DecodeValue(json.RawMessage(`{"$type":"double4","value":1}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "double4")
}

func TestDecodeValueRejectsMissingType(t *testing.T) {
	_, err := DecodeValue(json.RawMessage(`{"value":1}`))
	require.Error(t, err)
}

func TestColorXDefaultsProfile(t *testing.T) {
	raw, err := json.Marshal(ColorX{R: 1, A: 1})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"profile":"sRGB"`)
}

func TestReferenceWireShape(t *testing.T) {
	raw, err := json.Marshal(Reference{TargetID: "Root"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"$type":"reference","targetId":"Root"}`, string(raw))

	raw, err = json.Marshal(Reference{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"$type":"reference"}`, string(raw))
}
