package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"vibebuilder/internal/protocol"
	"vibebuilder/internal/session"
)

// fakeServer is an in-memory Submitter recording every request. By default
// it acknowledges everything, echoing creation ids the way the real server
// does.
type fakeServer struct {
	calls   []protocol.Request
	respond func(req protocol.Request) (*protocol.Response, error)
}

func (f *fakeServer) Call(_ context.Context, req protocol.Request) (*protocol.Response, error) {
	f.calls = append(f.calls, req)
	if f.respond != nil {
		return f.respond(req)
	}
	return okResponse(req), nil
}

func okResponse(req protocol.Request) *protocol.Response {
	resp := &protocol.Response{Success: true}
	switch r := req.(type) {
	case protocol.AddSlot:
		resp.Data = json.RawMessage(fmt.Sprintf(`{"id":%q}`, r.Data.ID))
	case protocol.AddComponent:
		resp.Data = json.RawMessage(fmt.Sprintf(`{"id":%q}`, r.Data.ID))
	}
	return resp
}

func newTestEngine(t *testing.T, sub Submitter) *Engine {
	t.Helper()
	alloc := session.NewAllocator()
	return NewEngine(sub, alloc, session.NewRefMap(alloc), "", zaptest.NewLogger(t))
}

func TestExecuteSimpleBatch(t *testing.T) {
	srv := &fakeServer{}
	engine := newTestEngine(t, srv)

	results := engine.Execute(context.Background(), []Command{
		CreateObject{Placeholder: "$root", Parent: protocol.RootSlotID, Name: "Box1"},
		AttachComponent{Target: "$root", Type: "[FrooxEngine]FrooxEngine.BoxMesh"},
	})

	require.Len(t, results, 2)
	assert.Equal(t, StatusApplied, results[0].Status)
	assert.Equal(t, StatusApplied, results[1].Status)
	assert.True(t, results.AllApplied())

	// The placeholder must resolve to the id the server acknowledged.
	rootID, err := engine.Refs().Resolve("$root")
	require.NoError(t, err)
	assert.Equal(t, results[0].BoundID, rootID)

	// The component must have been attached to the resolved slot.
	attach := srv.calls[1].(protocol.AddComponent)
	assert.Equal(t, rootID, attach.ContainerSlotID)
}

func TestExecuteOrderedDeclarationsNeverUnresolved(t *testing.T) {
	engine := newTestEngine(t, &fakeServer{})

	results := engine.Execute(context.Background(), []Command{
		CreateObject{Placeholder: "$table", Parent: protocol.RootSlotID, Name: "Table"},
		CreateObject{Placeholder: "$leg1", Parent: "$table", Name: "Leg1"},
		AttachComponent{Placeholder: "$mesh", Target: "$leg1", Type: "[FrooxEngine]FrooxEngine.BoxMesh"},
		SetField{Target: "$mesh", Field: "Size", Value: protocol.Float3{X: 1, Y: 1, Z: 1}},
	})

	for _, res := range results {
		assert.Equal(t, StatusApplied, res.Status, "command %d", res.Index)
		var unresolved *session.UnresolvedError
		assert.False(t, errors.As(res.Err, &unresolved))
	}
}

func TestExecuteUndeclaredPlaceholder(t *testing.T) {
	engine := newTestEngine(t, &fakeServer{})

	results := engine.Execute(context.Background(), []Command{
		// References a placeholder no earlier command declared.
		AttachComponent{Placeholder: "$mesh", Target: "$ghost", Type: "[FrooxEngine]FrooxEngine.BoxMesh"},
		// Depends on the failed command above.
		SetField{Target: "$mesh", Field: "Size", Value: protocol.Float3{X: 1, Y: 1, Z: 1}},
		// Independent; must still execute.
		CreateObject{Placeholder: "$box", Parent: protocol.RootSlotID, Name: "Box"},
	})

	require.Len(t, results, 3)

	assert.Equal(t, StatusFailed, results[0].Status)
	var unresolved *session.UnresolvedError
	require.True(t, errors.As(results[0].Err, &unresolved))
	assert.Equal(t, "$ghost", unresolved.Placeholder)

	assert.Equal(t, StatusSkipped, results[1].Status)
	assert.Equal(t, StatusApplied, results[2].Status)
}

func TestExecuteSkipsTransitiveDependents(t *testing.T) {
	failFirst := true
	srv := &fakeServer{}
	srv.respond = func(req protocol.Request) (*protocol.Response, error) {
		if _, ok := req.(protocol.AddSlot); ok && failFirst {
			failFirst = false
			return &protocol.Response{Success: false, ErrorInfo: "denied"},
				errors.New("remote rejected: denied")
		}
		return okResponse(req), nil
	}
	engine := newTestEngine(t, srv)

	results := engine.Execute(context.Background(), []Command{
		CreateObject{Placeholder: "$wall", Parent: protocol.RootSlotID, Name: "Wall"},
		AttachComponent{Placeholder: "$mesh", Target: "$wall", Type: "[FrooxEngine]FrooxEngine.BoxMesh"},
		SetField{Target: "$mesh", Field: "Size", Value: protocol.Float3{X: 4, Y: 3, Z: 0.1}},
		CreateObject{Placeholder: "$floor", Parent: protocol.RootSlotID, Name: "Floor"},
	})

	assert.Equal(t, StatusFailed, results[0].Status)
	assert.Equal(t, StatusSkipped, results[1].Status, "depends on failed $wall")
	assert.Equal(t, StatusSkipped, results[2].Status, "depends on skipped $mesh")
	assert.Equal(t, StatusApplied, results[3].Status, "independent of the failure")
}

func TestLinkListElementProtocol(t *testing.T) {
	srv := &fakeServer{}
	srv.respond = func(req protocol.Request) (*protocol.Response, error) {
		if _, ok := req.(protocol.GetComponent); ok {
			return &protocol.Response{
				Success: true,
				Data: json.RawMessage(`{
					"id": "renderer0",
					"members": {"Materials": {"$type":"list","elements":[{"$type":"reference","id":"elem0"}]}}
				}`),
			}, nil
		}
		return okResponse(req), nil
	}
	engine := newTestEngine(t, srv)

	results := engine.Execute(context.Background(), []Command{
		CreateObject{Placeholder: "$slot", Parent: protocol.RootSlotID, Name: "Box"},
		AttachComponent{Placeholder: "$mat", Target: "$slot", Type: "[FrooxEngine]FrooxEngine.PBS_Metallic"},
		AttachComponent{Placeholder: "$renderer", Target: "$slot", Type: "[FrooxEngine]FrooxEngine.MeshRenderer"},
		LinkListElement{Target: "$renderer", Field: "Materials", Element: "$mat"},
	})

	require.True(t, results.AllApplied(), results.Summary())

	// Slot + 2 components + (append, query, link) for the list element.
	require.Len(t, srv.calls, 6)

	appendReq := srv.calls[3].(protocol.UpdateComponent)
	appended := appendReq.Data.Members["Materials"].(protocol.List)
	require.Len(t, appended.Elements, 1)
	assert.Equal(t, protocol.Reference{}, appended.Elements[0], "step 1 appends an empty element")

	_, isQuery := srv.calls[4].(protocol.GetComponent)
	assert.True(t, isQuery, "step 2 queries the component for the element id")

	linkReq := srv.calls[5].(protocol.UpdateComponent)
	linked := linkReq.Data.Members["Materials"].(protocol.List)
	ref := linked.Elements[0].(protocol.Reference)
	assert.Equal(t, "elem0", ref.ID)
	matID, _ := engine.Refs().Resolve("$mat")
	assert.Equal(t, matID, ref.TargetID)
}

func TestQueryComponentReturnsData(t *testing.T) {
	payload := json.RawMessage(`{"id":"comp0","members":{}}`)
	srv := &fakeServer{}
	srv.respond = func(req protocol.Request) (*protocol.Response, error) {
		if _, ok := req.(protocol.GetComponent); ok {
			return &protocol.Response{Success: true, Data: payload}, nil
		}
		return okResponse(req), nil
	}
	engine := newTestEngine(t, srv)

	results := engine.Execute(context.Background(), []Command{
		AttachComponent{Placeholder: "$comp", Target: protocol.RootSlotID, Type: "[FrooxEngine]FrooxEngine.Comment"},
		QueryComponent{Target: "$comp"},
	})
	require.True(t, results.AllApplied(), results.Summary())
	assert.JSONEq(t, string(payload), string(results[1].Data))
}
