package protocol

import (
	"encoding/json"
	"fmt"
)

// RootSlotID is the world root, always valid as a parent.
const RootSlotID = "Root"

// Request is one client-to-server operation. Implementations marshal to
// their body fields; EncodeRequest wraps the body with the $type
// discriminator and the correlation id.
type Request interface {
	MessageType() string
}

// SlotData carries the fields of a slot for creation and update. ID is the
// client-chosen slot identifier; all other fields are optional on update.
type SlotData struct {
	ID       string     `json:"id"`
	Parent   *Reference `json:"parent,omitempty"`
	Name     *String    `json:"name,omitempty"`
	Position *Float3    `json:"position,omitempty"`
	Rotation *FloatQ    `json:"rotation,omitempty"`
	Scale    *Float3    `json:"scale,omitempty"`
}

// AddSlot creates a new slot in the scene hierarchy.
type AddSlot struct {
	Data SlotData `json:"data"`
}

// UpdateSlot changes fields of an existing slot, including its parent.
type UpdateSlot struct {
	Data SlotData `json:"data"`
}

// ComponentData carries a component for attachment.
type ComponentData struct {
	ID            string           `json:"id,omitempty"`
	ComponentType string           `json:"componentType"`
	Members       map[string]Value `json:"members,omitempty"`
}

// AddComponent attaches a component to a slot.
type AddComponent struct {
	ContainerSlotID string        `json:"containerSlotId"`
	Data            ComponentData `json:"data"`
}

// ComponentUpdate carries member updates for an existing component.
type ComponentUpdate struct {
	ID      string           `json:"id"`
	Members map[string]Value `json:"members"`
}

// UpdateComponent sets member values on an existing component.
type UpdateComponent struct {
	Data ComponentUpdate `json:"data"`
}

// GetComponent reads a component's current member values.
type GetComponent struct {
	ComponentID string `json:"componentId"`
}

// GetSlot reads a slot, optionally with children and component data.
type GetSlot struct {
	SlotID               string `json:"slotId"`
	Depth                int    `json:"depth"`
	IncludeComponentData bool   `json:"includeComponentData"`
}

// DeleteSlot removes a slot and its subtree.
type DeleteSlot struct {
	SlotID string `json:"slotId"`
}

// FindSlot searches for a slot by name under a parent.
type FindSlot struct {
	ParentSlotID string `json:"parentSlotId"`
	Name         string `json:"name"`
}

// GetUsers lists the users present in the session.
type GetUsers struct{}

func (AddSlot) MessageType() string         { return "addSlot" }
func (UpdateSlot) MessageType() string      { return "updateSlot" }
func (AddComponent) MessageType() string    { return "addComponent" }
func (UpdateComponent) MessageType() string { return "updateComponent" }
func (GetComponent) MessageType() string    { return "getComponent" }
func (GetSlot) MessageType() string         { return "getSlot" }
func (DeleteSlot) MessageType() string      { return "deleteSlot" }
func (FindSlot) MessageType() string        { return "findSlot" }
func (GetUsers) MessageType() string        { return "getUsers" }

// EncodeRequest serializes a request with its correlation id attached.
func EncodeRequest(id int64, req Request) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal %s body: %w", req.MessageType(), err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("reshape %s body: %w", req.MessageType(), err)
	}
	fields["$type"], _ = json.Marshal(req.MessageType())
	fields["id"], _ = json.Marshal(id)

	return json.Marshal(fields)
}

// Response is one server-to-client reply, matched to its request by id.
type Response struct {
	ID        int64           `json:"id"`
	Success   bool            `json:"success"`
	ErrorCode string          `json:"errorCode,omitempty"`
	ErrorInfo string          `json:"errorInfo,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Users     []UserInfo      `json:"users,omitempty"`
}

// UserInfo describes one session user in a getUsers response.
type UserInfo struct {
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	IsLocal        bool   `json:"isLocal"`
	IsHost         bool   `json:"isHost"`
	UserRootSlotID string `json:"userRootSlotId"`
}

// DecodeResponse parses one inbound frame.
func DecodeResponse(raw []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

// SlotInfo is the data payload of addSlot, getSlot and findSlot responses.
type SlotInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId"`
}

// SlotInfoFrom decodes a slot payload, tolerating an absent one.
func SlotInfoFrom(resp *Response) (*SlotInfo, error) {
	if len(resp.Data) == 0 {
		return nil, nil
	}
	var info SlotInfo
	if err := json.Unmarshal(resp.Data, &info); err != nil {
		return nil, fmt.Errorf("decode slot payload: %w", err)
	}
	return &info, nil
}

// ComponentInfo is the data payload of addComponent and getComponent
// responses. Members stay raw so callers only decode the fields they need.
type ComponentInfo struct {
	ID            string                     `json:"id"`
	ComponentType string                     `json:"componentType"`
	Members       map[string]json.RawMessage `json:"members"`
}

// ComponentInfoFrom decodes a component payload, tolerating an absent one.
func ComponentInfoFrom(resp *Response) (*ComponentInfo, error) {
	if len(resp.Data) == 0 {
		return nil, nil
	}
	var info ComponentInfo
	if err := json.Unmarshal(resp.Data, &info); err != nil {
		return nil, fmt.Errorf("decode component payload: %w", err)
	}
	return &info, nil
}

// ListElementIDs extracts the element ids of a list-typed member, in order.
// This is how the client discovers the server-assigned id of a list element
// it appended, since the append reply does not carry it.
func (c *ComponentInfo) ListElementIDs(member string) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("component payload missing")
	}
	raw, ok := c.Members[member]
	if !ok {
		return nil, fmt.Errorf("component has no member %q", member)
	}
	value, err := DecodeValue(raw)
	if err != nil {
		return nil, fmt.Errorf("member %q: %w", member, err)
	}
	list, ok := value.(List)
	if !ok {
		return nil, fmt.Errorf("member %q is %T, not a list", member, value)
	}
	ids := make([]string, 0, len(list.Elements))
	for i, el := range list.Elements {
		ref, ok := el.(Reference)
		if !ok {
			return nil, fmt.Errorf("member %q element %d is %T, not a reference", member, i, el)
		}
		ids = append(ids, ref.ID)
	}
	return ids, nil
}
