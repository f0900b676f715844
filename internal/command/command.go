// Package command defines the abstract build commands produced by the
// generation layer and the engine that executes them against a
// ResoniteLink server.
package command

import "vibebuilder/internal/protocol"

// Command is one abstract build step. The set of variants is closed.
type Command interface {
	kind() string
}

// CreateObject creates a slot. Placeholder names the new slot for later
// commands in the same batch; Parent is a placeholder or a real slot id.
type CreateObject struct {
	Placeholder string
	Parent      string
	Name        string
	Position    *protocol.Float3
	Rotation    *protocol.FloatQ
	Scale       *protocol.Float3
}

// AttachComponent attaches a component of the given type to Target.
// Placeholder, when set, names the new component for later commands.
type AttachComponent struct {
	Placeholder string
	Target      string
	Type        string
	Members     map[string]protocol.Value
}

// SetField sets one member of the component referenced by Target.
type SetField struct {
	Target string
	Field  string
	Value  protocol.Value
}

// QueryComponent reads the component referenced by Target. The fetched
// payload is attached to the command's Result.
type QueryComponent struct {
	Target string
}

// LinkListElement links Element into the list-typed Field of Target. The
// remote application has no create-and-link request, so the engine appends
// an empty element, queries the component to discover the element's real
// id, and links through it; the three requests form one logical outcome.
type LinkListElement struct {
	Target  string
	Field   string
	Element string
}

func (CreateObject) kind() string    { return "createObject" }
func (AttachComponent) kind() string { return "attachComponent" }
func (SetField) kind() string        { return "setField" }
func (QueryComponent) kind() string  { return "queryComponent" }
func (LinkListElement) kind() string { return "linkListElement" }
