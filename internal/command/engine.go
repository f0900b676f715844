package command

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vibebuilder/internal/protocol"
	"vibebuilder/internal/session"
)

// Submitter is the protocol request path the engine drives. Satisfied by
// link.Client.
type Submitter interface {
	Call(ctx context.Context, req protocol.Request) (*protocol.Response, error)
}

// Engine executes command batches strictly in order. Later commands may
// reference placeholders declared by earlier ones; a command whose
// dependency failed is skipped without being sent, while independent
// commands keep executing.
type Engine struct {
	sub           Submitter
	alloc         *session.Allocator
	refs          *session.RefMap
	defaultParent string
	log           *zap.Logger
}

// NewEngine creates an engine executing against sub, binding placeholders
// in refs. defaultParent is used for CreateObject commands with no parent;
// empty selects the world root.
func NewEngine(sub Submitter, alloc *session.Allocator, refs *session.RefMap, defaultParent string, log *zap.Logger) *Engine {
	if defaultParent == "" {
		defaultParent = protocol.RootSlotID
	}
	return &Engine{
		sub:           sub,
		alloc:         alloc,
		refs:          refs,
		defaultParent: defaultParent,
		log:           log,
	}
}

// Refs exposes the engine's placeholder namespace.
func (e *Engine) Refs() *session.RefMap { return e.refs }

// Execute runs the batch and reports a per-command outcome. One bad
// command does not abort the batch, but its dependents are skipped rather
// than sent with garbage references.
func (e *Engine) Execute(ctx context.Context, batch []Command) BatchResult {
	results := make(BatchResult, 0, len(batch))
	failed := make(map[string]bool)

	for i, cmd := range batch {
		res := Result{Index: i, Command: cmd, Status: StatusApplied}

		if dep := firstFailedDependency(cmd, failed); dep != "" {
			res.Status = StatusSkipped
			res.Err = fmt.Errorf("dependency %s failed", dep)
			e.log.Warn("skipping command", zap.Int("index", i), zap.String("dependency", dep))
			markFailed(cmd, failed)
			results = append(results, res)
			continue
		}

		boundID, data, err := e.run(ctx, cmd)
		if err != nil {
			res.Status = StatusFailed
			res.Err = err
			markFailed(cmd, failed)
			e.log.Warn("command failed", zap.Int("index", i), zap.Error(err))
		} else {
			res.BoundID = boundID
			res.Data = data
		}
		results = append(results, res)
	}

	return results
}

func (e *Engine) run(ctx context.Context, cmd Command) (boundID string, data []byte, err error) {
	switch c := cmd.(type) {
	case CreateObject:
		return e.runCreateObject(ctx, c)
	case AttachComponent:
		return e.runAttachComponent(ctx, c)
	case SetField:
		return "", nil, e.runSetField(ctx, c)
	case QueryComponent:
		return e.runQueryComponent(ctx, c)
	case LinkListElement:
		return "", nil, e.runLinkListElement(ctx, c)
	default:
		return "", nil, fmt.Errorf("unknown command %T", cmd)
	}
}

func (e *Engine) runCreateObject(ctx context.Context, c CreateObject) (string, []byte, error) {
	parent := c.Parent
	if parent == "" {
		parent = e.defaultParent
	}
	parentID, err := e.refs.Resolve(parent)
	if err != nil {
		return "", nil, err
	}

	slotID := e.alloc.Next()
	resp, err := e.sub.Call(ctx, protocol.AddSlot{Data: protocol.SlotData{
		ID:       slotID,
		Parent:   &protocol.Reference{TargetID: parentID},
		Name:     &protocol.String{Value: c.Name},
		Position: c.Position,
		Rotation: c.Rotation,
		Scale:    c.Scale,
	}})
	if err != nil {
		return "", nil, fmt.Errorf("create %q: %w", c.Name, err)
	}

	// The server may assign its own identifier; prefer it over ours.
	boundID := slotID
	if info, err := protocol.SlotInfoFrom(resp); err == nil && info != nil && info.ID != "" {
		boundID = info.ID
	}
	if c.Placeholder != "" {
		e.refs.Bind(c.Placeholder, boundID)
	}
	return boundID, nil, nil
}

func (e *Engine) runAttachComponent(ctx context.Context, c AttachComponent) (string, []byte, error) {
	targetID, err := e.refs.Resolve(c.Target)
	if err != nil {
		return "", nil, err
	}
	members, err := e.refs.ResolveMembers(c.Members)
	if err != nil {
		return "", nil, err
	}

	compID := e.alloc.Next()
	resp, err := e.sub.Call(ctx, protocol.AddComponent{
		ContainerSlotID: targetID,
		Data: protocol.ComponentData{
			ID:            compID,
			ComponentType: c.Type,
			Members:       members,
		},
	})
	if err != nil {
		return "", nil, fmt.Errorf("attach %s: %w", c.Type, err)
	}

	boundID := compID
	if info, err := protocol.ComponentInfoFrom(resp); err == nil && info != nil && info.ID != "" {
		boundID = info.ID
	}
	if c.Placeholder != "" {
		e.refs.Bind(c.Placeholder, boundID)
	}
	return boundID, nil, nil
}

func (e *Engine) runSetField(ctx context.Context, c SetField) error {
	targetID, err := e.refs.Resolve(c.Target)
	if err != nil {
		return err
	}
	value, err := e.refs.ResolveValue(c.Value)
	if err != nil {
		return err
	}

	_, err = e.sub.Call(ctx, protocol.UpdateComponent{Data: protocol.ComponentUpdate{
		ID:      targetID,
		Members: map[string]protocol.Value{c.Field: value},
	}})
	if err != nil {
		return fmt.Errorf("set %s: %w", c.Field, err)
	}
	return nil
}

func (e *Engine) runQueryComponent(ctx context.Context, c QueryComponent) (string, []byte, error) {
	targetID, err := e.refs.Resolve(c.Target)
	if err != nil {
		return "", nil, err
	}
	resp, err := e.sub.Call(ctx, protocol.GetComponent{ComponentID: targetID})
	if err != nil {
		return "", nil, fmt.Errorf("query %s: %w", targetID, err)
	}
	return "", resp.Data, nil
}

// runLinkListElement performs the two-step list-attachment protocol:
// append an empty element, query the component for the element's real id,
// then link the element to its target. The remote application offers no
// single create-and-link request.
func (e *Engine) runLinkListElement(ctx context.Context, c LinkListElement) error {
	targetID, err := e.refs.Resolve(c.Target)
	if err != nil {
		return err
	}
	elementID, err := e.refs.Resolve(c.Element)
	if err != nil {
		return err
	}

	// Step 1: append an empty placeholder element to the list field.
	_, err = e.sub.Call(ctx, protocol.UpdateComponent{Data: protocol.ComponentUpdate{
		ID: targetID,
		Members: map[string]protocol.Value{
			c.Field: protocol.List{Elements: []protocol.Value{protocol.Reference{}}},
		},
	}})
	if err != nil {
		return fmt.Errorf("append %s element: %w", c.Field, err)
	}

	// Step 2: the append reply does not carry the new element's id, so
	// query the component to discover it.
	resp, err := e.sub.Call(ctx, protocol.GetComponent{ComponentID: targetID})
	if err != nil {
		return fmt.Errorf("read back %s: %w", c.Field, err)
	}
	info, err := protocol.ComponentInfoFrom(resp)
	if err != nil {
		return err
	}
	ids, err := info.ListElementIDs(c.Field)
	if err != nil {
		return err
	}
	if len(ids) == 0 || ids[len(ids)-1] == "" {
		return fmt.Errorf("%s has no addressable element after append", c.Field)
	}

	// Link through the discovered element id.
	_, err = e.sub.Call(ctx, protocol.UpdateComponent{Data: protocol.ComponentUpdate{
		ID: targetID,
		Members: map[string]protocol.Value{
			c.Field: protocol.List{Elements: []protocol.Value{
				protocol.Reference{ID: ids[len(ids)-1], TargetID: elementID},
			}},
		},
	}})
	if err != nil {
		return fmt.Errorf("link %s element: %w", c.Field, err)
	}
	return nil
}

// firstFailedDependency returns the first placeholder referenced by cmd
// whose declaring command already failed, or "".
func firstFailedDependency(cmd Command, failed map[string]bool) string {
	for _, ref := range referencedPlaceholders(cmd) {
		if failed[ref] {
			return ref
		}
	}
	return ""
}

// markFailed records the placeholders cmd would have declared, so that
// dependents are skipped instead of executed with garbage references.
func markFailed(cmd Command, failed map[string]bool) {
	switch c := cmd.(type) {
	case CreateObject:
		if c.Placeholder != "" {
			failed[c.Placeholder] = true
		}
	case AttachComponent:
		if c.Placeholder != "" {
			failed[c.Placeholder] = true
		}
	}
}

func referencedPlaceholders(cmd Command) []string {
	var refs []string
	add := func(s string) {
		if session.IsPlaceholder(s) {
			refs = append(refs, s)
		}
	}
	switch c := cmd.(type) {
	case CreateObject:
		add(c.Parent)
	case AttachComponent:
		add(c.Target)
		for _, v := range c.Members {
			collectValueRefs(v, add)
		}
	case SetField:
		add(c.Target)
		collectValueRefs(c.Value, add)
	case QueryComponent:
		add(c.Target)
	case LinkListElement:
		add(c.Target)
		add(c.Element)
	}
	return refs
}

func collectValueRefs(v protocol.Value, add func(string)) {
	switch val := v.(type) {
	case protocol.Reference:
		if val.TargetID != "" {
			add(val.TargetID)
		}
	case protocol.List:
		for _, el := range val.Elements {
			collectValueRefs(el, add)
		}
	}
}
