package session

import (
	"fmt"
	"strings"
	"sync"

	"vibebuilder/internal/protocol"
)

// UnresolvedError reports a reference to a placeholder that was never
// declared, or whose creation failed. It signals an out-of-order or broken
// command batch and is never retryable.
type UnresolvedError struct {
	Placeholder string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved placeholder %s", e.Placeholder)
}

// IsPlaceholder reports whether ref is a build-time placeholder rather
// than a real identifier. Placeholders are $-prefixed by convention.
func IsPlaceholder(ref string) bool {
	return strings.HasPrefix(ref, "$")
}

// RefMap binds placeholders to real identifiers within one placeholder
// namespace. Each substructure of a hierarchical build gets its own RefMap
// so placeholders never leak across substructures.
type RefMap struct {
	alloc *Allocator

	mu   sync.RWMutex
	refs map[string]string
}

// NewRefMap creates an empty reference map drawing identifiers from alloc.
func NewRefMap(alloc *Allocator) *RefMap {
	return &RefMap{
		alloc: alloc,
		refs:  make(map[string]string),
	}
}

// Declare allocates a fresh identifier and binds placeholder to it.
func (m *RefMap) Declare(placeholder string) string {
	id := m.alloc.Next()
	m.Bind(placeholder, id)
	return id
}

// Bind records placeholder as resolving to id, replacing any prior binding.
func (m *RefMap) Bind(placeholder, id string) {
	m.mu.Lock()
	m.refs[placeholder] = id
	m.mu.Unlock()
}

// Resolve maps ref to a real identifier. Non-placeholder values pass
// through unchanged; an unbound placeholder is a hard error.
func (m *RefMap) Resolve(ref string) (string, error) {
	if !IsPlaceholder(ref) {
		return ref, nil
	}
	m.mu.RLock()
	id, ok := m.refs[ref]
	m.mu.RUnlock()
	if !ok {
		return "", &UnresolvedError{Placeholder: ref}
	}
	return id, nil
}

// ResolveValue returns value with every placeholder reference replaced by
// its bound identifier, recursing into lists. Fails fast on the first
// unresolved placeholder.
func (m *RefMap) ResolveValue(value protocol.Value) (protocol.Value, error) {
	switch v := value.(type) {
	case protocol.Reference:
		if v.TargetID == "" {
			return v, nil
		}
		id, err := m.Resolve(v.TargetID)
		if err != nil {
			return nil, err
		}
		v.TargetID = id
		return v, nil

	case protocol.List:
		resolved := protocol.List{Elements: make([]protocol.Value, 0, len(v.Elements))}
		for _, el := range v.Elements {
			r, err := m.ResolveValue(el)
			if err != nil {
				return nil, err
			}
			resolved.Elements = append(resolved.Elements, r)
		}
		return resolved, nil

	default:
		return value, nil
	}
}

// ResolveMembers resolves every value of a member map, preserving keys.
func (m *RefMap) ResolveMembers(members map[string]protocol.Value) (map[string]protocol.Value, error) {
	if members == nil {
		return nil, nil
	}
	resolved := make(map[string]protocol.Value, len(members))
	for k, v := range members {
		r, err := m.ResolveValue(v)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", k, err)
		}
		resolved[k] = r
	}
	return resolved, nil
}
