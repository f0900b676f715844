package generation

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"vibebuilder/internal/command"
	"vibebuilder/internal/protocol"
)

func cleanJSONResponse(resp string) string {
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	return strings.TrimSpace(resp)
}

// trimToBalancedJSON extracts the first balanced JSON object from text.
// Models sometimes wrap output in prose or truncate a trailing fence.
func trimToBalancedJSON(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

func unmarshalResponse(content string, out any) error {
	cleaned := cleanJSONResponse(content)
	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}
	balanced := trimToBalancedJSON(cleaned)
	if balanced == "" {
		return fmt.Errorf("no JSON object in response")
	}
	if err := json.Unmarshal([]byte(balanced), out); err != nil {
		return fmt.Errorf("parse response JSON: %w", err)
	}
	return nil
}

// rawCommand is the collaborator's command schema, one JSON object per
// step.
type rawCommand struct {
	Cmd      string                     `json:"cmd"`
	ID       string                     `json:"id"`
	Name     string                     `json:"name"`
	Parent   string                     `json:"parent"`
	Position []float64                  `json:"position"`
	Rotation []float64                  `json:"rotation"`
	Scale    []float64                  `json:"scale"`
	Slot     string                     `json:"slot"`
	Type     string                     `json:"type"`
	Members  map[string]json.RawMessage `json:"members"`
	Purpose  string                     `json:"purpose"`
	Renderer string                     `json:"renderer"`
	Material string                     `json:"material"`
}

type batchResponse struct {
	Plan     string       `json:"plan"`
	Commands []rawCommand `json:"commands"`
}

// decodeBatch translates raw generated commands into typed ones.
// defaultParent is used for slots with no explicit parent.
//
// The raw schema spells the list-attachment protocol out as three steps
// (append an empty Materials element, read the element id back, link).
// The engine runs all three inside one LinkListElement command, so the
// first two steps are folded into the third here.
func decodeBatch(raws []rawCommand, defaultParent string) ([]command.Command, error) {
	linkTargets := make(map[string]bool)
	for _, r := range raws {
		if r.Cmd == "setMaterialsElement" && r.Renderer != "" {
			linkTargets[r.Renderer] = true
		}
	}

	var cmds []command.Command
	for i, r := range raws {
		switch r.Cmd {
		case "addSlot":
			c := command.CreateObject{
				Placeholder: r.ID,
				Parent:      r.Parent,
				Name:        r.Name,
				Position:    vec3(r.Position),
				Rotation:    quat(r.Rotation),
				Scale:       vec3(r.Scale),
			}
			if c.Parent == "" {
				c.Parent = defaultParent
			}
			if c.Name == "" {
				c.Name = "Object"
			}
			snapToGround(&c)
			cmds = append(cmds, c)

		case "addComponent":
			members, err := decodeMembers(r.Members)
			if err != nil {
				return nil, fmt.Errorf("command %d (%s): %w", i, r.Cmd, err)
			}
			cmds = append(cmds, command.AttachComponent{
				Placeholder: r.ID,
				Target:      r.Slot,
				Type:        r.Type,
				Members:     members,
			})

		case "updateComponent":
			members, err := decodeMembers(r.Members)
			if err != nil {
				return nil, fmt.Errorf("command %d (%s): %w", i, r.Cmd, err)
			}
			for _, field := range sortedKeys(members) {
				value := members[field]
				if linkTargets[r.ID] && isEmptyListAppend(value) {
					continue // folded into LinkListElement
				}
				cmds = append(cmds, command.SetField{
					Target: r.ID,
					Field:  field,
					Value:  value,
				})
			}

		case "getComponent":
			if r.Purpose == "get_materials_element_id" {
				continue // folded into LinkListElement
			}
			cmds = append(cmds, command.QueryComponent{Target: r.ID})

		case "setMaterialsElement":
			cmds = append(cmds, command.LinkListElement{
				Target:  r.Renderer,
				Field:   "Materials",
				Element: r.Material,
			})

		case "":
			return nil, fmt.Errorf("command %d has no cmd field", i)

		default:
			return nil, fmt.Errorf("command %d: unknown cmd %q", i, r.Cmd)
		}
	}
	return cmds, nil
}

func decodeMembers(raw map[string]json.RawMessage) (map[string]protocol.Value, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	members := make(map[string]protocol.Value, len(raw))
	for k, v := range raw {
		value, err := protocol.DecodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", k, err)
		}
		members[k] = value
	}
	return members, nil
}

func sortedKeys(m map[string]protocol.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// isEmptyListAppend reports whether value is a list holding only empty
// references, i.e. step 1 of the list-attachment protocol.
func isEmptyListAppend(value protocol.Value) bool {
	list, ok := value.(protocol.List)
	if !ok || len(list.Elements) == 0 {
		return false
	}
	for _, el := range list.Elements {
		ref, ok := el.(protocol.Reference)
		if !ok || ref.ID != "" || ref.TargetID != "" {
			return false
		}
	}
	return true
}

func vec3(v []float64) *protocol.Float3 {
	if len(v) < 3 {
		return nil
	}
	return &protocol.Float3{X: v[0], Y: v[1], Z: v[2]}
}

func quat(v []float64) *protocol.FloatQ {
	if len(v) < 3 {
		return nil
	}
	q := &protocol.FloatQ{X: v[0], Y: v[1], Z: v[2], W: 1}
	if len(v) > 3 {
		q.W = v[3]
	}
	return q
}

// snapToGround nudges floors and slabs that sit near Y=0 so their surfaces
// meet the ground without a gap. Generated coordinates are often off by
// half a thickness.
func snapToGround(c *command.CreateObject) {
	if c.Position == nil || c.Scale == nil {
		return
	}
	thickness := c.Scale.Y
	lower := strings.ToLower(c.Name)

	isRoof := strings.Contains(lower, "roof")
	isBase := strings.Contains(lower, "base") || strings.Contains(lower, "foundation") || strings.Contains(lower, "ground")
	isSlab := strings.Contains(lower, "slab")
	isFloor := strings.Contains(lower, "floor")
	isDeck := strings.Contains(lower, "deck") || strings.Contains(lower, "platform")

	// Only snap when already near ground level.
	if math.Abs(c.Position.Y) > math.Max(thickness, 0.5) {
		return
	}

	switch {
	case isSlab && isBase && !isRoof:
		// Base slabs: top surface at Y=0.
		c.Position.Y = -thickness / 2
	case (isFloor || isDeck) && !isRoof:
		// Floor plates and decks: bottom at Y=0.
		c.Position.Y = thickness / 2
	}
}
