// Package build orchestrates whole builds: simple one-batch requests and
// hierarchical plan-then-detail builds assembled under a common root.
package build

import "strings"

// complexKeywords mark requests that need a structural plan before any
// commands are generated. Anything matching goes through the
// hierarchical path.
var complexKeywords = []string{
	"house", "building", "room", "scene", "environment", "world",
	"village", "city", "forest", "garden", "park", "street",
	"castle", "tower", "bridge", "ship", "vehicle", "car",
	"furniture set", "kitchen", "bedroom", "living room", "office",
	"playground", "stage", "arena", "stadium", "complex",
}

// IsComplex reports whether a request should be decomposed into a plan
// of substructures rather than generated as one flat batch.
func IsComplex(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, kw := range complexKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	// "a table with chairs and lamps" reads as multi-part even without
	// a keyword hit.
	if strings.Contains(lower, "with") {
		for _, word := range []string{"and", "multiple", "several"} {
			if strings.Contains(lower, word) {
				return true
			}
		}
	}
	return false
}
