// Package session holds per-build-session state: the identifier allocator
// and the placeholder reference map. Both are owned by a session object so
// concurrent sessions (and tests) never share counters.
package session

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Allocator issues identifiers that are unique for the lifetime of one
// session. The token mixes process start time with a random component so
// identifiers never collide with leftovers from a previous run still
// present in the remote world.
type Allocator struct {
	token string
	next  atomic.Uint64
}

// NewAllocator creates an allocator with a fresh session token.
func NewAllocator() *Allocator {
	return &Allocator{
		token: fmt.Sprintf("Vibe_%d_%s", time.Now().Unix(), uuid.NewString()[:8]),
	}
}

// Token returns the session token shared by all identifiers from this
// allocator.
func (a *Allocator) Token() string {
	return a.token
}

// Next returns a fresh identifier. Safe for concurrent use; no two calls
// on the same allocator ever return equal values.
func (a *Allocator) Next() string {
	n := a.next.Add(1) - 1
	return fmt.Sprintf("%s_%d", a.token, n)
}
