package command

import (
	"encoding/json"
	"fmt"
)

// Status is the outcome of one executed command.
type Status string

const (
	// StatusApplied means every protocol request of the command succeeded.
	StatusApplied Status = "applied"
	// StatusFailed means the command was sent and rejected, timed out, or
	// referenced a placeholder that was never declared.
	StatusFailed Status = "failed"
	// StatusSkipped means the command was not sent because something it
	// depends on already failed.
	StatusSkipped Status = "skipped(dependency-failed)"
)

// Result records the outcome of one command within a batch.
type Result struct {
	Index   int
	Command Command
	Status  Status
	Err     error
	// BoundID is the real identifier bound to the command's placeholder,
	// for creation commands that succeeded.
	BoundID string
	// Data is the fetched payload of a QueryComponent command.
	Data json.RawMessage
}

// BatchResult aggregates per-command outcomes for one batch, in order.
type BatchResult []Result

// Applied counts commands that fully succeeded.
func (r BatchResult) Applied() int { return r.count(StatusApplied) }

// Failed counts commands that failed outright.
func (r BatchResult) Failed() int { return r.count(StatusFailed) }

// Skipped counts commands suppressed by a failed dependency.
func (r BatchResult) Skipped() int { return r.count(StatusSkipped) }

// AllApplied reports whether every command in the batch succeeded.
func (r BatchResult) AllApplied() bool {
	return len(r) > 0 && r.Applied() == len(r)
}

func (r BatchResult) count(s Status) int {
	n := 0
	for _, res := range r {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Summary renders a short human-readable outcome line.
func (r BatchResult) Summary() string {
	return fmt.Sprintf("%d applied, %d failed, %d skipped of %d",
		r.Applied(), r.Failed(), r.Skipped(), len(r))
}
