package build

import (
	"fmt"
	"strings"

	"vibebuilder/internal/command"
)

// Phase is one orchestrator state. Failed is reachable from any phase.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhasePlanning   Phase = "planning"
	PhaseBuilding   Phase = "building"
	PhaseAssembling Phase = "assembling"
	PhaseDone       Phase = "done"
	PhaseFailed     Phase = "failed"
)

// Outcome classifies the whole build for the caller.
type Outcome string

const (
	// OutcomeFullyBuilt means every generated command applied.
	OutcomeFullyBuilt Outcome = "fully built"
	// OutcomePartiallyBuilt means the root exists but one or more
	// substructures or commands failed.
	OutcomePartiallyBuilt Outcome = "partially built"
	// OutcomeFailedToStart means nothing durable was created: planning,
	// generation, or root creation failed up front.
	OutcomeFailedToStart Outcome = "failed to start"
)

// SubReport is the outcome of one substructure build.
type SubReport struct {
	Name string
	// RootID is the substructure's container slot, empty when the
	// substructure never got far enough to create one.
	RootID string
	// Reparented is set once the container was moved under the build
	// root during assembly.
	Reparented bool
	Results    command.BatchResult
	Err        error
}

// Failed reports whether this substructure produced nothing at all.
func (s SubReport) Failed() bool {
	return s.Err != nil && s.RootID == ""
}

// Report is the aggregate result of one build request. Partial remote
// state is never rolled back, so the report always enumerates what was
// actually created.
type Report struct {
	Prompt   string
	Phase    Phase
	Outcome  Outcome
	RootID   string
	RootName string
	// Results holds the flat batch outcome for simple builds.
	Results command.BatchResult
	// Substructures holds per-substructure outcomes for hierarchical
	// builds, in plan order.
	Substructures []SubReport
	Err           error
}

// FailedSubstructures lists the names of substructures that produced
// nothing.
func (r *Report) FailedSubstructures() []string {
	var names []string
	for _, sub := range r.Substructures {
		if sub.Failed() {
			names = append(names, sub.Name)
		}
	}
	return names
}

// Summary renders a one-paragraph human-readable outcome.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", r.Outcome)
	if r.RootName != "" {
		fmt.Fprintf(&b, ": %s", r.RootName)
	}
	if len(r.Substructures) > 0 {
		failed := r.FailedSubstructures()
		fmt.Fprintf(&b, " (%d/%d substructures built", len(r.Substructures)-len(failed), len(r.Substructures))
		if len(failed) > 0 {
			fmt.Fprintf(&b, "; failed: %s", strings.Join(failed, ", "))
		}
		b.WriteString(")")
	} else if len(r.Results) > 0 {
		fmt.Fprintf(&b, " (%s)", r.Results.Summary())
	}
	if r.Err != nil {
		fmt.Fprintf(&b, ": %v", r.Err)
	}
	return b.String()
}
