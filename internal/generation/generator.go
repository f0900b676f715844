// Package generation is the boundary to the external text-generation
// collaborator. It turns natural-language build requests into structural
// plans and command batches, and parses the collaborator's JSON output
// into typed commands.
package generation

import (
	"context"
	"errors"
	"fmt"

	"vibebuilder/internal/command"
)

var (
	// ErrPlanning marks empty or unparsable output from the planning call.
	ErrPlanning = errors.New("planning failed")

	// ErrDetailGeneration marks empty or unparsable output from a
	// per-substructure detail call.
	ErrDetailGeneration = errors.New("detail generation failed")
)

// Generator produces plans and command batches from natural language.
// "Get one batch" is a single reusable operation: it runs once for a
// simple request and once per substructure for a complex one.
type Generator interface {
	// Plan decomposes a complex request into substructures.
	Plan(ctx context.Context, prompt string) (*Plan, error)
	// SimpleBatch generates one flat command batch for a simple request.
	SimpleBatch(ctx context.Context, prompt string) (*Batch, error)
	// DetailBatch generates the command batch for one substructure of a
	// plan.
	DetailBatch(ctx context.Context, plan *Plan, sub Substructure) (*Batch, error)
}

// Batch is one generated command list plus the model's one-line intent.
type Batch struct {
	Plan     string
	Commands []command.Command
}

// Bounds is an axis-aligned box in build coordinates.
type Bounds struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// Substructure is one independently generated piece of a larger build.
type Substructure struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Position    [3]float64 `json:"position"`
	Bounds      *Bounds    `json:"bounds,omitempty"`
}

// Plan is the structural decomposition of one complex request.
type Plan struct {
	RootName      string             `json:"root_name"`
	RootPosition  [3]float64         `json:"root_position"`
	Description   string             `json:"description"`
	Dimensions    map[string]float64 `json:"dimensions,omitempty"`
	Substructures []Substructure     `json:"sub_structures"`
}

// Validate rejects plans the orchestrator cannot build: no substructures,
// unnamed substructures, or duplicate substructure names.
func (p *Plan) Validate() error {
	if p.RootName == "" {
		return fmt.Errorf("%w: plan has no root name", ErrPlanning)
	}
	if len(p.Substructures) == 0 {
		return fmt.Errorf("%w: plan has no substructures", ErrPlanning)
	}
	seen := make(map[string]bool, len(p.Substructures))
	for i, sub := range p.Substructures {
		if sub.Name == "" {
			return fmt.Errorf("%w: substructure %d has no name", ErrPlanning, i)
		}
		if seen[sub.Name] {
			return fmt.Errorf("%w: duplicate substructure name %q", ErrPlanning, sub.Name)
		}
		seen[sub.Name] = true
	}
	return nil
}
