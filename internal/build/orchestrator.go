package build

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"vibebuilder/internal/catalog"
	"vibebuilder/internal/command"
	"vibebuilder/internal/generation"
	"vibebuilder/internal/protocol"
	"vibebuilder/internal/session"
)

const licenseText = "This asset is licensed under CC BY-SA 4.0. Please provide attribution when using or redistributing https://creativecommons.org/licenses/by-sa/4.0/"

// Orchestrator turns one build request into remote scene state. Simple
// requests run as a single command batch; complex ones go through
// planning, per-substructure generation and execution, and a final
// assembly that gathers everything under one root slot.
//
// Nothing is rolled back on failure. Objects already created on the
// remote side stay in place and the report says what exists.
type Orchestrator struct {
	sub   command.Submitter
	gen   generation.Generator
	alloc *session.Allocator
	log   *zap.Logger

	now func() time.Time
}

// NewOrchestrator wires an orchestrator over a request submitter and a
// batch generator. alloc is shared across the session so identifiers
// never collide between builds.
func NewOrchestrator(sub command.Submitter, gen generation.Generator, alloc *session.Allocator, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		sub:   sub,
		gen:   gen,
		alloc: alloc,
		log:   log,
		now:   time.Now,
	}
}

// Build processes one natural-language request end to end and returns
// the aggregate report. The returned error mirrors report.Err for
// builds that failed to start; partial builds return a nil error with
// the failures enumerated in the report.
func (o *Orchestrator) Build(ctx context.Context, prompt string) (*Report, error) {
	report := &Report{Prompt: prompt, Phase: PhaseIdle}

	anchor, user := o.spawnAnchor(ctx)
	comment := o.attributionText(prompt, user)

	if IsComplex(prompt) {
		o.log.Info("complex request, building hierarchically", zap.String("prompt", prompt))
		o.buildHierarchical(ctx, report, prompt, anchor, comment)
	} else {
		o.log.Info("simple request, building flat", zap.String("prompt", prompt))
		o.buildSimple(ctx, report, prompt, anchor)
	}

	if report.Outcome == OutcomeFailedToStart {
		return report, report.Err
	}
	return report, nil
}

// ExecuteBatch runs a pre-assembled command batch (a scene template
// expansion) under the spawn anchor, outside the generation path.
func (o *Orchestrator) ExecuteBatch(ctx context.Context, name string, cmds []command.Command) (*Report, error) {
	report := &Report{Prompt: name, Phase: PhaseBuilding, RootName: name}

	anchor, _ := o.spawnAnchor(ctx)
	refs := session.NewRefMap(o.alloc)
	refs.Bind("$PARENT", anchor)
	engine := command.NewEngine(o.sub, o.alloc, refs, anchor, o.log)

	report.Results = engine.Execute(ctx, cmds)
	report.Phase = PhaseDone
	if report.Results.AllApplied() {
		report.Outcome = OutcomeFullyBuilt
	} else if report.Results.Applied() > 0 {
		report.Outcome = OutcomePartiallyBuilt
	} else {
		report.Outcome = OutcomeFailedToStart
		report.Err = fmt.Errorf("no command applied: %s", report.Results.Summary())
		report.Phase = PhaseFailed
		return report, report.Err
	}
	return report, nil
}

func (o *Orchestrator) buildSimple(ctx context.Context, report *Report, prompt, anchor string) {
	report.Phase = PhaseBuilding

	batch, err := o.gen.SimpleBatch(ctx, prompt)
	if err != nil {
		o.fail(report, fmt.Errorf("generate commands: %w", err))
		return
	}
	o.log.Info("generated batch",
		zap.String("plan", batch.Plan),
		zap.Int("commands", len(batch.Commands)))

	engine := command.NewEngine(o.sub, o.alloc, session.NewRefMap(o.alloc), anchor, o.log)
	report.Results = engine.Execute(ctx, batch.Commands)

	report.Phase = PhaseDone
	switch {
	case report.Results.AllApplied():
		report.Outcome = OutcomeFullyBuilt
	case report.Results.Applied() > 0:
		report.Outcome = OutcomePartiallyBuilt
	default:
		o.fail(report, fmt.Errorf("no command applied: %s", report.Results.Summary()))
	}
}

func (o *Orchestrator) buildHierarchical(ctx context.Context, report *Report, prompt, anchor, comment string) {
	report.Phase = PhasePlanning

	plan, err := o.gen.Plan(ctx, prompt)
	if err != nil {
		o.fail(report, err)
		return
	}
	report.RootName = plan.RootName
	o.log.Info("plan ready",
		zap.String("root", plan.RootName),
		zap.Int("substructures", len(plan.Substructures)))

	// The root exists before any substructure so assembly always has a
	// reparenting target. A root failure aborts the whole build.
	rootID, err := o.createRoot(ctx, plan, anchor, comment)
	if err != nil {
		o.fail(report, fmt.Errorf("create root: %w", err))
		return
	}
	report.RootID = rootID

	report.Phase = PhaseBuilding
	for i, sub := range plan.Substructures {
		if ctx.Err() != nil {
			o.fail(report, ctx.Err())
			return
		}
		report.Substructures = append(report.Substructures, o.buildSubstructure(ctx, plan, sub, i, anchor))
	}

	report.Phase = PhaseAssembling
	if ctx.Err() != nil {
		o.fail(report, ctx.Err())
		return
	}
	o.assemble(ctx, report, rootID)

	report.Phase = PhaseDone
	report.Outcome = OutcomeFullyBuilt
	for _, sub := range report.Substructures {
		if sub.Err != nil || !sub.Results.AllApplied() {
			report.Outcome = OutcomePartiallyBuilt
			break
		}
	}
}

// createRoot creates the build root under the spawn anchor and tags it
// with Comment and License components. Metadata failures are logged but
// do not fail the build.
func (o *Orchestrator) createRoot(ctx context.Context, plan *generation.Plan, anchor, comment string) (string, error) {
	refs := session.NewRefMap(o.alloc)
	engine := command.NewEngine(o.sub, o.alloc, refs, anchor, o.log)

	pos := &protocol.Float3{X: plan.RootPosition[0], Y: plan.RootPosition[1], Z: plan.RootPosition[2]}
	results := engine.Execute(ctx, []command.Command{
		command.CreateObject{Placeholder: "$ROOT", Parent: anchor, Name: plan.RootName, Position: pos},
		command.AttachComponent{
			Target: "$ROOT",
			Type:   "[FrooxEngine]FrooxEngine.Comment",
			Members: map[string]protocol.Value{
				"Text": protocol.String{Value: comment},
			},
		},
		command.AttachComponent{
			Target: "$ROOT",
			Type:   "[FrooxEngine]FrooxEngine.License",
			Members: map[string]protocol.Value{
				"CreditString":  protocol.String{Value: licenseText},
				"RequireCredit": protocol.Bool{Value: true},
				"CanExport":     protocol.Bool{Value: true},
			},
		},
	})

	if results[0].Status != command.StatusApplied {
		return "", results[0].Err
	}
	if !results.AllApplied() {
		o.log.Warn("root metadata incomplete", zap.String("outcome", results.Summary()))
	}
	return results[0].BoundID, nil
}

// buildSubstructure generates and executes the detail batch for one
// plan entry. Each substructure gets its own placeholder namespace with
// only $PARENT pre-bound, so placeholders never leak between
// substructures. The container slot is the single handle assembly sees.
func (o *Orchestrator) buildSubstructure(ctx context.Context, plan *generation.Plan, sub generation.Substructure, index int, anchor string) SubReport {
	sr := SubReport{Name: sub.Name}
	o.log.Info("building substructure",
		zap.Int("index", index),
		zap.String("name", sub.Name))

	batch, err := o.gen.DetailBatch(ctx, plan, sub)
	if err != nil {
		sr.Err = err
		o.log.Warn("substructure generation failed", zap.String("name", sub.Name), zap.Error(err))
		return sr
	}

	refs := session.NewRefMap(o.alloc)
	engine := command.NewEngine(o.sub, o.alloc, refs, anchor, o.log)

	pos := &protocol.Float3{X: sub.Position[0], Y: sub.Position[1], Z: sub.Position[2]}
	containerRes := engine.Execute(ctx, []command.Command{
		command.CreateObject{Placeholder: "$PARENT", Parent: anchor, Name: sub.Name, Position: pos},
	})
	if containerRes[0].Status != command.StatusApplied {
		sr.Err = fmt.Errorf("create container: %w", containerRes[0].Err)
		o.log.Warn("substructure container failed", zap.String("name", sub.Name), zap.Error(sr.Err))
		return sr
	}
	sr.RootID = containerRes[0].BoundID

	sr.Results = engine.Execute(ctx, batch.Commands)
	if !sr.Results.AllApplied() {
		sr.Err = fmt.Errorf("substructure %s: %s", sub.Name, sr.Results.Summary())
	}
	return sr
}

// assemble reparents every substructure container under the build root.
func (o *Orchestrator) assemble(ctx context.Context, report *Report, rootID string) {
	for i := range report.Substructures {
		sub := &report.Substructures[i]
		if sub.RootID == "" {
			continue
		}
		_, err := o.sub.Call(ctx, protocol.UpdateSlot{Data: protocol.SlotData{
			ID:     sub.RootID,
			Parent: &protocol.Reference{TargetID: rootID},
		}})
		if err != nil {
			o.log.Warn("reparent failed", zap.String("name", sub.Name), zap.Error(err))
			if sub.Err == nil {
				sub.Err = fmt.Errorf("reparent: %w", err)
			}
			continue
		}
		sub.Reparented = true
	}
}

// DeleteByName finds a slot by name under the world root and deletes it
// with its subtree. World-infrastructure slots are refused.
func (o *Orchestrator) DeleteByName(ctx context.Context, name string) error {
	if catalog.IsSystemObject(name) {
		return fmt.Errorf("%q is a protected system object", name)
	}

	resp, err := o.sub.Call(ctx, protocol.FindSlot{ParentSlotID: protocol.RootSlotID, Name: name})
	if err != nil {
		return fmt.Errorf("find %q: %w", name, err)
	}
	info, err := protocol.SlotInfoFrom(resp)
	if err != nil {
		return err
	}
	if info == nil || info.ID == "" {
		return fmt.Errorf("no slot named %q", name)
	}

	if _, err := o.sub.Call(ctx, protocol.DeleteSlot{SlotID: info.ID}); err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	o.log.Info("deleted slot", zap.String("name", name), zap.String("id", info.ID))
	return nil
}

// spawnAnchor finds the slot to build under: the parent of the local
// user's root slot, so content appears near the user. Falls back to the
// world root when discovery fails.
func (o *Orchestrator) spawnAnchor(ctx context.Context) (string, *protocol.UserInfo) {
	resp, err := o.sub.Call(ctx, protocol.GetUsers{})
	if err != nil {
		o.log.Warn("user discovery failed, building under world root", zap.Error(err))
		return protocol.RootSlotID, nil
	}

	var local *protocol.UserInfo
	for i := range resp.Users {
		if resp.Users[i].IsLocal {
			local = &resp.Users[i]
			break
		}
	}
	if local == nil || local.UserRootSlotID == "" {
		return protocol.RootSlotID, local
	}

	slotResp, err := o.sub.Call(ctx, protocol.GetSlot{SlotID: local.UserRootSlotID})
	if err != nil {
		return protocol.RootSlotID, local
	}
	info, err := protocol.SlotInfoFrom(slotResp)
	if err != nil || info == nil || info.ParentID == "" {
		return protocol.RootSlotID, local
	}
	o.log.Info("building under user location", zap.String("anchor", info.ParentID))
	return info.ParentID, local
}

func (o *Orchestrator) attributionText(prompt string, user *protocol.UserInfo) string {
	creator := "Unknown User"
	if user != nil {
		creator = user.Username
		if user.IsHost {
			creator += " (host)"
		}
	}
	return fmt.Sprintf("%s Created by %s using Vibe. Prompt: %s",
		o.now().Format("060102 1504"), creator, prompt)
}

func (o *Orchestrator) fail(report *Report, err error) {
	report.Phase = PhaseFailed
	report.Err = err
	if report.RootID == "" && report.Results.Applied() == 0 {
		report.Outcome = OutcomeFailedToStart
	} else {
		report.Outcome = OutcomePartiallyBuilt
	}
	o.log.Error("build failed", zap.String("phase", string(report.Phase)), zap.Error(err))
}
