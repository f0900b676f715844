package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// DefaultModel is used when the config names no model.
const DefaultModel = "gemini-3-flash-preview"

// Gemini implements Generator on the Google GenAI API.
type Gemini struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// NewGemini creates a Gemini-backed generator.
func NewGemini(ctx context.Context, apiKey, model string, log *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  model,
		log:    log,
	}, nil
}

func (g *Gemini) generate(ctx context.Context, system, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	g.log.Debug("model response", zap.Int("chars", len(text)))
	return text, nil
}

// Plan runs the planning call for a complex request.
func (g *Gemini) Plan(ctx context.Context, prompt string) (*Plan, error) {
	content, err := g.generate(ctx, planningSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanning, err)
	}

	var plan Plan
	if err := unmarshalResponse(content, &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanning, err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	g.log.Info("plan generated",
		zap.String("root", plan.RootName),
		zap.Int("substructures", len(plan.Substructures)))
	return &plan, nil
}

// SimpleBatch generates one flat batch for a simple request.
func (g *Gemini) SimpleBatch(ctx context.Context, prompt string) (*Batch, error) {
	content, err := g.generate(ctx, simpleSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetailGeneration, err)
	}
	return g.parseBatch(content, "")
}

// DetailBatch generates the batch for one substructure of a plan. The
// sub-structure's slots default to the $PARENT placeholder, bound by the
// orchestrator before execution.
func (g *Gemini) DetailBatch(ctx context.Context, plan *Plan, sub Substructure) (*Batch, error) {
	prompt := detailPrompt(plan, sub)

	content, err := g.generate(ctx, detailSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetailGeneration, err)
	}
	batch, err := g.parseBatch(content, "$PARENT")
	if err != nil {
		// One strict retry; models occasionally emit prose or truncate.
		g.log.Warn("retrying detail generation with strict JSON", zap.String("sub", sub.Name))
		content, retryErr := g.generate(ctx, detailSystemPrompt,
			prompt+"\nReturn ONLY valid JSON. Do not use code fences. If too long, reduce repetition.")
		if retryErr != nil {
			return nil, err
		}
		return g.parseBatch(content, "$PARENT")
	}
	return batch, nil
}

func (g *Gemini) parseBatch(content, defaultParent string) (*Batch, error) {
	var parsed batchResponse
	if err := unmarshalResponse(content, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetailGeneration, err)
	}
	if len(parsed.Commands) == 0 {
		return nil, fmt.Errorf("%w: empty command batch", ErrDetailGeneration)
	}
	cmds, err := decodeBatch(parsed.Commands, defaultParent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetailGeneration, err)
	}
	return &Batch{Plan: parsed.Plan, Commands: cmds}, nil
}

func detailPrompt(plan *Plan, sub Substructure) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Build this sub-structure:\nName: %s\nDescription: %s\n", sub.Name, sub.Description)
	fmt.Fprintf(&b, "Position: container already at %v relative to root; your objects are relative to it\n", sub.Position)
	if len(plan.Dimensions) > 0 {
		dims, _ := json.Marshal(plan.Dimensions)
		fmt.Fprintf(&b, "MASTER DIMENSIONS: %s\n", dims)
	}
	if sub.Bounds != nil {
		fmt.Fprintf(&b, "BOUNDS: min=%v, max=%v\n", sub.Bounds.Min, sub.Bounds.Max)
	}
	b.WriteString("The parent slot placeholder is $PARENT (already created).\n")
	return b.String()
}
