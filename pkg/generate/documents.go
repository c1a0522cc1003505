// Package generate produces the planning documents for a run: the page
// plan, the design system, and the build instructions.
package generate

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pageforge/pkg/brief"
	"pageforge/pkg/prompts"
	"pageforge/pkg/research"
)

// Per-document generation settings. The plan wants creative copy, the
// design system moderate variation, the build prompt consistency.
const (
	planMaxTokens   = 8000
	planTemperature = 0.7

	designMaxTokens   = 4000
	designTemperature = 0.6

	buildMaxTokens   = 6000
	buildTemperature = 0.5
)

// Generator is the slice of the text generation client documents need.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// Artifact is one generated document plus its validity flag. Only valid
// artifacts may feed the next stage.
type Artifact struct {
	Name    string
	Content string
	Valid   bool
}

// Documents holds the three planning artifacts of a run.
type Documents struct {
	Plan              Artifact
	DesignSystem      Artifact
	BuildInstructions Artifact
}

// Writer generates planning documents.
type Writer struct {
	gen               Generator
	websiteContentCap int
	log               *zap.Logger
}

func NewWriter(gen Generator, websiteContentCap int, log *zap.Logger) *Writer {
	return &Writer{gen: gen, websiteContentCap: websiteContentCap, log: log}
}

// Documents generates all three planning artifacts. Plan and design
// system are independent siblings and run concurrently; build
// instructions derive from both and run after. The first generation
// error cancels the sibling and propagates.
func (w *Writer) Documents(ctx context.Context, rec *brief.BusinessRecord, bundle *research.Bundle) (*Documents, error) {
	businessText := rec.FormatForPrompt()
	researchText := research.FormatForPrompt(bundle, w.websiteContentCap)

	docs := &Documents{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		w.log.Info("generating plan")
		text, err := w.gen.Generate(gctx, prompts.Plan(businessText, researchText), planMaxTokens, planTemperature)
		if err != nil {
			return fmt.Errorf("generate plan: %w", err)
		}
		docs.Plan = newArtifact("plan", text)
		return nil
	})
	g.Go(func() error {
		w.log.Info("generating design system")
		text, err := w.gen.Generate(gctx, prompts.DesignSystem(businessText, rec.Tone, rec.Industry, rec.Audience), designMaxTokens, designTemperature)
		if err != nil {
			return fmt.Errorf("generate design system: %w", err)
		}
		docs.DesignSystem = newArtifact("design_system", text)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !docs.Plan.Valid {
		return nil, fmt.Errorf("plan document is empty")
	}
	if !docs.DesignSystem.Valid {
		return nil, fmt.Errorf("design system document is empty")
	}

	w.log.Info("generating build instructions")
	text, err := w.gen.Generate(ctx, prompts.BuildInstructions(docs.Plan.Content, docs.DesignSystem.Content), buildMaxTokens, buildTemperature)
	if err != nil {
		return nil, fmt.Errorf("generate build instructions: %w", err)
	}
	docs.BuildInstructions = newArtifact("build_instructions", text)
	if !docs.BuildInstructions.Valid {
		return nil, fmt.Errorf("build instructions document is empty")
	}

	return docs, nil
}

func newArtifact(name, content string) Artifact {
	content = strings.TrimSpace(content)
	return Artifact{Name: name, Content: content, Valid: content != ""}
}
