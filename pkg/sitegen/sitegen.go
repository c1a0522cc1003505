// Package sitegen generates the website code for a run and validates
// that the model produced a complete document.
package sitegen

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pageforge/pkg/designtokens"
	"pageforge/pkg/prompts"
)

const (
	siteMaxTokens   = 16000
	siteTemperature = 0.4

	repairMaxTokens   = 16000
	repairTemperature = 0.3
)

// CodeGenerator is the slice of the text generation client site
// generation needs.
type CodeGenerator interface {
	GenerateCode(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// Output is the generated site code plus its validity flag. An invalid
// output still flows downstream, flagged, after the single repair pass.
type Output struct {
	Code  string
	Valid bool
	// Issue describes why validation failed, empty when Valid.
	Issue string
}

// Builder generates and validates website code.
type Builder struct {
	gen         CodeGenerator
	validator   Validator
	palette     string
	repairRatio float64
	log         *zap.Logger
}

func NewBuilder(gen CodeGenerator, validator Validator, palette string, repairRatio float64, log *zap.Logger) *Builder {
	if validator == nil {
		validator = NewCompletenessValidator(defaultSizeFloor)
	}
	if repairRatio <= 0 || repairRatio > 1 {
		repairRatio = 0.8
	}
	return &Builder{
		gen:         gen,
		validator:   validator,
		palette:     palette,
		repairRatio: repairRatio,
		log:         log,
	}
}

// Generate produces the site code from the business context and the
// planning documents. On validation failure it runs exactly one repair
// pass; the repaired output is accepted only when it is structurally
// valid and not substantially shorter than the original. Generation is
// best-effort past that point: an output that is still incomplete is
// returned flagged, never retried again.
func (b *Builder) Generate(ctx context.Context, businessInfo, plan, designSystem string) (*Output, error) {
	prompt := prompts.Site(
		businessInfo, plan, designSystem,
		designtokens.TailwindConfig(b.palette),
		designtokens.PromptAddition(),
	)

	raw, err := b.gen.GenerateCode(ctx, prompt, siteMaxTokens, siteTemperature)
	if err != nil {
		return nil, fmt.Errorf("generate website: %w", err)
	}
	code := Clean(raw)

	issue := b.validator.Validate(code)
	if issue == nil {
		b.log.Info("website generated", zap.Int("chars", len(code)))
		return &Output{Code: code, Valid: true}, nil
	}

	b.log.Warn("website incomplete, running repair pass", zap.String("issue", issue.Error()))
	repaired, repairErr := b.gen.GenerateCode(ctx, prompts.Repair(code), repairMaxTokens, repairTemperature)
	if repairErr != nil {
		b.log.Warn("repair pass failed, keeping original", zap.Error(repairErr))
		return &Output{Code: code, Issue: issue.Error()}, nil
	}
	repaired = Clean(repaired)

	if float64(len(repaired)) > float64(len(code))*b.repairRatio && StructurallyValid(repaired) {
		if repairIssue := b.validator.Validate(repaired); repairIssue == nil {
			b.log.Info("repair pass succeeded", zap.Int("chars", len(repaired)))
			return &Output{Code: repaired, Valid: true}, nil
		}
		// Better than the original even if not perfect.
		code = repaired
		issue = b.validator.Validate(repaired)
	}

	b.log.Warn("website still incomplete after repair", zap.String("issue", issue.Error()))
	return &Output{Code: code, Issue: issue.Error()}, nil
}

// Clean strips code fences and slices the response to the document
// boundaries, in case the model wrapped the code in commentary.
func Clean(code string) string {
	if idx := strings.Index(code, "```html"); idx >= 0 {
		code = code[idx+len("```html"):]
	}
	if idx := strings.Index(code, "```"); idx >= 0 {
		code = code[:idx]
	}
	if idx := strings.Index(code, "<!DOCTYPE"); idx >= 0 {
		code = code[idx:]
	}
	if idx := strings.LastIndex(code, "</html>"); idx >= 0 {
		code = code[:idx+len("</html>")]
	}
	return strings.TrimSpace(code)
}
