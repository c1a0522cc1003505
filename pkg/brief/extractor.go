package brief

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"pageforge/pkg/prompts"
)

const (
	extractMaxTokens   = 1000
	extractTemperature = 0.3
)

// Generator is the slice of the text generation client extraction needs.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// Extractor turns free-text briefs into BusinessRecords.
type Extractor struct {
	gen Generator
	log *zap.Logger
}

func NewExtractor(gen Generator, log *zap.Logger) *Extractor {
	return &Extractor{gen: gen, log: log}
}

// Extract runs the extraction prompt and parses the labeled response.
// Generation failures propagate unchanged: nothing downstream can run
// without a record.
func (e *Extractor) Extract(ctx context.Context, briefText string) (*BusinessRecord, error) {
	response, err := e.gen.Generate(ctx, prompts.Extract(briefText), extractMaxTokens, extractTemperature)
	if err != nil {
		return nil, fmt.Errorf("extract business info: %w", err)
	}

	rec := Parse(response)
	e.log.Info("business info extracted",
		zap.String("name", rec.Name),
		zap.String("industry", rec.Industry),
		zap.Bool("has_website", rec.Website != ""))
	return rec, nil
}
