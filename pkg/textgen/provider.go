// Package textgen provides the text generation client used by every
// pipeline stage: an ordered list of model candidates tried in fallback
// order, with rate-limit backoff and prompt truncation.
package textgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Request is one generation call to a single provider/model.
type Request struct {
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Provider is a single text-generation backend (groq, deepseek, gemini).
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrRateLimited marks a provider rejection caused by quota or rate
// limiting. The client backs off before its next attempt when it sees
// this in the error chain.
var ErrRateLimited = errors.New("rate limited")

// CandidateError records one failed attempt during fallback.
type CandidateError struct {
	Provider string
	Model    string
	Err      string // capped at diagMaxLen
}

// diagMaxLen bounds each per-candidate diagnostic so the aggregate
// failure stays readable.
const diagMaxLen = 80

// ExhaustedError is returned when every candidate has failed. It carries
// the per-candidate diagnostics in attempt order.
type ExhaustedError struct {
	Attempts []CandidateError
}

func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, fmt.Sprintf("%s/%s: %s", a.Provider, a.Model, a.Err))
	}
	return "all candidates failed: " + strings.Join(parts, "; ")
}

func capDiag(err error) string {
	msg := err.Error()
	if len(msg) > diagMaxLen {
		msg = msg[:diagMaxLen]
	}
	return msg
}
