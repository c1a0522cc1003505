// Package envelope defines the result wrapper passed between pipeline
// stages, carrying status, diagnostics, and generation metrics.
package envelope

import "time"

type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailure  Status = "failure"
	StatusDegraded Status = "degraded"
	StatusSkipped  Status = "skipped"
)

// Error codes surfaced to the controller. Recoverable codes let the
// pipeline continue with degraded input; the rest abort the run.
const (
	CodeProviderUnavailable  = "PROVIDER_UNAVAILABLE"
	CodeExtractionIncomplete = "EXTRACTION_INCOMPLETE"
	CodeResearchDegraded     = "RESEARCH_DEGRADED"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeDeployFailed         = "DEPLOY_FAILED"
	CodeConfigMissing        = "CONFIG_MISSING"
	CodeCancelled            = "CANCELLED"
)

type Envelope struct {
	Status    Status                 `json:"status"`
	Result    map[string]interface{} `json:"result,omitempty"`
	OutputRef string                 `json:"output_ref,omitempty"`
	Error     *ErrorInfo             `json:"error,omitempty"`
	Metrics   *Metrics               `json:"metrics,omitempty"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Metrics struct {
	Stage       string    `json:"stage"`
	Candidate   string    `json:"candidate,omitempty"`
	DurationMs  int64     `json:"duration_ms"`
	PromptChars int       `json:"prompt_chars,omitempty"`
	OutputChars int       `json:"output_chars,omitempty"`
	StartTime   time.Time `json:"start_time,omitzero"`
	EndTime     time.Time `json:"end_time,omitzero"`
}

// Recoverable reports whether the envelope's error, if any, permits the
// pipeline to continue with degraded input.
func (e *Envelope) Recoverable() bool {
	if e.Error == nil {
		return true
	}
	switch e.Error.Code {
	case CodeExtractionIncomplete, CodeResearchDegraded, CodeValidationFailed:
		return true
	}
	return false
}

// Builder pattern
type Builder struct {
	env *Envelope
}

func New() *Builder {
	return &Builder{env: &Envelope{Result: make(map[string]interface{})}}
}

func (b *Builder) WithStage(name string) *Builder {
	if b.env.Metrics == nil {
		b.env.Metrics = &Metrics{}
	}
	b.env.Metrics.Stage = name
	return b
}

func (b *Builder) WithCandidate(name string) *Builder {
	if b.env.Metrics == nil {
		b.env.Metrics = &Metrics{}
	}
	b.env.Metrics.Candidate = name
	return b
}

func (b *Builder) Success() *Builder {
	b.env.Status = StatusSuccess
	return b
}

func (b *Builder) Degraded(code, message string) *Builder {
	b.env.Status = StatusDegraded
	b.env.Error = &ErrorInfo{Code: code, Message: message}
	return b
}

func (b *Builder) Failure(code, message string) *Builder {
	b.env.Status = StatusFailure
	b.env.Error = &ErrorInfo{Code: code, Message: message}
	return b
}

func (b *Builder) WithResult(key string, value interface{}) *Builder {
	b.env.Result[key] = value
	return b
}

func (b *Builder) WithOutputRef(path string) *Builder {
	b.env.OutputRef = path
	return b
}

func (b *Builder) WithDuration(ms int64) *Builder {
	if b.env.Metrics == nil {
		b.env.Metrics = &Metrics{}
	}
	b.env.Metrics.DurationMs = ms
	return b
}

func (b *Builder) WithSizes(promptChars, outputChars int) *Builder {
	if b.env.Metrics == nil {
		b.env.Metrics = &Metrics{}
	}
	b.env.Metrics.PromptChars = promptChars
	b.env.Metrics.OutputChars = outputChars
	return b
}

func (b *Builder) Build() *Envelope {
	return b.env
}
