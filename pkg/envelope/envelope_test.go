package envelope

import (
	"testing"
)

func TestNew(t *testing.T) {
	b := New()
	if b == nil {
		t.Fatal("New() returned nil")
	}
	if b.env == nil {
		t.Error("builder envelope is nil")
	}
	if b.env.Result == nil {
		t.Error("Result map should be initialized")
	}
}

func TestBuilder_Success(t *testing.T) {
	env := New().Success().Build()

	if env.Status != StatusSuccess {
		t.Errorf("expected StatusSuccess, got %s", env.Status)
	}
}

func TestBuilder_Failure(t *testing.T) {
	env := New().Failure(CodeDeployFailed, "upload rejected").Build()

	if env.Status != StatusFailure {
		t.Errorf("expected StatusFailure, got %s", env.Status)
	}
	if env.Error == nil {
		t.Fatal("expected Error to be set")
	}
	if env.Error.Code != CodeDeployFailed {
		t.Errorf("expected error code %q, got %s", CodeDeployFailed, env.Error.Code)
	}
	if env.Error.Message != "upload rejected" {
		t.Errorf("expected error message, got %s", env.Error.Message)
	}
}

func TestBuilder_Degraded(t *testing.T) {
	env := New().Degraded(CodeResearchDegraded, "2 of 3 searches empty").Build()

	if env.Status != StatusDegraded {
		t.Errorf("expected StatusDegraded, got %s", env.Status)
	}
	if env.Error == nil || env.Error.Code != CodeResearchDegraded {
		t.Fatalf("expected degraded error info, got %+v", env.Error)
	}
}

func TestBuilder_WithResult(t *testing.T) {
	env := New().
		Success().
		WithResult("sources", 7).
		WithResult("url", "https://acme-0101.pages.dev").
		Build()

	if env.Result["sources"] != 7 {
		t.Errorf("expected sources=7, got %v", env.Result["sources"])
	}
	if env.Result["url"] != "https://acme-0101.pages.dev" {
		t.Errorf("unexpected url result: %v", env.Result["url"])
	}
}

func TestBuilder_WithStage(t *testing.T) {
	env := New().WithStage("researching").WithCandidate("groq").Build()

	if env.Metrics == nil {
		t.Fatal("expected Metrics to be initialized")
	}
	if env.Metrics.Stage != "researching" {
		t.Errorf("expected stage='researching', got %s", env.Metrics.Stage)
	}
	if env.Metrics.Candidate != "groq" {
		t.Errorf("expected candidate='groq', got %s", env.Metrics.Candidate)
	}
}

func TestBuilder_Chaining(t *testing.T) {
	// Full fluent builder pattern
	env := New().
		WithStage("generating_code").
		WithDuration(2000).
		WithSizes(18000, 9500).
		WithOutputRef("/runs/x/index.html").
		Success().
		Build()

	if env.Status != StatusSuccess {
		t.Errorf("status: got %s, want success", env.Status)
	}
	if env.Metrics.Stage != "generating_code" {
		t.Errorf("stage: got %s, want generating_code", env.Metrics.Stage)
	}
	if env.Metrics.DurationMs != 2000 {
		t.Errorf("duration: got %d, want 2000", env.Metrics.DurationMs)
	}
	if env.Metrics.PromptChars != 18000 || env.Metrics.OutputChars != 9500 {
		t.Errorf("sizes: got %d/%d, want 18000/9500", env.Metrics.PromptChars, env.Metrics.OutputChars)
	}
	if env.OutputRef != "/runs/x/index.html" {
		t.Errorf("output_ref: got %s, want /runs/x/index.html", env.OutputRef)
	}
}

func TestRecoverable(t *testing.T) {
	tests := []struct {
		name string
		env  *Envelope
		want bool
	}{
		{"no error", New().Success().Build(), true},
		{"partial extraction", New().Degraded(CodeExtractionIncomplete, "").Build(), true},
		{"degraded research", New().Degraded(CodeResearchDegraded, "").Build(), true},
		{"flagged validation", New().Degraded(CodeValidationFailed, "").Build(), true},
		{"provider exhausted", New().Failure(CodeProviderUnavailable, "").Build(), false},
		{"deploy failed", New().Failure(CodeDeployFailed, "").Build(), false},
		{"cancelled", New().Failure(CodeCancelled, "").Build(), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.env.Recoverable(); got != tc.want {
				t.Errorf("Recoverable() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStatusConstants(t *testing.T) {
	if StatusSuccess != "success" {
		t.Errorf("StatusSuccess = %q, want 'success'", StatusSuccess)
	}
	if StatusFailure != "failure" {
		t.Errorf("StatusFailure = %q, want 'failure'", StatusFailure)
	}
	if StatusDegraded != "degraded" {
		t.Errorf("StatusDegraded = %q, want 'degraded'", StatusDegraded)
	}
	if StatusSkipped != "skipped" {
		t.Errorf("StatusSkipped = %q, want 'skipped'", StatusSkipped)
	}
}
