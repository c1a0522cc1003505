package settings

import (
	"os"
	"path/filepath"
	"testing"

	chassis "github.com/ai8future/chassis-go/v5"
	"github.com/ai8future/chassis-go/v5/testkit"
)

func TestMain(m *testing.M) {
	chassis.RequireMajor(5)
	os.Exit(m.Run())
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde prefix", "~/foo/bar", filepath.Join(home, "foo/bar")},
		{"just tilde", "~", home},
		{"no tilde", "/absolute/path", "/absolute/path"},
		{"tilde in middle", "/foo/~/bar", "/foo/~/bar"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandTilde(tt.input)
			if result != tt.expected {
				t.Errorf("expandTilde(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestApplyEnvOverrides_Keys(t *testing.T) {
	testkit.SetEnv(t, map[string]string{
		"PAGEFORGE_GROQ_API_KEY": "gsk-test",
		"PAGEFORGE_CF_API_TOKEN": "cf-test",
	})

	s := GetDefaultSettings()
	applyEnvOverrides(s)

	if s.Credentials.GroqAPIKey != "gsk-test" {
		t.Errorf("GroqAPIKey = %q, want %q", s.Credentials.GroqAPIKey, "gsk-test")
	}
	if s.Credentials.CFAPIToken != "cf-test" {
		t.Errorf("CFAPIToken = %q, want %q", s.Credentials.CFAPIToken, "cf-test")
	}
}

func TestApplyEnvOverrides_DeployTarget(t *testing.T) {
	testkit.SetEnv(t, map[string]string{
		"PAGEFORGE_DEPLOY_TARGET": "sandbox",
	})

	s := GetDefaultSettings()
	applyEnvOverrides(s)

	if s.DeployTarget != TargetSandbox {
		t.Errorf("DeployTarget = %q, want %q", s.DeployTarget, TargetSandbox)
	}
}

func TestApplyEnvOverrides_NoEnvVarsSet(t *testing.T) {
	testkit.SetEnv(t, map[string]string{
		"PAGEFORGE_GROQ_API_KEY":     "",
		"PAGEFORGE_DEEPSEEK_API_KEY": "",
		"PAGEFORGE_GEMINI_API_KEY":   "",
		"PAGEFORGE_DEPLOY_TARGET":    "",
	})

	s := GetDefaultSettings()
	before := s.DeployTarget
	applyEnvOverrides(s)

	if s.DeployTarget != before {
		t.Errorf("DeployTarget changed with no env override: %q", s.DeployTarget)
	}
	if s.Credentials.GroqAPIKey != "" {
		t.Errorf("GroqAPIKey should stay empty, got %q", s.Credentials.GroqAPIKey)
	}
}

func TestValidate_NoProvider(t *testing.T) {
	s := GetDefaultSettings()
	if err := s.Validate(); err == nil {
		t.Error("expected error with no generation provider configured")
	}
}

func TestValidate_PagesNeedsCloudflare(t *testing.T) {
	s := GetDefaultSettings()
	s.Credentials.GroqAPIKey = "gsk-test"
	if err := s.Validate(); err == nil {
		t.Error("expected error: pages target without Cloudflare credentials")
	}

	s.Credentials.CFAPIToken = "cf-token"
	s.Credentials.CFAccountID = "cf-account"
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_SandboxNeedsNoDeployCreds(t *testing.T) {
	s := GetDefaultSettings()
	s.DeployTarget = TargetSandbox
	s.Credentials.GroqAPIKey = "gsk-test"
	if err := s.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_BadTarget(t *testing.T) {
	s := GetDefaultSettings()
	s.Credentials.GroqAPIKey = "gsk-test"
	s.DeployTarget = "ftp"
	if err := s.Validate(); err == nil {
		t.Error("expected error for unknown deploy target")
	}
}

func TestUsableCandidates(t *testing.T) {
	s := GetDefaultSettings()
	s.Credentials.GroqAPIKey = "gsk-test"

	usable := s.UsableCandidates(s.Candidates)
	for _, c := range usable {
		if c.Provider != "groq" {
			t.Errorf("candidate %s/%s should be filtered out without a key", c.Provider, c.Model)
		}
	}
	if len(usable) == 0 {
		t.Error("expected groq candidates to remain usable")
	}
}

func TestLimitsDefaults(t *testing.T) {
	def := defaultLimits()
	if def.RepairMinRatio != 0.8 {
		t.Errorf("RepairMinRatio = %v, want 0.8", def.RepairMinRatio)
	}
	if def.FindingCap != 5 {
		t.Errorf("FindingCap = %d, want 5", def.FindingCap)
	}
	if def.PromptCeiling != 20000 {
		t.Errorf("PromptCeiling = %d, want 20000", def.PromptCeiling)
	}
}
