// Package settings handles loading and managing pageforge configuration
// from ~/.pageforge/settings.json, merged with environment overrides.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ai8future/chassis-go/v5/config"
)

const (
	ConfigDirName  = ".pageforge"
	ConfigFileName = "settings.json"
)

// Deploy targets. Pages publishes a single static document to Cloudflare
// Pages; Sandbox packages a React project and hands it to CodeSandbox.
const (
	TargetPages   = "pages"
	TargetSandbox = "sandbox"
)

// Candidate is one generation model option, tried in order.
type Candidate struct {
	Provider  string `json:"provider"`   // groq, deepseek, gemini
	Model     string `json:"model"`      // provider model name
	MaxTokens int    `json:"max_tokens"` // output ceiling for this candidate
}

// Credentials holds API keys for external services.
type Credentials struct {
	GroqAPIKey     string `json:"groq_api_key,omitempty"`
	DeepSeekAPIKey string `json:"deepseek_api_key,omitempty"`
	GeminiAPIKey   string `json:"gemini_api_key,omitempty"`
	CFAPIToken     string `json:"cf_api_token,omitempty"`
	CFAccountID    string `json:"cf_account_id,omitempty"`
}

// Limits holds pipeline tunables. Zero values are replaced with defaults
// by LoadWithFallback.
type Limits struct {
	PromptCeiling       int     `json:"prompt_ceiling"`        // max prompt chars before truncation
	RateLimitBackoffSec int     `json:"rate_limit_backoff_sec"` // pause after a 429 before the next attempt
	RequestSpacingSec   int     `json:"request_spacing_sec"`   // min gap between generation calls
	RepairMinRatio      float64 `json:"repair_min_ratio"`      // repaired output must be >= ratio * original
	FindingCap          int     `json:"finding_cap"`           // max results per research list
	ReputationCap       int     `json:"reputation_cap"`        // max results for the reputation search
	WebsiteContentCap   int     `json:"website_content_cap"`   // max scraped chars fed to prompts
	VerifyAttempts      int     `json:"verify_attempts"`       // deployment verification polls
	VerifyDelaySec      int     `json:"verify_delay_sec"`      // delay between polls
	ChunkSize           int     `json:"chunk_size"`            // outbound message part size
	AttachmentThreshold int     `json:"attachment_threshold"`  // documents above this ship as files
}

// Settings holds all configuration for pageforge.
type Settings struct {
	RunsDir        string      `json:"runs_dir,omitempty"` // per-run artifact directory (supports ~ expansion)
	DeployTarget   string      `json:"deploy_target"`      // pages or sandbox
	Candidates     []Candidate `json:"candidates,omitempty"`
	CodeCandidates []Candidate `json:"code_candidates,omitempty"`
	Credentials    Credentials `json:"credentials"`
	Limits         Limits      `json:"limits"`
}

// EnvOverrides are loaded via chassis config from the environment.
// All fields are optional — only non-empty values apply.
// Merge order: defaults < settings.json < env vars < CLI flags.
type EnvOverrides struct {
	GroqAPIKey     string `env:"PAGEFORGE_GROQ_API_KEY" required:"false"`
	DeepSeekAPIKey string `env:"PAGEFORGE_DEEPSEEK_API_KEY" required:"false"`
	GeminiAPIKey   string `env:"PAGEFORGE_GEMINI_API_KEY" required:"false"`
	CFAPIToken     string `env:"PAGEFORGE_CF_API_TOKEN" required:"false"`
	CFAccountID    string `env:"PAGEFORGE_CF_ACCOUNT_ID" required:"false"`
	DeployTarget   string `env:"PAGEFORGE_DEPLOY_TARGET" required:"false"`
	RunsDir        string `env:"PAGEFORGE_RUNS_DIR" required:"false"`
	LogLevel       string `env:"PAGEFORGE_LOG_LEVEL" required:"false"`
}

// applyEnvOverrides loads environment variable overrides and merges them in.
func applyEnvOverrides(s *Settings) {
	env := config.MustLoad[EnvOverrides]()

	if env.GroqAPIKey != "" {
		s.Credentials.GroqAPIKey = env.GroqAPIKey
	}
	if env.DeepSeekAPIKey != "" {
		s.Credentials.DeepSeekAPIKey = env.DeepSeekAPIKey
	}
	if env.GeminiAPIKey != "" {
		s.Credentials.GeminiAPIKey = env.GeminiAPIKey
	}
	if env.CFAPIToken != "" {
		s.Credentials.CFAPIToken = env.CFAPIToken
	}
	if env.CFAccountID != "" {
		s.Credentials.CFAccountID = env.CFAccountID
	}
	if env.DeployTarget != "" {
		s.DeployTarget = env.DeployTarget
	}
	if env.RunsDir != "" {
		s.RunsDir = expandTilde(env.RunsDir)
	}
}

// GetEnvLogLevel returns the PAGEFORGE_LOG_LEVEL env var value, or empty string if unset.
func GetEnvLogLevel() string {
	return os.Getenv("PAGEFORGE_LOG_LEVEL")
}

// GetConfigDir returns the path to the config directory (~/.pageforge)
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME") // fallback for legacy systems
	}
	return filepath.Join(home, ConfigDirName)
}

// GetConfigPath returns the full path to settings.json
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), ConfigFileName)
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.Getenv("HOME")
			if home == "" {
				return path
			}
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = os.Getenv("HOME")
			if home == "" {
				return path
			}
		}
		return home
	}
	return path
}

// Load reads settings from ~/.pageforge/settings.json.
// Returns nil and an error if the file doesn't exist or is invalid.
func Load() (*Settings, error) {
	configPath := GetConfigPath()

	info, err := os.Stat(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("settings file not found: %s", configPath)
		}
		return nil, fmt.Errorf("failed to stat settings file: %w", err)
	}

	// Warn if settings file is world-writable (it holds API keys)
	mode := info.Mode().Perm()
	if mode&0002 != 0 {
		fmt.Fprintf(os.Stderr, "Warning: settings file %s is world-writable (mode %o). This is a security risk.\n", configPath, mode)
		fmt.Fprintf(os.Stderr, "Run: chmod 600 %s\n", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", configPath, err)
	}

	settings.RunsDir = expandTilde(settings.RunsDir)

	return &settings, nil
}

// GetDefaultSettings returns settings with sensible defaults.
// Credentials are left empty - they come from settings.json or env vars.
func GetDefaultSettings() *Settings {
	return &Settings{
		DeployTarget: TargetPages,
		Candidates: []Candidate{
			{Provider: "groq", Model: "llama-3.3-70b-versatile", MaxTokens: 4000},
			{Provider: "groq", Model: "gemma2-9b-it", MaxTokens: 4000},
			{Provider: "gemini", Model: "gemini-2.0-flash", MaxTokens: 8000},
		},
		CodeCandidates: []Candidate{
			{Provider: "deepseek", Model: "deepseek-chat", MaxTokens: 16000},
			{Provider: "groq", Model: "llama-3.3-70b-versatile", MaxTokens: 8000},
			{Provider: "gemini", Model: "gemini-2.0-flash", MaxTokens: 16000},
		},
		Limits: defaultLimits(),
	}
}

// DefaultLimits returns the built-in pipeline tunables.
func DefaultLimits() Limits {
	return defaultLimits()
}

func defaultLimits() Limits {
	return Limits{
		PromptCeiling:       20000,
		RateLimitBackoffSec: 10,
		RequestSpacingSec:   3,
		RepairMinRatio:      0.8,
		FindingCap:          5,
		ReputationCap:       3,
		WebsiteContentCap:   5000,
		VerifyAttempts:      8,
		VerifyDelaySec:      3,
		ChunkSize:           4000,
		AttachmentThreshold: 4000,
	}
}

// LoadWithFallback tries to load settings, falling back to defaults if not found.
// Returns the settings (possibly with defaults) and whether the config file existed.
func LoadWithFallback() (*Settings, bool) {
	settings, err := Load()
	existed := err == nil
	if !existed {
		settings = GetDefaultSettings()
	}

	// Fill in any missing defaults
	if settings.DeployTarget == "" {
		settings.DeployTarget = TargetPages
	}
	if len(settings.Candidates) == 0 {
		settings.Candidates = GetDefaultSettings().Candidates
	}
	if len(settings.CodeCandidates) == 0 {
		settings.CodeCandidates = GetDefaultSettings().CodeCandidates
	}
	def := defaultLimits()
	if settings.Limits.PromptCeiling == 0 {
		settings.Limits.PromptCeiling = def.PromptCeiling
	}
	if settings.Limits.RateLimitBackoffSec == 0 {
		settings.Limits.RateLimitBackoffSec = def.RateLimitBackoffSec
	}
	if settings.Limits.RequestSpacingSec == 0 {
		settings.Limits.RequestSpacingSec = def.RequestSpacingSec
	}
	if settings.Limits.RepairMinRatio == 0 {
		settings.Limits.RepairMinRatio = def.RepairMinRatio
	}
	if settings.Limits.FindingCap == 0 {
		settings.Limits.FindingCap = def.FindingCap
	}
	if settings.Limits.ReputationCap == 0 {
		settings.Limits.ReputationCap = def.ReputationCap
	}
	if settings.Limits.WebsiteContentCap == 0 {
		settings.Limits.WebsiteContentCap = def.WebsiteContentCap
	}
	if settings.Limits.VerifyAttempts == 0 {
		settings.Limits.VerifyAttempts = def.VerifyAttempts
	}
	if settings.Limits.VerifyDelaySec == 0 {
		settings.Limits.VerifyDelaySec = def.VerifyDelaySec
	}
	if settings.Limits.ChunkSize == 0 {
		settings.Limits.ChunkSize = def.ChunkSize
	}
	if settings.Limits.AttachmentThreshold == 0 {
		settings.Limits.AttachmentThreshold = def.AttachmentThreshold
	}
	if settings.RunsDir == "" {
		settings.RunsDir = filepath.Join(GetConfigDir(), "runs")
	}

	// Apply environment variable overrides (PAGEFORGE_* vars override settings.json)
	applyEnvOverrides(settings)

	return settings, existed
}

// HasGenerationProvider reports whether at least one generation API key
// is configured.
func (s *Settings) HasGenerationProvider() bool {
	c := s.Credentials
	return c.GroqAPIKey != "" || c.DeepSeekAPIKey != "" || c.GeminiAPIKey != ""
}

// HasDeployCredentials reports whether the selected deploy target has the
// credentials it needs. The sandbox target needs none.
func (s *Settings) HasDeployCredentials() bool {
	if s.DeployTarget == TargetSandbox {
		return true
	}
	return s.Credentials.CFAPIToken != "" && s.Credentials.CFAccountID != ""
}

// Validate checks startup requirements. A missing generation provider or
// missing deploy credentials is fatal: the pipeline never starts.
func (s *Settings) Validate() error {
	if s.DeployTarget != TargetPages && s.DeployTarget != TargetSandbox {
		return fmt.Errorf("invalid deploy_target %q (use %q or %q)", s.DeployTarget, TargetPages, TargetSandbox)
	}
	if !s.HasGenerationProvider() {
		return fmt.Errorf("no generation provider configured: set PAGEFORGE_GROQ_API_KEY, PAGEFORGE_DEEPSEEK_API_KEY, or PAGEFORGE_GEMINI_API_KEY")
	}
	if !s.HasDeployCredentials() {
		return fmt.Errorf("deploy target %q requires PAGEFORGE_CF_API_TOKEN and PAGEFORGE_CF_ACCOUNT_ID", s.DeployTarget)
	}
	// Candidates must name providers we have keys for; warn-level issues
	// are handled at client construction, but an empty usable list is fatal.
	if len(s.UsableCandidates(s.Candidates)) == 0 {
		return fmt.Errorf("no usable generation candidates: every configured candidate lacks an API key")
	}
	return nil
}

// UsableCandidates filters a candidate list down to providers with keys.
func (s *Settings) UsableCandidates(list []Candidate) []Candidate {
	var out []Candidate
	for _, c := range list {
		switch c.Provider {
		case "groq":
			if s.Credentials.GroqAPIKey != "" {
				out = append(out, c)
			}
		case "deepseek":
			if s.Credentials.DeepSeekAPIKey != "" {
				out = append(out, c)
			}
		case "gemini":
			if s.Credentials.GeminiAPIKey != "" {
				out = append(out, c)
			}
		}
	}
	return out
}

// PrintSetupInstructions prints helpful setup instructions when settings.json doesn't exist
func PrintSetupInstructions() {
	configPath := GetConfigPath()
	configDir := GetConfigDir()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "\033[1m\033[36mSetup Required:\033[0m\n")
	fmt.Fprintf(os.Stderr, "  No settings file found at: \033[35m%s\033[0m\n\n", configPath)
	fmt.Fprintf(os.Stderr, "  Create the settings file:\n")
	fmt.Fprintf(os.Stderr, "    \033[32mmkdir -p %s\033[0m\n\n", configDir)
	fmt.Fprintf(os.Stderr, "  Or configure via environment:\n")
	fmt.Fprintf(os.Stderr, "    \033[32mexport PAGEFORGE_GROQ_API_KEY='...'\033[0m\n")
	fmt.Fprintf(os.Stderr, "    \033[32mexport PAGEFORGE_CF_API_TOKEN='...'\033[0m\n")
	fmt.Fprintf(os.Stderr, "    \033[32mexport PAGEFORGE_CF_ACCOUNT_ID='...'\033[0m\n")
	fmt.Fprintf(os.Stderr, "\n")
}
