package textgen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"pageforge/pkg/settings"
)

// TruncationMarker is appended when a prompt exceeds the size ceiling.
const TruncationMarker = "\n\n[Content truncated for length]"

// Client tries generation candidates in order until one succeeds.
// Callers must not assume retried calls are idempotent: providers are
// non-deterministic and repeats will not be byte-identical.
type Client struct {
	providers      map[string]Provider
	candidates     []settings.Candidate
	codeCandidates []settings.Candidate
	limits         settings.Limits
	log            *zap.Logger

	mu            sync.Mutex
	lastCall      time.Time
	cooldownUntil time.Time
}

// NewClient builds a client from settings, constructing one provider per
// configured API key. Candidates whose provider has no key are dropped.
func NewClient(s *settings.Settings, log *zap.Logger) (*Client, error) {
	providers := make(map[string]Provider)
	if s.Credentials.GroqAPIKey != "" {
		providers["groq"] = NewGroqProvider(s.Credentials.GroqAPIKey, log)
	}
	if s.Credentials.DeepSeekAPIKey != "" {
		providers["deepseek"] = NewDeepSeekProvider(s.Credentials.DeepSeekAPIKey, log)
	}
	if s.Credentials.GeminiAPIKey != "" {
		providers["gemini"] = NewGeminiProvider(s.Credentials.GeminiAPIKey, log)
	}
	if len(providers) == 0 {
		return nil, fmt.Errorf("no generation provider configured")
	}

	return &Client{
		providers:      providers,
		candidates:     s.UsableCandidates(s.Candidates),
		codeCandidates: s.UsableCandidates(s.CodeCandidates),
		limits:         s.Limits,
		log:            log,
	}, nil
}

// NewClientWithProviders wires explicit providers and candidate lists.
// Used by tests and by callers that build providers themselves.
func NewClientWithProviders(providers map[string]Provider, candidates, codeCandidates []settings.Candidate, limits settings.Limits, log *zap.Logger) *Client {
	return &Client{
		providers:      providers,
		candidates:     candidates,
		codeCandidates: codeCandidates,
		limits:         limits,
		log:            log,
	}
}

// Generate produces text using the general candidate list.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	return c.generate(ctx, c.candidates, prompt, maxTokens, temperature)
}

// GenerateCode produces code using the code-tuned candidate list, which
// orders code-capable models first.
func (c *Client) GenerateCode(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	return c.generate(ctx, c.codeCandidates, prompt, maxTokens, temperature)
}

func (c *Client) generate(ctx context.Context, candidates []settings.Candidate, prompt string, maxTokens int, temperature float64) (string, error) {
	if len(candidates) == 0 {
		return "", &ExhaustedError{}
	}

	prompt = c.truncatePrompt(prompt)

	var attempts []CandidateError
	for _, cand := range candidates {
		provider, ok := c.providers[cand.Provider]
		if !ok {
			attempts = append(attempts, CandidateError{
				Provider: cand.Provider,
				Model:    cand.Model,
				Err:      "provider not configured",
			})
			continue
		}

		if err := c.waitTurn(ctx); err != nil {
			return "", err
		}

		tokens := maxTokens
		if tokens <= 0 || (cand.MaxTokens > 0 && tokens > cand.MaxTokens) {
			tokens = cand.MaxTokens
		}

		c.log.Info("trying candidate",
			zap.String("provider", cand.Provider),
			zap.String("model", cand.Model),
			zap.Int("max_tokens", tokens))

		text, err := provider.Complete(ctx, Request{
			Model:       cand.Model,
			Prompt:      prompt,
			MaxTokens:   tokens,
			Temperature: temperature,
		})
		if err == nil {
			return text, nil
		}

		attempts = append(attempts, CandidateError{
			Provider: cand.Provider,
			Model:    cand.Model,
			Err:      capDiag(err),
		})
		c.log.Warn("candidate failed",
			zap.String("provider", cand.Provider),
			zap.String("model", cand.Model),
			zap.Error(err))

		if errors.Is(err, ErrRateLimited) {
			// Back off before the next attempt, whichever request
			// that turns out to be.
			c.mu.Lock()
			c.cooldownUntil = time.Now().Add(time.Duration(c.limits.RateLimitBackoffSec) * time.Second)
			c.mu.Unlock()
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", &ExhaustedError{Attempts: attempts}
}

// truncatePrompt caps the prompt at the configured ceiling, appending a
// marker so the model knows content was cut.
func (c *Client) truncatePrompt(prompt string) string {
	ceiling := c.limits.PromptCeiling
	if ceiling <= 0 || len(prompt) <= ceiling {
		return prompt
	}
	return prompt[:ceiling] + TruncationMarker
}

// waitTurn enforces request spacing and any active rate-limit cooldown.
// The wait is cancellable through the context.
func (c *Client) waitTurn(ctx context.Context) error {
	c.mu.Lock()
	now := time.Now()
	next := c.lastCall.Add(time.Duration(c.limits.RequestSpacingSec) * time.Second)
	if c.cooldownUntil.After(next) {
		next = c.cooldownUntil
	}
	wait := next.Sub(now)
	c.lastCall = now
	if wait > 0 {
		c.lastCall = next
	}
	c.mu.Unlock()

	if wait <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
