package textgen

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiProvider calls the Gemini API through the official SDK.
type GeminiProvider struct {
	apiKey string
	log    *zap.Logger
}

func NewGeminiProvider(apiKey string, log *zap.Logger) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey, log: log}
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Complete(ctx context.Context, req Request) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("gemini: API key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		if isGeminiRateLimit(err) {
			return "", fmt.Errorf("gemini %s: %w: %s", req.Model, ErrRateLimited, capDiag(err))
		}
		return "", fmt.Errorf("gemini %s: %w", req.Model, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty completion")
	}

	p.log.Debug("completion finished",
		zap.String("provider", "gemini"),
		zap.String("model", req.Model),
		zap.Int("response_len", len(text)))
	return text, nil
}

// isGeminiRateLimit detects quota rejections from the SDK error text.
func isGeminiRateLimit(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
