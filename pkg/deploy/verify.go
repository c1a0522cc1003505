package deploy

import (
	"context"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	verifyTimeout     = 20 * time.Second
	verifyMinContent  = 100
	defaultAttempts   = 8
	defaultVerifyWait = 3 * time.Second
)

// CheckResult is the outcome of one verification probe.
type CheckResult struct {
	URL        string
	Loads      bool
	HasContent bool
	Err        string
}

func (c CheckResult) OK() bool { return c.Loads && c.HasContent }

// Verifier polls a deployed URL until it serves real content.
// Verification is advisory: callers report the URL either way.
type Verifier struct {
	httpClient *http.Client
	attempts   int
	delay      time.Duration
	log        *zap.Logger
}

func NewVerifier(attempts int, delay time.Duration, log *zap.Logger) *Verifier {
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	if delay <= 0 {
		delay = defaultVerifyWait
	}
	return &Verifier{
		httpClient: &http.Client{Timeout: verifyTimeout},
		attempts:   attempts,
		delay:      delay,
		log:        log,
	}
}

// Check probes the URL once.
func (v *Verifier) Check(ctx context.Context, url string) CheckResult {
	result := CheckResult{URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		result.Err = err.Error()
		return result
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	result.Loads = resp.StatusCode == http.StatusOK
	result.HasContent = len(body) > verifyMinContent
	return result
}

// WaitForDeployment polls with a fixed attempt count and delay, stopping
// early on success or context cancellation. The last probe result is
// returned either way.
func (v *Verifier) WaitForDeployment(ctx context.Context, url string) CheckResult {
	var result CheckResult
	for i := 0; i < v.attempts; i++ {
		v.log.Info("verifying deployment",
			zap.String("url", url),
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", v.attempts))

		result = v.Check(ctx, url)
		if result.OK() {
			return result
		}

		timer := time.NewTimer(v.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			result.Err = ctx.Err().Error()
			return result
		case <-timer.C:
		}
	}
	return result
}
