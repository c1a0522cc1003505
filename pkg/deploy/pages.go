package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"pageforge/pkg/lock"
)

const (
	cloudflareBaseURL = "https://api.cloudflare.com/client/v4"
	pagesAPITimeout   = 30 * time.Second
	wranglerTimeout   = 2 * time.Minute
	wranglerOutputCap = 500
)

var pagesURLPattern = regexp.MustCompile(`https://[a-z0-9-]+\.[a-z0-9-]+\.pages\.dev`)

// PagesDeployer publishes a single static document to Cloudflare Pages.
// The project is created through the API; the upload itself goes through
// the wrangler CLI, which owns the Pages asset protocol.
type PagesDeployer struct {
	apiToken   string
	accountID  string
	baseURL    string
	wrangler   string
	lockDir    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewPagesDeployer(apiToken, accountID string, log *zap.Logger) *PagesDeployer {
	return &PagesDeployer{
		apiToken:   apiToken,
		accountID:  accountID,
		baseURL:    cloudflareBaseURL,
		wrangler:   findWrangler(),
		lockDir:    defaultLockDir(),
		httpClient: &http.Client{Timeout: pagesAPITimeout},
		log:        log,
	}
}

func (d *PagesDeployer) Name() string { return "pages" }

// Deploy creates the project if needed, writes the document to a scratch
// directory, and runs wrangler against it.
func (d *PagesDeployer) Deploy(ctx context.Context, site Site) (*Result, error) {
	if d.apiToken == "" || d.accountID == "" {
		return nil, fmt.Errorf("cloudflare credentials not configured")
	}

	// Concurrent wrangler uploads to one project interleave deployments.
	fl, err := lock.Acquire(ctx, d.lockDir, site.ProjectName)
	if err != nil {
		return nil, err
	}
	defer fl.Release()

	if err := d.ensureProject(ctx, site.ProjectName); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "pageforge-deploy-")
	if err != nil {
		return nil, fmt.Errorf("create deploy dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(site.HTML), 0o644); err != nil {
		return nil, fmt.Errorf("write index.html: %w", err)
	}

	out, err := d.runWrangler(ctx, dir, site.ProjectName)
	if err != nil {
		return nil, err
	}

	projectURL := fmt.Sprintf("https://%s.pages.dev", site.ProjectName)
	deployURL := projectURL
	if m := pagesURLPattern.FindString(out); m != "" {
		deployURL = m
	}

	d.log.Info("pages deploy complete",
		zap.String("project", site.ProjectName),
		zap.String("url", deployURL))

	return &Result{URL: deployURL, ProjectURL: projectURL, ID: site.ProjectName}, nil
}

// ensureProject creates the Pages project, treating "already exists" as
// success so repeated deploys to the same project are idempotent.
func (d *PagesDeployer) ensureProject(ctx context.Context, name string) error {
	getURL := fmt.Sprintf("%s/accounts/%s/pages/projects/%s", d.baseURL, d.accountID, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, getURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+d.apiToken)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("check project %s: %w", name, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		d.log.Debug("project exists", zap.String("project", name))
		return nil
	}

	payload, _ := json.Marshal(map[string]string{
		"name":              name,
		"production_branch": "main",
	})
	createURL := fmt.Sprintf("%s/accounts/%s/pages/projects", d.baseURL, d.accountID)
	req, err = http.NewRequestWithContext(ctx, http.MethodPost, createURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+d.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err = d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("create project %s: %w", name, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		d.log.Info("created project", zap.String("project", name))
		return nil
	}
	if strings.Contains(strings.ToLower(string(body)), "already exists") {
		return nil
	}
	return fmt.Errorf("create project %s: status %d: %s", name, resp.StatusCode, capOutput(string(body)))
}

func (d *PagesDeployer) runWrangler(ctx context.Context, dir, projectName string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, wranglerTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, d.wrangler,
		"pages", "deploy", dir,
		"--project-name="+projectName,
		"--commit-dirty=true",
		"--branch=main",
	)
	cmd.Env = append(os.Environ(),
		"CLOUDFLARE_API_TOKEN="+d.apiToken,
		"CLOUDFLARE_ACCOUNT_ID="+d.accountID,
	)

	d.log.Info("running wrangler deploy", zap.String("project", projectName))
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("wrangler deploy failed: %s", capOutput(string(out)))
	}
	return string(out), nil
}

func defaultLockDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "pageforge-locks")
	}
	return filepath.Join(home, ".pageforge", "locks")
}

// findWrangler prefers a project-local install, falling back to PATH.
func findWrangler() string {
	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, "node_modules", ".bin", "wrangler")
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}
	return "wrangler"
}

func capOutput(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > wranglerOutputCap {
		return s[:wranglerOutputCap]
	}
	return s
}
