// Package workspace manages per-run artifact directories so generated
// documents survive a failed deploy and can be re-delivered or retried.
package workspace

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Artifact filenames written into each run directory.
const (
	FilePlan         = "PLAN.md"
	FileDesignSystem = "DESIGN_SYSTEM.md"
	FileBuildPrompt  = "BUILD_PROMPT.txt"
	FileStaticSite   = "index.html"
	FileComponent    = "LandingPage.jsx"
	FileReport       = "report.md"
)

type Workspace struct {
	BaseDir string
	RunID   string
	RunDir  string
}

// GenerateRunID creates YYYYMMDD-HHMMSS-{4 hex bytes}
func GenerateRunID() string {
	now := time.Now()
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// Fallback: use nanoseconds if crypto/rand fails
		return fmt.Sprintf("%s-%08x", now.Format("20060102-150405"), now.UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("%s-%s", now.Format("20060102-150405"), hex.EncodeToString(b))
}

func New(baseDir string) (*Workspace, error) {
	runID := GenerateRunID()
	runDir := filepath.Join(baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, err
	}

	return &Workspace{BaseDir: baseDir, RunID: runID, RunDir: runDir}, nil
}

func (w *Workspace) ArtifactPath(name string) string {
	return filepath.Join(w.RunDir, name)
}

// WriteArtifact writes a named text artifact into the run directory and
// returns its path. Artifacts may contain API material the user pasted
// into a brief, so files are not world-readable.
func (w *Workspace) WriteArtifact(name, content string) (string, error) {
	path := w.ArtifactPath(name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", err
	}
	return path, nil
}

// ReadArtifact reads a previously written artifact.
func (w *Workspace) ReadArtifact(name string) (string, error) {
	data, err := os.ReadFile(w.ArtifactPath(name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
