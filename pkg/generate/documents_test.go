package generate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"pageforge/pkg/brief"
	"pageforge/pkg/research"
)

// scriptedGen answers by matching a substring of the prompt.
type scriptedGen struct {
	mu      sync.Mutex
	prompts []string
	replies map[string]string // prompt substring -> reply
	errOn   string            // prompt substring that fails
	err     error
}

func (s *scriptedGen) Generate(_ context.Context, prompt string, _ int, _ float64) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	if s.errOn != "" && strings.Contains(prompt, s.errOn) {
		return "", s.err
	}
	for sub, reply := range s.replies {
		if strings.Contains(prompt, sub) {
			return reply, nil
		}
	}
	return "", errors.New("no scripted reply")
}

func testRecord() *brief.BusinessRecord {
	return &brief.BusinessRecord{Name: "Acme", Industry: "tools", Tone: "bold", Audience: "makers"}
}

func TestDocuments(t *testing.T) {
	gen := &scriptedGen{replies: map[string]string{
		"landing page strategist": "# PLAN.md content",
		"design systems expert":   "# DESIGN_SYSTEM.md content",
		"vibecoding platform":     "BUILD prompt content",
	}}
	w := NewWriter(gen, 5000, zap.NewNop())

	docs, err := w.Documents(context.Background(), testRecord(), &research.Bundle{})
	if err != nil {
		t.Fatalf("Documents() error = %v", err)
	}

	if docs.Plan.Content != "# PLAN.md content" || !docs.Plan.Valid {
		t.Errorf("plan = %+v", docs.Plan)
	}
	if docs.DesignSystem.Content != "# DESIGN_SYSTEM.md content" || !docs.DesignSystem.Valid {
		t.Errorf("design system = %+v", docs.DesignSystem)
	}
	if docs.BuildInstructions.Content != "BUILD prompt content" || !docs.BuildInstructions.Valid {
		t.Errorf("build instructions = %+v", docs.BuildInstructions)
	}
	if len(gen.prompts) != 3 {
		t.Errorf("generation calls = %d, want 3", len(gen.prompts))
	}
}

func TestDocuments_BuildPromptEmbedsSiblings(t *testing.T) {
	gen := &scriptedGen{replies: map[string]string{
		"landing page strategist": "PLAN-TEXT",
		"design systems expert":   "DESIGN-TEXT",
		"vibecoding platform":     "build",
	}}
	w := NewWriter(gen, 5000, zap.NewNop())

	if _, err := w.Documents(context.Background(), testRecord(), &research.Bundle{}); err != nil {
		t.Fatalf("Documents() error = %v", err)
	}

	last := gen.prompts[len(gen.prompts)-1]
	if !strings.Contains(last, "PLAN-TEXT") || !strings.Contains(last, "DESIGN-TEXT") {
		t.Error("build instructions prompt missing plan or design system content")
	}
}

func TestDocuments_PlanFailurePropagates(t *testing.T) {
	wantErr := errors.New("provider down")
	gen := &scriptedGen{
		replies: map[string]string{"design systems expert": "design"},
		errOn:   "landing page strategist",
		err:     wantErr,
	}
	w := NewWriter(gen, 5000, zap.NewNop())

	if _, err := w.Documents(context.Background(), testRecord(), &research.Bundle{}); !errors.Is(err, wantErr) {
		t.Errorf("Documents() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestDocuments_EmptyPlanInvalid(t *testing.T) {
	gen := &scriptedGen{replies: map[string]string{
		"landing page strategist": "   \n  ",
		"design systems expert":   "design",
		"vibecoding platform":     "build",
	}}
	w := NewWriter(gen, 5000, zap.NewNop())

	if _, err := w.Documents(context.Background(), testRecord(), &research.Bundle{}); err == nil {
		t.Error("Documents() error = nil, want empty-plan failure")
	}
}
