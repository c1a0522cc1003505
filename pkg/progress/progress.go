// Package progress renders pipeline status on the terminal. It doubles
// as the pipeline's notifier for one-shot CLI runs, so the same status
// text a chat user would see lands on stdout instead.
package progress

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"pageforge/pkg/pipeline"
)

const (
	iconPending = "○"
	iconRunning = "●"
	iconDone    = "✓"
	iconFailed  = "✗"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	urlStyle     = lipgloss.NewStyle().Bold(true).Underline(true)
)

// stages in display order, excluding terminal states.
var stages = []pipeline.Stage{
	pipeline.StageExtracting,
	pipeline.StageResearching,
	pipeline.StagePlanning,
	pipeline.StageDesigningSystem,
	pipeline.StageGeneratingCode,
	pipeline.StageDeploying,
}

// Display writes styled stage lines to w as the pipeline advances.
type Display struct {
	mu       sync.Mutex
	w        io.Writer
	started  time.Time
	stageAt  map[pipeline.Stage]time.Time
	lastSeen pipeline.Stage
}

func NewDisplay(w io.Writer) *Display {
	return &Display{
		w:       w,
		started: time.Now(),
		stageAt: make(map[pipeline.Stage]time.Time),
	}
}

// Header prints the run banner with the stage checklist.
func (d *Display) Header(runID, business string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	title := "pageforge"
	if business != "" {
		title = fmt.Sprintf("pageforge · %s", business)
	}
	fmt.Fprintln(d.w, headerStyle.Render(title))
	if runID != "" {
		fmt.Fprintln(d.w, dimStyle.Render("run "+runID))
	}
	for _, s := range stages {
		fmt.Fprintf(d.w, "  %s %s\n", dimStyle.Render(iconPending), dimStyle.Render(pipeline.Label(s)))
	}
	fmt.Fprintln(d.w)
}

// Notify implements pipeline.Notifier. Stage labels become styled
// progress lines; anything else prints as-is.
func (d *Display) Notify(ctx context.Context, user, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, s := range stages {
		if text == pipeline.Label(s) {
			d.finishPrev(s)
			d.stageAt[s] = time.Now()
			d.lastSeen = s
			fmt.Fprintf(d.w, "%s %s\n", runningStyle.Render(iconRunning), pipeline.Label(s))
			return nil
		}
	}
	switch {
	case strings.HasPrefix(text, pipeline.Label(pipeline.StageComplete)):
		d.finishPrev("")
		url := strings.TrimSpace(strings.TrimPrefix(text, pipeline.Label(pipeline.StageComplete)))
		fmt.Fprintf(d.w, "\n%s %s %s\n", doneStyle.Render(iconDone), pipeline.Label(pipeline.StageComplete), dimStyle.Render("("+formatDuration(time.Since(d.started))+")"))
		if url != "" {
			fmt.Fprintf(d.w, "  %s\n", urlStyle.Render(url))
		}
	case strings.HasPrefix(text, pipeline.Label(pipeline.StageFailed)):
		fmt.Fprintf(d.w, "%s %s\n", failedStyle.Render(iconFailed), text)
	default:
		fmt.Fprintln(d.w, text)
	}
	return nil
}

// SendDocument implements pipeline.Notifier. The console run keeps
// documents on disk, so only the name is echoed.
func (d *Display) SendDocument(ctx context.Context, user, name string, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, "  %s\n", dimStyle.Render(fmt.Sprintf("wrote %s (%d bytes)", name, len(content))))
	return nil
}

// finishPrev closes out the line for the stage that was running, if any.
// Caller holds d.mu.
func (d *Display) finishPrev(next pipeline.Stage) {
	if d.lastSeen == "" || d.lastSeen == next {
		return
	}
	if at, ok := d.stageAt[d.lastSeen]; ok {
		fmt.Fprintf(d.w, "%s %s %s\n", doneStyle.Render(iconDone), pipeline.Label(d.lastSeen), dimStyle.Render("("+formatDuration(time.Since(at))+")"))
	}
	d.lastSeen = ""
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		m := int(d.Minutes())
		s := int(d.Seconds()) - m*60
		return fmt.Sprintf("%dm%02ds", m, s)
	}
}
