package pipeline

import (
	"fmt"
	"strings"

	"pageforge/pkg/envelope"
)

// BuildReport renders the per-run markdown report written alongside the
// artifacts. It is the durable record of what each stage did; the chat
// transcript is not.
func BuildReport(runID string, sess *Session, envelopes []*envelope.Envelope) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Run %s\n\n", runID)
	if sess.Record != nil && sess.Record.Name != "" {
		fmt.Fprintf(&b, "Business: %s\n", sess.Record.Name)
	}
	fmt.Fprintf(&b, "Outcome: %s\n", sess.Stage)
	if sess.Err != "" {
		fmt.Fprintf(&b, "Error: %s\n", sess.Err)
	}
	if sess.Deploy != nil && sess.Deploy.URL != "" {
		fmt.Fprintf(&b, "URL: %s\n", sess.Deploy.URL)
	}

	b.WriteString("\n## Stages\n\n")
	b.WriteString("| Stage | Status | Duration | Notes |\n")
	b.WriteString("|-------|--------|----------|-------|\n")
	for _, env := range envelopes {
		stage, dur := "", int64(0)
		if env.Metrics != nil {
			stage = env.Metrics.Stage
			dur = env.Metrics.DurationMs
		}
		note := ""
		if env.Error != nil {
			note = fmt.Sprintf("%s: %s", env.Error.Code, env.Error.Message)
		} else if env.OutputRef != "" {
			note = env.OutputRef
		}
		fmt.Fprintf(&b, "| %s | %s | %dms | %s |\n", stage, env.Status, dur, sanitizeCell(note))
	}

	if sess.Research != nil && len(sess.Research.Sources) > 0 {
		b.WriteString("\n## Sources\n\n")
		for _, src := range sess.Research.Sources {
			fmt.Fprintf(&b, "- [%s] %s\n", src.Kind, src.URL)
		}
	}
	return b.String()
}

func sanitizeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
