package research

import (
	"fmt"
	"strings"
)

const maxPromptSources = 10

// FormatForPrompt flattens a bundle into markdown sections for prompt
// consumption. Pure and deterministic: the same bundle always yields
// byte-identical text.
func FormatForPrompt(b *Bundle, websiteContentCap int) string {
	if b == nil {
		return ""
	}

	var sections []string

	if b.Website != nil && b.Website.OK {
		content := b.Website.Content
		if websiteContentCap > 0 && len(content) > websiteContentCap {
			content = content[:websiteContentCap]
		}
		sections = append(sections, fmt.Sprintf(
			"## BUSINESS WEBSITE CONTENT\nURL: %s\nTitle: %s\nMeta Description: %s\n\nContent:\n%s\n",
			b.Website.URL, b.Website.Title, b.Website.Description, content))
	}

	if sec := findingSection("## COMPETITOR LANDSCAPE", b.Competitors); sec != "" {
		sections = append(sections, sec)
	}
	if sec := findingSection("## INDUSTRY INSIGHTS", b.IndustryInsights); sec != "" {
		sections = append(sections, sec)
	}
	if sec := findingSection("## CUSTOMER CONCERNS & TRUST FACTORS", b.TrustSignals); sec != "" {
		sections = append(sections, sec)
	}

	if len(b.Sources) > 0 {
		sources := b.Sources
		if len(sources) > maxPromptSources {
			sources = sources[:maxPromptSources]
		}
		lines := make([]string, 0, len(sources))
		for _, s := range sources {
			lines = append(lines, fmt.Sprintf("- [%s] %s: %s", strings.ToUpper(s.Kind), s.Description, s.URL))
		}
		sections = append(sections, "## SOURCES CONSULTED\n"+strings.Join(lines, "\n")+"\n")
	}

	return strings.Join(sections, "\n\n")
}

func findingSection(heading string, findings []Finding) string {
	if len(findings) == 0 {
		return ""
	}
	lines := make([]string, 0, len(findings))
	for _, f := range findings {
		lines = append(lines, fmt.Sprintf("- **%s**: %s", f.Title, f.Snippet))
	}
	return heading + "\n" + strings.Join(lines, "\n") + "\n"
}
