// Package designtokens holds the color palettes and design-principles
// text injected into website generation prompts.
package designtokens

import (
	"fmt"
	"strings"
)

// DefaultPalette is used when no palette is requested or the name is
// unknown.
const DefaultPalette = "modern"

var shadeOrder = []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900"}

// Palette is a full Tailwind color scale pair plus semantic accents.
type Palette struct {
	Primary map[string]string
	Neutral map[string]string
	Accent  string
	Success string
	Warning string
	Error   string
}

var palettes = map[string]Palette{
	"modern": {
		Primary: map[string]string{"50": "#eff6ff", "100": "#dbeafe", "200": "#bfdbfe", "300": "#93c5fd", "400": "#60a5fa", "500": "#3b82f6", "600": "#2563eb", "700": "#1d4ed8", "800": "#1e40af", "900": "#1e3a8a"},
		Neutral: map[string]string{"50": "#fafafa", "100": "#f4f4f5", "200": "#e4e4e7", "300": "#d4d4d8", "400": "#a1a1aa", "500": "#71717a", "600": "#52525b", "700": "#3f3f46", "800": "#27272a", "900": "#18181b"},
		Accent:  "#8b5cf6",
		Success: "#22c55e",
		Warning: "#f59e0b",
		Error:   "#ef4444",
	},
	"elegant": {
		Primary: map[string]string{"50": "#fdf4ff", "100": "#fae8ff", "200": "#f5d0fe", "300": "#f0abfc", "400": "#e879f9", "500": "#d946ef", "600": "#c026d3", "700": "#a21caf", "800": "#86198f", "900": "#701a75"},
		Neutral: map[string]string{"50": "#f8fafc", "100": "#f1f5f9", "200": "#e2e8f0", "300": "#cbd5e1", "400": "#94a3b8", "500": "#64748b", "600": "#475569", "700": "#334155", "800": "#1e293b", "900": "#0f172a"},
		Accent:  "#06b6d4",
		Success: "#10b981",
		Warning: "#f59e0b",
		Error:   "#f43f5e",
	},
	"bold": {
		Primary: map[string]string{"50": "#fef2f2", "100": "#fee2e2", "200": "#fecaca", "300": "#fca5a5", "400": "#f87171", "500": "#ef4444", "600": "#dc2626", "700": "#b91c1c", "800": "#991b1b", "900": "#7f1d1d"},
		Neutral: map[string]string{"50": "#f9fafb", "100": "#f3f4f6", "200": "#e5e7eb", "300": "#d1d5db", "400": "#9ca3af", "500": "#6b7280", "600": "#4b5563", "700": "#374151", "800": "#1f2937", "900": "#111827"},
		Accent:  "#fbbf24",
		Success: "#34d399",
		Warning: "#fb923c",
		Error:   "#f87171",
	},
	"minimal": {
		Primary: map[string]string{"50": "#f9fafb", "100": "#f3f4f6", "200": "#e5e7eb", "300": "#d1d5db", "400": "#9ca3af", "500": "#6b7280", "600": "#4b5563", "700": "#374151", "800": "#1f2937", "900": "#030712"},
		Neutral: map[string]string{"50": "#fafafa", "100": "#f5f5f5", "200": "#e5e5e5", "300": "#d4d4d4", "400": "#a3a3a3", "500": "#737373", "600": "#525252", "700": "#404040", "800": "#262626", "900": "#171717"},
		Accent:  "#0ea5e9",
		Success: "#22c55e",
		Warning: "#eab308",
		Error:   "#dc2626",
	},
}

// Get returns the named palette, falling back to the default.
func Get(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[DefaultPalette]
}

// Names lists the available palette names.
func Names() []string {
	return []string{"modern", "elegant", "bold", "minimal"}
}

// TailwindConfig renders the inline tailwind.config snippet for a
// palette. Shades are emitted in ascending order so the output is
// deterministic.
func TailwindConfig(paletteName string) string {
	p := Get(paletteName)
	return fmt.Sprintf(`
    tailwind.config = {
      theme: {
        extend: {
          colors: {
            primary: %s,
            neutral: %s,
            accent: '%s',
            success: '%s',
            warning: '%s',
            error: '%s',
          },
          fontFamily: {
            sans: ['Inter', 'system-ui', 'sans-serif'],
          },
          boxShadow: {
            'soft': '0 2px 15px -3px rgba(0, 0, 0, 0.07), 0 10px 20px -2px rgba(0, 0, 0, 0.04)',
          },
        },
      },
    }
    `, scaleJSON(p.Primary), scaleJSON(p.Neutral), p.Accent, p.Success, p.Warning, p.Error)
}

func scaleJSON(scale map[string]string) string {
	parts := make([]string, 0, len(shadeOrder))
	for _, shade := range shadeOrder {
		parts = append(parts, fmt.Sprintf("%q: %q", shade, scale[shade]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// PromptAddition is the design-principles addendum embedded in every
// website generation prompt.
func PromptAddition() string {
	return promptAddition
}

const promptAddition = `
## DESIGN PRINCIPLES (CRITICAL - FOLLOW EXACTLY)

### Visual Hierarchy
- Headlines: text-4xl md:text-5xl lg:text-6xl font-bold tracking-tight
- Subheadlines: text-xl md:text-2xl text-neutral-600 font-normal
- Body: text-base md:text-lg text-neutral-600 leading-relaxed
- Use max-w-3xl for readable text blocks

### Spacing (Use Generously)
- Sections: py-20 md:py-28 lg:py-32
- Between elements: space-y-6 or space-y-8
- Container: max-w-7xl mx-auto px-4 sm:px-6 lg:px-8

### Colors (Use Semantic)
- Primary actions: bg-primary-600 hover:bg-primary-700
- Secondary: bg-white border border-neutral-200
- Text: text-neutral-900 (headings), text-neutral-600 (body)
- Backgrounds: bg-white, bg-neutral-50, bg-gradient-to-b from-white to-neutral-50

### Modern UI Patterns
- Rounded corners: rounded-xl or rounded-2xl for cards
- Subtle shadows: shadow-sm hover:shadow-md transition-shadow
- Borders: border border-neutral-200 or ring-1 ring-neutral-900/5
- Hover states: Always include hover transitions
- Focus states: focus:ring-2 focus:ring-primary-500 focus:ring-offset-2

### Buttons (EXACT patterns)
Primary: "inline-flex items-center justify-center gap-2 rounded-xl bg-primary-600 px-6 py-3 text-base font-semibold text-white shadow-lg shadow-primary-500/25 transition-all hover:bg-primary-700 hover:shadow-xl hover:shadow-primary-500/30 focus:outline-none focus:ring-2 focus:ring-primary-500 focus:ring-offset-2"

Secondary: "inline-flex items-center justify-center gap-2 rounded-xl border-2 border-neutral-200 bg-white px-6 py-3 text-base font-semibold text-neutral-900 transition-all hover:border-neutral-300 hover:bg-neutral-50"

### Cards
"rounded-2xl border border-neutral-200 bg-white p-8 shadow-sm transition-all duration-300 hover:shadow-lg hover:border-neutral-300"

### Hero Section Pattern
- Full viewport or near: min-h-[90vh] or min-h-screen
- Centered content with max-width
- Large headline with gradient or accent color
- Clear value proposition
- Two CTAs (primary + secondary)
- Trust indicators below CTAs
- Optional: subtle background pattern or gradient

### Feature Grid Pattern
- 3-column grid on desktop: grid md:grid-cols-3 gap-8
- Icon + Title + Description per card
- Consistent icon styling: w-12 h-12 text-primary-600
- Card hover effects

### Testimonial Pattern
- Avatar + Name + Role + Quote
- Star ratings if applicable
- Subtle card background
- Consider carousel for multiple

### CTA Section Pattern
- Contrasting background: bg-primary-600 or bg-neutral-900
- White/light text
- Centered content
- Single focused action
- Optional: subtle pattern overlay

### Footer Pattern
- Multi-column layout
- Logo + tagline
- Navigation links grouped
- Social icons
- Copyright + legal links
`
