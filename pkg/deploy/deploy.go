// Package deploy publishes generated sites. Two backends exist: a
// Cloudflare Pages deployer for single static documents and a
// CodeSandbox deployer for packaged React projects.
package deploy

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"unicode"
)

const (
	projectNameMaxLen  = 35
	fallbackProject    = "landing"
	timestampSuffixFmt = "01021504" // MMDDHHMM, coarse enough to dodge collisions
)

// Site is the deployable output of a run. HTML is set for the static
// backend; Files for the sandbox backend.
type Site struct {
	ProjectName string
	Title       string
	HTML        string
	Files       map[string]string
}

// Result reports where a deployment landed.
type Result struct {
	URL        string // live URL to hand to the user
	ProjectURL string // stable project-level URL, when the backend has one
	EditorURL  string // sandbox editor URL, sandbox backend only
	ID         string // provider-assigned identifier
}

// Deployer publishes a site and returns its public location.
type Deployer interface {
	Name() string
	Deploy(ctx context.Context, site Site) (*Result, error)
}

// ProjectName derives a hosting-safe project name from a business name:
// ascii-folded, lowercased, constrained to [a-z0-9-], hyphens collapsed,
// length capped, and suffixed with a coarse timestamp so repeated runs
// for the same business do not collide.
func ProjectName(businessName string, now time.Time) string {
	name := asciiFold(businessName)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")

	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	name = b.String()
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}
	name = strings.Trim(name, "-")
	if len(name) > projectNameMaxLen {
		name = strings.Trim(name[:projectNameMaxLen], "-")
	}
	if name == "" {
		name = fallbackProject
	}
	return name + "-" + now.Format(timestampSuffixFmt)
}

// asciiFold decomposes accented characters and strips the combining
// marks, so "café" folds to "cafe". Non-ascii leftovers are dropped by
// the caller's character filter.
func asciiFold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
