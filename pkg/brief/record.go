// Package brief turns a free-text business description into a structured
// BusinessRecord via LLM extraction.
package brief

import (
	"fmt"
	"strings"
)

// Sentinel the extraction model emits for fields the brief does not cover.
// Such fields are omitted from the record, never defaulted.
const NotProvided = "NOT PROVIDED"

// Field labels, in extraction order. The extraction prompt asks for one
// "LABEL: value" line per field and the parser locates each by label.
const (
	FieldName       = "BUSINESS_NAME"
	FieldWebsite    = "WEBSITE"
	FieldIndustry   = "INDUSTRY"
	FieldLocation   = "LOCATION"
	FieldAudience   = "TARGET_CUSTOMER"
	FieldOffer      = "MAIN_OFFER"
	FieldGoal       = "PAGE_GOAL"
	FieldTone       = "BRAND_TONE"
	FieldColors     = "COLORS"
	FieldFonts      = "FONTS"
	FieldExamples   = "EXAMPLE_SITES"
	FieldExtraNotes = "ADDITIONAL_CONTEXT"
)

// FieldOrder is the canonical ordering used by prompts and formatting.
var FieldOrder = []string{
	FieldName, FieldWebsite, FieldIndustry, FieldLocation,
	FieldAudience, FieldOffer, FieldGoal, FieldTone,
	FieldColors, FieldFonts, FieldExamples, FieldExtraNotes,
}

// BusinessRecord is the structured extraction of a brief. Missing fields
// are empty strings. Immutable after extraction.
type BusinessRecord struct {
	Name       string
	Website    string
	Industry   string
	Location   string
	Audience   string
	Offer      string
	Goal       string
	Tone       string
	Colors     string
	Fonts      string
	Examples   string
	ExtraNotes string
}

// Get returns the value for a field label, empty if unset or unknown.
func (r *BusinessRecord) Get(label string) string {
	switch label {
	case FieldName:
		return r.Name
	case FieldWebsite:
		return r.Website
	case FieldIndustry:
		return r.Industry
	case FieldLocation:
		return r.Location
	case FieldAudience:
		return r.Audience
	case FieldOffer:
		return r.Offer
	case FieldGoal:
		return r.Goal
	case FieldTone:
		return r.Tone
	case FieldColors:
		return r.Colors
	case FieldFonts:
		return r.Fonts
	case FieldExamples:
		return r.Examples
	case FieldExtraNotes:
		return r.ExtraNotes
	}
	return ""
}

func (r *BusinessRecord) set(label, value string) {
	switch label {
	case FieldName:
		r.Name = value
	case FieldWebsite:
		r.Website = value
	case FieldIndustry:
		r.Industry = value
	case FieldLocation:
		r.Location = value
	case FieldAudience:
		r.Audience = value
	case FieldOffer:
		r.Offer = value
	case FieldGoal:
		r.Goal = value
	case FieldTone:
		r.Tone = value
	case FieldColors:
		r.Colors = value
	case FieldFonts:
		r.Fonts = value
	case FieldExamples:
		r.Examples = value
	case FieldExtraNotes:
		r.ExtraNotes = value
	}
}

// FormatForPrompt renders the record as labeled lines for downstream
// prompts, skipping unset fields. Deterministic: same record, same text.
func (r *BusinessRecord) FormatForPrompt() string {
	var b strings.Builder
	for _, label := range FieldOrder {
		if v := r.Get(label); v != "" {
			fmt.Fprintf(&b, "%s: %s\n", humanLabel(label), v)
		}
	}
	return b.String()
}

func humanLabel(label string) string {
	words := strings.Split(strings.ToLower(label), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Parse builds a record from the model's labeled-line response. A line is
// "LABEL: value"; unknown labels are ignored, and values equal to the
// sentinel are dropped so missing data stays missing.
func Parse(response string) *BusinessRecord {
	rec := &BusinessRecord{}
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		label := strings.ToUpper(strings.TrimSpace(strings.Trim(line[:idx], "*_ ")))
		value := strings.TrimSpace(strings.Trim(line[idx+1:], "* "))
		if value == "" || strings.EqualFold(value, NotProvided) {
			continue
		}
		rec.set(label, value)
	}
	return rec
}
