package sitegen

import (
	"fmt"
	"strings"
)

const defaultSizeFloor = 8000

// Markers a model leaves behind when it elides content instead of
// writing it out.
var incompleteMarkers = []string{
	"// rest",
	"/* rest",
	"...",
	"[MORE",
	"TODO:",
	"<!-- Add more",
}

// Structural keywords every complete landing page contains.
var requiredKeywords = []string{"nav", "hero", "footer", "section"}

var structuralTags = []string{"<!DOCTYPE", "<html", "<head", "<body", "</html>"}

// Validator decides whether generated code is complete. Substring checks
// are the default; stricter structural validation can be swapped in
// without touching the repair control flow.
type Validator interface {
	// Validate returns nil for complete code, otherwise an error naming
	// the first problem found.
	Validate(code string) error
}

// CompletenessValidator rejects code with elided-content markers,
// missing structural keywords, or too little content overall.
type CompletenessValidator struct {
	sizeFloor int
}

func NewCompletenessValidator(sizeFloor int) *CompletenessValidator {
	if sizeFloor <= 0 {
		sizeFloor = defaultSizeFloor
	}
	return &CompletenessValidator{sizeFloor: sizeFloor}
}

func (v *CompletenessValidator) Validate(code string) error {
	lower := strings.ToLower(code)
	for _, marker := range incompleteMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return fmt.Errorf("contains elided-content marker %q", marker)
		}
	}
	for _, keyword := range requiredKeywords {
		if !strings.Contains(lower, keyword) {
			return fmt.Errorf("missing required section %q", keyword)
		}
	}
	if len(code) <= v.sizeFloor {
		return fmt.Errorf("too short: %d chars, need more than %d", len(code), v.sizeFloor)
	}
	return nil
}

// StructurallyValid reports whether the code has the skeleton of a
// complete HTML document.
func StructurallyValid(code string) bool {
	lower := strings.ToLower(code)
	for _, tag := range structuralTags {
		if !strings.Contains(lower, strings.ToLower(tag)) {
			return false
		}
	}
	return true
}
