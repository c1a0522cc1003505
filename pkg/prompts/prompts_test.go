package prompts

import (
	"strings"
	"testing"
)

func TestExtract(t *testing.T) {
	p := Extract("We run a bakery in Portland called Sunrise.")
	if !strings.Contains(p, "We run a bakery in Portland called Sunrise.") {
		t.Error("prompt missing user input")
	}
	for _, label := range []string{"BUSINESS_NAME:", "WEBSITE:", "INDUSTRY:", "PAGE_GOAL:", "ADDITIONAL_CONTEXT:"} {
		if !strings.Contains(p, label) {
			t.Errorf("prompt missing field label %s", label)
		}
	}
	if !strings.Contains(p, `"NOT PROVIDED"`) {
		t.Error("prompt missing sentinel instruction")
	}
}

func TestPlan(t *testing.T) {
	p := Plan("Business Name: Sunrise", "## COMPETITOR LANDSCAPE\n- rival")
	if !strings.Contains(p, "Business Name: Sunrise") {
		t.Error("prompt missing business info")
	}
	if !strings.Contains(p, "## COMPETITOR LANDSCAPE") {
		t.Error("prompt missing research")
	}
	if !strings.Contains(p, "NEVER invent: pricing") {
		t.Error("prompt missing claim rules")
	}
}

func TestDesignSystem_Defaults(t *testing.T) {
	p := DesignSystem("info", "", "", "")
	for _, want := range []string{"Tone: professional", "Industry: general", "Target Customer: general audience"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing default %q", want)
		}
	}
}

func TestDesignSystem_Explicit(t *testing.T) {
	p := DesignSystem("info", "playful", "bakery", "local families")
	for _, want := range []string{"Tone: playful", "Industry: bakery", "Target Customer: local families"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildInstructions(t *testing.T) {
	p := BuildInstructions("the plan text", "the design text")
	if !strings.Contains(p, "the plan text") || !strings.Contains(p, "the design text") {
		t.Error("prompt missing inputs")
	}
	if !strings.Contains(p, "BUILD_PROMPT.txt") {
		t.Error("prompt missing output name")
	}
}

func TestSite(t *testing.T) {
	p := Site("biz", "plan", "design", "tailwind.config = {}", "## DESIGN PRINCIPLES")
	for _, want := range []string{
		SiteSystem,
		"biz", "plan", "design",
		"tailwind.config = {}",
		"## DESIGN PRINCIPLES",
		"<!DOCTYPE html>",
		"```html",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(p, fencePlaceholder) {
		t.Error("fence placeholder leaked into rendered prompt")
	}
}

func TestRepair(t *testing.T) {
	p := Repair("<html>broken")
	if !strings.Contains(p, "<html>broken") {
		t.Error("prompt missing html")
	}
	if !strings.Contains(p, "Start with <!DOCTYPE html>, end with </html>.") {
		t.Error("prompt missing completion instruction")
	}
}
