package sitegen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func completePage(extra string) string {
	return `<!DOCTYPE html>
<html lang="en">
<head><title>Acme</title></head>
<body>
<nav>links</nav>
<section class="hero">big headline</section>
<section>` + strings.Repeat("feature copy ", 20) + extra + `</section>
<footer>contact</footer>
</body>
</html>`
}

type fakeCodeGen struct {
	replies []string
	errs    []error
	calls   int
	prompts []string
}

func (f *fakeCodeGen) GenerateCode(_ context.Context, prompt string, _ int, _ float64) (string, error) {
	f.prompts = append(f.prompts, prompt)
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var reply string
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return reply, err
}

func newTestBuilder(gen *fakeCodeGen) *Builder {
	return NewBuilder(gen, NewCompletenessValidator(100), "modern", 0.8, zap.NewNop())
}

func TestGenerate_ValidFirstPass(t *testing.T) {
	gen := &fakeCodeGen{replies: []string{completePage("")}}
	b := newTestBuilder(gen)

	out, err := b.Generate(context.Background(), "biz", "plan", "design")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !out.Valid {
		t.Errorf("Valid = false, issue = %q", out.Issue)
	}
	if gen.calls != 1 {
		t.Errorf("generation calls = %d, want 1 (no repair for valid output)", gen.calls)
	}
}

func TestGenerate_TodoTriggersExactlyOneRepair(t *testing.T) {
	broken := completePage("TODO: finish this section")
	gen := &fakeCodeGen{replies: []string{broken, completePage("")}}
	b := newTestBuilder(gen)

	out, err := b.Generate(context.Background(), "biz", "plan", "design")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if gen.calls != 2 {
		t.Fatalf("generation calls = %d, want 2 (one generate, one repair)", gen.calls)
	}
	if !out.Valid {
		t.Errorf("repaired output not accepted: %q", out.Issue)
	}
	if !strings.Contains(gen.prompts[1], broken) {
		t.Error("repair prompt does not embed the incomplete output")
	}
}

func TestGenerate_RepairStillBrokenKeepsBestEffort(t *testing.T) {
	broken := completePage("TODO: finish")
	stillBroken := completePage("TODO: still unfinished but longer " + strings.Repeat("x", 50))
	gen := &fakeCodeGen{replies: []string{broken, stillBroken}}
	b := newTestBuilder(gen)

	out, err := b.Generate(context.Background(), "biz", "plan", "design")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if gen.calls != 2 {
		t.Errorf("generation calls = %d, want 2 (single bounded repair)", gen.calls)
	}
	if out.Valid {
		t.Error("Valid = true for still-broken output")
	}
	if out.Issue == "" {
		t.Error("Issue empty for invalid output")
	}
}

func TestGenerate_ShortRepairRejected(t *testing.T) {
	broken := completePage("TODO: finish")
	gen := &fakeCodeGen{replies: []string{broken, "<!DOCTYPE html><html><head></head><body></body></html>"}}
	b := newTestBuilder(gen)

	out, err := b.Generate(context.Background(), "biz", "plan", "design")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out.Code != Clean(broken) {
		t.Error("short repair replaced the original output")
	}
	if out.Valid {
		t.Error("Valid = true, want flagged original")
	}
}

func TestGenerate_RepairErrorKeepsOriginal(t *testing.T) {
	broken := completePage("TODO: finish")
	gen := &fakeCodeGen{
		replies: []string{broken, ""},
		errs:    []error{nil, errors.New("provider down")},
	}
	b := newTestBuilder(gen)

	out, err := b.Generate(context.Background(), "biz", "plan", "design")
	if err != nil {
		t.Fatalf("Generate() error = %v (repair failure must not abort)", err)
	}
	if out.Code != Clean(broken) {
		t.Error("original output lost after repair failure")
	}
	if out.Valid {
		t.Error("Valid = true after failed repair")
	}
}

func TestGenerate_GenerationErrorPropagates(t *testing.T) {
	wantErr := errors.New("all candidates failed")
	gen := &fakeCodeGen{errs: []error{wantErr}}
	b := newTestBuilder(gen)

	if _, err := b.Generate(context.Background(), "biz", "plan", "design"); !errors.Is(err, wantErr) {
		t.Errorf("Generate() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestClean(t *testing.T) {
	page := completePage("")
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", page, page},
		{"html fence", "```html\n" + page + "\n```", page},
		{"plain fence tail", page + "\n```\nnotes", page},
		{"commentary around", "Here is your page:\n" + page + "\nLet me know!", page},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.in); got != tt.want {
				t.Errorf("Clean() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompletenessValidator(t *testing.T) {
	v := NewCompletenessValidator(100)
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"complete", completePage(""), false},
		{"todo marker", completePage("TODO: later"), true},
		{"ellipsis marker", completePage("and then..."), true},
		{"rest comment", completePage("<!-- Add more sections -->"), true},
		{"more marker", completePage("[MORE sections here]"), true},
		{"missing footer", strings.ReplaceAll(completePage(""), "footer", "bottom"), true},
		{"too short", "<nav></nav><section class=hero></section><footer></footer>", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStructurallyValid(t *testing.T) {
	if !StructurallyValid(completePage("")) {
		t.Error("complete page reported structurally invalid")
	}
	if StructurallyValid("<div>fragment</div>") {
		t.Error("fragment reported structurally valid")
	}
}
