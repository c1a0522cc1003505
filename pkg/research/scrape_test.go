package research

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const articlePage = `<html><head>
<title>Sunrise Bakery</title>
<meta name="description" content="Fresh bread daily in Portland">
</head><body>
<nav>Home About Contact</nav>
<main>
<h1>Welcome to Sunrise Bakery</h1>
<p>We bake sourdough every morning using a century-old starter and organic flour from local mills. Our shelves fill by seven and empty by noon, so arrive early for the full selection of loaves, pastries, and seasonal specials.</p>
<p>Wholesale accounts are available for restaurants and cafes across the metro area with next-day delivery on standing orders.</p>
</main>
<footer><a href="https://instagram.com/sunrise">Instagram</a></footer>
</body></html>`

func TestScrape_Precision(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, articlePage)
	}))
	defer srv.Close()

	s := NewScraper(5000, zap.NewNop())
	pc, err := s.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}

	if pc.Title != "Sunrise Bakery" {
		t.Errorf("title = %q, want %q", pc.Title, "Sunrise Bakery")
	}
	if pc.Description != "Fresh bread daily in Portland" {
		t.Errorf("description = %q", pc.Description)
	}
	if !strings.Contains(pc.Text, "century-old starter") {
		t.Errorf("text missing main content: %q", pc.Text)
	}
	if strings.Contains(pc.Text, "Home About Contact") {
		t.Errorf("text includes nav chrome: %q", pc.Text)
	}
	if len(pc.Links) != 1 || pc.Links[0] != "https://instagram.com/sunrise" {
		t.Errorf("links = %v", pc.Links)
	}
}

func TestScrape_StructuralFallback(t *testing.T) {
	// No main/article: the precision pass yields nothing and the
	// structural pass takes body text minus chrome.
	page := `<html><head><title>Plain</title></head><body>
<script>var x = 1;</script>
<nav>Menu</nav>
<div>` + strings.Repeat("Plain body content about the business. ", 10) + `</div>
<footer>Footer text</footer>
</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	s := NewScraper(5000, zap.NewNop())
	pc, err := s.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if !strings.Contains(pc.Text, "Plain body content") {
		t.Errorf("fallback text missing body content: %q", pc.Text)
	}
	for _, chrome := range []string{"var x = 1", "Menu", "Footer text"} {
		if strings.Contains(pc.Text, chrome) {
			t.Errorf("fallback text includes %q", chrome)
		}
	}
}

func TestScrape_ContentCap(t *testing.T) {
	big := "<html><body><main><p>" + strings.Repeat("word ", 2000) + "</p></main></body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, big)
	}))
	defer srv.Close()

	s := NewScraper(500, zap.NewNop())
	pc, err := s.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if len(pc.Text) > 500 {
		t.Errorf("text length = %d, want <= 500", len(pc.Text))
	}
}

func TestScrape_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewScraper(5000, zap.NewNop())
	if _, err := s.Scrape(context.Background(), srv.URL); err == nil {
		t.Error("Scrape() error = nil, want status error")
	}
}
