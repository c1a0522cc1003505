// Package research gathers market context for a business: web searches,
// competitor findings, and the business's own website content. Every
// lookup degrades to empty results rather than failing the pipeline.
package research

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	searchEndpoint    = "https://html.duckduckgo.com/html/"
	searchTimeout     = 15 * time.Second
	searchUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	redirectParamName = "uddg"
)

// Finding is one search result.
type Finding struct {
	Title   string
	Snippet string
	URL     string
}

// Searcher runs web searches against the DuckDuckGo HTML endpoint.
type Searcher struct {
	httpClient *http.Client
	endpoint   string
	log        *zap.Logger
}

func NewSearcher(log *zap.Logger) *Searcher {
	return &Searcher{
		httpClient: &http.Client{Timeout: searchTimeout},
		endpoint:   searchEndpoint,
		log:        log,
	}
}

// NewSearcherWithEndpoint points the searcher at an alternate endpoint.
// Used by tests.
func NewSearcherWithEndpoint(endpoint string, log *zap.Logger) *Searcher {
	s := NewSearcher(log)
	s.endpoint = endpoint
	return s
}

// Search runs one query and returns up to maxResults findings. Failures
// are logged and reported as an empty slice: search is best-effort.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int) []Finding {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		s.log.Warn("search request build failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	req.Header.Set("User-Agent", searchUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Warn("search failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warn("search returned non-200", zap.String("query", query), zap.Int("status", resp.StatusCode))
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		s.log.Warn("search parse failed", zap.String("query", query), zap.Error(err))
		return nil
	}

	return parseResults(doc, maxResults)
}

func parseResults(doc *goquery.Document, maxResults int) []Finding {
	var findings []Finding
	doc.Find(".result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find(".result__a").First()
		title := strings.TrimSpace(link.Text())
		if title == "" {
			return true
		}
		href, _ := link.Attr("href")
		findings = append(findings, Finding{
			Title:   title,
			Snippet: strings.TrimSpace(sel.Find(".result__snippet").First().Text()),
			URL:     resolveRedirect(href),
		})
		return maxResults <= 0 || len(findings) < maxResults
	})
	return findings
}

// resolveRedirect unwraps DuckDuckGo's redirect links, which carry the
// destination in a uddg query parameter.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get(redirectParamName); target != "" {
		return target
	}
	if u.Scheme == "" {
		return fmt.Sprintf("https:%s", href)
	}
	return href
}
