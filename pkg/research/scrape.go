package research

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	scrapeTimeout = 20 * time.Second
	maxLinks      = 20
)

// PageContent is the distilled content of a scraped page.
type PageContent struct {
	Title       string
	Description string // meta description, may be empty
	Text        string
	Links       []string
}

// Scraper fetches a page and extracts its readable text.
type Scraper struct {
	httpClient *http.Client
	contentCap int
	log        *zap.Logger
}

func NewScraper(contentCap int, log *zap.Logger) *Scraper {
	return &Scraper{
		httpClient: &http.Client{Timeout: scrapeTimeout},
		contentCap: contentCap,
		log:        log,
	}
}

// Scrape fetches a URL and returns its content. The text is capped at the
// configured limit so downstream prompts stay bounded.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (*PageContent, error) {
	if !strings.HasPrefix(pageURL, "http://") && !strings.HasPrefix(pageURL, "https://") {
		pageURL = "https://" + pageURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", searchUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	return s.extract(doc), nil
}

// extract pulls readable content from a parsed document. A precision pass
// looks at content-bearing elements; if that yields too little, a
// structural fallback takes the whole body minus chrome.
func (s *Scraper) extract(doc *goquery.Document) *PageContent {
	pc := &PageContent{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Description: metaDescription(doc),
	}

	var parts []string
	doc.Find("main p, article p, main li, article li, main h1, main h2, main h3, article h1, article h2, article h3").Each(func(_ int, sel *goquery.Selection) {
		if t := strings.TrimSpace(sel.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	text := strings.Join(parts, "\n")

	if len(text) < 200 {
		body := doc.Find("body").Clone()
		body.Find("script, style, nav, header, footer, aside, noscript").Remove()
		text = collapseWhitespace(body.Text())
	}

	if s.contentCap > 0 && len(text) > s.contentCap {
		text = text[:s.contentCap]
	}
	pc.Text = text

	seen := make(map[string]bool)
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if !strings.HasPrefix(href, "http") || seen[href] {
			return true
		}
		seen[href] = true
		pc.Links = append(pc.Links, href)
		return len(pc.Links) < maxLinks
	})

	return pc
}

func metaDescription(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	if content, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	return ""
}

func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
