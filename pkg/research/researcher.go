package research

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source kinds recorded in a bundle's provenance list.
const (
	SourcePrimary    = "primary"
	SourceCompetitor = "competitor"
	SourceReputation = "reputation"
)

// Subject is the slice of a business record research operates on.
type Subject struct {
	Name     string
	Website  string
	Industry string
	Location string
}

// Website is the scraped business site, when one was given and reachable.
type Website struct {
	URL         string
	Title       string
	Description string
	Content     string
	Links       []string
	OK          bool
	Err         string
}

// Source is one provenance record.
type Source struct {
	Kind        string
	URL         string
	Description string
}

// Bundle aggregates everything research learned about a business.
// Built once, read-only afterward.
type Bundle struct {
	Website          *Website
	Competitors      []Finding
	IndustryInsights []Finding
	TrustSignals     []Finding
	Sources          []Source
}

// Researcher coordinates searches and the website scrape.
type Researcher struct {
	searcher      *Searcher
	scraper       *Scraper
	findingCap    int
	reputationCap int
	log           *zap.Logger
}

func NewResearcher(searcher *Searcher, scraper *Scraper, findingCap, reputationCap int, log *zap.Logger) *Researcher {
	return &Researcher{
		searcher:      searcher,
		scraper:       scraper,
		findingCap:    findingCap,
		reputationCap: reputationCap,
		log:           log,
	}
}

// Research gathers market context for the subject. Individual lookups run
// concurrently and degrade to empty results; the bundle itself always
// comes back non-nil. Provenance order is deterministic: primary site
// first, then competitor results, then reputation results.
func (r *Researcher) Research(ctx context.Context, subject Subject) *Bundle {
	bundle := &Bundle{}

	var reputation []Finding
	g, gctx := errgroup.WithContext(ctx)

	if subject.Website != "" {
		g.Go(func() error {
			bundle.Website = r.scrapeSite(gctx, subject.Website)
			return nil
		})
	}
	if subject.Industry != "" {
		competitorQuery := fmt.Sprintf("%s competitors %s", subject.Industry, subject.Location)
		if subject.Location == "" {
			competitorQuery = fmt.Sprintf("%s competitors", subject.Industry)
		}
		g.Go(func() error {
			bundle.Competitors = r.searcher.Search(gctx, competitorQuery, r.findingCap)
			return nil
		})
		g.Go(func() error {
			bundle.IndustryInsights = r.searcher.Search(gctx, subject.Industry+" landing page best practices conversion", r.findingCap)
			return nil
		})
		g.Go(func() error {
			bundle.TrustSignals = r.searcher.Search(gctx, subject.Industry+" customer concerns objections trust", r.findingCap)
			return nil
		})
	}
	if subject.Name != "" {
		g.Go(func() error {
			reputation = r.searcher.Search(gctx, fmt.Sprintf("%q reviews reputation", subject.Name), r.reputationCap)
			return nil
		})
	}

	// Lookups never return errors; Wait only orders the provenance build.
	_ = g.Wait()

	if bundle.Website != nil && bundle.Website.OK {
		bundle.Sources = append(bundle.Sources, Source{
			Kind:        SourcePrimary,
			URL:         bundle.Website.URL,
			Description: "Official business website",
		})
	}
	for _, f := range bundle.Competitors {
		bundle.Sources = append(bundle.Sources, Source{Kind: SourceCompetitor, URL: f.URL, Description: f.Title})
	}
	for _, f := range reputation {
		bundle.Sources = append(bundle.Sources, Source{Kind: SourceReputation, URL: f.URL, Description: f.Title})
	}

	r.log.Info("research complete",
		zap.Int("competitors", len(bundle.Competitors)),
		zap.Int("insights", len(bundle.IndustryInsights)),
		zap.Int("trust_signals", len(bundle.TrustSignals)),
		zap.Int("sources", len(bundle.Sources)))

	return bundle
}

func (r *Researcher) scrapeSite(ctx context.Context, siteURL string) *Website {
	pc, err := r.scraper.Scrape(ctx, siteURL)
	if err != nil {
		r.log.Warn("website scrape failed", zap.String("url", siteURL), zap.Error(err))
		return &Website{URL: siteURL, Err: err.Error()}
	}
	return &Website{
		URL:         siteURL,
		Title:       pc.Title,
		Description: pc.Description,
		Content:     pc.Text,
		Links:       pc.Links,
		OK:          pc.Text != "",
	}
}
