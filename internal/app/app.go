// Package app drives the crawl: for every platform × category pair it
// queries the search provider, classifies each hit as listing or detail,
// expands listings into course links, runs the extraction cascade and
// accumulates rows for the output sink. Execution is strictly sequential
// and paced by fixed delays; no failure on a single URL aborts the run.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/coursecrawl/internal/aggregate"
	"github.com/hyperifyio/coursecrawl/internal/classify"
	"github.com/hyperifyio/coursecrawl/internal/course"
	"github.com/hyperifyio/coursecrawl/internal/export"
	"github.com/hyperifyio/coursecrawl/internal/extract"
	"github.com/hyperifyio/coursecrawl/internal/fetch"
	"github.com/hyperifyio/coursecrawl/internal/listing"
	"github.com/hyperifyio/coursecrawl/internal/search"
)

// ErrMissingAPIKey is returned before any crawling when no search credential
// is configured. The CLI maps it to a non-zero exit.
var ErrMissingAPIKey = errors.New("missing SerpAPI key: set SERPAPI_KEY or serpapi.key in the config file")

// PageFetcher is what the loop needs from the fetch collaborator.
type PageFetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

type App struct {
	cfg Config

	// Provider and Fetcher are built by New; tests may replace them before Run.
	Provider search.Provider
	Fetcher  PageFetcher

	sleep func(time.Duration)
}

func New(cfg Config) (*App, error) {
	cfg.ApplyDefaults()

	var provider search.Provider
	if cfg.SearchFile != "" {
		provider = &search.FileProvider{Path: cfg.SearchFile}
	} else {
		if cfg.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		provider = &search.SerpAPI{
			BaseURL:    cfg.SearchBaseURL,
			APIKey:     cfg.APIKey,
			HTTPClient: &http.Client{Timeout: cfg.FetchTimeout},
			UserAgent:  cfg.UserAgent,
		}
	}

	client := &fetch.Client{
		UserAgent:         cfg.UserAgent,
		MaxAttempts:       cfg.FetchAttempts,
		PerRequestTimeout: cfg.FetchTimeout,
	}
	if cfg.RespectRobots {
		client.Robots = &fetch.RobotsGate{
			HTTPClient: &http.Client{Timeout: cfg.FetchTimeout},
			UserAgent:  cfg.UserAgent,
		}
	}

	return &App{cfg: cfg, Provider: provider, Fetcher: client, sleep: time.Sleep}, nil
}

// Run crawls and hands the accumulated rows to the output sink. There is no
// partial-result checkpointing; the worst case of pervasive fetch failure is
// an empty table, not an error.
func (a *App) Run(ctx context.Context) error {
	rows := a.Crawl(ctx)
	if len(rows) == 0 {
		log.Warn().Msg("crawl produced no rows")
	}
	written, err := export.WriteCSV(rows, a.cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if written != "" {
		log.Info().Str("out", written).Int("rows", len(rows)).Msg("wrote output")
	}
	if a.cfg.SummaryPDFPath != "" && len(rows) > 0 {
		if err := export.WriteSummaryPDF(rows, a.cfg.SummaryPDFPath); err != nil {
			log.Warn().Err(err).Str("out", a.cfg.SummaryPDFPath).Msg("summary pdf failed; continuing")
		} else {
			log.Info().Str("out", a.cfg.SummaryPDFPath).Msg("wrote summary pdf")
		}
	}
	return nil
}

// Crawl iterates the platform × category cross product, one search per pair,
// and returns all retained course records in iteration order.
func (a *App) Crawl(ctx context.Context) []course.Record {
	var rows []course.Record
	planned := len(a.cfg.Platforms) * len(a.cfg.Categories)
	n := 0
	for _, domain := range a.cfg.Platforms {
		pol := course.PolicyFor(domain)
		for _, category := range a.cfg.Categories {
			n++
			query := fmt.Sprintf("%s site:%s", category, domain)
			log.Info().Int("search", n).Int("planned", planned).
				Str("platform", pol.Label).Str("category", category).Msg("searching")

			results, err := a.Provider.Search(ctx, query, a.cfg.MaxURLsPerSearch)
			if err != nil {
				log.Warn().Err(err).Str("query", query).Msg("search error; skipping pair")
			}
			a.sleep(a.cfg.SearchDelay)

			hits := aggregate.MergeAndNormalize([][]search.Result{results})
			for _, hit := range hits {
				rows = append(rows, a.processHit(ctx, hit.URL, domain, pol, category)...)
			}
		}
	}
	return rows
}

// processHit fetches one search hit, classifies it, and extracts either the
// page itself or the course links it lists. All failures degrade to skips.
func (a *App) processHit(ctx context.Context, pageURL, domain string, pol course.Policy, category string) []course.Record {
	doc, ok := a.fetchDoc(ctx, pageURL)
	if !ok {
		return nil
	}
	defer a.sleep(a.cfg.PageDelay)

	if !classify.IsListing(pageURL, doc, a.cfg.ListingAnchorThreshold) {
		if rec, ok := a.extractRecord(pageURL, doc, pol, category); ok {
			return []course.Record{rec}
		}
		return nil
	}

	links := listing.Links(pageURL, doc, domain, a.cfg.MaxCoursesFromListing)
	log.Debug().Str("url", pageURL).Int("links", len(links)).Msg("listing page expanded")
	var out []course.Record
	for _, link := range links {
		a.sleep(a.cfg.PageDelay)
		linkDoc, ok := a.fetchDoc(ctx, link)
		if !ok {
			continue
		}
		if rec, ok := a.extractRecord(link, linkDoc, pol, category); ok {
			out = append(out, rec)
		}
	}
	return out
}

func (a *App) fetchDoc(ctx context.Context, pageURL string) (*goquery.Document, bool) {
	body, err := a.Fetcher.Get(ctx, pageURL)
	if err != nil {
		log.Debug().Err(err).Str("url", pageURL).Msg("fetch failed; skipping")
		return nil, false
	}
	if len(body) == 0 {
		return nil, false
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		log.Debug().Err(err).Str("url", pageURL).Msg("parse failed; skipping")
		return nil, false
	}
	return doc, true
}

// extractRecord runs the cascade and applies the retention rule: a record
// without both title and description carries no signal and is dropped.
func (a *App) extractRecord(pageURL string, doc *goquery.Document, pol course.Policy, category string) (course.Record, bool) {
	rec := extract.Fields(pageURL, doc, pol)
	if !rec.Keep() {
		log.Debug().Str("url", pageURL).Msg("no title or description; dropping")
		return course.Record{}, false
	}
	rec.Platform = pol.Label
	rec.CategoryQuery = category
	return rec, true
}
