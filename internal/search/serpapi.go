package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultSerpAPIBaseURL is the hosted endpoint; tests point BaseURL at a
// local server instead.
const DefaultSerpAPIBaseURL = "https://serpapi.com"

// SerpAPI implements Provider against the SerpAPI /search.json endpoint
// using the google engine.
type SerpAPI struct {
	BaseURL    string // defaults to DefaultSerpAPIBaseURL
	APIKey     string
	Engine     string // defaults to "google"
	HTTPClient *http.Client
	UserAgent  string // optional custom UA
}

func (s *SerpAPI) Name() string { return "serpapi" }

func (s *SerpAPI) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("missing serpapi key")
	}
	if limit <= 0 {
		limit = 5
	}
	base := s.BaseURL
	if base == "" {
		base = DefaultSerpAPIBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(u.Path, "/search.json") {
		u.Path = strings.TrimRight(u.Path, "/") + "/search.json"
	}
	engine := s.Engine
	if engine == "" {
		engine = "google"
	}
	q := u.Query()
	q.Set("engine", engine)
	q.Set("q", query)
	q.Set("num", fmt.Sprintf("%d", limit))
	q.Set("api_key", s.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}
	hc := s.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 12 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("serpapi status: %d", resp.StatusCode)
	}
	var sr serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(sr.OrganicResults))
	for _, r := range sr.OrganicResults {
		link := firstNonEmpty(r.Link, r.URL, r.DisplayedLink)
		if link == "" {
			continue
		}
		out = append(out, Result{
			Title:   strings.TrimSpace(r.Title),
			URL:     strings.TrimSpace(link),
			Snippet: strings.TrimSpace(r.Snippet),
			Source:  s.Name(),
		})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type serpResponse struct {
	OrganicResults []struct {
		Title         string `json:"title"`
		Link          string `json:"link"`
		URL           string `json:"url"`
		DisplayedLink string `json:"displayed_link"`
		Snippet       string `json:"snippet"`
	} `json:"organic_results"`
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
