package search

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
)

// FileProvider serves search results from a local JSON fixture, for offline
// runs and tests without burning search quota. The file holds an array of
// objects: {"title": "...", "url": "...", "snippet": "..."}.
type FileProvider struct {
	Path string
}

func (f *FileProvider) Name() string { return "file" }

func (f *FileProvider) Search(_ context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("file provider path is empty")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	var raw []Result
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Result, 0, len(raw))
	for _, r := range raw {
		if r.URL == "" {
			continue
		}
		if q != "" && !matchesQuery(r, q) {
			continue
		}
		r.Source = f.Name()
		out = append(out, r)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// matchesQuery honors any site: filter clause first, then matches the
// remaining terms loosely against title, snippet and URL.
func matchesQuery(r Result, q string) bool {
	hay := strings.ToLower(r.Title + " " + r.Snippet + " " + r.URL)
	terms := strings.Fields(q)
	for _, term := range terms {
		if !strings.HasPrefix(term, "site:") {
			continue
		}
		domain := strings.TrimPrefix(term, "site:")
		if domain != "" && !strings.Contains(strings.ToLower(r.URL), domain) {
			return false
		}
	}
	for _, term := range terms {
		if strings.HasPrefix(term, "site:") {
			continue
		}
		if strings.Contains(hay, term) {
			return true
		}
	}
	return false
}
