// Package aggregate canonicalizes and de-duplicates search hits before the
// crawl loop fetches them.
package aggregate

import (
	"net/url"
	"strings"

	"github.com/hyperifyio/coursecrawl/internal/search"
)

// MergeAndNormalize merges results from multiple queries, canonicalizes
// URLs (lowercased host, query string and fragment stripped) and removes
// exact duplicates, preserving first-seen order. Nothing smarter than
// exact-URL matching is attempted.
func MergeAndNormalize(groups [][]search.Result) []search.Result {
	seen := map[string]struct{}{}
	out := make([]search.Result, 0, 16)
	for _, g := range groups {
		for _, r := range g {
			if r.URL == "" {
				continue
			}
			u, err := url.Parse(strings.TrimSpace(r.URL))
			if err != nil || u.Host == "" {
				continue
			}
			normalizeURL(u)
			key := u.String()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			r.URL = key
			out = append(out, r)
		}
	}
	return out
}

func normalizeURL(u *url.URL) {
	u.Fragment = ""
	u.RawQuery = ""
	u.Host = strings.ToLower(u.Host)
}
