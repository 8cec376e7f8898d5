// Package classify decides whether a fetched page is a listing (a catalog
// of course links) or a single-course detail page. It is a heuristic with no
// precision guarantee; misclassification is acceptable and handled upstream
// by the lenient extraction cascade.
package classify

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultAnchorThreshold is the number of course-indicative anchors at which
// a page with a non-matching path is treated as a listing.
const DefaultAnchorThreshold = 6

// maxAnchorsScanned bounds the anchor scan on very link-heavy pages.
const maxAnchorsScanned = 200

// listingPathMarkers in the URL path (or page title) force the listing
// classification without counting anchors.
var listingPathMarkers = []string{
	"/courses", "/learn", "/browse", "/catalog",
	"/topic", "/specialization", "/search", "/discover",
}

var listingTitleMarkers = []string{
	"courses", "catalog", "browse", "topics", "specializations", "search results",
}

// anchorKeywords mark an anchor as course-indicative when they occur in its
// href or visible text.
var anchorKeywords = []string{
	"course", "learn", "certificate", "program", "specialization", "path", "bootcamp",
}

// IsListing reports whether the page at rawURL is a listing page. A
// non-positive threshold falls back to DefaultAnchorThreshold.
func IsListing(rawURL string, doc *goquery.Document, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultAnchorThreshold
	}
	if u, err := url.Parse(rawURL); err == nil {
		path := strings.ToLower(u.Path)
		for _, marker := range listingPathMarkers {
			if strings.Contains(path, marker) {
				return true
			}
		}
	}
	title := strings.ToLower(strings.TrimSpace(doc.Find("title").First().Text()))
	if title != "" {
		for _, marker := range listingTitleMarkers {
			if strings.Contains(title, marker) {
				return true
			}
		}
	}
	return countCourseAnchors(doc) >= threshold
}

func countCourseAnchors(doc *goquery.Document) int {
	count := 0
	doc.Find("a[href]").EachWithBreak(func(i int, a *goquery.Selection) bool {
		if i >= maxAnchorsScanned {
			return false
		}
		href, _ := a.Attr("href")
		href = strings.ToLower(href)
		text := strings.ToLower(a.Text())
		for _, kw := range anchorKeywords {
			if strings.Contains(href, kw) || strings.Contains(text, kw) {
				count++
				break
			}
		}
		return true
	})
	return count
}
