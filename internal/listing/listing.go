// Package listing collects candidate detail-page links from a listing page.
package listing

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hyperifyio/coursecrawl/internal/extract"
)

// linkKeywords mark an anchor as pointing at course material.
var linkKeywords = []string{
	"course", "learn", "program", "specialization", "certificate", "path", "bootcamp",
}

// Links returns up to limit distinct course links on platformDomain, in
// document order. Protocol-relative and root-relative hrefs are resolved
// against the listing page's scheme and host; query strings and fragments
// are stripped. No ranking is applied.
func Links(pageURL string, doc *goquery.Document, platformDomain string, limit int) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		href = resolve(base, strings.TrimSpace(href))
		if href == "" || !strings.Contains(href, platformDomain) {
			return true
		}
		low := strings.ToLower(href)
		text := strings.ToLower(a.Text())
		ok := false
		for _, kw := range linkKeywords {
			if strings.Contains(low, kw) || strings.Contains(text, kw) {
				ok = true
				break
			}
		}
		if !ok {
			return true
		}
		if _, dup := seen[href]; dup {
			return true
		}
		seen[href] = struct{}{}
		links = append(links, href)
		return limit <= 0 || len(links) < limit
	})
	return links
}

func resolve(base *url.URL, href string) string {
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "//"):
		href = "https:" + href
	case strings.HasPrefix(href, "/"):
		href = base.Scheme + "://" + base.Host + href
	}
	return extract.CanonicalURL(href)
}
