package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// eachVisibleString walks the document's text nodes in document order,
// skipping script, style and noscript subtrees, and calls fn with each
// non-empty trimmed string. fn returns false to stop the walk early.
func eachVisibleString(doc *goquery.Document, fn func(s string) bool) {
	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "script", "style", "noscript":
				return true
			}
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				if !fn(s) {
					return false
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	for _, root := range doc.Nodes {
		if !walk(root) {
			return
		}
	}
}
