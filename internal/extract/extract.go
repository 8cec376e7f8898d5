// Package extract derives course fields from a parsed detail page. Each
// field falls through a cascade: structured data first, then DOM heuristics,
// then text-pattern scans, then the absent sentinel. No failure in any stage
// escapes; it only moves the cascade down one rung.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hyperifyio/coursecrawl/internal/course"
	"github.com/hyperifyio/coursecrawl/internal/jsonld"
	"github.com/hyperifyio/coursecrawl/internal/textutil"
)

// Field-specific truncation lengths.
const (
	maxTitle       = 300
	maxDescription = 400
	maxSkills      = 400
	maxProbe       = 80
)

// outcomePhrases mark headings that introduce a learning-outcome list.
var outcomePhrases = []string{
	"what you'll learn",
	"you will learn",
	"learning outcomes",
	"skills you'll gain",
	"what you'll be able to do",
}

// jsonldSkillKeys are tried in order and their values merged.
var jsonldSkillKeys = []string{"about", "learningOutcome", "teaches", "keywords", "skills"}

// Fields runs the extraction cascade over a detail page. The policy selects
// the platform-specific probe set for duration, rating, price and skills;
// title and description handling is platform-agnostic.
func Fields(pageURL string, doc *goquery.Document, pol course.Policy) course.Record {
	obj := jsonld.FindCourse(doc)

	title := obj.String("name", "headline")
	description := obj.String("description", "summary")
	level := obj.String("educationalLevel", "audience")

	var skills []string
	if obj != nil {
		for _, key := range jsonldSkillKeys {
			skills = append(skills, obj.StringList(key)...)
		}
		if len(skills) == 0 {
			for _, g := range obj.Graph() {
				skills = append(skills, g.StringList("keywords")...)
			}
		}
	}

	if title == "" {
		title = firstHeading(doc)
	}
	if description == "" {
		description = metaDescription(doc)
	}
	if description == "" {
		description = firstParagraph(doc, 120)
	}
	if len(skills) == 0 {
		skills = selectorListItems(doc, pol.SkillsSelectors)
	}
	if len(skills) == 0 {
		skills = outcomeListItems(doc)
	}
	if len(skills) == 0 {
		skills = firstListItems(doc, 8)
	}
	if level == "" {
		level = scanLevel(doc, pol)
	}

	duration := probe(doc, pol.DurationSelectors, pol.DurationKeywords)
	rating := probe(doc, pol.RatingSelectors, pol.RatingKeywords)
	price := probe(doc, pol.PriceSelectors, pol.PriceKeywords)

	return course.Record{
		Title:       textutil.Shorten(title, maxTitle),
		Description: textutil.Shorten(description, maxDescription),
		Skills:      textutil.Shorten(strings.Join(jsonld.Dedupe(skills), ", "), maxSkills),
		Level:       orSentinel(textutil.Shorten(level, maxProbe)),
		Duration:    orSentinel(duration),
		Rating:      orSentinel(rating),
		Price:       orSentinel(price),
		URL:         CanonicalURL(pageURL),
	}
}

// CanonicalURL strips the query string and fragment.
func CanonicalURL(raw string) string {
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

func orSentinel(s string) string {
	if s == "" {
		return course.Sentinel
	}
	return s
}

func firstHeading(doc *goquery.Document) string {
	for _, tag := range []string{"h1", "h2", "h3", "h4"} {
		if t := strings.TrimSpace(doc.Find(tag).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func metaDescription(doc *goquery.Document) string {
	for _, sel := range []string{`meta[name="description"]`, `meta[property="og:description"]`} {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if c := strings.TrimSpace(content); c != "" {
				return c
			}
		}
	}
	return ""
}

// firstParagraph returns the first paragraph of at least minChars once
// whitespace-collapsed, or failing that the first paragraph with any text.
func firstParagraph(doc *goquery.Document, minChars int) string {
	var long, first string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := textutil.Shorten(s.Text(), 0)
		if text == "" {
			return true
		}
		if first == "" {
			first = text
		}
		if len(text) >= minChars {
			long = text
			return false
		}
		return true
	})
	if long != "" {
		return long
	}
	return first
}

// selectorListItems collects item texts from the policy's skill selectors.
func selectorListItems(doc *goquery.Document, selectors []string) []string {
	for _, sel := range selectors {
		var items []string
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				items = append(items, t)
			}
		})
		if len(items) > 0 {
			return items
		}
	}
	return nil
}

// outcomeListItems finds a bullet list following a heading that announces
// learning outcomes.
func outcomeListItems(doc *goquery.Document) []string {
	var items []string
	doc.Find("h2,h3,h4,strong").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		heading := strings.ToLower(strings.TrimSpace(s.Text()))
		matched := false
		for _, phrase := range outcomePhrases {
			if strings.Contains(heading, phrase) {
				matched = true
				break
			}
		}
		if !matched {
			return true
		}
		ul := s.NextAllFiltered("ul").First()
		if ul.Length() == 0 {
			return true
		}
		ul.Find("li").Each(func(_ int, li *goquery.Selection) {
			if t := strings.TrimSpace(li.Text()); t != "" {
				items = append(items, t)
			}
		})
		return len(items) == 0
	})
	return items
}

func firstListItems(doc *goquery.Document, limit int) []string {
	var items []string
	doc.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if t := strings.TrimSpace(li.Text()); t != "" {
			items = append(items, t)
		}
		return len(items) < limit
	})
	return items
}

// scanLevel returns the first level marker found in visible text. The
// canonical names win within each string; policy synonyms come after.
func scanLevel(doc *goquery.Document, pol course.Policy) string {
	var found string
	eachVisibleString(doc, func(s string) bool {
		low := strings.ToLower(s)
		switch {
		case strings.Contains(low, "beginner"):
			found = "Beginner"
		case strings.Contains(low, "intermediate"):
			found = "Intermediate"
		case strings.Contains(low, "advanced"):
			found = "Advanced"
		default:
			for marker, canonical := range pol.LevelSynonyms {
				if strings.Contains(low, marker) {
					found = canonical
					break
				}
			}
		}
		return found == ""
	})
	return found
}

// probe tries the policy's selectors first, then scans visible text for the
// first string containing any keyword. Results are bounded to probe length.
func probe(doc *goquery.Document, selectors, keywords []string) string {
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(node.Text())
		if text == "" {
			for _, attr := range []string{"content", "aria-label"} {
				if v, ok := node.Attr(attr); ok && strings.TrimSpace(v) != "" {
					text = strings.TrimSpace(v)
					break
				}
			}
		}
		if text != "" {
			return textutil.Shorten(text, maxProbe)
		}
	}
	var found string
	if len(keywords) > 0 {
		eachVisibleString(doc, func(s string) bool {
			low := strings.ToLower(s)
			for _, kw := range keywords {
				if strings.Contains(low, kw) {
					found = textutil.Shorten(s, maxProbe)
					return false
				}
			}
			return true
		})
	}
	return found
}
