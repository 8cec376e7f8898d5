// Package jsonld scans embedded JSON-LD script blocks for a course-shaped
// object. Structured data, when present, is the most reliable and least
// volatile source on a course page; everything downstream of it is fallback
// against markup drift.
package jsonld

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Object is a single decoded JSON-LD node.
type Object map[string]any

// FindCourse walks every ld+json block in document order and returns the
// first object that looks like a course: its declared @type mentions
// "Course", or it carries both a name and a description. Nested @graph
// members are considered with the same test. Malformed blocks are skipped
// silently; they are common in the wild and not an error condition.
func FindCourse(doc *goquery.Document) Object {
	var found Object
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return true
		}
		var data any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return true
		}
		for _, item := range asSlice(data) {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if hit := matchCourse(obj); hit != nil {
				found = hit
				return false
			}
		}
		return true
	})
	return found
}

func matchCourse(obj map[string]any) Object {
	if looksLikeCourse(obj) {
		return Object(obj)
	}
	if graph, ok := obj["@graph"].([]any); ok {
		for _, g := range graph {
			if m, ok := g.(map[string]any); ok && looksLikeCourse(m) {
				return Object(m)
			}
		}
	}
	return nil
}

func looksLikeCourse(obj map[string]any) bool {
	if strings.Contains(typeOf(obj), "Course") {
		return true
	}
	return asString(obj["name"]) != "" && asString(obj["description"]) != ""
}

// typeOf renders @type, which may be a string or an array of strings.
func typeOf(obj map[string]any) string {
	switch v := obj["@type"].(type) {
	case string:
		return v
	case []any:
		parts := make([]string, 0, len(v))
		for _, t := range v {
			if s, ok := t.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// String returns the first non-empty string value among keys.
func (o Object) String(keys ...string) string {
	if o == nil {
		return ""
	}
	for _, k := range keys {
		if s := asString(o[k]); s != "" {
			return s
		}
	}
	return ""
}

// StringList flattens a list- or comma-separated-string-valued field into
// its entries. Dict entries contribute their name or headline. Duplicates
// are removed preserving first occurrence.
func (o Object) StringList(key string) []string {
	if o == nil {
		return nil
	}
	var out []string
	switch v := o[key].(type) {
	case []any:
		for _, item := range v {
			switch it := item.(type) {
			case map[string]any:
				s := asString(it["name"])
				if s == "" {
					s = asString(it["headline"])
				}
				if s == "" {
					s = fmt.Sprint(it)
				}
				out = append(out, s)
			default:
				out = append(out, strings.TrimSpace(fmt.Sprint(it)))
			}
		}
	case string:
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return Dedupe(out)
}

// Graph returns the members of a nested @graph array, if any.
func (o Object) Graph() []Object {
	if o == nil {
		return nil
	}
	raw, ok := o["@graph"].([]any)
	if !ok {
		return nil
	}
	out := make([]Object, 0, len(raw))
	for _, g := range raw {
		if m, ok := g.(map[string]any); ok {
			out = append(out, Object(m))
		}
	}
	return out
}

// Dedupe removes duplicate and empty entries preserving first-seen order.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// asString extracts a usable string from a scalar or a nested object; course
// fields like audience or educationalLevel are sometimes objects carrying a
// name or audienceType.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case map[string]any:
		for _, k := range []string{"name", "headline", "audienceType"} {
			if inner, ok := s[k].(string); ok && strings.TrimSpace(inner) != "" {
				return strings.TrimSpace(inner)
			}
		}
	}
	return ""
}

func asSlice(v any) []any {
	if arr, ok := v.([]any); ok {
		return arr
	}
	return []any{v}
}
