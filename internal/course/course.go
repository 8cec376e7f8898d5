// Package course defines the output record and the per-platform extraction
// policies that parameterize the field cascade.
package course

import "strings"

// Sentinel is the placeholder written for fields that could not be
// determined. Title, description and skills stay empty instead, since the
// orchestrator uses them for the retention check.
const Sentinel = "Not available"

// Record is one extracted course row. Constructed once by the extraction
// cascade; the orchestrator only fills Platform and CategoryQuery afterwards.
type Record struct {
	Title         string
	Description   string
	Skills        string
	Level         string
	Duration      string
	Rating        string
	Price         string
	URL           string
	Platform      string
	CategoryQuery string
}

// Keep reports whether the record carries enough signal to be retained:
// at least one of title and description must be non-empty.
func (r Record) Keep() bool {
	return r.Title != "" || r.Description != ""
}

// Platform identifies the extraction policy variant for a page's domain.
type Platform int

const (
	Generic Platform = iota
	Coursera
	Udemy
	EdX
	Pluralsight
	KhanAcademy
	FreeCodeCamp
)

func (p Platform) String() string {
	switch p {
	case Coursera:
		return "Coursera"
	case Udemy:
		return "Udemy"
	case EdX:
		return "edX"
	case Pluralsight:
		return "Pluralsight"
	case KhanAcademy:
		return "Khan Academy"
	case FreeCodeCamp:
		return "FreeCodeCamp"
	default:
		return "Generic"
	}
}

// Policy carries the probe configuration the cascade uses for the fields
// that vary most across platforms: duration, rating, price and skills.
// Selectors are tried first, then keyword scans over visible text.
type Policy struct {
	Platform Platform
	// Label is the human-readable platform name written into records.
	Label string

	DurationSelectors []string
	DurationKeywords  []string
	RatingSelectors   []string
	RatingKeywords    []string
	PriceSelectors    []string
	PriceKeywords     []string
	SkillsSelectors   []string

	// LevelSynonyms maps lowercase platform phrasing to a canonical level,
	// checked after the generic beginner/intermediate/advanced scan.
	LevelSynonyms map[string]string
}

// genericPolicy is the fallback probe set for unknown domains. Platform
// policies extend it rather than replace it.
func genericPolicy() Policy {
	return Policy{
		Platform:          Generic,
		DurationSelectors: []string{`[itemprop="timeRequired"]`, ".duration"},
		DurationKeywords:  []string{"hours", "weeks", "months", "hour", "week", "month"},
		RatingSelectors:   []string{`[itemprop="ratingValue"]`, ".rating"},
		RatingKeywords:    []string{"rating", "stars", "out of 5"},
		PriceSelectors:    []string{`[itemprop="price"]`, ".price"},
		PriceKeywords:     []string{"$", "free", "paid"},
	}
}

// PolicyFor selects the extraction policy by domain substring match. The
// generic policy handles anything unrecognized.
func PolicyFor(domain string) Policy {
	d := strings.ToLower(domain)
	pol := genericPolicy()
	switch {
	case strings.Contains(d, "coursera"):
		pol.Platform = Coursera
		pol.DurationKeywords = append([]string{"approx", "hours to complete", "months at"}, pol.DurationKeywords...)
		pol.RatingSelectors = append([]string{`[data-test="number-star-rating"]`, `[aria-label*="stars"]`}, pol.RatingSelectors...)
		pol.PriceKeywords = append([]string{"enroll for free", "free trial"}, pol.PriceKeywords...)
		pol.SkillsSelectors = []string{`[data-test="skills"] li`}
		pol.LevelSynonyms = map[string]string{"all levels": "All Levels"}
	case strings.Contains(d, "udemy"):
		pol.Platform = Udemy
		pol.DurationSelectors = append([]string{`[data-purpose="video-content-length"]`}, pol.DurationSelectors...)
		pol.DurationKeywords = append([]string{"total hours", "on-demand video"}, pol.DurationKeywords...)
		pol.RatingSelectors = append([]string{`[data-purpose="rating-number"]`}, pol.RatingSelectors...)
		pol.PriceSelectors = append([]string{`[data-purpose="price-text"]`}, pol.PriceSelectors...)
		pol.LevelSynonyms = map[string]string{"all levels": "All Levels"}
	case strings.Contains(d, "edx"):
		pol.Platform = EdX
		pol.DurationKeywords = append([]string{"weeks", "per week"}, pol.DurationKeywords...)
		pol.PriceKeywords = append([]string{"add a verified certificate", "audit"}, pol.PriceKeywords...)
		pol.LevelSynonyms = map[string]string{"introductory": "Beginner"}
	case strings.Contains(d, "pluralsight"):
		pol.Platform = Pluralsight
		pol.DurationSelectors = append([]string{".course-duration", `[class*="duration"]`}, pol.DurationSelectors...)
		pol.RatingKeywords = append([]string{"avg rating"}, pol.RatingKeywords...)
		pol.PriceKeywords = append([]string{"subscription", "free trial"}, pol.PriceKeywords...)
	case strings.Contains(d, "khanacademy"):
		pol.Platform = KhanAcademy
		// Khan Academy pages carry no price; everything is free.
		pol.PriceKeywords = []string{"free"}
		pol.LevelSynonyms = map[string]string{"early math": "Beginner"}
	case strings.Contains(d, "freecodecamp"):
		pol.Platform = FreeCodeCamp
		pol.DurationKeywords = append([]string{"hours of", "minute read"}, pol.DurationKeywords...)
		pol.PriceKeywords = []string{"free"}
	}
	pol.Label = pol.Platform.String()
	if pol.Platform == Generic {
		pol.Label = domain
	}
	return pol
}
