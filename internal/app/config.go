package app

import "time"

// Config holds runtime configuration for a crawl. Everything the loop needs
// is passed in here; there is no process-wide mutable state.
type Config struct {
	// Search
	APIKey        string
	SearchBaseURL string // override for tests and self-hosted proxies
	SearchFile    string // offline file provider; takes precedence when set

	// Crawl plan
	Platforms  []string
	Categories []string

	// Limits and pacing
	MaxURLsPerSearch       int
	MaxCoursesFromListing  int
	ListingAnchorThreshold int
	SearchDelay            time.Duration
	PageDelay              time.Duration
	FetchTimeout           time.Duration
	FetchAttempts          int

	// Behavior
	UserAgent     string
	RespectRobots bool
	Verbose       bool

	// Output
	OutputPath     string
	SummaryPDFPath string // empty disables the PDF artifact
}

// Defaults mirroring the crawl profile the tool ships with.
var (
	DefaultPlatforms = []string{
		"coursera.org",
		"edx.org",
		"pluralsight.com",
		"freecodecamp.org",
	}
	DefaultCategories = []string{
		"AI/ML course",
		"Full stack development course",
		"Data science course",
		"Cyber security course",
		"Advanced python course",
		"Database management course",
	}
)

const (
	DefaultOutputPath = "courses_data.csv"
	DefaultUserAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
)

// ApplyDefaults fills unset fields with the standard crawl profile.
func (c *Config) ApplyDefaults() {
	if len(c.Platforms) == 0 {
		c.Platforms = append([]string(nil), DefaultPlatforms...)
	}
	if len(c.Categories) == 0 {
		c.Categories = append([]string(nil), DefaultCategories...)
	}
	if c.MaxURLsPerSearch <= 0 {
		c.MaxURLsPerSearch = 5
	}
	if c.MaxCoursesFromListing <= 0 {
		c.MaxCoursesFromListing = 8
	}
	if c.ListingAnchorThreshold <= 0 {
		c.ListingAnchorThreshold = 6
	}
	if c.SearchDelay <= 0 {
		c.SearchDelay = 800 * time.Millisecond
	}
	if c.PageDelay <= 0 {
		c.PageDelay = 1200 * time.Millisecond
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 12 * time.Second
	}
	if c.FetchAttempts <= 0 {
		c.FetchAttempts = 2
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
}
