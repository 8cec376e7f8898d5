package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the YAML configuration schema. Nested sections map naturally
// to flags and env. Zero values mean "not set" and never override explicit
// flag or env values.
type FileConfig struct {
	SerpAPI struct {
		Key     string `yaml:"key"`
		BaseURL string `yaml:"baseURL"`
	} `yaml:"serpapi"`

	Search struct {
		File string `yaml:"file"`
	} `yaml:"search"`

	Crawl struct {
		Platforms              []string `yaml:"platforms"`
		Categories             []string `yaml:"categories"`
		MaxURLsPerSearch       int      `yaml:"maxURLsPerSearch"`
		MaxCoursesFromListing  int      `yaml:"maxCoursesFromListing"`
		ListingAnchorThreshold int      `yaml:"listingAnchorThreshold"`
		SearchDelay            Duration `yaml:"searchDelay"`
		PageDelay              Duration `yaml:"pageDelay"`
		FetchTimeout           Duration `yaml:"fetchTimeout"`
		FetchAttempts          int      `yaml:"fetchAttempts"`
		UserAgent              string   `yaml:"userAgent"`
		RespectRobots          bool     `yaml:"respectRobots"`
	} `yaml:"crawl"`

	Output struct {
		CSV        string `yaml:"csv"`
		SummaryPDF string `yaml:"summaryPDF"`
	} `yaml:"output"`

	Verbose bool `yaml:"verbose"`
}

// Duration accepts human-readable values like "1.2s" or "800ms" in YAML.
// Bare integers are taken as nanoseconds for compatibility with the stdlib
// representation.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration value")
	}
	*d = Duration(n)
	return nil
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

// MergeFileConfig copies file values into cfg for fields cfg has not set.
// Precedence stays flags > env > file > defaults.
func MergeFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.APIKey == "" {
		cfg.APIKey = fc.SerpAPI.Key
	}
	if cfg.SearchBaseURL == "" {
		cfg.SearchBaseURL = fc.SerpAPI.BaseURL
	}
	if cfg.SearchFile == "" {
		cfg.SearchFile = fc.Search.File
	}
	if len(cfg.Platforms) == 0 {
		cfg.Platforms = fc.Crawl.Platforms
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = fc.Crawl.Categories
	}
	if cfg.MaxURLsPerSearch == 0 {
		cfg.MaxURLsPerSearch = fc.Crawl.MaxURLsPerSearch
	}
	if cfg.MaxCoursesFromListing == 0 {
		cfg.MaxCoursesFromListing = fc.Crawl.MaxCoursesFromListing
	}
	if cfg.ListingAnchorThreshold == 0 {
		cfg.ListingAnchorThreshold = fc.Crawl.ListingAnchorThreshold
	}
	if cfg.SearchDelay == 0 {
		cfg.SearchDelay = time.Duration(fc.Crawl.SearchDelay)
	}
	if cfg.PageDelay == 0 {
		cfg.PageDelay = time.Duration(fc.Crawl.PageDelay)
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = time.Duration(fc.Crawl.FetchTimeout)
	}
	if cfg.FetchAttempts == 0 {
		cfg.FetchAttempts = fc.Crawl.FetchAttempts
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.Crawl.UserAgent
	}
	if !cfg.RespectRobots {
		cfg.RespectRobots = fc.Crawl.RespectRobots
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = fc.Output.CSV
	}
	if cfg.SummaryPDFPath == "" {
		cfg.SummaryPDFPath = fc.Output.SummaryPDF
	}
	if !cfg.Verbose {
		cfg.Verbose = fc.Verbose
	}
}
