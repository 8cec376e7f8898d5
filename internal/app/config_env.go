package app

import (
	"os"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.APIKey == "" {
		// Support both names; prefer SERPAPI_KEY if set
		v := os.Getenv("SERPAPI_KEY")
		if v == "" {
			v = os.Getenv("SERPAPI_API_KEY")
		}
		cfg.APIKey = v
	}
	if cfg.SearchBaseURL == "" {
		cfg.SearchBaseURL = os.Getenv("SERPAPI_BASE_URL")
	}
	if cfg.SearchFile == "" {
		cfg.SearchFile = os.Getenv("SEARCH_FILE")
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = os.Getenv("OUTPUT_CSV")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("CRAWL_USER_AGENT")
	}
	if cfg.PageDelay == 0 {
		if d, err := time.ParseDuration(os.Getenv("PAGE_DELAY")); err == nil && d > 0 {
			cfg.PageDelay = d
		}
	}
	if !cfg.RespectRobots {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv("RESPECT_ROBOTS"))); s == "1" || s == "true" || s == "yes" || s == "on" {
			cfg.RespectRobots = true
		}
	}
}
