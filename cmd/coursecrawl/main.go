package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/coursecrawl/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath string
		apiKey     string
		searchFile string
		outputPath string
		pdfPath    string
		robots     bool
		verbose    bool
	)

	flag.StringVar(&configPath, "config", "", "Path to YAML config file (optional)")
	flag.StringVar(&apiKey, "serpapi.key", "", "SerpAPI key (or set SERPAPI_KEY)")
	flag.StringVar(&searchFile, "search.file", "", "Path to JSON file for offline file-based search provider")
	flag.StringVar(&outputPath, "output", "", "Path to write the CSV output (default "+app.DefaultOutputPath+")")
	flag.StringVar(&pdfPath, "output.pdf", "", "Optional path for a PDF crawl summary")
	flag.BoolVar(&robots, "robots", false, "Respect robots.txt when fetching pages")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		APIKey:         apiKey,
		SearchFile:     searchFile,
		OutputPath:     outputPath,
		SummaryPDFPath: pdfPath,
		RespectRobots:  robots,
		Verbose:        verbose,
	}
	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file")
			os.Exit(1)
		}
		app.MergeFileConfig(&cfg, fc)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Missing credential is a configuration error reported before any
		// crawling; everything else already degraded to skips during the run.
		if err == app.ErrMissingAPIKey {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(context.Background())
}
