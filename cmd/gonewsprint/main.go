package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gonewsprint/internal/app"
	"github.com/hyperifyio/gonewsprint/internal/fetch"
	"github.com/hyperifyio/gonewsprint/internal/layout"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		urlsPath   string
		outputPath string
		configPath string
		masthead   string
		userAgent  string
		timeout    time.Duration
		verbose    bool
	)

	flag.StringVar(&urlsPath, "urls", "urls.txt", "Path to text file with article URLs, one per line ('#' comments allowed)")
	flag.StringVar(&outputPath, "output", "", "Output PDF path (default: Newspapers/YYYY-MM-DD.pdf)")
	flag.StringVar(&configPath, "config", "", "Optional YAML or JSON config file")
	flag.StringVar(&masthead, "masthead", layout.DefaultMasthead, "Masthead title printed at the top of the newspaper")
	flag.StringVar(&userAgent, "ua", fetch.DefaultUserAgent, "User-Agent header sent with every fetch")
	flag.DurationVar(&timeout, "timeout", fetch.DefaultTimeout, "Per-request fetch timeout")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	// Track explicitly set flags so file config only fills the gaps.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg := app.Config{OutputPath: outputPath, Verbose: verbose}
	if set["masthead"] {
		cfg.Masthead = masthead
	}
	if set["ua"] {
		cfg.UserAgent = userAgent
	}
	if set["timeout"] {
		cfg.Timeout = timeout
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("read config file")
			os.Exit(1)
		}
		cfg, err = fc.Apply(cfg)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("apply config file")
			os.Exit(1)
		}
		if !set["urls"] && fc.URLs != "" {
			urlsPath = fc.URLs
		}
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := run(cfg, urlsPath); err != nil {
		log.Error().Err(err).Msg("run failed")
		if errors.Is(err, app.ErrEmptyBatch) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfg app.Config, urlsPath string) error {
	ctx := context.Background()

	urls, err := app.LoadURLList(urlsPath)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", urlsPath)
	}
	log.Info().Int("count", len(urls)).Str("file", urlsPath).Msg("loaded URLs")

	if cfg.OutputPath == "" {
		out, err := app.DeriveOutputPath("", time.Now())
		if err != nil {
			return fmt.Errorf("derive output path: %w", err)
		}
		cfg.OutputPath = out
	}

	results, err := app.New(cfg).Run(ctx, urls)
	for _, r := range results {
		if r.Err != nil {
			log.Warn().Str("url", r.URL).Err(r.Err).Msg("skipped")
			continue
		}
		log.Info().Str("url", r.URL).Str("title", r.Title).Msg("included")
	}
	return err
}
