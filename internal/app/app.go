// Package app wires the fetch, extract, classify, and layout stages into
// the newspaper pipeline. URLs are processed sequentially in input order;
// a failure on one URL is logged and skipped, never fatal to the batch.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gonewsprint/internal/classify"
	"github.com/hyperifyio/gonewsprint/internal/extract"
	"github.com/hyperifyio/gonewsprint/internal/fetch"
	"github.com/hyperifyio/gonewsprint/internal/layout"
)

// ErrEmptyBatch is returned when zero articles survive fetching. There is
// nothing to lay out, so the run aborts without producing a document.
var ErrEmptyBatch = errors.New("no articles were successfully fetched")

// Result reports the outcome for one input URL. Results mirror the input
// order one-to-one; Err is set for URLs that were skipped.
type Result struct {
	URL   string
	Title string
	Err   error
}

// App runs the pipeline over an ordered URL batch.
type App struct {
	cfg       Config
	fetcher   *fetch.Client
	extractor *extract.Extractor
	engine    *layout.Engine

	// now is swappable in tests; the rendered date comes from here.
	now func() time.Time
}

func New(cfg Config) *App {
	client := &fetch.Client{UserAgent: cfg.UserAgent, Timeout: cfg.Timeout}
	return &App{
		cfg:       cfg,
		fetcher:   client,
		extractor: &extract.Extractor{Fetcher: client},
		engine:    &layout.Engine{Masthead: cfg.Masthead},
		now:       time.Now,
	}
}

// Run fetches and extracts every URL in order, classifies the surviving
// articles, and renders the document to cfg.OutputPath. It returns one
// Result per input URL. ErrEmptyBatch is returned when nothing survived;
// a layout or write failure is returned directly.
func (a *App) Run(ctx context.Context, urls []string) ([]Result, error) {
	results := make([]Result, 0, len(urls))
	stories := make([]layout.Story, 0, len(urls))

	for i, url := range urls {
		log.Info().Int("index", i+1).Int("total", len(urls)).Str("url", url).Msg("fetching article")
		rawHTML, err := a.fetcher.Fetch(ctx, url)
		if err != nil {
			log.Warn().Err(err).Str("url", url).Msg("fetch failed; skipping article")
			results = append(results, Result{URL: url, Err: err})
			continue
		}
		article := a.extractor.Extract(ctx, url, rawHTML)
		log.Debug().Str("url", url).Str("title", article.Title).Msg("extracted article")
		results = append(results, Result{URL: url, Title: article.Title})
		stories = append(stories, layout.Story{
			Article: article,
			Blocks:  classify.Blocks(article.ContentHTML),
		})
	}

	if len(stories) == 0 {
		return results, ErrEmptyBatch
	}

	if err := a.engine.RenderFile(a.now(), stories, a.cfg.OutputPath); err != nil {
		return results, fmt.Errorf("render document: %w", err)
	}
	log.Info().Str("out", a.cfg.OutputPath).Int("articles", len(stories)).Msg("wrote newspaper")
	return results, nil
}
