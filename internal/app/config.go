package app

import "time"

// Config carries the settings the pipeline needs. The CLI collaborator is
// responsible for argument parsing and default derivation; the zero value
// of every field here has a sensible fallback.
type Config struct {
	// OutputPath is where the finished PDF is written.
	OutputPath string
	// Masthead is the fixed title printed at the top of the document.
	Masthead string
	// UserAgent overrides the browser-like default sent with every fetch.
	UserAgent string
	// Timeout bounds each fetch, including the canonical-URL re-fetch.
	Timeout time.Duration
	// Verbose enables debug logging.
	Verbose bool
}
