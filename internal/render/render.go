// Package render fetches web pages and converts them to markdown. It is the
// single seam between the service and the underlying browser machinery, so
// the heavy rendering dependency stays swappable.
package render

import (
	"context"
	"time"
)

// Options tunes a single render.
type Options struct {
	// WaitForSelector blocks extraction until the CSS selector is visible.
	WaitForSelector string
	// InjectedScript is JavaScript evaluated before extraction.
	InjectedScript string
	// FilterThreshold in [0,1] controls how aggressively boilerplate is
	// pruned before producing the filtered markdown.
	FilterThreshold float64
}

// Result is the rendered page reduced to markdown.
type Result struct {
	Title            string
	FilteredMarkdown string
	RawMarkdown      string
}

// Renderer turns a URL into markdown. Implementations own their navigation
// timeouts and browser resources; callers only supply a context.
type Renderer interface {
	Render(ctx context.Context, url string, opts Options) (Result, error)
}

// Config controls renderer behavior.
type Config struct {
	UserAgent   string
	MaxParallel int
	NavTimeout  time.Duration
	DomainQPS   float64
}
