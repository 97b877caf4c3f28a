// Package crawl turns URLs into markdown results, single or in bounded
// batches, delegating all page rendering to the render seam.
package crawl

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultFilterThreshold is applied when a request omits filter_threshold.
const DefaultFilterThreshold = 0.4

// MaxBatchURLs caps how many URLs one batch request may carry.
const MaxBatchURLs = 10

// Request is a single crawl submission. Optional knobs are pointers so the
// service can tell "omitted" from "zero".
type Request struct {
	URL             string   `json:"url"`
	IncludeRaw      bool     `json:"include_raw"`
	FilterThreshold *float64 `json:"filter_threshold"`
	WaitForSelector string   `json:"wait_for_selector"`
	JSCode          string   `json:"js_code"`
}

// Validate checks the request at the service boundary, before any rendering.
func (r Request) Validate() error {
	raw := strings.TrimSpace(r.URL)
	if raw == "" {
		return NewValidationError("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return NewValidationError(fmt.Sprintf("invalid url: %v", err))
	}
	if !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return NewValidationError("url must be an absolute http or https URL")
	}
	if u.Host == "" {
		return NewValidationError("url must include a host")
	}
	if r.FilterThreshold != nil && (*r.FilterThreshold < 0 || *r.FilterThreshold > 1) {
		return NewValidationError("filter_threshold must be between 0 and 1")
	}
	return nil
}

// Result is what one crawl attempt produced. Markdown and RawMarkdown are
// pointers so a failed crawl omits them entirely while a successful crawl of
// an empty page still serializes an empty string.
type Result struct {
	URL         string  `json:"url"`
	Title       string  `json:"title,omitempty"`
	Markdown    *string `json:"markdown,omitempty"`
	RawMarkdown *string `json:"raw_markdown,omitempty"`
	WordCount   int     `json:"word_count"`
	Success     bool    `json:"success"`
	Error       string  `json:"error,omitempty"`
}

// WordCount counts whitespace-delimited tokens in markdown.
func WordCount(markdown string) int {
	return len(strings.Fields(markdown))
}

// ValidationError marks client mistakes that the HTTP layer surfaces as 4xx
// instead of folding into a Result.
type ValidationError struct {
	msg string
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.msg
}
