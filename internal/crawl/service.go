package crawl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/url-to-markdown/internal/config"
	"github.com/JakeFAU/url-to-markdown/internal/render"
)

// Service coordinates validation, rendering, and result shaping.
type Service struct {
	renderer         render.Renderer
	logger           *zap.Logger
	defaultThreshold float64
	maxBatchURLs     int
}

// NewService wires a Service to its renderer.
func NewService(renderer render.Renderer, cfg config.CrawlConfig, logger *zap.Logger) *Service {
	defaultThreshold := cfg.DefaultFilterThreshold
	if defaultThreshold == 0 {
		defaultThreshold = DefaultFilterThreshold
	}
	maxBatch := cfg.MaxBatchURLs
	if maxBatch <= 0 || maxBatch > MaxBatchURLs {
		maxBatch = MaxBatchURLs
	}
	return &Service{
		renderer:         renderer,
		logger:           logger,
		defaultThreshold: defaultThreshold,
		maxBatchURLs:     maxBatch,
	}
}

// Crawl renders one URL. Validation failures return an error for the HTTP
// layer to map to 4xx; render failures are folded into the Result.
func (s *Service) Crawl(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	return s.crawl(ctx, req), nil
}

func (s *Service) crawl(ctx context.Context, req Request) Result {
	threshold := s.defaultThreshold
	if req.FilterThreshold != nil {
		threshold = *req.FilterThreshold
	}

	crawlsTotal.Inc()
	start := time.Now()
	rendered, err := s.renderer.Render(ctx, req.URL, render.Options{
		WaitForSelector: req.WaitForSelector,
		InjectedScript:  req.JSCode,
		FilterThreshold: threshold,
	})
	renderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		crawlErrorsTotal.Inc()
		s.logger.Warn("render failed", zap.String("url", req.URL), zap.Error(err))
		return Result{
			URL:     req.URL,
			Success: false,
			Error:   err.Error(),
		}
	}

	markdown := rendered.FilteredMarkdown
	result := Result{
		URL:       req.URL,
		Title:     rendered.Title,
		Markdown:  &markdown,
		WordCount: WordCount(markdown),
		Success:   true,
	}
	if req.IncludeRaw {
		raw := rendered.RawMarkdown
		result.RawMarkdown = &raw
	}
	return result
}

// CrawlBatch renders up to maxBatchURLs URLs concurrently with default
// per-URL options. Each URL owns a fixed slot in the result slice, so output
// order always matches input order and one URL's failure never touches its
// siblings. Only pre-dispatch validation can fail the call as a whole.
func (s *Service) CrawlBatch(ctx context.Context, urls []string) ([]Result, error) {
	if len(urls) == 0 {
		return nil, NewValidationError("at least one url is required")
	}
	if len(urls) > s.maxBatchURLs {
		return nil, NewValidationError(
			fmt.Sprintf("maximum %d urls per batch request", s.maxBatchURLs))
	}

	batchRequestsTotal.Inc()
	results := make([]Result, len(urls))
	var wg sync.WaitGroup
	for i, rawURL := range urls {
		wg.Add(1)
		go func(slot int, rawURL string) {
			defer wg.Done()
			req := Request{URL: rawURL}
			if err := req.Validate(); err != nil {
				crawlErrorsTotal.Inc()
				results[slot] = Result{URL: rawURL, Success: false, Error: err.Error()}
				return
			}
			results[slot] = s.crawl(ctx, req)
		}(i, rawURL)
	}
	wg.Wait()
	return results, nil
}

// IsValidationError reports whether err is a request validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
