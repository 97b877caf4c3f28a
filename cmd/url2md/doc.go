// Package main hosts the URL-to-markdown service entrypoint.
//
// Architecture overview:
//   - HTTP API: internal/api.Server exposes the UI, docs, health, metrics, and crawl endpoints. Requests are
//     validated into crawl.Request values before any rendering happens; validation failures are the only 4xx
//     source on the crawl routes.
//   - Crawl service: internal/crawl.Service renders one URL per call through the render.Renderer seam and folds
//     render failures into the per-URL result. Batches of up to ten URLs fan out one goroutine per URL with
//     fixed result slots, so response order always matches request order.
//   - Rendering: internal/render hides the page-fetching machinery behind a single interface. The chromedp
//     renderer shares one headless Chrome across requests (per-tab contexts, parallelism semaphore, optional
//     per-domain QPS); the colly renderer is a plain-HTTP fallback for hosts without Chrome. Both reduce the
//     DOM to raw and boilerplate-filtered markdown.
//   - Configuration & plumbing: Viper populates config from env/files (PORT or URL2MD_SERVER_PORT, default
//     8000); zap provides structured logging; Prometheus counters and a render-latency histogram are exported
//     on /metrics. The service keeps no state between requests.
//
// Run locally: go run ./cmd/url2md -config config.yaml (or rely solely on env overrides). The process reacts
// to SIGINT/SIGTERM with a graceful drain before the browser is torn down.
package main
