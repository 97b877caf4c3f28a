// Package api hosts the HTTP server, middleware, and handlers for the
// URL-to-markdown service. Notable routes:
//   - GET / and /docs for the embedded UI and API reference.
//   - GET /health for liveness probes (never crawls).
//   - GET /metrics for Prometheus scraping.
//   - POST /crawl and /crawl/batch for markdown conversion.
package api
