package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Renderer.Mode != ModeChromedp {
		t.Errorf("Renderer.Mode = %q, want %q", cfg.Renderer.Mode, ModeChromedp)
	}
	if cfg.Crawl.MaxBatchURLs != 10 {
		t.Errorf("Crawl.MaxBatchURLs = %d, want 10", cfg.Crawl.MaxBatchURLs)
	}
	if cfg.Crawl.DefaultFilterThreshold != 0.4 {
		t.Errorf("Crawl.DefaultFilterThreshold = %v, want 0.4", cfg.Crawl.DefaultFilterThreshold)
	}
	if !cfg.Logging.Development {
		t.Error("Logging.Development = false, want true")
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
  request_timeout_seconds: 30
logging:
  development: false
renderer:
  mode: colly
  user_agent: url2md-test
  max_parallel: 2
  nav_timeout_seconds: 10
  domain_qps: 0.5
crawl:
  max_batch_urls: 5
  default_filter_threshold: 0.6
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Renderer.Mode != ModeColly {
		t.Errorf("Renderer.Mode = %q, want %q", cfg.Renderer.Mode, ModeColly)
	}
	if cfg.Renderer.DomainQPS != 0.5 {
		t.Errorf("Renderer.DomainQPS = %v, want 0.5", cfg.Renderer.DomainQPS)
	}
	if cfg.Crawl.MaxBatchURLs != 5 {
		t.Errorf("Crawl.MaxBatchURLs = %d, want 5", cfg.Crawl.MaxBatchURLs)
	}
	if cfg.Logging.Development {
		t.Error("Logging.Development = true, want false")
	}
}

func TestLoadPortEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
}

func TestLoadPrefixedEnvOverride(t *testing.T) {
	t.Setenv("URL2MD_RENDERER_MODE", "colly")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Renderer.Mode != ModeColly {
		t.Errorf("Renderer.Mode = %q, want %q", cfg.Renderer.Mode, ModeColly)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	base := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8000, RequestTimeoutSeconds: 60},
			Renderer: RendererConfig{Mode: ModeChromedp, MaxParallel: 4, NavTimeoutSeconds: 30},
			Crawl:    CrawlConfig{MaxBatchURLs: 10, DefaultFilterThreshold: 0.4},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad mode", func(c *Config) { c.Renderer.Mode = "phantomjs" }, "renderer.mode"},
		{"zero parallel", func(c *Config) { c.Renderer.MaxParallel = 0 }, "renderer.max_parallel"},
		{"zero nav timeout", func(c *Config) { c.Renderer.NavTimeoutSeconds = 0 }, "renderer.nav_timeout_seconds"},
		{"batch too large", func(c *Config) { c.Crawl.MaxBatchURLs = 11 }, "crawl.max_batch_urls"},
		{"threshold out of range", func(c *Config) { c.Crawl.DefaultFilterThreshold = 1.5 }, "crawl.default_filter_threshold"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err, tc.wantErr)
			}
		})
	}
}
