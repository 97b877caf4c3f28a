// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Renderer RendererConfig `mapstructure:"renderer"`
	Crawl    CrawlConfig    `mapstructure:"crawl"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port                  int `mapstructure:"port"`
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// RendererConfig configures the page rendering subsystem.
type RendererConfig struct {
	Mode              string  `mapstructure:"mode"`
	UserAgent         string  `mapstructure:"user_agent"`
	MaxParallel       int     `mapstructure:"max_parallel"`
	NavTimeoutSeconds int     `mapstructure:"nav_timeout_seconds"`
	DomainQPS         float64 `mapstructure:"domain_qps"`
}

// CrawlConfig governs crawl request defaults and batch limits.
type CrawlConfig struct {
	MaxBatchURLs           int     `mapstructure:"max_batch_urls"`
	DefaultFilterThreshold float64 `mapstructure:"default_filter_threshold"`
}

// Renderer modes.
const (
	ModeChromedp = "chromedp"
	ModeColly    = "colly"
)

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("URL2MD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// The original deployment configured the listen port with a bare PORT
	// variable, so honor it alongside URL2MD_SERVER_PORT.
	if err := v.BindEnv("server.port", "URL2MD_SERVER_PORT", "PORT"); err != nil {
		return Config{}, fmt.Errorf("bind port env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.request_timeout_seconds", 60)
	v.SetDefault("logging.development", true)
	v.SetDefault("renderer.mode", ModeChromedp)
	v.SetDefault("renderer.user_agent", "url-to-markdown/1.0")
	v.SetDefault("renderer.max_parallel", 4)
	v.SetDefault("renderer.nav_timeout_seconds", 30)
	v.SetDefault("renderer.domain_qps", 0.0)
	v.SetDefault("crawl.max_batch_urls", 10)
	v.SetDefault("crawl.default_filter_threshold", 0.4)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Server.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("server.request_timeout_seconds must be > 0")
	}
	if c.Renderer.Mode != ModeChromedp && c.Renderer.Mode != ModeColly {
		return fmt.Errorf("renderer.mode must be %q or %q", ModeChromedp, ModeColly)
	}
	if c.Renderer.MaxParallel <= 0 {
		return fmt.Errorf("renderer.max_parallel must be > 0")
	}
	if c.Renderer.NavTimeoutSeconds <= 0 {
		return fmt.Errorf("renderer.nav_timeout_seconds must be > 0")
	}
	if c.Crawl.MaxBatchURLs <= 0 || c.Crawl.MaxBatchURLs > 10 {
		return fmt.Errorf("crawl.max_batch_urls must be in 1..10")
	}
	if c.Crawl.DefaultFilterThreshold < 0 || c.Crawl.DefaultFilterThreshold > 1 {
		return fmt.Errorf("crawl.default_filter_threshold must be in [0,1]")
	}
	return nil
}

// NavTimeout converts the renderer navigation timeout into a duration.
func (c Config) NavTimeout() time.Duration {
	return time.Duration(c.Renderer.NavTimeoutSeconds) * time.Second
}

// RequestTimeout converts the server request timeout into a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSeconds) * time.Second
}
