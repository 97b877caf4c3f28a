// Package logging builds the zap root logger for the service.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// rootName prefixes every logger derived from New, so log lines from
// sub-loggers read url2md.render, url2md.api, and so on.
const rootName = "url2md"

// New builds the root zap.Logger. Development mode gets a colored console
// encoder; production mode emits JSON with sampling disabled, since the
// service logs at most a handful of lines per crawl.
func New(development bool) (*zap.Logger, error) {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
		cfg.EncoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.NameKey = "component"

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named(rootName), nil
}
