// Package main wires together the URL-to-markdown server binary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/url-to-markdown/internal/api"
	"github.com/JakeFAU/url-to-markdown/internal/config"
	"github.com/JakeFAU/url-to-markdown/internal/crawl"
	"github.com/JakeFAU/url-to-markdown/internal/logging"
	"github.com/JakeFAU/url-to-markdown/internal/render"
)

func main() {
	cfgPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if syncErr := logger.Sync(); syncErr != nil {
			fmt.Fprintf(os.Stderr, "logger sync failed: %v\n", syncErr)
		}
	}()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	renderCfg := render.Config{
		UserAgent:   cfg.Renderer.UserAgent,
		MaxParallel: cfg.Renderer.MaxParallel,
		NavTimeout:  cfg.NavTimeout(),
		DomainQPS:   cfg.Renderer.DomainQPS,
	}
	var renderer render.Renderer
	switch cfg.Renderer.Mode {
	case config.ModeChromedp:
		chrome, err := render.NewChromedp(renderCfg, logger.Named("render"))
		if err != nil {
			logger.Fatal("chromedp renderer init failed", zap.Error(err))
		}
		defer chrome.Close()
		renderer = chrome
	case config.ModeColly:
		logger.Info("using browserless renderer; wait_for_selector and js_code are unavailable")
		renderer = render.NewColly(renderCfg)
	default:
		logger.Fatal("unknown renderer mode", zap.String("mode", cfg.Renderer.Mode))
	}

	service := crawl.NewService(renderer, cfg.Crawl, logger.Named("crawl"))
	apiServer := api.NewServer(service, cfg, logger.Named("api"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server started",
			zap.Int("port", cfg.Server.Port),
			zap.String("renderer", cfg.Renderer.Mode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
