package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"feed_generator/internal/config"
	"feed_generator/internal/feed"
	"feed_generator/internal/service"
	"feed_generator/internal/source/strapi"
	"feed_generator/internal/storage/csvfile"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	// Initialize CMS source
	source := strapi.New(strapi.SourceConfig{
		Client: strapi.Config{
			BaseURL:  cfg.CMS.BaseURL,
			Token:    cfg.CMS.Token,
			PageSize: cfg.CMS.PageSize,
			Timeout:  cfg.CMS.Timeout,
		},
		Home:        endpoint(cfg.CMS.Collections.Home),
		Courses:     endpoint(cfg.CMS.Collections.Courses),
		CoursePages: endpoint(cfg.CMS.Collections.CoursePages),
	}, logger)

	normalizer := feed.NewNormalizer(cfg.CMS.BaseURL, cfg.Feed.SiteBaseURL, cfg.Feed.Brand)

	feedService := service.NewFeedService(
		source,
		csvfile.NewWriter(),
		normalizer,
		logger,
		cfg.Feed,
	)

	logger.Info("starting feed generator",
		"cms", cfg.CMS.BaseURL,
		"output", cfg.Feed.OutputPath,
	)

	if _, err := feedService.Generate(context.Background()); err != nil {
		logger.Error("feed generation failed", "error", err)
		os.Exit(1)
	}
}

func endpoint(e config.EndpointConfig) strapi.Endpoint {
	return strapi.Endpoint{Path: e.Path, Populate: e.Populate}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
