// Command imagecheck audits which course pages actually expose catalog
// images through the CMS API. It is a diagnostic companion to the feed
// generator: when the reconciliation report shows missing images, this
// tells you which landing pages the CMS is returning without them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"feed_generator/internal/config"
	"feed_generator/internal/domain"
	"feed_generator/internal/source/strapi"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("warn")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	source := strapi.New(strapi.SourceConfig{
		Client: strapi.Config{
			BaseURL:  cfg.CMS.BaseURL,
			Token:    cfg.CMS.Token,
			PageSize: cfg.CMS.PageSize,
			Timeout:  cfg.CMS.Timeout,
		},
		Home:        strapi.Endpoint{Path: cfg.CMS.Collections.Home.Path, Populate: cfg.CMS.Collections.Home.Populate},
		Courses:     strapi.Endpoint{Path: cfg.CMS.Collections.Courses.Path, Populate: cfg.CMS.Collections.Courses.Populate},
		CoursePages: strapi.Endpoint{Path: cfg.CMS.Collections.CoursePages.Path, Populate: cfg.CMS.Collections.CoursePages.Populate},
	}, logger)

	pages, err := source.CoursePages(context.Background())
	if err != nil {
		logger.Error("course page fetch incomplete", "accumulated", len(pages), "error", err)
	}

	var withImages, withoutImages []domain.RawEntity
	for _, page := range pages {
		if hasCatalogImage(page) {
			withImages = append(withImages, page)
		} else {
			withoutImages = append(withoutImages, page)
		}
	}

	fmt.Printf("Course pages fetched: %d\n\n", len(pages))
	fmt.Printf("  with catalog images:    %d\n", len(withImages))
	fmt.Printf("  without catalog images: %d\n\n", len(withoutImages))

	if len(withImages) > 0 {
		fmt.Println("Course pages WITH catalog images:")
		for i, page := range withImages {
			fmt.Printf("%d. ID %d - %s\n", i+1, page.ExternalID, page.Title)
			fmt.Printf("   link: %s\n", page.Link)
			fmt.Printf("   first image: %s\n", page.Images[0].URL)
			fmt.Printf("   image count: %d\n\n", len(page.Images))
		}
	} else {
		fmt.Println("No course page has catalog images populated.")
		fmt.Println("Check in the CMS that the images were added to the catalog")
		fmt.Println("media field, saved, and published (not left in draft).")
	}

	if len(withoutImages) > 0 {
		fmt.Println("\nCourse pages WITHOUT catalog images (first 10):")
		for i, page := range withoutImages {
			if i >= 10 {
				break
			}
			fmt.Printf("%d. ID %d - %s\n", i+1, page.ExternalID, page.Title)
		}
	}
}

// hasCatalogImage reports whether the page carries at least one usable
// multi-image catalog entry (the fan-out source field, not the banner
// fallback).
func hasCatalogImage(page domain.RawEntity) bool {
	for _, img := range page.Images {
		if img.URL != "" {
			return true
		}
	}
	return false
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
