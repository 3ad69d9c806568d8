package feed

import (
	"fmt"
	"log/slog"

	"feed_generator/internal/domain"
)

// Expander turns one normalized record into zero or more feed rows, one per
// valid candidate image.
type Expander struct {
	logger *slog.Logger
}

// NewExpander creates an expander.
func NewExpander(logger *slog.Logger) *Expander {
	return &Expander{
		logger: logger.With("component", "expander"),
	}
}

// Expand emits one row per valid candidate image, in source order. A record
// with a single valid image keeps its bare base id; with several, each row's
// id carries a 1-based image index so ids stay globally unique. Images
// without a URL are skipped individually; a record with no valid image at
// all yields nothing.
func (x *Expander) Expand(rec domain.ProductRecord) []domain.FeedRow {
	valid := make([]domain.ImageRef, 0, len(rec.CandidateImages))
	for i, img := range rec.CandidateImages {
		if img.URL == "" {
			x.logger.Warn("image has no URL, skipping",
				"id", rec.BaseID,
				"title", rec.Title,
				"image", i+1,
				"of", len(rec.CandidateImages),
			)
			continue
		}
		valid = append(valid, img)
	}

	if len(valid) == 0 {
		x.logger.Warn("record has no valid image, skipping",
			"id", rec.BaseID,
			"title", rec.Title,
		)
		return nil
	}

	rows := make([]domain.FeedRow, 0, len(valid))
	for i, img := range valid {
		id := rec.BaseID
		if len(valid) > 1 {
			id = fmt.Sprintf("%s_img%d", rec.BaseID, i+1)
		}

		rows = append(rows, domain.FeedRow{
			ID:                 id,
			Kind:               rec.Kind,
			Title:              rec.Title,
			Description:        rec.Description,
			DestinationURL:     rec.DestinationURL,
			ImageURL:           img.URL,
			AdditionalImageURL: img.AdditionalURL,
			Category:           rec.Category,
			GeoOrigin:          rec.GeoOrigin,
			GeoRadiusKm:        rec.GeoRadiusKm,
			PostalCodes:        rec.PostalCodes,
		})
	}

	return rows
}
