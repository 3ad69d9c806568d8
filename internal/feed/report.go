package feed

import (
	"log/slog"

	"feed_generator/internal/domain"
)

// Reporter emits the post-assembly reconciliation diagnostics. Everything
// here is operator-visible output only; it never alters the artifact.
type Reporter struct {
	logger *slog.Logger
}

// NewReporter creates a reporter.
func NewReporter(logger *slog.Logger) *Reporter {
	return &Reporter{
		logger: logger.With("component", "reconciliation"),
	}
}

// Report logs the run tallies and, when an expected image count is
// configured, compares it against the images the fan-out path actually
// contributed. A shortfall is advisory: it is logged with a per-record
// breakdown and nothing else happens.
func (r *Reporter) Report(stats *domain.FeedStats) {
	r.logger.Info("feed assembled",
		"total_rows", stats.TotalRows,
		"banner_rows", stats.Rows[domain.KindBanner],
		"course_rows", stats.Rows[domain.KindCourse],
		"course_page_rows", stats.Rows[domain.KindCoursePage],
		"skipped_records", stats.SkippedRecords,
		"skipped_images", stats.SkippedImages,
		"duration", stats.Duration,
	)

	r.logger.Info("fan-out summary",
		"records", stats.FanOutRecords,
		"images", stats.FanOutImages,
	)
	for _, entry := range stats.Breakdown {
		r.logger.Info("fan-out record",
			"id", entry.BaseID,
			"title", entry.Title,
			"images", entry.Images,
		)
	}

	if stats.ExpectedImages <= 0 {
		return
	}

	if stats.FanOutImages < stats.ExpectedImages {
		r.logger.Warn("image count below expectation",
			"expected", stats.ExpectedImages,
			"actual", stats.FanOutImages,
			"missing", stats.ExpectedImages-stats.FanOutImages,
		)
	} else if stats.FanOutImages == stats.ExpectedImages {
		r.logger.Info("all expected images present",
			"expected", stats.ExpectedImages,
		)
	}
}
