package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"feed_generator/internal/config"
	"feed_generator/internal/domain"
	"feed_generator/internal/feed"
)

// FeedService runs the whole pipeline: fetch each collection, normalize,
// expand images into rows, serialize, write the artifact, and report.
type FeedService struct {
	source     Source
	writer     FeedWriter
	normalizer *feed.Normalizer
	expander   *feed.Expander
	serializer *feed.Serializer
	reporter   *feed.Reporter
	logger     *slog.Logger
	cfg        config.FeedConfig
}

func NewFeedService(
	source Source,
	writer FeedWriter,
	normalizer *feed.Normalizer,
	logger *slog.Logger,
	cfg config.FeedConfig,
) *FeedService {
	return &FeedService{
		source:     source,
		writer:     writer,
		normalizer: normalizer,
		expander:   feed.NewExpander(logger),
		serializer: feed.NewSerializer(cfg.Brand),
		reporter:   feed.NewReporter(logger),
		logger:     logger.With("component", "feed"),
		cfg:        cfg,
	}
}

// Generate performs one feed assembly pass. Collection fetch failures and
// per-record failures are contained: whatever was gathered still reaches
// the artifact. Only a write failure is fatal.
func (s *FeedService) Generate(ctx context.Context) (*domain.FeedStats, error) {
	startTime := time.Now()
	stats := domain.NewFeedStats()
	stats.ExpectedImages = s.cfg.ExpectedImages

	s.logger.Info("starting feed generation", "output", s.cfg.OutputPath)

	collections := []struct {
		kind  domain.EntityKind
		fetch func(context.Context) ([]domain.RawEntity, error)
	}{
		{domain.KindBanner, s.source.Banners},
		{domain.KindCourse, s.source.Courses},
		{domain.KindCoursePage, s.source.CoursePages},
	}

	var rows []domain.FeedRow
	for _, col := range collections {
		entities, err := col.fetch(ctx)
		if err != nil {
			// Collection-scoped fault: keep the partial set and move on.
			s.logger.Error("collection fetch incomplete",
				"kind", col.kind,
				"accumulated", len(entities),
				"error", err,
			)
		}

		stats.Fetched[col.kind] = len(entities)
		s.logger.Info("fetched collection", "kind", col.kind, "entities", len(entities))

		rows = append(rows, s.assemble(entities, stats)...)
	}

	stats.TotalRows = len(rows)

	csv := s.serializer.Serialize(rows)
	if err := s.writer.Write(s.cfg.OutputPath, []byte(csv)); err != nil {
		return stats, fmt.Errorf("write feed: %w", err)
	}

	stats.Duration = time.Since(startTime)

	s.logger.Info("feed written", "path", s.cfg.OutputPath, "rows", stats.TotalRows)
	s.reporter.Report(stats)

	return stats, nil
}

// assemble normalizes and expands one collection's entities, keeping the
// fetch order. A record that fails to normalize or has no valid image is
// skipped without affecting the rest of the batch.
func (s *FeedService) assemble(entities []domain.RawEntity, stats *domain.FeedStats) []domain.FeedRow {
	var rows []domain.FeedRow

	for _, entity := range entities {
		rec, err := s.normalizer.Normalize(entity)
		if err != nil {
			s.logger.Warn("skipping entity",
				"kind", entity.Kind,
				"id", entity.ExternalID,
				"error", err,
			)
			stats.SkippedRecords++
			continue
		}

		recRows := s.expander.Expand(rec)
		if len(recRows) == 0 {
			stats.SkippedRecords++
			stats.SkippedImages += len(rec.CandidateImages)
			continue
		}

		stats.SkippedImages += len(rec.CandidateImages) - len(recRows)
		stats.Rows[rec.Kind] += len(recRows)

		if rec.MultiImage {
			stats.FanOutRecords++
			stats.FanOutImages += len(recRows)
			stats.Breakdown = append(stats.Breakdown, domain.RecordImageCount{
				BaseID: rec.BaseID,
				Title:  rec.Title,
				Images: len(recRows),
			})
		}

		rows = append(rows, recRows...)
	}

	return rows
}
