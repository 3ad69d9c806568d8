package strapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"feed_generator/internal/domain"
)

// SourceConfig wires the client to the three CMS collections.
type SourceConfig struct {
	Client      Config
	Home        Endpoint
	Courses     Endpoint
	CoursePages Endpoint
}

// Source fetches the CMS collections and extracts each entity kind's raw
// attributes into domain records. A collection fetch error is returned
// together with whatever was extracted so the pipeline can continue with
// partial data.
type Source struct {
	client      *Client
	home        Endpoint
	courses     Endpoint
	coursePages Endpoint
	logger      *slog.Logger
}

// New creates a new Strapi-backed entity source.
func New(cfg SourceConfig, logger *slog.Logger) *Source {
	return &Source{
		client:      NewClient(cfg.Client, logger),
		home:        cfg.Home,
		courses:     cfg.Courses,
		coursePages: cfg.CoursePages,
		logger:      logger.With("component", "source"),
	}
}

// Banners fetches the promotional banners nested in the home resource.
func (s *Source) Banners(ctx context.Context) ([]domain.RawEntity, error) {
	banners, err := s.client.FetchHomeBanners(ctx, s.home)
	if err != nil {
		return nil, fmt.Errorf("fetch banners: %w", err)
	}

	entities := make([]domain.RawEntity, 0, len(banners))
	for i, b := range banners {
		entities = append(entities, extractBanner(b, i))
	}

	return entities, nil
}

// Courses fetches the course catalog collection.
func (s *Source) Courses(ctx context.Context) ([]domain.RawEntity, error) {
	entries, err := s.client.FetchCollection(ctx, s.courses)
	entities := s.extractEntries(entries, domain.KindCourse)
	if err != nil {
		return entities, fmt.Errorf("fetch courses: %w", err)
	}
	return entities, nil
}

// CoursePages fetches the per-course landing page collection.
func (s *Source) CoursePages(ctx context.Context) ([]domain.RawEntity, error) {
	entries, err := s.client.FetchCollection(ctx, s.coursePages)
	entities := s.extractEntries(entries, domain.KindCoursePage)
	if err != nil {
		return entities, fmt.Errorf("fetch course pages: %w", err)
	}
	return entities, nil
}

func (s *Source) extractEntries(entries []Entry, kind domain.EntityKind) []domain.RawEntity {
	entities := make([]domain.RawEntity, 0, len(entries))
	for i, e := range entries {
		entity, err := extractEntry(e, kind, i)
		if err != nil {
			s.logger.Warn("skipping malformed entry",
				"kind", kind,
				"id", e.ID,
				"error", err,
			)
			continue
		}
		entities = append(entities, entity)
	}
	return entities
}

func extractEntry(e Entry, kind domain.EntityKind, index int) (domain.RawEntity, error) {
	id := e.ID
	if id == 0 {
		id = index
	}

	switch kind {
	case domain.KindCourse:
		var attrs courseAttributes
		if err := json.Unmarshal(e.Attributes, &attrs); err != nil {
			return domain.RawEntity{}, fmt.Errorf("decode course attributes: %w", err)
		}
		entity := domain.RawEntity{
			Kind:       kind,
			ExternalID: id,
			Title:      attrs.Nome,
			CourseType: attrs.Modalidade,
			Link:       attrs.URL,
		}
		for _, f := range attrs.Imagem.Data {
			entity.Images = append(entity.Images, f.rawImage())
		}
		return entity, nil

	case domain.KindCoursePage:
		var attrs coursePageAttributes
		if err := json.Unmarshal(e.Attributes, &attrs); err != nil {
			return domain.RawEntity{}, fmt.Errorf("decode course page attributes: %w", err)
		}
		entity := domain.RawEntity{
			Kind:       kind,
			ExternalID: id,
			Title:      attrs.Titulo,
			CourseType: attrs.TipoCurso,
			Link:       attrs.URL,
		}
		if len(attrs.ImagemMetaAds.Data) > 0 {
			entity.MultiImage = true
			for _, f := range attrs.ImagemMetaAds.Data {
				entity.Images = append(entity.Images, f.rawImage())
			}
		} else if len(attrs.ImagemBanner.Data) > 0 {
			fallback := attrs.ImagemBanner.Data[0].rawImage()
			entity.Fallback = &fallback
		}
		return entity, nil

	default:
		return domain.RawEntity{}, fmt.Errorf("unsupported entity kind %q", kind)
	}
}

// extractBanner maps one home banner component. The desktop rendition is the
// primary image with mobile as its alternate; mobile alone is a single
// fallback image.
func extractBanner(b BannerComponent, index int) domain.RawEntity {
	id := b.ID
	if id == 0 {
		id = index
	}

	entity := domain.RawEntity{
		Kind:       domain.KindBanner,
		ExternalID: id,
		Title:      b.Alt,
		Link:       b.Link,
	}

	desktop := firstURL(b.Desktop)
	mobile := firstURL(b.Mobile)

	if desktop != "" {
		img := domain.RawImage{URL: desktop}
		if mobile != "" && mobile != desktop {
			img.AlternateURL = mobile
		}
		entity.Images = []domain.RawImage{img}
	} else if mobile != "" {
		entity.Fallback = &domain.RawImage{URL: mobile}
	}

	return entity
}

func firstURL(rel MediaRelation) string {
	if len(rel.Data) == 0 {
		return ""
	}
	return rel.Data[0].Attributes.URL
}

// rawImage pairs a media file's URL with its best alternate rendition,
// preferring the large format over medium.
func (f MediaFile) rawImage() domain.RawImage {
	img := domain.RawImage{URL: f.Attributes.URL}
	if f.Attributes.Formats.Large != nil && f.Attributes.Formats.Large.URL != "" {
		img.AlternateURL = f.Attributes.Formats.Large.URL
	} else if f.Attributes.Formats.Medium != nil && f.Attributes.Formats.Medium.URL != "" {
		img.AlternateURL = f.Attributes.Formats.Medium.URL
	}
	return img
}
