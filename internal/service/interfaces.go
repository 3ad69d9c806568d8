package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"feed_generator/internal/domain"
)

// Source supplies the raw entities of each CMS collection. A fetch error
// may be returned together with a partial result; the pipeline keeps what
// was accumulated and continues.
type Source interface {
	Banners(ctx context.Context) ([]domain.RawEntity, error)
	Courses(ctx context.Context) ([]domain.RawEntity, error)
	CoursePages(ctx context.Context) ([]domain.RawEntity, error)
}

// FeedWriter persists the assembled feed artifact.
type FeedWriter interface {
	Write(path string, data []byte) error
}
