package feed

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"

	"feed_generator/internal/domain"
)

type ExpanderTestSuite struct {
	suite.Suite
	expander *Expander
}

func (s *ExpanderTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.expander = NewExpander(logger)
}

func TestExpanderTestSuite(t *testing.T) {
	suite.Run(t, new(ExpanderTestSuite))
}

func (s *ExpanderTestSuite) record(images ...domain.ImageRef) domain.ProductRecord {
	return domain.ProductRecord{
		BaseID:          "course-page_12",
		Kind:            domain.KindCoursePage,
		Title:           "Medicina",
		Description:     "Medicina - Bacharelado",
		DestinationURL:  "https://www.example.com/medicina",
		Category:        "Educação > Medicina",
		GeoOrigin:       domain.GeoPoint{Latitude: -24.0433, Longitude: -52.3781},
		GeoRadiusKm:     80,
		PostalCodes:     []string{"87300-000"},
		CandidateImages: images,
	}
}

func (s *ExpanderTestSuite) TestSingleImageKeepsBareID() {
	rows := s.expander.Expand(s.record(
		domain.ImageRef{URL: "https://cms.example.com/a.png", AdditionalURL: "https://cms.example.com/large_a.png"},
	))

	s.Len(rows, 1)
	s.Equal("course-page_12", rows[0].ID)
	s.Equal("https://cms.example.com/a.png", rows[0].ImageURL)
	s.Equal("https://cms.example.com/large_a.png", rows[0].AdditionalImageURL)
}

func (s *ExpanderTestSuite) TestMultipleImagesGetSuffixedIDs() {
	rows := s.expander.Expand(s.record(
		domain.ImageRef{URL: "https://cms.example.com/a.png"},
		domain.ImageRef{URL: "https://cms.example.com/b.png"},
		domain.ImageRef{URL: "https://cms.example.com/c.png"},
	))

	s.Len(rows, 3)
	s.Equal("course-page_12_img1", rows[0].ID)
	s.Equal("course-page_12_img2", rows[1].ID)
	s.Equal("course-page_12_img3", rows[2].ID)
	s.Equal("https://cms.example.com/a.png", rows[0].ImageURL)
	s.Equal("https://cms.example.com/b.png", rows[1].ImageURL)
	s.Equal("https://cms.example.com/c.png", rows[2].ImageURL)
}

func (s *ExpanderTestSuite) TestAdditionalImagePerRow() {
	rows := s.expander.Expand(s.record(
		domain.ImageRef{URL: "https://cms.example.com/a.png", AdditionalURL: "https://cms.example.com/large_a.png"},
		domain.ImageRef{URL: "https://cms.example.com/b.png"},
	))

	s.Len(rows, 2)
	s.Equal("https://cms.example.com/large_a.png", rows[0].AdditionalImageURL)
	s.Empty(rows[1].AdditionalImageURL)
}

func (s *ExpanderTestSuite) TestNoImagesEmitsNothing() {
	rows := s.expander.Expand(s.record())
	s.Empty(rows)
}

func (s *ExpanderTestSuite) TestMissingURLSkipsImageOnly() {
	rows := s.expander.Expand(s.record(
		domain.ImageRef{URL: ""},
		domain.ImageRef{URL: "https://cms.example.com/a.png"},
		domain.ImageRef{URL: "https://cms.example.com/b.png"},
	))

	s.Len(rows, 2)
	s.Equal("course-page_12_img1", rows[0].ID)
	s.Equal("https://cms.example.com/a.png", rows[0].ImageURL)
	s.Equal("course-page_12_img2", rows[1].ID)
}

func (s *ExpanderTestSuite) TestAllImagesInvalidEmitsNothing() {
	rows := s.expander.Expand(s.record(
		domain.ImageRef{URL: ""},
		domain.ImageRef{URL: ""},
	))
	s.Empty(rows)
}
