package strapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"feed_generator/internal/domain"
)

type SourceTestSuite struct {
	suite.Suite
	logger *slog.Logger
}

func (s *SourceTestSuite) SetupTest() {
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSourceTestSuite(t *testing.T) {
	suite.Run(t, new(SourceTestSuite))
}

func (s *SourceTestSuite) newSource(baseURL string) *Source {
	return New(SourceConfig{
		Client: Config{
			BaseURL:  baseURL,
			Token:    "test-token",
			PageSize: 100,
			Timeout:  5 * time.Second,
		},
		Home:        Endpoint{Path: "/api/home"},
		Courses:     Endpoint{Path: "/api/cursos"},
		CoursePages: Endpoint{Path: "/api/curso-paginas"},
	}, s.logger)
}

func (s *SourceTestSuite) TestBannersExtraction() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":1,"attributes":{"banner":[
			{"id":10,"alt":"Medicina Macapá","link":"/medicina-macapa",
			 "desktop":{"data":{"id":1,"attributes":{"url":"/uploads/desktop.png"}}},
			 "mobile":{"data":{"id":2,"attributes":{"url":"/uploads/mobile.png"}}}},
			{"id":11,"alt":"Vestibular","link":"/vestibular",
			 "desktop":{"data":null},
			 "mobile":{"data":{"id":3,"attributes":{"url":"/uploads/only_mobile.png"}}}},
			{"alt":"Sem imagem","link":"/institucional",
			 "desktop":{"data":null},"mobile":{"data":null}}
		]}}}`)
	}))
	defer srv.Close()

	entities, err := s.newSource(srv.URL).Banners(context.Background())

	s.NoError(err)
	s.Require().Len(entities, 3)

	// Desktop is the primary image with mobile as its alternate.
	first := entities[0]
	s.Equal(domain.KindBanner, first.Kind)
	s.Equal(10, first.ExternalID)
	s.Equal("Medicina Macapá", first.Title)
	s.Require().Len(first.Images, 1)
	s.Equal("/uploads/desktop.png", first.Images[0].URL)
	s.Equal("/uploads/mobile.png", first.Images[0].AlternateURL)
	s.False(first.MultiImage)

	// Mobile alone becomes the single fallback image.
	second := entities[1]
	s.Empty(second.Images)
	s.Require().NotNil(second.Fallback)
	s.Equal("/uploads/only_mobile.png", second.Fallback.URL)

	// No media at all: the record survives extraction and is dropped later
	// by the image expansion. A missing component id falls back to the
	// list index.
	third := entities[2]
	s.Equal(2, third.ExternalID)
	s.Empty(third.Images)
	s.Nil(third.Fallback)
}

func (s *SourceTestSuite) TestCoursesExtraction() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[
			{"id":5,"attributes":{"nome":"Agronomia","modalidade":"Presencial","url":"/cursos/agronomia",
			 "imagem":{"data":{"id":9,"attributes":{"url":"/uploads/agro.png",
			   "formats":{"large":{"url":"/uploads/large_agro.png"},"medium":{"url":"/uploads/medium_agro.png"}}}}}}}
		],"meta":{"pagination":{"page":1,"pageSize":100,"pageCount":1,"total":1}}}`)
	}))
	defer srv.Close()

	entities, err := s.newSource(srv.URL).Courses(context.Background())

	s.NoError(err)
	s.Require().Len(entities, 1)

	course := entities[0]
	s.Equal(domain.KindCourse, course.Kind)
	s.Equal(5, course.ExternalID)
	s.Equal("Agronomia", course.Title)
	s.Equal("Presencial", course.CourseType)
	s.Equal("/cursos/agronomia", course.Link)
	s.Require().Len(course.Images, 1)
	s.Equal("/uploads/agro.png", course.Images[0].URL)
	s.Equal("/uploads/large_agro.png", course.Images[0].AlternateURL)
}

func (s *SourceTestSuite) TestCoursePagesExtraction() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[
			{"id":7,"attributes":{"titulo":"Medicina","tipo_curso":"Bacharelado","url":"/medicina",
			 "imagem_meta_ads":{"data":[
			   {"id":1,"attributes":{"url":"/uploads/med1.png","formats":{"medium":{"url":"/uploads/medium_med1.png"}}}},
			   {"id":2,"attributes":{"url":"/uploads/med2.png"}}
			 ]},
			 "imagem_banner":{"data":{"id":3,"attributes":{"url":"/uploads/banner_med.png"}}}}},
			{"id":8,"attributes":{"titulo":"Psicologia","tipo_curso":"Bacharelado","url":"/psicologia",
			 "imagem_meta_ads":{"data":null},
			 "imagem_banner":{"data":{"id":4,"attributes":{"url":"/uploads/banner_psico.png"}}}}}
		],"meta":{"pagination":{"page":1,"pageSize":100,"pageCount":1,"total":2}}}`)
	}))
	defer srv.Close()

	entities, err := s.newSource(srv.URL).CoursePages(context.Background())

	s.NoError(err)
	s.Require().Len(entities, 2)

	// Catalog media fans out; the banner media is ignored when present.
	med := entities[0]
	s.True(med.MultiImage)
	s.Require().Len(med.Images, 2)
	s.Equal("/uploads/med1.png", med.Images[0].URL)
	s.Equal("/uploads/medium_med1.png", med.Images[0].AlternateURL)
	s.Equal("/uploads/med2.png", med.Images[1].URL)
	s.Empty(med.Images[1].AlternateURL)
	s.Nil(med.Fallback)

	// Without catalog media the banner image becomes the single fallback.
	psico := entities[1]
	s.False(psico.MultiImage)
	s.Empty(psico.Images)
	s.Require().NotNil(psico.Fallback)
	s.Equal("/uploads/banner_psico.png", psico.Fallback.URL)
}

func (s *SourceTestSuite) TestSingleCatalogImageObjectShape() {
	// Strapi returns an object instead of an array when the field holds a
	// single file.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[
			{"id":9,"attributes":{"titulo":"Direito","tipo_curso":"Bacharelado","url":"/direito",
			 "imagem_meta_ads":{"data":{"id":1,"attributes":{"url":"/uploads/direito.png"}}},
			 "imagem_banner":{"data":null}}}
		],"meta":{"pagination":{"page":1,"pageSize":100,"pageCount":1,"total":1}}}`)
	}))
	defer srv.Close()

	entities, err := s.newSource(srv.URL).CoursePages(context.Background())

	s.NoError(err)
	s.Require().Len(entities, 1)
	s.True(entities[0].MultiImage)
	s.Require().Len(entities[0].Images, 1)
	s.Equal("/uploads/direito.png", entities[0].Images[0].URL)
}

func (s *SourceTestSuite) TestMalformedEntrySkipped() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[
			{"id":1,"attributes":{"titulo":123}},
			{"id":2,"attributes":{"titulo":"Medicina","url":"/medicina"}}
		],"meta":{"pagination":{"page":1,"pageSize":100,"pageCount":1,"total":2}}}`)
	}))
	defer srv.Close()

	entities, err := s.newSource(srv.URL).CoursePages(context.Background())

	s.NoError(err)
	s.Require().Len(entities, 1)
	s.Equal(2, entities[0].ExternalID)
}

func (s *SourceTestSuite) TestMediaItemsShapes() {
	var rel MediaRelation

	s.Require().NoError(json.Unmarshal([]byte(`{"data":null}`), &rel))
	s.Empty(rel.Data)

	s.Require().NoError(json.Unmarshal([]byte(`{"data":{"id":1,"attributes":{"url":"/a.png"}}}`), &rel))
	s.Require().Len(rel.Data, 1)
	s.Equal("/a.png", rel.Data[0].Attributes.URL)

	s.Require().NoError(json.Unmarshal([]byte(`{"data":[{"id":1,"attributes":{"url":"/a.png"}},{"id":2,"attributes":{"url":"/b.png"}}]}`), &rel))
	s.Require().Len(rel.Data, 2)
	s.Equal("/b.png", rel.Data[1].Attributes.URL)
}
