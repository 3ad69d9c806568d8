package feed

import (
	"fmt"
	"strconv"
	"strings"

	"feed_generator/internal/domain"
)

const (
	categoryRoot          = "Educação"
	categoryDistance      = "Educação > EAD"
	categoryUndergraduate = "Educação > Graduação"

	descriptionSuffix = "Educação de qualidade e tradição."

	minRadiusKm = 1
	maxRadiusKm = 80
)

// categoryRules is evaluated top-down against the lowercased title; the
// first matching keyword wins. The order is part of the feed contract.
var categoryRules = []struct {
	keywords []string
	category string
}{
	{[]string{"medicina"}, "Educação > Medicina"},
	{[]string{"odontologia"}, "Educação > Odontologia"},
	{[]string{"enfermagem"}, "Educação > Enfermagem"},
	{[]string{"nutrição"}, "Educação > Nutrição"},
	{[]string{"biomedicina"}, "Educação > Biomedicina"},
	{[]string{"veterinária"}, "Educação > Veterinária"},
	{[]string{"direito"}, "Educação > Direito"},
	{[]string{"administração"}, "Educação > Administração"},
	{[]string{"agronomia", "agronegócio"}, "Educação > Agronomia"},
	{[]string{"engenharia"}, "Educação > Engenharia"},
	{[]string{"tecnologia", "tecn."}, "Educação > Tecnologia"},
}

type geoBucket struct {
	origin      domain.GeoPoint
	radius      string
	postalCodes []string
}

// Exactly two geo buckets exist: the Macapá campus region and the default
// Campo Mourão region.
var (
	macapaBucket = geoBucket{
		origin: domain.GeoPoint{Latitude: 0.0389, Longitude: -51.0664},
		radius: "80",
		postalCodes: []string{
			"68900-000", "68901-000", "68902-000", "68903-000", "68904-000",
			"68905-000", "68906-000", "68907-000", "68908-000", "68909-000",
		},
	}
	defaultBucket = geoBucket{
		origin: domain.GeoPoint{Latitude: -24.0433, Longitude: -52.3781},
		radius: "80",
		postalCodes: []string{
			"87300-000", "87301-000", "87302-000", "87303-000", "87304-000",
			"87305-000", "87306-000", "87307-000", "87308-000", "87309-000",
		},
	}
)

// Normalizer maps raw CMS entities into canonical product records, applying
// the categorization and geo-targeting heuristics shared by all entity
// kinds.
type Normalizer struct {
	cmsBaseURL  string
	siteBaseURL string
	brand       string
}

// NewNormalizer creates a normalizer. Relative image paths are resolved
// against cmsBaseURL; relative destination links against siteBaseURL.
func NewNormalizer(cmsBaseURL, siteBaseURL, brand string) *Normalizer {
	return &Normalizer{
		cmsBaseURL:  cmsBaseURL,
		siteBaseURL: siteBaseURL,
		brand:       brand,
	}
}

// Normalize derives the canonical ProductRecord for one raw entity.
func (n *Normalizer) Normalize(e domain.RawEntity) (domain.ProductRecord, error) {
	switch e.Kind {
	case domain.KindBanner, domain.KindCourse, domain.KindCoursePage:
	default:
		return domain.ProductRecord{}, fmt.Errorf("unsupported entity kind %q", e.Kind)
	}

	title := e.Title
	if title == "" {
		title = "Curso " + n.brand
	}

	link := e.Link
	if link == "" {
		link = n.siteBaseURL
	}
	link = resolveURL(link, n.siteBaseURL)

	bucket := selectGeoBucket(e.Title, link)

	rec := domain.ProductRecord{
		BaseID:         fmt.Sprintf("%s_%d", e.Kind, e.ExternalID),
		Kind:           e.Kind,
		Title:          title,
		Description:    n.describe(e, title),
		DestinationURL: link,
		Category:       categorize(e.Title, e.CourseType, e.Kind),
		GeoOrigin:      bucket.origin,
		GeoRadiusKm:    clampRadius(bucket.radius),
		PostalCodes:    bucket.postalCodes,
		MultiImage:     e.MultiImage,
	}

	for _, img := range e.Images {
		rec.CandidateImages = append(rec.CandidateImages, domain.ImageRef{
			URL:           resolveURL(img.URL, n.cmsBaseURL),
			AdditionalURL: resolveURL(img.AlternateURL, n.cmsBaseURL),
		})
	}
	if len(rec.CandidateImages) == 0 && e.Fallback != nil && e.Fallback.URL != "" {
		rec.CandidateImages = []domain.ImageRef{{
			URL:           resolveURL(e.Fallback.URL, n.cmsBaseURL),
			AdditionalURL: resolveURL(e.Fallback.AlternateURL, n.cmsBaseURL),
		}}
	}

	return rec, nil
}

func (n *Normalizer) describe(e domain.RawEntity, title string) string {
	if e.Kind == domain.KindBanner {
		base := e.Title
		if base == "" {
			base = "Curso"
		}
		return fmt.Sprintf("%s - %s. %s", base, n.brand, descriptionSuffix)
	}
	return fmt.Sprintf("%s - %s - %s. %s", title, e.CourseType, n.brand, descriptionSuffix)
}

// categorize resolves the closed category taxonomy: subject keyword first,
// then distance-learning modality, then the undergraduate bucket. Banners
// have no modality concept and fall back to the bare root category instead.
func categorize(title, modality string, kind domain.EntityKind) string {
	if title == "" {
		return categoryRoot
	}

	lower := strings.ToLower(title)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}

	if kind == domain.KindBanner {
		return categoryRoot
	}

	if strings.Contains(strings.ToLower(modality), "ead") {
		return categoryDistance
	}

	return categoryUndergraduate
}

// selectGeoBucket picks between the two fixed regions. The accented city
// name is matched in the title, the unaccented slug in the URL.
func selectGeoBucket(title, link string) geoBucket {
	titleLower := strings.ToLower(title)
	linkLower := strings.ToLower(link)

	if strings.Contains(titleLower, "macapá") || strings.Contains(linkLower, "macapa") {
		return macapaBucket
	}
	return defaultBucket
}

// clampRadius parses the numeric part of a radius value and clamps it to
// [1, 80]. A value with no parsable number at all becomes 0.
func clampRadius(value string) int {
	var digits strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' {
			digits.WriteRune(r)
		}
	}

	parsed, err := strconv.ParseFloat(digits.String(), 64)
	if err != nil {
		return 0
	}

	if parsed < minRadiusKm {
		parsed = minRadiusKm
	}
	if parsed > maxRadiusKm {
		parsed = maxRadiusKm
	}
	return int(parsed)
}

// resolveURL prefixes relative CMS paths with the given origin; absolute
// URLs pass through unchanged.
func resolveURL(u, base string) string {
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http") {
		return u
	}
	return base + u
}
