package feed

import (
	"strconv"
	"strings"

	"feed_generator/internal/domain"
)

// Header is the exact column contract of the ads platform's catalog
// ingestion. Order matters.
const Header = "id,title,description,availability,condition,price,link,image_link,brand,google_product_category,additional_image_link,availability_circle_origin.latitude,availability_circle_origin.longitude,availability_circle_radius,availability_circle_radius_unit,availability_postal_codes"

// Constant columns required by the catalog schema.
const (
	availability = "in stock"
	condition    = "new"
	price        = "0.00 BRL"
	radiusUnit   = "km"
)

// Serializer renders feed rows as CSV text.
type Serializer struct {
	brand string
}

// NewSerializer creates a serializer emitting the given brand column.
func NewSerializer(brand string) *Serializer {
	return &Serializer{brand: brand}
}

// Serialize renders the header line followed by one line per row, joined by
// newlines, in the order the rows were produced.
func (s *Serializer) Serialize(rows []domain.FeedRow) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, Header)
	for _, row := range rows {
		lines = append(lines, s.line(row))
	}
	return strings.Join(lines, "\n")
}

func (s *Serializer) line(row domain.FeedRow) string {
	fields := []string{
		escapeField(row.ID),
		escapeField(row.Title),
		escapeField(row.Description),
		availability,
		condition,
		price,
		escapeField(row.DestinationURL),
		escapeField(row.ImageURL),
		escapeField(s.brand),
		escapeField(row.Category),
		escapeField(row.AdditionalImageURL),
		formatCoordinate(row.GeoOrigin.Latitude),
		formatCoordinate(row.GeoOrigin.Longitude),
		strconv.Itoa(row.GeoRadiusKm),
		radiusUnit,
		escapeField(strings.Join(row.PostalCodes, ",")),
	}
	return strings.Join(fields, ",")
}

// escapeField quotes a value, doubling embedded quotes, only when it
// contains a comma, a double quote, or a newline.
func escapeField(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// formatCoordinate renders latitude/longitude with exactly 6 decimal
// digits.
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
