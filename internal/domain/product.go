package domain

// EntityKind identifies which CMS collection a record came from.
type EntityKind string

const (
	KindBanner     EntityKind = "banner"
	KindCourse     EntityKind = "course"
	KindCoursePage EntityKind = "course-page"
)

// RawImage is a candidate image as extracted from the CMS, before URL
// resolution. AlternateURL is a second rendition of the same image and may
// be empty.
type RawImage struct {
	URL          string
	AlternateURL string
}

// RawEntity is the neutral pre-normalization record produced by the source
// layer. Field extraction differs per entity kind; everything downstream of
// this type is shared.
type RawEntity struct {
	Kind       EntityKind
	ExternalID int
	Title      string
	CourseType string // modality text ("EAD", "Graduação", ...); empty for banners
	Link       string
	Images     []RawImage // primary candidates, in source order
	Fallback   *RawImage  // used only when Images is empty, never fanned out
	// MultiImage marks records whose primary media field is multi-valued;
	// their emitted rows drive the fan-out tally in the reconciliation
	// report.
	MultiImage bool
}

// GeoPoint is a circle-targeting origin.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// ImageRef is a resolved candidate image. AdditionalURL is an alternate
// rendition of the same image and may be empty.
type ImageRef struct {
	URL           string
	AdditionalURL string
}

// ProductRecord is the canonical normalized record, one per RawEntity.
type ProductRecord struct {
	BaseID          string
	Kind            EntityKind
	Title           string
	Description     string
	DestinationURL  string
	Category        string
	GeoOrigin       GeoPoint
	GeoRadiusKm     int
	PostalCodes     []string
	CandidateImages []ImageRef
	MultiImage      bool
}

// FeedRow is one serialization-ready catalog row, one per
// (ProductRecord, ImageRef) pair.
type FeedRow struct {
	ID                 string
	Kind               EntityKind
	Title              string
	Description        string
	DestinationURL     string
	ImageURL           string
	AdditionalImageURL string
	Category           string
	GeoOrigin          GeoPoint
	GeoRadiusKm        int
	PostalCodes        []string
}
