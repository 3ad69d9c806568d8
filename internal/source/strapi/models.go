package strapi

import (
	"bytes"
	"encoding/json"
)

// Entry is one record of a Strapi collection. Attributes are decoded per
// entity kind by the extraction layer.
type Entry struct {
	ID         int             `json:"id"`
	Attributes json.RawMessage `json:"attributes"`
}

type collectionResponse struct {
	Data []Entry `json:"data"`
	Meta *meta   `json:"meta"`
}

type meta struct {
	Pagination *pagination `json:"pagination"`
}

type pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// homeResponse is the singleton home resource carrying the banner list.
type homeResponse struct {
	Data *struct {
		Attributes struct {
			Banner []BannerComponent `json:"banner"`
		} `json:"attributes"`
	} `json:"data"`
}

// BannerComponent is one promotional banner nested in the home resource.
type BannerComponent struct {
	ID      int           `json:"id"`
	Alt     string        `json:"alt"`
	Link    string        `json:"link"`
	Desktop MediaRelation `json:"desktop"`
	Mobile  MediaRelation `json:"mobile"`
}

type courseAttributes struct {
	Nome       string        `json:"nome"`
	Modalidade string        `json:"modalidade"`
	URL        string        `json:"url"`
	Imagem     MediaRelation `json:"imagem"`
}

type coursePageAttributes struct {
	Titulo        string        `json:"titulo"`
	TipoCurso     string        `json:"tipo_curso"`
	URL           string        `json:"url"`
	ImagemMetaAds MediaRelation `json:"imagem_meta_ads"`
	ImagemBanner  MediaRelation `json:"imagem_banner"`
}

// MediaRelation is a populated media field.
type MediaRelation struct {
	Data MediaItems `json:"data"`
}

type MediaFile struct {
	ID         int             `json:"id"`
	Attributes MediaAttributes `json:"attributes"`
}

type MediaAttributes struct {
	URL     string       `json:"url"`
	Formats MediaFormats `json:"formats"`
}

type MediaFormats struct {
	Large  *MediaFormat `json:"large"`
	Medium *MediaFormat `json:"medium"`
}

type MediaFormat struct {
	URL string `json:"url"`
}

// MediaItems absorbs the three shapes Strapi uses for a relation's data:
// an object for single-media fields, an array for multi-media fields, and
// null when the field is unset.
type MediaItems []MediaFile

func (m *MediaItems) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*m = nil
		return nil
	}

	if trimmed[0] == '[' {
		var files []MediaFile
		if err := json.Unmarshal(trimmed, &files); err != nil {
			return err
		}
		*m = files
		return nil
	}

	var file MediaFile
	if err := json.Unmarshal(trimmed, &file); err != nil {
		return err
	}
	*m = MediaItems{file}
	return nil
}
