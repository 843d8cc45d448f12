package http

import (
	"github.com/couchcryptid/nclex-dashboard/internal/domain"
	"github.com/couchcryptid/nclex-dashboard/internal/pipeline"
)

type yearsResponse struct {
	Years   []int `json:"years"`
	Default int   `json:"default"`
}

type regionsResponse struct {
	Year      int              `json:"year"`
	Title     string           `json:"title"`
	Unmatched int              `json:"unmatched"`
	Regions   []regionResponse `json:"regions"`
}

// regionResponse is one merged region. Aggregate fields are null for
// regions without data.
type regionResponse struct {
	Name        string   `json:"name"`
	GeoID       string   `json:"geoid,omitempty"`
	CountyLabel *string  `json:"county_label"`
	CountyKey   *string  `json:"county_key"`
	Pass        *int     `json:"pass"`
	Total       *int     `json:"total"`
	PassPercent *float64 `json:"pass_percent"`
	Schools     []string `json:"schools"`
	Hover       string   `json:"hover"`
	Color       float64  `json:"color"`
}

func newRegionsResponse(v pipeline.View) regionsResponse {
	out := regionsResponse{
		Year:      v.Year,
		Title:     v.Title,
		Unmatched: v.Unmatched,
		Regions:   make([]regionResponse, len(v.Regions)),
	}
	for i, m := range v.Regions {
		r := regionResponse{
			Name:  m.Region.Name,
			GeoID: m.Region.GeoID,
			Hover: domain.HoverText(m),
			Color: domain.ColorValue(m),
		}
		if agg := m.Aggregate; agg != nil {
			r.CountyLabel = &agg.CountyLabel
			r.CountyKey = &agg.CountyKey
			r.Pass = &agg.Pass
			r.Total = &agg.Total
			r.PassPercent = &agg.PassPercent
			r.Schools = agg.SchoolDetails
		}
		out.Regions[i] = r
	}
	return out
}
