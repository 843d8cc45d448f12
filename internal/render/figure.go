// Package render turns merged county regions into the dashboard outputs: a
// Plotly choropleth figure, the HTML page that hosts it, and a PNG bar chart.
package render

import (
	"fmt"
	"strconv"

	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/couchcryptid/nclex-dashboard/internal/domain"
)

// Color scale domain. Values below ColorMin render with the lowest color.
const (
	ColorMin   = 80.0
	ColorMax   = 100.0
	ColorScale = "Greens"
)

// Figure is a Plotly figure: one choropleth trace plus layout.
type Figure struct {
	Data   []Choropleth `json:"data"`
	Layout Layout       `json:"layout"`
}

// Choropleth is a Plotly choropleth trace keyed by GeoJSON feature id.
type Choropleth struct {
	Type         string                     `json:"type"`
	GeoJSON      *geojson.FeatureCollection `json:"geojson"`
	Locations    []string                   `json:"locations"`
	FeatureIDKey string                     `json:"featureidkey"`
	Z            []float64                  `json:"z"`
	Text         []string                   `json:"text"`
	HoverInfo    string                     `json:"hoverinfo"`
	ColorScale   string                     `json:"colorscale"`
	ZMin         float64                    `json:"zmin"`
	ZMax         float64                    `json:"zmax"`
	Marker       Marker                     `json:"marker"`
	ColorBar     ColorBar                   `json:"colorbar"`
}

type Marker struct {
	Line MarkerLine `json:"line"`
}

type MarkerLine struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type ColorBar struct {
	Title Text `json:"title"`
}

type Text struct {
	Text string `json:"text"`
}

type Layout struct {
	Title  Text   `json:"title"`
	Margin Margin `json:"margin"`
	Geo    Geo    `json:"geo"`
}

type Margin struct {
	R int `json:"r"`
	T int `json:"t"`
	L int `json:"l"`
	B int `json:"b"`
}

type Geo struct {
	FitBounds  string     `json:"fitbounds"`
	Visible    bool       `json:"visible"`
	Scope      string     `json:"scope"`
	Projection Projection `json:"projection"`
}

type Projection struct {
	Type string `json:"type"`
}

// Title is the chart title for a year.
func Title(year int) string {
	return fmt.Sprintf("NCLEX Pass %% by County - %d", year)
}

// PageTitle is the dashboard heading for a state and year range.
func PageTitle(state string, firstYear, lastYear int) string {
	return fmt.Sprintf("PN NCLEX Pass Rates in %s (%d–%d)", state, firstYear, lastYear)
}

// BuildFigure builds the choropleth for one year. Each region is colored by
// its total pass percentage (0 when it has no data) and hovers with
// domain.HoverText.
func BuildFigure(year int, merged []domain.MergedRegion) Figure {
	locations := make([]string, len(merged))
	z := make([]float64, len(merged))
	text := make([]string, len(merged))
	for i, m := range merged {
		locations[i] = strconv.Itoa(i)
		z[i] = domain.ColorValue(m)
		text[i] = domain.HoverText(m)
	}

	return Figure{
		Data: []Choropleth{{
			Type:         "choropleth",
			GeoJSON:      FeatureCollection(merged),
			Locations:    locations,
			FeatureIDKey: "id",
			Z:            z,
			Text:         text,
			HoverInfo:    "text",
			ColorScale:   ColorScale,
			ZMin:         ColorMin,
			ZMax:         ColorMax,
			Marker:       Marker{Line: MarkerLine{Color: "black", Width: 1.2}},
			ColorBar:     ColorBar{Title: Text{Text: "Pass %"}},
		}},
		Layout: Layout{
			Title:  Text{Text: Title(year)},
			Margin: Margin{R: 0, T: 40, L: 0, B: 0},
			Geo: Geo{
				FitBounds:  "locations",
				Visible:    true,
				Scope:      "usa",
				Projection: Projection{Type: "albers usa"},
			},
		},
	}
}
