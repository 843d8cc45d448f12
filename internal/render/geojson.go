package render

import (
	"strconv"

	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/couchcryptid/nclex-dashboard/internal/domain"
)

// FeatureCollection converts merged regions to GeoJSON. Feature IDs are the
// region's position in merged, which is what the figure's locations refer to.
// Unmatched regions carry null aggregate properties.
func FeatureCollection(merged []domain.MergedRegion) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{
		Features: make([]*geojson.Feature, 0, len(merged)),
	}
	for i, m := range merged {
		props := map[string]any{
			"name":         m.Region.Name,
			"geoid":        m.Region.GeoID,
			"county_key":   nil,
			"county_label": nil,
			"pass":         nil,
			"total":        nil,
			"pass_percent": nil,
			"schools":      nil,
			"hover":        domain.HoverText(m),
		}
		if agg := m.Aggregate; agg != nil {
			props["county_key"] = agg.CountyKey
			props["county_label"] = agg.CountyLabel
			props["pass"] = agg.Pass
			props["total"] = agg.Total
			props["pass_percent"] = agg.PassPercent
			props["schools"] = agg.SchoolDetails
		}

		feature := &geojson.Feature{
			ID:         strconv.Itoa(i),
			Properties: props,
		}
		if m.Region.Geometry != nil {
			feature.Geometry = m.Region.Geometry
		}
		fc.Features = append(fc.Features, feature)
	}
	return fc
}
