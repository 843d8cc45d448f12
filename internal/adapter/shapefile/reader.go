// Package shapefile reads county boundaries from a TIGER/Line shapefile.
package shapefile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"

	"github.com/couchcryptid/nclex-dashboard/internal/domain"
)

// TIGER/Line attribute names.
const (
	FieldName     = "NAME"
	FieldStateFP  = "STATEFP"
	FieldCountyFP = "COUNTYFP"
	FieldGeoID    = "GEOID"
)

// Reader implements domain.BoundarySource over one .shp/.dbf pair.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a boundary reader for the shapefile at path.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// Path returns the shapefile location.
func (r *Reader) Path() string {
	return r.path
}

// LoadBoundaries returns the regions whose STATEFP equals stateFP, in file
// order, with names trimmed and title-cased.
func (r *Reader) LoadBoundaries(ctx context.Context, stateFP string) ([]domain.BoundaryRegion, error) {
	sr, err := shp.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile %s: %w", r.path, err)
	}
	defer sr.Close()

	fields, err := fieldIndex(sr.Fields())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.path, err)
	}

	var (
		regions []domain.BoundaryRegion
		skipped int
	)
	for sr.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, shape := sr.Shape()
		if attribute(sr, n, fields.stateFP) != stateFP {
			skipped++
			continue
		}

		polygon, ok := shape.(*shp.Polygon)
		if !ok {
			return nil, fmt.Errorf("%s record %d: unsupported shape type %T", r.path, n, shape)
		}
		geometry, err := toMultiPolygon(polygon)
		if err != nil {
			return nil, fmt.Errorf("%s record %d: %w", r.path, n, err)
		}

		regions = append(regions, domain.BoundaryRegion{
			Name:     domain.NormalizeName(attribute(sr, n, fields.name)),
			StateFP:  stateFP,
			CountyFP: attribute(sr, n, fields.countyFP),
			GeoID:    attribute(sr, n, fields.geoID),
			Geometry: geometry,
		})
	}
	if err := sr.Err(); err != nil {
		return nil, fmt.Errorf("read shapefile %s: %w", r.path, err)
	}

	if len(regions) == 0 {
		return nil, fmt.Errorf("%w: state %s in %s", domain.ErrNoRegions, stateFP, r.path)
	}

	r.logger.Debug("shapefile loaded", "path", r.path, "regions", len(regions), "skipped", skipped)
	return regions, nil
}

// fields maps attribute names to DBF column indexes; -1 marks an absent
// optional column.
type fields struct {
	name, stateFP, countyFP, geoID int
}

func fieldIndex(dbf []shp.Field) (fields, error) {
	idx := fields{name: -1, stateFP: -1, countyFP: -1, geoID: -1}
	for i, f := range dbf {
		switch strings.ToUpper(f.String()) {
		case FieldName:
			idx.name = i
		case FieldStateFP:
			idx.stateFP = i
		case FieldCountyFP:
			idx.countyFP = i
		case FieldGeoID:
			idx.geoID = i
		}
	}
	if idx.name < 0 {
		return fields{}, fmt.Errorf("%w: %s attribute", domain.ErrMissingColumn, FieldName)
	}
	if idx.stateFP < 0 {
		return fields{}, fmt.Errorf("%w: %s attribute", domain.ErrMissingColumn, FieldStateFP)
	}
	return idx, nil
}

func attribute(sr *shp.Reader, row, field int) string {
	if field < 0 {
		return ""
	}
	return strings.TrimSpace(strings.Trim(sr.ReadAttribute(row, field), "\x00"))
}

// toMultiPolygon groups shapefile rings into polygons. Shapefiles store outer
// rings clockwise and holes counter-clockwise; each clockwise ring opens a new
// polygon and the holes that follow attach to it. Ring orientation is kept
// as-is, which is what the browser map projection expects.
func toMultiPolygon(p *shp.Polygon) (*geom.MultiPolygon, error) {
	mp := geom.NewMultiPolygon(geom.XY)

	var (
		flat []float64
		ends []int
	)
	flush := func() error {
		if len(ends) == 0 {
			return nil
		}
		poly := geom.NewPolygonFlat(geom.XY, flat, ends)
		flat, ends = nil, nil
		return mp.Push(poly)
	}

	for _, ring := range rings(p) {
		if len(ring) < 4*geom.XY.Stride() {
			continue
		}
		if !xy.IsRingCounterClockwise(geom.XY, ring) || len(ends) == 0 {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		flat = append(flat, ring...)
		ends = append(ends, len(flat))
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return mp, nil
}

// rings splits a shapefile polygon into flat XY coordinate rings.
func rings(p *shp.Polygon) [][]float64 {
	out := make([][]float64, 0, len(p.Parts))
	for i, start := range p.Parts {
		end := len(p.Points)
		if i+1 < len(p.Parts) {
			end = int(p.Parts[i+1])
		}
		if int(start) >= end || end > len(p.Points) {
			continue
		}
		ring := make([]float64, 0, 2*(end-int(start)))
		for _, pt := range p.Points[start:end] {
			ring = append(ring, pt.X, pt.Y)
		}
		out = append(out, ring)
	}
	return out
}
