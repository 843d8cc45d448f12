package domain

import (
	"context"

	"github.com/twpayne/go-geom"
)

// BoundaryRegion is one county polygon with its identifying attributes.
type BoundaryRegion struct {
	Name     string // trimmed, title-cased display name
	StateFP  string
	CountyFP string
	GeoID    string
	Geometry *geom.MultiPolygon
}

// ExamRecord is one school's results for one exam year.
type ExamRecord struct {
	CountyLabel string // raw "County Name" cell, e.g. "Davidson, TN"
	School      string // empty when the cell is blank
	Pass        int
	Total       int
	Year        int
}

// HasSchool reports whether the record carries a school name.
func (r ExamRecord) HasSchool() bool {
	return r.School != ""
}

// ScoredRecord is an ExamRecord with its per-school pass percentage.
type ScoredRecord struct {
	ExamRecord
	Percent float64
}

// CountyAggregate holds one county label's totals for a single year.
type CountyAggregate struct {
	CountyLabel   string
	Schools       string // comma-joined school names
	Pass          int
	Total         int
	PassPercent   float64
	CountyKey     string
	SchoolDetails []string // "school: percent%", in row order
}

// MergedRegion is a boundary region with its aggregate attached.
// Aggregate is nil when no county key matched the region.
type MergedRegion struct {
	Region    BoundaryRegion
	Aggregate *CountyAggregate
}

// Matched reports whether the region has aggregate data.
func (m MergedRegion) Matched() bool {
	return m.Aggregate != nil
}

// BoundarySource loads the county boundaries for one state.
type BoundarySource interface {
	Path() string
	LoadBoundaries(ctx context.Context, stateFP string) ([]BoundaryRegion, error)
}

// RecordSource loads exam records for a fixed set of years.
type RecordSource interface {
	Path() string
	LoadRecords(ctx context.Context, years []int) ([]ExamRecord, error)
}
