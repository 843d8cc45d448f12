package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/nclex-dashboard/internal/domain"
	"github.com/couchcryptid/nclex-dashboard/internal/observability"
	"github.com/couchcryptid/nclex-dashboard/internal/render"
)

// Options selects what the dashboard loads and shows.
type Options struct {
	StateFP   string
	StateName string
	Years     []int
}

// View is one rendered year.
type View struct {
	Year        int
	Title       string
	Regions     []domain.MergedRegion
	Figure      render.Figure
	Unmatched   int
	GeneratedAt time.Time
}

// Dashboard holds the load-once datasets and renders a year on demand.
// Create one per process with Load and share it; the datasets are read-only
// after Load, so Render is safe to call from concurrent requests.
type Dashboard struct {
	boundaries []domain.BoundaryRegion
	records    []domain.ExamRecord
	years      []int
	pageTitle  string
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
}

// Load reads both datasets and returns a ready Dashboard. Any load error is
// fatal for the caller; there is no partial dashboard.
func Load(ctx context.Context, bs domain.BoundarySource, rs domain.RecordSource, opts Options, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) (*Dashboard, error) {
	if len(opts.Years) == 0 {
		return nil, errors.New("no years configured")
	}

	start := clock.Now()
	boundaries, err := bs.LoadBoundaries(ctx, opts.StateFP)
	if err != nil {
		return nil, fmt.Errorf("load boundaries: %w", err)
	}
	metrics.LoadDuration.WithLabelValues("boundaries").Observe(clock.Since(start).Seconds())
	metrics.BoundariesLoaded.Set(float64(len(boundaries)))
	logger.Info("boundaries loaded", "path", bs.Path(), "state_fp", opts.StateFP, "regions", len(boundaries))

	start = clock.Now()
	records, err := rs.LoadRecords(ctx, opts.Years)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	metrics.LoadDuration.WithLabelValues("records").Observe(clock.Since(start).Seconds())
	metrics.RecordsLoaded.Set(float64(len(records)))
	logger.Info("records loaded", "path", rs.Path(), "years", len(opts.Years), "records", len(records))

	years := slices.Clone(opts.Years)
	slices.Sort(years)
	return New(boundaries, records, years, render.PageTitle(opts.StateName, years[0], years[len(years)-1]), logger, metrics, clock), nil
}

// New creates a Dashboard over already loaded datasets.
func New(boundaries []domain.BoundaryRegion, records []domain.ExamRecord, years []int, pageTitle string, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Dashboard {
	return &Dashboard{
		boundaries: boundaries,
		records:    records,
		years:      years,
		pageTitle:  pageTitle,
		logger:     logger,
		metrics:    metrics,
		clock:      clock,
	}
}

// Years lists the selectable years, oldest first.
func (d *Dashboard) Years() []int {
	return slices.Clone(d.years)
}

// DefaultYear is the year shown when none is selected.
func (d *Dashboard) DefaultYear() int {
	return d.years[0]
}

// PageTitle is the dashboard heading.
func (d *Dashboard) PageTitle() string {
	return d.pageTitle
}

// CheckReadiness returns nil once boundaries are loaded.
func (d *Dashboard) CheckReadiness(_ context.Context) error {
	if len(d.boundaries) == 0 {
		return errors.New("boundaries not loaded")
	}
	return nil
}

// Render filters, aggregates, merges, and builds the figure for one year.
// It recomputes everything from the loaded datasets on every call.
func (d *Dashboard) Render(ctx context.Context, year int) (View, error) {
	if err := ctx.Err(); err != nil {
		return View{}, err
	}
	if !slices.Contains(d.years, year) {
		d.metrics.RenderErrors.Inc()
		return View{}, fmt.Errorf("%w: %d", domain.ErrUnknownYear, year)
	}

	start := d.clock.Now()

	aggregates := domain.Aggregate(domain.FilterYear(d.records, year))
	for _, label := range domain.DuplicateKeys(aggregates) {
		d.logger.Warn("duplicate county key, keeping first label",
			"year", year,
			"county_label", label,
			"county_key", domain.CountyKey(label),
		)
	}

	for _, agg := range domain.Orphans(d.boundaries, aggregates) {
		d.logger.Debug("county label matches no boundary",
			"year", year,
			"county_label", agg.CountyLabel,
			"county_key", agg.CountyKey,
		)
	}

	merged := domain.Merge(d.boundaries, aggregates)
	unmatched := domain.Unmatched(merged)

	view := View{
		Year:        year,
		Title:       render.Title(year),
		Regions:     merged,
		Figure:      render.BuildFigure(year, merged),
		Unmatched:   unmatched,
		GeneratedAt: d.clock.Now(),
	}

	yearLabel := strconv.Itoa(year)
	d.metrics.RendersTotal.WithLabelValues(yearLabel).Inc()
	d.metrics.UnmatchedRegions.WithLabelValues(yearLabel).Set(float64(unmatched))
	d.metrics.RenderDuration.Observe(d.clock.Since(start).Seconds())
	d.logger.Debug("render complete",
		"year", year,
		"regions", len(merged),
		"counties", len(aggregates),
		"unmatched", unmatched,
	)

	return view, nil
}

// PageData assembles the page for a rendered view.
func (d *Dashboard) PageData(v View) render.PageData {
	return render.PageData{
		PageTitle:   d.pageTitle,
		Years:       d.Years(),
		Selected:    v.Year,
		Figure:      v.Figure,
		Regions:     len(v.Regions),
		Matched:     len(v.Regions) - v.Unmatched,
		GeneratedAt: v.GeneratedAt,
	}
}
