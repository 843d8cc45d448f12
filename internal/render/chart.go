package render

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/nclex-dashboard/internal/domain"
)

// ErrEmptyChart is returned when no region has data to plot.
var ErrEmptyChart = errors.New("no county data to chart")

var barColor = drawing.ColorFromHex("2ca25f")

// BarChart writes a PNG bar chart of county pass percentages for the matched
// regions, highest first. Ties keep region order.
func BarChart(w io.Writer, year int, merged []domain.MergedRegion) error {
	matched := make([]domain.MergedRegion, 0, len(merged))
	for _, m := range merged {
		if m.Matched() {
			matched = append(matched, m)
		}
	}
	if len(matched) == 0 {
		return fmt.Errorf("%w: %d", ErrEmptyChart, year)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Aggregate.PassPercent > matched[j].Aggregate.PassPercent
	})

	bars := make([]chart.Value, len(matched))
	for i, m := range matched {
		bars[i] = chart.Value{
			Label: m.Region.Name,
			Value: m.Aggregate.PassPercent,
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		}
	}

	graph := chart.BarChart{
		Title:      Title(year),
		Background: chart.Style{Padding: chart.Box{Top: 48, Bottom: 24}},
		Width:      120 + 48*len(bars),
		Height:     480,
		BarWidth:   32,
		BarSpacing: 16,
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}
