package domain

import "strings"

const (
	// MissingTotal stands in for the total pass percentage of a region without data.
	MissingTotal = "N/A"
	// MissingSchools stands in for the school breakdown of a region without data.
	MissingSchools = "No data"

	hoverBreak = "<br>"
)

// HoverText formats the tooltip for one merged region:
//
//	County: Davidson<br>Total Pass %: 90.67<br>Schools:<br>A: 96.0%<br>B: 80.0%
func HoverText(m MergedRegion) string {
	total := MissingTotal
	schools := MissingSchools
	if m.Aggregate != nil {
		total = FormatPercent(m.Aggregate.PassPercent)
		if m.Aggregate.SchoolDetails != nil {
			schools = strings.Join(m.Aggregate.SchoolDetails, hoverBreak)
		}
	}

	var b strings.Builder
	b.WriteString("County: ")
	b.WriteString(m.Region.Name)
	b.WriteString(hoverBreak)
	b.WriteString("Total Pass %: ")
	b.WriteString(total)
	b.WriteString(hoverBreak)
	b.WriteString("Schools:")
	b.WriteString(hoverBreak)
	b.WriteString(schools)
	return b.String()
}

// ColorValue is the value a region is colored by. Regions without data
// color as 0, independent of the "N/A" hover label.
func ColorValue(m MergedRegion) float64 {
	if m.Aggregate == nil {
		return 0
	}
	return m.Aggregate.PassPercent
}
