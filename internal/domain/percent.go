package domain

import (
	"math"
	"strconv"
	"strings"
)

// PassPercent returns pass/total×100 rounded to two decimals, halves to even.
// A zero or negative total yields 0.
func PassPercent(pass, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(pass) / float64(total) * 100)
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.RoundToEven(v*100) / 100
}

// FormatPercent renders a percentage in its shortest form, always with a
// decimal point: 96 → "96.0", 90.67 → "90.67".
func FormatPercent(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatSchoolDetail renders one hover line for a school, e.g. "Belmont: 96.0%".
func FormatSchoolDetail(school string, percent float64) string {
	return school + ": " + FormatPercent(percent) + "%"
}
