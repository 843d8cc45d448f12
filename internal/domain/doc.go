// Package domain models NCLEX-PN pass-rate records and the county boundaries
// they are mapped onto.
//
// # Data Source
//
// Pass counts come from a workbook with one sheet per exam year, named
// "Heatmap-<year>". Each row is one nursing program (school) in one county:
//
//	County Name      School                  Pass   No.
//	Davidson, TN     Example Nursing School  48     50
//
// "Pass" is the number of first-time candidates who passed, "No." is the
// number of candidates who sat the exam. County boundaries come from the
// Census TIGER/Line county shapefile, filtered to one state FIPS code
// ("47" is Tennessee).
//
// # Name Conventions
//
// County labels in the workbook are free text and may carry a suffix after a
// comma ("Davidson, TN", "Knox, East"). The county key is the text before the
// first comma, trimmed. Boundary names are trimmed and title-cased
// ("  DAVIDSON " → "Davidson"). Keys are compared case-folded, so "McMinn"
// in the workbook matches the title-cased boundary name "Mcminn".
//
// # Percentages
//
// Pass percentages are pass/total×100 rounded to two decimals. A zero total
// yields 0, never NaN; the color scale and hover text depend on that.
// Percentages render with the shortest decimal form that still carries a
// decimal point: 96 → "96.0", 90.666… → "90.67".
//
// # Pipeline
//
// One render for a selected year is:
//
//	FilterYear → Aggregate → Merge → HoverText / ColorValue
//
// Every step is a pure function. The loaded boundary and record sets are never
// mutated.
package domain
