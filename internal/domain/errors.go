package domain

import "errors"

var (
	// ErrUnknownYear is returned when a year outside the configured set is selected.
	ErrUnknownYear = errors.New("unknown year")

	// ErrMissingSheet means the workbook has no sheet for a configured year.
	ErrMissingSheet = errors.New("missing sheet")

	// ErrMissingColumn means a sheet lacks one of the required headers.
	ErrMissingColumn = errors.New("missing column")

	// ErrMalformedValue means a count cell is not a non-negative integer.
	ErrMalformedValue = errors.New("malformed value")

	// ErrNoRegions means the boundary source had no regions for the target state.
	ErrNoRegions = errors.New("no boundary regions")
)
