// Package excel reads yearly NCLEX result sheets from an .xlsx workbook.
//
// County and school cells are returned exactly as stored, surrounding
// whitespace included, so "Davidson, TN " and "Davidson, TN" stay distinct
// labels. Only an empty school cell counts as missing. Count cells are
// trimmed before parsing and a blank count is 0.
package excel

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/nclex-dashboard/internal/domain"
)

// Required sheet headers.
const (
	ColumnCounty = "County Name"
	ColumnSchool = "School"
	ColumnPass   = "Pass"
	ColumnTotal  = "No."
)

// Reader implements domain.RecordSource over one workbook file.
type Reader struct {
	path        string
	sheetPrefix string
	logger      *slog.Logger
}

// NewReader creates a workbook reader. Sheets are looked up as sheetPrefix+year.
func NewReader(path, sheetPrefix string, logger *slog.Logger) *Reader {
	return &Reader{path: path, sheetPrefix: sheetPrefix, logger: logger}
}

// Path returns the workbook location.
func (r *Reader) Path() string {
	return r.path
}

// SheetName returns the sheet holding a year's results, e.g. "Heatmap-2021".
func SheetName(prefix string, year int) string {
	return prefix + strconv.Itoa(year)
}

// LoadRecords reads every year's sheet, stamps each row with its year, and
// returns the rows of all years concatenated in year order.
func (r *Reader) LoadRecords(ctx context.Context, years []int) ([]domain.ExamRecord, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", r.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	present := make(map[string]bool)
	for _, name := range f.GetSheetList() {
		present[name] = true
	}

	var all []domain.ExamRecord
	for _, year := range years {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sheet := SheetName(r.sheetPrefix, year)
		if !present[sheet] {
			return nil, fmt.Errorf("%w: %q in %s", domain.ErrMissingSheet, sheet, r.path)
		}

		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}

		records, err := parseSheet(sheet, year, rows)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("sheet loaded", "sheet", sheet, "rows", len(records))
		all = append(all, records...)
	}

	return all, nil
}

type columns struct {
	county, school, pass, total int
}

// parseSheet converts raw rows (header first) into exam records.
func parseSheet(sheet string, year int, rows [][]string) ([]domain.ExamRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", domain.ErrMissingColumn, sheet)
	}

	cols, err := locateColumns(sheet, rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]domain.ExamRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		county := rawCell(row, cols.county)
		school := rawCell(row, cols.school)
		passCell := strings.TrimSpace(rawCell(row, cols.pass))
		totalCell := strings.TrimSpace(rawCell(row, cols.total))
		if strings.TrimSpace(county) == "" && strings.TrimSpace(school) == "" && passCell == "" && totalCell == "" {
			continue
		}

		// Spreadsheet row numbers are 1-based and the header is row 1.
		rowNum := i + 2
		pass, err := parseCount(passCell)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %s row %d column %q: %q", domain.ErrMalformedValue, sheet, rowNum, ColumnPass, passCell)
		}
		total, err := parseCount(totalCell)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %s row %d column %q: %q", domain.ErrMalformedValue, sheet, rowNum, ColumnTotal, totalCell)
		}

		records = append(records, domain.ExamRecord{
			CountyLabel: county,
			School:      school,
			Pass:        pass,
			Total:       total,
			Year:        year,
		})
	}
	return records, nil
}

func locateColumns(sheet string, header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	var cols columns
	for _, c := range []struct {
		name string
		dst  *int
	}{
		{ColumnCounty, &cols.county},
		{ColumnSchool, &cols.school},
		{ColumnPass, &cols.pass},
		{ColumnTotal, &cols.total},
	} {
		i, ok := index[c.name]
		if !ok {
			return columns{}, fmt.Errorf("%w: %q in sheet %s", domain.ErrMissingColumn, c.name, sheet)
		}
		*c.dst = i
	}
	return cols, nil
}

// rawCell returns the value at idx as stored, or "" for short rows.
func rawCell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseCount parses a non-negative integer count. Blank cells count as 0.
// Whole-number floats ("48.0") are accepted since numeric cells may carry a
// number format.
func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative count %d", n)
		}
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("not a count: %s", s)
	}
	return int(f), nil
}
