// Command validate checks a pass-rate workbook against the county
// boundaries before it is deployed behind the dashboard. It verifies that
// every configured year has a readable sheet, that counts are sane, that
// every county label joins to a boundary, and that no two labels collapse to
// the same county key.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -shapefile tn_counties/tl_2021_us_county/tl_2021_us_county.shp \
//	  -workbook data/pass-rates.xlsx \
//	  -first-year 2020 -last-year 2024
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/nclex-dashboard/internal/adapter/excel"
	"github.com/couchcryptid/nclex-dashboard/internal/adapter/shapefile"
	"github.com/couchcryptid/nclex-dashboard/internal/config"
	"github.com/couchcryptid/nclex-dashboard/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

type options struct {
	shapefile   string
	workbook    string
	sheetPrefix string
	stateFP     string
	years       []int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load config: %v\n", err)
		os.Exit(1)
	}

	shapefilePath := flag.String("shapefile", cfg.ShapefilePath, "county boundary shapefile")
	workbook := flag.String("workbook", cfg.WorkbookPath, "pass-rate workbook")
	prefix := flag.String("sheet-prefix", cfg.SheetPrefix, "per-year sheet name prefix")
	stateFP := flag.String("state-fp", cfg.StateFP, "state FIPS code to keep")
	firstYear := flag.Int("first-year", cfg.FirstYear, "first year to check")
	lastYear := flag.Int("last-year", cfg.LastYear, "last year to check")
	flag.Parse()

	if *shapefilePath == "" || *workbook == "" || *lastYear < *firstYear {
		flag.Usage()
		os.Exit(1)
	}

	years := make([]int, 0, *lastYear-*firstYear+1)
	for y := *firstYear; y <= *lastYear; y++ {
		years = append(years, y)
	}

	code := run(context.Background(), options{
		shapefile:   *shapefilePath,
		workbook:    *workbook,
		sheetPrefix: *prefix,
		stateFP:     *stateFP,
		years:       years,
	}, os.Stdout)
	if code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context, opts options, out io.Writer) int {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	fmt.Fprintln(out, "=== NCLEX Workbook Validation ===")
	fmt.Fprintln(out)

	// ── Load boundaries ──
	regions, err := shapefile.NewReader(opts.shapefile, logger).LoadBoundaries(ctx, opts.stateFP)
	if err != nil {
		fmt.Fprintf(out, "FATAL: load boundaries: %v\n", err)
		return 1
	}

	// ── Run validation phases ──
	reader := excel.NewReader(opts.workbook, opts.sheetPrefix, logger)
	sheets, byYear := validateSheets(ctx, reader, opts.years)

	phases := []*phase{
		sheets,
		validateCounts(byYear, opts.years),
		validateBoundaryJoin(regions, byYear, opts.years),
		validateDuplicateKeys(byYear, opts.years),
	}

	// ── Report results ──
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	records := 0
	for _, recs := range byYear {
		records += len(recs)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Records: %d across %d sheets, %d boundary regions\n", records, len(byYear), len(regions))
	printCoverage(out, regions, byYear, opts.years)

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Sheets ──
// Each year is loaded on its own so one bad sheet does not hide the others.

func validateSheets(ctx context.Context, reader domain.RecordSource, years []int) (*phase, map[int][]domain.ExamRecord) {
	p := &phase{name: "Phase 1: Sheets (present and readable)"}
	byYear := make(map[int][]domain.ExamRecord, len(years))

	for _, year := range years {
		recs, err := reader.LoadRecords(ctx, []int{year})
		if err != nil {
			p.errorf("%d: %v", year, err)
			continue
		}
		if len(recs) == 0 {
			p.errorf("%d: sheet has no data rows", year)
		}
		byYear[year] = recs
	}
	return p, byYear
}

// ── Phase 2: Counts ──

func validateCounts(byYear map[int][]domain.ExamRecord, years []int) *phase {
	p := &phase{name: "Phase 2: Counts (pass <= candidates)"}

	for _, year := range years {
		for i, r := range byYear[year] {
			where := fmt.Sprintf("%d record %d (%s / %s)", year, i+1, r.CountyLabel, r.School)
			switch {
			case strings.TrimSpace(r.CountyLabel) == "":
				p.errorf("%s: missing county", where)
			case r.Pass > r.Total:
				p.errorf("%s: %d passed out of %d candidates", where, r.Pass, r.Total)
			case r.HasSchool() && r.Total == 0:
				p.errorf("%s: school listed with no candidates", where)
			}
		}
	}
	return p
}

// ── Phase 3: Boundary join ──

func validateBoundaryJoin(regions []domain.BoundaryRegion, byYear map[int][]domain.ExamRecord, years []int) *phase {
	p := &phase{name: "Phase 3: Boundary Join (labels -> counties)"}

	for _, year := range years {
		aggs := domain.Aggregate(domain.FilterYear(byYear[year], year))
		for _, agg := range domain.Orphans(regions, aggs) {
			p.errorf("%d: county label %q (key %q) matches no boundary", year, agg.CountyLabel, agg.CountyKey)
		}
	}
	return p
}

// ── Phase 4: Duplicate keys ──

func validateDuplicateKeys(byYear map[int][]domain.ExamRecord, years []int) *phase {
	p := &phase{name: "Phase 4: County Keys (no collisions)"}

	for _, year := range years {
		aggs := domain.Aggregate(domain.FilterYear(byYear[year], year))
		for _, label := range domain.DuplicateKeys(aggs) {
			p.errorf("%d: label %q collides on key %q and would be dropped", year, label, domain.CountyKey(label))
		}
	}
	return p
}

// printCoverage reports how many regions have data per year. Uncovered
// counties are expected and never fail validation.
func printCoverage(out io.Writer, regions []domain.BoundaryRegion, byYear map[int][]domain.ExamRecord, years []int) {
	for _, year := range years {
		recs, ok := byYear[year]
		if !ok {
			continue
		}
		merged := domain.Merge(regions, domain.Aggregate(domain.FilterYear(recs, year)))
		fmt.Fprintf(out, "  %d: %d of %d counties with data\n", year, len(merged)-domain.Unmatched(merged), len(merged))
	}
}
