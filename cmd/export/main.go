// Command export renders one year of the dashboard without starting the
// server. It writes the merged regions as a GeoJSON FeatureCollection and
// can optionally write the per-county bar chart as a PNG.
//
// Usage:
//
//	go run ./cmd/export \
//	  -year 2023 \
//	  -shapefile tn_counties/tl_2021_us_county/tl_2021_us_county.shp \
//	  -workbook data/pass-rates.xlsx \
//	  -out tn-2023.geojson \
//	  -chart tn-2023.png
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/nclex-dashboard/internal/adapter/excel"
	"github.com/couchcryptid/nclex-dashboard/internal/adapter/shapefile"
	"github.com/couchcryptid/nclex-dashboard/internal/config"
	"github.com/couchcryptid/nclex-dashboard/internal/observability"
	"github.com/couchcryptid/nclex-dashboard/internal/pipeline"
	"github.com/couchcryptid/nclex-dashboard/internal/render"
)

type options struct {
	year        int
	out         string
	chart       string
	shapefile   string
	workbook    string
	sheetPrefix string
	stateFP     string
	stateName   string
	years       []int
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	opts, err := parseFlags(os.Args[1:], cfg)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(context.Background(), opts, os.Stdout, logger, observability.NewMetrics()); err != nil {
		log.Fatal(err)
	}
}

// parseFlags reads the command line, falling back to the environment
// configuration for anything not given.
func parseFlags(args []string, cfg *config.Config) (options, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	year := fs.Int("year", cfg.LastYear, "year to export")
	out := fs.String("out", "-", "GeoJSON output path, - for stdout")
	chart := fs.String("chart", "", "optional PNG bar chart output path")
	shapefilePath := fs.String("shapefile", cfg.ShapefilePath, "county boundary shapefile")
	workbook := fs.String("workbook", cfg.WorkbookPath, "pass-rate workbook")
	prefix := fs.String("sheet-prefix", cfg.SheetPrefix, "per-year sheet name prefix")
	stateFP := fs.String("state-fp", cfg.StateFP, "state FIPS code to keep")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *shapefilePath == "" || *workbook == "" {
		fs.Usage()
		return options{}, errors.New("missing required flags: -shapefile, -workbook")
	}

	return options{
		year:        *year,
		out:         *out,
		chart:       *chart,
		shapefile:   *shapefilePath,
		workbook:    *workbook,
		sheetPrefix: *prefix,
		stateFP:     *stateFP,
		stateName:   cfg.StateName,
		years:       []int{*year},
	}, nil
}

func run(ctx context.Context, opts options, stdout io.Writer, logger *slog.Logger, metrics *observability.Metrics) error {
	dashboard, err := pipeline.Load(ctx,
		shapefile.NewReader(opts.shapefile, logger),
		excel.NewReader(opts.workbook, opts.sheetPrefix, logger),
		pipeline.Options{StateFP: opts.stateFP, StateName: opts.stateName, Years: opts.years},
		logger, metrics, clockwork.NewRealClock(),
	)
	if err != nil {
		return err
	}

	view, err := dashboard.Render(ctx, opts.year)
	if err != nil {
		return err
	}

	data, err := json.Marshal(render.FeatureCollection(view.Regions))
	if err != nil {
		return fmt.Errorf("marshal geojson: %w", err)
	}
	if err := writeOutput(opts.out, stdout, data); err != nil {
		return err
	}
	logger.Info("geojson written",
		"year", view.Year,
		"regions", len(view.Regions),
		"unmatched", view.Unmatched,
		"out", opts.out,
	)

	if opts.chart == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := render.BarChart(&buf, view.Year, view.Regions); err != nil {
		return err
	}
	if err := os.WriteFile(opts.chart, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	logger.Info("chart written", "year", view.Year, "out", opts.chart)
	return nil
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
