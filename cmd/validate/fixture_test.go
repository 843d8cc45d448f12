package main

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/nclex-dashboard/internal/adapter/excel"
	"github.com/couchcryptid/nclex-dashboard/internal/adapter/shapefile"
)

var sheetHeader = []any{excel.ColumnCounty, excel.ColumnSchool, excel.ColumnPass, excel.ColumnTotal}

// testCounty is one shapefile record, drawn as a unit square at (x, 0).
type testCounty struct {
	name, stateFP, geoID string
	x                    float64
}

// writeShapefile saves counties in the TIGER/Line field layout and returns the .shp path.
func writeShapefile(t *testing.T, dir string, counties []testCounty) string {
	t.Helper()

	path := filepath.Join(dir, "counties.shp")
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField(shapefile.FieldName, 50),
		shp.StringField(shapefile.FieldStateFP, 2),
		shp.StringField(shapefile.FieldCountyFP, 3),
		shp.StringField(shapefile.FieldGeoID, 5),
	}))

	for _, c := range counties {
		ring := []shp.Point{
			{X: c.x, Y: 0},
			{X: c.x, Y: 1},
			{X: c.x + 1, Y: 1},
			{X: c.x + 1, Y: 0},
			{X: c.x, Y: 0},
		}
		polygon := shp.Polygon(*shp.NewPolyLine([][]shp.Point{ring}))
		n := int(w.Write(&polygon))
		for i, v := range []string{c.name, c.stateFP, c.geoID[2:], c.geoID} {
			require.NoError(t, w.WriteAttribute(n, i, v))
		}
	}
	w.Close()
	return path
}

// writeWorkbook saves the named sheets, in order, and returns the .xlsx path.
func writeWorkbook(t *testing.T, dir string, names []string, sheets map[string][][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for _, name := range names {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range sheets[name] {
			cellRef, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cellRef, &row))
		}
	}

	path := filepath.Join(dir, "pass-rates.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
