package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDavidson = "Davidson, TN"
	testSchoolA  = "Belmont University"
	testSchoolB  = "Nashville State CC"
)

func testRecords() []ExamRecord {
	return []ExamRecord{
		{CountyLabel: testDavidson, School: testSchoolA, Pass: 48, Total: 50, Year: 2021},
		{CountyLabel: "Knox", School: "Pellissippi State", Pass: 30, Total: 40, Year: 2021},
		{CountyLabel: testDavidson, School: testSchoolB, Pass: 20, Total: 25, Year: 2021},
		{CountyLabel: testDavidson, School: testSchoolA, Pass: 40, Total: 50, Year: 2022},
		{CountyLabel: "Shelby", School: "Southwest TN CC", Pass: 10, Total: 20, Year: 2022},
	}
}

func TestFilterYear(t *testing.T) {
	rows := FilterYear(testRecords(), 2021)

	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, 2021, r.Year)
	}
	assert.Equal(t, testSchoolA, rows[0].School)
	assert.InDelta(t, 96.0, rows[0].Percent, 1e-9)
	assert.Equal(t, "Pellissippi State", rows[1].School)
	assert.InDelta(t, 75.0, rows[1].Percent, 1e-9)
	assert.InDelta(t, 80.0, rows[2].Percent, 1e-9)
}

func TestFilterYear_NoRecords(t *testing.T) {
	assert.Empty(t, FilterYear(testRecords(), 2020))
	assert.Empty(t, FilterYear(nil, 2021))
}

func TestFilterYear_ZeroCandidates(t *testing.T) {
	rows := FilterYear([]ExamRecord{{CountyLabel: "Lake", School: "X", Year: 2023}}, 2023)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].Percent)
}

func TestAggregate_DavidsonScenario(t *testing.T) {
	aggs := Aggregate(FilterYear(testRecords(), 2021))

	want := []CountyAggregate{
		{
			CountyLabel:   testDavidson,
			Schools:       testSchoolA + ", " + testSchoolB,
			Pass:          68,
			Total:         75,
			PassPercent:   90.67,
			CountyKey:     "Davidson",
			SchoolDetails: []string{testSchoolA + ": 96.0%", testSchoolB + ": 80.0%"},
		},
		{
			CountyLabel:   "Knox",
			Schools:       "Pellissippi State",
			Pass:          30,
			Total:         40,
			PassPercent:   75,
			CountyKey:     "Knox",
			SchoolDetails: []string{"Pellissippi State: 75.0%"},
		},
	}

	if diff := cmp.Diff(want, aggs); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_MissingSchoolNames(t *testing.T) {
	rows := FilterYear([]ExamRecord{
		{CountyLabel: "Lake", School: "", Pass: 3, Total: 4, Year: 2020},
		{CountyLabel: "Lake", School: "Dyersburg State", Pass: 5, Total: 6, Year: 2020},
		{CountyLabel: "Obion", School: "", Pass: 1, Total: 2, Year: 2020},
	}, 2020)

	aggs := Aggregate(rows)
	require.Len(t, aggs, 2)

	lake := aggs[0]
	assert.Equal(t, "Dyersburg State", lake.Schools)
	assert.Equal(t, 8, lake.Pass)
	assert.Equal(t, 10, lake.Total)
	assert.InDelta(t, 80.0, lake.PassPercent, 1e-9)
	assert.Equal(t, []string{"Dyersburg State: 83.33%"}, lake.SchoolDetails)

	obion := aggs[1]
	assert.Empty(t, obion.Schools)
	assert.NotNil(t, obion.SchoolDetails, "present but empty")
	assert.Empty(t, obion.SchoolDetails)
}

func TestAggregate_PreservesRowOrder(t *testing.T) {
	rows := FilterYear([]ExamRecord{
		{CountyLabel: "Knox", School: "Zeta", Pass: 1, Total: 2, Year: 2024},
		{CountyLabel: "Knox", School: "Alpha", Pass: 2, Total: 2, Year: 2024},
		{CountyLabel: "Knox", School: "Mid", Pass: 0, Total: 2, Year: 2024},
	}, 2024)

	aggs := Aggregate(rows)
	require.Len(t, aggs, 1)
	assert.Equal(t, []string{"Zeta: 50.0%", "Alpha: 100.0%", "Mid: 0.0%"}, aggs[0].SchoolDetails)
	assert.Equal(t, "Zeta, Alpha, Mid", aggs[0].Schools)
}

func TestAggregate_ZeroTotals(t *testing.T) {
	aggs := Aggregate(FilterYear([]ExamRecord{
		{CountyLabel: "Pickett", School: "Tiny", Pass: 0, Total: 0, Year: 2022},
	}, 2022))

	require.Len(t, aggs, 1)
	assert.Equal(t, 0.0, aggs[0].PassPercent)
	assert.Equal(t, []string{"Tiny: 0.0%"}, aggs[0].SchoolDetails)
}

func TestAggregate_DropsBlankCounty(t *testing.T) {
	aggs := Aggregate(FilterYear([]ExamRecord{
		{CountyLabel: "  ", School: "Orphan", Pass: 1, Total: 1, Year: 2022},
	}, 2022))
	assert.Empty(t, aggs)
}

func TestAggregate_PassNeverExceedsTotal(t *testing.T) {
	aggs := Aggregate(FilterYear(testRecords(), 2021))
	for _, agg := range aggs {
		assert.LessOrEqual(t, agg.Pass, agg.Total, agg.CountyLabel)
		assert.GreaterOrEqual(t, agg.PassPercent, 0.0)
		assert.LessOrEqual(t, agg.PassPercent, 100.0)
	}
}
