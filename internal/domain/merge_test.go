package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegions() []BoundaryRegion {
	return []BoundaryRegion{
		{Name: "Davidson", StateFP: "47", CountyFP: "037", GeoID: "47037"},
		{Name: "Knox", StateFP: "47", CountyFP: "093", GeoID: "47093"},
		{Name: "Shelby", StateFP: "47", CountyFP: "157", GeoID: "47157"},
		{Name: "Mcminn", StateFP: "47", CountyFP: "107", GeoID: "47107"},
	}
}

func TestMerge_LeftOuterJoin(t *testing.T) {
	regions := testRegions()
	aggs := Aggregate(FilterYear(testRecords(), 2021))

	merged := Merge(regions, aggs)

	require.Len(t, merged, len(regions))
	for i, m := range merged {
		assert.Equal(t, regions[i].Name, m.Region.Name, "region order is kept")
	}

	require.True(t, merged[0].Matched())
	assert.Equal(t, testDavidson, merged[0].Aggregate.CountyLabel)
	assert.InDelta(t, 90.67, merged[0].Aggregate.PassPercent, 1e-9)

	require.True(t, merged[1].Matched())
	assert.Equal(t, "Knox", merged[1].Aggregate.CountyKey)

	assert.False(t, merged[2].Matched())
	assert.False(t, merged[3].Matched())
	assert.Equal(t, 2, Unmatched(merged))
}

func TestMerge_CardinalityEveryYear(t *testing.T) {
	regions := testRegions()
	for year := 2020; year <= 2024; year++ {
		merged := Merge(regions, Aggregate(FilterYear(testRecords(), year)))
		assert.Len(t, merged, len(regions), "year %d", year)
	}
}

func TestMerge_CaseInsensitiveKeys(t *testing.T) {
	aggs := Aggregate(FilterYear([]ExamRecord{
		{CountyLabel: "McMinn, TN", School: "Cleveland State", Pass: 9, Total: 10, Year: 2023},
	}, 2023))

	merged := Merge(testRegions(), aggs)

	require.True(t, merged[3].Matched())
	assert.Equal(t, "McMinn", merged[3].Aggregate.CountyKey)
	assert.Equal(t, "Mcminn", merged[3].Region.Name)
}

func TestMerge_DuplicateKeysFirstWins(t *testing.T) {
	aggs := Aggregate(FilterYear([]ExamRecord{
		{CountyLabel: "Knox", School: "First", Pass: 1, Total: 1, Year: 2020},
		{CountyLabel: "Knox, TN", School: "Second", Pass: 0, Total: 1, Year: 2020},
	}, 2020))

	merged := Merge(testRegions(), aggs)

	require.Len(t, merged, 4)
	require.True(t, merged[1].Matched())
	assert.Equal(t, "Knox", merged[1].Aggregate.CountyLabel)
	assert.Equal(t, []string{"Knox, TN"}, DuplicateKeys(aggs))
}

func TestMerge_DoesNotAliasAggregates(t *testing.T) {
	aggs := Aggregate(FilterYear(testRecords(), 2021))
	merged := Merge(testRegions(), aggs)

	merged[0].Aggregate.Pass = 0
	assert.Equal(t, 68, aggs[0].Pass)
}

func TestMerge_NoAggregates(t *testing.T) {
	merged := Merge(testRegions(), nil)
	assert.Len(t, merged, 4)
	assert.Equal(t, 4, Unmatched(merged))
}

func TestOrphans(t *testing.T) {
	aggs := Aggregate([]ScoredRecord{
		{ExamRecord: ExamRecord{CountyLabel: "Davidson, TN", School: "A", Pass: 1, Total: 1}},
		{ExamRecord: ExamRecord{CountyLabel: "MCMINN", School: "B", Pass: 1, Total: 2}},
		{ExamRecord: ExamRecord{CountyLabel: "Dekalb County", School: "C", Pass: 1, Total: 2}},
	})

	orphans := Orphans(testRegions(), aggs)

	require.Len(t, orphans, 1)
	assert.Equal(t, "Dekalb County", orphans[0].CountyLabel)
}

func TestOrphans_AllMatched(t *testing.T) {
	aggs := Aggregate(FilterYear(testRecords(), 2021))
	assert.Empty(t, Orphans(testRegions(), aggs))
}
