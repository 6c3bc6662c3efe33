package monitor

import (
	"testing"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/filters"

	"github.com/stretchr/testify/require"
)

var matchRecords = []FareRecord{
	{Date: "2026-02-01", Miles: 175000, Fees: 19},
	{Date: "2026-02-02", Miles: 85000, Fees: 19},
	{Date: "2026-02-03", Miles: 85000, Fees: 25},
	{Date: "2026-02-04", Miles: 120000, Fees: 25},
}

func TestMatchDeals(t *testing.T) {
	result := MatchDeals(matchRecords, []filters.Filter{
		{ID: 1, TargetMiles: 85000, Active: true, Description: "economy saver"},
		{ID: 2, TargetMiles: 175000, Active: true},
	})

	require.Len(t, result.Groups, 2)
	require.Equal(t, []string{"2026-02-02", "2026-02-03"}, result.Groups[0].Dates)
	require.Equal(t, "economy saver", result.Groups[0].Filter.Description)
	require.Equal(t, []string{"2026-02-01"}, result.Groups[1].Dates)
	require.Equal(t, []string{"2026-02-01", "2026-02-02", "2026-02-03"}, result.DealDates)
}

func TestMatchDealsRequiresExactMiles(t *testing.T) {
	// 84k is cheaper than the 85k target but still not a match; the
	// calendar only ever shows a handful of price points and a filter
	// watches exactly one of them
	result := MatchDeals(matchRecords, []filters.Filter{
		{ID: 1, TargetMiles: 84000, Active: true},
	})
	require.Empty(t, result.Groups)
	require.Empty(t, result.DealDates)
}

func TestMatchDealsSkipsInactiveFilters(t *testing.T) {
	result := MatchDeals(matchRecords, []filters.Filter{
		{ID: 1, TargetMiles: 85000, Active: false},
		{ID: 2, TargetMiles: 120000, Active: true},
	})
	require.Len(t, result.Groups, 1)
	require.EqualValues(t, 120000, result.Groups[0].Filter.TargetMiles)
	require.Equal(t, []string{"2026-02-04"}, result.DealDates)
}

func TestMatchDealsUnionDedupesDates(t *testing.T) {
	records := []FareRecord{
		{Date: "2026-02-01", Miles: 85000, Fees: 19},
		{Date: "2026-02-01", Miles: 175000, Fees: 19},
	}
	result := MatchDeals(records, []filters.Filter{
		{ID: 1, TargetMiles: 85000, Active: true},
		{ID: 2, TargetMiles: 175000, Active: true},
	})

	// both groups claim the date, the union counts it once
	require.Len(t, result.Groups, 2)
	require.Equal(t, []string{"2026-02-01"}, result.DealDates)
}

func TestMatchDealsEmptyInputs(t *testing.T) {
	require.Empty(t, MatchDeals(nil, []filters.Filter{{TargetMiles: 85000, Active: true}}).DealDates)
	require.Empty(t, MatchDeals(matchRecords, nil).DealDates)
}
