package monitor

import (
	"slices"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/filters"
)

// MatchGroup is one filter's view of a monitoring cycle: the calendar
// dates whose fare price hit the filter's target exactly.
type MatchGroup struct {
	Filter filters.Filter
	Dates  []string
}

type MatchResult struct {
	Groups []MatchGroup
	// DealDates is the union of dates across groups. A date that
	// satisfies several filters still counts as one deal.
	DealDates []string
}

// MatchDeals compares extracted fares against the filter snapshot.
// Pure function: same inputs, same groups, no hidden state.
func MatchDeals(records []FareRecord, snapshot []filters.Filter) MatchResult {
	var result MatchResult
	seen := map[string]bool{}

	for _, filter := range snapshot {
		if !filter.Active {
			continue
		}

		var dates []string
		for _, record := range records {
			if record.Miles != filter.TargetMiles {
				continue
			}
			dates = append(dates, record.Date)
			if !seen[record.Date] {
				seen[record.Date] = true
				result.DealDates = append(result.DealDates, record.Date)
			}
		}
		if len(dates) == 0 {
			continue
		}

		result.Groups = append(result.Groups, MatchGroup{
			Filter: filter,
			Dates:  dates,
		})
	}

	slices.Sort(result.DealDates)
	return result
}
