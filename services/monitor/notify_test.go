package monitor

import (
	"strings"
	"testing"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/filters"

	"github.com/stretchr/testify/require"
)

func TestBuildDealMessage(t *testing.T) {
	result := MatchResult{
		Groups: []MatchGroup{
			{
				Filter: filters.Filter{TargetMiles: 85000, Active: true, Description: "economy saver"},
				Dates:  []string{"2026-02-02", "2026-02-03"},
			},
			{
				Filter: filters.Filter{TargetMiles: 175000, Active: true},
				Dates:  []string{"2026-02-01"},
			},
		},
		DealDates: []string{"2026-02-01", "2026-02-02", "2026-02-03"},
	}
	booking := BookingInfo{
		URL:   "https://www.alaskaair.com/booking",
		Route: "TPE-SEA",
		Cabin: "Economy",
		Month: "2026-02",
	}

	message := BuildDealMessage(result, booking)

	require.Contains(t, message.Subject, "3")
	require.Equal(t, []string{"2026-02-01", "2026-02-02", "2026-02-03"}, message.Dates)

	// a described filter is labeled by its description, an undescribed
	// one by its miles price
	require.Contains(t, message.Text, "【economy saver】")
	require.Contains(t, message.Text, "【175k】")
	for _, date := range message.Dates {
		require.Contains(t, message.Text, date)
		require.Contains(t, message.HTML, date)
	}
	require.Contains(t, message.Text, "TPE-SEA")
	require.Contains(t, message.Text, booking.URL)
	require.Contains(t, message.HTML, booking.URL)
}

func TestBuildDealMessageEscapesHTML(t *testing.T) {
	result := MatchResult{
		Groups: []MatchGroup{
			{
				Filter: filters.Filter{TargetMiles: 85000, Description: `saver <script>alert(1)</script>`},
				Dates:  []string{"2026-02-02"},
			},
		},
		DealDates: []string{"2026-02-02"},
	}

	message := BuildDealMessage(result, BookingInfo{Route: "TPE <-> SEA"})
	require.NotContains(t, message.HTML, "<script>")
	require.True(t, strings.Contains(message.HTML, "TPE &lt;-&gt; SEA"))
}

func TestBuildDealMessageOmitsEmptyBookingFields(t *testing.T) {
	result := MatchResult{
		Groups:    []MatchGroup{{Filter: filters.Filter{TargetMiles: 85000}, Dates: []string{"2026-02-02"}}},
		DealDates: []string{"2026-02-02"},
	}

	message := BuildDealMessage(result, BookingInfo{})
	require.NotContains(t, message.Text, "航線")
	require.NotContains(t, message.Text, "艙等")
	require.NotContains(t, message.Text, "前往")
}
