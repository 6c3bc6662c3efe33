package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/testutil"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/filters"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/monitor/db"

	"github.com/stretchr/testify/require"
)

type staticFetcher struct {
	html string
	err  error
}

func (f staticFetcher) Fetch(ctx context.Context) (string, error) {
	return f.html, f.err
}

type staticFilters []filters.Filter

func (s staticFilters) GetActiveFilters(ctx context.Context) []filters.Filter {
	return s
}

type staticRecipients []string

func (s staticRecipients) GetActiveRecipients(ctx context.Context) []string {
	return s
}

type recordingMailer struct {
	calls   int
	to      []string
	subject string
	text    string
	fail    bool
}

func (m *recordingMailer) Send(ctx context.Context, to []string, subject, text, html string) (bool, error) {
	m.calls++
	m.to = to
	m.subject = subject
	m.text = text
	if m.fail {
		return false, errors.New("smtp: connection refused")
	}
	return true, nil
}

func setupMonitor(t *testing.T, options Options) Service {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "monitor",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	return NewService(result.DB, options)
}

func TestRunCheckFindsDeals(t *testing.T) {
	ctx := context.Background()
	mailer := &recordingMailer{}
	svc := setupMonitor(t, Options{
		Fetcher: staticFetcher{html: fareLabelCalendar},
		Filters: staticFilters{
			{ID: 1, TargetMiles: 85000, Active: true, Description: "economy saver"},
			{ID: 2, TargetMiles: 175000, Active: true},
		},
		Recipients: staticRecipients{"a@example.com", "b@example.com"},
		Mailer:     mailer,
		Booking:    BookingInfo{URL: "https://www.alaskaair.com", Route: "TPE-SEA", Cabin: "Economy", Month: "2026-02"},
	})

	result := svc.RunCheck(ctx)
	require.True(t, result.Success)
	require.Equal(t, 3, result.DatesChecked)
	require.Equal(t, 2, result.DealsFound)
	require.Equal(t, []string{"2026-02-01", "2026-02-02"}, result.DealDates)

	// exactly one aggregated notification, to every active recipient
	require.Equal(t, 1, mailer.calls)
	require.Equal(t, []string{"a@example.com", "b@example.com"}, mailer.to)
	require.Contains(t, mailer.text, "economy saver")
	require.Contains(t, mailer.text, "2026-02-01")
	require.Contains(t, mailer.text, "2026-02-02")

	logs, err := svc.RecentLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, StatusFoundDeal, logs[0].Status)
	require.EqualValues(t, 3, logs[0].DatesChecked)
	require.EqualValues(t, 2, logs[0].DealsFound)

	notifications, err := svc.RecentNotifications(ctx, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.True(t, notifications[0].Sent)
	require.Equal(t, []string{"2026-02-01", "2026-02-02"}, notifications[0].Dates)

	prices, err := svc.LatestPrices(ctx)
	require.NoError(t, err)
	require.Len(t, prices, 3)
	require.Equal(t, "2026-02-01", prices[0].Date)
	require.EqualValues(t, 175000, prices[0].Miles)
}

func TestRunCheckNoDeals(t *testing.T) {
	ctx := context.Background()
	mailer := &recordingMailer{}
	svc := setupMonitor(t, Options{
		Fetcher:    staticFetcher{html: fareLabelCalendar},
		Filters:    staticFilters{{ID: 1, TargetMiles: 60000, Active: true}},
		Recipients: staticRecipients{"a@example.com"},
		Mailer:     mailer,
	})

	result := svc.RunCheck(ctx)
	require.True(t, result.Success)
	require.Equal(t, 3, result.DatesChecked)
	require.Zero(t, result.DealsFound)
	require.Zero(t, mailer.calls)

	logs, err := svc.RecentLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, StatusSuccess, logs[0].Status)

	notifications, err := svc.RecentNotifications(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, notifications)
}

func TestRunCheckFetchFailure(t *testing.T) {
	ctx := context.Background()
	mailer := &recordingMailer{}
	svc := setupMonitor(t, Options{
		Fetcher:    staticFetcher{err: errors.New("calendar fetch returned 403 Forbidden")},
		Filters:    staticFilters{{ID: 1, TargetMiles: 85000, Active: true}},
		Recipients: staticRecipients{"a@example.com"},
		Mailer:     mailer,
	})

	result := svc.RunCheck(ctx)
	require.False(t, result.Success)
	require.Contains(t, result.Error, "403")
	require.Zero(t, mailer.calls)

	logs, err := svc.RecentLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, StatusError, logs[0].Status)
	require.Contains(t, logs[0].ErrorMessage, "403")
	require.Zero(t, logs[0].DatesChecked)

	// a failed cycle must not leave partial price data behind
	prices, err := svc.LatestPrices(ctx)
	require.NoError(t, err)
	require.Empty(t, prices)
}

func TestRunCheckDeliveryFailureDoesNotFailCycle(t *testing.T) {
	ctx := context.Background()
	mailer := &recordingMailer{fail: true}
	svc := setupMonitor(t, Options{
		Fetcher:    staticFetcher{html: fareLabelCalendar},
		Filters:    staticFilters{{ID: 1, TargetMiles: 175000, Active: true}},
		Recipients: staticRecipients{"a@example.com"},
		Mailer:     mailer,
	})

	result := svc.RunCheck(ctx)
	require.True(t, result.Success)
	require.Equal(t, 1, result.DealsFound)
	require.Equal(t, 1, mailer.calls)

	logs, err := svc.RecentLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, StatusFoundDeal, logs[0].Status)

	// the notification is recorded for the audit trail, flagged undelivered
	notifications, err := svc.RecentNotifications(ctx, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.False(t, notifications[0].Sent)
}

func TestRunCheckEmptyFilterSnapshot(t *testing.T) {
	ctx := context.Background()
	mailer := &recordingMailer{}
	svc := setupMonitor(t, Options{
		Fetcher:    staticFetcher{html: fareLabelCalendar},
		Filters:    staticFilters{},
		Recipients: staticRecipients{"a@example.com"},
		Mailer:     mailer,
	})

	result := svc.RunCheck(ctx)
	require.True(t, result.Success)
	require.Zero(t, result.DealsFound)
	require.Zero(t, mailer.calls)

	// prices are still recorded: history collection is independent of
	// whether anyone is watching
	prices, err := svc.LatestPrices(ctx)
	require.NoError(t, err)
	require.Len(t, prices, 3)
}

func TestMonitorStats(t *testing.T) {
	ctx := context.Background()
	svc := setupMonitor(t, Options{
		Fetcher:    staticFetcher{html: fareLabelCalendar},
		Filters:    staticFilters{{ID: 1, TargetMiles: 175000, Active: true}},
		Recipients: staticRecipients{},
		Mailer:     &recordingMailer{},
	})

	svc.RunCheck(ctx)
	failing := NewService(svc.db, Options{
		Fetcher:    staticFetcher{err: errors.New("timeout")},
		Filters:    staticFilters{},
		Recipients: staticRecipients{},
		Mailer:     &recordingMailer{},
	})
	failing.RunCheck(ctx)

	stats, err := svc.MonitorStats(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.TotalChecks)
	require.EqualValues(t, 1, stats.SuccessfulChecks)
	require.EqualValues(t, 1, stats.TotalDealsFound)
	require.NotNil(t, stats.LastCheck)
	require.Equal(t, StatusError, stats.LastCheck.Status)
}
