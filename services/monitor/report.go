package monitor

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/timezone"
)

// Read-side queries backing the CLI and any future dashboard.

type PriceEntry struct {
	Date       string
	Miles      int64
	Fees       int64
	RecordedAt time.Time
}

type LogEntry struct {
	Status       string
	DatesChecked int64
	DealsFound   int64
	ErrorMessage string
	CheckedAt    time.Time
}

type NotificationEntry struct {
	Title  string
	Dates  []string
	Sent   bool
	SentAt time.Time
}

type Stats struct {
	TotalChecks      int64
	SuccessfulChecks int64
	TotalDealsFound  int64
	LastCheck        *LogEntry
}

// LatestPrices reports the most recent recorded fare for each flight
// date, ascending by date.
func (s Service) LatestPrices(ctx context.Context) ([]PriceEntry, error) {
	rows, err := s.qry.GetLatestPrices(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PriceEntry, len(rows))
	for i, row := range rows {
		out[i] = PriceEntry{
			Date:       row.FlightDate,
			Miles:      row.Miles,
			Fees:       row.Fees,
			RecordedAt: time.Unix(row.RecordedAt, 0).In(timezone.Location),
		}
	}
	return out, nil
}

func (s Service) RecentLogs(ctx context.Context, limit int64) ([]LogEntry, error) {
	rows, err := s.qry.GetRecentLogs(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]LogEntry, len(rows))
	for i, row := range rows {
		out[i] = LogEntry{
			Status:       row.Status,
			DatesChecked: row.DatesChecked,
			DealsFound:   row.DealsFound,
			ErrorMessage: row.ErrorMessage,
			CheckedAt:    time.Unix(row.CheckedAt, 0).In(timezone.Location),
		}
	}
	return out, nil
}

func (s Service) RecentNotifications(ctx context.Context, limit int64) ([]NotificationEntry, error) {
	rows, err := s.qry.GetRecentNotifications(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]NotificationEntry, len(rows))
	for i, row := range rows {
		var dates []string
		if row.FlightDates != "" {
			dates = strings.Split(row.FlightDates, ",")
		}
		out[i] = NotificationEntry{
			Title:  row.Title,
			Dates:  dates,
			Sent:   row.Sent == 1,
			SentAt: time.Unix(row.SentAt, 0).In(timezone.Location),
		}
	}
	return out, nil
}

func (s Service) MonitorStats(ctx context.Context) (Stats, error) {
	row, err := s.qry.GetMonitorStats(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{
		TotalChecks:      row.TotalChecks,
		SuccessfulChecks: row.SuccessfulChecks,
		TotalDealsFound:  row.TotalDealsFound,
	}

	last, err := s.RecentLogs(ctx, 1)
	if err != nil && err != sql.ErrNoRows {
		return Stats{}, err
	}
	if len(last) > 0 {
		stats.LastCheck = &last[0]
	}
	return stats, nil
}
