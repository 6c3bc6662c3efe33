package db

import (
	"context"
)

const createPriceRecord = `-- name: CreatePriceRecord :exec
INSERT INTO price_records (flight_date, miles, fees, recorded_at)
VALUES (?, ?, ?, ?)
`

type CreatePriceRecordParams struct {
	FlightDate string
	Miles      int64
	Fees       int64
	RecordedAt int64
}

func (q *Queries) CreatePriceRecord(ctx context.Context, arg CreatePriceRecordParams) error {
	_, err := q.db.ExecContext(ctx, createPriceRecord,
		arg.FlightDate,
		arg.Miles,
		arg.Fees,
		arg.RecordedAt,
	)
	return err
}

const createMonitorLog = `-- name: CreateMonitorLog :exec
INSERT INTO monitor_logs (status, dates_checked, deals_found, error_message, checked_at)
VALUES (?, ?, ?, ?, ?)
`

type CreateMonitorLogParams struct {
	Status       string
	DatesChecked int64
	DealsFound   int64
	ErrorMessage string
	CheckedAt    int64
}

func (q *Queries) CreateMonitorLog(ctx context.Context, arg CreateMonitorLogParams) error {
	_, err := q.db.ExecContext(ctx, createMonitorLog,
		arg.Status,
		arg.DatesChecked,
		arg.DealsFound,
		arg.ErrorMessage,
		arg.CheckedAt,
	)
	return err
}

const createNotification = `-- name: CreateNotification :exec
INSERT INTO notifications (title, content, flight_dates, sent, sent_at)
VALUES (?, ?, ?, ?, ?)
`

type CreateNotificationParams struct {
	Title       string
	Content     string
	FlightDates string
	Sent        int64
	SentAt      int64
}

func (q *Queries) CreateNotification(ctx context.Context, arg CreateNotificationParams) error {
	_, err := q.db.ExecContext(ctx, createNotification,
		arg.Title,
		arg.Content,
		arg.FlightDates,
		arg.Sent,
		arg.SentAt,
	)
	return err
}

const getLatestPrices = `-- name: GetLatestPrices :many
SELECT p.id, p.flight_date, p.miles, p.fees, p.recorded_at
FROM price_records p
JOIN (
    SELECT flight_date, MAX(recorded_at) AS recorded_at
    FROM price_records
    GROUP BY flight_date
) latest
    ON p.flight_date = latest.flight_date
    AND p.recorded_at = latest.recorded_at
GROUP BY p.flight_date
ORDER BY p.flight_date ASC
`

func (q *Queries) GetLatestPrices(ctx context.Context) ([]PriceRecord, error) {
	rows, err := q.db.QueryContext(ctx, getLatestPrices)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PriceRecord
	for rows.Next() {
		var i PriceRecord
		if err := rows.Scan(
			&i.ID,
			&i.FlightDate,
			&i.Miles,
			&i.Fees,
			&i.RecordedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getPriceHistory = `-- name: GetPriceHistory :many
SELECT id, flight_date, miles, fees, recorded_at
FROM price_records
WHERE flight_date = ?
ORDER BY recorded_at DESC
LIMIT ?
`

type GetPriceHistoryParams struct {
	FlightDate string
	Limit      int64
}

func (q *Queries) GetPriceHistory(ctx context.Context, arg GetPriceHistoryParams) ([]PriceRecord, error) {
	rows, err := q.db.QueryContext(ctx, getPriceHistory, arg.FlightDate, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PriceRecord
	for rows.Next() {
		var i PriceRecord
		if err := rows.Scan(
			&i.ID,
			&i.FlightDate,
			&i.Miles,
			&i.Fees,
			&i.RecordedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getRecentLogs = `-- name: GetRecentLogs :many
SELECT id, status, dates_checked, deals_found, error_message, checked_at
FROM monitor_logs
ORDER BY checked_at DESC, id DESC
LIMIT ?
`

func (q *Queries) GetRecentLogs(ctx context.Context, limit int64) ([]MonitorLog, error) {
	rows, err := q.db.QueryContext(ctx, getRecentLogs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MonitorLog
	for rows.Next() {
		var i MonitorLog
		if err := rows.Scan(
			&i.ID,
			&i.Status,
			&i.DatesChecked,
			&i.DealsFound,
			&i.ErrorMessage,
			&i.CheckedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getRecentNotifications = `-- name: GetRecentNotifications :many
SELECT id, title, content, flight_dates, sent, sent_at
FROM notifications
ORDER BY sent_at DESC, id DESC
LIMIT ?
`

func (q *Queries) GetRecentNotifications(ctx context.Context, limit int64) ([]Notification, error) {
	rows, err := q.db.QueryContext(ctx, getRecentNotifications, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Notification
	for rows.Next() {
		var i Notification
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Content,
			&i.FlightDates,
			&i.Sent,
			&i.SentAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getMonitorStats = `-- name: GetMonitorStats :one
SELECT
    COUNT(*) AS total_checks,
    COALESCE(SUM(CASE WHEN status != 'error' THEN 1 ELSE 0 END), 0) AS successful_checks,
    COALESCE(SUM(deals_found), 0) AS total_deals_found
FROM monitor_logs
`

type GetMonitorStatsRow struct {
	TotalChecks      int64
	SuccessfulChecks int64
	TotalDealsFound  int64
}

func (q *Queries) GetMonitorStats(ctx context.Context) (GetMonitorStatsRow, error) {
	row := q.db.QueryRowContext(ctx, getMonitorStats)
	var i GetMonitorStatsRow
	err := row.Scan(&i.TotalChecks, &i.SuccessfulChecks, &i.TotalDealsFound)
	return i, err
}
