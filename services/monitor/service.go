package monitor

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/timezone"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/monitor/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("services/monitor")

const (
	StatusSuccess   = "success"
	StatusFoundDeal = "found_deal"
	StatusError     = "error"
)

type Options struct {
	Fetcher    Fetcher
	Filters    FilterStore
	Recipients RecipientStore
	Mailer     Mailer
	Booking    BookingInfo
}

type Service struct {
	db      *sql.DB
	qry     *db.Queries
	options Options
}

func NewService(database *sql.DB, options Options) Service {
	return Service{
		db:      database,
		qry:     db.New(database),
		options: options,
	}
}

// CheckResult is what both a scheduled cycle and a manual trigger
// report. Success means fetch+extract went through; deal and delivery
// outcomes never flip it to false.
type CheckResult struct {
	Success      bool     `json:"success"`
	DatesChecked int      `json:"dates_checked"`
	DealsFound   int      `json:"deals_found"`
	DealDates    []string `json:"deal_dates"`
	Error        string   `json:"error,omitempty"`
}

// RunCheck executes one full monitoring cycle: fetch, extract, match,
// notify, log. Exactly one monitor log row is written no matter which
// stage failed. Only fetch/extract failures make the cycle an error;
// everything downstream degrades and is logged where it happens.
func (s Service) RunCheck(ctx context.Context) CheckResult {
	ctx, span := tracer.Start(ctx, "RunCheck")
	defer span.End()

	slog.InfoContext(ctx, "starting monitoring check")

	raw, err := s.options.Fetcher.Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "fetch calendar", "err", err)

		s.recordLog(ctx, StatusError, 0, 0, err.Error())
		return CheckResult{Error: err.Error()}
	}

	records := ExtractFares(raw)
	span.SetAttributes(attribute.Int("fares", len(records)))
	slog.InfoContext(ctx, "extracted fares", "count", len(records))

	s.savePrices(ctx, records)

	// snapshot taken once, here: a filter toggled mid-cycle is
	// either fully in or fully out of this cycle
	snapshot := s.options.Filters.GetActiveFilters(ctx)
	result := MatchDeals(records, snapshot)

	if len(result.DealDates) > 0 {
		s.dispatch(ctx, result)
	}

	status := StatusSuccess
	if len(result.DealDates) > 0 {
		status = StatusFoundDeal
	}
	s.recordLog(ctx, status, len(records), len(result.DealDates), "")

	slog.InfoContext(ctx, "check complete", "status", status, "deals", len(result.DealDates))

	return CheckResult{
		Success:      true,
		DatesChecked: len(records),
		DealsFound:   len(result.DealDates),
		DealDates:    result.DealDates,
	}
}

func (s Service) savePrices(ctx context.Context, records []FareRecord) {
	if len(records) == 0 {
		return
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		slog.ErrorContext(ctx, "save price records", "err", err)
		return
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	now := timezone.Now().Unix()
	for _, record := range records {
		err := txqry.CreatePriceRecord(ctx, db.CreatePriceRecordParams{
			FlightDate: record.Date,
			Miles:      record.Miles,
			Fees:       record.Fees,
			RecordedAt: now,
		})
		if err != nil {
			slog.ErrorContext(ctx, "save price records", "err", err)
			return
		}
	}
	if err := tx.Commit(); err != nil {
		slog.ErrorContext(ctx, "save price records", "err", err)
	}
}

// dispatch builds the aggregated notification, attempts delivery and
// records the outcome. Failures here never escalate to the cycle.
func (s Service) dispatch(ctx context.Context, result MatchResult) {
	ctx, span := tracer.Start(ctx, "dispatch")
	defer span.End()

	message := BuildDealMessage(result, s.options.Booking)
	recipientAddrs := s.options.Recipients.GetActiveRecipients(ctx)

	delivered, err := s.options.Mailer.Send(ctx, recipientAddrs, message.Subject, message.Text, message.HTML)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "send notification", "err", err)
	}

	sent := int64(0)
	if delivered {
		sent = 1
	}
	err = s.qry.CreateNotification(ctx, db.CreateNotificationParams{
		Title:       message.Subject,
		Content:     message.Text,
		FlightDates: strings.Join(message.Dates, ","),
		Sent:        sent,
		SentAt:      timezone.Now().Unix(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "save notification record", "err", err)
	}
}

// recordLog appends the cycle outcome. Best effort: a run log that
// cannot be written must not destabilize the scheduler.
func (s Service) recordLog(ctx context.Context, status string, datesChecked, dealsFound int, errorMessage string) {
	err := s.qry.CreateMonitorLog(ctx, db.CreateMonitorLogParams{
		Status:       status,
		DatesChecked: int64(datesChecked),
		DealsFound:   int64(dealsFound),
		ErrorMessage: errorMessage,
		CheckedAt:    timezone.Now().Unix(),
	})
	if err != nil {
		slog.ErrorContext(ctx, "save monitor log", "err", err)
	}
}
