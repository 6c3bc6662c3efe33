package recipients

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/timezone"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/recipients/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("services/recipients")

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Recipient struct {
	ID        int64
	Email     string
	Name      string
	Active    bool
	CreatedAt time.Time
}

type Service struct {
	db  *sql.DB
	qry *db.Queries
}

func NewService(database *sql.DB) Service {
	return Service{
		db:  database,
		qry: db.New(database),
	}
}

func normalizeEmail(email string) string {
	return strings.Trim(strings.ToLower(email), " \t\n")
}

func fromRow(row db.EmailRecipient) Recipient {
	return Recipient{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		Active:    row.Active == 1,
		CreatedAt: time.Unix(row.CreatedAt, 0).In(timezone.Location),
	}
}

func (s Service) Add(ctx context.Context, email, name string) (Recipient, error) {
	ctx, span := tracer.Start(ctx, "Add")
	defer span.End()

	email = normalizeEmail(email)
	if !emailRegex.MatchString(email) {
		return Recipient{}, fmt.Errorf("invalid email address: %q", email)
	}

	existing, err := s.qry.CountEmailRecipientsByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Recipient{}, err
	}
	if existing > 0 {
		return Recipient{}, fmt.Errorf("%s is already registered", email)
	}

	id, err := s.qry.CreateEmailRecipient(ctx, db.CreateEmailRecipientParams{
		Email:     email,
		Name:      name,
		CreatedAt: timezone.Now().Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Recipient{}, err
	}
	return s.Get(ctx, id)
}

func (s Service) Get(ctx context.Context, id int64) (Recipient, error) {
	row, err := s.qry.GetEmailRecipient(ctx, id)
	if err == sql.ErrNoRows {
		return Recipient{}, fmt.Errorf("recipient %d does not exist", id)
	}
	if err != nil {
		return Recipient{}, err
	}
	return fromRow(row), nil
}

func (s Service) All(ctx context.Context) ([]Recipient, error) {
	rows, err := s.qry.GetAllEmailRecipients(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Recipient, len(rows))
	for i, row := range rows {
		out[i] = fromRow(row)
	}
	return out, nil
}

// Active returns the addresses deal notifications should go to.
func (s Service) Active(ctx context.Context) ([]string, error) {
	return s.qry.GetActiveEmailRecipients(ctx)
}

func (s Service) Rename(ctx context.Context, id int64, name string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.qry.UpdateEmailRecipientName(ctx, db.UpdateEmailRecipientNameParams{
		Name: name,
		ID:   id,
	})
}

// Toggle flips the active flag and reports the new state.
func (s Service) Toggle(ctx context.Context, id int64) (bool, error) {
	ctx, span := tracer.Start(ctx, "Toggle")
	defer span.End()

	current, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	newActive := int64(1)
	if current.Active {
		newActive = 0
	}
	err = s.qry.SetEmailRecipientActive(ctx, db.SetEmailRecipientActiveParams{
		Active: newActive,
		ID:     id,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	return newActive == 1, nil
}

func (s Service) Remove(ctx context.Context, id int64) error {
	return s.qry.DeleteEmailRecipient(ctx, id)
}
