package filters

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/timezone"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/filters/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("services/filters")

// Filter is a single fare-price watch: any calendar date whose fare
// costs exactly TargetMiles is considered a deal.
type Filter struct {
	ID          int64
	TargetMiles int64
	Active      bool
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
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

func fromRow(row db.FilterSetting) Filter {
	return Filter{
		ID:          row.ID,
		TargetMiles: row.TargetMiles,
		Active:      row.Active == 1,
		Description: row.Description,
		CreatedAt:   time.Unix(row.CreatedAt, 0).In(timezone.Location),
		UpdatedAt:   time.Unix(row.UpdatedAt, 0).In(timezone.Location),
	}
}

// Create registers a new filter. Two filters watching the same miles
// price are rejected since they would always produce identical matches.
func (s Service) Create(ctx context.Context, targetMiles int64, description string) (Filter, error) {
	ctx, span := tracer.Start(ctx, "Create")
	defer span.End()

	if targetMiles <= 0 {
		return Filter{}, fmt.Errorf("target miles must be positive, got %d", targetMiles)
	}

	existing, err := s.qry.CountFilterSettingsByTargetMiles(ctx, targetMiles)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Filter{}, err
	}
	if existing > 0 {
		return Filter{}, fmt.Errorf("a filter for %dk already exists", targetMiles/1000)
	}

	now := timezone.Now().Unix()
	id, err := s.qry.CreateFilterSetting(ctx, db.CreateFilterSettingParams{
		TargetMiles: targetMiles,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Filter{}, err
	}

	return s.Get(ctx, id)
}

func (s Service) Get(ctx context.Context, id int64) (Filter, error) {
	row, err := s.qry.GetFilterSetting(ctx, id)
	if err == sql.ErrNoRows {
		return Filter{}, fmt.Errorf("filter %d does not exist", id)
	}
	if err != nil {
		return Filter{}, err
	}
	return fromRow(row), nil
}

func (s Service) All(ctx context.Context) ([]Filter, error) {
	rows, err := s.qry.GetAllFilterSettings(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Filter, len(rows))
	for i, row := range rows {
		out[i] = fromRow(row)
	}
	return out, nil
}

func (s Service) Active(ctx context.Context) ([]Filter, error) {
	rows, err := s.qry.GetActiveFilterSettings(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Filter, len(rows))
	for i, row := range rows {
		out[i] = fromRow(row)
	}
	return out, nil
}

func (s Service) Update(ctx context.Context, id, targetMiles int64, description string) error {
	ctx, span := tracer.Start(ctx, "Update")
	defer span.End()

	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	err := s.qry.UpdateFilterSetting(ctx, db.UpdateFilterSettingParams{
		TargetMiles: targetMiles,
		Description: description,
		UpdatedAt:   timezone.Now().Unix(),
		ID:          id,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
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
	err = s.qry.SetFilterSettingActive(ctx, db.SetFilterSettingActiveParams{
		Active:    newActive,
		UpdatedAt: timezone.Now().Unix(),
		ID:        id,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	return newActive == 1, nil
}

func (s Service) Delete(ctx context.Context, id int64) error {
	return s.qry.DeleteFilterSetting(ctx, id)
}
