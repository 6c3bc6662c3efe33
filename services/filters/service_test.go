package filters_test

import (
	"context"
	"testing"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/testutil"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/filters"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/filters/db"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) filters.Service {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "filters",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	return filters.NewService(result.DB)
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	created, err := svc.Create(ctx, 85000, "economy saver")
	require.NoError(t, err)
	require.EqualValues(t, 85000, created.TargetMiles)
	require.Equal(t, "economy saver", created.Description)
	require.True(t, created.Active)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestCreateRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	_, err := svc.Create(ctx, 0, "")
	require.ErrorContains(t, err, "must be positive")
	_, err = svc.Create(ctx, -85000, "")
	require.ErrorContains(t, err, "must be positive")

	_, err = svc.Create(ctx, 85000, "first")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 85000, "second")
	require.ErrorContains(t, err, "85k already exists")
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	_, err := svc.Get(ctx, 42)
	require.ErrorContains(t, err, "filter 42 does not exist")
}

func TestActiveExcludesToggledOff(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	economy, err := svc.Create(ctx, 85000, "economy")
	require.NoError(t, err)
	_, err = svc.Create(ctx, 175000, "business")
	require.NoError(t, err)

	nowActive, err := svc.Toggle(ctx, economy.ID)
	require.NoError(t, err)
	require.False(t, nowActive)

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.EqualValues(t, 175000, active[0].TargetMiles)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	nowActive, err = svc.Toggle(ctx, economy.ID)
	require.NoError(t, err)
	require.True(t, nowActive)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	created, err := svc.Create(ctx, 85000, "economy")
	require.NoError(t, err)

	require.NoError(t, svc.Update(ctx, created.ID, 90000, "economy refare"))
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.EqualValues(t, 90000, got.TargetMiles)
	require.Equal(t, "economy refare", got.Description)

	require.ErrorContains(t, svc.Update(ctx, 42, 90000, ""), "does not exist")
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	created, err := svc.Create(ctx, 85000, "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	require.ErrorContains(t, err, "does not exist")

	// the slot frees up for a new filter at the same price
	_, err = svc.Create(ctx, 85000, "")
	require.NoError(t, err)
}
