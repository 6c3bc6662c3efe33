package recipients_test

import (
	"context"
	"testing"

	"github.com/henrychenn0702-cmd/alaska-flight-monitor/lib/testutil"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/recipients"
	"github.com/henrychenn0702-cmd/alaska-flight-monitor/services/recipients/db"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) recipients.Service {
	result, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "recipients",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	return recipients.NewService(result.DB)
}

func TestAddNormalizesEmail(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	added, err := svc.Add(ctx, "  Henry.Chen@Example.COM\n", "Henry")
	require.NoError(t, err)
	require.Equal(t, "henry.chen@example.com", added.Email)
	require.Equal(t, "Henry", added.Name)
	require.True(t, added.Active)

	// differently-cased duplicates collapse to the same address
	_, err = svc.Add(ctx, "HENRY.CHEN@example.com", "")
	require.ErrorContains(t, err, "already registered")
}

func TestAddRejectsInvalidEmail(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	for _, bad := range []string{"", "plainaddress", "no@tld", "two@@example.com", "spaces in@example.com"} {
		_, err := svc.Add(ctx, bad, "")
		require.ErrorContains(t, err, "invalid email address", "input %q", bad)
	}
}

func TestActiveReturnsOnlyToggledOn(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	first, err := svc.Add(ctx, "a@example.com", "")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "b@example.com", "")
	require.NoError(t, err)

	nowActive, err := svc.Toggle(ctx, first.ID)
	require.NoError(t, err)
	require.False(t, nowActive)

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"b@example.com"}, active)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	added, err := svc.Add(ctx, "a@example.com", "old")
	require.NoError(t, err)
	require.NoError(t, svc.Rename(ctx, added.ID, "new"))

	got, err := svc.Get(ctx, added.ID)
	require.NoError(t, err)
	require.Equal(t, "new", got.Name)

	require.ErrorContains(t, svc.Rename(ctx, 42, "x"), "does not exist")
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	added, err := svc.Add(ctx, "a@example.com", "")
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, added.ID))

	_, err = svc.Get(ctx, added.ID)
	require.ErrorContains(t, err, "does not exist")

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	require.Empty(t, active)
}
