package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"canteen-finder/internal/core/catalog"
	"canteen-finder/internal/core/preference"
	"canteen-finder/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct{ *preference.MemoryStore }

func (brokenStore) Selections(context.Context, string) ([]string, error) {
	return nil, errors.New("redis: connection refused")
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(catalog.Static(testSnapshot()), preference.NewMemoryStore(), nil, Config{})
	svc.SetClock(func() time.Time { return at(12, 0) })
	svc.SetRandom(func(int) int { return 0 })
	return svc
}

func TestService_SearchUsesOwnerProfile(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Profile("alice").SaveSelections(ctx, []string{"Pescatarian"})
	require.NoError(t, err)

	alice, err := svc.Search(ctx, "alice", Criteria{SearchTerm: "ayam"}, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, alice.VisibleTenants)
	assert.Equal(t, []string{"Ayam Penyet Bu Sri"}, alice.HiddenTenantNames)

	bob, err := svc.Search(ctx, "bob", Criteria{SearchTerm: "ayam"}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, bob.VisibleTenants, 3)
}

func TestService_SearchValidation(t *testing.T) {
	_, err := newTestService(t).Search(context.Background(), "", Criteria{PriceMin: intPtr(-5)}, time.Time{})
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
}

func TestService_CatalogFailureDegradesToEmptyResult(t *testing.T) {
	failing := catalog.SourceFunc(func(context.Context) (*catalog.Snapshot, error) {
		return nil, errors.New("catalog offline")
	})
	svc := NewService(failing, preference.NewMemoryStore(), nil, Config{})

	result, err := svc.Search(context.Background(), "", Criteria{SearchTerm: "ayam"}, at(12, 0))
	require.NoError(t, err)
	assert.Equal(t, EmptyResult(), result)

	_, err = svc.Options(context.Background(), "")
	assert.True(t, errors.Is(err, common.ErrCatalogUnavailable))
}

func TestService_PreferenceFailureIsReported(t *testing.T) {
	svc := NewService(catalog.Static(testSnapshot()), brokenStore{preference.NewMemoryStore()}, nil, Config{})

	_, err := svc.Search(context.Background(), "", Criteria{}, at(12, 0))
	assert.True(t, errors.Is(err, common.ErrPreferenceStore))

	_, err = svc.RandomFood(context.Background(), "")
	assert.True(t, errors.Is(err, common.ErrPreferenceStore))
}

func TestService_RecordSearchSkipsRandomTrigger(t *testing.T) {
	svc := newTestService(t)

	assert.True(t, svc.RecordSearch("alice", "soto"))
	assert.False(t, svc.RecordSearch("alice", "BINGUNG"))
	assert.Equal(t, []string{"soto"}, svc.RecentSearches("alice"))
	assert.Empty(t, svc.RecentSearches("bob"))

	svc.ClearRecentSearches("alice")
	assert.Empty(t, svc.RecentSearches("alice"))
}

func TestService_Browsing(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.TenantsOfCanteen(ctx, "", "nope")
	assert.True(t, errors.Is(err, common.ErrCanteenNotFound))

	_, err = svc.FoodsOfTenant(ctx, "", "nope")
	assert.True(t, errors.Is(err, common.ErrTenantNotFound))

	foods, err := svc.FoodsOfTenant(ctx, "", "t-mama")
	require.NoError(t, err)
	assert.Equal(t, []string{"Nasi Goreng", "Soto Ayam"}, foodNames(foods))

	pick, err := svc.RandomFood(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Ayam Bakar", pick.Food.Name)

	_, err = svc.Profile("vegan").SaveSelections(ctx, []string{"Savory", "Chicken"})
	require.NoError(t, err)
	_, err = svc.RandomFood(ctx, "vegan")
	assert.True(t, errors.Is(err, common.ErrNoPermissibleFood))
}

func TestService_OptionsIncludePresets(t *testing.T) {
	opts, err := newTestService(t).Options(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ahimsa", "GERD-Triggers", "Pescatarian", "Treif"}, opts.Presets)
}

func TestService_RefreshCatalog(t *testing.T) {
	loads := 0
	source := catalog.NewCachedSource(catalog.SourceFunc(func(context.Context) (*catalog.Snapshot, error) {
		loads++
		return testSnapshot(), nil
	}), time.Hour)
	svc := NewService(source, preference.NewMemoryStore(), nil, Config{})

	_, err := svc.Search(context.Background(), "", Criteria{}, at(12, 0))
	require.NoError(t, err)
	snap, err := svc.RefreshCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Canteens, 2)
	assert.Equal(t, 2, loads)
	assert.NotNil(t, svc.CatalogStats())
}
