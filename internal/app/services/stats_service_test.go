package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatsStore struct{}

func (fakeStatsStore) CountAll(context.Context) (int64, error) { return 12, nil }
func (fakeStatsStore) CountByStatus(context.Context) (map[string]int64, error) {
	return map[string]int64{"pending": 3, "approved": 8, "rejected": 1}, nil
}
func (fakeStatsStore) CountByType(context.Context) (map[string]int64, error) {
	return map[string]int64{"land": 7, "residential": 5}, nil
}
func (fakeStatsStore) CountDistinctLGAs(context.Context) (int64, error) { return 4, nil }
func (fakeStatsStore) SumSoldPrices(context.Context) (int64, error)     { return 95_000_000, nil }
func (fakeStatsStore) OwnerStats(_ context.Context, ownerID int64) (int64, int64, int64, int64, int64, error) {
	return 5, 2, 3, 1, 30_000_000, nil
}

type fakeUserStatsStore struct{}

func (fakeUserStatsStore) CountUsers(context.Context) (int64, error)          { return 20, nil }
func (fakeUserStatsStore) CountVerifiedOwners(context.Context) (int64, error) { return 9, nil }

type fakePendingCounter struct{}

func (fakePendingCounter) CountPending(context.Context) (int64, error) { return 2, nil }

func newTestStatsService() *StatsService {
	return NewStatsService(fakeStatsStore{}, fakeUserStatsStore{}, fakePendingCounter{}, zerolog.Nop())
}

func TestAdminOverview(t *testing.T) {
	overview, err := newTestStatsService().AdminOverview(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 12, overview.TotalProperties)
	assert.EqualValues(t, 8, overview.PropertiesByStatus["approved"])
	assert.EqualValues(t, 7, overview.PropertiesByType["land"])
	assert.EqualValues(t, 2, overview.PendingUpdateRequests)
	assert.EqualValues(t, 20, overview.TotalUsers)
	assert.EqualValues(t, 4, overview.LGAsCovered)
	assert.EqualValues(t, 95_000_000, overview.TotalRevenue)
}

func TestOwnerDashboard(t *testing.T) {
	dashboard, err := newTestStatsService().OwnerDashboard(context.Background(), 10)
	require.NoError(t, err)
	assert.EqualValues(t, 5, dashboard.TotalProperties)
	assert.EqualValues(t, 2, dashboard.RegisteredOnly)
	assert.EqualValues(t, 3, dashboard.Listed)
	assert.EqualValues(t, 1, dashboard.Sold)
	assert.EqualValues(t, 30_000_000, dashboard.Revenue)
}

func TestPublicStats(t *testing.T) {
	stats, err := newTestStatsService().PublicStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 12, stats.RegisteredProperties)
	assert.EqualValues(t, 9, stats.VerifiedOwners)
	assert.EqualValues(t, 4, stats.LGAsCovered)
}
