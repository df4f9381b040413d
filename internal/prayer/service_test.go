// File: internal/prayer/service_test.go
package prayer

import (
	"context"
	"testing"
	"time"

	"iqamah_backend/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestService wires a service against an in-memory database with a
// fixed clock (2024-03-10 UTC) so the today view is deterministic.
func newTestService(t *testing.T, email string) (Service, uuid.UUID) {
	t.Helper()
	db := newTestDB(t)
	repo := NewGORMRepository(db)
	u := createTestUser(t, db, email)
	svc := &service{
		repo:   repo,
		logger: zap.NewNop(),
		now:    func() time.Time { return time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC) },
	}
	return svc, u.ID
}

func TestService_Create_DuplicateReturnsConflict(t *testing.T) {
	svc, userID := newTestService(t, "create@example.com")
	ctx := context.Background()

	req := CreateRequest{PrayerName: Fajr, PrayerType: Jammat, Date: "2024-03-10"}
	first, err := svc.Create(ctx, userID, req)
	require.NoError(t, err)
	assert.Equal(t, Fajr, first.PrayerName)
	assert.Equal(t, day("2024-03-10"), NormalizeDate(first.Date))

	_, err = svc.Create(ctx, userID, req)
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrConflict.StatusCode, apiErr.StatusCode)
}

func TestService_Create_NormalizesTimestampToUTCDay(t *testing.T) {
	svc, userID := newTestService(t, "normalize@example.com")
	ctx := context.Background()

	// A full timestamp is accepted but truncated to its UTC day...
	created, err := svc.Create(ctx, userID, CreateRequest{
		PrayerName: Dhuhr, PrayerType: Alone, Date: "2024-03-10T23:45:00+05:00",
	})
	require.NoError(t, err)
	assert.Equal(t, day("2024-03-10"), NormalizeDate(created.Date))

	// ...so a date-only request for the same day collides with it.
	_, err = svc.Create(ctx, userID, CreateRequest{
		PrayerName: Dhuhr, PrayerType: Jammat, Date: "2024-03-10",
	})
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrConflict.StatusCode, apiErr.StatusCode)
}

func TestService_Create_InvalidDate(t *testing.T) {
	svc, userID := newTestService(t, "baddate@example.com")

	_, err := svc.Create(context.Background(), userID, CreateRequest{
		PrayerName: Fajr, PrayerType: Jammat, Date: "not-a-date",
	})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrBadRequest.StatusCode, apiErr.StatusCode)
}

func TestService_GetToday_AlwaysFiveEntriesInFixedOrder(t *testing.T) {
	svc, userID := newTestService(t, "today@example.com")
	ctx := context.Background()

	// Only two of today's prayers are recorded (test clock: 2024-03-10).
	_, err := svc.Create(ctx, userID, CreateRequest{PrayerName: Fajr, PrayerType: Jammat, Date: "2024-03-10"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, userID, CreateRequest{PrayerName: Isha, PrayerType: Missed, Date: "2024-03-10"})
	require.NoError(t, err)

	entries, err := svc.GetToday(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 5)

	for i, name := range CanonicalNames {
		assert.Equal(t, name, entries[i].PrayerName)
		assert.Equal(t, day("2024-03-10"), entries[i].Date)
	}

	// Recorded entries carry id and type.
	require.NotNil(t, entries[0].PrayerType)
	assert.Equal(t, Jammat, *entries[0].PrayerType)
	assert.NotNil(t, entries[0].ID)
	require.NotNil(t, entries[4].PrayerType)
	assert.Equal(t, Missed, *entries[4].PrayerType)

	// Unrecorded entries have nil id and nil type, not omitted.
	for _, i := range []int{1, 2, 3} {
		assert.Nil(t, entries[i].ID, "entry %d", i)
		assert.Nil(t, entries[i].PrayerType, "entry %d", i)
	}
}

func TestService_GetToday_EmptyDayStillFiveEntries(t *testing.T) {
	svc, userID := newTestService(t, "empty@example.com")

	entries, err := svc.GetToday(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	for _, e := range entries {
		assert.Nil(t, e.ID)
		assert.Nil(t, e.PrayerType)
	}
}

func TestService_UpdateRoundTrip(t *testing.T) {
	svc, userID := newTestService(t, "roundtrip@example.com")
	ctx := context.Background()

	created, err := svc.Create(ctx, userID, CreateRequest{PrayerName: Maghrib, PrayerType: Alone, Date: "2024-03-09"})
	require.NoError(t, err)

	read, err := svc.GetByID(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, Alone, read.PrayerType)

	updated, err := svc.Update(ctx, userID, created.ID, UpdateRequest{PrayerType: Qazah})
	require.NoError(t, err)
	assert.Equal(t, Qazah, updated.PrayerType)

	reread, err := svc.GetByID(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, Qazah, reread.PrayerType)
	// Name and date are immutable.
	assert.Equal(t, Maghrib, reread.PrayerName)
	assert.Equal(t, day("2024-03-09"), NormalizeDate(reread.Date))
}

func TestService_GetStats_MissedStaysSeparate(t *testing.T) {
	svc, userID := newTestService(t, "statspolicy@example.com")
	ctx := context.Background()

	seed := []CreateRequest{
		{PrayerName: Fajr, PrayerType: Jammat, Date: "2024-03-08"},
		{PrayerName: Dhuhr, PrayerType: Jammat, Date: "2024-03-08"},
		{PrayerName: Asr, PrayerType: Missed, Date: "2024-03-08"},
		{PrayerName: Fajr, PrayerType: Missed, Date: "2024-03-09"},
	}
	for _, req := range seed {
		_, err := svc.Create(ctx, userID, req)
		require.NoError(t, err)
	}

	stats, err := svc.GetStats(ctx, userID, nil, nil)
	require.NoError(t, err)

	// MISSED is reported as its own bucket, never folded into the others.
	assert.EqualValues(t, 2, stats[Jammat])
	assert.EqualValues(t, 2, stats[Missed])
	_, hasAlone := stats[Alone]
	assert.False(t, hasAlone)
	_, hasQazah := stats[Qazah]
	assert.False(t, hasQazah)
}

func TestService_List_PaginationMath(t *testing.T) {
	svc, userID := newTestService(t, "pagination@example.com")
	ctx := context.Background()

	dates := []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05"}
	for _, d := range dates {
		for _, name := range CanonicalNames {
			_, err := svc.Create(ctx, userID, CreateRequest{PrayerName: name, PrayerType: Alone, Date: d})
			require.NoError(t, err)
		}
	}

	page1, pagination, err := svc.List(ctx, userID, ListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page1, 10)
	assert.EqualValues(t, 25, pagination.TotalCount)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.Equal(t, 10, pagination.Limit)

	page2, _, err := svc.List(ctx, userID, ListQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page2, 10)

	page3, _, err := svc.List(ctx, userID, ListQuery{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page3, 5)
}
