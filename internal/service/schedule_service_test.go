package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestScheduleService(repo *fakeScheduleRepo, now time.Time) *scheduleService {
	svc := NewScheduleService(repo).(*scheduleService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestScheduleService_UpcomingOnly(t *testing.T) {
	repo := &fakeScheduleRepo{}
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestScheduleService(repo, now)
	ctx := context.Background()
	userID := primitive.NewObjectID().Hex()

	tomorrow := now.Add(24 * time.Hour).Format(time.RFC3339)
	yesterday := now.Add(-24 * time.Hour).Format(time.RFC3339)

	_, err := svc.ScheduleWorkout(ctx, userID, "Leg Day", tomorrow)
	require.NoError(t, err)
	_, err = svc.ScheduleWorkout(ctx, userID, "Missed", yesterday)
	require.NoError(t, err)

	upcoming, err := svc.ListUpcoming(ctx, userID)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Leg Day", upcoming[0].Title)
	assert.True(t, repo.lastFrom.Equal(now))
}

func TestScheduleService_UpcomingOrderedSoonestFirst(t *testing.T) {
	repo := &fakeScheduleRepo{}
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestScheduleService(repo, now)
	ctx := context.Background()
	userID := primitive.NewObjectID().Hex()

	for _, d := range []string{"2024-06-20", "2024-06-16", "2024-06-18"} {
		_, err := svc.ScheduleWorkout(ctx, userID, "w "+d, d)
		require.NoError(t, err)
	}
	_, err := svc.ScheduleWorkout(ctx, primitive.NewObjectID().Hex(), "other user", "2024-06-17")
	require.NoError(t, err)

	upcoming, err := svc.ListUpcoming(ctx, userID)
	require.NoError(t, err)
	require.Len(t, upcoming, 3)
	assert.Equal(t, "w 2024-06-16", upcoming[0].Title)
	assert.Equal(t, "w 2024-06-18", upcoming[1].Title)
	assert.Equal(t, "w 2024-06-20", upcoming[2].Title)
}

func TestScheduleService_ExactlyNowIsUpcoming(t *testing.T) {
	repo := &fakeScheduleRepo{}
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	svc := newTestScheduleService(repo, now)
	userID := primitive.NewObjectID().Hex()

	_, err := svc.ScheduleWorkout(context.Background(), userID, "Midnight", "2024-06-15")
	require.NoError(t, err)

	upcoming, err := svc.ListUpcoming(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)
}

func TestScheduleService_Validation(t *testing.T) {
	svc := newTestScheduleService(&fakeScheduleRepo{}, time.Now())
	ctx := context.Background()
	userID := primitive.NewObjectID().Hex()

	_, err := svc.ScheduleWorkout(ctx, "xyz", "t", "2024-01-01")
	assert.ErrorIs(t, err, ErrInvalidUserID)

	_, err = svc.ScheduleWorkout(ctx, userID, " ", "2024-01-01")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ScheduleWorkout(ctx, userID, "t", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ScheduleWorkout(ctx, userID, "t", "next tuesday")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ListUpcoming(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidUserID)
}

func TestScheduleService_StorageError(t *testing.T) {
	svc := newTestScheduleService(&fakeScheduleRepo{createErr: errBoom}, time.Now())

	_, err := svc.ScheduleWorkout(context.Background(), primitive.NewObjectID().Hex(), "t", "2030-01-01")
	assert.ErrorIs(t, err, ErrStorage)
}
