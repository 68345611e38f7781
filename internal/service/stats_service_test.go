package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/GowthamiKadiyala/workout-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestStatsService(workouts *fakeWorkoutRepo, exports *fakeExportRepo, fs *fakeFileStorage, opts StatsOptions) *statsService {
	var svc StatsService
	if fs == nil {
		svc = NewStatsService(workouts, exports, nil, opts)
	} else {
		svc = NewStatsService(workouts, exports, fs, opts)
	}
	return svc.(*statsService)
}

func TestStatsService_LoggedWorkoutShowsUp(t *testing.T) {
	repo := &fakeWorkoutRepo{}
	now := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	workouts := newTestWorkoutService(repo, now)
	stats := newTestStatsService(repo, &fakeExportRepo{}, nil, StatsOptions{})
	ctx := context.Background()
	userID := primitive.NewObjectID().Hex()

	_, err := workouts.LogWorkout(ctx, LogWorkoutInput{
		UserID: userID,
		Name:   "Leg Day",
		Exercises: []ExerciseInput{
			{Name: "Squat", Sets: 3, Reps: 5, Weight: 200},
		},
	})
	require.NoError(t, err)

	listed, err := workouts.ListWorkouts(ctx, userID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Leg Day", listed[0].Name)
	require.Len(t, listed[0].Exercises, 1)
	ex := listed[0].Exercises[0]
	assert.Equal(t, "Squat", ex.Name)
	assert.Equal(t, []any{3, 5, 200.0}, []any{ex.Sets, ex.Reps, ex.Weight})

	points, err := stats.ComputeStats(ctx, userID)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 3000.0, points[0].Volume)
	assert.Equal(t, "Mar 10", points[0].Date)
	assert.True(t, points[0].Timestamp.Equal(now))
}

func TestStatsService_Empty(t *testing.T) {
	stats := newTestStatsService(&fakeWorkoutRepo{}, &fakeExportRepo{}, nil, StatsOptions{})

	points, err := stats.ComputeStats(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestStatsService_OldestSevenAscending(t *testing.T) {
	repo := &fakeWorkoutRepo{}
	workouts := newTestWorkoutService(repo, time.Now())
	stats := newTestStatsService(repo, &fakeExportRepo{}, nil, StatsOptions{})
	ctx := context.Background()
	userID := primitive.NewObjectID().Hex()

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	// logged out of order on purpose
	for _, day := range []int{8, 2, 0, 6, 4, 1, 7, 3, 5} {
		_, err := workouts.LogWorkout(ctx, LogWorkoutInput{
			UserID:    userID,
			Name:      fmt.Sprintf("day %d", day),
			Date:      base.AddDate(0, 0, day),
			Exercises: []ExerciseInput{{Name: "x", Sets: 1, Reps: 1, Weight: float64(day)}},
		})
		require.NoError(t, err)
	}

	points, err := stats.ComputeStats(ctx, userID)
	require.NoError(t, err)
	require.Len(t, points, DefaultStatsWindow)
	assert.Equal(t, int64(DefaultStatsWindow), repo.lastLimit)
	for i, p := range points {
		assert.Equal(t, float64(i), p.Volume)
		assert.Equal(t, fmt.Sprintf("Jan %d", i+1), p.Date)
	}
}

func TestStatsService_CustomWindowAndLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	repo := &fakeWorkoutRepo{}
	stats := newTestStatsService(repo, &fakeExportRepo{}, nil, StatsOptions{Window: 2, Location: tokyo})
	userID := primitive.NewObjectID()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(context.Background(), &domain.Workout{
			UserID: userID,
			Name:   "w",
			Date:   time.Date(2024, 2, 1+i, 20, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	points, err := stats.ComputeStats(context.Background(), userID.Hex())
	require.NoError(t, err)
	require.Len(t, points, 2)
	// 20:00 UTC is the next day in Tokyo
	assert.Equal(t, "Feb 2", points[0].Date)
	assert.Equal(t, "Feb 3", points[1].Date)
}

func TestStatsService_Errors(t *testing.T) {
	stats := newTestStatsService(&fakeWorkoutRepo{listErr: errBoom}, &fakeExportRepo{}, nil, StatsOptions{})

	_, err := stats.ComputeStats(context.Background(), "bad-id")
	assert.ErrorIs(t, err, ErrInvalidUserID)

	_, err = stats.ComputeStats(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrStorage)
}

func TestVolumeSeries(t *testing.T) {
	date := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)
	workouts := []domain.Workout{
		{Date: date, Exercises: []domain.Exercise{
			{Sets: 3, Reps: 10, Weight: 100},
			{Sets: 2, Reps: 5, Weight: 20.5},
		}},
		{Date: date.Add(2 * time.Hour)},
	}

	points := VolumeSeries(workouts, nil)
	require.Len(t, points, 2)
	assert.Equal(t, "Dec 31", points[0].Date)
	assert.Equal(t, 3205.0, points[0].Volume)
	assert.Equal(t, "Jan 1", points[1].Date)
	assert.Zero(t, points[1].Volume)
}

func TestStatsService_ExportUnavailable(t *testing.T) {
	stats := newTestStatsService(&fakeWorkoutRepo{}, &fakeExportRepo{}, nil, StatsOptions{})

	_, err := stats.Export(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrExportUnavailable)
}

func TestStatsService_Export(t *testing.T) {
	repo := &fakeWorkoutRepo{}
	exports := &fakeExportRepo{}
	fs := newFakeFileStorage()
	now := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	stats := newTestStatsService(repo, exports, fs, StatsOptions{PresignExpiry: 5 * time.Minute})
	stats.now = func() time.Time { return now }
	userID := primitive.NewObjectID()

	_, err := repo.Create(context.Background(), &domain.Workout{
		UserID:    userID,
		Name:      "Leg Day",
		Date:      now,
		Exercises: []domain.Exercise{{Name: "Squat", Sets: 3, Reps: 10, Weight: 100}},
	})
	require.NoError(t, err)

	res, err := stats.Export(context.Background(), userID.Hex())
	require.NoError(t, err)

	key := res.Export.S3ObjectKey
	assert.True(t, strings.HasPrefix(key, "stats/"+userID.Hex()+"/"), key)
	assert.True(t, strings.HasSuffix(key, ".csv"), key)
	assert.Equal(t, "https://storage.test/"+key+"?expires=5m0s", res.URL)
	assert.True(t, res.ExpiresAt.Equal(now.Add(5*time.Minute)))
	assert.False(t, res.Export.ID.IsZero())
	assert.Equal(t, 1, res.Export.Points)
	assert.Equal(t, "text/csv", fs.types[key])

	records, err := csv.NewReader(bytes.NewReader(fs.objects[key])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"timestamp", "date", "volume"},
		{"2024-03-10T09:30:00Z", "Mar 10", "3000"},
	}, records)
	assert.Equal(t, int64(len(fs.objects[key])), res.Export.Size)

	listed, err := stats.ListExports(context.Background(), userID.Hex())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, key, listed[0].S3ObjectKey)
}

func TestStatsService_ExportCleansUpOnMetadataFailure(t *testing.T) {
	fs := newFakeFileStorage()
	stats := newTestStatsService(&fakeWorkoutRepo{}, &fakeExportRepo{createErr: errBoom}, fs, StatsOptions{})

	_, err := stats.Export(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrStorage)
	require.Len(t, fs.deleted, 1)
	assert.Empty(t, fs.objects)
}

func TestStatsService_ExportCleansUpOnPresignFailure(t *testing.T) {
	fs := newFakeFileStorage()
	fs.presignErr = errBoom
	exports := &fakeExportRepo{}
	stats := newTestStatsService(&fakeWorkoutRepo{}, exports, fs, StatsOptions{})
	userID := primitive.NewObjectID().Hex()

	_, err := stats.Export(context.Background(), userID)
	assert.ErrorIs(t, err, ErrStorage)
	require.Len(t, fs.deleted, 1)
	assert.Empty(t, fs.objects)

	listed, err := stats.ListExports(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestStatsService_ExportUploadFailure(t *testing.T) {
	fs := newFakeFileStorage()
	fs.putErr = errBoom
	exports := &fakeExportRepo{}
	stats := newTestStatsService(&fakeWorkoutRepo{}, exports, fs, StatsOptions{})

	_, err := stats.Export(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrStorage)
	assert.Empty(t, exports.exports)
}
