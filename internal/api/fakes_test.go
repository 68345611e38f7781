package api

import (
	"context"

	"github.com/GowthamiKadiyala/workout-tracker/internal/domain"
	"github.com/GowthamiKadiyala/workout-tracker/internal/service"
)

type fakeAuthService struct {
	registerFn func(ctx context.Context, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	tokens     map[string]string // token -> userId
}

func (f *fakeAuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return f.registerFn(ctx, email, password)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) Verify(_ context.Context, token string) (string, error) {
	if userID, ok := f.tokens[token]; ok {
		return userID, nil
	}
	return "", service.ErrInvalidToken
}

type fakeWorkoutService struct {
	logFn  func(ctx context.Context, in service.LogWorkoutInput) (*domain.Workout, error)
	listFn func(ctx context.Context, userID string) ([]domain.Workout, error)
}

func (f *fakeWorkoutService) LogWorkout(ctx context.Context, in service.LogWorkoutInput) (*domain.Workout, error) {
	return f.logFn(ctx, in)
}

func (f *fakeWorkoutService) ListWorkouts(ctx context.Context, userID string) ([]domain.Workout, error) {
	return f.listFn(ctx, userID)
}

type fakeScheduleService struct {
	scheduleFn func(ctx context.Context, userID, title, date string) (*domain.ScheduleEntry, error)
	upcomingFn func(ctx context.Context, userID string) ([]domain.ScheduleEntry, error)
}

func (f *fakeScheduleService) ScheduleWorkout(ctx context.Context, userID, title, date string) (*domain.ScheduleEntry, error) {
	return f.scheduleFn(ctx, userID, title, date)
}

func (f *fakeScheduleService) ListUpcoming(ctx context.Context, userID string) ([]domain.ScheduleEntry, error) {
	return f.upcomingFn(ctx, userID)
}

type fakeStatsService struct {
	computeFn     func(ctx context.Context, userID string) ([]domain.VolumePoint, error)
	exportFn      func(ctx context.Context, userID string) (*service.StatsExportResult, error)
	listExportsFn func(ctx context.Context, userID string) ([]domain.StatsExport, error)
}

func (f *fakeStatsService) ComputeStats(ctx context.Context, userID string) ([]domain.VolumePoint, error) {
	return f.computeFn(ctx, userID)
}

func (f *fakeStatsService) Export(ctx context.Context, userID string) (*service.StatsExportResult, error) {
	return f.exportFn(ctx, userID)
}

func (f *fakeStatsService) ListExports(ctx context.Context, userID string) ([]domain.StatsExport, error) {
	return f.listExportsFn(ctx, userID)
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }
