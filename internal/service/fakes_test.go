package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/GowthamiKadiyala/workout-tracker/internal/domain"
	"github.com/GowthamiKadiyala/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errBoom = errors.New("boom")

// fakeUserRepo mimics the unique email index with a map under a mutex.
type fakeUserRepo struct {
	mu        sync.Mutex
	byEmail   map[string]domain.User
	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	if _, exists := f.byEmail[user.Email]; exists {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	f.byEmail[user.Email] = *user
	return user.ID, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// fakeWorkoutRepo keeps workouts in insertion order and sorts like the Mongo queries.
type fakeWorkoutRepo struct {
	mu        sync.Mutex
	workouts  []domain.Workout
	createErr error
	listErr   error
	lastLimit int64
}

func (f *fakeWorkoutRepo) Create(_ context.Context, w *domain.Workout) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	w.ID = primitive.NewObjectID()
	w.CreatedAt = time.Now().UTC()
	if w.Date.IsZero() {
		w.Date = w.CreatedAt
	}
	stored := *w
	stored.Exercises = make([]domain.Exercise, len(w.Exercises))
	for i, ex := range w.Exercises {
		ex.ID = primitive.NewObjectID()
		ex.WorkoutID = w.ID
		stored.Exercises[i] = ex
	}
	f.workouts = append(f.workouts, stored)
	return w.ID, nil
}

func (f *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.workouts {
		if w.ID == id {
			w := w
			return &w, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeWorkoutRepo) byUser(userID primitive.ObjectID) []domain.Workout {
	var out []domain.Workout
	for _, w := range f.workouts {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out
}

func (f *fakeWorkoutRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := f.byUser(userID)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeWorkoutRepo) GetOldestByUserID(_ context.Context, userID primitive.ObjectID, limit int64) ([]domain.Workout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := f.byUser(userID)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeScheduleRepo struct {
	mu        sync.Mutex
	entries   []domain.ScheduleEntry
	createErr error
	lastFrom  time.Time
}

func (f *fakeScheduleRepo) Create(_ context.Context, e *domain.ScheduleEntry) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	e.ID = primitive.NewObjectID()
	e.CreatedAt = time.Now().UTC()
	f.entries = append(f.entries, *e)
	return e.ID, nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ScheduleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeScheduleRepo) GetUpcomingByUserID(_ context.Context, userID primitive.ObjectID, from time.Time) ([]domain.ScheduleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFrom = from
	var out []domain.ScheduleEntry
	for _, e := range f.entries {
		if e.UserID == userID && !e.Date.Before(from) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type fakeExportRepo struct {
	mu        sync.Mutex
	exports   []domain.StatsExport
	createErr error
}

func (f *fakeExportRepo) Create(_ context.Context, e *domain.StatsExport) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return primitive.NilObjectID, f.createErr
	}
	e.ID = primitive.NewObjectID()
	e.CreatedAt = time.Now().UTC()
	f.exports = append(f.exports, *e)
	return e.ID, nil
}

func (f *fakeExportRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.StatsExport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.StatsExport
	for i := len(f.exports) - 1; i >= 0; i-- {
		if f.exports[i].UserID == userID {
			out = append(out, f.exports[i])
		}
	}
	return out, nil
}

type fakeFileStorage struct {
	mu         sync.Mutex
	objects    map[string][]byte
	types      map[string]string
	deleted    []string
	putErr     error
	presignErr error
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeFileStorage) PutObject(_ context.Context, key, contentType string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = append([]byte(nil), body...)
	f.types[key] = contentType
	return nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, key string, expires time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://storage.test/" + key + "?expires=" + expires.String(), nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}
