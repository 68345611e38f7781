package repository

import (
	"context"
	"time"

	"github.com/GowthamiKadiyala/workout-tracker/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository is the credential store.
type UserRepository interface {
	// Create inserts the user in a single write. A user with the same email
	// already present yields ErrDuplicate (enforced by a unique index).
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// WorkoutRepository persists workouts together with their exercises.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	// GetByUserID returns every workout of the user, newest first.
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	// GetOldestByUserID returns at most limit workouts of the user, oldest first.
	GetOldestByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Workout, error)
}

// ScheduleRepository persists planned workouts.
type ScheduleRepository interface {
	Create(ctx context.Context, entry *domain.ScheduleEntry) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ScheduleEntry, error)
	// GetUpcomingByUserID returns entries dated at or after from, soonest first.
	GetUpcomingByUserID(ctx context.Context, userID primitive.ObjectID, from time.Time) ([]domain.ScheduleEntry, error)
}

// StatsExportRepository stores metadata of exported stats files.
type StatsExportRepository interface {
	Create(ctx context.Context, export *domain.StatsExport) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.StatsExport, error)
}
