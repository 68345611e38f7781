package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/GowthamiKadiyala/workout-tracker/internal/domain"
	"github.com/GowthamiKadiyala/workout-tracker/internal/repository"

	log "github.com/sirupsen/logrus"
)

// ExerciseInput is an exercise as supplied by the caller, before validation.
type ExerciseInput struct {
	Name   string
	Sets   int
	Reps   int
	Weight float64
}

// LogWorkoutInput carries a new workout. A zero Date means "now".
type LogWorkoutInput struct {
	UserID    string
	Name      string
	Date      time.Time
	Exercises []ExerciseInput
}

// WorkoutService is the workout ledger.
type WorkoutService interface {
	LogWorkout(ctx context.Context, in LogWorkoutInput) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, userID string) ([]domain.Workout, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	now         func() time.Time
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		now:         time.Now,
	}
}

// LogWorkout validates and stores a workout with its exercises in one write,
// then returns what was actually persisted.
func (s *workoutService) LogWorkout(ctx context.Context, in LogWorkoutInput) (*domain.Workout, error) {
	userID, err := ParseUserID(in.UserID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationError("workout name cannot be empty")
	}

	exercises := make([]domain.Exercise, 0, len(in.Exercises))
	for i, ex := range in.Exercises {
		if err := validateExercise(ex); err != nil {
			return nil, validationError("exercise %d: %v", i+1, err)
		}
		exercises = append(exercises, domain.Exercise{
			Name:   strings.TrimSpace(ex.Name),
			Sets:   ex.Sets,
			Reps:   ex.Reps,
			Weight: ex.Weight,
		})
	}

	date := in.Date
	if date.IsZero() {
		date = s.now()
	}

	workout := &domain.Workout{
		UserID:    userID,
		Name:      name,
		Date:      date.UTC(),
		Exercises: exercises,
	}

	workoutID, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, storageError("create workout", err)
	}

	// Read back so the response reflects the stored document, not the request.
	stored, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		return nil, storageError("get created workout", err)
	}

	log.WithFields(log.Fields{
		"userId":    userID.Hex(),
		"workoutId": workoutID.Hex(),
		"exercises": len(stored.Exercises),
	}).Debug("workout logged")

	return stored, nil
}

// ListWorkouts returns every workout of the user, newest first, with exercises.
func (s *workoutService) ListWorkouts(ctx context.Context, userID string) ([]domain.Workout, error) {
	oid, err := ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	workouts, err := s.workoutRepo.GetByUserID(ctx, oid)
	if err != nil {
		return nil, storageError("list workouts", err)
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	return workouts, nil
}

type exerciseValidationError string

func (e exerciseValidationError) Error() string { return string(e) }

func validateExercise(ex ExerciseInput) error {
	switch {
	case strings.TrimSpace(ex.Name) == "":
		return exerciseValidationError("name cannot be empty")
	case ex.Sets < 0:
		return exerciseValidationError("sets cannot be negative")
	case ex.Reps < 0:
		return exerciseValidationError("reps cannot be negative")
	case math.IsNaN(ex.Weight) || math.IsInf(ex.Weight, 0):
		return exerciseValidationError("weight must be a number")
	case ex.Weight < 0:
		return exerciseValidationError("weight cannot be negative")
	}
	return nil
}
