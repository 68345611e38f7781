// internal/repository/mongo/workout_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/GowthamiKadiyala/workout-tracker/internal/domain"
	"github.com/GowthamiKadiyala/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// Sort orders of the two ledger queries. Each has an index of the same shape.
var (
	workoutHistorySort = bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}}
	workoutOldestSort  = bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}
)

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a workout and its exercises as one document, so readers see
// either the whole workout or nothing.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout requires userId")
	}

	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	if workout.Date.IsZero() {
		workout.Date = now
	}
	if workout.Exercises == nil {
		workout.Exercises = []domain.Exercise{}
	}
	for i := range workout.Exercises {
		workout.Exercises[i].ID = primitive.NewObjectID()
		workout.Exercises[i].WorkoutID = workout.ID
	}

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	filter := bson.M{"_id": id}
	err := r.collection.FindOne(ctx, filter).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// GetByUserID retrieves all workouts of a user, newest first.
// Workouts sharing a date keep their insertion order (ObjectIDs are monotonic).
func (r *mongoWorkoutRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	findOptions := options.Find().SetSort(workoutHistorySort)
	return r.find(ctx, bson.M{"userId": userID}, findOptions)
}

// GetOldestByUserID retrieves at most limit workouts of a user, oldest first.
func (r *mongoWorkoutRepository) GetOldestByUserID(ctx context.Context, userID primitive.ObjectID, limit int64) ([]domain.Workout, error) {
	findOptions := options.Find().
		SetSort(workoutOldestSort).
		SetLimit(limit)
	return r.find(ctx, bson.M{"userId": userID}, findOptions)
}

func (r *mongoWorkoutRepository) find(ctx context.Context, filter bson.M, findOptions *options.FindOptions) ([]domain.Workout, error) {
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.Workout{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, workoutIndexes())
	return err
}

// workoutIndexes returns one userId-prefixed index per query sort, since the
// mixed-direction history sort cannot walk the oldest-first index backwards.
func workoutIndexes() []mongo.IndexModel {
	byUser := func(sort bson.D) bson.D {
		return append(bson.D{{Key: "userId", Value: 1}}, sort...)
	}
	return []mongo.IndexModel{
		{Keys: byUser(workoutOldestSort), Options: options.Index()},
		{Keys: byUser(workoutHistorySort), Options: options.Index()},
	}
}
