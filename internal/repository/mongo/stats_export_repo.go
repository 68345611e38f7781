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

const statsExportCollectionName = "stats_exports"

// mongoStatsExportRepository implements repository.StatsExportRepository
type mongoStatsExportRepository struct {
	collection *mongo.Collection
}

// NewMongoStatsExportRepository creates a new export metadata repository backed by MongoDB.
func NewMongoStatsExportRepository(db *mongo.Database) repository.StatsExportRepository {
	return &mongoStatsExportRepository{
		collection: db.Collection(statsExportCollectionName),
	}
}

// Create inserts export metadata into the database.
func (r *mongoStatsExportRepository) Create(ctx context.Context, export *domain.StatsExport) (primitive.ObjectID, error) {
	if export.UserID == primitive.NilObjectID || export.S3ObjectKey == "" {
		return primitive.NilObjectID, errors.New("stats export requires userId and s3ObjectKey")
	}

	export.ID = primitive.NewObjectID()
	export.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, export)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByUserID lists the exports of a user, most recent first.
func (r *mongoStatsExportRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.StatsExport, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exports := []domain.StatsExport{}
	if err = cursor.All(ctx, &exports); err != nil {
		return nil, err
	}
	return exports, nil
}

// EnsureStatsExportIndexes creates necessary indexes for the stats_exports collection.
func EnsureStatsExportIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "s3ObjectKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
