package mongo

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

// Store is the process-wide handle to the backing database. It is created once
// in main, handed to every repository and closed on shutdown.
type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// Connect establishes a connection to MongoDB and verifies it with a ping.
func Connect(ctx context.Context, uri, dbName string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	store := &Store{
		client:  client,
		db:      client.Database(dbName),
		timeout: timeout,
	}

	// Connect is lazy, so make sure the server actually answers.
	if err := store.Ping(ctx); err != nil {
		_ = store.Close(context.Background())
		return nil, fmt.Errorf("ping: %w", err)
	}

	return store, nil
}

// Database returns the application database used by the repositories.
func (s *Store) Database() *mongo.Database {
	return s.db
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Ping(pingCtx, readpref.Primary())
}

// EnsureIndexes creates the indexes of every collection. It must complete before
// the server accepts traffic: the unique email index is what rejects duplicate
// registrations.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ensure := []struct {
		collection string
		fn         func(context.Context, *mongo.Collection) error
	}{
		{userCollectionName, EnsureUserIndexes},
		{workoutCollectionName, EnsureWorkoutIndexes},
		{scheduleCollectionName, EnsureScheduleIndexes},
		{statsExportCollectionName, EnsureStatsExportIndexes},
	}

	for _, e := range ensure {
		if err := e.fn(ctx, s.db.Collection(e.collection)); err != nil {
			return fmt.Errorf("indexes for %s: %w", e.collection, err)
		}
		log.Debugf("indexes ensured for collection %s", e.collection)
	}
	return nil
}

// Close gracefully disconnects the MongoDB client.
func (s *Store) Close(ctx context.Context) error {
	closeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Disconnect(closeCtx)
}
