package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists runs in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and uses the "runs" collection of
// the given database. The connection is verified with a ping before
// returning.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection("runs"),
	}, nil
}

// Put stores or replaces a run, keyed by its ID.
func (s *MongoStore) Put(ctx context.Context, run Run) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": run.ID}, run, opts); err != nil {
		return fmt.Errorf("mongo put run %s: %w", run.ID, err)
	}
	return nil
}

// Get returns the run with the given ID or ErrRunNotFound.
func (s *MongoStore) Get(ctx context.Context, id string) (Run, error) {
	var run Run
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&run)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("mongo get run %s: %w", id, err)
	}
	return run, nil
}

// List returns up to limit runs, newest first. A non-positive limit returns
// all runs.
func (s *MongoStore) List(ctx context.Context, limit int) ([]Run, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo list runs: %w", err)
	}
	var runs []Run
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("mongo decode runs: %w", err)
	}
	return runs, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements RunStore.
var _ RunStore = (*MongoStore)(nil)
