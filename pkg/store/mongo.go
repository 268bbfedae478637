package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/typewire/typewire/pkg/cache"
)

// MongoStore persists graphs in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and uses the given database
// and collection. The connection is verified with a ping before the
// store is returned.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping %s: %w", uri, err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Put stores data under a fresh ID.
func (s *MongoStore) Put(ctx context.Context, name string, data []byte, nodeCount int) (Graph, error) {
	g := Graph{
		ID:        uuid.NewString(),
		Name:      name,
		Hash:      cache.Hash(data),
		NodeCount: nodeCount,
		CreatedAt: time.Now().UTC(),
		Data:      data,
	}
	if _, err := s.coll.InsertOne(ctx, g); err != nil {
		return Graph{}, fmt.Errorf("insert graph: %w", err)
	}
	return g, nil
}

// Get returns the graph with the given ID.
func (s *MongoStore) Get(ctx context.Context, id string) (Graph, error) {
	var g Graph
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Graph{}, ErrNotFound
	}
	if err != nil {
		return Graph{}, fmt.Errorf("find graph %s: %w", id, err)
	}
	return g, nil
}

// List returns metadata for all stored graphs, newest first. Document
// bytes are excluded from the query projection to keep listings cheap.
func (s *MongoStore) List(ctx context.Context) ([]Graph, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"data": 0})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list graphs: %w", err)
	}
	defer cur.Close(ctx)

	var graphs []Graph
	if err := cur.All(ctx, &graphs); err != nil {
		return nil, fmt.Errorf("decode graphs: %w", err)
	}
	return graphs, nil
}

// Delete removes the graph with the given ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete graph %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
