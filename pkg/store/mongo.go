// Package store persists named layout snapshots in MongoDB.
//
// A snapshot couples a chart (the hierarchy records) with an optional
// computed layout, keyed by a caller-chosen id. The serve command uses
// the store to let clients save and reload diagrams; the CLI works
// without it.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pondevelopment/harkje/pkg/chart"
)

// ErrNotFound is returned when no snapshot exists for an id.
var ErrNotFound = errors.New("snapshot not found")

const collectionName = "snapshots"

// Snapshot is the stored document.
type Snapshot struct {
	ID        string        `bson:"_id" json:"id"`
	Name      string        `bson:"name,omitempty" json:"name,omitempty"`
	Chart     chart.Chart   `bson:"chart" json:"chart"`
	Layout    *chart.Layout `bson:"layout,omitempty" json:"layout,omitempty"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

// MongoStore is a MongoDB-backed snapshot store.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collectionName),
	}, nil
}

// Save upserts a snapshot under its id, stamping UpdatedAt.
func (s *MongoStore) Save(ctx context.Context, snap Snapshot) error {
	snap.UpdatedAt = time.Now().UTC()
	_, err := s.coll.ReplaceOne(
		ctx,
		bson.M{"_id": snap.ID},
		snap,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Get retrieves a snapshot by id.
func (s *MongoStore) Get(ctx context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&snap)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// List returns all snapshot ids and names, most recently updated first.
func (s *MongoStore) List(ctx context.Context) ([]Snapshot, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "name": 1, "updated_at": 1}).
		SetSort(bson.M{"updated_at": -1})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var snaps []Snapshot
	if err := cur.All(ctx, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}

// Delete removes a snapshot by id.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
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
