// Package mongo keeps slot values as documents in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"expensetracker/internal/storage"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Slot wraps a MongoDB collection, one document per key.
type Slot struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ storage.Slot = (*Slot)(nil)

// slotDocument stores the JSON value as a string so it stays readable in the shell.
type slotDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func newDocument(key string, value []byte, now time.Time) slotDocument {
	return slotDocument{Key: key, Value: string(value), UpdatedAt: now.UTC()}
}

// New connects and pings the server before returning.
func New(ctx context.Context, uri, dbName, collName string) (*Slot, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	slog.InfoContext(ctx, "Connected to MongoDB", "database", dbName, "collection", collName)
	return &Slot{
		client:     client,
		collection: client.Database(dbName).Collection(collName),
	}, nil
}

// Close closes the database connection
func (s *Slot) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Slot) Get(ctx context.Context, key string) ([]byte, error) {
	var doc slotDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find slot: %w", err)
	}
	return []byte(doc.Value), nil
}

func (s *Slot) Put(ctx context.Context, key string, value []byte) error {
	doc := newDocument(key, value, time.Now())
	_, err := s.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert slot: %w", err)
	}
	return nil
}

// Ping reports whether the server is reachable.
func (s *Slot) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}
