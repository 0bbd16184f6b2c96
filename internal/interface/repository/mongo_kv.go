package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pilotbase-logbook/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// kvDocument is the MongoDB shape of one stored value
type kvDocument struct {
	ID        string    `bson:"_id"` // {namespace}:{key}
	Namespace string    `bson:"namespace"`
	Key       string    `bson:"key"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoKeyValueStore implements KeyValueStore on a MongoDB collection
type MongoKeyValueStore struct {
	collection *mongo.Collection
	namespace  string
}

// NewMongoKeyValueStore creates a new MongoDB backed store
func NewMongoKeyValueStore(ctx context.Context, db *mongo.Database, namespace string) (*MongoKeyValueStore, error) {
	collection := db.Collection("kv_store")

	// Index on namespace for Clear
	namespaceIndex := mongo.IndexModel{
		Keys: bson.M{"namespace": 1},
	}
	if _, err := collection.Indexes().CreateOne(ctx, namespaceIndex); err != nil {
		return nil, fmt.Errorf("failed to create namespace index: %w", err)
	}

	return &MongoKeyValueStore{
		collection: collection,
		namespace:  namespace,
	}, nil
}

func (r *MongoKeyValueStore) docID(key string) string {
	return r.namespace + ":" + key
}

// Get finds the value stored under key
func (r *MongoKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc kvDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": r.docID(key)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return doc.Value, nil
}

// Set upserts the value stored under key
func (r *MongoKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": r.docID(key)},
		bson.M{"$set": bson.M{
			"namespace": r.namespace,
			"key":       key,
			"value":     value,
			"updatedAt": time.Now(),
		}},
		opts,
	)
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key
func (r *MongoKeyValueStore) Delete(ctx context.Context, key string) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": r.docID(key)}); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Clear removes every document in the namespace
func (r *MongoKeyValueStore) Clear(ctx context.Context) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"namespace": r.namespace}); err != nil {
		return fmt.Errorf("failed to clear namespace %q: %w", r.namespace, err)
	}
	return nil
}

// Close disconnects the client that owns the collection
func (r *MongoKeyValueStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.collection.Database().Client().Disconnect(ctx)
}
