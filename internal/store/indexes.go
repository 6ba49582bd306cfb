package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the store relies on. It is safe to call on every startup.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection *mongo.Collection
		models     []mongo.IndexModel
	}{
		{
			collection: s.books(),
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "titulo", Value: 1}}, Options: options.Index().SetUnique(true)},
				// rentals are returned by their own id, so the owning book is found through this index
				{Keys: bson.D{{Key: "alquilados._id", Value: 1}}},
			},
		},
		{
			collection: s.users(),
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
		{
			collection: s.categories(),
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
	}

	for _, idx := range indexes {
		if _, err := idx.collection.Indexes().CreateMany(ctx, idx.models); err != nil {
			return fmt.Errorf("error creating indexes on %s: %w", idx.collection.Name(), err)
		}
	}

	return nil
}
