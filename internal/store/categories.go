package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/oseayemenre/biblioteca/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *MongoStore) CreateCategory(ctx context.Context, category *models.Category) error {
	category.Id = primitive.NewObjectID()

	if category.Subcategories == nil {
		category.Subcategories = []string{}
	}

	if _, err := s.categories().InsertOne(ctx, category); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrCategoryExists
		}
		return fmt.Errorf("error inserting category: %w", err)
	}

	return nil
}

func (s *MongoStore) GetCategories(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.categories().Find(ctx, bson.D{})

	if err != nil {
		return nil, fmt.Errorf("error retrieving categories: %w", err)
	}

	categories := []models.Category{}

	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("error decoding categories: %w", err)
	}

	return categories, nil
}

func (s *MongoStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	var category models.Category

	if err := s.categories().FindOne(ctx, bson.M{"_id": oid}).Decode(&category); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error retrieving category: %w", err)
	}

	return &category, nil
}

// GetSubcategories looks the category up by name, not by id.
func (s *MongoStore) GetSubcategories(ctx context.Context, name string) ([]string, error) {
	var category models.Category

	if err := s.categories().FindOne(ctx, bson.M{"name": name}).Decode(&category); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error retrieving category: %w", err)
	}

	if category.Subcategories == nil {
		return []string{}, nil
	}

	return category.Subcategories, nil
}

func (s *MongoStore) RenameCategory(ctx context.Context, id string, name string) (*models.Category, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	category, err := s.updateCategory(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"name": name}})

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCategoryNotFound
	}

	return category, err
}

func (s *MongoStore) AddSubcategory(ctx context.Context, id string, subcategory string) (*models.Category, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	category, err := s.updateCategory(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{"subcategories": subcategory}})

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCategoryNotFound
	}

	return category, err
}

func (s *MongoStore) EditSubcategory(ctx context.Context, id string, index int, subcategory string) (*models.Category, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	if index < 0 {
		return nil, ErrSubcategoryOutOfRange
	}

	path := fmt.Sprintf("subcategories.%d", index)

	category, err := s.updateCategory(
		ctx,
		bson.M{"_id": oid, path: bson.M{"$exists": true}},
		bson.M{"$set": bson.M{path: subcategory}},
	)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, s.indexMiss(ctx, oid)
	}

	return category, err
}

func (s *MongoStore) RemoveSubcategory(ctx context.Context, id string, index int) (*models.Category, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	if index < 0 {
		return nil, ErrSubcategoryOutOfRange
	}

	path := fmt.Sprintf("subcategories.%d", index)

	// keeps [0, index) and (index, len) in one pipeline update
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"subcategories": bson.M{"$concatArrays": bson.A{
				bson.M{"$slice": bson.A{"$subcategories", index}},
				bson.M{"$slice": bson.A{
					"$subcategories",
					index + 1,
					bson.M{"$max": bson.A{1, bson.M{"$size": "$subcategories"}}},
				}},
			}},
		}}},
	}

	category, err := s.updateCategory(ctx, bson.M{"_id": oid, path: bson.M{"$exists": true}}, pipeline)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, s.indexMiss(ctx, oid)
	}

	return category, err
}

func (s *MongoStore) DeleteCategory(ctx context.Context, id string) error {
	oid, err := parseID(id)

	if err != nil {
		return err
	}

	res, err := s.categories().DeleteOne(ctx, bson.M{"_id": oid})

	if err != nil {
		return fmt.Errorf("error deleting category: %w", err)
	}

	if res.DeletedCount == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (s *MongoStore) updateCategory(ctx context.Context, filter bson.M, update any) (*models.Category, error) {
	var category models.Category

	err := s.categories().FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&category)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("error updating category: %w", err)
	}

	return &category, nil
}

// indexMiss tells a missing category apart from an index past the end of its subcategories.
func (s *MongoStore) indexMiss(ctx context.Context, oid primitive.ObjectID) error {
	count, err := s.categories().CountDocuments(ctx, bson.M{"_id": oid})

	if err != nil {
		return fmt.Errorf("error counting categories: %w", err)
	}

	if count == 0 {
		return ErrCategoryNotFound
	}

	return ErrSubcategoryOutOfRange
}
