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

func (s *MongoStore) CreateAuthor(ctx context.Context, author *models.Author) error {
	author.Id = primitive.NewObjectID()

	if _, err := s.authors().InsertOne(ctx, author); err != nil {
		return fmt.Errorf("error inserting author: %w", err)
	}

	return nil
}

func (s *MongoStore) GetAuthors(ctx context.Context) ([]models.Author, error) {
	cursor, err := s.authors().Find(ctx, bson.D{})

	if err != nil {
		return nil, fmt.Errorf("error retrieving authors: %w", err)
	}

	authors := []models.Author{}

	if err := cursor.All(ctx, &authors); err != nil {
		return nil, fmt.Errorf("error decoding authors: %w", err)
	}

	return authors, nil
}

func (s *MongoStore) GetAuthor(ctx context.Context, id string) (*models.Author, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	var author models.Author

	if err := s.authors().FindOne(ctx, bson.M{"_id": oid}).Decode(&author); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("error retrieving author: %w", err)
	}

	return &author, nil
}

func (s *MongoStore) UpdateAuthor(ctx context.Context, id string, name string) (*models.Author, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	var author models.Author

	err = s.authors().FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"nombre": name}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&author)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAuthorNotFound
		}
		return nil, fmt.Errorf("error updating author: %w", err)
	}

	return &author, nil
}

func (s *MongoStore) DeleteAuthor(ctx context.Context, id string) error {
	oid, err := parseID(id)

	if err != nil {
		return err
	}

	res, err := s.authors().DeleteOne(ctx, bson.M{"_id": oid})

	if err != nil {
		return fmt.Errorf("error deleting author: %w", err)
	}

	if res.DeletedCount == 0 {
		return ErrAuthorNotFound
	}

	return nil
}
