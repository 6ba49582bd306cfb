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

func (s *MongoStore) CreateBook(ctx context.Context, book *models.Book) error {
	book.Id = primitive.NewObjectID()

	// $push on a null array fails, so a new book always starts with an empty ledger
	if book.Rentals == nil {
		book.Rentals = []models.Rental{}
	}

	if _, err := s.books().InsertOne(ctx, book); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrBookTitleTaken
		}
		return fmt.Errorf("error inserting book: %w", err)
	}

	return nil
}

func (s *MongoStore) GetBooks(ctx context.Context) ([]models.Book, error) {
	cursor, err := s.books().Find(ctx, bson.D{})

	if err != nil {
		return nil, fmt.Errorf("error retrieving books: %w", err)
	}

	books := []models.Book{}

	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("error decoding books: %w", err)
	}

	return books, nil
}

func (s *MongoStore) GetBook(ctx context.Context, id string) (*models.Book, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	var book models.Book

	if err := s.books().FindOne(ctx, bson.M{"_id": oid}).Decode(&book); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("error retrieving book: %w", err)
	}

	return &book, nil
}

// ReplaceBook overwrites the catalog fields of a book. The rental ledger is never replaced.
func (s *MongoStore) ReplaceBook(ctx context.Context, id string, book *models.Book) (*models.Book, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	return s.updateBook(ctx, oid, bson.M{
		"titulo":       book.Title,
		"categoria":    book.Category,
		"imagen":       book.Image,
		"autor":        book.Author,
		"subcategoria": book.Subcategory,
		"descripcion":  book.Description,
		"cantidad":     book.Available_copies,
	})
}

func (s *MongoStore) EditBook(ctx context.Context, id string, patch *models.BookPatch) (*models.Book, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	fields := bson.M{}

	if patch.Title != nil {
		fields["titulo"] = *patch.Title
	}
	if patch.Category != nil {
		fields["categoria"] = *patch.Category
	}
	if patch.Image != nil {
		fields["imagen"] = *patch.Image
	}
	if patch.Author != nil {
		fields["autor"] = *patch.Author
	}
	if patch.Subcategory != nil {
		fields["subcategoria"] = *patch.Subcategory
	}
	if patch.Description != nil {
		fields["descripcion"] = *patch.Description
	}
	if patch.Available_copies != nil {
		fields["cantidad"] = *patch.Available_copies
	}

	if len(fields) == 0 {
		return s.GetBook(ctx, id)
	}

	return s.updateBook(ctx, oid, fields)
}

func (s *MongoStore) UpdateBookImage(ctx context.Context, id string, url string) (*models.Book, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	return s.updateBook(ctx, oid, bson.M{"imagen": url})
}

func (s *MongoStore) updateBook(ctx context.Context, oid primitive.ObjectID, fields bson.M) (*models.Book, error) {
	var book models.Book

	err := s.books().FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrBookTitleTaken
		}
		return nil, fmt.Errorf("error updating book: %w", err)
	}

	return &book, nil
}

func (s *MongoStore) DeleteBook(ctx context.Context, id string) error {
	oid, err := parseID(id)

	if err != nil {
		return err
	}

	res, err := s.books().DeleteOne(ctx, bson.M{"_id": oid})

	if err != nil {
		return fmt.Errorf("error deleting book: %w", err)
	}

	if res.DeletedCount == 0 {
		return ErrBookNotFound
	}

	return nil
}
