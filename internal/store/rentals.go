package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oseayemenre/biblioteca/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RentBook records a rental against the book with the given title and takes the
// rented copies out of stock in a single conditional update, so stock never goes negative.
func (s *MongoStore) RentBook(ctx context.Context, title string, rental *models.Rental) (*models.Book, error) {
	if rental.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	rental.Id = primitive.NewObjectID()
	rental.Status = models.RentalBorrowed
	rental.Book_name = title
	rental.Book_id = nil
	rental.Returned_at = nil

	var book models.Book

	err := s.books().FindOneAndUpdate(
		ctx,
		bson.M{
			"titulo":   title,
			"cantidad": bson.M{"$gte": rental.Quantity},
		},
		bson.M{
			"$inc":  bson.M{"cantidad": -rental.Quantity},
			"$push": bson.M{"alquilados": rental},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)

	if err == nil {
		return &book, nil
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("error renting book: %w", err)
	}

	count, err := s.books().CountDocuments(ctx, bson.M{"titulo": title})

	if err != nil {
		return nil, fmt.Errorf("error counting books: %w", err)
	}

	if count == 0 {
		return nil, ErrBookNotFound
	}

	return nil, ErrInsufficientStock
}

// ReturnRental marks a borrowed rental as returned and puts its copies back in stock.
func (s *MongoStore) ReturnRental(ctx context.Context, rentalId string) (*models.Book, error) {
	rid, err := parseID(rentalId)

	if err != nil {
		return nil, err
	}

	var owner models.Book

	if err := s.books().FindOne(ctx, bson.M{"alquilados._id": rid}).Decode(&owner); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRentalNotFound
		}
		return nil, fmt.Errorf("error retrieving rental: %w", err)
	}

	var rental *models.Rental

	for i := range owner.Rentals {
		if owner.Rentals[i].Id == rid {
			rental = &owner.Rentals[i]
			break
		}
	}

	if rental == nil {
		return nil, ErrRentalNotFound
	}

	if rental.Status == models.RentalReturned {
		return nil, ErrAlreadyReturned
	}

	var book models.Book

	err = s.books().FindOneAndUpdate(
		ctx,
		bson.M{
			"_id": owner.Id,
			"alquilados": bson.M{"$elemMatch": bson.M{
				"_id":    rid,
				"estado": models.RentalBorrowed,
			}},
		},
		bson.M{
			"$set": bson.M{
				"alquilados.$.estado":       models.RentalReturned,
				"alquilados.$.fechaEntrega": time.Now().UTC(),
			},
			"$inc": bson.M{"cantidad": rental.Quantity},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)

	if err != nil {
		// someone else returned it between the read and the update
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAlreadyReturned
		}
		return nil, fmt.Errorf("error returning rental: %w", err)
	}

	return &book, nil
}

// GetRentals flattens the rentals of every book. An empty status lists all of them.
func (s *MongoStore) GetRentals(ctx context.Context, status models.RentalStatus) ([]models.Rental, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$alquilados"}},
	}

	if status != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"alquilados.estado": status}}})
	}

	pipeline = append(pipeline, bson.D{{Key: "$replaceRoot", Value: bson.M{
		"newRoot": bson.M{"$mergeObjects": bson.A{"$alquilados", bson.M{"libroId": "$_id"}}},
	}}})

	cursor, err := s.books().Aggregate(ctx, pipeline)

	if err != nil {
		return nil, fmt.Errorf("error retrieving rentals: %w", err)
	}

	rentals := []models.Rental{}

	if err := cursor.All(ctx, &rentals); err != nil {
		return nil, fmt.Errorf("error decoding rentals: %w", err)
	}

	return rentals, nil
}
