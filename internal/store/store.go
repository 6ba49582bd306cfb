package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oseayemenre/biblioteca/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	ErrInvalidID             = errors.New("Id inválido")
	ErrBookNotFound          = errors.New("Libro no encontrado")
	ErrRentalNotFound        = errors.New("Alquiler no encontrado")
	ErrCategoryNotFound      = errors.New("Categoría no encontrada")
	ErrAuthorNotFound        = errors.New("Autor no encontrado")
	ErrUserNotFound          = errors.New("Usuario no encontrado")
	ErrUserExists            = errors.New("El usuario ya existe")
	ErrBookTitleTaken        = errors.New("Ya existe un libro con ese título")
	ErrCategoryExists        = errors.New("La categoría ya existe")
	ErrInsufficientStock     = errors.New("No hay suficientes copias disponibles para alquilar")
	ErrAlreadyReturned       = errors.New("Este alquiler ya ha sido devuelto")
	ErrSubcategoryOutOfRange = errors.New("Índice de subcategoría fuera de rango")
	ErrInvalidQuantity       = errors.New("La cantidad alquilada debe ser un entero positivo")
)

type Store interface {
	CreateAuthor(ctx context.Context, author *models.Author) error
	GetAuthors(ctx context.Context) ([]models.Author, error)
	GetAuthor(ctx context.Context, id string) (*models.Author, error)
	UpdateAuthor(ctx context.Context, id string, name string) (*models.Author, error)
	DeleteAuthor(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	GetSubcategories(ctx context.Context, name string) ([]string, error)
	RenameCategory(ctx context.Context, id string, name string) (*models.Category, error)
	AddSubcategory(ctx context.Context, id string, subcategory string) (*models.Category, error)
	EditSubcategory(ctx context.Context, id string, index int, subcategory string) (*models.Category, error)
	RemoveSubcategory(ctx context.Context, id string, index int) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateBook(ctx context.Context, book *models.Book) error
	GetBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, id string) (*models.Book, error)
	ReplaceBook(ctx context.Context, id string, book *models.Book) (*models.Book, error)
	EditBook(ctx context.Context, id string, patch *models.BookPatch) (*models.Book, error)
	UpdateBookImage(ctx context.Context, id string, url string) (*models.Book, error)
	DeleteBook(ctx context.Context, id string) error

	RentBook(ctx context.Context, title string, rental *models.Rental) (*models.Book, error)
	ReturnRental(ctx context.Context, rentalId string) (*models.Book, error)
	GetRentals(ctx context.Context, status models.RentalStatus) ([]models.Rental, error)

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserById(ctx context.Context, id string) (*models.User, error)
}

const (
	collectionBooks      = "books"
	collectionCategories = "categories"
	collectionAuthors    = "authors"
	collectionUsers      = "users"
)

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, uri string, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))

	if err != nil {
		return nil, fmt.Errorf("error connecting to db: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("error pinging db: %w", err)
	}

	return &MongoStore{
		client: client,
		db:     client.Database(database),
	}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) books() *mongo.Collection {
	return s.db.Collection(collectionBooks)
}

func (s *MongoStore) categories() *mongo.Collection {
	return s.db.Collection(collectionCategories)
}

func (s *MongoStore) authors() *mongo.Collection {
	return s.db.Collection(collectionAuthors)
}

func (s *MongoStore) users() *mongo.Collection {
	return s.db.Collection(collectionUsers)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}

	return oid, nil
}
