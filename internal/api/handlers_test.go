package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/oseayemenre/biblioteca/internal/config"
	"github.com/oseayemenre/biblioteca/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testLogger struct{}

func (l *testLogger) Info(msg string, args ...any)  {}
func (l *testLogger) Error(msg string, args ...any) {}
func (l *testLogger) Warn(msg string, args ...any)  {}

type testObjectStore struct {
	uploadFileFunc func(ctx context.Context, file io.Reader, key string, contentType string) (string, error)
}

func (s *testObjectStore) UploadFile(ctx context.Context, file io.Reader, key string, contentType string) (string, error) {
	if s.uploadFileFunc != nil {
		return s.uploadFileFunc(ctx, file, key, contentType)
	}
	return "http://mock-url.com/" + key, nil
}

type testStore struct {
	createAuthorFunc      func(ctx context.Context, author *models.Author) error
	getAuthorsFunc        func(ctx context.Context) ([]models.Author, error)
	getAuthorFunc         func(ctx context.Context, id string) (*models.Author, error)
	updateAuthorFunc      func(ctx context.Context, id string, name string) (*models.Author, error)
	deleteAuthorFunc      func(ctx context.Context, id string) error
	createCategoryFunc    func(ctx context.Context, category *models.Category) error
	getCategoriesFunc     func(ctx context.Context) ([]models.Category, error)
	getCategoryFunc       func(ctx context.Context, id string) (*models.Category, error)
	getSubcategoriesFunc  func(ctx context.Context, name string) ([]string, error)
	renameCategoryFunc    func(ctx context.Context, id string, name string) (*models.Category, error)
	addSubcategoryFunc    func(ctx context.Context, id string, subcategory string) (*models.Category, error)
	editSubcategoryFunc   func(ctx context.Context, id string, index int, subcategory string) (*models.Category, error)
	removeSubcategoryFunc func(ctx context.Context, id string, index int) (*models.Category, error)
	deleteCategoryFunc    func(ctx context.Context, id string) error
	createBookFunc        func(ctx context.Context, book *models.Book) error
	getBooksFunc          func(ctx context.Context) ([]models.Book, error)
	getBookFunc           func(ctx context.Context, id string) (*models.Book, error)
	replaceBookFunc       func(ctx context.Context, id string, book *models.Book) (*models.Book, error)
	editBookFunc          func(ctx context.Context, id string, patch *models.BookPatch) (*models.Book, error)
	updateBookImageFunc   func(ctx context.Context, id string, url string) (*models.Book, error)
	deleteBookFunc        func(ctx context.Context, id string) error
	rentBookFunc          func(ctx context.Context, title string, rental *models.Rental) (*models.Book, error)
	returnRentalFunc      func(ctx context.Context, rentalId string) (*models.Book, error)
	getRentalsFunc        func(ctx context.Context, status models.RentalStatus) ([]models.Rental, error)
	createUserFunc        func(ctx context.Context, user *models.User) error
	getUserByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	getUserByIdFunc       func(ctx context.Context, id string) (*models.User, error)
}

func (s *testStore) CreateAuthor(ctx context.Context, author *models.Author) error {
	if s.createAuthorFunc != nil {
		return s.createAuthorFunc(ctx, author)
	}
	author.Id = primitive.NewObjectID()
	return nil
}

func (s *testStore) GetAuthors(ctx context.Context) ([]models.Author, error) {
	if s.getAuthorsFunc != nil {
		return s.getAuthorsFunc(ctx)
	}
	return []models.Author{}, nil
}

func (s *testStore) GetAuthor(ctx context.Context, id string) (*models.Author, error) {
	if s.getAuthorFunc != nil {
		return s.getAuthorFunc(ctx, id)
	}
	return &models.Author{}, nil
}

func (s *testStore) UpdateAuthor(ctx context.Context, id string, name string) (*models.Author, error) {
	if s.updateAuthorFunc != nil {
		return s.updateAuthorFunc(ctx, id, name)
	}
	return &models.Author{Name: name}, nil
}

func (s *testStore) DeleteAuthor(ctx context.Context, id string) error {
	if s.deleteAuthorFunc != nil {
		return s.deleteAuthorFunc(ctx, id)
	}
	return nil
}

func (s *testStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if s.createCategoryFunc != nil {
		return s.createCategoryFunc(ctx, category)
	}
	category.Id = primitive.NewObjectID()
	return nil
}

func (s *testStore) GetCategories(ctx context.Context) ([]models.Category, error) {
	if s.getCategoriesFunc != nil {
		return s.getCategoriesFunc(ctx)
	}
	return []models.Category{}, nil
}

func (s *testStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	if s.getCategoryFunc != nil {
		return s.getCategoryFunc(ctx, id)
	}
	return &models.Category{}, nil
}

func (s *testStore) GetSubcategories(ctx context.Context, name string) ([]string, error) {
	if s.getSubcategoriesFunc != nil {
		return s.getSubcategoriesFunc(ctx, name)
	}
	return []string{}, nil
}

func (s *testStore) RenameCategory(ctx context.Context, id string, name string) (*models.Category, error) {
	if s.renameCategoryFunc != nil {
		return s.renameCategoryFunc(ctx, id, name)
	}
	return &models.Category{Name: name}, nil
}

func (s *testStore) AddSubcategory(ctx context.Context, id string, subcategory string) (*models.Category, error) {
	if s.addSubcategoryFunc != nil {
		return s.addSubcategoryFunc(ctx, id, subcategory)
	}
	return &models.Category{Subcategories: []string{subcategory}}, nil
}

func (s *testStore) EditSubcategory(ctx context.Context, id string, index int, subcategory string) (*models.Category, error) {
	if s.editSubcategoryFunc != nil {
		return s.editSubcategoryFunc(ctx, id, index, subcategory)
	}
	return &models.Category{}, nil
}

func (s *testStore) RemoveSubcategory(ctx context.Context, id string, index int) (*models.Category, error) {
	if s.removeSubcategoryFunc != nil {
		return s.removeSubcategoryFunc(ctx, id, index)
	}
	return &models.Category{}, nil
}

func (s *testStore) DeleteCategory(ctx context.Context, id string) error {
	if s.deleteCategoryFunc != nil {
		return s.deleteCategoryFunc(ctx, id)
	}
	return nil
}

func (s *testStore) CreateBook(ctx context.Context, book *models.Book) error {
	if s.createBookFunc != nil {
		return s.createBookFunc(ctx, book)
	}
	book.Id = primitive.NewObjectID()
	return nil
}

func (s *testStore) GetBooks(ctx context.Context) ([]models.Book, error) {
	if s.getBooksFunc != nil {
		return s.getBooksFunc(ctx)
	}
	return []models.Book{}, nil
}

func (s *testStore) GetBook(ctx context.Context, id string) (*models.Book, error) {
	if s.getBookFunc != nil {
		return s.getBookFunc(ctx, id)
	}
	return &models.Book{}, nil
}

func (s *testStore) ReplaceBook(ctx context.Context, id string, book *models.Book) (*models.Book, error) {
	if s.replaceBookFunc != nil {
		return s.replaceBookFunc(ctx, id, book)
	}
	return book, nil
}

func (s *testStore) EditBook(ctx context.Context, id string, patch *models.BookPatch) (*models.Book, error) {
	if s.editBookFunc != nil {
		return s.editBookFunc(ctx, id, patch)
	}
	return &models.Book{}, nil
}

func (s *testStore) UpdateBookImage(ctx context.Context, id string, url string) (*models.Book, error) {
	if s.updateBookImageFunc != nil {
		return s.updateBookImageFunc(ctx, id, url)
	}
	return &models.Book{Image: url}, nil
}

func (s *testStore) DeleteBook(ctx context.Context, id string) error {
	if s.deleteBookFunc != nil {
		return s.deleteBookFunc(ctx, id)
	}
	return nil
}

func (s *testStore) RentBook(ctx context.Context, title string, rental *models.Rental) (*models.Book, error) {
	if s.rentBookFunc != nil {
		return s.rentBookFunc(ctx, title, rental)
	}
	rental.Id = primitive.NewObjectID()
	return &models.Book{Title: title, Rentals: []models.Rental{*rental}}, nil
}

func (s *testStore) ReturnRental(ctx context.Context, rentalId string) (*models.Book, error) {
	if s.returnRentalFunc != nil {
		return s.returnRentalFunc(ctx, rentalId)
	}
	return &models.Book{}, nil
}

func (s *testStore) GetRentals(ctx context.Context, status models.RentalStatus) ([]models.Rental, error) {
	if s.getRentalsFunc != nil {
		return s.getRentalsFunc(ctx, status)
	}
	return []models.Rental{}, nil
}

func (s *testStore) CreateUser(ctx context.Context, user *models.User) error {
	if s.createUserFunc != nil {
		return s.createUserFunc(ctx, user)
	}
	user.Id = primitive.NewObjectID()
	return nil
}

func (s *testStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getUserByEmailFunc != nil {
		return s.getUserByEmailFunc(ctx, email)
	}
	return &models.User{}, nil
}

func (s *testStore) GetUserById(ctx context.Context, id string) (*models.User, error) {
	if s.getUserByIdFunc != nil {
		return s.getUserByIdFunc(ctx, id)
	}
	return &models.User{}, nil
}

const testSecret = "secret"

// newTestApi mounts every route so tests exercise chi url params and middleware.
func newTestApi(s *testStore, objectStore *testObjectStore, authRequired bool) *Api {
	a := &Api{
		router: chi.NewRouter(),
		logger: &testLogger{},
		store:  s,
		config: &config.Config{
			Jwt_secret:    testSecret,
			Auth_required: authRequired,
		},
	}

	if objectStore != nil {
		a.objectStore = objectStore
	}

	a.RegisterRoutes()

	return a
}

func serve(a *Api, method string, path string, body io.Reader, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)

	for k, v := range header {
		req.Header[k] = v
	}

	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)

	return rr
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()

	if s, ok := v.(string); ok {
		return strings.NewReader(s)
	}

	data, err := json.Marshal(v)

	if err != nil {
		t.Fatalf("error marshalling body: %v", err)
	}

	return bytes.NewReader(data)
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T

	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("error unmarshalling response %q: %v", rr.Body.String(), err)
	}

	return v
}
