package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/oseayemenre/biblioteca/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps everything in process. It follows the same rules as MongoStore
// and is used for local development and tests.
type MemoryStore struct {
	mu         sync.RWMutex
	books      []*models.Book
	categories []*models.Category
	authors    []*models.Author
	users      []*models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) CreateAuthor(ctx context.Context, author *models.Author) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	author.Id = primitive.NewObjectID()
	a := *author
	m.authors = append(m.authors, &a)

	return nil
}

func (m *MemoryStore) GetAuthors(ctx context.Context) ([]models.Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	authors := make([]models.Author, 0, len(m.authors))

	for _, a := range m.authors {
		authors = append(authors, *a)
	}

	return authors, nil
}

func (m *MemoryStore) GetAuthor(ctx context.Context, id string) (*models.Author, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	a := m.findAuthor(oid)

	if a == nil {
		return nil, ErrAuthorNotFound
	}

	author := *a

	return &author, nil
}

func (m *MemoryStore) UpdateAuthor(ctx context.Context, id string, name string) (*models.Author, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	a := m.findAuthor(oid)

	if a == nil {
		return nil, ErrAuthorNotFound
	}

	a.Name = name
	author := *a

	return &author, nil
}

func (m *MemoryStore) DeleteAuthor(ctx context.Context, id string) error {
	oid, err := parseID(id)

	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.authors, func(a *models.Author) bool { return a.Id == oid })

	if i < 0 {
		return ErrAuthorNotFound
	}

	m.authors = slices.Delete(m.authors, i, i+1)

	return nil
}

func (m *MemoryStore) findAuthor(oid primitive.ObjectID) *models.Author {
	for _, a := range m.authors {
		if a.Id == oid {
			return a
		}
	}
	return nil
}

func (m *MemoryStore) CreateCategory(ctx context.Context, category *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.categories {
		if c.Name == category.Name {
			return ErrCategoryExists
		}
	}

	category.Id = primitive.NewObjectID()

	if category.Subcategories == nil {
		category.Subcategories = []string{}
	}

	m.categories = append(m.categories, copyCategory(category))

	return nil
}

func (m *MemoryStore) GetCategories(ctx context.Context) ([]models.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	categories := make([]models.Category, 0, len(m.categories))

	for _, c := range m.categories {
		categories = append(categories, *copyCategory(c))
	}

	return categories, nil
}

func (m *MemoryStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	c := m.findCategory(oid)

	if c == nil {
		return nil, ErrCategoryNotFound
	}

	return copyCategory(c), nil
}

func (m *MemoryStore) GetSubcategories(ctx context.Context, name string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.categories {
		if c.Name == name {
			return slices.Clone(c.Subcategories), nil
		}
	}

	return nil, ErrCategoryNotFound
}

func (m *MemoryStore) RenameCategory(ctx context.Context, id string, name string) (*models.Category, error) {
	return m.modifyCategory(id, func(c *models.Category) error {
		for _, other := range m.categories {
			if other.Id != c.Id && other.Name == name {
				return ErrCategoryExists
			}
		}
		c.Name = name
		return nil
	})
}

func (m *MemoryStore) AddSubcategory(ctx context.Context, id string, subcategory string) (*models.Category, error) {
	return m.modifyCategory(id, func(c *models.Category) error {
		c.Subcategories = append(c.Subcategories, subcategory)
		return nil
	})
}

func (m *MemoryStore) EditSubcategory(ctx context.Context, id string, index int, subcategory string) (*models.Category, error) {
	return m.modifyCategory(id, func(c *models.Category) error {
		if index < 0 || index >= len(c.Subcategories) {
			return ErrSubcategoryOutOfRange
		}
		c.Subcategories[index] = subcategory
		return nil
	})
}

func (m *MemoryStore) RemoveSubcategory(ctx context.Context, id string, index int) (*models.Category, error) {
	return m.modifyCategory(id, func(c *models.Category) error {
		if index < 0 || index >= len(c.Subcategories) {
			return ErrSubcategoryOutOfRange
		}
		c.Subcategories = slices.Delete(c.Subcategories, index, index+1)
		return nil
	})
}

func (m *MemoryStore) DeleteCategory(ctx context.Context, id string) error {
	oid, err := parseID(id)

	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.categories, func(c *models.Category) bool { return c.Id == oid })

	if i < 0 {
		return ErrCategoryNotFound
	}

	m.categories = slices.Delete(m.categories, i, i+1)

	return nil
}

// modifyCategory applies fn under the write lock. fn leaves the category untouched when it fails.
func (m *MemoryStore) modifyCategory(id string, fn func(c *models.Category) error) (*models.Category, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.findCategory(oid)

	if c == nil {
		return nil, ErrCategoryNotFound
	}

	if err := fn(c); err != nil {
		return nil, err
	}

	return copyCategory(c), nil
}

func (m *MemoryStore) findCategory(oid primitive.ObjectID) *models.Category {
	for _, c := range m.categories {
		if c.Id == oid {
			return c
		}
	}
	return nil
}

func copyCategory(c *models.Category) *models.Category {
	category := *c
	category.Subcategories = slices.Clone(c.Subcategories)
	if category.Subcategories == nil {
		category.Subcategories = []string{}
	}
	return &category
}

func (m *MemoryStore) CreateBook(ctx context.Context, book *models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.findBookByTitle(book.Title) != nil {
		return ErrBookTitleTaken
	}

	book.Id = primitive.NewObjectID()

	if book.Rentals == nil {
		book.Rentals = []models.Rental{}
	}

	m.books = append(m.books, copyBook(book))

	return nil
}

func (m *MemoryStore) GetBooks(ctx context.Context) ([]models.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	books := make([]models.Book, 0, len(m.books))

	for _, b := range m.books {
		books = append(books, *copyBook(b))
	}

	return books, nil
}

func (m *MemoryStore) GetBook(ctx context.Context, id string) (*models.Book, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	b := m.findBook(oid)

	if b == nil {
		return nil, ErrBookNotFound
	}

	return copyBook(b), nil
}

func (m *MemoryStore) ReplaceBook(ctx context.Context, id string, book *models.Book) (*models.Book, error) {
	return m.modifyBook(id, func(b *models.Book) error {
		if err := m.checkTitle(b, book.Title); err != nil {
			return err
		}
		b.Title = book.Title
		b.Category = book.Category
		b.Image = book.Image
		b.Author = book.Author
		b.Subcategory = book.Subcategory
		b.Description = book.Description
		b.Available_copies = book.Available_copies
		return nil
	})
}

func (m *MemoryStore) EditBook(ctx context.Context, id string, patch *models.BookPatch) (*models.Book, error) {
	return m.modifyBook(id, func(b *models.Book) error {
		if patch.Title != nil {
			if err := m.checkTitle(b, *patch.Title); err != nil {
				return err
			}
			b.Title = *patch.Title
		}
		if patch.Category != nil {
			b.Category = *patch.Category
		}
		if patch.Image != nil {
			b.Image = *patch.Image
		}
		if patch.Author != nil {
			b.Author = *patch.Author
		}
		if patch.Subcategory != nil {
			b.Subcategory = *patch.Subcategory
		}
		if patch.Description != nil {
			b.Description = *patch.Description
		}
		if patch.Available_copies != nil {
			b.Available_copies = *patch.Available_copies
		}
		return nil
	})
}

func (m *MemoryStore) UpdateBookImage(ctx context.Context, id string, url string) (*models.Book, error) {
	return m.modifyBook(id, func(b *models.Book) error {
		b.Image = url
		return nil
	})
}

func (m *MemoryStore) DeleteBook(ctx context.Context, id string) error {
	oid, err := parseID(id)

	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.books, func(b *models.Book) bool { return b.Id == oid })

	if i < 0 {
		return ErrBookNotFound
	}

	m.books = slices.Delete(m.books, i, i+1)

	return nil
}

func (m *MemoryStore) RentBook(ctx context.Context, title string, rental *models.Rental) (*models.Book, error) {
	if rental.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.findBookByTitle(title)

	if b == nil {
		return nil, ErrBookNotFound
	}

	if b.Available_copies < rental.Quantity {
		return nil, ErrInsufficientStock
	}

	rental.Id = primitive.NewObjectID()
	rental.Status = models.RentalBorrowed
	rental.Book_name = title
	rental.Book_id = nil
	rental.Returned_at = nil

	b.Available_copies -= rental.Quantity
	b.Rentals = append(b.Rentals, *rental)

	return copyBook(b), nil
}

func (m *MemoryStore) ReturnRental(ctx context.Context, rentalId string) (*models.Book, error) {
	rid, err := parseID(rentalId)

	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.books {
		for i := range b.Rentals {
			r := &b.Rentals[i]

			if r.Id != rid {
				continue
			}

			if r.Status == models.RentalReturned {
				return nil, ErrAlreadyReturned
			}

			now := time.Now().UTC()
			r.Status = models.RentalReturned
			r.Returned_at = &now
			b.Available_copies += r.Quantity

			return copyBook(b), nil
		}
	}

	return nil, ErrRentalNotFound
}

func (m *MemoryStore) GetRentals(ctx context.Context, status models.RentalStatus) ([]models.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rentals := []models.Rental{}

	for _, b := range m.books {
		for _, r := range b.Rentals {
			if status != "" && r.Status != status {
				continue
			}
			bookId := b.Id
			r.Book_id = &bookId
			rentals = append(rentals, r)
		}
	}

	return rentals, nil
}

func (m *MemoryStore) modifyBook(id string, fn func(b *models.Book) error) (*models.Book, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.findBook(oid)

	if b == nil {
		return nil, ErrBookNotFound
	}

	if err := fn(b); err != nil {
		return nil, err
	}

	return copyBook(b), nil
}

func (m *MemoryStore) checkTitle(b *models.Book, title string) error {
	if other := m.findBookByTitle(title); other != nil && other.Id != b.Id {
		return ErrBookTitleTaken
	}
	return nil
}

func (m *MemoryStore) findBook(oid primitive.ObjectID) *models.Book {
	for _, b := range m.books {
		if b.Id == oid {
			return b
		}
	}
	return nil
}

func (m *MemoryStore) findBookByTitle(title string) *models.Book {
	for _, b := range m.books {
		if b.Title == title {
			return b
		}
	}
	return nil
}

func copyBook(b *models.Book) *models.Book {
	book := *b
	book.Rentals = slices.Clone(b.Rentals)
	if book.Rentals == nil {
		book.Rentals = []models.Rental{}
	}
	return &book
}

func (m *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrUserExists
		}
	}

	user.Id = primitive.NewObjectID()
	user.Created_at = time.Now().UTC()
	u := *user
	m.users = append(m.users, &u)

	return nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			user := *u
			return &user, nil
		}
	}

	return nil, ErrUserNotFound
}

func (m *MemoryStore) GetUserById(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseID(id)

	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Id == oid {
			user := *u
			return &user, nil
		}
	}

	return nil, ErrUserNotFound
}
