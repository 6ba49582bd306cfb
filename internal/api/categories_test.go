package api

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/oseayemenre/biblioteca/internal/models"
	"github.com/oseayemenre/biblioteca/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHandleCreateCategory(t *testing.T) {
	tests := []struct {
		name               string
		body               any
		createCategoryFunc func(ctx context.Context, category *models.Category) error
		expectedCode       int
	}{
		{
			name:         "should return 400 if name is missing",
			body:         `{"subcategories":["Space opera"]}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "should return 400 if a subcategory is empty",
			body:         `{"name":"Sci-Fi","subcategories":[""]}`,
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "should return 409 if category already exists",
			body: `{"name":"Sci-Fi"}`,
			createCategoryFunc: func(ctx context.Context, category *models.Category) error {
				return store.ErrCategoryExists
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "should return 201 with the created category",
			body:         `{"name":"Sci-Fi","subcategories":["Space opera","Cyberpunk"]}`,
			expectedCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApi(&testStore{createCategoryFunc: tt.createCategoryFunc}, nil, false)

			rr := serve(a, http.MethodPost, "/categories", jsonBody(t, tt.body), nil)

			if rr.Code != tt.expectedCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectedCode, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestHandleGetSubcategories(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		expectedCode int
		expected     []string
	}{
		{name: "should look the category up by name", path: "/categories/Sci-Fi/subcategories", expectedCode: http.StatusOK, expected: []string{"Space opera"}},
		{name: "should return 404 for an unknown name", path: "/categories/Poesia/subcategories", expectedCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApi(&testStore{
				getSubcategoriesFunc: func(ctx context.Context, name string) ([]string, error) {
					if name != "Sci-Fi" {
						return nil, store.ErrCategoryNotFound
					}
					return []string{"Space opera"}, nil
				},
			}, nil, false)

			rr := serve(a, http.MethodGet, tt.path, nil, nil)

			if rr.Code != tt.expectedCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectedCode, rr.Code, rr.Body.String())
			}

			if tt.expected != nil {
				if got := decodeBody[[]string](t, rr); !reflect.DeepEqual(got, tt.expected) {
					t.Fatalf("expected %v, got %v", tt.expected, got)
				}
			}
		})
	}
}

func TestHandleSubcategoryEdits(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	tests := []struct {
		name         string
		method       string
		path         string
		body         string
		store        *testStore
		expectedCode int
	}{
		{
			name:         "append should return 400 if subcategory is missing",
			method:       http.MethodPatch,
			path:         "/categories/" + id,
			body:         `{}`,
			store:        &testStore{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "append should return 404 if category does not exist",
			method: http.MethodPatch,
			path:   "/categories/" + id,
			body:   `{"subcategory":"Cyberpunk"}`,
			store: &testStore{addSubcategoryFunc: func(ctx context.Context, id string, subcategory string) (*models.Category, error) {
				return nil, store.ErrCategoryNotFound
			}},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "append should return 200",
			method:       http.MethodPatch,
			path:         "/categories/" + id,
			body:         `{"subcategory":"Cyberpunk"}`,
			store:        &testStore{},
			expectedCode: http.StatusOK,
		},
		{
			name:         "rename should return 200",
			method:       http.MethodPatch,
			path:         "/categories/" + id + "/name",
			body:         `{"name":"Ciencia ficción"}`,
			store:        &testStore{},
			expectedCode: http.StatusOK,
		},
		{
			name:         "edit should return 400 if index is missing",
			method:       http.MethodPut,
			path:         "/categories/" + id + "/subcategorieseditar",
			body:         `{"newSubcategory":"Hard"}`,
			store:        &testStore{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "edit should return 400 if index is negative",
			method:       http.MethodPut,
			path:         "/categories/" + id + "/subcategorieseditar",
			body:         `{"subcategoryIndex":-1,"newSubcategory":"Hard"}`,
			store:        &testStore{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "edit should return 400 if index is out of range",
			method: http.MethodPut,
			path:   "/categories/" + id + "/subcategorieseditar",
			body:   `{"subcategoryIndex":7,"newSubcategory":"Hard"}`,
			store: &testStore{editSubcategoryFunc: func(ctx context.Context, id string, index int, subcategory string) (*models.Category, error) {
				return nil, store.ErrSubcategoryOutOfRange
			}},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "edit should accept index zero",
			method: http.MethodPut,
			path:   "/categories/" + id + "/subcategorieseditar",
			body:   `{"subcategoryIndex":0,"newSubcategory":"Hard"}`,
			store: &testStore{editSubcategoryFunc: func(ctx context.Context, id string, index int, subcategory string) (*models.Category, error) {
				if index != 0 || subcategory != "Hard" {
					return nil, errors.New("unexpected arguments")
				}
				return &models.Category{Subcategories: []string{"Hard"}}, nil
			}},
			expectedCode: http.StatusOK,
		},
		{
			name:   "remove should return 200",
			method: http.MethodPut,
			path:   "/categories/" + id + "/subcategories",
			body:   `{"subcategoryIndex":1}`,
			store: &testStore{removeSubcategoryFunc: func(ctx context.Context, id string, index int) (*models.Category, error) {
				if index != 1 {
					return nil, errors.New("unexpected index")
				}
				return &models.Category{}, nil
			}},
			expectedCode: http.StatusOK,
		},
		{
			name:   "delete should return 400 if id is malformed",
			method: http.MethodDelete,
			path:   "/categories/nope",
			store: &testStore{deleteCategoryFunc: func(ctx context.Context, id string) error {
				return store.ErrInvalidID
			}},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApi(tt.store, nil, false)

			rr := serve(a, tt.method, tt.path, jsonBody(t, tt.body), nil)

			if rr.Code != tt.expectedCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectedCode, rr.Code, rr.Body.String())
			}
		})
	}
}
