package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RentalStatus string

const (
	RentalBorrowed RentalStatus = "prestado"
	RentalReturned RentalStatus = "devuelto"
)

type Rental struct {
	Id            primitive.ObjectID  `bson:"_id" json:"_id"`
	Book_id       *primitive.ObjectID `bson:"libroId,omitempty" json:"libroId,omitempty"`
	Book_name     string              `bson:"nombreLibro" json:"nombreLibro"`
	First_name    string              `bson:"nombrePersona" json:"nombrePersona"`
	Last_name     string              `bson:"apellidoPersona" json:"apellidoPersona"`
	Phone         string              `bson:"telefonoPersona" json:"telefonoPersona"`
	Checkout_date time.Time           `bson:"fechaRetiro" json:"fechaRetiro"`
	Due_date      *time.Time          `bson:"fechaDevolucion,omitempty" json:"fechaDevolucion,omitempty"`
	Returned_at   *time.Time          `bson:"fechaEntrega,omitempty" json:"fechaEntrega,omitempty"`
	Quantity      int                 `bson:"cantidadAlquilada" json:"cantidadAlquilada"`
	Status        RentalStatus        `bson:"estado" json:"estado"`
}

type Book struct {
	Id               primitive.ObjectID `bson:"_id" json:"_id"`
	Title            string             `bson:"titulo" json:"titulo"`
	Category         string             `bson:"categoria" json:"categoria"`
	Image            string             `bson:"imagen" json:"imagen"`
	Author           string             `bson:"autor" json:"autor"`
	Subcategory      string             `bson:"subcategoria" json:"subcategoria"`
	Description      string             `bson:"descripcion" json:"descripcion"`
	Available_copies int                `bson:"cantidad" json:"cantidad"`
	Rentals          []Rental           `bson:"alquilados" json:"alquilados"`
}

type Category struct {
	Id            primitive.ObjectID `bson:"_id" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Subcategories []string           `bson:"subcategories" json:"subcategories"`
}

type Author struct {
	Id   primitive.ObjectID `bson:"_id" json:"_id"`
	Name string             `bson:"nombre" json:"nombre"`
}

type User struct {
	Id         primitive.ObjectID `bson:"_id" json:"_id"`
	Username   string             `bson:"username" json:"username"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"`
	Created_at time.Time          `bson:"createdAt" json:"createdAt"`
}

// BookPatch carries the fields of a partial book update; nil fields are left untouched.
type BookPatch struct {
	Title            *string `json:"titulo" validate:"omitempty,min=1"`
	Category         *string `json:"categoria"`
	Image            *string `json:"imagen"`
	Author           *string `json:"autor"`
	Subcategory      *string `json:"subcategoria"`
	Description      *string `json:"descripcion"`
	Available_copies *int    `json:"cantidad" validate:"omitempty,gte=0"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HandleRegisterParams struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Normalize trims the username and email and lowercases the email, so validation sees what gets stored.
func (p *HandleRegisterParams) Normalize() {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = NormalizeEmail(p.Email)
}

type HandleLoginParams struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (p *HandleLoginParams) Normalize() {
	p.Email = NormalizeEmail(p.Email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type HandleLoginResponse struct {
	Token string `json:"token"`
}

type HandleAuthorParams struct {
	Name string `json:"nombre" validate:"required"`
}

type HandleCreateCategoryParams struct {
	Name          string   `json:"name" validate:"required"`
	Subcategories []string `json:"subcategories" validate:"dive,required"`
}

type HandleRenameCategoryParams struct {
	Name string `json:"name" validate:"required"`
}

type HandleAddSubcategoryParams struct {
	Subcategory string `json:"subcategory" validate:"required"`
}

type HandleEditSubcategoryParams struct {
	Subcategory_index *int   `json:"subcategoryIndex" validate:"required,gte=0"`
	New_subcategory   string `json:"newSubcategory" validate:"required"`
}

type HandleRemoveSubcategoryParams struct {
	Subcategory_index *int `json:"subcategoryIndex" validate:"required,gte=0"`
}

type HandleBookParams struct {
	Title            string `json:"titulo" validate:"required"`
	Category         string `json:"categoria"`
	Image            string `json:"imagen"`
	Author           string `json:"autor"`
	Subcategory      string `json:"subcategoria"`
	Description      string `json:"descripcion"`
	Available_copies int    `json:"cantidad" validate:"gte=0"`
}

type HandleRentBookParams struct {
	Title         string     `json:"titulo" validate:"required"`
	First_name    string     `json:"nombrePersona" validate:"required"`
	Last_name     string     `json:"apellidoPersona" validate:"required"`
	Phone         string     `json:"telefonoPersona"`
	Checkout_date *time.Time `json:"fechaRetiro"`
	Due_date      *time.Time `json:"fechaDevolucion"`
	Quantity      int        `json:"cantidadAlquilada" validate:"required,gt=0"`
}
