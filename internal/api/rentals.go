package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oseayemenre/biblioteca/internal/models"
)

var errDueBeforeCheckout = errors.New("fechaDevolucion must not be before fechaRetiro")

// HandleRentBook godoc
//
//	@Summary		Rent copies of a book
//	@Description	Records a rental against the book with the given title and takes the copies out of stock
//	@Tags			rentals
//	@Accept			json
//	@Produce		json
//	@Param			rental	body		models.HandleRentBookParams	true	"Rental"
//	@Success		201		{object}	models.Book
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/libros/alquilar [post]
func (a *Api) HandleRentBook(w http.ResponseWriter, r *http.Request) {
	var params models.HandleRentBookParams

	if !a.decodeAndValidate(w, r, &params, "HandleRentBook") {
		return
	}

	checkout := time.Now().UTC()

	if params.Checkout_date != nil {
		checkout = params.Checkout_date.UTC()
	}

	if params.Due_date != nil && params.Due_date.Before(checkout) {
		a.logger.Warn(errDueBeforeCheckout.Error(), "service", "HandleRentBook")
		respondWithError(w, http.StatusBadRequest, errDueBeforeCheckout)
		return
	}

	rental := &models.Rental{
		First_name:    params.First_name,
		Last_name:     params.Last_name,
		Phone:         params.Phone,
		Checkout_date: checkout,
		Due_date:      params.Due_date,
		Quantity:      params.Quantity,
	}

	book, err := a.store.RentBook(r.Context(), params.Title, rental)

	if err != nil {
		a.respondWithStoreError(w, err, "HandleRentBook")
		return
	}

	a.logger.Info(fmt.Sprintf("rental %s recorded on book %s", rental.Id.Hex(), book.Id.Hex()), "service", "HandleRentBook")

	respondWithSuccess(w, http.StatusCreated, book)
}

// HandleReturnRental godoc
//
//	@Summary	Return a rental
//	@Tags		rentals
//	@Produce	json
//	@Param		rentalId	path		string	true	"Rental id"
//	@Success	200			{object}	models.Book
//	@Failure	400			{object}	models.ErrorResponse
//	@Failure	404			{object}	models.ErrorResponse
//	@Failure	500			{object}	models.ErrorResponse
//	@Router		/libros/devolver/{rentalId} [patch]
func (a *Api) HandleReturnRental(w http.ResponseWriter, r *http.Request) {
	book, err := a.store.ReturnRental(r.Context(), chi.URLParam(r, "rentalId"))

	if err != nil {
		a.respondWithStoreError(w, err, "HandleReturnRental")
		return
	}

	respondWithSuccess(w, http.StatusOK, book)
}

// HandleGetRentals godoc
//
//	@Summary	List every rental
//	@Tags		rentals
//	@Produce	json
//	@Success	200	{array}		models.Rental
//	@Failure	500	{object}	models.ErrorResponse
//	@Router		/libros/alquilados [get]
func (a *Api) HandleGetRentals(w http.ResponseWriter, r *http.Request) {
	a.listRentals(w, r, "", "HandleGetRentals")
}

// HandleGetOutstandingRentals godoc
//
//	@Summary	List rentals not yet returned
//	@Tags		rentals
//	@Produce	json
//	@Success	200	{array}		models.Rental
//	@Failure	500	{object}	models.ErrorResponse
//	@Router		/libros/alquilados/prestados [get]
func (a *Api) HandleGetOutstandingRentals(w http.ResponseWriter, r *http.Request) {
	a.listRentals(w, r, models.RentalBorrowed, "HandleGetOutstandingRentals")
}

func (a *Api) listRentals(w http.ResponseWriter, r *http.Request, status models.RentalStatus, service string) {
	rentals, err := a.store.GetRentals(r.Context(), status)

	if err != nil {
		a.respondWithStoreError(w, err, service)
		return
	}

	respondWithSuccess(w, http.StatusOK, rentals)
}
