package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oseayemenre/biblioteca/internal/models"
)

const maxCoverBytes = 4 << 20

var (
	errCoverUploadsDisabled = errors.New("cover uploads are not configured")
	errUnsupportedCover     = errors.New("cover must be a jpeg, png, gif or webp image")
)

var allowedCoverTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

func bookFromParams(params *models.HandleBookParams) *models.Book {
	return &models.Book{
		Title:            params.Title,
		Category:         params.Category,
		Image:            params.Image,
		Author:           params.Author,
		Subcategory:      params.Subcategory,
		Description:      params.Description,
		Available_copies: params.Available_copies,
	}
}

// HandleCreateBook godoc
//
//	@Summary	Add a book to the catalog
//	@Tags		books
//	@Accept		json
//	@Produce	json
//	@Param		book	body		models.HandleBookParams	true	"Book"
//	@Success	201		{object}	models.Book
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	409		{object}	models.ErrorResponse
//	@Failure	500		{object}	models.ErrorResponse
//	@Router		/libros [post]
func (a *Api) HandleCreateBook(w http.ResponseWriter, r *http.Request) {
	var params models.HandleBookParams

	if !a.decodeAndValidate(w, r, &params, "HandleCreateBook") {
		return
	}

	book := bookFromParams(&params)

	if err := a.store.CreateBook(r.Context(), book); err != nil {
		a.respondWithStoreError(w, err, "HandleCreateBook")
		return
	}

	respondWithSuccess(w, http.StatusCreated, book)
}

// HandleGetBooks godoc
//
//	@Summary	List books
//	@Tags		books
//	@Produce	json
//	@Success	200	{array}		models.Book
//	@Failure	500	{object}	models.ErrorResponse
//	@Router		/libros [get]
func (a *Api) HandleGetBooks(w http.ResponseWriter, r *http.Request) {
	books, err := a.store.GetBooks(r.Context())

	if err != nil {
		a.respondWithStoreError(w, err, "HandleGetBooks")
		return
	}

	respondWithSuccess(w, http.StatusOK, books)
}

func (a *Api) HandleGetBook(w http.ResponseWriter, r *http.Request) {
	book, err := a.store.GetBook(r.Context(), chi.URLParam(r, "id"))

	if err != nil {
		a.respondWithStoreError(w, err, "HandleGetBook")
		return
	}

	respondWithSuccess(w, http.StatusOK, book)
}

// HandleReplaceBook godoc
//
//	@Summary		Replace a book
//	@Description	Overwrites every catalog field; the rentals of the book are kept
//	@Tags			books
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Book id"
//	@Param			book	body		models.HandleBookParams	true	"Book"
//	@Success		200		{object}	models.Book
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		404		{object}	models.ErrorResponse
//	@Failure		409		{object}	models.ErrorResponse
//	@Router			/libros/{id} [put]
func (a *Api) HandleReplaceBook(w http.ResponseWriter, r *http.Request) {
	var params models.HandleBookParams

	if !a.decodeAndValidate(w, r, &params, "HandleReplaceBook") {
		return
	}

	book, err := a.store.ReplaceBook(r.Context(), chi.URLParam(r, "id"), bookFromParams(&params))

	if err != nil {
		a.respondWithStoreError(w, err, "HandleReplaceBook")
		return
	}

	respondWithSuccess(w, http.StatusOK, book)
}

// HandleEditBook godoc
//
//	@Summary	Partially update a book
//	@Tags		books
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Book id"
//	@Param		book	body		models.BookPatch	true	"Fields to change"
//	@Success	200		{object}	models.Book
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	404		{object}	models.ErrorResponse
//	@Failure	409		{object}	models.ErrorResponse
//	@Router		/libros/{id} [patch]
func (a *Api) HandleEditBook(w http.ResponseWriter, r *http.Request) {
	var params models.BookPatch

	if !a.decodeAndValidate(w, r, &params, "HandleEditBook") {
		return
	}

	book, err := a.store.EditBook(r.Context(), chi.URLParam(r, "id"), &params)

	if err != nil {
		a.respondWithStoreError(w, err, "HandleEditBook")
		return
	}

	respondWithSuccess(w, http.StatusOK, book)
}

func (a *Api) HandleDeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := a.store.DeleteBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.respondWithStoreError(w, err, "HandleDeleteBook")
		return
	}

	respondWithSuccess(w, http.StatusOK, models.MessageResponse{Message: "Libro eliminado exitosamente"})
}

// HandleUploadBookImage godoc
//
//	@Summary	Upload a book cover
//	@Tags		books
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id		path		string	true	"Book id"
//	@Param		imagen	formData	file	true	"Cover image (max 4MB)"
//	@Success	200		{object}	models.Book
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	404		{object}	models.ErrorResponse
//	@Failure	413		{object}	models.ErrorResponse
//	@Failure	501		{object}	models.ErrorResponse
//	@Router		/libros/{id}/imagen [post]
func (a *Api) HandleUploadBookImage(w http.ResponseWriter, r *http.Request) {
	if a.objectStore == nil {
		a.logger.Warn(errCoverUploadsDisabled.Error(), "service", "HandleUploadBookImage")
		respondWithError(w, http.StatusNotImplemented, errCoverUploadsDisabled)
		return
	}

	id := chi.URLParam(r, "id")

	if _, err := a.store.GetBook(r.Context(), id); err != nil {
		a.respondWithStoreError(w, err, "HandleUploadBookImage")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCoverBytes+(1<<10))

	if err := r.ParseMultipartForm(maxCoverBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			a.logger.Warn(fmt.Sprintf("cover too large: %v", err), "service", "HandleUploadBookImage")
			respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("cover must be at most %d bytes", maxCoverBytes))
			return
		}
		a.logger.Warn(fmt.Sprintf("error parsing form: %v", err), "service", "HandleUploadBookImage")
		respondWithError(w, http.StatusBadRequest, fmt.Errorf("error parsing form: %v", err))
		return
	}

	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("imagen")

	if err != nil {
		a.logger.Warn(fmt.Sprintf("error reading cover: %v", err), "service", "HandleUploadBookImage")
		respondWithError(w, http.StatusBadRequest, fmt.Errorf("error reading cover: %v", err))
		return
	}

	defer file.Close()

	data, err := io.ReadAll(file)

	if err != nil {
		a.logger.Error(fmt.Sprintf("error reading bytes: %v", err), "service", "HandleUploadBookImage")
		respondWithError(w, http.StatusInternalServerError, errInternal)
		return
	}

	mtype := mimetype.Detect(data)

	if !mimetype.EqualsAny(mtype.String(), allowedCoverTypes...) {
		a.logger.Warn(fmt.Sprintf("unsupported cover type %s", mtype.String()), "service", "HandleUploadBookImage")
		respondWithError(w, http.StatusBadRequest, errUnsupportedCover)
		return
	}

	key := fmt.Sprintf("covers/%s/%s%s", id, uuid.NewString(), mtype.Extension())

	url, err := a.objectStore.UploadFile(r.Context(), bytes.NewReader(data), key, mtype.String())

	if err != nil {
		a.logger.Error(err.Error(), "service", "HandleUploadBookImage")
		respondWithError(w, http.StatusInternalServerError, errInternal)
		return
	}

	book, err := a.store.UpdateBookImage(r.Context(), id, url)

	if err != nil {
		a.respondWithStoreError(w, err, "HandleUploadBookImage")
		return
	}

	respondWithSuccess(w, http.StatusOK, book)
}
