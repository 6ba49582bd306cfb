package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oseayemenre/biblioteca/internal/models"
)

// HandleCreateAuthor godoc
//
//	@Summary	Create an author
//	@Tags		authors
//	@Accept		json
//	@Produce	json
//	@Param		author	body		models.HandleAuthorParams	true	"Author"
//	@Success	201		{object}	models.Author
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	500		{object}	models.ErrorResponse
//	@Router		/autores [post]
func (a *Api) HandleCreateAuthor(w http.ResponseWriter, r *http.Request) {
	var params models.HandleAuthorParams

	if !a.decodeAndValidate(w, r, &params, "HandleCreateAuthor") {
		return
	}

	author := &models.Author{Name: params.Name}

	if err := a.store.CreateAuthor(r.Context(), author); err != nil {
		a.respondWithStoreError(w, err, "HandleCreateAuthor")
		return
	}

	respondWithSuccess(w, http.StatusCreated, author)
}

// HandleGetAuthors godoc
//
//	@Summary	List authors
//	@Tags		authors
//	@Produce	json
//	@Success	200	{array}		models.Author
//	@Failure	500	{object}	models.ErrorResponse
//	@Router		/autores [get]
func (a *Api) HandleGetAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := a.store.GetAuthors(r.Context())

	if err != nil {
		a.respondWithStoreError(w, err, "HandleGetAuthors")
		return
	}

	respondWithSuccess(w, http.StatusOK, authors)
}

func (a *Api) HandleGetAuthor(w http.ResponseWriter, r *http.Request) {
	author, err := a.store.GetAuthor(r.Context(), chi.URLParam(r, "id"))

	if err != nil {
		a.respondWithStoreError(w, err, "HandleGetAuthor")
		return
	}

	respondWithSuccess(w, http.StatusOK, author)
}

// HandleUpdateAuthor godoc
//
//	@Summary	Rename an author
//	@Tags		authors
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Author id"
//	@Param		author	body		models.HandleAuthorParams	true	"Author"
//	@Success	200		{object}	models.Author
//	@Failure	400		{object}	models.ErrorResponse
//	@Failure	404		{object}	models.ErrorResponse
//	@Router		/autores/{id} [put]
func (a *Api) HandleUpdateAuthor(w http.ResponseWriter, r *http.Request) {
	var params models.HandleAuthorParams

	if !a.decodeAndValidate(w, r, &params, "HandleUpdateAuthor") {
		return
	}

	author, err := a.store.UpdateAuthor(r.Context(), chi.URLParam(r, "id"), params.Name)

	if err != nil {
		a.respondWithStoreError(w, err, "HandleUpdateAuthor")
		return
	}

	respondWithSuccess(w, http.StatusOK, author)
}

func (a *Api) HandleDeleteAuthor(w http.ResponseWriter, r *http.Request) {
	if err := a.store.DeleteAuthor(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.respondWithStoreError(w, err, "HandleDeleteAuthor")
		return
	}

	respondWithSuccess(w, http.StatusOK, models.MessageResponse{Message: "Autor eliminado exitosamente"})
}
