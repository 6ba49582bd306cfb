package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oseayemenre/biblioteca/internal/models"
)

// HandleCreateCategory godoc
//
//	@Summary	Create a category
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		category	body		models.HandleCreateCategoryParams	true	"Category"
//	@Success	201			{object}	models.Category
//	@Failure	400			{object}	models.ErrorResponse
//	@Failure	409			{object}	models.ErrorResponse
//	@Router		/categories [post]
func (a *Api) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var params models.HandleCreateCategoryParams

	if !a.decodeAndValidate(w, r, &params, "HandleCreateCategory") {
		return
	}

	category := &models.Category{
		Name:          params.Name,
		Subcategories: params.Subcategories,
	}

	if err := a.store.CreateCategory(r.Context(), category); err != nil {
		a.respondWithStoreError(w, err, "HandleCreateCategory")
		return
	}

	respondWithSuccess(w, http.StatusCreated, category)
}

func (a *Api) HandleGetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.store.GetCategories(r.Context())

	if err != nil {
		a.respondWithStoreError(w, err, "HandleGetCategories")
		return
	}

	respondWithSuccess(w, http.StatusOK, categories)
}

func (a *Api) HandleGetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := a.store.GetCategory(r.Context(), chi.URLParam(r, "category"))

	if err != nil {
		a.respondWithStoreError(w, err, "HandleGetCategory")
		return
	}

	respondWithSuccess(w, http.StatusOK, category)
}

// HandleGetSubcategories godoc
//
//	@Summary		Subcategories of a category
//	@Description	Looks the category up by its name, not its id
//	@Tags			categories
//	@Produce		json
//	@Param			category	path		string	true	"Category name"
//	@Success		200			{array}		string
//	@Failure		404			{object}	models.ErrorResponse
//	@Router			/categories/{category}/subcategories [get]
func (a *Api) HandleGetSubcategories(w http.ResponseWriter, r *http.Request) {
	subcategories, err := a.store.GetSubcategories(r.Context(), chi.URLParam(r, "category"))

	if err != nil {
		a.respondWithStoreError(w, err, "HandleGetSubcategories")
		return
	}

	respondWithSuccess(w, http.StatusOK, subcategories)
}

func (a *Api) HandleRenameCategory(w http.ResponseWriter, r *http.Request) {
	var params models.HandleRenameCategoryParams

	if !a.decodeAndValidate(w, r, &params, "HandleRenameCategory") {
		return
	}

	category, err := a.store.RenameCategory(r.Context(), chi.URLParam(r, "category"), params.Name)

	if err != nil {
		a.respondWithStoreError(w, err, "HandleRenameCategory")
		return
	}

	respondWithSuccess(w, http.StatusOK, category)
}

func (a *Api) HandleAddSubcategory(w http.ResponseWriter, r *http.Request) {
	var params models.HandleAddSubcategoryParams

	if !a.decodeAndValidate(w, r, &params, "HandleAddSubcategory") {
		return
	}

	category, err := a.store.AddSubcategory(r.Context(), chi.URLParam(r, "category"), params.Subcategory)

	if err != nil {
		a.respondWithStoreError(w, err, "HandleAddSubcategory")
		return
	}

	respondWithSuccess(w, http.StatusOK, category)
}

// HandleEditSubcategory godoc
//
//	@Summary	Replace a subcategory
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		category	path		string								true	"Category id"
//	@Param		body		body		models.HandleEditSubcategoryParams	true	"Index and new value"
//	@Success	200			{object}	models.Category
//	@Failure	400			{object}	models.ErrorResponse
//	@Failure	404			{object}	models.ErrorResponse
//	@Router		/categories/{category}/subcategorieseditar [put]
func (a *Api) HandleEditSubcategory(w http.ResponseWriter, r *http.Request) {
	var params models.HandleEditSubcategoryParams

	if !a.decodeAndValidate(w, r, &params, "HandleEditSubcategory") {
		return
	}

	category, err := a.store.EditSubcategory(r.Context(), chi.URLParam(r, "category"), *params.Subcategory_index, params.New_subcategory)

	if err != nil {
		a.respondWithStoreError(w, err, "HandleEditSubcategory")
		return
	}

	respondWithSuccess(w, http.StatusOK, category)
}

// HandleRemoveSubcategory godoc
//
//	@Summary	Remove a subcategory
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		category	path		string									true	"Category id"
//	@Param		body		body		models.HandleRemoveSubcategoryParams	true	"Index"
//	@Success	200			{object}	models.Category
//	@Failure	400			{object}	models.ErrorResponse
//	@Failure	404			{object}	models.ErrorResponse
//	@Router		/categories/{category}/subcategories [put]
func (a *Api) HandleRemoveSubcategory(w http.ResponseWriter, r *http.Request) {
	var params models.HandleRemoveSubcategoryParams

	if !a.decodeAndValidate(w, r, &params, "HandleRemoveSubcategory") {
		return
	}

	category, err := a.store.RemoveSubcategory(r.Context(), chi.URLParam(r, "category"), *params.Subcategory_index)

	if err != nil {
		a.respondWithStoreError(w, err, "HandleRemoveSubcategory")
		return
	}

	respondWithSuccess(w, http.StatusOK, category)
}

func (a *Api) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := a.store.DeleteCategory(r.Context(), chi.URLParam(r, "category")); err != nil {
		a.respondWithStoreError(w, err, "HandleDeleteCategory")
		return
	}

	respondWithSuccess(w, http.StatusOK, models.MessageResponse{Message: "Categoría eliminada exitosamente"})
}
