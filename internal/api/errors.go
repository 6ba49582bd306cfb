package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/oseayemenre/biblioteca/internal/store"
)

func storeErrorStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrInvalidID),
		errors.Is(err, store.ErrInsufficientStock),
		errors.Is(err, store.ErrInvalidQuantity),
		errors.Is(err, store.ErrAlreadyReturned),
		errors.Is(err, store.ErrSubcategoryOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrBookNotFound),
		errors.Is(err, store.ErrRentalNotFound),
		errors.Is(err, store.ErrCategoryNotFound),
		errors.Is(err, store.ErrAuthorNotFound),
		errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrUserExists),
		errors.Is(err, store.ErrBookTitleTaken),
		errors.Is(err, store.ErrCategoryExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithStoreError never leaks the text of an unexpected store failure to the client.
func (a *Api) respondWithStoreError(w http.ResponseWriter, err error, service string) {
	code := storeErrorStatus(err)

	if code == http.StatusInternalServerError {
		a.logger.Error(fmt.Sprintf("store error: %v", err), "service", service)
		respondWithError(w, code, errInternal)
		return
	}

	a.logger.Warn(err.Error(), "service", service)
	respondWithError(w, code, err)
}
