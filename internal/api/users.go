package api

import (
	"net/http"
)

// HandleGetMe godoc
//
//	@Summary	Current user
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	models.User
//	@Failure	401	{object}	models.ErrorResponse
//	@Failure	404	{object}	models.ErrorResponse
//	@Router		/users/me [get]
func (a *Api) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	id, ok := userIdFromContext(r.Context())

	if !ok {
		a.logger.Warn(errMissingToken.Error(), "service", "HandleGetMe")
		respondWithError(w, http.StatusUnauthorized, errMissingToken)
		return
	}

	user, err := a.store.GetUserById(r.Context(), id)

	if err != nil {
		a.respondWithStoreError(w, err, "HandleGetMe")
		return
	}

	respondWithSuccess(w, http.StatusOK, user)
}
