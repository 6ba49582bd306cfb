package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/oseayemenre/biblioteca/internal/bcrypt"
	"github.com/oseayemenre/biblioteca/internal/jwt"
	"github.com/oseayemenre/biblioteca/internal/models"
	"github.com/oseayemenre/biblioteca/internal/store"
)

// one message for unknown email and wrong password, so accounts cannot be enumerated
var errInvalidCredentials = errors.New("Credenciales inválidas")

// compareDummyPassword gives an unknown email the same bcrypt cost as a wrong password.
var compareDummyPassword = bcrypt.CompareDummyPassword

// HandleRegister godoc
//
//	@Summary		Register a user
//	@Description	Creates a user account; the password is stored as a bcrypt hash
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			user	body		models.HandleRegisterParams	true	"New user"
//	@Success		201		{object}	models.MessageResponse
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		409		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/register [post]
func (a *Api) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var params models.HandleRegisterParams

	if !a.decodeAndValidate(w, r, &params, "HandleRegister") {
		return
	}

	hash, err := bcrypt.HashPassword(params.Password)

	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		a.logger.Warn(err.Error(), "service", "HandleRegister")
		respondWithError(w, http.StatusBadRequest, bcrypt.ErrPasswordTooLong)
		return
	}

	if err != nil {
		a.logger.Error(err.Error(), "service", "HandleRegister")
		respondWithError(w, http.StatusInternalServerError, errInternal)
		return
	}

	user := &models.User{
		Username: params.Username,
		Email:    params.Email,
		Password: hash,
	}

	if err := a.store.CreateUser(r.Context(), user); err != nil {
		a.respondWithStoreError(w, err, "HandleRegister")
		return
	}

	a.logger.Info(fmt.Sprintf("user %s registered", user.Id.Hex()), "service", "HandleRegister")

	respondWithSuccess(w, http.StatusCreated, models.MessageResponse{Message: "Usuario registrado exitosamente"})
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Checks the credentials and issues a bearer token valid for one hour
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.HandleLoginParams	true	"Credentials"
//	@Success		200			{object}	models.HandleLoginResponse
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		401			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/login [post]
func (a *Api) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var params models.HandleLoginParams

	if !a.decodeAndValidate(w, r, &params, "HandleLogin") {
		return
	}

	user, err := a.store.GetUserByEmail(r.Context(), params.Email)

	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			compareDummyPassword(params.Password)
			a.logger.Warn("login with unknown email", "service", "HandleLogin")
			respondWithError(w, http.StatusUnauthorized, errInvalidCredentials)
			return
		}
		a.respondWithStoreError(w, err, "HandleLogin")
		return
	}

	if err := bcrypt.ComparePassword(params.Password, user.Password); err != nil {
		a.logger.Warn("login with wrong password", "service", "HandleLogin")
		respondWithError(w, http.StatusUnauthorized, errInvalidCredentials)
		return
	}

	token, err := jwt.CreateJWTToken(user.Id.Hex(), a.config.Jwt_secret)

	if err != nil {
		a.logger.Error(err.Error(), "service", "HandleLogin")
		respondWithError(w, http.StatusInternalServerError, errInternal)
		return
	}

	respondWithSuccess(w, http.StatusOK, models.HandleLoginResponse{Token: token})
}
