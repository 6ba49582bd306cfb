package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/oseayemenre/biblioteca/internal/models"
)

const maxBodyBytes = 1 << 20

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = validator.New(validator.WithRequiredStructEnabled())

var errInternal = errors.New("internal server error")

// normalizer is implemented by params that clean themselves up before validation.
type normalizer interface {
	Normalize()
}

func respondWithSuccess(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func respondWithError(w http.ResponseWriter, code int, err error) {
	respondWithSuccess(w, code, models.ErrorResponse{Message: err.Error()})
}

func decodeJson(w http.ResponseWriter, r *http.Request, params any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(params); err != nil {
		return fmt.Errorf("error decoding json: %w", err)
	}

	return nil
}

// decodeAndValidate writes the 400 response itself and reports whether the handler may go on.
func (a *Api) decodeAndValidate(w http.ResponseWriter, r *http.Request, params any, service string) bool {
	if err := decodeJson(w, r, params); err != nil {
		a.logger.Warn(err.Error(), "service", service)
		respondWithError(w, http.StatusBadRequest, err)
		return false
	}

	if n, ok := params.(normalizer); ok {
		n.Normalize()
	}

	if err := validate.Struct(params); err != nil {
		a.logger.Warn(fmt.Sprintf("validation error: %v", err), "service", service)
		respondWithError(w, http.StatusBadRequest, fmt.Errorf("validation error: %v", err))
		return false
	}

	return true
}
