package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/oseayemenre/biblioteca/internal/jwt"
)

type contextKey string

const userIdContextKey contextKey = "userId"

var errMissingToken = errors.New("missing bearer token")

type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriterWrapper(w http.ResponseWriter) *responseWriterWrapper {
	return &responseWriterWrapper{ResponseWriter: w, statusCode: http.StatusOK}
}

func (w *responseWriterWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (a *Api) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := newResponseWriterWrapper(w)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		a.logger.Info(
			"request",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.String()),
			slog.Int("status", ww.statusCode),
			slog.String("duration", duration.String()),
			slog.String("remote_addr", r.RemoteAddr),
			slog.String("user_agent", r.UserAgent()),
		)
	})
}

// Authenticate requires a valid "Authorization: Bearer <token>" header and puts the user id in the request context.
func (a *Api) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)

		if !ok {
			a.logger.Warn(errMissingToken.Error(), "status", "permission denied")
			respondWithError(w, http.StatusUnauthorized, errMissingToken)
			return
		}

		id, err := jwt.DecodeJWTToken(token, a.config.Jwt_secret)

		if err != nil {
			a.logger.Warn(err.Error(), "status", "permission denied")
			respondWithError(w, http.StatusUnauthorized, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIdContextKey, id)))
	})
}

// RequireAuth guards mutating routes only when AUTH_REQUIRED is on.
func (a *Api) RequireAuth(next http.Handler) http.Handler {
	if a.config == nil || !a.config.Auth_required {
		return next
	}
	return a.Authenticate(next)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")

	scheme, token, found := strings.Cut(header, " ")

	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

func userIdFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIdContextKey).(string)
	return id, ok
}
