package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	Issuer        = "biblioteca"
	TokenLifetime = time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

type UserClaims struct {
	Id string `json:"id"`
	*jwt.RegisteredClaims
}

func CreateJWTToken(id string, secret string) (string, error) {
	now := time.Now()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &UserClaims{
		Id: id,
		RegisteredClaims: &jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}).SignedString([]byte(secret))

	if err != nil {
		return "", fmt.Errorf("error creating jwt token: %w", err)
	}

	return token, nil
}

// DecodeJWTToken returns the user id carried by a valid, unexpired HS256 token.
func DecodeJWTToken(token string, secret string) (string, error) {
	claims := &UserClaims{RegisteredClaims: &jwt.RegisteredClaims{}}

	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)

	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	if claims.Id == "" {
		return "", ErrInvalidToken
	}

	return claims.Id, nil
}
