package bcrypt

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only looks at the first 72 bytes of a password
const maxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("La contraseña no puede superar los 72 bytes")

var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("biblioteca-placeholder"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("error hashing placeholder password: %v", err))
	}
	return hash
})

func HashPassword(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

func ComparePassword(input_password, user_password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user_password), []byte(input_password)); err != nil {
		return fmt.Errorf("password does not match: %w", err)
	}
	return nil
}

// CompareDummyPassword runs a full cost comparison that always fails. Login calls it
// when no account matches so the response takes as long as a wrong password.
func CompareDummyPassword(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
}
