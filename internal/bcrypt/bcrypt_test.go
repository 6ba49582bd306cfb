package bcrypt

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "password"

	hash, err := HashPassword(password)

	if err != nil {
		t.Fatal(err)
	}

	if hash == password {
		t.Fatal("expected hash to differ from the plain password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		t.Fatalf("Password comparison failed: %v", err)
	}
}

func TestComparePassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("test-password"), bcrypt.MinCost)

	if err := ComparePassword("test-password", string(hash)); err != nil {
		t.Fatal(err)
	}

	if err := ComparePassword("wrong-password", string(hash)); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestHashPasswordRejectsLongPasswords(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "72 bytes", password: strings.Repeat("a", 72)},
		{name: "80 bytes", password: strings.Repeat("a", 80), wantErr: ErrPasswordTooLong},
		{name: "20 four byte runes", password: strings.Repeat("🔒", 20), wantErr: ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HashPassword(tt.password)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDummyHashCostsAsMuchAsARealOne(t *testing.T) {
	cost, err := bcrypt.Cost(dummyHash())

	if err != nil {
		t.Fatal(err)
	}

	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected cost %d, got %d", bcrypt.DefaultCost, cost)
	}

	if err := bcrypt.CompareHashAndPassword(dummyHash(), []byte("biblioteca-placeholder")); err != nil {
		t.Fatal(err)
	}
}
