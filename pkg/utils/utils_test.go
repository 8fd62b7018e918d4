package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashPassword(t *testing.T) {
	password := "correct horse battery"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if hash == password {
		t.Fatal("Expected hash to differ from password")
	}

	if !CheckPassword(password, hash) {
		t.Errorf("Expected password check to pass")
	}
	if CheckPassword("wrongpassword", hash) {
		t.Errorf("Expected password check to fail")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	secret := "supersecret"

	token, err := GenerateToken("123", "user", secret)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if claims.UserID != "123" || claims.Role != "user" {
		t.Errorf("Unexpected claims %+v", claims)
	}

	if _, err := ValidateToken(token, "wrongsecret"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken with wrong secret, got %v", err)
	}
}

func TestValidateTokenRejectsExpiredAndForeignAlgorithms(t *testing.T) {
	secret := "supersecret"

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: "123",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ValidateToken(signed, secret); err == nil {
		t.Error("Expected expired token to be rejected")
	}

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "123", Role: "user"})
	signed, err = hs512.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ValidateToken(signed, secret); err == nil {
		t.Error("Expected HS512 token to be rejected")
	}
}
