package middleware

import (
	"testing"
	"time"

	"vendora/globals"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret []byte, exp time.Time) string {
	t.Helper()
	claims := &Claims{
		Username: "alice",
		UserID:   "u1",
		Role:     []string{"user"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestValidateRawJWT(t *testing.T) {
	token := signToken(t, globals.JwtSecret, time.Now().Add(time.Hour))

	claims, err := ValidateRawJWT(token)
	if err != nil {
		t.Fatalf("ValidateRawJWT: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "alice" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateRawJWTRejectsBadTokens(t *testing.T) {
	if _, err := ValidateRawJWT(""); err == nil {
		t.Error("empty token accepted")
	}
	if _, err := ValidateRawJWT("not-a-token"); err == nil {
		t.Error("malformed token accepted")
	}
	if _, err := ValidateRawJWT(signToken(t, []byte("wrong secret"), time.Now().Add(time.Hour))); err == nil {
		t.Error("token signed with wrong secret accepted")
	}
	if _, err := ValidateRawJWT(signToken(t, globals.JwtSecret, time.Now().Add(-time.Hour))); err == nil {
		t.Error("expired token accepted")
	}
}
