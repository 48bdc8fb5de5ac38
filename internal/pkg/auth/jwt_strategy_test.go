package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewJWTStrategy_DefaultTTL(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if strategy == nil {
		t.Fatal("expected strategy instance")
	}
	if string(strategy.secret) != "secret" {
		t.Fatalf("unexpected secret: %q", string(strategy.secret))
	}
	if strategy.ttl != 24*time.Hour {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestNewJWTStrategy_CustomTTL(t *testing.T) {
	ttl := 2 * time.Hour
	strategy := NewJWTStrategy("secret", Options{TTL: ttl})
	if strategy.ttl != ttl {
		t.Fatalf("unexpected ttl: %s", strategy.ttl)
	}
}

func TestJWTStrategy_IssueAndParse(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(Claims{Subject: "admin", Admin: true})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	claims, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != "admin" {
		t.Fatalf("unexpected subject: %q", claims.Subject)
	}
	if !claims.Admin {
		t.Fatal("expected admin claim to survive round trip")
	}
}

func TestJWTStrategy_NonAdminHasNoRole(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	token, err := strategy.IssueToken(Claims{Subject: "viewer"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	claims, err := strategy.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Admin {
		t.Fatal("expected non-admin claims")
	}
}

func TestJWTStrategy_ParseGarbage(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if _, err := strategy.ParseToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_ParseWrongSecret(t *testing.T) {
	issuer := NewJWTStrategy("secret", Options{TTL: time.Minute})
	token, err := issuer.IssueToken(Claims{Subject: "admin", Admin: true})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	verifier := NewJWTStrategy("other-secret", Options{})
	if _, err := verifier.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_ParseExpired(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	expired := tokenClaims{
		Role: roleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_RejectsUnexpectedSigningMethod(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "admin"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := strategy.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTStrategy_Name(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})
	if strategy.Name() != "jwt" {
		t.Fatalf("unexpected name: %q", strategy.Name())
	}
}
