package usecase

import (
	"errors"
	"testing"
	"time"

	domainErrors "github.com/tulamia/orderdesk/internal/domain/errors"
	pkgAuth "github.com/tulamia/orderdesk/internal/pkg/auth"
)

func newAuth(t *testing.T) *AuthUseCase {
	t.Helper()
	u, err := NewAuthUseCase("admin", "swordfish", pkgAuth.NewBcryptHasher(4), pkgAuth.NewJWTStrategy("secret", pkgAuth.Options{TTL: time.Minute}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return u
}

func TestAuthenticate(t *testing.T) {
	u := newAuth(t)

	token, err := u.Authenticate("admin", "swordfish")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	c := u.Verify(token)
	if !c.Admin {
		t.Fatal("expected admin capability")
	}
	if c.Subject != "admin" {
		t.Fatalf("unexpected subject %q", c.Subject)
	}
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	u := newAuth(t)

	cases := [][2]string{
		{"admin", "wrong"},
		{"stranger", "swordfish"},
		{"", "swordfish"},
		{"admin", ""},
	}
	for _, c := range cases {
		if _, err := u.Authenticate(c[0], c[1]); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("login %q: expected ErrInvalidCredentials, got %v", c[0], err)
		}
	}
}

func TestAuthenticateWithoutConfiguredAdmin(t *testing.T) {
	u, err := NewAuthUseCase("", "", pkgAuth.NewBcryptHasher(4), pkgAuth.NewJWTStrategy("secret", pkgAuth.Options{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := u.Authenticate("admin", "swordfish"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	u := newAuth(t)

	if c := u.Verify("not-a-token"); c.Admin {
		t.Fatal("garbage token must not grant admin")
	}
	if c := u.Verify(""); c.Admin {
		t.Fatal("empty token must not grant admin")
	}
}
