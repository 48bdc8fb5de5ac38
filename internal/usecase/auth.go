package usecase

import (
	"strings"

	domainErrors "github.com/tulamia/orderdesk/internal/domain/errors"
	pkgAuth "github.com/tulamia/orderdesk/internal/pkg/auth"
)

// AuthUseCase handles the admin credential check and token lifecycle. The
// single admin account comes from configuration; its password is hashed
// once at startup.
type AuthUseCase struct {
	login        string
	passwordHash string
	hasher       pkgAuth.PasswordHasher
	tokens       pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase, hashing the configured password.
func NewAuthUseCase(login, password string, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) (*AuthUseCase, error) {
	u := &AuthUseCase{login: strings.TrimSpace(login), hasher: hasher, tokens: strategy}
	if u.login != "" {
		hash, err := hasher.Hash(password)
		if err != nil {
			return nil, err
		}
		u.passwordHash = hash
	}
	return u, nil
}

// Authenticate validates admin credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(login, password string) (string, error) {
	login = strings.TrimSpace(login)
	if u.login == "" || login == "" || password == "" {
		return "", domainErrors.ErrInvalidCredentials
	}
	if login != u.login {
		return "", domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(u.passwordHash, password); err != nil {
		return "", domainErrors.ErrInvalidCredentials
	}
	return u.tokens.IssueToken(pkgAuth.Claims{Subject: login, Admin: true})
}

// Verify parses a token into the capability attached to admin calls. An
// invalid or expired token yields a capability with no rights rather than
// an error, so callers gate uniformly on the Admin flag.
func (u *AuthUseCase) Verify(token string) Capability {
	if token == "" {
		return Capability{}
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return Capability{}
	}
	return Capability{Subject: claims.Subject, Admin: claims.Admin}
}
