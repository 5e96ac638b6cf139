package auth

import (
	"errors"

	"github.com/vaadhorim/portal/pkg"
)

var ErrWrongPassword = errors.New("wrong password")

// Admin holds the single administrative credential record. The hash is set
// via out-of-band configuration and read-only at runtime; the portal has no
// per-user identity table.
type Admin struct {
	PasswordHash string
}

// Service ties the credential verifier to the token issuer: a successful
// bcrypt check is the only way to mint an admin session token.
type Service struct {
	admin  *Admin
	tokens *TokenService
}

func NewService(admin *Admin, tokens *TokenService) *Service {
	return &Service{
		admin:  admin,
		tokens: tokens,
	}
}

func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// Login verifies the submitted password against the stored hash and, on
// success, issues a fresh session token. Any bcrypt failure (malformed hash
// included) is a wrong-password verdict, never an escaping error.
func (s *Service) Login(password string) (string, error) {
	if !pkg.CheckPasswordHash(password, s.admin.PasswordHash) {
		return "", ErrWrongPassword
	}

	token, err := s.tokens.Issue(RoleAdmin)
	if err != nil {
		return "", err
	}

	return token, nil
}
