package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

const DefaultTTL = 24 * time.Hour

var (
	// ErrMissingSigningKey is a startup-class failure: without the key the
	// service must refuse to issue or accept session tokens at all.
	ErrMissingSigningKey = errors.New("session token signing key missing")

	// ErrInvalidToken is the single outcome surfaced for all verification
	// failures (malformed, signature mismatch, expired). The distinction is
	// logged internally but never shown to the client.
	ErrInvalidToken = errors.New("invalid session token")
)

// SessionClaims is the complete session record. There is no server-side
// session store - the signed token held by the client is the session.
type SessionClaims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-bounded session tokens.
// Both operations are pure functions over the token, the signing key and
// the clock; verification never refreshes or mutates anything.
type TokenService struct {
	signingKey []byte
	ttl        time.Duration
	// ability to inject the clock (for unit testing expiry)
	NowFunc func() time.Time
}

func NewTokenService(signingKey []byte, ttl time.Duration) (*TokenService, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &TokenService{
		signingKey: signingKey,
		ttl:        ttl,
		NowFunc:    time.Now,
	}, nil
}

func (ts *TokenService) TTL() time.Duration {
	return ts.ttl
}

func (ts *TokenService) Issue(role Role) (string, error) {
	if !role.IsValid() {
		return "", fmt.Errorf("issue session token: invalid role [%s]", role)
	}

	now := ts.NowFunc()
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

func (ts *TokenService) Verify(tokenString string) (Role, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return ts.signingKey, nil
		},
		jwt.WithTimeFunc(ts.NowFunc),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		// internal distinction for operability only - the caller gets a
		// single invalid verdict regardless of the reason
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Tracef("session token rejected: expired")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Tracef("session token rejected: signature mismatch")
		default:
			log.Tracef("session token rejected: malformed: %s", err)
		}
		return "", ErrInvalidToken
	}

	if !token.Valid || !claims.Role.IsValid() {
		return "", ErrInvalidToken
	}

	return claims.Role, nil
}
