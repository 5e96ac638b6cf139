package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_New(t *testing.T) {
	_, err := NewTokenService(nil, DefaultTTL)
	assert.ErrorIs(t, err, ErrMissingSigningKey)

	_, err = NewTokenService([]byte{}, DefaultTTL)
	assert.ErrorIs(t, err, ErrMissingSigningKey)

	ts, err := NewTokenService([]byte("test-signing-key-1"), DefaultTTL)
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, ts.TTL())
}

func TestTokenService_IssueVerifyRoundTrip(t *testing.T) {
	ts, err := NewTokenService([]byte("test-signing-key-2"), DefaultTTL)
	require.NoError(t, err)

	token, err := ts.Issue(RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	role, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)
}

func TestTokenService_Issue_InvalidRole(t *testing.T) {
	ts, err := NewTokenService([]byte("test-signing-key-3"), DefaultTTL)
	require.NoError(t, err)

	_, err = ts.Issue(Role("superuser"))
	assert.Error(t, err)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	ts, err := NewTokenService([]byte("test-signing-key-4"), time.Hour)
	require.NoError(t, err)

	issuedAt := time.Now()
	ts.NowFunc = func() time.Time { return issuedAt }
	token, err := ts.Issue(RoleAdmin)
	require.NoError(t, err)

	// still fine just before expiry
	ts.NowFunc = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, err = ts.Verify(token)
	require.NoError(t, err)

	ts.NowFunc = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_ZeroTTL(t *testing.T) {
	ts, err := NewTokenService([]byte("test-signing-key-5"), 0)
	require.NoError(t, err)

	token, err := ts.Issue(RoleAdmin)
	require.NoError(t, err)

	// expires the moment it is issued
	_, err = ts.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_Tampered(t *testing.T) {
	ts, err := NewTokenService([]byte("test-signing-key-6"), DefaultTTL)
	require.NoError(t, err)

	token, err := ts.Issue(RoleAdmin)
	require.NoError(t, err)

	// flip one character in the payload segment
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = ts.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_WrongKey(t *testing.T) {
	issuer, err := NewTokenService([]byte("key-one"), DefaultTTL)
	require.NoError(t, err)
	verifier, err := NewTokenService([]byte("key-two"), DefaultTTL)
	require.NoError(t, err)

	token, err := issuer.Issue(RoleAdmin)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	ts, err := NewTokenService([]byte("test-signing-key-7"), DefaultTTL)
	require.NoError(t, err)

	for _, tokenString := range []string{
		"",
		"not-a-token",
		"a.b.c",
		"eyJhbGciOiJub25lIn0.eyJyb2xlIjoiYWRtaW4ifQ.",
	} {
		_, err = ts.Verify(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken, "token: %q", tokenString)
	}
}
