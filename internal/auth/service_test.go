package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var (
	testPassword     = "testpass"
	testPasswordHash = "$2a$14$6Gmhg85si2etd3K9oB8nYu1cxfbrdmhkg6wI6OXsa88IF4L2r/L9i" // testpass
	testAdmin        = &Admin{
		PasswordHash: testPasswordHash,
	}
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testService(t *testing.T) *Service {
	t.Helper()
	tokens, err := NewTokenService([]byte("test-signing-key"), DefaultTTL)
	require.NoError(t, err)
	return NewService(testAdmin, tokens)
}

func TestService_Login(t *testing.T) {
	service := testService(t)

	token, err := service.Login(testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	role, err := service.Tokens().Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)
}

func TestService_Login_WrongPassword(t *testing.T) {
	service := testService(t)

	for _, password := range []string{"wrongpass", "", "testpass ", "Testpass"} {
		_, err := service.Login(password)
		assert.ErrorIs(t, err, ErrWrongPassword, "password: %q", password)
	}
}

func TestService_Login_MalformedHash(t *testing.T) {
	tokens, err := NewTokenService([]byte("test-signing-key"), DefaultTTL)
	require.NoError(t, err)
	service := NewService(&Admin{PasswordHash: "not-a-bcrypt-hash"}, tokens)

	_, err = service.Login(testPassword)
	assert.ErrorIs(t, err, ErrWrongPassword)
}
