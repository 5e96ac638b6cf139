package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	passwordHash, err := HashPassword("vaad")
	require.NoError(t, err)
	assert.NotEmpty(t, passwordHash)
	assert.True(t, CheckPasswordHash("vaad", passwordHash))
	assert.False(t, CheckPasswordHash("vaad2", passwordHash))
}

func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	// a broken stored hash must be a failed check, not a panic or a pass
	assert.False(t, CheckPasswordHash("vaad", "not-a-bcrypt-hash"))
	assert.False(t, CheckPasswordHash("vaad", ""))
}
