package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, Verify("secret123", hash))
	assert.False(t, Verify("wrong", hash))
}

func TestHashRejectsShortPassword(t *testing.T) {
	_, err := Hash("12345")
	assert.ErrorIs(t, err, ErrTooShort)
}
