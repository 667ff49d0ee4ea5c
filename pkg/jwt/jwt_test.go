package jwt

import (
	"testing"
	"time"

	"skill-exchange/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: time.Hour,
		Issuer:     "skill-exchange-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	s := newTestService()

	token, err := s.GenerateToken("user-1", map[string]interface{}{"username": "wei"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "wei", claims.Data["username"])
}

func TestGenerateTokenRequiresUserID(t *testing.T) {
	s := newTestService()

	_, err := s.GenerateToken("", nil)
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	s := newTestService()
	other := NewJWTService(config.JWTConfig{
		Secret:     "another-secret",
		ExpireTime: time.Hour,
		Issuer:     "skill-exchange-test",
	})

	token, err := s.GenerateToken("user-1", nil)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	s := NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: -time.Minute,
		Issuer:     "skill-exchange-test",
	})

	token, err := s.GenerateToken("user-1", nil)
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}
