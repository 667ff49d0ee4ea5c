package service

import (
	"testing"
	"time"

	"skill-exchange/config"
	"skill-exchange/internal/model"
	"skill-exchange/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService() *AuthService {
	jwtSvc := jwt.NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: time.Hour,
		Issuer:     "skill-exchange-test",
	})
	// 镜像库不可用：登录走demo模式
	return NewAuthService(nil, jwtSvc)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestAuthService()

	_, _, err := s.Register("Wei", "", "secret123", "secret123")
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, _, err = s.Register("Wei", "wei@example.com", "", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, _, err = s.Register("Wei", "wei@example.com", "secret123", "different")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegisterCreatesIncompleteRemoteUser(t *testing.T) {
	s := newTestAuthService()

	user, token, err := s.Register("Wei", "wei@example.com", "secret123", "secret123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)

	// 新用户持远端UUID标识，资料未完善
	assert.True(t, model.NewPeerRef(user.ID).IsRemote())
	assert.False(t, user.ProfileCompleted)
	assert.Equal(t, "Wei", user.Name)
	assert.NotEmpty(t, user.Avatar)

	// 密码只存哈希
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestLoginValidation(t *testing.T) {
	s := newTestAuthService()

	_, _, err := s.Login("", "secret123")
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, _, err = s.Login("wei@example.com", "")
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestLoginFallsBackToDemoModeWithoutMirror(t *testing.T) {
	s := newTestAuthService()

	user, token, err := s.Login("wei@example.com", "whatever")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)

	// demo模式标识非UUID：远端操作全部降级为本地no-op
	assert.False(t, model.NewPeerRef(user.ID).IsRemote())
	assert.Equal(t, "wei@example.com", user.Email)
	assert.False(t, user.ProfileCompleted)
}
