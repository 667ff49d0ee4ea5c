package service

import (
	"errors"
	"fmt"
	"strings"

	"skill-exchange/internal/model"
	"skill-exchange/internal/repository"
	"skill-exchange/pkg/jwt"
	"skill-exchange/pkg/logger"
	"skill-exchange/pkg/password"

	"go.uber.org/zap"
)

// 表单校验错误：同步返回给调用方，不产生任何状态变更
var (
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordMismatch   = errors.New("password confirmation does not match")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService 注册/登录
// 校验失败同步报错；托管后端不可用时登录降级为demo模式（本地演示用户）
type AuthService struct {
	users      *repository.UserRepository // 镜像库用户仓储，可为nil
	jwtService *jwt.JWTService
}

// NewAuthService 创建AuthService实例
func NewAuthService(users *repository.UserRepository, jwtService *jwt.JWTService) *AuthService {
	return &AuthService{users: users, jwtService: jwtService}
}

// Register 注册
// 返回一个资料未完善的新用户（远端UUID标识）与访问令牌
// 镜像库写入失败只记日志：本地会话照常建立
func (s *AuthService) Register(name, email, plainPassword, confirm string) (*model.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if email == "" {
		return nil, "", ErrEmailRequired
	}
	if plainPassword == "" {
		return nil, "", ErrPasswordRequired
	}
	if plainPassword != confirm {
		return nil, "", ErrPasswordMismatch
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		ID:           model.NewRemoteID(),
		Name:         name,
		Email:        email,
		Avatar:       avatarFor(name, email),
		PasswordHash: hash,
		// 新用户资料未完善，登录后强制进入资料设置页
		ProfileCompleted: false,
	}

	// 凭据尽力写入托管后端；失败不阻止本地会话
	if s.users != nil {
		if err := s.users.Upsert(user); err != nil {
			logger.Warn("注册信息写入镜像库失败", zap.Error(err))
		}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 登录
// 镜像库可用时校验凭据；不可用时降级为demo模式，
// 使用本地演示标识建立会话（不做远端镜像）
func (s *AuthService) Login(email, plainPassword string) (*model.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, "", ErrEmailRequired
	}
	if plainPassword == "" {
		return nil, "", ErrPasswordRequired
	}

	if s.users != nil {
		u, err := s.users.GetByEmail(email)
		if err == nil {
			if !password.Verify(plainPassword, u.PasswordHash) {
				return nil, "", ErrInvalidCredentials
			}
			token, err := s.issueToken(u)
			if err != nil {
				return nil, "", err
			}
			return u, token, nil
		}
		logger.Warn("镜像库查询用户失败，降级为demo模式", zap.Error(err))
	}

	// demo模式：非UUID标识，所有远端操作自动降级为本地no-op
	user := &model.User{
		ID:     "local-" + strings.ReplaceAll(email, "@", "-at-"),
		Email:  email,
		Avatar: avatarFor("", email),
	}
	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// issueToken 签发访问令牌
func (s *AuthService) issueToken(u *model.User) (string, error) {
	token, err := s.jwtService.GenerateToken(u.ID, map[string]interface{}{
		"username": u.Username,
		"email":    u.Email,
	})
	if err != nil {
		return "", fmt.Errorf("签发令牌失败: %w", err)
	}
	return token, nil
}

// avatarFor 生成默认头像地址
func avatarFor(name, email string) string {
	seed := name
	if seed == "" {
		seed = email
	}
	return "https://api.dicebear.com/7.x/notionists/svg?seed=" + strings.ReplaceAll(seed, " ", "")
}
