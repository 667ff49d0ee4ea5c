package service

import (
	"strings"

	"skill-exchange/internal/model"
	"skill-exchange/internal/repository"
	"skill-exchange/pkg/logger"

	"go.uber.org/zap"
)

// DirectoryService 技能广场：浏览/检索其他用户提供的技能
// 数据来自镜像库；镜像库不可用或为空时退回本地演示资料（demo模式）
type DirectoryService struct {
	users *repository.UserRepository // 可为nil
}

// NewDirectoryService 创建DirectoryService实例
func NewDirectoryService(users *repository.UserRepository) *DirectoryService {
	return &DirectoryService{users: users}
}

// Explore 浏览技能广场
// excludeID 为当前用户标识，结果中剔除自己
func (s *DirectoryService) Explore(excludeID string, limit int) []*model.User {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	if s.users != nil {
		users, err := s.users.ListCompleted(limit + 1)
		if err != nil {
			logger.Warn("镜像库浏览用户失败，退回演示数据", zap.Error(err))
		} else if len(users) > 0 {
			return exclude(users, excludeID, limit)
		}
	}

	return exclude(demoPool(), excludeID, limit)
}

// Search 按技能/姓名关键字检索
func (s *DirectoryService) Search(excludeID, keyword string, limit int) []*model.User {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.Explore(excludeID, limit)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	if s.users != nil {
		users, err := s.users.SearchBySkill(keyword, limit+1)
		if err != nil {
			logger.Warn("镜像库检索用户失败，退回演示数据", zap.Error(err))
		} else if len(users) > 0 {
			return exclude(users, excludeID, limit)
		}
	}

	// demo模式：在演示资料中做大小写不敏感匹配
	var matched []*model.User
	lower := strings.ToLower(keyword)
	for _, u := range demoPool() {
		if matchUser(u, lower) {
			matched = append(matched, u)
		}
	}
	return exclude(matched, excludeID, limit)
}

// demoPool 演示资料池：平台创建者 + 内置演示用户
func demoPool() []*model.User {
	return append([]*model.User{model.CreatorProfile()}, model.DemoProfiles()...)
}

// matchUser 关键字匹配姓名或技能
func matchUser(u *model.User, lowerKeyword string) bool {
	if strings.Contains(strings.ToLower(u.Name), lowerKeyword) {
		return true
	}
	for _, skill := range u.Skills {
		if strings.Contains(strings.ToLower(skill), lowerKeyword) {
			return true
		}
	}
	return false
}

// exclude 剔除指定用户并截断到limit
func exclude(users []*model.User, excludeID string, limit int) []*model.User {
	result := make([]*model.User, 0, len(users))
	for _, u := range users {
		if u.ID == excludeID {
			continue
		}
		result = append(result, u)
		if len(result) >= limit {
			break
		}
	}
	return result
}
