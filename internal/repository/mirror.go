package repository

import (
	"fmt"
	"time"

	"skill-exchange/internal/model"

	"gorm.io/gorm"
)

// Mirror 远端镜像适配器，实现 appstate.Remote
// 镜像库未连接时所有调用返回错误，由控制器记日志后吞掉
type Mirror struct {
	users    *UserRepository
	requests *FriendRequestRepository
	db       *gorm.DB
}

// NewMirror 创建镜像适配器（db为nil时所有操作返回未连接错误）
func NewMirror(db *gorm.DB) *Mirror {
	m := &Mirror{db: db}
	if db != nil {
		m.users = NewUserRepository(db)
		m.requests = NewFriendRequestRepository(db)
	}
	return m
}

func (m *Mirror) ready() error {
	if m.db == nil {
		return fmt.Errorf("镜像数据库未连接")
	}
	return nil
}

// UpsertUser 同步用户资料到镜像库
func (m *Mirror) UpsertUser(u *model.User) error {
	if err := m.ready(); err != nil {
		return err
	}
	return m.users.Upsert(u)
}

// UpdateUser 同步部分资料更新到镜像库
func (m *Mirror) UpdateUser(id string, upd model.UserUpdate, profileCompleted *bool) error {
	if err := m.ready(); err != nil {
		return err
	}
	return m.users.UpdateFields(id, upd, profileCompleted)
}

// InsertFriendRequest 同步好友请求到镜像库
func (m *Mirror) InsertFriendRequest(req *model.FriendRequest) error {
	if err := m.ready(); err != nil {
		return err
	}
	return m.requests.Create(req)
}

// UpdateFriendRequestStatus 同步好友请求状态变更到镜像库
func (m *Mirror) UpdateFriendRequestStatus(id, status string) error {
	if err := m.ready(); err != nil {
		return err
	}
	return m.requests.UpdateStatus(id, status)
}

// SignOut 记录用户最近离线时间
func (m *Mirror) SignOut(userID string) error {
	if err := m.ready(); err != nil {
		return err
	}
	return m.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("updated_at", time.Now()).Error
}
