package repository

import (
	"encoding/json"

	"skill-exchange/internal/model"

	"gorm.io/gorm"
)

// FriendRequestRepository 镜像库好友请求仓储
type FriendRequestRepository struct {
	orm *gorm.DB
}

// NewFriendRequestRepository 创建FriendRequestRepository实例
func NewFriendRequestRepository(db *gorm.DB) *FriendRequestRepository {
	return &FriendRequestRepository{orm: db}
}

// Create 插入好友请求
func (r *FriendRequestRepository) Create(req *model.FriendRequest) error {
	return r.orm.Create(req).Error
}

// GetByID 根据ID获取好友请求
func (r *FriendRequestRepository) GetByID(id string) (*model.FriendRequest, error) {
	var req model.FriendRequest
	if err := r.orm.First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// UpdateStatus 更新请求状态（pending -> accepted/rejected）
func (r *FriendRequestRepository) UpdateStatus(id, status string) error {
	return r.orm.Model(&model.FriendRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListForReceiver 列出发给指定用户的待处理请求
func (r *FriendRequestRepository) ListForReceiver(receiverID string) ([]*model.FriendRequest, error) {
	var reqs []*model.FriendRequest
	err := r.orm.Where("receiver_id = ? AND status = ?", receiverID, model.FriendStatusPending).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// marshalJSON 序列化为JSON字符串（部分更新时切片字段手工编码）
func marshalJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}
