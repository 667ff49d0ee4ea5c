package model

import (
	"time"
)

// 好友请求状态
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
	FriendStatusRejected = "rejected"
)

// Friend 本地好友列表中的一条记录（仅保存accepted关系）
// 存放在本地持久存储，JSON数组编码
type Friend struct {
	User
	Status         string    `json:"status"`
	FriendshipDate time.Time `json:"friendshipDate"`
}

// FriendRequest 好友请求（镜像库 friend_request 表）
// ID 为UUID字符串，与远端实体的标识格式一致
// Status: pending/accepted/rejected
type FriendRequest struct {
	ID         string    `json:"id" gorm:"type:varchar(64);primaryKey"`
	SenderID   string    `json:"senderId" gorm:"type:varchar(64);not null;index"`
	ReceiverID string    `json:"receiverId" gorm:"type:varchar(64);not null;index"`
	Message    string    `json:"message" gorm:"type:text"`
	Status     string    `json:"status" gorm:"type:varchar(32);default:'pending'"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (FriendRequest) TableName() string { return "friend_request" }
