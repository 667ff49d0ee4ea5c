package model

import (
	"time"
)

// ChatMessage 会话级聊天消息
// 只存在于一次会话期间：登出时先导出再无条件清除，绝不跨会话持久化
type ChatMessage struct {
	ID          int64     `json:"id"` // 发送时刻的毫秒时间戳
	SenderID    string    `json:"senderId"`
	SenderName  string    `json:"senderName"`
	RecipientID string    `json:"recipientId"`
	Content     string    `json:"content"`
	SentAt      time.Time `json:"sentAt"`
}
