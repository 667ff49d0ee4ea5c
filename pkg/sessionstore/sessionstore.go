// Package sessionstore 会话级聊天存储
// 存储内容只在一次登录会话内有效：登出时先导出再无条件清除
// 部署时使用Redis后端，测试或未配置Redis时退回内存实现
package sessionstore

import (
	"skill-exchange/internal/model"
)

// Store 会话级聊天存储接口
// sessionID 为当前登录用户的标识，每个会话一份消息列表
type Store interface {
	// Append 追加一条消息到会话末尾
	Append(sessionID string, msg *model.ChatMessage) error
	// List 按时间顺序返回会话内全部消息
	List(sessionID string) ([]model.ChatMessage, error)
	// Purge 无条件清除会话内全部消息
	Purge(sessionID string) error
}
