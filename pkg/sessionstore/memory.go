package sessionstore

import (
	"sync"

	"skill-exchange/internal/model"
)

// MemoryStore 内存实现的会话聊天存储
// Redis未启用时的退路，也用于测试
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]model.ChatMessage
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]model.ChatMessage),
	}
}

// Append 追加一条消息到会话末尾
func (s *MemoryStore) Append(sessionID string, msg *model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], *msg)
	return nil
}

// List 按时间顺序返回会话内全部消息
func (s *MemoryStore) List(sessionID string) ([]model.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	messages := make([]model.ChatMessage, len(s.sessions[sessionID]))
	copy(messages, s.sessions[sessionID])
	return messages, nil
}

// Purge 无条件清除会话内全部消息
func (s *MemoryStore) Purge(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
