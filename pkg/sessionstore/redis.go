package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skill-exchange/internal/model"

	"github.com/redis/go-redis/v9"
)

// 会话聊天相关常量
const (
	chatKeyPrefix = "se:session:chat:" // 会话聊天列表key前缀
)

// RedisStore Redis后端的会话聊天存储
// 每个会话一个列表key，RPUSH保持时间顺序，TTL兜底清理异常退出残留
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	ctx    context.Context
}

// NewRedisStore 创建Redis会话存储
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		ctx:    context.Background(),
	}
}

func (s *RedisStore) key(sessionID string) string {
	return chatKeyPrefix + sessionID
}

// Append 追加一条消息到会话末尾
func (s *RedisStore) Append(sessionID string, msg *model.ChatMessage) error {
	if s.client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("序列化会话消息失败: %w", err)
	}

	key := s.key(sessionID)
	if err := s.client.RPush(s.ctx, key, data).Err(); err != nil {
		return fmt.Errorf("追加会话消息失败: %w", err)
	}

	// 刷新TTL：正常登出会主动Purge，TTL只兜底浏览器崩溃等异常退出
	if err := s.client.Expire(s.ctx, key, s.ttl).Err(); err != nil {
		return fmt.Errorf("设置会话消息TTL失败: %w", err)
	}

	return nil
}

// List 按时间顺序返回会话内全部消息
func (s *RedisStore) List(sessionID string) ([]model.ChatMessage, error) {
	if s.client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}

	items, err := s.client.LRange(s.ctx, s.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("读取会话消息失败: %w", err)
	}

	messages := make([]model.ChatMessage, 0, len(items))
	for _, item := range items {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			// 损坏的条目跳过，不影响其余消息
			continue
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

// Purge 无条件清除会话内全部消息
func (s *RedisStore) Purge(sessionID string) error {
	if s.client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	if err := s.client.Del(s.ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("清除会话消息失败: %w", err)
	}
	return nil
}
