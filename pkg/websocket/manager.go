package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client 代表一个WebSocket连接的用户
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager 管理所有在线用户的WebSocket连接
// 聊天是会话级的：用户不在线消息直接丢弃，没有离线队列
type Manager struct {
	clients map[string]*Client // 在线用户
	lock    sync.RWMutex
}

var manager = &Manager{
	clients: make(map[string]*Client),
}

// GetManager 获取全局WebSocket管理器
func GetManager() *Manager {
	return manager
}

// AddClient 添加新连接（同一用户重复连接时旧连接被替换）
func (m *Manager) AddClient(userID string, client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if old, ok := m.clients[userID]; ok {
		close(old.Send)
	}
	m.clients[userID] = client
}

// RemoveClient 移除连接
// 只移除自己的注册项：连接已被同一用户的新连接替换时不做处理
func (m *Manager) RemoveClient(userID string, client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if c, ok := m.clients[userID]; ok && c == client {
		close(c.Send)
		delete(m.clients, userID)
	}
}

// SendToUser 推送消息给指定用户
// 不在线或发送缓冲已满时直接丢弃
func (m *Manager) SendToUser(userID string, msg []byte) {
	m.lock.RLock()
	client, ok := m.clients[userID]
	m.lock.RUnlock()
	if !ok {
		return
	}
	select {
	case client.Send <- msg:
	default:
		// 发送缓冲已满，可能连接已断开
	}
}

// IsOnline 判断用户是否在线
func (m *Manager) IsOnline(userID string) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// OnlineCount 当前在线连接数
func (m *Manager) OnlineCount() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return len(m.clients)
}
