package localstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"skill-exchange/internal/model"
	"skill-exchange/pkg/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// 本地持久存储的键名
const (
	KeyUser               = "currentUser"        // 当前用户记录（JSON）
	KeyFriends            = "userFriends"        // 好友列表（JSON数组）
	KeyConnectionsToday   = "connectionsToday"   // 今日已用连接数（字符串整数）
	KeyLastConnectionDate = "lastConnectionDate" // 上次计数重置日期
)

const dateLayout = "2006-01-02"

// Store 本地持久键值存储（sqlite单文件）
// 对应浏览器localStorage的角色：读-改-写，无跨键事务保证
// 损坏的JSON条目按不存在处理并回退默认值
type Store struct {
	db *sqlx.DB
}

// Open 打开（必要时创建）本地存储
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("创建本地存储目录失败: %w", err)
	}

	dbName := filepath.Join(dataDir, "local.db")
	db, err := sqlx.Connect("sqlite3", "file:"+dbName)
	if err != nil {
		return nil, fmt.Errorf("打开本地存储失败: %w", err)
	}

	if _, err := db.Exec(`create table if not exists kv(
		k text not null primary key,
		v text not null
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("初始化kv表失败: %w", err)
	}

	return &Store{db: db}, nil
}

// Close 关闭本地存储
func (s *Store) Close() error {
	return s.db.Close()
}

// Get 读取键值，键不存在时第二个返回值为false
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.Get(&value, `select v from kv where k = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("读取键 %s 失败: %w", key, err)
	}
	return value, true, nil
}

// Put 写入键值（upsert，后写覆盖先写）
func (s *Store) Put(key, value string) error {
	_, err := s.db.Exec(`insert into kv(k, v) values(?, ?)
		on conflict(k) do update set v = excluded.v`, key, value)
	if err != nil {
		return fmt.Errorf("写入键 %s 失败: %w", key, err)
	}
	return nil
}

// Delete 删除键（键不存在不算错误）
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`delete from kv where k = ?`, key); err != nil {
		return fmt.Errorf("删除键 %s 失败: %w", key, err)
	}
	return nil
}

// SaveUser 持久化当前用户记录
func (s *Store) SaveUser(u *model.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("序列化用户记录失败: %w", err)
	}
	return s.Put(KeyUser, string(data))
}

// LoadUser 读取持久化的用户记录
// 不存在或JSON损坏时返回nil（损坏条目同时被丢弃）
func (s *Store) LoadUser() *model.User {
	raw, ok, err := s.Get(KeyUser)
	if err != nil || !ok {
		return nil
	}

	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		logger.Warn("本地用户记录损坏，已丢弃", zap.Error(err))
		_ = s.Delete(KeyUser)
		return nil
	}
	return &u
}

// DeleteUser 清除持久化的用户记录
func (s *Store) DeleteUser() error {
	return s.Delete(KeyUser)
}

// SaveFriends 持久化好友列表
func (s *Store) SaveFriends(friends []model.Friend) error {
	data, err := json.Marshal(friends)
	if err != nil {
		return fmt.Errorf("序列化好友列表失败: %w", err)
	}
	return s.Put(KeyFriends, string(data))
}

// LoadFriends 读取好友列表，不存在或损坏时返回空列表
func (s *Store) LoadFriends() []model.Friend {
	raw, ok, err := s.Get(KeyFriends)
	if err != nil || !ok {
		return []model.Friend{}
	}

	var friends []model.Friend
	if err := json.Unmarshal([]byte(raw), &friends); err != nil {
		logger.Warn("本地好友列表损坏，已丢弃", zap.Error(err))
		_ = s.Delete(KeyFriends)
		return []model.Friend{}
	}
	return friends
}

// AddFriendIfAbsent 按对端标识幂等插入好友
// 已存在同标识好友时不做任何修改，返回是否真正插入
func (s *Store) AddFriendIfAbsent(f model.Friend) (bool, error) {
	friends := s.LoadFriends()
	for _, existing := range friends {
		if existing.ID == f.ID {
			return false, nil
		}
	}
	friends = append(friends, f)
	if err := s.SaveFriends(friends); err != nil {
		return false, err
	}
	return true, nil
}

// ConnectionsToday 读取今日已用连接数
// 存储日期与今天不同（或条目损坏）时重置为0
func (s *Store) ConnectionsToday(now time.Time) int {
	today := now.Format(dateLayout)

	lastDate, _, _ := s.Get(KeyLastConnectionDate)
	if lastDate != today {
		_ = s.Put(KeyConnectionsToday, "0")
		_ = s.Put(KeyLastConnectionDate, today)
		return 0
	}

	raw, ok, err := s.Get(KeyConnectionsToday)
	if err != nil || !ok {
		return 0
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		logger.Warn("本地连接计数损坏，已重置", zap.String("value", raw))
		_ = s.Put(KeyConnectionsToday, "0")
		return 0
	}
	return count
}

// IncrementConnections 消耗一次今日连接额度，返回消耗后的计数
func (s *Store) IncrementConnections(now time.Time) (int, error) {
	count := s.ConnectionsToday(now) + 1
	if err := s.Put(KeyConnectionsToday, strconv.Itoa(count)); err != nil {
		return count - 1, err
	}
	if err := s.Put(KeyLastConnectionDate, now.Format(dateLayout)); err != nil {
		return count, err
	}
	return count, nil
}
