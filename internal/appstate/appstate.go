// Package appstate 会话/应用状态控制器
//
// 整个应用中“谁在登录、当前在哪个页面”的唯一事实来源。
// 所有变更命令（登录、登出、资料完善、好友请求、发消息）都经过控制器，
// 本地状态同步落盘后立即生效；远端镜像全部异步尽力而为，
// 失败只进日志，永远不会反馈给调用方。
//
// 认证/资料状态机：
//
//	anonymous -> authenticated-incomplete（登录/注册，资料未完善）
//	authenticated-incomplete -> authenticated-complete（资料完善）
//	任意已认证状态 -> anonymous（登出，无条件生效）
package appstate

import (
	"errors"
	"sync"
	"time"

	"skill-exchange/config"
	"skill-exchange/internal/model"
	"skill-exchange/pkg/localstore"
	"skill-exchange/pkg/logger"
	"skill-exchange/pkg/sessionstore"

	"go.uber.org/zap"
)

// ErrDailyLimitReached 今日连接额度已用完
var ErrDailyLimitReached = errors.New("今日连接额度已用完")

// Remote 远端身份/资料协作方（托管后端）
// 所有方法只会在分离的goroutine中被调用，错误只进日志
type Remote interface {
	UpsertUser(u *model.User) error
	UpdateUser(id string, upd model.UserUpdate, profileCompleted *bool) error
	InsertFriendRequest(req *model.FriendRequest) error
	UpdateFriendRequestStatus(id, status string) error
	SignOut(userID string) error
}

// Exporter 登出时导出会话聊天记录
type Exporter interface {
	Export(user *model.User, messages []model.ChatMessage) error
}

// Pusher 在线推送（WebSocket），nil时不推送
type Pusher interface {
	SendToUser(userID string, data []byte)
}

// Snapshot 提交后的状态快照，订阅者只读
type Snapshot struct {
	User          *model.User
	Page          model.Page
	Authenticated bool
}

// Subscriber 状态订阅回调
// 用户记录的变更总是先于页面变更落盘，回调中看到的快照是一致的
type Subscriber func(Snapshot)

// Controller 会话/应用状态控制器
// 互斥锁串行化全部命令：逻辑上只有一个写入方
type Controller struct {
	mu sync.Mutex

	cfg      config.SessionConfig
	local    *localstore.Store
	session  sessionstore.Store
	remote   Remote
	exporter Exporter
	pusher   Pusher

	user *model.User
	page model.Page
	subs []Subscriber

	// 测试用：true时镜像调用同步执行
	syncMirror bool
}

// Option 控制器可选配置
type Option func(*Controller)

// WithPusher 设置在线推送
func WithPusher(p Pusher) Option {
	return func(c *Controller) { c.pusher = p }
}

// WithSynchronousMirror 镜像调用改为同步执行（测试用）
func WithSynchronousMirror() Option {
	return func(c *Controller) { c.syncMirror = true }
}

// New 创建控制器并恢复上一次会话
// 本地存储中有用户记录时视为页面刷新：直接恢复登录态并按资料完善度定页
func New(cfg config.SessionConfig, local *localstore.Store, session sessionstore.Store,
	remote Remote, exporter Exporter, opts ...Option) *Controller {

	c := &Controller{
		cfg:      cfg,
		local:    local,
		session:  session,
		remote:   remote,
		exporter: exporter,
		page:     model.PageLanding,
	}
	for _, opt := range opts {
		opt(c)
	}

	if saved := local.LoadUser(); saved != nil {
		c.user = saved
		if saved.ProfileCompleted {
			c.page = model.PageDashboard
		} else {
			c.page = model.PageProfileSetup
		}
		logger.Info("恢复上次会话",
			zap.String("user_id", saved.ID),
			zap.Bool("profile_completed", saved.ProfileCompleted),
		)
	}

	return c
}

// Subscribe 注册状态订阅
// 每次命令提交后按注册顺序回调
func (c *Controller) Subscribe(fn Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

// CurrentUser 当前用户快照（未登录时为nil）
func (c *Controller) CurrentUser() *model.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user.Clone()
}

// CurrentPage 当前页面标识
func (c *Controller) CurrentPage() model.Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// IsAuthenticated 是否已登录
func (c *Controller) IsAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user != nil
}

// Friends 本地好友列表
func (c *Controller) Friends() []model.Friend {
	return c.local.LoadFriends()
}

// Messages 当前会话的聊天消息
func (c *Controller) Messages() []model.ChatMessage {
	c.mu.Lock()
	user := c.user
	c.mu.Unlock()
	if user == nil {
		return nil
	}

	messages, err := c.session.List(user.ID)
	if err != nil {
		logger.Warn("读取会话消息失败", zap.Error(err))
		return nil
	}
	return messages
}

// ConnectionsToday 今日已用连接数与上限
func (c *Controller) ConnectionsToday() (used, limit int) {
	return c.local.ConnectionsToday(time.Now()), c.cfg.DailyConnectionLimit
}

// snapshotLocked 构造一致性快照，须持锁调用
func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		User:          c.user.Clone(),
		Page:          c.page,
		Authenticated: c.user != nil,
	}
}

// notifyLocked 通知全部订阅者，须持锁调用
// 快照在通知前构造完毕：用户变更先于页面变更可见
func (c *Controller) notifyLocked() {
	snap := c.snapshotLocked()
	for _, fn := range c.subs {
		fn(snap)
	}
}

// mirror 分离执行一次远端镜像调用
// 失败只进日志；调用方不等待、不感知结果，本地状态不受影响
func (c *Controller) mirror(op string, fn func() error) {
	if c.remote == nil {
		return
	}

	run := func() {
		if err := fn(); err != nil {
			logger.Warn("远端镜像失败，本地状态不受影响",
				zap.String("op", op),
				zap.Error(err),
			)
		}
	}

	if c.syncMirror {
		run()
		return
	}
	go run()
}
