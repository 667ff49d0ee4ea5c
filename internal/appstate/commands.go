package appstate

import (
	"encoding/json"
	"time"

	"skill-exchange/internal/model"
	"skill-exchange/pkg/logger"

	"go.uber.org/zap"
)

// Login 登录/注册成功后写入会话用户
// 对调用方永不失败：本地落盘失败、远端镜像失败都只进日志。
// 资料未完善路由到资料设置页，否则进入主页面
func (c *Controller) Login(u *model.User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.user = u.Clone()

	// 先落盘用户记录，再变更页面：订阅者不会看到"已登录但页面错位"的中间态
	if err := c.local.SaveUser(c.user); err != nil {
		logger.Error("持久化用户记录失败", zap.Error(err))
	}

	if c.user.ProfileCompleted {
		c.page = model.PageDashboard
		// 刷新/重登的已完善用户同样保证平台创建者好友存在
		c.ensureCreatorFriendLocked()
	} else {
		c.page = model.PageProfileSetup
	}

	if model.NewPeerRef(c.user.ID).IsRemote() {
		user := c.user.Clone()
		c.mirror("upsert_user", func() error {
			return c.remote.UpsertUser(user)
		})
	}

	logger.Info("用户登录",
		zap.String("user_id", c.user.ID),
		zap.Bool("profile_completed", c.user.ProfileCompleted),
	)

	c.notifyLocked()
}

// CompleteProfile 完善资料
// 未登录时为no-op；合并字段、置完善标记、幂等插入平台创建者好友，
// 然后路由到主页面
func (c *Controller) CompleteProfile(upd model.UserUpdate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return
	}

	c.user.Apply(upd)
	c.user.ProfileCompleted = true

	if err := c.local.SaveUser(c.user); err != nil {
		logger.Error("持久化用户记录失败", zap.Error(err))
	}

	c.ensureCreatorFriendLocked()

	if model.NewPeerRef(c.user.ID).IsRemote() {
		userID := c.user.ID
		completed := true
		c.mirror("complete_profile", func() error {
			return c.remote.UpdateUser(userID, upd, &completed)
		})
	}

	logger.Info("用户资料已完善", zap.String("user_id", c.user.ID))

	c.page = model.PageDashboard
	c.notifyLocked()
}

// UpdateUser 部分更新用户资料
// 未登录时为no-op，不触发任何存储写入；远端更新机会性执行，绝不阻塞本地
func (c *Controller) UpdateUser(upd model.UserUpdate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return
	}

	c.user.Apply(upd)

	if err := c.local.SaveUser(c.user); err != nil {
		logger.Error("持久化用户记录失败", zap.Error(err))
	}

	if model.NewPeerRef(c.user.ID).IsRemote() {
		userID := c.user.ID
		c.mirror("update_user", func() error {
			return c.remote.UpdateUser(userID, upd, nil)
		})
	}

	c.notifyLocked()
}

// Logout 登出
// 从调用方视角无条件生效：导出/远端登出失败只进日志，
// 会话用户、页面、本地用户记录、会话聊天一律清除
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user != nil {
		user := c.user.Clone()

		// 先导出再清除：聊天记录绝不跨会话留存
		if messages, err := c.session.List(user.ID); err != nil {
			logger.Warn("读取会话消息失败，跳过导出", zap.Error(err))
		} else if len(messages) > 0 && c.exporter != nil {
			if err := c.exporter.Export(user, messages); err != nil {
				logger.Warn("导出会话聊天失败", zap.Error(err))
			}
		}

		if err := c.session.Purge(user.ID); err != nil {
			logger.Warn("清除会话聊天失败", zap.Error(err))
		}

		if model.NewPeerRef(user.ID).IsRemote() {
			c.mirror("sign_out", func() error {
				return c.remote.SignOut(user.ID)
			})
		}

		logger.Info("用户登出", zap.String("user_id", user.ID))
	}

	c.user = nil
	c.page = model.PageLanding

	if err := c.local.DeleteUser(); err != nil {
		logger.Warn("清除本地用户记录失败", zap.Error(err))
	}

	c.notifyLocked()
}

// SendFriendRequest 发送好友/连接请求
// 消耗一次今日连接额度，额度耗尽返回同步校验错误。
// 对端为本地演示实体时降级为本地no-op（demo模式），同样算成功
func (c *Controller) SendFriendRequest(peerID, message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return nil
	}

	now := time.Now()
	if c.local.ConnectionsToday(now) >= c.cfg.DailyConnectionLimit {
		return ErrDailyLimitReached
	}
	if _, err := c.local.IncrementConnections(now); err != nil {
		logger.Warn("更新连接计数失败", zap.Error(err))
	}

	sender := model.NewPeerRef(c.user.ID)
	peer := model.NewPeerRef(peerID)

	if sender.IsRemote() && peer.IsRemote() {
		req := &model.FriendRequest{
			ID:         model.NewRemoteID(),
			SenderID:   c.user.ID,
			ReceiverID: peerID,
			Message:    message,
			Status:     model.FriendStatusPending,
		}
		c.mirror("insert_friend_request", func() error {
			return c.remote.InsertFriendRequest(req)
		})
	} else {
		logger.Debug("好友请求降级为demo模式", zap.String("peer_id", peerID))
	}

	c.pushLocked(peerID, "friend_request", map[string]interface{}{
		"from":      c.user.ID,
		"from_name": c.user.Name,
		"message":   message,
	})

	return nil
}

// AcceptFriendRequest 接受好友请求
// 远端请求镜像状态变更；peer非nil时将对方幂等加入本地好友列表
func (c *Controller) AcceptFriendRequest(requestID string, peer *model.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return nil
	}

	if model.NewPeerRef(requestID).IsRemote() {
		c.mirror("accept_friend_request", func() error {
			return c.remote.UpdateFriendRequestStatus(requestID, model.FriendStatusAccepted)
		})
	} else {
		logger.Debug("接受好友请求降级为demo模式", zap.String("request_id", requestID))
	}

	if peer != nil {
		if _, err := c.local.AddFriendIfAbsent(model.NewFriend(peer)); err != nil {
			logger.Warn("写入本地好友列表失败", zap.Error(err))
		}
	}

	return nil
}

// RejectFriendRequest 拒绝好友请求
func (c *Controller) RejectFriendRequest(requestID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return nil
	}

	if model.NewPeerRef(requestID).IsRemote() {
		c.mirror("reject_friend_request", func() error {
			return c.remote.UpdateFriendRequestStatus(requestID, model.FriendStatusRejected)
		})
	} else {
		logger.Debug("拒绝好友请求降级为demo模式", zap.String("request_id", requestID))
	}

	return nil
}

// SendMessage 发送会话消息
// 只写入会话级存储，绝不跨会话持久化；
// 存储失败吞掉并记日志，从UI视角消息仍算已发送
func (c *Controller) SendMessage(recipientID, content string) *model.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.user == nil {
		return nil
	}

	now := time.Now()
	msg := &model.ChatMessage{
		ID:          now.UnixMilli(),
		SenderID:    c.user.ID,
		SenderName:  c.user.Name,
		RecipientID: recipientID,
		Content:     content,
		SentAt:      now,
	}

	if err := c.session.Append(c.user.ID, msg); err != nil {
		logger.Warn("写入会话消息失败", zap.Error(err))
	}

	c.pushLocked(recipientID, "chat", map[string]interface{}{
		"from":      msg.SenderID,
		"from_name": msg.SenderName,
		"content":   msg.Content,
		"msg_id":    msg.ID,
		"timestamp": msg.SentAt.Unix(),
	})

	return msg
}

// ensureCreatorFriendLocked 幂等插入平台创建者好友，须持锁调用
func (c *Controller) ensureCreatorFriendLocked() {
	added, err := c.local.AddFriendIfAbsent(model.NewFriend(model.CreatorProfile()))
	if err != nil {
		logger.Warn("写入平台创建者好友失败", zap.Error(err))
		return
	}
	if added {
		logger.Info("已添加平台创建者为好友", zap.String("user_id", c.user.ID))
	}
}

// pushLocked 在线推送事件，须持锁调用；pusher为nil时跳过
func (c *Controller) pushLocked(userID, eventType string, payload map[string]interface{}) {
	if c.pusher == nil {
		return
	}
	payload["type"] = eventType
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	c.pusher.SendToUser(userID, data)
}
