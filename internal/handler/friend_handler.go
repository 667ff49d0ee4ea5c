package handler

import (
	"errors"

	"skill-exchange/internal/appstate"
	"skill-exchange/internal/model"
	"skill-exchange/internal/repository"
	"skill-exchange/pkg/logger"
	"skill-exchange/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FriendHandler 好友请求与好友列表
type FriendHandler struct {
	state    *appstate.Controller
	requests *repository.FriendRequestRepository // 可为nil
	users    *repository.UserRepository          // 可为nil
}

// NewFriendHandler 创建FriendHandler实例
func NewFriendHandler(state *appstate.Controller, requests *repository.FriendRequestRepository, users *repository.UserRepository) *FriendHandler {
	return &FriendHandler{state: state, requests: requests, users: users}
}

// SendRequest 发送好友/连接请求
// 消耗一次今日连接额度；额度耗尽返回429业务码
func (h *FriendHandler) SendRequest(c *gin.Context) {
	type req struct {
		PeerID  string `json:"peer_id" binding:"required"`
		Message string `json:"message"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.state.SendFriendRequest(r.PeerID, r.Message); err != nil {
		if errors.Is(err, appstate.ErrDailyLimitReached) {
			response.Error(c, 429, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	used, limit := h.state.ConnectionsToday()
	response.SuccessWithMessage(c, "好友请求已发送", gin.H{
		"connections_used":  used,
		"connections_limit": limit,
	})
}

// AcceptRequest 接受好友请求
// 对端资料从镜像库尽力查询，查不到时只做远端状态变更
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	type req struct {
		RequestID string `json:"request_id" binding:"required"`
		PeerID    string `json:"peer_id"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var peer *model.User
	if r.PeerID != "" && h.users != nil {
		u, err := h.users.GetByID(r.PeerID)
		if err != nil {
			logger.Warn("查询对端资料失败，好友仅做远端状态变更",
				zap.String("peer_id", r.PeerID),
				zap.Error(err),
			)
		} else {
			peer = u
		}
	}

	if err := h.state.AcceptFriendRequest(r.RequestID, peer); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "已接受好友请求", nil)
}

// RejectRequest 拒绝好友请求
func (h *FriendHandler) RejectRequest(c *gin.Context) {
	type req struct {
		RequestID string `json:"request_id" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.state.RejectFriendRequest(r.RequestID); err != nil {
		response.InternalError(c, err.Error())
		return
	}

	response.SuccessWithMessage(c, "已拒绝好友请求", nil)
}

// ListFriends 本地好友列表
func (h *FriendHandler) ListFriends(c *gin.Context) {
	friends := h.state.Friends()
	list := make([]*response.FriendInfo, 0, len(friends))
	for i := range friends {
		list = append(list, response.FilterFriendInfo(&friends[i]))
	}
	response.Success(c, gin.H{
		"friends": list,
		"total":   len(list),
	})
}

// ListPendingRequests 查询收到的待处理好友请求（镜像库）
func (h *FriendHandler) ListPendingRequests(c *gin.Context) {
	user := h.state.CurrentUser()
	if user == nil {
		response.Unauthorized(c, "未登录")
		return
	}

	if h.requests == nil || !model.NewPeerRef(user.ID).IsRemote() {
		// demo模式没有远端收件箱
		response.Success(c, gin.H{"requests": []interface{}{}, "total": 0})
		return
	}

	requests, err := h.requests.ListForReceiver(user.ID)
	if err != nil {
		logger.Warn("查询好友请求失败", zap.Error(err))
		response.Success(c, gin.H{"requests": []interface{}{}, "total": 0})
		return
	}

	response.Success(c, gin.H{
		"requests": requests,
		"total":    len(requests),
	})
}

// ConnectionsToday 今日连接额度使用情况
func (h *FriendHandler) ConnectionsToday(c *gin.Context) {
	used, limit := h.state.ConnectionsToday()
	response.Success(c, gin.H{
		"connections_used":  used,
		"connections_limit": limit,
		"remaining":         limit - used,
	})
}
