package handler

import (
	"skill-exchange/internal/appstate"
	"skill-exchange/internal/model"
	"skill-exchange/pkg/response"

	"github.com/gin-gonic/gin"
)

// StateHandler 会话状态：快照查询、资料完善、资料更新
type StateHandler struct {
	state *appstate.Controller
}

// NewStateHandler 创建StateHandler实例
func NewStateHandler(state *appstate.Controller) *StateHandler {
	return &StateHandler{state: state}
}

// GetState 查询当前会话状态快照
func (h *StateHandler) GetState(c *gin.Context) {
	response.Success(c, &response.StateResponse{
		User:          response.FilterUserInfo(h.state.CurrentUser()),
		CurrentPage:   string(h.state.CurrentPage()),
		Authenticated: h.state.IsAuthenticated(),
	})
}

// CompleteProfile 完善资料并进入主页面（需要JWT认证）
func (h *StateHandler) CompleteProfile(c *gin.Context) {
	var upd model.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if !h.state.IsAuthenticated() {
		response.Unauthorized(c, "未登录")
		return
	}

	h.state.CompleteProfile(upd)

	response.SuccessWithMessage(c, "资料已完善", &response.StateResponse{
		User:          response.FilterUserInfo(h.state.CurrentUser()),
		CurrentPage:   string(h.state.CurrentPage()),
		Authenticated: h.state.IsAuthenticated(),
	})
}

// UpdateUser 部分更新资料（需要JWT认证）
func (h *StateHandler) UpdateUser(c *gin.Context) {
	var upd model.UserUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if !h.state.IsAuthenticated() {
		response.Unauthorized(c, "未登录")
		return
	}

	h.state.UpdateUser(upd)

	response.Success(c, response.FilterUserInfo(h.state.CurrentUser()))
}
