package handler

import (
	"skill-exchange/internal/appstate"
	"skill-exchange/internal/service"
	"skill-exchange/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler 注册/登录/登出
type AuthHandler struct {
	auth  *service.AuthService
	state *appstate.Controller
}

// NewAuthHandler 创建AuthHandler实例
func NewAuthHandler(auth *service.AuthService, state *appstate.Controller) *AuthHandler {
	return &AuthHandler{auth: auth, state: state}
}

// Register 用户注册
// 校验失败同步返回错误信息，不产生任何状态变更
func (h *AuthHandler) Register(c *gin.Context) {
	type req struct {
		Name            string `json:"name"`
		Email           string `json:"email" binding:"required"`
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirm_password"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.auth.Register(r.Name, r.Email, r.Password, r.ConfirmPassword)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	// 建立本地会话：对调用方永不失败
	h.state.Login(user)

	response.SuccessWithMessage(c, "注册成功", &response.LoginResponse{
		User:        response.FilterUserInfo(h.state.CurrentUser()),
		CurrentPage: string(h.state.CurrentPage()),
		AccessToken: token,
	})
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	type req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.auth.Login(r.Email, r.Password)
	if err != nil {
		response.Unauthorized(c, err.Error())
		return
	}

	h.state.Login(user)

	response.SuccessWithMessage(c, "登录成功", &response.LoginResponse{
		User:        response.FilterUserInfo(h.state.CurrentUser()),
		CurrentPage: string(h.state.CurrentPage()),
		AccessToken: token,
	})
}

// Logout 用户登出（需要JWT认证）
// 无条件生效：导出并清除会话聊天、清除本地用户记录、路由回落地页
func (h *AuthHandler) Logout(c *gin.Context) {
	h.state.Logout()

	response.SuccessWithMessage(c, "已登出，聊天记录已导出并清除", gin.H{
		"current_page": string(h.state.CurrentPage()),
	})
}
