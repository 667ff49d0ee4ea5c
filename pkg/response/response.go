package response

import (
	"net/http"

	"skill-exchange/internal/model"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`            // 状态码：0表示成功，其他表示错误
	Message string      `json:"message"`         // 响应消息
	Data    interface{} `json:"data,omitempty"`  // 响应数据
	Error   string      `json:"error,omitempty"` // 错误详情（仅在开发环境显示）
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带自定义消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// Unauthorized 401错误
func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, message)
}

// NotFound 404错误
func NotFound(c *gin.Context, message string) {
	Error(c, 404, message)
}

// InternalError 500错误
func InternalError(c *gin.Context, message string) {
	Error(c, 500, message)
}

// UserInfo 用户信息（对外暴露的资料字段）
type UserInfo struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Username         string   `json:"username"`
	Avatar           string   `json:"avatar"`
	Skills           []string `json:"skills"`
	LearningGoals    []string `json:"learning_goals"`
	Bio              string   `json:"bio,omitempty"`
	Location         string   `json:"location,omitempty"`
	Linkedin         string   `json:"linkedin,omitempty"`
	Github           string   `json:"github,omitempty"`
	Portfolio        string   `json:"portfolio,omitempty"`
	Experience       string   `json:"experience,omitempty"`
	Education        string   `json:"education,omitempty"`
	CurrentRole      string   `json:"current_role,omitempty"`
	ProfileCompleted bool     `json:"profile_completed"`
}

// FilterUserInfo 转换用户信息为响应格式
func FilterUserInfo(user *model.User) *UserInfo {
	if user == nil {
		return nil
	}

	return &UserInfo{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Username:         user.Username,
		Avatar:           user.Avatar,
		Skills:           user.Skills,
		LearningGoals:    user.LearningGoals,
		Bio:              user.Bio,
		Location:         user.Location,
		Linkedin:         user.Linkedin,
		Github:           user.Github,
		Portfolio:        user.Portfolio,
		Experience:       user.Experience,
		Education:        user.Education,
		CurrentRole:      user.CurrentRole,
		ProfileCompleted: user.ProfileCompleted,
	}
}

// StateResponse 会话状态快照
type StateResponse struct {
	User          *UserInfo `json:"user"`
	CurrentPage   string    `json:"current_page"`
	Authenticated bool      `json:"authenticated"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User        *UserInfo `json:"user"`
	CurrentPage string    `json:"current_page"`
	AccessToken string    `json:"access_token"`
}

// FriendInfo 好友信息
type FriendInfo struct {
	*UserInfo
	Status         string `json:"status"`
	FriendshipDate string `json:"friendship_date"`
}

// FilterFriendInfo 转换好友记录为响应格式
func FilterFriendInfo(f *model.Friend) *FriendInfo {
	if f == nil {
		return nil
	}
	return &FriendInfo{
		UserInfo:       FilterUserInfo(&f.User),
		Status:         f.Status,
		FriendshipDate: f.FriendshipDate.Format("2006-01-02 15:04:05"),
	}
}

// ChatMessageResponse 会话消息响应
type ChatMessageResponse struct {
	ID          int64  `json:"id"`
	SenderID    string `json:"sender_id"`
	SenderName  string `json:"sender_name"`
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content"`
	SentAt      string `json:"sent_at"`
}

// FilterChatMessage 转换会话消息为响应格式
func FilterChatMessage(m *model.ChatMessage) *ChatMessageResponse {
	if m == nil {
		return nil
	}
	return &ChatMessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		SenderName:  m.SenderName,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		SentAt:      m.SentAt.Format("2006-01-02 15:04:05"),
	}
}
