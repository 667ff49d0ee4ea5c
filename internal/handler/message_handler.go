package handler

import (
	"skill-exchange/internal/appstate"
	"skill-exchange/pkg/response"

	"github.com/gin-gonic/gin"
)

// MessageHandler 会话级聊天消息
// 消息只存在于当前登录会话，登出时导出并清除
type MessageHandler struct {
	state *appstate.Controller
}

// NewMessageHandler 创建MessageHandler实例
func NewMessageHandler(state *appstate.Controller) *MessageHandler {
	return &MessageHandler{state: state}
}

// SendMessage 发送消息（需要JWT认证）
func (h *MessageHandler) SendMessage(c *gin.Context) {
	type req struct {
		RecipientID string `json:"recipient_id" binding:"required"`
		Content     string `json:"content" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	msg := h.state.SendMessage(r.RecipientID, r.Content)
	if msg == nil {
		response.Unauthorized(c, "未登录")
		return
	}

	response.SuccessWithMessage(c, "发送成功", response.FilterChatMessage(msg))
}

// ListMessages 当前会话全部消息
func (h *MessageHandler) ListMessages(c *gin.Context) {
	messages := h.state.Messages()
	list := make([]*response.ChatMessageResponse, 0, len(messages))
	for i := range messages {
		list = append(list, response.FilterChatMessage(&messages[i]))
	}
	response.Success(c, gin.H{
		"messages": list,
		"total":    len(list),
	})
}
