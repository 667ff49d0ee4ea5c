package handler

import (
	"strconv"

	"skill-exchange/internal/appstate"
	"skill-exchange/internal/service"
	"skill-exchange/pkg/response"

	"github.com/gin-gonic/gin"
)

// DirectoryHandler 技能广场：浏览与检索
type DirectoryHandler struct {
	directory *service.DirectoryService
	state     *appstate.Controller
}

// NewDirectoryHandler 创建DirectoryHandler实例
func NewDirectoryHandler(directory *service.DirectoryService, state *appstate.Controller) *DirectoryHandler {
	return &DirectoryHandler{directory: directory, state: state}
}

// Explore 浏览技能广场
func (h *DirectoryHandler) Explore(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users := h.directory.Explore(h.currentUserID(), limit)
	list := make([]*response.UserInfo, 0, len(users))
	for _, u := range users {
		list = append(list, response.FilterUserInfo(u))
	}
	response.Success(c, gin.H{
		"users": list,
		"total": len(list),
	})
}

// Search 按技能/姓名关键字检索
func (h *DirectoryHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users := h.directory.Search(h.currentUserID(), keyword, limit)
	list := make([]*response.UserInfo, 0, len(users))
	for _, u := range users {
		list = append(list, response.FilterUserInfo(u))
	}
	response.Success(c, gin.H{
		"users":   list,
		"total":   len(list),
		"keyword": keyword,
	})
}

// currentUserID 当前会话用户标识，未登录时为空串
func (h *DirectoryHandler) currentUserID() string {
	if u := h.state.CurrentUser(); u != nil {
		return u.ID
	}
	return ""
}
