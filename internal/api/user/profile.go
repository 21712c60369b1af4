package user

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/errors"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/service"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/util"
)

// ProfileHandler 处理个人主页相关的HTTP请求
type ProfileHandler struct {
	userService *service.UserService
}

// NewProfileHandler 创建一个新的 ProfileHandler 实例
func NewProfileHandler(userService *service.UserService) *ProfileHandler {
	return &ProfileHandler{userService}
}

// GetProfile 返回当前用户的用户名及其帖子（按日期降序）
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	email, _ := c.Get("email")

	username, posts, err := h.userService.GetProfilePosts(c.Request.Context(), email.(string))
	if err != nil {
		util.Logger.Error("获取主页帖子失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"username": username,
		"posts":    posts,
	}, "")
}
