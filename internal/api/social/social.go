package social

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/errors"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/model"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/service"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/util"
)

// SocialHandler 处理关注关系相关的HTTP请求
type SocialHandler struct {
	followService *service.FollowService
	userService   *service.UserService
}

// NewSocialHandler 创建一个新的 SocialHandler 实例
func NewSocialHandler(followService *service.FollowService, userService *service.UserService) *SocialHandler {
	return &SocialHandler{followService: followService, userService: userService}
}

// Follow 关注目标用户
func (h *SocialHandler) Follow(c *gin.Context) {
	var followData struct {
		TargetUID string `form:"target_uid" json:"target_uid" binding:"required"`
	}
	if err := c.ShouldBind(&followData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInvalidTarget, "无效的关注目标", err))
		return
	}

	uid, _ := c.Get("uid")
	if err := h.followService.Follow(c.Request.Context(), uid.(string), followData.TargetUID); err != nil {
		util.Logger.Warn("关注失败",
			zap.Error(err),
			zap.String("uid", uid.(string)),
			zap.String("target_uid", followData.TargetUID))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{"target_uid": followData.TargetUID}, "关注成功")
}

// Unfollow 取消关注目标用户
func (h *SocialHandler) Unfollow(c *gin.Context) {
	var followData struct {
		TargetUID string `form:"target_uid" json:"target_uid" binding:"required"`
	}
	if err := c.ShouldBind(&followData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInvalidTarget, "无效的关注目标", err))
		return
	}

	uid, _ := c.Get("uid")
	if err := h.followService.Unfollow(c.Request.Context(), uid.(string), followData.TargetUID); err != nil {
		util.Logger.Warn("取消关注失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{"target_uid": followData.TargetUID}, "取消关注成功")
}

// GetFollowers 返回当前用户的粉丝列表
func (h *SocialHandler) GetFollowers(c *gin.Context) {
	uid, _ := c.Get("uid")

	edges, err := h.followService.GetFollowers(c.Request.Context(), uid.(string))
	if err != nil {
		util.Logger.Error("获取粉丝列表失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	followers := h.userService.ExpandEdges(c.Request.Context(), edges)
	errors.HandleSuccess(c, gin.H{"followers": followers}, "")
}

// GetFollowing 返回当前用户的关注列表
func (h *SocialHandler) GetFollowing(c *gin.Context) {
	uid, _ := c.Get("uid")

	edges, err := h.followService.GetFollowing(c.Request.Context(), uid.(string))
	if err != nil {
		util.Logger.Error("获取关注列表失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	following := h.userService.ExpandEdges(c.Request.Context(), edges)
	errors.HandleSuccess(c, gin.H{"following": following}, "")
}

// GetFollowStatus 返回对目标用户的关注状态及其粉丝数
func (h *SocialHandler) GetFollowStatus(c *gin.Context) {
	targetUID := c.Param("id")
	uid, _ := c.Get("uid")

	isFollowing, followerCount, err := h.followService.FollowStatus(c.Request.Context(), uid.(string), targetUID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"is_following":   isFollowing,
		"follower_count": followerCount,
	}, "")
}

// SearchUsers 按邮箱前缀检索用户
func (h *SocialHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		errors.HandleError(c, errors.New(errors.ErrValidation, "检索关键字不能为空"))
		return
	}

	users, err := h.userService.Search(c.Request.Context(), query)
	if err != nil {
		util.Logger.Error("检索用户失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}
	if users == nil {
		users = []*model.User{}
	}

	errors.HandleSuccess(c, gin.H{"users": users}, "")
}
