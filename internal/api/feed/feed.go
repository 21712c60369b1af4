package feed

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/errors"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/model"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/service"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/util"
)

// FeedHandler 处理帖子、评论和时间线相关的HTTP请求
type FeedHandler struct {
	feedService     *service.FeedService
	timelineService *service.TimelineService
}

// NewFeedHandler 创建一个新的 FeedHandler 实例
func NewFeedHandler(feedService *service.FeedService, timelineService *service.TimelineService) *FeedHandler {
	return &FeedHandler{feedService: feedService, timelineService: timelineService}
}

// CreatePost 处理发帖请求：caption + 图片文件的多部分表单
func (h *FeedHandler) CreatePost(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		util.Logger.Error("无法解析表单数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无法解析表单数据", err))
		return
	}

	caption := c.PostForm("caption")
	if caption == "" {
		errors.HandleError(c, errors.New(errors.ErrValidation, "caption 不能为空"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "缺少图片文件", err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无法读取图片文件", err))
		return
	}
	defer file.Close()

	email, _ := c.Get("email")
	contentType := fileHeader.Header.Get("Content-Type")

	post, err := h.feedService.CreatePost(c.Request.Context(), email.(string), caption,
		file, fileHeader.Filename, contentType)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	util.Logger.Info("帖子创建成功",
		zap.String("username", post.Username),
		zap.String("image_url", post.ImageURL))

	c.JSON(http.StatusCreated, gin.H{
		"code": 201,
		"data": post,
	})
}

// GetTimeline 返回当前用户的时间线。
// 聚合失败时降级为空列表而不是报错（安全默认值）。
func (h *FeedHandler) GetTimeline(c *gin.Context) {
	uid, _ := c.Get("uid")

	timeline, err := h.timelineService.BuildTimeline(c.Request.Context(), uid.(string))
	if err != nil {
		util.Logger.Error("构建时间线失败", zap.Error(err), zap.String("uid", uid.(string)))
		timeline = []*model.TimelinePost{}
	}
	if timeline == nil {
		timeline = []*model.TimelinePost{}
	}

	errors.HandleSuccess(c, gin.H{"posts": timeline}, "")
}

// AddComment 处理评论请求
func (h *FeedHandler) AddComment(c *gin.Context) {
	postID := c.Param("id")
	if postID == "" {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的帖子ID"))
		return
	}

	var commentData struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&commentData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	email, _ := c.Get("email")
	comment, err := h.feedService.AddComment(c.Request.Context(), postID, email.(string), commentData.Text)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code": 201,
		"data": comment,
	})
}

// GetComments 返回帖子最近的评论列表
func (h *FeedHandler) GetComments(c *gin.Context) {
	postID := c.Param("id")

	comments, err := h.feedService.GetRecentComments(c.Request.Context(), postID)
	if err != nil {
		util.Logger.Error("获取评论列表失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	// 如果没有评论，返回空数组而不是 null
	if comments == nil {
		comments = []*model.Comment{}
	}

	errors.HandleSuccess(c, gin.H{
		"comments": comments,
		"total":    len(comments),
	}, "")
}
