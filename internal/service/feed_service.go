package service

import (
	"context"
	"fmt"
	"io"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/errors"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/model"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/repository/interfaces"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/storage"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/util"
)

// 评论正文的长度上限
const maxCommentLength = 200

// 允许上传的图片类型
var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

// FeedService 负责帖子与评论的写入
type FeedService struct {
	postRepo interfaces.PostRepository
	storage  storage.Storage
}

// NewFeedService 创建一个新的 FeedService 实例
func NewFeedService(postRepo interfaces.PostRepository, storage storage.Storage) *FeedService {
	return &FeedService{postRepo: postRepo, storage: storage}
}

// CreatePost 上传图片到对象存储并记录帖子。
// 只接受 PNG / JPEG；用户名由作者邮箱推导；帖子创建后不可修改。
func (s *FeedService) CreatePost(ctx context.Context, authorEmail, caption string, image io.Reader, filename, contentType string) (*model.Post, error) {
	if !allowedImageTypes[contentType] {
		return nil, errors.New(errors.ErrUnsupportedMediaType, "只允许上传 PNG 或 JPG 图片")
	}

	username := util.HandleFromEmail(authorEmail)
	now := util.NowTimestamp()
	path := fmt.Sprintf("posts/%s_%s_%s", username, now, util.GenerateUniqueFilename(filename))

	imageURL, err := s.storage.Upload(ctx, path, image, contentType)
	if err != nil {
		return nil, errors.Wrap(errors.ErrStorage, "图片上传失败", err)
	}

	post := &model.Post{
		Username: username,
		Date:     now,
		Caption:  caption,
		ImageURL: imageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "保存帖子失败", err)
	}
	return post, nil
}

// AddComment 向帖子追加一条评论。
// 超过200字符的正文被拒绝；不校验帖子是否存在（与线上行为一致，
// 已知会产生孤儿评论）。
func (s *FeedService) AddComment(ctx context.Context, postID, authorEmail, text string) (*model.Comment, error) {
	if len(text) > maxCommentLength {
		return nil, errors.New(errors.ErrCommentTooLong, "评论长度超过200字符")
	}

	comment := &model.Comment{
		Text:            text,
		Author:          authorEmail,
		Timestamp:       util.NowTimestamp(),
		CommentUsername: util.HandleFromEmail(authorEmail),
	}
	if err := s.postRepo.AddComment(ctx, postID, comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "保存评论失败", err)
	}
	return comment, nil
}

// GetRecentComments 读取帖子最近的评论并附上派生的评论者用户名
func (s *FeedService) GetRecentComments(ctx context.Context, postID string) ([]*model.Comment, error) {
	comments, err := s.postRepo.GetRecentComments(ctx, postID, timelineCommentLimit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "读取评论失败", err)
	}

	for _, comment := range comments {
		comment.CommentUsername = util.HandleFromEmail(comment.Author)
	}
	return comments, nil
}
