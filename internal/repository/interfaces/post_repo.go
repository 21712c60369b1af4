package interfaces

import (
	"context"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/model"
)

// PostRepository 定义了帖子及评论的存储操作接口
type PostRepository interface {
	// Create 写入帖子并回填存储分配的ID
	Create(ctx context.Context, post *model.Post) error
	// GetByUsername 读取指定用户名的全部帖子（无序，供时间线聚合使用）
	GetByUsername(ctx context.Context, username string) ([]*model.Post, error)
	// ListByUsernameOrdered 读取指定用户名的帖子，按日期降序（个人主页）
	ListByUsernameOrdered(ctx context.Context, username string) ([]*model.Post, error)
	// AddComment 向帖子的评论子集合追加一条评论。
	// 不校验帖子是否存在，与线上行为保持一致。
	AddComment(ctx context.Context, postID string, comment *model.Comment) error
	// GetRecentComments 读取帖子最近的评论，按时间戳降序，最多limit条
	GetRecentComments(ctx context.Context, postID string, limit int) ([]*model.Comment, error)
}
