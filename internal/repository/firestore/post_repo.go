package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/model"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/util"
)

const (
	postCollection    = "Post"
	commentCollection = "Comments"
)

// postRepository 实现了 PostRepository 接口
type postRepository struct {
	client *firestore.Client
}

// NewPostRepository 创建一个新的 postRepository 实例
func NewPostRepository(client *firestore.Client) *postRepository {
	return &postRepository{client}
}

// Create 写入帖子并回填存储分配的ID
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	ref, _, err := r.client.Collection(postCollection).Add(ctx, post)
	if err != nil {
		util.Logger.Error("写入帖子失败", zap.Error(err), zap.String("username", post.Username))
		return fmt.Errorf("写入帖子失败: %w", err)
	}
	post.ID = ref.ID
	return nil
}

// GetByUsername 读取指定用户名的全部帖子。
// 不在存储侧排序，聚合阶段统一按日期合并排序。
func (r *postRepository) GetByUsername(ctx context.Context, username string) ([]*model.Post, error) {
	docs, err := r.client.Collection(postCollection).
		Where("Username", "==", username).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("读取帖子失败: %w", err)
	}
	return r.decodePosts(docs)
}

// ListByUsernameOrdered 读取指定用户名的帖子，按日期降序
func (r *postRepository) ListByUsernameOrdered(ctx context.Context, username string) ([]*model.Post, error) {
	docs, err := r.client.Collection(postCollection).
		Where("Username", "==", username).
		OrderBy("Date", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("读取帖子失败: %w", err)
	}
	return r.decodePosts(docs)
}

// AddComment 向帖子的评论子集合追加一条评论。
// 不校验父文档是否存在，与线上行为保持一致。
func (r *postRepository) AddComment(ctx context.Context, postID string, comment *model.Comment) error {
	_, _, err := r.client.Collection(postCollection).
		Doc(postID).
		Collection(commentCollection).
		Add(ctx, comment)
	if err != nil {
		util.Logger.Error("写入评论失败", zap.Error(err), zap.String("post_id", postID))
		return fmt.Errorf("写入评论失败: %w", err)
	}
	return nil
}

// GetRecentComments 读取帖子最近的评论，按时间戳降序，最多limit条
func (r *postRepository) GetRecentComments(ctx context.Context, postID string, limit int) ([]*model.Comment, error) {
	docs, err := r.client.Collection(postCollection).
		Doc(postID).
		Collection(commentCollection).
		OrderBy("timestamp", firestore.Desc).
		Limit(limit).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("读取评论失败: %w", err)
	}

	comments := make([]*model.Comment, 0, len(docs))
	for _, doc := range docs {
		var comment model.Comment
		if err := doc.DataTo(&comment); err != nil {
			return nil, fmt.Errorf("解析评论失败: %w", err)
		}
		comments = append(comments, &comment)
	}
	return comments, nil
}

func (r *postRepository) decodePosts(docs []*firestore.DocumentSnapshot) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, len(docs))
	for _, doc := range docs {
		var post model.Post
		if err := doc.DataTo(&post); err != nil {
			return nil, fmt.Errorf("解析帖子失败: %w", err)
		}
		post.ID = doc.Ref.ID
		posts = append(posts, &post)
	}
	return posts, nil
}
