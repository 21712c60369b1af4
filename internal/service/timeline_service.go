package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/errors"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/model"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/repository/interfaces"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/util"
)

const (
	// 时间线最多返回的帖子数
	timelineLimit = 50
	// 每条帖子附带的最近评论数
	timelineCommentLimit = 5
	// 扇出查询的并发上限
	maxConcurrentFetches = 8
	// 整个聚合的请求级超时，防止关注数增长拖垮尾延迟
	aggregateTimeout = 10 * time.Second
)

// TimelineService 聚合用户及其关注账号的帖子为一条按时间排序的信息流
type TimelineService struct {
	userRepo interfaces.UserRepository
	postRepo interfaces.PostRepository
}

// NewTimelineService 创建一个新的 TimelineService 实例
func NewTimelineService(userRepo interfaces.UserRepository, postRepo interfaces.PostRepository) *TimelineService {
	return &TimelineService{userRepo: userRepo, postRepo: postRepo}
}

// BuildTimeline 构建用户的时间线：
// 解析本人及所有关注账号的用户名，按用户名并发拉取帖子，
// 为每条帖子附上最近的评论，合并后按日期降序截断到上限。
// 单个账号的拉取失败只会缩小结果，不会中断整个聚合。
func (s *TimelineService) BuildTimeline(ctx context.Context, uid string) ([]*model.TimelinePost, error) {
	ctx, cancel := context.WithTimeout(ctx, aggregateTimeout)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "读取用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	handles := s.resolveHandles(ctx, user)

	var mu sync.Mutex
	merged := make([]*model.TimelinePost, 0)

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)
	for _, handle := range handles {
		handle := handle
		g.Go(func() error {
			posts := s.fetchUserPosts(ctx, handle)
			if len(posts) == 0 {
				return nil
			}
			mu.Lock()
			merged = append(merged, posts...)
			mu.Unlock()
			return nil
		})
	}
	// 拉取失败在各自的任务里消化，这里不会得到错误
	_ = g.Wait()

	// 日期是定宽的 UTC ISO-8601 字符串，字典序即时间序
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date > merged[j].Date
	})

	if len(merged) > timelineLimit {
		merged = merged[:timelineLimit]
	}
	return merged, nil
}

// resolveHandles 解析本人及关注账号的用户名，已消失的账号静默跳过
func (s *TimelineService) resolveHandles(ctx context.Context, user *model.User) []string {
	handles := make([]string, 0, len(user.Following)+1)
	handles = append(handles, util.HandleFromEmail(user.Email))

	for _, edge := range user.Following {
		followed, err := s.userRepo.GetByID(ctx, edge.UID)
		if err != nil {
			util.Logger.Warn("读取关注账号失败，跳过", zap.String("uid", edge.UID), zap.Error(err))
			continue
		}
		if followed == nil {
			// 账号已不存在
			continue
		}
		handles = append(handles, util.HandleFromEmail(followed.Email))
	}
	return handles
}

// fetchUserPosts 拉取单个用户名的全部帖子并附上最近评论，失败返回空
func (s *TimelineService) fetchUserPosts(ctx context.Context, handle string) []*model.TimelinePost {
	posts, err := s.postRepo.GetByUsername(ctx, handle)
	if err != nil {
		util.Logger.Warn("拉取帖子失败，跳过该用户", zap.String("username", handle), zap.Error(err))
		return nil
	}

	enriched := make([]*model.TimelinePost, 0, len(posts))
	for _, post := range posts {
		comments, err := s.postRepo.GetRecentComments(ctx, post.ID, timelineCommentLimit)
		if err != nil {
			util.Logger.Warn("拉取评论失败", zap.String("post_id", post.ID), zap.Error(err))
			comments = nil
		}

		attached := make([]model.Comment, 0, len(comments))
		for _, comment := range comments {
			comment.CommentUsername = util.HandleFromEmail(comment.Author)
			attached = append(attached, *comment)
		}

		enriched = append(enriched, &model.TimelinePost{Post: *post, Comments: attached})
	}
	return enriched
}
