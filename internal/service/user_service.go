package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/errors"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/model"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/repository/interfaces"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/util"
)

// 用户检索结果的条数上限
const searchLimit = 20

// UserService 负责用户账号的创建与查询
type UserService struct {
	userRepo interfaces.UserRepository
	postRepo interfaces.PostRepository
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository, postRepo interfaces.PostRepository) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo}
}

// LoginOrCreate 在首次登录时初始化用户文档，重复登录是幂等的合并写入
func (s *UserService) LoginOrCreate(ctx context.Context, uid, email string) (*model.User, error) {
	if uid == "" || email == "" {
		return nil, errors.New(errors.ErrValidation, "uid 和邮箱不能为空")
	}

	user := &model.User{UID: uid, Email: email}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		util.Logger.Error("用户写入失败", zap.Error(err), zap.String("uid", uid))
		return nil, errors.Wrap(errors.ErrDatabase, "用户写入失败", err)
	}
	return user, nil
}

// GetByID 按uid读取用户，不存在时返回 ErrUserNotFound
func (s *UserService) GetByID(ctx context.Context, uid string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "读取用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return user, nil
}

// GetProfilePosts 读取用户本人的帖子，按日期降序（个人主页）
func (s *UserService) GetProfilePosts(ctx context.Context, email string) (string, []*model.Post, error) {
	username := util.HandleFromEmail(email)
	posts, err := s.postRepo.ListByUsernameOrdered(ctx, username)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrDatabase, "读取帖子失败", err)
	}
	return username, posts, nil
}

// ExpandEdges 把关注边解析为用户记录，已消失的账号静默跳过
func (s *UserService) ExpandEdges(ctx context.Context, edges []model.FollowEdge) []*model.User {
	users := make([]*model.User, 0, len(edges))
	for _, edge := range edges {
		user, err := s.userRepo.GetByID(ctx, edge.UID)
		if err != nil {
			util.Logger.Warn("解析关注边失败，跳过", zap.String("uid", edge.UID), zap.Error(err))
			continue
		}
		if user == nil {
			continue
		}
		users = append(users, user)
	}
	return users
}

// Search 按邮箱前缀检索用户
func (s *UserService) Search(ctx context.Context, query string) ([]*model.User, error) {
	users, err := s.userRepo.SearchByEmailPrefix(ctx, query, searchLimit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "检索用户失败", err)
	}
	return users, nil
}
