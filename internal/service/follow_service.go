package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/errors"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/model"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/repository/interfaces"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/util"
)

// FollowService 维护用户之间的关注关系。
// 边在双方文档上冗余存储，增删必须保持两侧对称。
type FollowService struct {
	userRepo     interfaces.UserRepository
	emailService *EmailService
}

// NewFollowService 创建一个新的 FollowService 实例。
// emailService 可以为 nil，此时不发送关注通知。
func NewFollowService(userRepo interfaces.UserRepository, emailService *EmailService) *FollowService {
	return &FollowService{userRepo: userRepo, emailService: emailService}
}

// Follow 建立 current → target 的关注关系。
// 目标为空或为自己时拒绝；任一用户不存在时返回 ErrUserNotFound；
// 重复关注是幂等的空操作。
func (s *FollowService) Follow(ctx context.Context, currentUID, targetUID string) error {
	if currentUID == "" || targetUID == "" || currentUID == targetUID {
		return errors.New(errors.ErrInvalidTarget, "无效的关注目标")
	}

	if err := s.userRepo.AddFollowEdge(ctx, currentUID, targetUID, util.NowTimestamp()); err != nil {
		return err
	}

	s.notifyNewFollower(currentUID, targetUID)
	return nil
}

// Unfollow 解除 current → target 的关注关系，边不存在时为空操作
func (s *FollowService) Unfollow(ctx context.Context, currentUID, targetUID string) error {
	if currentUID == "" || targetUID == "" || currentUID == targetUID {
		return errors.New(errors.ErrInvalidTarget, "无效的关注目标")
	}

	return s.userRepo.RemoveFollowEdge(ctx, currentUID, targetUID)
}

// IsFollowing 判断用户记录中是否存在指向目标的关注边
func (s *FollowService) IsFollowing(user *model.User, targetUID string) bool {
	if user == nil {
		return false
	}
	return user.IsFollowing(targetUID)
}

// GetFollowing 读取用户的关注列表
func (s *FollowService) GetFollowing(ctx context.Context, uid string) ([]model.FollowEdge, error) {
	user, err := s.getUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return user.Following, nil
}

// GetFollowers 读取用户的粉丝列表
func (s *FollowService) GetFollowers(ctx context.Context, uid string) ([]model.FollowEdge, error) {
	user, err := s.getUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return user.Followers, nil
}

// FollowStatus 返回当前用户对目标的关注状态及目标的粉丝数
func (s *FollowService) FollowStatus(ctx context.Context, currentUID, targetUID string) (bool, int, error) {
	current, err := s.getUser(ctx, currentUID)
	if err != nil {
		return false, 0, err
	}
	target, err := s.getUser(ctx, targetUID)
	if err != nil {
		return false, 0, err
	}
	return current.IsFollowing(targetUID), len(target.Followers), nil
}

func (s *FollowService) getUser(ctx context.Context, uid string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "读取用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return user, nil
}

// notifyNewFollower 异步通知被关注的用户，失败只记日志
func (s *FollowService) notifyNewFollower(currentUID, targetUID string) {
	if s.emailService == nil {
		return
	}

	go func() {
		ctx := context.Background()
		target, err := s.userRepo.GetByID(ctx, targetUID)
		if err != nil || target == nil {
			util.Logger.Warn("读取被关注用户失败，跳过通知", zap.String("uid", targetUID), zap.Error(err))
			return
		}
		follower, err := s.userRepo.GetByID(ctx, currentUID)
		if err != nil || follower == nil {
			util.Logger.Warn("读取关注者失败，跳过通知", zap.String("uid", currentUID), zap.Error(err))
			return
		}

		s.emailService.NotifyNewFollower(target.Email, util.HandleFromEmail(follower.Email))
	}()
}
