package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/common"
	apperrors "github.com/Gicheru-yvonne/instaclone-cloud-app/internal/errors"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/model"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/util"
)

const userCollection = "User"

// userRepository 实现了 UserRepository 接口
type userRepository struct {
	client *firestore.Client
}

// NewUserRepository 创建一个新的 userRepository 实例
func NewUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{client}
}

// GetByID 按uid读取用户文档，不存在时返回 (nil, nil)
func (r *userRepository) GetByID(ctx context.Context, uid string) (*model.User, error) {
	snap, err := r.client.Collection(userCollection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		util.Logger.Error("读取用户文档失败", zap.Error(err), zap.String("uid", uid))
		return nil, fmt.Errorf("读取用户文档失败: %w", err)
	}

	var user model.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("解析用户文档失败: %w", err)
	}
	return &user, nil
}

// Upsert 按uid合并写入用户文档。首次写入时初始化空的边列表，
// 已存在时只合并身份字段，不触碰 following / followers。
func (r *userRepository) Upsert(ctx context.Context, user *model.User) error {
	ref := r.client.Collection(userCollection).Doc(user.UID)

	_, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		if user.Following == nil {
			user.Following = []model.FollowEdge{}
		}
		if user.Followers == nil {
			user.Followers = []model.FollowEdge{}
		}
		if _, err := ref.Set(ctx, user); err != nil {
			return fmt.Errorf("创建用户文档失败: %w", err)
		}
		util.Logger.Info("新用户已初始化", zap.String("uid", user.UID), zap.String("email", user.Email))
		return nil
	}
	if err != nil {
		return fmt.Errorf("读取用户文档失败: %w", err)
	}

	_, err = ref.Set(ctx, map[string]interface{}{
		"uid":   user.UID,
		"email": user.Email,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("更新用户文档失败: %w", err)
	}
	return nil
}

// AddFollowEdge 在一个事务中向双方的边列表追加关注关系。
// 读取-判重-追加都在事务内完成，关闭了读后覆盖写的丢失更新窗口；
// 两侧各自判重，单侧已有的历史边会被补齐而不是重复追加。
func (r *userRepository) AddFollowEdge(ctx context.Context, currentUID, targetUID, timestamp string) error {
	return common.WithRetry(func() error {
		return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			current, currentRef, err := r.getForUpdate(tx, currentUID)
			if err != nil {
				return err
			}
			target, targetRef, err := r.getForUpdate(tx, targetUID)
			if err != nil {
				return err
			}

			if current.AddFollowing(targetUID, timestamp) {
				if err := tx.Update(currentRef, []firestore.Update{
					{Path: "following", Value: current.Following},
				}); err != nil {
					return err
				}
			}
			if target.AddFollower(currentUID, timestamp) {
				if err := tx.Update(targetRef, []firestore.Update{
					{Path: "followers", Value: target.Followers},
				}); err != nil {
					return err
				}
			}
			return nil
		})
	}, 3)
}

// RemoveFollowEdge 在一个事务中移除双方的关注关系，边不存在时为空操作
func (r *userRepository) RemoveFollowEdge(ctx context.Context, currentUID, targetUID string) error {
	return common.WithRetry(func() error {
		return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			current, currentRef, err := r.getForUpdate(tx, currentUID)
			if err != nil {
				return err
			}
			target, targetRef, err := r.getForUpdate(tx, targetUID)
			if err != nil {
				return err
			}

			if current.RemoveFollowing(targetUID) {
				if err := tx.Update(currentRef, []firestore.Update{
					{Path: "following", Value: current.Following},
				}); err != nil {
					return err
				}
			}
			if target.RemoveFollower(currentUID) {
				if err := tx.Update(targetRef, []firestore.Update{
					{Path: "followers", Value: target.Followers},
				}); err != nil {
					return err
				}
			}
			return nil
		})
	}, 3)
}

// SearchByEmailPrefix 按邮箱前缀检索用户。
// Firestore 的前缀匹配惯用写法：[prefix, prefix+"\uf8ff"] 区间查询。
func (r *userRepository) SearchByEmailPrefix(ctx context.Context, prefix string, limit int) ([]*model.User, error) {
	docs, err := r.client.Collection(userCollection).
		Where("email", ">=", prefix).
		Where("email", "<=", prefix+"\uf8ff").
		Limit(limit).
		Documents(ctx).GetAll()
	if err != nil {
		util.Logger.Error("检索用户失败", zap.Error(err), zap.String("prefix", prefix))
		return nil, fmt.Errorf("检索用户失败: %w", err)
	}

	users := make([]*model.User, 0, len(docs))
	for _, doc := range docs {
		var user model.User
		if err := doc.DataTo(&user); err != nil {
			return nil, fmt.Errorf("解析用户文档失败: %w", err)
		}
		users = append(users, &user)
	}
	return users, nil
}

// getForUpdate 在事务内读取用户文档，不存在时返回业务错误
func (r *userRepository) getForUpdate(tx *firestore.Transaction, uid string) (*model.User, *firestore.DocumentRef, error) {
	ref := r.client.Collection(userCollection).Doc(uid)
	snap, err := tx.Get(ref)
	if status.Code(err) == codes.NotFound {
		return nil, nil, apperrors.New(apperrors.ErrUserNotFound, "用户不存在")
	}
	if err != nil {
		return nil, nil, err
	}

	var user model.User
	if err := snap.DataTo(&user); err != nil {
		return nil, nil, fmt.Errorf("解析用户文档失败: %w", err)
	}
	return &user, ref, nil
}
