package interfaces

import (
	"context"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/model"
)

// UserRepository 定义了用户文档及关注关系的存储操作接口
type UserRepository interface {
	// GetByID 按uid读取用户文档，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, uid string) (*model.User, error)
	// Upsert 按uid合并写入用户文档（幂等）
	Upsert(ctx context.Context, user *model.User) error
	// AddFollowEdge 在一个原子操作中向双方的边列表追加关注关系。
	// 任一用户不存在时返回 ErrUserNotFound；已存在的边不会重复追加。
	AddFollowEdge(ctx context.Context, currentUID, targetUID, timestamp string) error
	// RemoveFollowEdge 在一个原子操作中移除双方的关注关系，边不存在时为空操作
	RemoveFollowEdge(ctx context.Context, currentUID, targetUID string) error
	// SearchByEmailPrefix 按邮箱前缀检索用户
	SearchByEmailPrefix(ctx context.Context, prefix string, limit int) ([]*model.User, error)
}
