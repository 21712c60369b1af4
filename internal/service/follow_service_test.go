package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/errors"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/model"
)

// fakeUserRepo 是 UserRepository 的内存实现，
// 边的增删语义与 Firestore 事务实现保持一致，用于验证关注图的不变量。
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		repo.users[u.UID] = cloneUser(u)
	}
	return repo
}

func cloneUser(u *model.User) *model.User {
	c := *u
	c.Following = append([]model.FollowEdge{}, u.Following...)
	c.Followers = append([]model.FollowEdge{}, u.Followers...)
	return &c
}

func (r *fakeUserRepo) GetByID(ctx context.Context, uid string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[uid]
	if !ok {
		return nil, nil
	}
	return cloneUser(user), nil
}

func (r *fakeUserRepo) Upsert(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[user.UID]; ok {
		existing.Email = user.Email
		return nil
	}
	r.users[user.UID] = cloneUser(user)
	return nil
}

func (r *fakeUserRepo) AddFollowEdge(ctx context.Context, currentUID, targetUID, timestamp string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.users[currentUID]
	if !ok {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	target, ok := r.users[targetUID]
	if !ok {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	current.AddFollowing(targetUID, timestamp)
	target.AddFollower(currentUID, timestamp)
	return nil
}

func (r *fakeUserRepo) RemoveFollowEdge(ctx context.Context, currentUID, targetUID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.users[currentUID]
	if !ok {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	target, ok := r.users[targetUID]
	if !ok {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	current.RemoveFollowing(targetUID)
	target.RemoveFollower(currentUID)
	return nil
}

func (r *fakeUserRepo) SearchByEmailPrefix(ctx context.Context, prefix string, limit int) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*model.User
	for _, u := range r.users {
		if strings.HasPrefix(u.Email, prefix) && len(result) < limit {
			result = append(result, cloneUser(u))
		}
	}
	return result, nil
}

func twoUsers() *fakeUserRepo {
	return newFakeUserRepo(
		&model.User{UID: "a", Email: "alice@example.com"},
		&model.User{UID: "b", Email: "bob@example.com"},
	)
}

// TestFollowSymmetry 关注成功后双方的边必须对称且时间戳一致
func TestFollowSymmetry(t *testing.T) {
	repo := twoUsers()
	service := NewFollowService(repo, nil)

	err := service.Follow(context.Background(), "a", "b")
	assert.NoError(t, err)

	a, _ := repo.GetByID(context.Background(), "a")
	b, _ := repo.GetByID(context.Background(), "b")

	assert.True(t, a.IsFollowing("b"))
	assert.True(t, b.HasFollower("a"))
	assert.Len(t, a.Following, 1)
	assert.Len(t, b.Followers, 1)
	assert.Equal(t, a.Following[0].Timestamp, b.Followers[0].Timestamp)
}

// TestFollowIdempotent 重复关注不产生重复的边
func TestFollowIdempotent(t *testing.T) {
	repo := twoUsers()
	service := NewFollowService(repo, nil)

	assert.NoError(t, service.Follow(context.Background(), "a", "b"))
	assert.NoError(t, service.Follow(context.Background(), "a", "b"))

	a, _ := repo.GetByID(context.Background(), "a")
	b, _ := repo.GetByID(context.Background(), "b")
	assert.Len(t, a.Following, 1)
	assert.Len(t, b.Followers, 1)
}

// TestFollowInvalidTarget 自关注和空目标都被拒绝
func TestFollowInvalidTarget(t *testing.T) {
	repo := twoUsers()
	service := NewFollowService(repo, nil)

	err := service.Follow(context.Background(), "a", "a")
	assert.True(t, errors.Is(err, errors.ErrInvalidTarget))

	err = service.Follow(context.Background(), "a", "")
	assert.True(t, errors.Is(err, errors.ErrInvalidTarget))

	err = service.Follow(context.Background(), "", "b")
	assert.True(t, errors.Is(err, errors.ErrInvalidTarget))

	// 列表未被污染
	a, _ := repo.GetByID(context.Background(), "a")
	assert.Empty(t, a.Following)
}

// TestFollowUserNotFound 任一用户不存在时返回 ErrUserNotFound
func TestFollowUserNotFound(t *testing.T) {
	repo := twoUsers()
	service := NewFollowService(repo, nil)

	err := service.Follow(context.Background(), "a", "ghost")
	assert.True(t, errors.Is(err, errors.ErrUserNotFound))

	err = service.Follow(context.Background(), "ghost", "b")
	assert.True(t, errors.Is(err, errors.ErrUserNotFound))
}

// TestUnfollowRestoresState 先关注再取关，双方列表恢复原状
func TestUnfollowRestoresState(t *testing.T) {
	repo := twoUsers()
	service := NewFollowService(repo, nil)
	ctx := context.Background()

	before, _ := repo.GetByID(ctx, "a")
	beforeTarget, _ := repo.GetByID(ctx, "b")

	assert.NoError(t, service.Follow(ctx, "a", "b"))
	assert.NoError(t, service.Unfollow(ctx, "a", "b"))

	after, _ := repo.GetByID(ctx, "a")
	afterTarget, _ := repo.GetByID(ctx, "b")
	assert.Equal(t, before.Following, after.Following)
	assert.Equal(t, beforeTarget.Followers, afterTarget.Followers)

	// 取关不存在的边是空操作
	assert.NoError(t, service.Unfollow(ctx, "a", "b"))
}

// TestFollowStatus 测试关注状态查询
func TestFollowStatus(t *testing.T) {
	repo := twoUsers()
	service := NewFollowService(repo, nil)
	ctx := context.Background()

	following, count, err := service.FollowStatus(ctx, "a", "b")
	assert.NoError(t, err)
	assert.False(t, following)
	assert.Equal(t, 0, count)

	assert.NoError(t, service.Follow(ctx, "a", "b"))

	following, count, err = service.FollowStatus(ctx, "a", "b")
	assert.NoError(t, err)
	assert.True(t, following)
	assert.Equal(t, 1, count)
}

// TestGetFollowingAndFollowers 测试关注/粉丝列表读取
func TestGetFollowingAndFollowers(t *testing.T) {
	repo := twoUsers()
	service := NewFollowService(repo, nil)
	ctx := context.Background()

	assert.NoError(t, service.Follow(ctx, "a", "b"))

	following, err := service.GetFollowing(ctx, "a")
	assert.NoError(t, err)
	assert.Len(t, following, 1)
	assert.Equal(t, "b", following[0].UID)

	followers, err := service.GetFollowers(ctx, "b")
	assert.NoError(t, err)
	assert.Len(t, followers, 1)
	assert.Equal(t, "a", followers[0].UID)

	_, err = service.GetFollowers(ctx, "ghost")
	assert.True(t, errors.Is(err, errors.ErrUserNotFound))
}
