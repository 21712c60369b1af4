package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/errors"
	"github.com/Gicheru-yvonne/instaclone-cloud-app/internal/model"
)

// MockUserRepository 是 UserRepository 接口的模拟实现
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, uid string) (*model.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) AddFollowEdge(ctx context.Context, currentUID, targetUID, timestamp string) error {
	args := m.Called(ctx, currentUID, targetUID, timestamp)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveFollowEdge(ctx context.Context, currentUID, targetUID string) error {
	args := m.Called(ctx, currentUID, targetUID)
	return args.Error(0)
}

func (m *MockUserRepository) SearchByEmailPrefix(ctx context.Context, prefix string, limit int) ([]*model.User, error) {
	args := m.Called(ctx, prefix, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

// MockPostRepository 是 PostRepository 接口的模拟实现
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByUsername(ctx context.Context, username string) ([]*model.Post, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListByUsernameOrdered(ctx context.Context, username string) ([]*model.Post, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Post), args.Error(1)
}

func (m *MockPostRepository) AddComment(ctx context.Context, postID string, comment *model.Comment) error {
	args := m.Called(ctx, postID, comment)
	return args.Error(0)
}

func (m *MockPostRepository) GetRecentComments(ctx context.Context, postID string, limit int) ([]*model.Comment, error) {
	args := m.Called(ctx, postID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

// TestLoginOrCreate 测试首次登录的幂等初始化
func TestLoginOrCreate(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockPosts := new(MockPostRepository)
	service := NewUserService(mockUsers, mockPosts)

	mockUsers.On("Upsert", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	user, err := service.LoginOrCreate(context.Background(), "uid-1", "yvonne@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "uid-1", user.UID)
	assert.Equal(t, "yvonne@example.com", user.Email)
	mockUsers.AssertExpectations(t)

	// uid 或邮箱缺失时拒绝
	_, err = service.LoginOrCreate(context.Background(), "", "yvonne@example.com")
	assert.True(t, errors.Is(err, errors.ErrValidation))
	_, err = service.LoginOrCreate(context.Background(), "uid-1", "")
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

// TestGetProfilePosts 测试个人主页的用户名推导与帖子读取
func TestGetProfilePosts(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockPosts := new(MockPostRepository)
	service := NewUserService(mockUsers, mockPosts)

	posts := []*model.Post{
		{ID: "p2", Username: "yvonne", Date: "2024-03-02T00:00:00.000000Z"},
		{ID: "p1", Username: "yvonne", Date: "2024-03-01T00:00:00.000000Z"},
	}
	// 用户名是邮箱本地部分的小写形式
	mockPosts.On("ListByUsernameOrdered", mock.Anything, "yvonne").Return(posts, nil)

	username, got, err := service.GetProfilePosts(context.Background(), "Yvonne@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "yvonne", username)
	assert.Equal(t, posts, got)
	mockPosts.AssertExpectations(t)
}

// TestExpandEdges 测试关注边到用户记录的解析，消失的账号被跳过
func TestExpandEdges(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockPosts := new(MockPostRepository)
	service := NewUserService(mockUsers, mockPosts)

	alive := &model.User{UID: "u1", Email: "alice@example.com"}
	mockUsers.On("GetByID", mock.Anything, "u1").Return(alive, nil)
	mockUsers.On("GetByID", mock.Anything, "gone").Return(nil, nil)

	edges := []model.FollowEdge{
		{UID: "u1", Timestamp: "2024-03-01T00:00:00.000000Z"},
		{UID: "gone", Timestamp: "2024-03-02T00:00:00.000000Z"},
	}
	users := service.ExpandEdges(context.Background(), edges)
	assert.Len(t, users, 1)
	assert.Equal(t, alive, users[0])
	mockUsers.AssertExpectations(t)
}

// TestSearch 测试按邮箱前缀检索
func TestSearch(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockPosts := new(MockPostRepository)
	service := NewUserService(mockUsers, mockPosts)

	found := []*model.User{{UID: "u1", Email: "yvonne@example.com"}}
	mockUsers.On("SearchByEmailPrefix", mock.Anything, "yvo", searchLimit).Return(found, nil)

	users, err := service.Search(context.Background(), "yvo")
	assert.NoError(t, err)
	assert.Equal(t, found, users)
	mockUsers.AssertExpectations(t)
}
