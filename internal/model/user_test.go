package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestAddFollowing 测试关注边的追加与去重
func TestAddFollowing(t *testing.T) {
	u := &User{UID: "a"}

	assert.True(t, u.AddFollowing("b", "2024-01-01T00:00:00.000000Z"))
	assert.True(t, u.IsFollowing("b"))

	// 重复追加不产生第二条边
	assert.False(t, u.AddFollowing("b", "2024-01-02T00:00:00.000000Z"))
	assert.Len(t, u.Following, 1)
	// 首次的时间戳保持不变
	assert.Equal(t, "2024-01-01T00:00:00.000000Z", u.Following[0].Timestamp)
}

// TestRemoveFollowing 测试关注边的移除
func TestRemoveFollowing(t *testing.T) {
	u := &User{UID: "a"}
	u.AddFollowing("b", "2024-01-01T00:00:00.000000Z")
	u.AddFollowing("c", "2024-01-01T00:00:01.000000Z")

	assert.True(t, u.RemoveFollowing("b"))
	assert.False(t, u.IsFollowing("b"))
	assert.True(t, u.IsFollowing("c"))

	// 不存在的边是空操作
	assert.False(t, u.RemoveFollowing("b"))
	assert.Len(t, u.Following, 1)
}

func TestFollowerEdges(t *testing.T) {
	u := &User{UID: "b"}

	assert.True(t, u.AddFollower("a", "2024-01-01T00:00:00.000000Z"))
	assert.True(t, u.HasFollower("a"))
	assert.False(t, u.AddFollower("a", "2024-01-01T00:00:00.000000Z"))

	assert.True(t, u.RemoveFollower("a"))
	assert.False(t, u.HasFollower("a"))
	assert.Empty(t, u.Followers)
}
