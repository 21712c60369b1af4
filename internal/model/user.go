package model

// FollowEdge 表示一条带时间戳的关注关系边。
// 同一条关系会冗余存储在双方的用户文档中（following / followers）。
type FollowEdge struct {
	UID       string `json:"uid" firestore:"uid"`
	Timestamp string `json:"timestamp" firestore:"timestamp"`
}

// User 结构体表示用户模型。文档ID即uid，由身份提供方分配，创建后不可变。
// 用户名由邮箱 @ 之前的部分推导，不同邮箱可能得到相同用户名（已知限制）。
type User struct {
	UID       string       `json:"uid" firestore:"uid"`
	Email     string       `json:"email" firestore:"email"`
	Following []FollowEdge `json:"following" firestore:"following"`
	Followers []FollowEdge `json:"followers" firestore:"followers"`
}

// IsFollowing 判断用户是否已关注目标用户
func (u *User) IsFollowing(targetUID string) bool {
	return containsEdge(u.Following, targetUID)
}

// HasFollower 判断目标用户是否已在粉丝列表中
func (u *User) HasFollower(uid string) bool {
	return containsEdge(u.Followers, uid)
}

// AddFollowing 向关注列表追加一条边，已存在时不重复添加。
// 返回值表示列表是否发生了变化。
func (u *User) AddFollowing(targetUID, timestamp string) bool {
	if containsEdge(u.Following, targetUID) {
		return false
	}
	u.Following = append(u.Following, FollowEdge{UID: targetUID, Timestamp: timestamp})
	return true
}

// AddFollower 向粉丝列表追加一条边，已存在时不重复添加
func (u *User) AddFollower(uid, timestamp string) bool {
	if containsEdge(u.Followers, uid) {
		return false
	}
	u.Followers = append(u.Followers, FollowEdge{UID: uid, Timestamp: timestamp})
	return true
}

// RemoveFollowing 从关注列表移除指定边，不存在时为空操作
func (u *User) RemoveFollowing(targetUID string) bool {
	var removed bool
	u.Following, removed = removeEdge(u.Following, targetUID)
	return removed
}

// RemoveFollower 从粉丝列表移除指定边，不存在时为空操作
func (u *User) RemoveFollower(uid string) bool {
	var removed bool
	u.Followers, removed = removeEdge(u.Followers, uid)
	return removed
}

func containsEdge(edges []FollowEdge, uid string) bool {
	for _, e := range edges {
		if e.UID == uid {
			return true
		}
	}
	return false
}

func removeEdge(edges []FollowEdge, uid string) ([]FollowEdge, bool) {
	for i, e := range edges {
		if e.UID == uid {
			return append(edges[:i], edges[i+1:]...), true
		}
	}
	return edges, false
}
