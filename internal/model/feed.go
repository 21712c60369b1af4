package model

// Post 表示一条图片帖子，创建后不可修改。
// Firestore 字段名沿用线上集合的既有命名（首字母大写）。
type Post struct {
	ID       string `json:"id" firestore:"-"`
	Username string `json:"username" firestore:"Username"`
	Date     string `json:"date" firestore:"Date"`
	Caption  string `json:"caption" firestore:"Caption"`
	ImageURL string `json:"image_url" firestore:"ImageURL"`
}

// Comment 表示帖子下的一条评论，存储在帖子文档的子集合中。
// CommentUsername 是展示用的派生字段，不落库。
type Comment struct {
	Text            string `json:"text" firestore:"text"`
	Author          string `json:"author" firestore:"author"`
	Timestamp       string `json:"timestamp" firestore:"timestamp"`
	CommentUsername string `json:"comment_username" firestore:"-"`
}

// TimelinePost 是时间线中的一条帖子，附带最近的若干条评论
type TimelinePost struct {
	Post
	Comments []Comment `json:"comments"`
}
