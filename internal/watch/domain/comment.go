package domain

// Comment 表示一則留言，ParentID 為空代表根留言
// 回覆不能再被回覆（最多一層）
type Comment struct {
	ID         string   `bson:"_id" json:"id"`
	VideoID    string   `bson:"video_id" json:"video_id"`
	AuthorID   string   `bson:"author_id" json:"author_id"`
	AuthorName string   `bson:"author_name" json:"author_name"`
	Content    string   `bson:"content" json:"content"`
	ParentID   string   `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	ReplyIDs   []string `bson:"reply_ids,omitempty" json:"reply_ids,omitempty"` // 根留言維護回覆的建立順序
	CreatedAt  int64    `bson:"created_at" json:"created_at"`
}

// IsRoot check comment is root
func (c *Comment) IsRoot() bool {
	return c.ParentID == ""
}

// CommentWithReplies 根留言加上依建立順序排好的回覆
type CommentWithReplies struct {
	Comment `bson:",inline"`
	Replies []Comment `bson:"replies,omitempty" json:"replies,omitempty"`
}

// Question 表示一則提問，可選擇錨定某個播放秒數
// 只能建立或刪除，不能編輯
type Question struct {
	ID           string   `bson:"_id" json:"id"`
	VideoID      string   `bson:"video_id" json:"video_id"`
	AuthorID     string   `bson:"author_id" json:"author_id"`
	AuthorName   string   `bson:"author_name" json:"author_name"`
	Content      string   `bson:"content" json:"content"`
	TimestampSec *int     `bson:"timestamp_sec,omitempty" json:"timestamp_sec,omitempty"`
	Answers      []Answer `bson:"answers,omitempty" json:"answers,omitempty"` // 依回答順序 append
	CreatedAt    int64    `bson:"created_at" json:"created_at"`
}

// Answer 表示對提問的回答
type Answer struct {
	ID         string `bson:"id" json:"id"`
	AuthorID   string `bson:"author_id" json:"author_id"`
	AuthorName string `bson:"author_name" json:"author_name"`
	Content    string `bson:"content" json:"content"`
	CreatedAt  int64  `bson:"created_at" json:"created_at"`
}

// Playlist 收藏清單
type Playlist struct {
	ID        string   `bson:"_id" json:"id"`
	OwnerID   string   `bson:"owner_id" json:"owner_id"`
	Name      string   `bson:"name" json:"name"`
	VideoIDs  []string `bson:"video_ids,omitempty" json:"video_ids,omitempty"`
	UpdatedAt int64    `bson:"updated_at" json:"updated_at"`
}
