package domain

// Video 定義影片模型
type Video struct {
	ID           uint `gorm:"primaryKey"`
	Title        string
	Description  string
	RawURL       string // 資料庫儲存的原始來源 URL
	OptimizedURL string // 預先轉好畫質的 URL，可能為空
	Duration     uint   // 秒
	AuthorID     string
	LikeCount    uint // 觀看期間唯一可變的欄位之一
	ViewCount    uint
}

// WatchVideoRes usecase watch video response
type WatchVideoRes struct {
	VideoID     int    `json:"video_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    uint   `json:"duration"`
	AuthorID    string `json:"author_id"`
	LikeCount   uint   `json:"like_count"`
	ViewCount   uint   `json:"view_count"`
	PlaybackURL string `json:"playback_url"`
}

// WatchPageRes usecase watch page response
// 討論區塊抓不到時各自降級，不影響播放
type WatchPageRes struct {
	SessionID         string               `json:"session_id"`
	Video             WatchVideoRes        `json:"video"`
	Source            PlaybackSource       `json:"source"`
	Comments          []CommentWithReplies `json:"comments"`
	CommentsDegraded  bool                 `json:"comments_degraded,omitempty"`
	Questions         []Question           `json:"questions"`
	QuestionsDegraded bool                 `json:"questions_degraded,omitempty"`
	Notes             []Note               `json:"notes"`
	NotesDegraded     bool                 `json:"notes_degraded,omitempty"`
	Playlists         []Playlist           `json:"playlists"`
	PlaylistsDegraded bool                 `json:"playlists_degraded,omitempty"`
}

// View 觀看進度，定期回報累積
type View struct {
	MemberID             string  `json:"member_id"`
	VideoID              uint    `json:"video_id"`
	WatchTime            int     `json:"watch_time"` // 累計觀看秒數
	CompletionPercentage float64 `json:"completion_percentage"`
	LastPosition         int     `json:"last_position"`
	UpdatedAt            int64   `json:"updated_at"`
}

// ProgressEvent kafka 進度事件 payload (topic: watch.progress)
type ProgressEvent struct {
	SessionID            string  `json:"session_id"`
	MemberID             string  `json:"member_id"`
	VideoID              uint    `json:"video_id"`
	WatchTime            int     `json:"watch_time"`
	CompletionPercentage float64 `json:"completion_percentage"`
	LastPosition         int     `json:"last_position"`
	Timestamp            int64   `json:"timestamp"`
}
