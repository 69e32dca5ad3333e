package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SpanType definition note content span type
type SpanType string

const (
	//SpanText 普通文字
	SpanText SpanType = "text"
	//SpanTimestamp 時間戳標記，有獨立樣式所以點擊處理不受周圍編輯影響
	SpanTimestamp SpanType = "timestamp"
)

// NoteSpan 筆記富文本的一段內容
type NoteSpan struct {
	Type    SpanType `bson:"type" json:"type"`
	Text    string   `bson:"text" json:"text"`
	Seconds int      `bson:"seconds,omitempty" json:"seconds,omitempty"` // 只有 timestamp span 有意義
}

// Note 筆記，VideoID 為空代表獨立筆記
// 只有擁有者能改
type Note struct {
	ID        string     `bson:"_id" json:"id"`
	OwnerID   string     `bson:"owner_id" json:"owner_id"`
	VideoID   string     `bson:"video_id,omitempty" json:"video_id,omitempty"`
	Spans     []NoteSpan `bson:"spans,omitempty" json:"spans,omitempty"`
	UpdatedAt int64      `bson:"updated_at" json:"updated_at"`
}

// FormatMarker 把秒數轉成 "[M:SS] " 字面標記，95 -> "[1:35] "
func FormatMarker(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("[%d:%02d] ", seconds/60, seconds%60)
}

// ParseMarkerLabel 把標記顯示文字解析回秒數
// 接受 "[1:35] "、"[1:35]"、"1:35"，解析不了回 ok=false（no-op，不是錯誤）
func ParseMarkerLabel(label string) (int, bool) {
	s := strings.TrimSpace(label)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || min < 0 {
		return 0, false
	}
	sec, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || sec < 0 || sec > 59 {
		return 0, false
	}
	return min*60 + sec, true
}

// IsEmpty note has no content
func (n *Note) IsEmpty() bool {
	return len(n.Spans) == 0
}

// InsertMarker 在游標位置插入時間戳標記
// cursor 是 span index；cursor < 0 表示位置未知：文件非空時先補換行再 append
func (n *Note) InsertMarker(seconds, cursor int) {
	marker := NoteSpan{
		Type:    SpanTimestamp,
		Text:    FormatMarker(seconds),
		Seconds: seconds,
	}

	if cursor < 0 || cursor > len(n.Spans) {
		if !n.IsEmpty() {
			n.Spans = append(n.Spans, NoteSpan{Type: SpanText, Text: "\n"})
		}
		n.Spans = append(n.Spans, marker)
		return
	}

	n.Spans = append(n.Spans[:cursor], append([]NoteSpan{marker}, n.Spans[cursor:]...)...)
}

// PlainText 文件的純文字內容
func (n *Note) PlainText() string {
	var b strings.Builder
	for _, s := range n.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
