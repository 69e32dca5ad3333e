package domain

import "encoding/json"

// Action websocket request action
type Action string

const (
	// JoinVideoRoom websocket action joinVideoRoom
	JoinVideoRoom Action = "joinVideoRoom"
	// LeaveVideoRoom websocket action leaveVideoRoom
	LeaveVideoRoom Action = "leaveVideoRoom"
)

// EventType 房間內廣播的討論事件
type EventType string

const (
	// CommentReceived 新的根留言
	CommentReceived EventType = "commentReceived"
	// CommentReplyReceived 新的回覆
	CommentReplyReceived EventType = "commentReplyReceived"
	// CommentDeleted 根留言被刪除
	CommentDeleted EventType = "commentDeleted"
	// ReplyDeleted 回覆被刪除
	ReplyDeleted EventType = "replyDeleted"
	// QuestionReceived 新的提問
	QuestionReceived EventType = "questionReceived"
	// AnswerReceived 新的回答
	AnswerReceived EventType = "answerReceived"
)

// WSRequest websocket Request
type WSRequest struct {
	Action    string `json:"action"`
	VideoID   string `json:"video_id"`
	SessionID string `json:"session_id"`
}

// WSResponse websocket Response
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// RoomEvent redis pub/sub 的事件格式，帶影片 id 與實體 payload
type RoomEvent struct {
	Type     EventType       `json:"type"`
	VideoID  string          `json:"video_id"`
	ParentID string          `json:"parent_id,omitempty"` // reply 事件才有
	EntityID string          `json:"entity_id,omitempty"` // delete 事件只帶 id
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// RoomChannel 影片房間對應的 redis channel
func RoomChannel(videoID string) string {
	return "watch:video:" + videoID
}
