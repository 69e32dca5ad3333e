package domain

const (
	//ModerationQueueName definition moderation queue name
	ModerationQueueName = "report_moderation"
)

// ReportStatus definition report status
type ReportStatus string

const (
	//ReportPending report waiting review
	ReportPending ReportStatus = "pending"
	//ReportReviewed report reviewed
	ReportReviewed ReportStatus = "reviewed"
	//ReportIgnored report ignored
	ReportIgnored ReportStatus = "ignored"
)

// Report 檢舉紀錄，只有反悔期過了才會落地
type Report struct {
	ID         string       `json:"id"`
	ReporterID string       `json:"reporter_id"`
	CommentID  string       `json:"comment_id"`
	VideoID    string       `json:"video_id"`
	Reason     string       `json:"reason"`
	Status     ReportStatus `json:"status"`
	CreatedAt  int64        `json:"created_at"`
}
