package handlers

import (
	"net/http"

	"eduwatch_service/internal/watch/app"
	"eduwatch_service/internal/watch/domain"
	"eduwatch_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
)

// DiscussionHandler 處理留言、提問、筆記、檢舉與收藏清單的 HTTP 請求
type DiscussionHandler struct {
	CommentUC  *app.CommentUseCase
	QuestionUC *app.QuestionUseCase
	NoteUC     *app.NoteUseCase
	ReportUC   *app.ReportUseCase
	PlaylistUC *app.PlaylistUseCase
}

// NewDiscussionHandler create DiscussionHandler
func NewDiscussionHandler(
	commentUC *app.CommentUseCase,
	questionUC *app.QuestionUseCase,
	noteUC *app.NoteUseCase,
	reportUC *app.ReportUseCase,
	playlistUC *app.PlaylistUseCase,
) *DiscussionHandler {
	return &DiscussionHandler{
		CommentUC:  commentUC,
		QuestionUC: questionUC,
		NoteUC:     noteUC,
		ReportUC:   reportUC,
		PlaylistUC: playlistUC,
	}
}

func identity(c *fiber.Ctx) (memberID, memberName, role string) {
	memberID, _ = c.Locals(middlewares.TokenMemberID).(string)
	memberName, _ = c.Locals(middlewares.TokenMemberName).(string)
	role, _ = c.Locals(middlewares.TokenRole).(string)
	return
}

// ListComments 影片的留言（最新在前）
// @Summary 影片留言
// @Tags Discussion
// @Param id path string true "影片 ID"
// @Param includeReplies query bool false "是否帶回覆"
// @Router /videos/{id}/comments [get]
func (h *DiscussionHandler) ListComments(c *fiber.Ctx) error {
	videoID := c.Params("id")
	includeReplies := c.QueryBool("includeReplies", true)

	comments, err := h.CommentUC.List(c.Context(), videoID, includeReplies)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(comments)
}

// CreateComment 新增留言，帶 parent_id 代表回覆
func (h *DiscussionHandler) CreateComment(c *fiber.Ctx) error {
	memberID, memberName, _ := identity(c)

	type request struct {
		VideoID   string `json:"video_id"`
		ParentID  string `json:"parent_id"`
		Content   string `json:"content"`
		SessionID string `json:"session_id"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	var (
		comment *domain.Comment
		err     error
	)
	if req.ParentID != "" {
		comment, err = h.CommentUC.Reply(c.Context(), req.ParentID, memberID, memberName, req.Content, req.SessionID)
	} else {
		comment, err = h.CommentUC.Create(c.Context(), req.VideoID, memberID, memberName, req.Content, req.SessionID)
	}
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(comment)
}

// DeleteComment 刪根留言連同所有回覆
func (h *DiscussionHandler) DeleteComment(c *fiber.Ctx) error {
	memberID, _, role := identity(c)

	if err := h.CommentUC.Delete(c.Context(), c.Params("id"), memberID, role); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"msg": "ok"})
}

// DeleteReply 刪一則回覆
func (h *DiscussionHandler) DeleteReply(c *fiber.Ctx) error {
	memberID, _, role := identity(c)

	if err := h.CommentUC.DeleteReply(c.Context(), c.Params("parentId"), c.Params("id"), memberID, role); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"msg": "ok"})
}

// ListQuestions 影片的提問
func (h *DiscussionHandler) ListQuestions(c *fiber.Ctx) error {
	questions, err := h.QuestionUC.List(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(questions)
}

// CreateQuestion 新增提問，可錨定播放秒數
func (h *DiscussionHandler) CreateQuestion(c *fiber.Ctx) error {
	memberID, memberName, _ := identity(c)

	type request struct {
		VideoID      string `json:"video_id"`
		Content      string `json:"content"`
		TimestampSec *int   `json:"timestamp_sec"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	q, err := h.QuestionUC.Create(c.Context(), req.VideoID, memberID, memberName, req.Content, req.TimestampSec)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(q)
}

// AnswerQuestion 回答提問
func (h *DiscussionHandler) AnswerQuestion(c *fiber.Ctx) error {
	memberID, memberName, _ := identity(c)

	type request struct {
		Content string `json:"content"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	answer, err := h.QuestionUC.Answer(c.Context(), c.Params("id"), memberID, memberName, req.Content)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(answer)
}

// DeleteQuestion 刪提問
func (h *DiscussionHandler) DeleteQuestion(c *fiber.Ctx) error {
	memberID, _, role := identity(c)

	if err := h.QuestionUC.Delete(c.Context(), c.Params("id"), memberID, role); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"msg": "ok"})
}

// ListNotes 自己的筆記
func (h *DiscussionHandler) ListNotes(c *fiber.Ctx) error {
	memberID, _, _ := identity(c)

	notes, err := h.NoteUC.List(c.Context(), memberID, c.Query("video_id"))
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(notes)
}

// CreateNote 建立筆記
func (h *DiscussionHandler) CreateNote(c *fiber.Ctx) error {
	memberID, _, _ := identity(c)

	type request struct {
		VideoID string            `json:"video_id"`
		Spans   []domain.NoteSpan `json:"spans"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	note, err := h.NoteUC.Create(c.Context(), memberID, req.VideoID, req.Spans)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(note)
}

// UpdateNote 覆寫筆記內容
func (h *DiscussionHandler) UpdateNote(c *fiber.Ctx) error {
	memberID, _, _ := identity(c)

	type request struct {
		Spans []domain.NoteSpan `json:"spans"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	note, err := h.NoteUC.Update(c.Context(), c.Params("id"), memberID, req.Spans)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(note)
}

// InsertNoteMarker 在筆記插入目前播放秒數的時間戳標記
// @Summary 插入時間戳標記
// @Description 在游標位置插入 [M:SS] 標記，游標未知時附加到文件尾端
// @Tags Notes
// @Router /notes/{id}/marker [post]
func (h *DiscussionHandler) InsertNoteMarker(c *fiber.Ctx) error {
	memberID, _, _ := identity(c)

	type request struct {
		Seconds int `json:"seconds"`
		Cursor  int `json:"cursor"`
	}
	req := request{Cursor: -1}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	note, err := h.NoteUC.InsertMarker(c.Context(), c.Params("id"), memberID, req.Seconds, req.Cursor)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(note)
}

// DeleteNote 刪筆記
func (h *DiscussionHandler) DeleteNote(c *fiber.Ctx) error {
	memberID, _, _ := identity(c)

	if err := h.NoteUC.Delete(c.Context(), c.Params("id"), memberID); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"msg": "ok"})
}

// SubmitReport 檢舉留言，反悔期內可取消
func (h *DiscussionHandler) SubmitReport(c *fiber.Ctx) error {
	type request struct {
		SessionID string `json:"session_id"`
		CommentID string `json:"comment_id"`
		VideoID   string `json:"video_id"`
		Reason    string `json:"reason"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.ReportUC.Submit(req.SessionID, req.CommentID, req.VideoID, req.Reason); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"msg": "report pending"})
}

// CancelReport 反悔期內收回檢舉
func (h *DiscussionHandler) CancelReport(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")

	if err := h.ReportUC.Cancel(sessionID, c.Params("commentId")); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"msg": "report cancelled"})
}

// ListCommentReports 留言的檢舉紀錄，審核用
func (h *DiscussionHandler) ListCommentReports(c *fiber.Ctx) error {
	_, _, role := identity(c)

	reports, err := h.ReportUC.FindByComment(c.Context(), role, c.Params("commentId"))
	if err != nil {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(reports)
}

// ResolveReport 標記審核結果
func (h *DiscussionHandler) ResolveReport(c *fiber.Ctx) error {
	_, _, role := identity(c)

	type request struct {
		Status string `json:"status"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.ReportUC.Resolve(c.Context(), role, c.Params("id"), domain.ReportStatus(req.Status)); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"msg": "report resolved"})
}

// ListPlaylists 自己的收藏清單
func (h *DiscussionHandler) ListPlaylists(c *fiber.Ctx) error {
	memberID, _, _ := identity(c)

	playlists, err := h.PlaylistUC.List(c.Context(), memberID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(playlists)
}

// CreatePlaylist 建立收藏清單
func (h *DiscussionHandler) CreatePlaylist(c *fiber.Ctx) error {
	memberID, _, _ := identity(c)

	type request struct {
		Name string `json:"name"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	playlist, err := h.PlaylistUC.Create(c.Context(), memberID, req.Name)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(playlist)
}

// AddPlaylistVideo 加影片進清單
func (h *DiscussionHandler) AddPlaylistVideo(c *fiber.Ctx) error {
	memberID, _, _ := identity(c)

	type request struct {
		VideoID string `json:"video_id"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.PlaylistUC.AddVideo(c.Context(), c.Params("id"), memberID, req.VideoID); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"msg": "ok"})
}

// RemovePlaylistVideo 從清單移除影片
func (h *DiscussionHandler) RemovePlaylistVideo(c *fiber.Ctx) error {
	memberID, _, _ := identity(c)

	if err := h.PlaylistUC.RemoveVideo(c.Context(), c.Params("id"), memberID, c.Params("videoId")); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"msg": "ok"})
}

// DeletePlaylist 刪清單
func (h *DiscussionHandler) DeletePlaylist(c *fiber.Ctx) error {
	memberID, _, _ := identity(c)

	if err := h.PlaylistUC.Delete(c.Context(), c.Params("id"), memberID); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"msg": "ok"})
}
