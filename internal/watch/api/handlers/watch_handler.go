package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"eduwatch_service/internal/watch/app"
	"eduwatch_service/pkg/database"
	"eduwatch_service/pkg/logger"
	"eduwatch_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
)

// WatchHandler 處理觀看 session 相關的 HTTP 請求
type WatchHandler struct {
	WatchUC     *app.WatchUseCase
	MinioClient *database.MinIOClient
}

// NewWatchHandler create WatchHandler
func NewWatchHandler(watchUC *app.WatchUseCase, minioClient *database.MinIOClient) *WatchHandler {
	return &WatchHandler{
		WatchUC:     watchUC,
		MinioClient: minioClient,
	}
}

// StartWatch 掛載觀看頁
// @Summary 開始觀看影片
// @Description 建立觀看 session，回傳影片資訊、播放來源與討論區塊
// @Tags Watch
// @Produce json
// @Param id path int true "影片 ID"
// @Success 200 {object} domain.WatchPageRes "觀看頁資料"
// @Failure 404 {object} string "找不到影片"
// @Router /videos/{id} [get]
func (h *WatchHandler) StartWatch(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid video id"})
	}
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	res, err := h.WatchUC.StartSession(c.Context(), memberID, uint(id))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(res)
}

// ProxyStream 代理回傳影片本體，Proxy 來源指到這裡
func (h *WatchHandler) ProxyStream(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid video id"})
	}

	objectKey := fmt.Sprintf("videos/%d.mp4", id)
	ctx := context.Background()
	obj, err := h.MinioClient.GetObject(ctx, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return c.Status(http.StatusInternalServerError).SendString("無法取得影片檔案: " + err.Error())
	}
	defer obj.Close()

	c.Set("Content-Type", "video/mp4")
	if _, err := io.Copy(c.Response().BodyWriter(), obj); err != nil {
		return c.Status(http.StatusInternalServerError).SendString("讀取影片檔案失敗: " + err.Error())
	}
	return nil
}

// PlaybackError 回報播放失敗，回傳下一個播放來源
// @Summary 回報播放錯誤
// @Description 播放器掛掉時呼叫，依階梯換下一個來源
// @Tags Watch
// @Accept json
// @Produce json
// @Success 200 {object} domain.PlaybackSource "下一個來源"
// @Router /sessions/{id}/playback-error [post]
func (h *WatchHandler) PlaybackError(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	// 階梯走完也回 200，讓前端顯示 Failed 畫面（可能帶內嵌 URL）
	src, _ := h.WatchUC.PlaybackError(sessionID)
	return c.JSON(src)
}

// UpdatePosition 更新播放位置
func (h *WatchHandler) UpdatePosition(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	type request struct {
		Position int `json:"position"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	applied := h.WatchUC.UpdatePosition(sessionID, req.Position)
	return c.JSON(fiber.Map{"applied": applied})
}

// SeekMarker 點筆記的時間戳標記跳轉
func (h *WatchHandler) SeekMarker(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	type request struct {
		Label string `json:"label"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	seconds, ok := h.WatchUC.SeekToMarker(sessionID, req.Label)
	return c.JSON(fiber.Map{"applied": ok, "seconds": seconds})
}

// RecordProgress 定期進度回報
// @Summary 回報觀看進度
// @Tags Watch
// @Accept json
// @Produce json
// @Router /views [post]
func (h *WatchHandler) RecordProgress(c *fiber.Ctx) error {
	type request struct {
		SessionID    string `json:"session_id"`
		WatchTime    int    `json:"watch_time"`
		LastPosition int    `json:"last_position"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.WatchUC.RecordProgress(c.Context(), req.SessionID, req.WatchTime, req.LastPosition); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"msg": "ok"})
}

// Progress 上次觀看進度，續播用
func (h *WatchHandler) Progress(c *fiber.Ctx) error {
	videoID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid video id"})
	}
	memberID, _ := c.Locals(middlewares.TokenMemberID).(string)

	view, err := h.WatchUC.Progress(c.Context(), memberID, uint(videoID))
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(view)
}

// Like 按讚
func (h *WatchHandler) Like(c *fiber.Ctx) error {
	videoID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid video id"})
	}

	type request struct {
		SessionID string `json:"session_id"`
	}
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
	}

	if err := h.WatchUC.Like(req.SessionID, uint(videoID)); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"msg": "ok"})
}

// Popular 熱門影片
func (h *WatchHandler) Popular(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		logger.Log.Errorf("Popular limit transfer err :", err)
		limit = 10
	}

	videos, err := h.WatchUC.Popular(limit)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(videos)
}

// Release 卸載觀看頁
// @Summary 結束觀看 session
// @Tags Watch
// @Param id path string true "Session ID"
// @Router /sessions/{id} [delete]
func (h *WatchHandler) Release(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	released := h.WatchUC.Release(sessionID)
	return c.JSON(fiber.Map{"released": released})
}

// PresignDownload 產生短時間有效的影片下載連結
func (h *WatchHandler) PresignDownload(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid video id"})
	}

	objectKey := fmt.Sprintf("videos/%d.mp4", id)
	url, err := h.MinioClient.PresignGetURL(context.Background(), objectKey, 15*time.Minute)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "生成 Presigned URL 失敗"})
	}
	return c.JSON(fiber.Map{"url": url})
}
