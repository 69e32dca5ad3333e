package router

import (
	"context"

	"eduwatch_service/internal/watch/api/handlers"
	"eduwatch_service/internal/watch/app"
	"eduwatch_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes 注册观看页相关的路由
// @title EduWatch Service API
// @version 1.0
// @description API documentation for EduWatch Service
// @host localhost:8084
// @BasePath /
func RegisterRoutes(
	r *fiber.App,
	watchHandler *handlers.WatchHandler,
	discussionHandler *handlers.DiscussionHandler,
	watchUC *app.WatchUseCase,
	roomPubSub app.RoomPublisher,
) {
	r.Get("/swagger/*", swagger.HandlerDefault)

	// 代理連結不帶 token，播放器抓 segment 不會送 header
	r.Get("/videos/proxy/:id", watchHandler.ProxyStream)

	r.Use(middlewares.JWTMiddleware())

	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		// 每條連線一個 handler 實例，房間訂閱狀態不共用
		app.NewWatchWebsocketHandler(watchUC, roomPubSub).HandleConnection(context.Background(), c)
	}))

	r.Get("/videos/popular", watchHandler.Popular)
	r.Get("/videos/:id", watchHandler.StartWatch)
	r.Get("/videos/:id/download", watchHandler.PresignDownload)
	r.Get("/videos/:id/progress", watchHandler.Progress)
	r.Put("/videos/:id/like", watchHandler.Like)

	r.Post("/sessions/:id/playback-error", watchHandler.PlaybackError)
	r.Put("/sessions/:id/position", watchHandler.UpdatePosition)
	r.Post("/sessions/:id/seek", watchHandler.SeekMarker)
	r.Delete("/sessions/:id", watchHandler.Release)
	r.Post("/views", watchHandler.RecordProgress)

	r.Get("/videos/:id/comments", discussionHandler.ListComments)
	r.Post("/comments", discussionHandler.CreateComment)
	r.Delete("/comments/:parentId/replies/:id", discussionHandler.DeleteReply)
	r.Delete("/comments/:id", discussionHandler.DeleteComment)

	r.Get("/videos/:id/questions", discussionHandler.ListQuestions)
	r.Post("/questions", discussionHandler.CreateQuestion)
	r.Post("/questions/:id/answers", discussionHandler.AnswerQuestion)
	r.Delete("/questions/:id", discussionHandler.DeleteQuestion)

	r.Get("/notes", discussionHandler.ListNotes)
	r.Post("/notes", discussionHandler.CreateNote)
	r.Put("/notes/:id", discussionHandler.UpdateNote)
	r.Post("/notes/:id/marker", discussionHandler.InsertNoteMarker)
	r.Delete("/notes/:id", discussionHandler.DeleteNote)

	r.Post("/reports", discussionHandler.SubmitReport)
	r.Delete("/reports/cancel/:commentId", discussionHandler.CancelReport)
	r.Get("/reports/comment/:commentId", discussionHandler.ListCommentReports)
	r.Put("/reports/:id/status", discussionHandler.ResolveReport)

	r.Get("/playlists", discussionHandler.ListPlaylists)
	r.Post("/playlists", discussionHandler.CreatePlaylist)
	r.Post("/playlists/:id/videos", discussionHandler.AddPlaylistVideo)
	r.Delete("/playlists/:id/videos/:videoId", discussionHandler.RemovePlaylistVideo)
	r.Delete("/playlists/:id", discussionHandler.DeletePlaylist)
}
