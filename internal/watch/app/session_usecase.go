package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eduwatch_service/internal/watch/domain"
	"eduwatch_service/internal/watch/repository"
	"eduwatch_service/pkg/config"
	"eduwatch_service/pkg/database"
	errprocess "eduwatch_service/pkg/err"
	"eduwatch_service/pkg/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// WatchUseCase 負責觀看 session 的生命週期
type WatchUseCase struct {
	videoRepo    repository.VideoRepo
	viewRepo     repository.ViewRepository
	commentRepo  repository.CommentRepository
	questionRepo repository.QuestionRepository
	noteRepo     repository.NoteRepository
	playlistRepo repository.PlaylistRepository
	registry     *SessionRegistry
	kafkaWriter  database.KafkaWriterRepo
	sessionCfg   config.SessionConfig
}

// NewWatchUseCase init watch use case
func NewWatchUseCase(
	videoRepo repository.VideoRepo,
	viewRepo repository.ViewRepository,
	commentRepo repository.CommentRepository,
	questionRepo repository.QuestionRepository,
	noteRepo repository.NoteRepository,
	playlistRepo repository.PlaylistRepository,
	registry *SessionRegistry,
	kafkaWriter database.KafkaWriterRepo,
	sessionCfg config.SessionConfig,
) *WatchUseCase {
	return &WatchUseCase{
		videoRepo:    videoRepo,
		viewRepo:     viewRepo,
		commentRepo:  commentRepo,
		questionRepo: questionRepo,
		noteRepo:     noteRepo,
		playlistRepo: playlistRepo,
		registry:     registry,
		kafkaWriter:  kafkaWriter,
		sessionCfg:   sessionCfg,
	}
}

// StartSession 掛載觀看頁
// 影片本體抓不到整頁失敗；留言、提問、筆記、播放清單各自抓，抓不到只降級該區塊
func (uc *WatchUseCase) StartSession(ctx context.Context, memberID string, videoID uint) (*domain.WatchPageRes, error) {
	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		return nil, errprocess.Set(fmt.Sprintf("video not found: %v", err))
	}

	session := domain.NewWatchSession(uuid.New().String(), memberID, video)
	uc.registry.Add(session)

	// 進頁就算一次觀看，失敗不擋掛載
	if err := uc.videoRepo.IncrementViewCount(videoID); err != nil {
		logger.Log.Error("increment view count err", zap.String("err", err.Error()))
	}

	res := &domain.WatchPageRes{
		SessionID: session.ID,
		Video: domain.WatchVideoRes{
			VideoID:     int(video.ID),
			Title:       video.Title,
			Description: video.Description,
			Duration:    video.Duration,
			AuthorID:    video.AuthorID,
			LikeCount:   video.LikeCount,
			ViewCount:   video.ViewCount,
		},
		Source: session.ResolveSource(),
	}
	res.Video.PlaybackURL = res.Source.URL

	videoKey := fmt.Sprintf("%d", videoID)
	comments, err := uc.commentRepo.FindRootsByVideo(ctx, videoKey, true)
	if err != nil {
		logger.Log.Error("load comments err", zap.String("videoID", videoKey), zap.String("err", err.Error()))
		res.CommentsDegraded = true
	} else {
		res.Comments = comments
		session.Tree().LoadSnapshot(comments)
	}

	questions, err := uc.questionRepo.FindByVideo(ctx, videoKey)
	if err != nil {
		logger.Log.Error("load questions err", zap.String("videoID", videoKey), zap.String("err", err.Error()))
		res.QuestionsDegraded = true
	} else {
		res.Questions = questions
	}

	notes, err := uc.noteRepo.FindByOwner(ctx, memberID, videoKey)
	if err != nil {
		logger.Log.Error("load notes err", zap.String("memberID", memberID), zap.String("err", err.Error()))
		res.NotesDegraded = true
	} else {
		res.Notes = notes
	}

	playlists, err := uc.playlistRepo.FindByOwner(ctx, memberID)
	if err != nil {
		logger.Log.Error("load playlists err", zap.String("memberID", memberID), zap.String("err", err.Error()))
		res.PlaylistsDegraded = true
	} else {
		res.Playlists = playlists
	}

	return res, nil
}

// Get find session by id
func (uc *WatchUseCase) Get(sessionID string) (*domain.WatchSession, bool) {
	return uc.registry.Get(sessionID)
}

// PlaybackError 回報播放失敗，換下一個來源
func (uc *WatchUseCase) PlaybackError(sessionID string) (domain.PlaybackSource, error) {
	session, ok := uc.registry.Get(sessionID)
	if !ok {
		return domain.PlaybackSource{State: domain.SourceFailed}, errprocess.Set("session not found")
	}

	src, err := session.AdvanceSource()
	logger.Log.Info("playback source advanced",
		zap.String("sessionID", sessionID),
		zap.String("state", string(src.State)))
	return src, err
}

// UpdatePosition 更新播放位置，間隔內的更新被節流丟棄
func (uc *WatchUseCase) UpdatePosition(sessionID string, position int) bool {
	session, ok := uc.registry.Get(sessionID)
	if !ok {
		return false
	}
	return session.SetPosition(position, uc.sessionCfg.PositionThrottle())
}

// SeekToMarker 點筆記裡的時間戳標記跳到該秒數
// 標記文字解析不了就 no-op，不是錯誤
func (uc *WatchUseCase) SeekToMarker(sessionID, label string) (int, bool) {
	seconds, ok := domain.ParseMarkerLabel(label)
	if !ok {
		return 0, false
	}
	session, exists := uc.registry.Get(sessionID)
	if !exists {
		return 0, false
	}
	if !session.Seek(seconds) {
		return 0, false
	}
	return seconds, true
}

// RecordProgress 定期進度回報
// 間隔內的 ping 被丟棄；進度落地後順便丟 kafka 事件，kafka 掛了不影響回報
func (uc *WatchUseCase) RecordProgress(ctx context.Context, sessionID string, watchTime, lastPosition int) error {
	session, ok := uc.registry.Get(sessionID)
	if !ok {
		return errprocess.Set("session not found")
	}
	if !session.AllowProgress(uc.sessionCfg.ProgressCadence()) {
		return nil
	}

	completion := 0.0
	if session.Video.Duration > 0 {
		completion = float64(watchTime) / float64(session.Video.Duration) * 100
		if completion > 100 {
			completion = 100
		}
	}

	view := &domain.View{
		MemberID:             session.MemberID,
		VideoID:              session.Video.ID,
		WatchTime:            watchTime,
		CompletionPercentage: completion,
		LastPosition:         lastPosition,
		UpdatedAt:            time.Now().Unix(),
	}
	if err := uc.viewRepo.Upsert(ctx, view); err != nil {
		return errprocess.Set(fmt.Sprintf("upsert view err: %v", err))
	}

	if uc.kafkaWriter != nil {
		event := domain.ProgressEvent{
			SessionID:            sessionID,
			MemberID:             session.MemberID,
			VideoID:              session.Video.ID,
			WatchTime:            watchTime,
			CompletionPercentage: completion,
			LastPosition:         lastPosition,
			Timestamp:            time.Now().Unix(),
		}
		data, _ := json.Marshal(event)
		if err := uc.kafkaWriter.WriteMessages(ctx, kafka.Message{
			Key:   []byte(session.MemberID),
			Value: data,
		}); err != nil {
			logger.Log.Error("progress event publish err", zap.String("err", err.Error()))
		}
	}
	return nil
}

// Like 按讚，觀看期間唯一允許改影片的操作
// 路徑上的影片 id 必須就是 session 正在看的那部
func (uc *WatchUseCase) Like(sessionID string, videoID uint) error {
	session, ok := uc.registry.Get(sessionID)
	if !ok {
		return errprocess.Set("session not found")
	}
	if session.Video.ID != videoID {
		return errprocess.Set(fmt.Sprintf("video %d does not belong to session %s", videoID, sessionID))
	}
	if err := uc.videoRepo.IncrementLike(session.Video.ID); err != nil {
		return errprocess.Set(fmt.Sprintf("increment like err: %v", err))
	}
	return nil
}

// Progress 上次看到哪，載入頁面後續播用
func (uc *WatchUseCase) Progress(ctx context.Context, memberID string, videoID uint) (*domain.View, error) {
	return uc.viewRepo.Get(ctx, memberID, videoID)
}

// Popular 熱門影片
func (uc *WatchUseCase) Popular(limit int) ([]domain.Video, error) {
	return uc.videoRepo.PopularVideos(limit)
}

// Release 卸載觀看頁，session 釋放後丟棄所有在途結果
func (uc *WatchUseCase) Release(sessionID string) bool {
	released := uc.registry.Remove(sessionID)
	if released {
		logger.Log.Info("session released", zap.String("sessionID", sessionID))
	}
	return released
}
