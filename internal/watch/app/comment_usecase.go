package app

import (
	"context"
	"encoding/json"
	"time"

	"eduwatch_service/internal/watch/domain"
	"eduwatch_service/internal/watch/repository"
	errprocess "eduwatch_service/pkg/err"
	"eduwatch_service/pkg/logger"
	"eduwatch_service/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommentUseCase 負責留言與回覆
// 寫入走兩條路：REST 回應直接併進發話者自己的 session 樹，
// 房間廣播再把同一筆事件送給所有人（含發話者自己），併入靠 id 冪等
type CommentUseCase struct {
	commentRepo repository.CommentRepository
	roomPubSub  RoomPublisher
	registry    *SessionRegistry
}

// NewCommentUseCase init comment use case
func NewCommentUseCase(
	commentRepo repository.CommentRepository,
	roomPubSub RoomPublisher,
	registry *SessionRegistry,
) *CommentUseCase {
	return &CommentUseCase{
		commentRepo: commentRepo,
		roomPubSub:  roomPubSub,
		registry:    registry,
	}
}

// List 影片的根留言（最新在前）與回覆
func (uc *CommentUseCase) List(ctx context.Context, videoID string, includeReplies bool) ([]domain.CommentWithReplies, error) {
	return uc.commentRepo.FindRootsByVideo(ctx, videoID, includeReplies)
}

// Create 新增根留言
// sessionID 非空時把留言直接併進發話者的 session 樹（不等廣播回來）
func (uc *CommentUseCase) Create(ctx context.Context, videoID, authorID, authorName, content, sessionID string) (*domain.Comment, error) {
	if content == "" {
		return nil, errprocess.Set("comment content is empty")
	}

	comment := &domain.Comment{
		ID:         uuid.New().String(),
		VideoID:    videoID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
		CreatedAt:  time.Now().Unix(),
	}
	if err := uc.commentRepo.Insert(ctx, comment); err != nil {
		return nil, err
	}

	if sessionID != "" {
		if session, ok := uc.registry.Get(sessionID); ok {
			session.Tree().UpsertRoot(*comment)
		}
	}

	uc.broadcast(domain.RoomEvent{
		Type:    domain.CommentReceived,
		VideoID: videoID,
		Payload: marshalEntity(comment),
	})
	return comment, nil
}

// Reply 回覆根留言，回覆不能再被回覆
func (uc *CommentUseCase) Reply(ctx context.Context, parentID, authorID, authorName, content, sessionID string) (*domain.Comment, error) {
	if content == "" {
		return nil, errprocess.Set("reply content is empty")
	}

	parent, err := uc.commentRepo.FindByID(ctx, parentID)
	if err != nil {
		return nil, errprocess.Set("parent comment not found")
	}
	if !parent.IsRoot() {
		return nil, errprocess.Set("replies cannot be nested")
	}

	reply := &domain.Comment{
		ID:         uuid.New().String(),
		VideoID:    parent.VideoID,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
		ParentID:   parentID,
		CreatedAt:  time.Now().Unix(),
	}
	if err := uc.commentRepo.Insert(ctx, reply); err != nil {
		return nil, err
	}
	if err := uc.commentRepo.PushReply(ctx, parentID, reply.ID); err != nil {
		return nil, err
	}

	if sessionID != "" {
		if session, ok := uc.registry.Get(sessionID); ok {
			session.Tree().UpsertReply(parentID, *reply)
		}
	}

	uc.broadcast(domain.RoomEvent{
		Type:     domain.CommentReplyReceived,
		VideoID:  parent.VideoID,
		ParentID: parentID,
		Payload:  marshalEntity(reply),
	})
	return reply, nil
}

// Delete 刪根留言連同底下所有回覆
// 只有作者本人或老師/管理員能刪
func (uc *CommentUseCase) Delete(ctx context.Context, commentID, requesterID, role string) error {
	comment, err := uc.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return errprocess.Set("comment not found")
	}
	if !canModerate(comment.AuthorID, requesterID, role) {
		return errprocess.Set("not allowed to delete this comment")
	}
	if !comment.IsRoot() {
		return errprocess.Set("use reply delete for replies")
	}

	if err := uc.commentRepo.DeleteCascade(ctx, commentID); err != nil {
		return err
	}

	uc.broadcast(domain.RoomEvent{
		Type:     domain.CommentDeleted,
		VideoID:  comment.VideoID,
		EntityID: commentID,
	})
	return nil
}

// DeleteReply 刪一則回覆
func (uc *CommentUseCase) DeleteReply(ctx context.Context, parentID, replyID, requesterID, role string) error {
	reply, err := uc.commentRepo.FindByID(ctx, replyID)
	if err != nil {
		return errprocess.Set("reply not found")
	}
	if reply.ParentID != parentID {
		return errprocess.Set("reply does not belong to this comment")
	}
	if !canModerate(reply.AuthorID, requesterID, role) {
		return errprocess.Set("not allowed to delete this reply")
	}

	if err := uc.commentRepo.DeleteReply(ctx, parentID, replyID); err != nil {
		return err
	}

	uc.broadcast(domain.RoomEvent{
		Type:     domain.ReplyDeleted,
		VideoID:  reply.VideoID,
		ParentID: parentID,
		EntityID: replyID,
	})
	return nil
}

// broadcast 房間廣播失敗只記 log，寫入本體已經成功
func (uc *CommentUseCase) broadcast(event domain.RoomEvent) {
	if uc.roomPubSub == nil {
		return
	}
	if err := uc.roomPubSub.Publish(event.VideoID, event); err != nil {
		logger.Log.Error("room publish err",
			zap.String("videoID", event.VideoID),
			zap.String("type", string(event.Type)),
			zap.String("err", err.Error()))
	}
}

func canModerate(authorID, requesterID, role string) bool {
	if authorID == requesterID {
		return true
	}
	return role == string(token.RoleTeacher) || role == string(token.RoleAdmin)
}

func marshalEntity(v interface{}) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
