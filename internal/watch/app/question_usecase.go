package app

import (
	"context"
	"time"

	"eduwatch_service/internal/watch/domain"
	"eduwatch_service/internal/watch/repository"
	errprocess "eduwatch_service/pkg/err"
	"eduwatch_service/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuestionUseCase 負責提問與回答
// 提問只能建立或刪除，不能編輯
type QuestionUseCase struct {
	questionRepo repository.QuestionRepository
	roomPubSub   RoomPublisher
}

// NewQuestionUseCase init question use case
func NewQuestionUseCase(questionRepo repository.QuestionRepository, roomPubSub RoomPublisher) *QuestionUseCase {
	return &QuestionUseCase{
		questionRepo: questionRepo,
		roomPubSub:   roomPubSub,
	}
}

// List 影片的提問（最新在前）
func (uc *QuestionUseCase) List(ctx context.Context, videoID string) ([]domain.Question, error) {
	return uc.questionRepo.FindByVideo(ctx, videoID)
}

// Create 新增提問，可選擇錨定某個播放秒數
func (uc *QuestionUseCase) Create(ctx context.Context, videoID, authorID, authorName, content string, timestampSec *int) (*domain.Question, error) {
	if content == "" {
		return nil, errprocess.Set("question content is empty")
	}
	if timestampSec != nil && *timestampSec < 0 {
		return nil, errprocess.Set("question timestamp is negative")
	}

	q := &domain.Question{
		ID:           uuid.New().String(),
		VideoID:      videoID,
		AuthorID:     authorID,
		AuthorName:   authorName,
		Content:      content,
		TimestampSec: timestampSec,
		CreatedAt:    time.Now().Unix(),
	}
	if err := uc.questionRepo.Insert(ctx, q); err != nil {
		return nil, err
	}

	uc.broadcast(domain.RoomEvent{
		Type:    domain.QuestionReceived,
		VideoID: videoID,
		Payload: marshalEntity(q),
	})
	return q, nil
}

// Answer append 一則回答到提問
func (uc *QuestionUseCase) Answer(ctx context.Context, questionID, authorID, authorName, content string) (*domain.Answer, error) {
	if content == "" {
		return nil, errprocess.Set("answer content is empty")
	}

	q, err := uc.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return nil, errprocess.Set("question not found")
	}

	answer := &domain.Answer{
		ID:         uuid.New().String(),
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
		CreatedAt:  time.Now().Unix(),
	}
	if err := uc.questionRepo.PushAnswer(ctx, questionID, answer); err != nil {
		return nil, err
	}

	uc.broadcast(domain.RoomEvent{
		Type:     domain.AnswerReceived,
		VideoID:  q.VideoID,
		ParentID: questionID,
		Payload:  marshalEntity(answer),
	})
	return answer, nil
}

// Delete 刪提問，只有作者本人或老師/管理員能刪
func (uc *QuestionUseCase) Delete(ctx context.Context, questionID, requesterID, role string) error {
	q, err := uc.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return errprocess.Set("question not found")
	}
	if !canModerate(q.AuthorID, requesterID, role) {
		return errprocess.Set("not allowed to delete this question")
	}
	return uc.questionRepo.Delete(ctx, questionID)
}

func (uc *QuestionUseCase) broadcast(event domain.RoomEvent) {
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
