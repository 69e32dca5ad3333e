package app

import (
	"context"
	"testing"

	"eduwatch_service/internal/watch/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// 測試建立帶時間錨點的提問
func TestQuestionUseCase_CreateWithTimestamp(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockQuestionRepository)
	mockPub := new(MockRoomPublisher)

	mockRepo.On("Insert", ctx, mock.MatchedBy(func(q *domain.Question) bool {
		return q.TimestampSec != nil && *q.TimestampSec == 95
	})).Return(nil)
	mockPub.On("Publish", "v1", mock.Anything).Return(nil)

	ts := 95
	uc := NewQuestionUseCase(mockRepo, mockPub)
	q, err := uc.Create(ctx, "v1", "m1", "Alice", "why does this work?", &ts)

	assert.NoError(t, err)
	assert.Equal(t, 95, *q.TimestampSec)
	mockRepo.AssertExpectations(t)
}

// 測試負的時間錨點被拒絕
func TestQuestionUseCase_NegativeTimestampRejected(t *testing.T) {
	ts := -3
	uc := NewQuestionUseCase(new(MockQuestionRepository), new(MockRoomPublisher))
	_, err := uc.Create(context.Background(), "v1", "m1", "Alice", "hm", &ts)

	assert.Error(t, err)
}

// 測試回答 append 到提問並廣播
func TestQuestionUseCase_Answer(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockQuestionRepository)
	mockPub := new(MockRoomPublisher)

	q := &domain.Question{ID: "q1", VideoID: "v1", AuthorID: "m2"}
	mockRepo.On("FindByID", ctx, "q1").Return(q, nil)
	mockRepo.On("PushAnswer", ctx, "q1", mock.Anything).Return(nil)
	mockPub.On("Publish", "v1", mock.MatchedBy(func(e domain.RoomEvent) bool {
		return e.Type == domain.AnswerReceived && e.ParentID == "q1"
	})).Return(nil)

	uc := NewQuestionUseCase(mockRepo, mockPub)
	answer, err := uc.Answer(ctx, "q1", "m1", "Teacher Wu", "because of closures")

	assert.NoError(t, err)
	assert.NotEmpty(t, answer.ID)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

// 測試刪提問的權限
func TestQuestionUseCase_DeletePermission(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockQuestionRepository)
	q := &domain.Question{ID: "q1", VideoID: "v1", AuthorID: "m2"}
	mockRepo.On("FindByID", ctx, "q1").Return(q, nil)

	uc := NewQuestionUseCase(mockRepo, new(MockRoomPublisher))

	assert.Error(t, uc.Delete(ctx, "q1", "m1", "student"))
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	mockRepo.On("Delete", ctx, "q1").Return(nil)
	assert.NoError(t, uc.Delete(ctx, "q1", "m2", "student"))
}
