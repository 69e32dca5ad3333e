package app

import (
	"context"
	"errors"
	"testing"

	"eduwatch_service/internal/watch/domain"
	"eduwatch_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.SetNewNop()
	m.Run()
}

// 測試新增根留言：寫入、廣播、併進發話者的 session 樹
func TestCommentUseCase_Create(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCommentRepository)
	mockPub := new(MockRoomPublisher)
	registry := NewSessionRegistry()

	session := domain.NewWatchSession("s1", "m1", &domain.Video{ID: 1})
	registry.Add(session)

	mockRepo.On("Insert", ctx, mock.Anything).Return(nil)
	mockPub.On("Publish", "v1", mock.Anything).Return(nil)

	uc := NewCommentUseCase(mockRepo, mockPub, registry)
	comment, err := uc.Create(ctx, "v1", "m1", "Alice", "hello", "s1")

	assert.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.True(t, comment.IsRoot())

	// REST 回應路徑已直接併進樹
	assert.Equal(t, 1, session.Tree().Len())

	// 晚到的廣播回音不會重複
	session.Tree().UpsertRoot(*comment)
	assert.Equal(t, 1, session.Tree().Len())

	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

// 測試廣播失敗不影響建立結果
func TestCommentUseCase_CreateBroadcastFailure(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCommentRepository)
	mockPub := new(MockRoomPublisher)

	mockRepo.On("Insert", ctx, mock.Anything).Return(nil)
	mockPub.On("Publish", "v1", mock.Anything).Return(errors.New("redis down"))

	uc := NewCommentUseCase(mockRepo, mockPub, NewSessionRegistry())
	comment, err := uc.Create(ctx, "v1", "m1", "Alice", "hello", "")

	assert.NoError(t, err)
	assert.NotNil(t, comment)
}

// 測試回覆掛在根留言底下
func TestCommentUseCase_Reply(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCommentRepository)
	mockPub := new(MockRoomPublisher)

	parent := &domain.Comment{ID: "c1", VideoID: "v1", AuthorID: "m2"}
	mockRepo.On("FindByID", ctx, "c1").Return(parent, nil)
	mockRepo.On("Insert", ctx, mock.Anything).Return(nil)
	mockRepo.On("PushReply", ctx, "c1", mock.Anything).Return(nil)
	mockPub.On("Publish", "v1", mock.Anything).Return(nil)

	uc := NewCommentUseCase(mockRepo, mockPub, NewSessionRegistry())
	reply, err := uc.Reply(ctx, "c1", "m1", "Alice", "me too", "")

	assert.NoError(t, err)
	assert.Equal(t, "c1", reply.ParentID)
	assert.Equal(t, "v1", reply.VideoID)

	mockRepo.AssertExpectations(t)
}

// 測試回覆不能再被回覆
func TestCommentUseCase_ReplyToReplyRejected(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCommentRepository)

	reply := &domain.Comment{ID: "r1", VideoID: "v1", ParentID: "c1"}
	mockRepo.On("FindByID", ctx, "r1").Return(reply, nil)

	uc := NewCommentUseCase(mockRepo, new(MockRoomPublisher), NewSessionRegistry())
	_, err := uc.Reply(ctx, "r1", "m1", "Alice", "nested", "")

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

// 測試只有作者或老師能刪留言
func TestCommentUseCase_DeletePermission(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCommentRepository)
	mockPub := new(MockRoomPublisher)

	comment := &domain.Comment{ID: "c1", VideoID: "v1", AuthorID: "m2"}
	mockRepo.On("FindByID", ctx, "c1").Return(comment, nil)

	uc := NewCommentUseCase(mockRepo, mockPub, NewSessionRegistry())

	// 不是作者也不是老師
	err := uc.Delete(ctx, "c1", "m1", "student")
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything)

	// 老師可以刪
	mockRepo.On("DeleteCascade", ctx, "c1").Return(nil)
	mockPub.On("Publish", "v1", mock.Anything).Return(nil)
	err = uc.Delete(ctx, "c1", "m1", "teacher")
	assert.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

// 測試刪回覆會驗證 parent 歸屬
func TestCommentUseCase_DeleteReplyWrongParent(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockCommentRepository)

	reply := &domain.Comment{ID: "r1", VideoID: "v1", AuthorID: "m1", ParentID: "c1"}
	mockRepo.On("FindByID", ctx, "r1").Return(reply, nil)

	uc := NewCommentUseCase(mockRepo, new(MockRoomPublisher), NewSessionRegistry())
	err := uc.DeleteReply(ctx, "other-parent", "r1", "m1", "student")

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "DeleteReply", mock.Anything, mock.Anything, mock.Anything)
}
