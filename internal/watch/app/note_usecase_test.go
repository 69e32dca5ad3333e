package app

import (
	"context"
	"testing"

	"eduwatch_service/internal/watch/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// 測試在別人的筆記插標記被拒絕
func TestNoteUseCase_InsertMarkerOwnerOnly(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockNoteRepository)
	note := &domain.Note{ID: "n1", OwnerID: "m2"}
	mockRepo.On("FindByID", ctx, "n1").Return(note, nil)

	uc := NewNoteUseCase(mockRepo)
	_, err := uc.InsertMarker(ctx, "n1", "m1", 95, -1)

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// 測試插入標記後筆記被更新
func TestNoteUseCase_InsertMarker(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockNoteRepository)
	note := &domain.Note{
		ID:      "n1",
		OwnerID: "m1",
		Spans:   []domain.NoteSpan{{Type: domain.SpanText, Text: "lecture notes"}},
	}
	mockRepo.On("FindByID", ctx, "n1").Return(note, nil)
	mockRepo.On("Update", ctx, mock.MatchedBy(func(n *domain.Note) bool {
		return len(n.Spans) == 3 && n.Spans[2].Type == domain.SpanTimestamp && n.Spans[2].Seconds == 95
	})).Return(nil)

	uc := NewNoteUseCase(mockRepo)
	updated, err := uc.InsertMarker(ctx, "n1", "m1", 95, -1)

	assert.NoError(t, err)
	assert.Equal(t, "lecture notes\n[1:35] ", updated.PlainText())
	mockRepo.AssertExpectations(t)
}

// 測試負秒數被拒絕
func TestNoteUseCase_InsertMarkerNegative(t *testing.T) {
	uc := NewNoteUseCase(new(MockNoteRepository))
	_, err := uc.InsertMarker(context.Background(), "n1", "m1", -1, 0)

	assert.Error(t, err)
}
