package app

import (
	"context"
	"testing"
	"time"

	"eduwatch_service/internal/watch/domain"
	"eduwatch_service/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// 測試反悔期過後檢舉恰好落地一次並丟進審核佇列
func TestReportUseCase_CommitAfterGrace(t *testing.T) {
	mockRepo := new(MockReportRepository)
	mockRabbit := new(MockRabbitRepo)
	registry := NewSessionRegistry()

	session := domain.NewWatchSession("s1", "m1", &domain.Video{ID: 1})
	registry.Add(session)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	mockRabbit.On("Publish", "", domain.ModerationQueueName, false, false, mock.Anything).Return(nil).Once()

	uc := NewReportUseCase(mockRepo, mockRabbit, registry, 20*time.Millisecond)
	err := uc.Submit("s1", "c1", "v1", "spam")
	assert.NoError(t, err)
	assert.True(t, session.PendingReportFor("c1"))

	// 等反悔期過
	time.Sleep(100 * time.Millisecond)

	assert.False(t, session.PendingReportFor("c1"))
	mockRepo.AssertExpectations(t)
	mockRabbit.AssertExpectations(t)
}

// 測試反悔期內取消後什麼都不落地
func TestReportUseCase_CancelWithinGrace(t *testing.T) {
	mockRepo := new(MockReportRepository)
	mockRabbit := new(MockRabbitRepo)
	registry := NewSessionRegistry()

	session := domain.NewWatchSession("s1", "m1", &domain.Video{ID: 1})
	registry.Add(session)

	uc := NewReportUseCase(mockRepo, mockRabbit, registry, 30*time.Millisecond)
	assert.NoError(t, uc.Submit("s1", "c1", "v1", "spam"))
	assert.NoError(t, uc.Cancel("s1", "c1"))

	// 過了原本的期限也不會 commit
	time.Sleep(100 * time.Millisecond)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRabbit.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// 測試同一個 session 不能同時掛兩筆檢舉
func TestReportUseCase_SecondPendingRejected(t *testing.T) {
	registry := NewSessionRegistry()
	session := domain.NewWatchSession("s1", "m1", &domain.Video{ID: 1})
	registry.Add(session)

	uc := NewReportUseCase(new(MockReportRepository), new(MockRabbitRepo), registry, time.Hour)
	assert.NoError(t, uc.Submit("s1", "c1", "v1", "spam"))
	assert.Error(t, uc.Submit("s1", "c2", "v1", "abuse"))
}

// 測試取消不存在的 pending 回錯誤
func TestReportUseCase_CancelNothingPending(t *testing.T) {
	registry := NewSessionRegistry()
	registry.Add(domain.NewWatchSession("s1", "m1", &domain.Video{ID: 1}))

	uc := NewReportUseCase(new(MockReportRepository), new(MockRabbitRepo), registry, time.Hour)
	assert.Error(t, uc.Cancel("s1", "c1"))
	assert.Error(t, uc.Submit("ghost", "c1", "v1", "spam"))
}

// 測試 session 釋放後 pending 的檢舉不落地
func TestReportUseCase_ReleaseDropsPending(t *testing.T) {
	mockRepo := new(MockReportRepository)
	registry := NewSessionRegistry()

	session := domain.NewWatchSession("s1", "m1", &domain.Video{ID: 1})
	registry.Add(session)

	uc := NewReportUseCase(mockRepo, new(MockRabbitRepo), registry, 20*time.Millisecond)
	assert.NoError(t, uc.Submit("s1", "c1", "v1", "spam"))

	registry.Remove("s1")
	time.Sleep(100 * time.Millisecond)

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// 測試佇列掛了檢舉本體照樣落地
func TestReportUseCase_QueueFailureKeepsReport(t *testing.T) {
	mockRepo := new(MockReportRepository)
	mockRabbit := new(MockRabbitRepo)
	registry := NewSessionRegistry()

	session := domain.NewWatchSession("s1", "m1", &domain.Video{ID: 1})
	registry.Add(session)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	mockRabbit.On("Publish", "", domain.ModerationQueueName, false, false, mock.Anything).
		Return(assert.AnError).Once()

	uc := NewReportUseCase(mockRepo, mockRabbit, registry, 20*time.Millisecond)
	assert.NoError(t, uc.Submit("s1", "c1", "v1", "spam"))

	time.Sleep(100 * time.Millisecond)
	mockRepo.AssertExpectations(t)
}

// 測試審核只開放教師跟管理員，且狀態只能標 reviewed/ignored
func TestReportUseCase_Resolve(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReportRepository)
	uc := NewReportUseCase(mockRepo, nil, NewSessionRegistry(), time.Second)

	mockRepo.On("UpdateStatus", ctx, "r1", domain.ReportReviewed).Return(nil).Once()
	assert.NoError(t, uc.Resolve(ctx, string(token.RoleTeacher), "r1", domain.ReportReviewed))

	// 學生不能審核
	assert.Error(t, uc.Resolve(ctx, string(token.RoleStudent), "r1", domain.ReportIgnored))

	// pending 不是合法的審核結果
	assert.Error(t, uc.Resolve(ctx, string(token.RoleAdmin), "r1", domain.ReportPending))

	mockRepo.AssertExpectations(t)
	mockRepo.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

// 測試檢舉紀錄查詢的角色限制
func TestReportUseCase_FindByComment(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockReportRepository)
	uc := NewReportUseCase(mockRepo, nil, NewSessionRegistry(), time.Second)

	mockRepo.On("FindByComment", ctx, "c1").Return([]domain.Report{{ID: "r1", CommentID: "c1"}}, nil).Once()

	reports, err := uc.FindByComment(ctx, string(token.RoleAdmin), "c1")
	assert.NoError(t, err)
	assert.Len(t, reports, 1)

	_, err = uc.FindByComment(ctx, string(token.RoleStudent), "c1")
	assert.Error(t, err)

	mockRepo.AssertNumberOfCalls(t, "FindByComment", 1)
}
