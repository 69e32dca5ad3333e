package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eduwatch_service/internal/watch/domain"
	"eduwatch_service/internal/watch/repository"
	"eduwatch_service/pkg/database"
	errprocess "eduwatch_service/pkg/err"
	"eduwatch_service/pkg/logger"
	"eduwatch_service/pkg/token"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// ReportUseCase 負責留言檢舉
// 送出後先掛在 session 上，反悔期內可取消；期限到才落地並丟進審核佇列
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	rabbit     database.RabbitRepo
	registry   *SessionRegistry
	grace      time.Duration
}

// NewReportUseCase init report use case
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	rabbit database.RabbitRepo,
	registry *SessionRegistry,
	grace time.Duration,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo: reportRepo,
		rabbit:     rabbit,
		registry:   registry,
		grace:      grace,
	}
}

// Submit 送出檢舉
// 同一個 session 同時只能有一筆待 commit 的檢舉
func (uc *ReportUseCase) Submit(sessionID, commentID, videoID, reason string) error {
	session, ok := uc.registry.Get(sessionID)
	if !ok {
		return errprocess.Set("session not found")
	}

	scheduled := session.SchedulePendingReport(commentID, reason, uc.grace, func(p *domain.PendingReport) {
		// 時間到，先把 pending 取走再落地；取不走代表已取消或 session 已釋放
		if _, stillPending := session.TakePendingReport(p.CommentID); !stillPending {
			return
		}
		uc.commit(session, p, videoID)
	})
	if !scheduled {
		return errprocess.Set("another report is pending on this session")
	}
	return nil
}

// Cancel 反悔期內取消檢舉，什麼都不會落地
func (uc *ReportUseCase) Cancel(sessionID, commentID string) error {
	session, ok := uc.registry.Get(sessionID)
	if !ok {
		return errprocess.Set("session not found")
	}
	if _, taken := session.TakePendingReport(commentID); !taken {
		return errprocess.Set("no pending report for this comment")
	}
	logger.Log.Info("report cancelled",
		zap.String("sessionID", sessionID),
		zap.String("commentID", commentID))
	return nil
}

func (uc *ReportUseCase) commit(session *domain.WatchSession, p *domain.PendingReport, videoID string) {
	report := &domain.Report{
		ID:         uuid.New().String(),
		ReporterID: session.MemberID,
		CommentID:  p.CommentID,
		VideoID:    videoID,
		Reason:     p.Reason,
		Status:     domain.ReportPending,
		CreatedAt:  time.Now().Unix(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := uc.reportRepo.Create(ctx, report); err != nil {
		logger.Log.Error("report persist err",
			zap.String("commentID", p.CommentID),
			zap.String("err", err.Error()))
		return
	}

	if uc.rabbit != nil {
		data, _ := json.Marshal(report)
		err := uc.rabbit.Publish("", domain.ModerationQueueName, false, false, amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
		})
		if err != nil {
			// 佇列掛了不回滾，審核端可以從資料表補撈
			logger.Log.Error("moderation queue publish err",
				zap.String("reportID", report.ID),
				zap.String("err", err.Error()))
		}
	}
	logger.Log.Info(fmt.Sprintf("report committed: %s", report.ID))
}

// isModerator 審核操作只開放教師跟管理員
func isModerator(role string) bool {
	return role == string(token.RoleTeacher) || role == string(token.RoleAdmin)
}

// FindByComment 留言的檢舉紀錄，審核用
func (uc *ReportUseCase) FindByComment(ctx context.Context, role, commentID string) ([]domain.Report, error) {
	if !isModerator(role) {
		return nil, errprocess.Set("not allowed to review reports")
	}
	return uc.reportRepo.FindByComment(ctx, commentID)
}

// Resolve 審核結果落地，只能標成 reviewed 或 ignored
func (uc *ReportUseCase) Resolve(ctx context.Context, role, reportID string, status domain.ReportStatus) error {
	if !isModerator(role) {
		return errprocess.Set("not allowed to review reports")
	}
	if status != domain.ReportReviewed && status != domain.ReportIgnored {
		return errprocess.Set(fmt.Sprintf("invalid report status: %s", status))
	}
	if err := uc.reportRepo.UpdateStatus(ctx, reportID, status); err != nil {
		return errprocess.Set(fmt.Sprintf("update report status err: %v", err))
	}
	return nil
}
