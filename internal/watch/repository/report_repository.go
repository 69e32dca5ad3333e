package repository

import (
	"context"

	"eduwatch_service/internal/watch/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// ReportRepository definition report persistence
type ReportRepository interface {
	// InitTable 建表，開發環境用
	InitTable(ctx context.Context) error
	Create(ctx context.Context, report *domain.Report) error
	UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) error
	FindByComment(ctx context.Context, commentID string) ([]domain.Report, error)
}

type reportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository create ReportRepository
func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) InitTable(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS comment_reports (
			id TEXT PRIMARY KEY,
			reporter_id TEXT NOT NULL,
			comment_id TEXT NOT NULL,
			video_id TEXT NOT NULL,
			reason TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`)
	return err
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO comment_reports (id, reporter_id, comment_id, video_id, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		report.ID, report.ReporterID, report.CommentID, report.VideoID, report.Reason, report.Status, report.CreatedAt)
	return err
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id string, status domain.ReportStatus) error {
	_, err := r.db.Exec(ctx, "UPDATE comment_reports SET status = $1 WHERE id = $2", status, id)
	return err
}

func (r *reportRepository) FindByComment(ctx context.Context, commentID string) ([]domain.Report, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, reporter_id, comment_id, video_id, reason, status, created_at
		FROM comment_reports WHERE comment_id = $1 ORDER BY created_at DESC`,
		commentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(&rep.ID, &rep.ReporterID, &rep.CommentID, &rep.VideoID, &rep.Reason, &rep.Status, &rep.CreatedAt); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}
