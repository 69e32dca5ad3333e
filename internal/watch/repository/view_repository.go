package repository

import (
	"context"

	"eduwatch_service/internal/watch/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// ViewRepository definition watch progress persistence
type ViewRepository interface {
	// InitTable 建表，開發環境用
	InitTable(ctx context.Context) error
	// Upsert 同一人同一影片只保留一列，進度只增不減
	Upsert(ctx context.Context, view *domain.View) error
	Get(ctx context.Context, memberID string, videoID uint) (*domain.View, error)
}

type viewRepository struct {
	db *pgxpool.Pool
}

// NewViewRepository create ViewRepository
func NewViewRepository(db *pgxpool.Pool) ViewRepository {
	return &viewRepository{db: db}
}

func (r *viewRepository) InitTable(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS video_views (
			member_id TEXT NOT NULL,
			video_id BIGINT NOT NULL,
			watch_time INT NOT NULL DEFAULT 0,
			completion_percentage DOUBLE PRECISION NOT NULL DEFAULT 0,
			last_position INT NOT NULL DEFAULT 0,
			updated_at BIGINT NOT NULL,
			PRIMARY KEY (member_id, video_id)
		)`)
	return err
}

// Upsert GREATEST 保證亂序到達的回報不會把進度往回推
func (r *viewRepository) Upsert(ctx context.Context, view *domain.View) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO video_views (member_id, video_id, watch_time, completion_percentage, last_position, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (member_id, video_id) DO UPDATE SET
			watch_time = GREATEST(video_views.watch_time, EXCLUDED.watch_time),
			completion_percentage = GREATEST(video_views.completion_percentage, EXCLUDED.completion_percentage),
			last_position = EXCLUDED.last_position,
			updated_at = EXCLUDED.updated_at`,
		view.MemberID, view.VideoID, view.WatchTime, view.CompletionPercentage, view.LastPosition, view.UpdatedAt)
	return err
}

func (r *viewRepository) Get(ctx context.Context, memberID string, videoID uint) (*domain.View, error) {
	row := r.db.QueryRow(ctx, `
		SELECT member_id, video_id, watch_time, completion_percentage, last_position, updated_at
		FROM video_views WHERE member_id = $1 AND video_id = $2`,
		memberID, videoID)
	var v domain.View
	if err := row.Scan(&v.MemberID, &v.VideoID, &v.WatchTime, &v.CompletionPercentage, &v.LastPosition, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}
