package repository

import (
	"eduwatch_service/internal/watch/domain"

	"gorm.io/gorm"
)

// VideoRepo definition get video info
type VideoRepo interface {
	AutoMigrate() error
	Create(video *domain.Video) error
	GetByID(id uint) (*domain.Video, error)
	Update(video *domain.Video) error
	// IncrementViewCount 進 session 時 +1，不等進度回報
	IncrementViewCount(id uint) error
	// IncrementLike 觀看期間唯一允許改的欄位
	IncrementLike(id uint) error
	PopularVideos(limit int) ([]domain.Video, error)
}

type videoRepo struct {
	db *gorm.DB
}

// NewVideoRepo create VideoRepo
func NewVideoRepo(db *gorm.DB) VideoRepo {
	return &videoRepo{db: db}
}

func (r *videoRepo) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Video{})
}

func (r *videoRepo) Create(video *domain.Video) error {
	return r.db.Create(video).Error
}

// GetByID get Video by id
func (r *videoRepo) GetByID(id uint) (*domain.Video, error) {
	var v domain.Video
	if err := r.db.First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *videoRepo) Update(video *domain.Video) error {
	return r.db.Save(video).Error
}

// IncrementViewCount 用 SQL 表達式遞增，避免讀改寫的 race
func (r *videoRepo) IncrementViewCount(id uint) error {
	return r.db.Model(&domain.Video{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *videoRepo) IncrementLike(id uint) error {
	return r.db.Model(&domain.Video{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
}

// PopularVideos 依照 ViewCount 降序排序，返回熱門影片
func (r *videoRepo) PopularVideos(limit int) ([]domain.Video, error) {
	var videos []domain.Video
	if err := r.db.Order("view_count DESC").Limit(limit).Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}
