package app

import (
	"context"
	"time"

	"eduwatch_service/internal/watch/domain"
	"eduwatch_service/internal/watch/repository"
	errprocess "eduwatch_service/pkg/err"

	"github.com/google/uuid"
)

// PlaylistUseCase 負責收藏清單
type PlaylistUseCase struct {
	playlistRepo repository.PlaylistRepository
}

// NewPlaylistUseCase init playlist use case
func NewPlaylistUseCase(playlistRepo repository.PlaylistRepository) *PlaylistUseCase {
	return &PlaylistUseCase{playlistRepo: playlistRepo}
}

// List 擁有者的清單
func (uc *PlaylistUseCase) List(ctx context.Context, ownerID string) ([]domain.Playlist, error) {
	return uc.playlistRepo.FindByOwner(ctx, ownerID)
}

// Create 建立清單
func (uc *PlaylistUseCase) Create(ctx context.Context, ownerID, name string) (*domain.Playlist, error) {
	if name == "" {
		return nil, errprocess.Set("playlist name is empty")
	}
	playlist := &domain.Playlist{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		UpdatedAt: time.Now().Unix(),
	}
	if err := uc.playlistRepo.Insert(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

// AddVideo 加影片進清單，重複加 no-op
func (uc *PlaylistUseCase) AddVideo(ctx context.Context, playlistID, ownerID, videoID string) error {
	if _, err := uc.ownedPlaylist(ctx, playlistID, ownerID); err != nil {
		return err
	}
	return uc.playlistRepo.AddVideo(ctx, playlistID, videoID, time.Now().Unix())
}

// RemoveVideo 從清單移除影片
func (uc *PlaylistUseCase) RemoveVideo(ctx context.Context, playlistID, ownerID, videoID string) error {
	if _, err := uc.ownedPlaylist(ctx, playlistID, ownerID); err != nil {
		return err
	}
	return uc.playlistRepo.RemoveVideo(ctx, playlistID, videoID, time.Now().Unix())
}

// Delete 刪清單
func (uc *PlaylistUseCase) Delete(ctx context.Context, playlistID, ownerID string) error {
	if _, err := uc.ownedPlaylist(ctx, playlistID, ownerID); err != nil {
		return err
	}
	return uc.playlistRepo.Delete(ctx, playlistID)
}

func (uc *PlaylistUseCase) ownedPlaylist(ctx context.Context, playlistID, ownerID string) (*domain.Playlist, error) {
	playlist, err := uc.playlistRepo.FindByID(ctx, playlistID)
	if err != nil {
		return nil, errprocess.Set("playlist not found")
	}
	if playlist.OwnerID != ownerID {
		return nil, errprocess.Set("not allowed to touch this playlist")
	}
	return playlist, nil
}
