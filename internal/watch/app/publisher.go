package app

import (
	"context"

	"eduwatch_service/internal/watch/domain"
)

// RoomPublisher 房間事件的發布與訂閱
type RoomPublisher interface {
	Publish(videoID string, event domain.RoomEvent) error
	Subscribe(ctx context.Context, videoID string, handler func(event domain.RoomEvent)) error
}
