package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"eduwatch_service/internal/watch/domain"
	"eduwatch_service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RoomPubSub definition redis pub/sub for video rooms
type RoomPubSub struct {
	client *redis.Client
	ctx    context.Context
}

// NewRoomPubSub create RoomPubSub
func NewRoomPubSub(client *redis.Client) *RoomPubSub {
	return &RoomPubSub{
		client: client,
		ctx:    context.Background(),
	}
}

// Publish 將房間事件序列化後，發布到影片的 channel
func (r *RoomPubSub) Publish(videoID string, event domain.RoomEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(r.ctx, domain.RoomChannel(videoID), data).Err()
}

// Subscribe 訂閱影片房間，收到事件後呼叫 handler 處理
// ctx 取消時關閉訂閱
func (r *RoomPubSub) Subscribe(ctx context.Context, videoID string, handler func(event domain.RoomEvent)) error {
	channel := domain.RoomChannel(videoID)
	sub := r.client.Subscribe(r.ctx, channel)
	go func() {
		ch := sub.Channel()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}

				var event domain.RoomEvent
				if err := json.Unmarshal([]byte(m.Payload), &event); err != nil {
					logger.Log.Error("room event err :", zap.String("err", fmt.Sprintf("failed to unmarshal room event: %v", err)))
					continue
				}
				handler(event)
			case <-ctx.Done():
				logger.Log.Info(fmt.Sprintf("%s , sub close", channel))
				sub.Close()
			}
		}
	}()
	return nil
}
