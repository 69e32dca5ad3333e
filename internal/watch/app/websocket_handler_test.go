package app

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"eduwatch_service/internal/watch/domain"

	"github.com/gofiber/websocket/v2"
	"github.com/stretchr/testify/assert"
)

// slowWSConn 慢速假連線，偵測兩個 goroutine 同時進到寫入路徑
type slowWSConn struct {
	inflight int32
	overlap  int32
	writes   int32
}

func (c *slowWSConn) WriteMessage(mt int, data []byte) error {
	if atomic.AddInt32(&c.inflight, 1) > 1 {
		atomic.StoreInt32(&c.overlap, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&c.inflight, -1)
	atomic.AddInt32(&c.writes, 1)
	return nil
}

// 測試 read loop 回應、ping、房間事件三路同時寫同一條連線不會交錯
func TestWatchWebsocketHandler_SerializedWrites(t *testing.T) {
	h := NewWatchWebsocketHandler(nil, nil)
	conn := &slowWSConn{}

	event := domain.WSResponse{
		Action:  string(domain.CommentReceived),
		Success: true,
		Payload: map[string]interface{}{"video_id": "1"},
	}

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(2)
		// 房間訂閱 goroutine 推事件
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				h.sendResponse(conn, event)
			}
		}()
		// ping ticker goroutine
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				_ = h.writeMessage(conn, websocket.PingMessage, []byte("ping message"))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), atomic.LoadInt32(&conn.overlap))
	assert.Equal(t, int32(30), atomic.LoadInt32(&conn.writes))
}
