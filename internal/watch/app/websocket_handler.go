package app

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	"eduwatch_service/internal/watch/domain"
	"eduwatch_service/pkg/logger"
	"eduwatch_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// wsConn websocket 連線的寫入面，抽出來讓測試能塞假連線
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
}

// WatchWebsocketHandler 觀看頁的即時通道
// 一條連線同時間只會在一個影片房間裡
type WatchWebsocketHandler struct {
	watchUC    *WatchUseCase
	roomPubSub RoomPublisher

	mu      sync.Mutex
	roomCtx context.CancelFunc

	// read loop、ping ticker、房間訂閱 goroutine 都會寫同一條連線，
	// 底層連線不允許並發寫，所有寫入都走 writeMessage
	writeMu sync.Mutex
}

// NewWatchWebsocketHandler create WatchWebsocketHandler
func NewWatchWebsocketHandler(watchUC *WatchUseCase, roomPubSub RoomPublisher) *WatchWebsocketHandler {
	return &WatchWebsocketHandler{
		watchUC:    watchUC,
		roomPubSub: roomPubSub,
	}
}

// HandleConnection 是 WebSocket 連線的進入點
func (h *WatchWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	tokenMember := conn.Locals(middlewares.TokenMemberID)
	memberID, ok := tokenMember.(string)
	logger.Log.Info("websocket handle memberID", zap.String("userID", memberID), zap.String("ok", strconv.FormatBool(ok)))

	ticker := time.NewTicker(10 * time.Minute)
	ctxClose, cancel := context.WithCancel(context.Background())

	defer func() {
		ticker.Stop()
		logger.Log.Info("websocket close", zap.String("userID", memberID))
		h.leaveRoom()
		conn.Close()
		cancel()
	}()

	//client發出close
	//fiber會自動處理(在read msg 回傳err),故需要SetCloseHandler另外接出
	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Infof("WebSocket closed:", conn.RemoteAddr())
		return nil
	})

	//server發出ping之後client連線正常會回pong
	conn.SetPongHandler(func(appData string) error {
		logger.Log.Infof("Received PONG:", appData)
		return nil
	})

	//client發出ping
	conn.SetPingHandler(func(appData string) error {
		logger.Log.Infof("Received PING:", appData)
		return conn.WriteControl(
			websocket.PongMessage,
			[]byte(appData),
			time.Now().Add(time.Second),
		)
	})

	// 定期發送 Ping
	go func() {
		for {
			select {
			case <-ticker.C:
				pingMsg := "ping message"
				if err := h.writeMessage(conn, websocket.PingMessage, []byte(pingMsg)); err != nil {
					logger.Log.Errorf("Ping error:", err)
					return
				}
				logger.Log.Infof("%s Ping sent", memberID)
			case <-ctxClose.Done():
				logger.Log.Infof("Ping goroutine cancelled for member:", memberID)
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Errorf("Connection closed:", err)
			} else {
				logger.Log.Errorf("websocket read error:", err)
			}
			return
		}
		h.execWebsocketAction(ctx, conn, memberID, mt, message)
	}
}

func (h *WatchWebsocketHandler) execWebsocketAction(ctx context.Context, conn *websocket.Conn, memberID string, mt int, msg []byte) {
	switch mt {
	case websocket.TextMessage:
		h.textMessageAction(ctx, conn, memberID, msg)
	default:
		h.sendError(conn, "unknown action")
	}
}

func (h *WatchWebsocketHandler) textMessageAction(ctx context.Context, conn *websocket.Conn, memberID string, msg []byte) {
	var req domain.WSRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		log.Printf("json unmarshal error: %v", err)
		return
	}

	resp := domain.WSResponse{Action: req.Action, Success: false, Payload: map[string]interface{}{}}
	switch req.Action {
	//進入影片房間，開始收房間內的討論事件
	case string(domain.JoinVideoRoom):
		if req.VideoID == "" {
			resp.Error = "video_id is required"
			break
		}

		// 換房間前先退掉舊的
		h.leaveRoom()

		ctxRoom, cancel := context.WithCancel(context.Background())
		h.mu.Lock()
		h.roomCtx = cancel
		h.mu.Unlock()

		err := h.roomPubSub.Subscribe(ctxRoom, req.VideoID, func(event domain.RoomEvent) {
			h.applyRoomEvent(req.SessionID, event)
			h.sendResponse(conn, domain.WSResponse{
				Action:  string(event.Type),
				Success: true,
				Payload: map[string]interface{}{
					"video_id":  event.VideoID,
					"parent_id": event.ParentID,
					"entity_id": event.EntityID,
					"entity":    json.RawMessage(event.Payload),
				},
			})
		})
		if err != nil {
			// 房間訂不到只是沒有即時更新，頁面其他功能照常
			resp.Error = err.Error()
		} else {
			resp.Success = true
			resp.Payload["video_id"] = req.VideoID
		}

	//離開影片房間
	case string(domain.LeaveVideoRoom):
		h.leaveRoom()
		resp.Success = true
		resp.Payload["leave_room"] = req.VideoID

	default:
		h.sendError(conn, "unknown message types ")
		return
	}

	if resp.Error != "" {
		logger.Log.Error("websocket err ", zap.String("MemberID", memberID), zap.String("Action", req.Action), zap.String("err", resp.Error))
	}
	h.sendResponse(conn, resp)
}

// applyRoomEvent 把房間事件併進該連線的 session 樹
// 發話者自己的 REST 回應已經併過一次，靠 id 冪等去重
func (h *WatchWebsocketHandler) applyRoomEvent(sessionID string, event domain.RoomEvent) {
	if sessionID == "" {
		return
	}
	session, ok := h.watchUC.Get(sessionID)
	if !ok || !session.Alive() {
		return
	}

	switch event.Type {
	case domain.CommentReceived:
		var c domain.Comment
		if err := json.Unmarshal(event.Payload, &c); err != nil {
			logger.Log.Errorf("room event decode error:", err)
			return
		}
		session.Tree().UpsertRoot(c)
	case domain.CommentReplyReceived:
		var c domain.Comment
		if err := json.Unmarshal(event.Payload, &c); err != nil {
			logger.Log.Errorf("room event decode error:", err)
			return
		}
		session.Tree().UpsertReply(event.ParentID, c)
	case domain.CommentDeleted:
		session.Tree().RemoveRoot(event.EntityID)
	case domain.ReplyDeleted:
		session.Tree().RemoveReply(event.ParentID, event.EntityID)
	}
}

// leaveRoom 退出目前房間，沒進房間時无害
func (h *WatchWebsocketHandler) leaveRoom() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.roomCtx != nil {
		h.roomCtx()
		h.roomCtx = nil
	}
}

// writeMessage 序列化對連線的所有寫入
func (h *WatchWebsocketHandler) writeMessage(conn wsConn, mt int, data []byte) error {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	return conn.WriteMessage(mt, data)
}

// sendResponse - 發送 JSON 給前端
func (h *WatchWebsocketHandler) sendResponse(conn wsConn, resp domain.WSResponse) {
	b, _ := json.Marshal(resp)
	if err := h.writeMessage(conn, websocket.TextMessage, b); err != nil {
		logger.Log.Errorf("write message error:", err)
	}
}

func (h *WatchWebsocketHandler) sendError(conn wsConn, errorMsg string) {
	resp := domain.WSResponse{
		Action:  "error",
		Success: false,
		Payload: map[string]interface{}{
			"error": errorMsg,
		},
	}
	h.sendResponse(conn, resp)
}
