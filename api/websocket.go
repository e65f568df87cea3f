package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/lokichain/loki-node/common/logger"
	"github.com/lokichain/loki-node/common/utils"
	"github.com/lokichain/loki-node/core"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 개발용: 모든 origin 허용
	},
}

type WSEventType string

const (
	EventConnected      WSEventType = "connected"
	EventNewTransaction WSEventType = "new_transaction"
	EventMempoolStatus  WSEventType = "mempool_status"
)

const (
	broadcastBuffer = 256
	clientBuffer    = 256
)

type WSMessage struct {
	Event WSEventType `json:"event"`
	Data  interface{} `json:"data"`
}

// MempoolStatusProvider 접속 직후 보낼 멤풀 크기
type MempoolStatusProvider func() int

// WSHub 클라이언트 연결 관리
type WSHub struct {
	clients    map[*WSClient]bool
	broadcast  chan WSMessage
	register   chan *WSClient
	unregister chan *WSClient
	quit       chan struct{}
	stopOnce   sync.Once
	mu         sync.RWMutex

	mempoolStatusProvider MempoolStatusProvider
}

type WSClient struct {
	hub  *WSHub
	conn *websocket.Conn
	send chan []byte
}

func NewWSHub() *WSHub {
	return &WSHub{
		clients:    make(map[*WSClient]bool),
		broadcast:  make(chan WSMessage, broadcastBuffer),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		quit:       make(chan struct{}),
	}
}

func (h *WSHub) SetMempoolStatusProvider(provider MempoolStatusProvider) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mempoolStatusProvider = provider
}

func (h *WSHub) mempoolStatus() (WSMessage, bool) {
	h.mu.RLock()
	provider := h.mempoolStatusProvider
	h.mu.RUnlock()

	if provider == nil {
		return WSMessage{}, false
	}
	return WSMessage{
		Event: EventMempoolStatus,
		Data:  map[string]interface{}{"count": provider()},
	}, true
}

func (h *WSHub) mempoolStatusMessage() []byte {
	msg, ok := h.mempoolStatus()
	if !ok {
		return nil
	}
	data, _ := json.Marshal(msg)
	return data
}

// Run 허브 이벤트 루프. Stop 호출 시 모든 클라이언트를 닫고 반환한다.
func (h *WSHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Debug("WebSocket client connected. Total: ", total)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Debug("WebSocket client disconnected. Total: ", total)

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				logger.Error("Failed to marshal WebSocket message: ", err)
				continue
			}

			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// 느린 클라이언트는 끊는다
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *WSHub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// BroadcastNewTransaction 승인된 트랜잭션과 멤풀 크기 알림. 버퍼가 가득 차면 버린다.
func (h *WSHub) BroadcastNewTransaction(entry core.TransactionWithState) {
	tx := entry.Transaction
	msg := WSMessage{
		Event: EventNewTransaction,
		Data: map[string]interface{}{
			"hash":      utils.HashToString(tx.Hash),
			"sender":    utils.AddressToString(tx.Sender),
			"app":       tx.Data.App,
			"operation": tx.Data.Operation,
			"amount":    tx.Amount,
			"gas":       tx.Gas,
			"nonce":     tx.Nonce,
			"timestamp": tx.Timestamp,
			"state":     entry.State,
		},
	}

	h.enqueue(msg)
	if status, ok := h.mempoolStatus(); ok {
		h.enqueue(status)
	}
}

func (h *WSHub) enqueue(msg WSMessage) {
	select {
	case h.broadcast <- msg:
	default:
		logger.Warn("WebSocket broadcast buffer full, dropping event: ", msg.Event)
	}
}

func (h *WSHub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket WebSocket 연결 핸들러
func HandleWebSocket(hub *WSHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("WebSocket upgrade error: ", err)
			return
		}

		client := &WSClient{
			hub:  hub,
			conn: conn,
			send: make(chan []byte, clientBuffer),
		}

		welcome, _ := json.Marshal(WSMessage{
			Event: EventConnected,
			Data:  map[string]interface{}{"message": "Connected to loki-node WebSocket"},
		})
		client.send <- welcome
		if status := hub.mempoolStatusMessage(); status != nil {
			client.send <- status
		}

		select {
		case hub.register <- client:
		case <-hub.quit:
			conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()
	}
}

func (c *WSClient) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived) {
				logger.Error("WebSocket write error: ", err)
			} else {
				logger.Debug("WebSocket write closed: ", err)
			}
			return
		}
	}
	// 채널이 닫히면 정상 종료 메시지
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump 클라이언트 메시지는 무시하고 연결 종료만 감지
func (c *WSClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.quit:
		}
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
				websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error: ", err)
			} else {
				logger.Debug("WebSocket client disconnected: ", err)
			}
			return
		}
	}
}
