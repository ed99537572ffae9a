package notify

import (
	"context"
	"net/http"
	"sync"
	"time"

	"vaultspin/pkg/xgo"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	clientSendSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub 把事件广播给所有已连接的 ws 观战端。
// 观战端只读不写，写不动的连接直接踢掉
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
	log     *log.Helper
}

func NewHub(logger log.Logger) (*Hub, func(), error) {
	h := &Hub{
		clients: make(map[*client]struct{}),
		log:     log.NewHelper(logger),
	}
	cleanup := func() {
		h.close()
		h.log.Info("notify hub closed")
	}
	return h, cleanup, nil
}

// Handler 挂载到 /ws
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warnf("ws upgrade: %v", err)
			return
		}
		c := &client{conn: conn, send: make(chan []byte, clientSendSize)}
		if !h.add(c) {
			_ = conn.Close()
			return
		}
		go h.writePump(c)
		go h.readPump(c)
	})
}

// Send 实现 Notifier。慢客户端丢消息不丢连接，
// 队列满到溢出才断开
func (h *Hub) Send(_ context.Context, ev *Event) error {
	data := []byte(xgo.ToJSON(ev))

	h.mu.RLock()
	stale := make([]*client, 0)
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range stale {
		h.remove(c)
	}
	return nil
}

// ClientCount 当前在线观战数
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	h.mu.Unlock()
	if ok {
		close(c.send)
		_ = c.conn.Close()
	}
}

func (h *Hub) close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		close(c.send)
		_ = c.conn.Close()
	}
}

func (h *Hub) writePump(c *client) {
	defer xgo.RecoverFromError(nil)
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(c)
			return
		}
	}
}

// readPump 只为感知断连，收到的内容一律丢弃
func (h *Hub) readPump(c *client) {
	defer xgo.RecoverFromError(nil)
	defer h.remove(c)
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
