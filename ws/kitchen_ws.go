package ws

import (
	"net/http"
	"sync"

	"github.com/evinas93/Fuji-PoS-sub001/pkg/logger"
	"github.com/evinas93/Fuji-PoS-sub001/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// KitchenHub pushes kitchen events (order confirmed, item status changed) to
// connected displays. Unlike a process-wide registry, Subscribe hands the
// caller an explicit handle that owns its own lifecycle: close the handle and
// the hub forgets it.
type KitchenHub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

type Subscription struct {
	hub  *KitchenHub
	ch   chan services.KitchenEvent
	once sync.Once
}

func NewKitchenHub() *KitchenHub {
	return &KitchenHub{subs: make(map[*Subscription]struct{})}
}

func (h *KitchenHub) Subscribe() *Subscription {
	sub := &Subscription{hub: h, ch: make(chan services.KitchenEvent, 16)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (s *Subscription) Events() <-chan services.KitchenEvent {
	return s.ch
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		s.hub.mu.Unlock()
		close(s.ch)
	})
}

// Publish fans the event out. A subscriber that cannot keep up drops events
// rather than blocking the order flow.
func (h *KitchenHub) Publish(e services.KitchenEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub.ch <- e:
		default:
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/kitchen (token ผ่าน query เพราะ browser WS ใส่ header ไม่ได้)
func (h *KitchenHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Error().Err(err).Msg("ws upgrade")
		return
	}

	sub := h.Subscribe()
	defer sub.Close()
	defer conn.Close()

	// read loop เอาไว้จับตอน client ปิด
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case e, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := conn.WriteJSON(e); err != nil {
				logger.L().Error().Err(err).Msg("ws write")
				return
			}
		}
	}
}
