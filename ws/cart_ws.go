package ws

import (
	"net/http"
	"sync"

	"brewhub-backend/entity"
	"brewhub-backend/pkg/cartcache"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// CartHub pushes live cart snapshots to staff dashboard connections,
// grouped per shop. Connections are registered after the auth and tenant
// middlewares have vetted the caller.
type CartHub struct {
	clients    map[uint]map[*websocket.Conn]bool // shopID -> connections
	broadcast  chan cartUpdate
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
}

type subscription struct {
	Conn   *websocket.Conn
	ShopID uint
}

type cartUpdate struct {
	ShopID uint
	Cart   *cartcache.Cart
}

func NewCartHub() *CartHub {
	return &CartHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan cartUpdate),
		register:   make(chan subscription),
		unregister: make(chan subscription),
	}
}

func (h *CartHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.ShopID] == nil {
				h.clients[sub.ShopID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.ShopID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.ShopID][sub.Conn]; ok {
				delete(h.clients[sub.ShopID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case upd := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[upd.ShopID] {
				if err := conn.WriteJSON(upd.Cart); err != nil {
					zap.L().Warn("ws write failed", zap.Error(err))
					conn.Close()
					delete(h.clients[upd.ShopID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish fans a cart snapshot out to the shop's dashboard watchers.
// Non-blocking for callers on the request path.
func (h *CartHub) Publish(shopID uint, cart *cartcache.Cart) {
	go func() {
		h.broadcast <- cartUpdate{ShopID: shopID, Cart: cart}
	}()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades a staff dashboard connection. Route:
// GET /staff/carts/ws (auth + tenant middleware applied upstream).
func (h *CartHub) HandleWebSocket(c *gin.Context) {
	shop := c.MustGet("shop").(*entity.Shop)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("ws upgrade failed", zap.Error(err))
		return
	}
	h.register <- subscription{Conn: conn, ShopID: shop.ID}

	go func() {
		defer func() {
			h.unregister <- subscription{Conn: conn, ShopID: shop.ID}
		}()
		for {
			// staff connections are listen-only; drain until close
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
