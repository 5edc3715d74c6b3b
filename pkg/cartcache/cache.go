// Package cartcache holds the in-process view of carts that have not been
// checked out yet, so staff dashboards can watch them fill. It is
// non-authoritative and rebuildable from nothing: losing it loses no data,
// only a UI gap. It must never feed the transactional order path.
package cartcache

import (
	"sync"
	"time"
)

type CartLine struct {
	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
}

type Cart struct {
	SessionID string     `json:"sessionId"`
	ShopID    uint       `json:"shopId"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Cache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	carts map[string]*Cart
	stop  chan struct{}
	now   func() time.Time
}

func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl:   ttl,
		carts: make(map[string]*Cart),
		stop:  make(chan struct{}),
		now:   time.Now,
	}
	go c.janitor()
	return c
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(c.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *Cache) evictExpired() {
	cutoff := c.now().Add(-c.ttl)
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, cart := range c.carts {
		if cart.UpdatedAt.Before(cutoff) {
			delete(c.carts, id)
		}
	}
}

func (c *Cache) Put(sessionID string, shopID uint, lines []CartLine) *Cart {
	cart := &Cart{
		SessionID: sessionID,
		ShopID:    shopID,
		Lines:     lines,
		UpdatedAt: c.now(),
	}
	c.mu.Lock()
	c.carts[sessionID] = cart
	c.mu.Unlock()
	return cart
}

func (c *Cache) Get(sessionID string) (*Cart, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cart, ok := c.carts[sessionID]
	if !ok || cart.UpdatedAt.Before(c.now().Add(-c.ttl)) {
		return nil, false
	}
	return cart, true
}

func (c *Cache) Delete(sessionID string) {
	c.mu.Lock()
	delete(c.carts, sessionID)
	c.mu.Unlock()
}

// ListByShop returns the live carts for one shop's dashboard.
func (c *Cache) ListByShop(shopID uint) []*Cart {
	cutoff := c.now().Add(-c.ttl)
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*Cart
	for _, cart := range c.carts {
		if cart.ShopID == shopID && !cart.UpdatedAt.Before(cutoff) {
			out = append(out, cart)
		}
	}
	return out
}

func (c *Cache) Close() {
	close(c.stop)
}
