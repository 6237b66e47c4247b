package cart

import (
	"sync"
	"time"

	"github.com/techmarket/storefront-backend/internal/product"
)

// StorageKey is the fixed key the cart collection is persisted under.
const StorageKey = "tm_cart"

// highlightDuration is how long a newly added item keeps its last-added
// marker before it auto-clears.
const highlightDuration = 2500 * time.Millisecond

// Item is a product snapshot captured at add time plus its quantity. The
// snapshot is not live-linked: later catalog edits do not touch cart entries.
type Item struct {
	product.Product
	Quantity int `json:"quantity"`
}

// Container holds the cart state: an ordered item collection mirrored to the
// injected storage on every mutation, plus the transient last-added marker.
//
// The mutex is there for the highlight timer, which fires on its own
// goroutine; everything else runs on the caller's goroutine.
type Container struct {
	mu      sync.Mutex
	items   []Item
	storage Storage

	lastAdded    int
	highlightSeq int
	timer        *time.Timer
}

// NewContainer seeds the in-memory state from storage. A missing or corrupt
// snapshot means an empty cart, never an error.
func NewContainer(storage Storage) *Container {
	c := &Container{storage: storage}
	if items, err := storage.Load(); err == nil {
		c.items = items
	}
	return c
}

// Add merges by product id: an already-present product has its quantity
// incremented, a new one is appended. Non-positive quantities count as 1.
// The product becomes the last-added item for the highlight window; a newer
// add cancels the pending clear so at most one timer is outstanding.
func (c *Container) Add(p product.Product, qty int) {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	merged := false
	for i := range c.items {
		if c.items[i].ID == p.ID {
			c.items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, Item{Product: p, Quantity: qty})
	}
	c.persist()

	c.lastAdded = p.ID
	c.highlightSeq++
	seq := c.highlightSeq
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(highlightDuration, func() {
		c.mu.Lock()
		if c.highlightSeq == seq {
			c.lastAdded = 0
		}
		c.mu.Unlock()
	})
}

// Remove deletes the entry for id; no-op when absent.
func (c *Container) Remove(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persist()
			return
		}
	}
}

// UpdateQuantity sets the quantity for id, clamped to a minimum of 1.
// Decrementing to zero keeps the entry; removal is only ever explicit.
func (c *Container) UpdateQuantity(id, qty int) {
	if qty < 1 {
		qty = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = qty
			c.persist()
			return
		}
	}
}

// Clear empties the collection.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.persist()
}

// Items returns a copy of the collection in insertion order.
func (c *Container) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems is the sum of all quantities, recomputed on every read.
func (c *Container) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity, recomputed on every read.
func (c *Container) TotalPrice() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, it := range c.items {
		total += it.Price * it.Quantity
	}
	return total
}

// LastAdded reports the id of the most recently added product while its
// highlight window is open.
func (c *Container) LastAdded() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastAdded == 0 {
		return 0, false
	}
	return c.lastAdded, true
}

// persist mirrors the full collection to storage. Callers hold the mutex.
// Storage failures are swallowed: the in-memory cart stays authoritative for
// the session and the next successful save catches the state up.
func (c *Container) persist() {
	_ = c.storage.Save(c.items)
}
