package storefront

import (
	"encoding/json"

	"github.com/anandicecream/storefront/app/models"
	"github.com/anandicecream/storefront/pkg/logger"
)

// CartKey is the fixed storage key holding the serialized cart.
const CartKey = "anandIceCreamCart"

// Cart is the ordered collection of line items accumulated while
// browsing. Every mutation persists the whole sequence and refreshes
// the badge counter.
type Cart struct {
	store   Storage
	onBadge func(count int)
}

// NewCart creates a cart over the given storage. An existing persisted
// cart is picked up as-is.
func NewCart(store Storage) *Cart {
	return &Cart{store: store}
}

// OnBadgeChange registers the badge listener, called with the item count
// after every mutation.
func (c *Cart) OnBadgeChange(fn func(count int)) {
	c.onBadge = fn
}

// Items returns the current ordered line items, empty if none persisted.
func (c *Cart) Items() []models.LineItem {
	raw, ok := c.store.Get(CartKey)
	if !ok || raw == "" {
		return []models.LineItem{}
	}

	var items []models.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("cart: persisted cart unreadable, starting empty", "error", err)
		return []models.LineItem{}
	}
	return items
}

// Add appends a line item and persists.
func (c *Cart) Add(item models.LineItem) {
	c.save(append(c.Items(), item))
}

// RemoveAt deletes the item at position i, shifting later items down.
// An out-of-bounds index is a silent no-op.
func (c *Cart) RemoveAt(i int) {
	items := c.Items()
	if i < 0 || i >= len(items) {
		return
	}
	c.save(append(items[:i], items[i+1:]...))
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.store.Remove(CartKey)
	c.refreshBadge(0)
}

// Len returns the number of line items.
func (c *Cart) Len() int {
	return len(c.Items())
}

// Total sums the price of every line item.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items() {
		total += item.Price
	}
	return total
}

func (c *Cart) save(items []models.LineItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		logger.Error("cart: marshal failed", "error", err)
		return
	}
	c.store.Set(CartKey, string(raw))
	c.refreshBadge(len(items))
}

func (c *Cart) refreshBadge(count int) {
	if c.onBadge != nil {
		c.onBadge(count)
	}
}
