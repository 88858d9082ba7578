package storefront

import (
	"sync"
	"time"

	"github.com/anandicecream/storefront/app/models"
	"github.com/anandicecream/storefront/internal/catalog"
)

// ackRevertDelay is how long the "added to cart" acknowledgment shows
// before reverting.
const ackRevertDelay = 2 * time.Second

// Selector holds one product's current variant/quantity selection and
// derives the line price. Each product gets its own independent
// instance; there is no shared state between selectors.
type Selector struct {
	mu sync.Mutex

	product   string
	variant   string
	unitPrice float64
	quantity  int

	cart *Cart

	added    bool
	ackTimer *time.Timer
	ackDelay time.Duration
	onAck    func(added bool)
}

// NewSelector builds a selector for the product, preselecting its
// default variant with quantity 1.
func NewSelector(p catalog.Product, cart *Cart) *Selector {
	def := p.DefaultVariant()
	return &Selector{
		product:   p.Name,
		variant:   def.Name,
		unitPrice: def.UnitPrice,
		quantity:  1,
		cart:      cart,
		ackDelay:  ackRevertDelay,
	}
}

// OnAck registers the acknowledgment listener, called with true when an
// item is added and false when the acknowledgment reverts.
func (s *Selector) OnAck(fn func(added bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAck = fn
}

// SetAckDelay overrides the acknowledgment revert delay.
func (s *Selector) SetAckDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ackDelay = d
}

// Select switches the current variant and unit price.
func (s *Selector) Select(variant string, unitPrice float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.variant = variant
	s.unitPrice = unitPrice
}

// SetQuantity sets the quantity, clamping anything below 1 up to 1.
func (s *Selector) SetQuantity(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		n = 1
	}
	s.quantity = n
}

// Quantity returns the current quantity.
func (s *Selector) Quantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quantity
}

// Variant returns the currently selected variant name.
func (s *Selector) Variant() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.variant
}

// CurrentPrice is always unit price times quantity.
func (s *Selector) CurrentPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unitPrice * float64(s.quantity)
}

// Added reports whether the transient acknowledgment is showing.
func (s *Selector) Added() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.added
}

// AddToCart snapshots the current selection into the cart and raises
// the transient acknowledgment. The acknowledgment reverts on its own
// and never blocks further adds; a second add simply restarts it.
func (s *Selector) AddToCart() models.LineItem {
	s.mu.Lock()

	item := models.LineItem{
		Product:   s.product,
		Flavor:    s.variant,
		Quantity:  s.quantity,
		UnitPrice: s.unitPrice,
		Price:     s.unitPrice * float64(s.quantity),
	}

	s.added = true
	if s.ackTimer != nil {
		s.ackTimer.Stop()
	}
	s.ackTimer = time.AfterFunc(s.ackDelay, s.revertAck)

	ack := s.onAck
	s.mu.Unlock()

	s.cart.Add(item)
	if ack != nil {
		ack(true)
	}
	return item
}

func (s *Selector) revertAck() {
	s.mu.Lock()
	s.added = false
	ack := s.onAck
	s.mu.Unlock()

	if ack != nil {
		ack(false)
	}
}
