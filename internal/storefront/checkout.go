package storefront

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anandicecream/storefront/app/models"
)

// PendingOrderKey is the transient storage key holding the order draft
// between checkout submission and payment confirmation.
const PendingOrderKey = "pendingOrder"

// ErrEmptyCart blocks checkout before any network call is made.
var ErrEmptyCart = errors.New("storefront: cart is empty")

// ErrNoPendingOrder means CompletePayment was called without a prior
// successful Submit.
var ErrNoPendingOrder = errors.New("storefront: no pending order")

// CheckoutForm carries the delivery fields collected from the customer.
type CheckoutForm struct {
	FullName        string
	Email           string
	Phone           string
	DeliveryAddress string
	Pincode         string
	AlternatePhone  string
}

// OrderPlacer is the network boundary to the order intake API.
type OrderPlacer interface {
	PlaceOrder(draft *models.OrderDraft) (orderID string, err error)
}

// Checkout assembles order drafts from the cart and hands them to the
// intake boundary. Field presence is the only validation done here; the
// server re-asserts everything.
type Checkout struct {
	cart   *Cart
	store  Storage
	placer OrderPlacer
}

// NewCheckout wires a checkout over the cart, the handoff storage and
// the intake boundary.
func NewCheckout(cart *Cart, store Storage, placer OrderPlacer) *Checkout {
	return &Checkout{cart: cart, store: store, placer: placer}
}

// Submit validates the cart and form, assembles an order draft and
// parks it under the handoff key for the payment step. Nothing goes
// over the network here.
func (c *Checkout) Submit(form CheckoutForm) (*models.OrderDraft, error) {
	items := c.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if missing := missingFields(form); len(missing) > 0 {
		return nil, fmt.Errorf("storefront: missing required fields: %s", strings.Join(missing, ", "))
	}

	now := time.Now()
	draft := &models.OrderDraft{
		CustomerInfo: &models.CustomerInfo{
			FullName:        form.FullName,
			Email:           form.Email,
			Phone:           form.Phone,
			DeliveryAddress: form.DeliveryAddress,
			Pincode:         form.Pincode,
			AlternatePhone:  form.AlternatePhone,
		},
		Items:       items,
		TotalAmount: c.cart.Total(),
		OrderDate:   &now,
		Status:      models.StatusPending,
	}

	raw, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("storefront: marshal draft: %w", err)
	}
	c.store.Set(PendingOrderKey, string(raw))

	return draft, nil
}

// CompletePayment loads the parked draft, attaches the optional payment
// screenshot (a base64 data URL), and submits it to the intake API.
// Cart and handoff slot are cleared only after the API accepts.
func (c *Checkout) CompletePayment(paymentScreenshot string) (string, error) {
	raw, ok := c.store.Get(PendingOrderKey)
	if !ok || raw == "" {
		return "", ErrNoPendingOrder
	}

	var draft models.OrderDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return "", fmt.Errorf("storefront: unmarshal pending order: %w", err)
	}

	if paymentScreenshot != "" {
		draft.PaymentScreenshot = paymentScreenshot
		draft.PaymentStatus = models.PaymentPendingVerification
	}

	orderID, err := c.placer.PlaceOrder(&draft)
	if err != nil {
		return "", err
	}

	c.cart.Clear()
	c.store.Remove(PendingOrderKey)

	return orderID, nil
}

func missingFields(form CheckoutForm) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"fullName", form.FullName},
		{"email", form.Email},
		{"phone", form.Phone},
		{"deliveryAddress", form.DeliveryAddress},
		{"pincode", form.Pincode},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
