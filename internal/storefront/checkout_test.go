package storefront_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anandicecream/storefront/app/models"
	"github.com/anandicecream/storefront/internal/storefront"
)

// fakePlacer records intake calls and returns a canned result.
type fakePlacer struct {
	calls   int
	lastDrf *models.OrderDraft
	orderID string
	err     error
}

func (f *fakePlacer) PlaceOrder(draft *models.OrderDraft) (string, error) {
	f.calls++
	f.lastDrf = draft
	return f.orderID, f.err
}

func validForm() storefront.CheckoutForm {
	return storefront.CheckoutForm{
		FullName:        "Ravi Kumar",
		Email:           "ravi@example.com",
		Phone:           "9876543210",
		DeliveryAddress: "12 MG Road, Udupi",
		Pincode:         "576101",
	}
}

func newCheckout(placer storefront.OrderPlacer) (*storefront.Checkout, *storefront.Cart, storefront.Storage) {
	store := storefront.NewMemoryStorage()
	cart := storefront.NewCart(store)
	return storefront.NewCheckout(cart, store, placer), cart, store
}

func TestCheckout_EmptyCartNeverReachesIntake(t *testing.T) {
	placer := &fakePlacer{orderID: "ORD-X-YYYYY"}
	checkout, _, _ := newCheckout(placer)

	_, err := checkout.Submit(validForm())
	require.ErrorIs(t, err, storefront.ErrEmptyCart)

	_, err = checkout.CompletePayment("")
	require.ErrorIs(t, err, storefront.ErrNoPendingOrder)

	assert.Zero(t, placer.calls)
}

func TestCheckout_MissingFieldsBlockSubmit(t *testing.T) {
	checkout, cart, _ := newCheckout(&fakePlacer{})
	cart.Add(lineItem("Kulfi", "Badam", 1, 30))

	form := validForm()
	form.Email = ""
	form.Pincode = "  "

	_, err := checkout.Submit(form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "pincode")
}

func TestCheckout_SubmitParksDraft(t *testing.T) {
	checkout, cart, store := newCheckout(&fakePlacer{})
	cart.Add(lineItem("Kulfi", "Badam", 2, 30))
	cart.Add(lineItem("Dolly", "Mango", 1, 20))

	draft, err := checkout.Submit(validForm())
	require.NoError(t, err)

	assert.Equal(t, float64(80), draft.TotalAmount)
	assert.Len(t, draft.Items, 2)
	assert.Equal(t, models.StatusPending, draft.Status)
	require.NotNil(t, draft.CustomerInfo)
	assert.Equal(t, "Ravi Kumar", draft.CustomerInfo.FullName)
	require.NotNil(t, draft.OrderDate)

	_, parked := store.Get(storefront.PendingOrderKey)
	assert.True(t, parked)

	// Submitting does not touch the cart.
	assert.Len(t, cart.Items(), 2)
}

func TestCheckout_CompletePaymentClearsStateOnSuccess(t *testing.T) {
	placer := &fakePlacer{orderID: "ORD-ABC123-DEF45"}
	checkout, cart, store := newCheckout(placer)
	cart.Add(lineItem("Cone", "Butterscotch", 1, 40))

	_, err := checkout.Submit(validForm())
	require.NoError(t, err)

	orderID, err := checkout.CompletePayment("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "ORD-ABC123-DEF45", orderID)

	require.NotNil(t, placer.lastDrf)
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", placer.lastDrf.PaymentScreenshot)
	assert.Equal(t, models.PaymentPendingVerification, placer.lastDrf.PaymentStatus)

	assert.Empty(t, cart.Items())
	_, parked := store.Get(storefront.PendingOrderKey)
	assert.False(t, parked)
}

func TestCheckout_IntakeFailureKeepsCartAndDraft(t *testing.T) {
	placer := &fakePlacer{err: errors.New("intake unreachable")}
	checkout, cart, store := newCheckout(placer)
	cart.Add(lineItem("Cone", "Butterscotch", 1, 40))

	_, err := checkout.Submit(validForm())
	require.NoError(t, err)

	_, err = checkout.CompletePayment("")
	require.Error(t, err)

	assert.Len(t, cart.Items(), 1)
	_, parked := store.Get(storefront.PendingOrderKey)
	assert.True(t, parked, "failed submission must keep the draft for retry")
}
