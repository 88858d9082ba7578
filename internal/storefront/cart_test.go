package storefront_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anandicecream/storefront/app/models"
	"github.com/anandicecream/storefront/internal/storefront"
)

func lineItem(product, flavor string, qty int, unitPrice float64) models.LineItem {
	return models.LineItem{
		Product:   product,
		Flavor:    flavor,
		Quantity:  qty,
		UnitPrice: unitPrice,
		Price:     unitPrice * float64(qty),
	}
}

func TestCart_TotalMatchesItemPrices(t *testing.T) {
	cart := storefront.NewCart(storefront.NewMemoryStorage())

	cart.Add(lineItem("Kulfi", "Badam", 2, 30))
	cart.Add(lineItem("Cone", "Butterscotch", 1, 40))
	cart.Add(lineItem("Cup Ice Cream", "Vanilla", 3, 10))

	var want float64
	for _, item := range cart.Items() {
		assert.Equal(t, item.UnitPrice*float64(item.Quantity), item.Price)
		want += item.Price
	}
	assert.Equal(t, want, cart.Total())
	assert.Equal(t, float64(130), cart.Total())
}

func TestCart_RemoveAtShiftsItems(t *testing.T) {
	cart := storefront.NewCart(storefront.NewMemoryStorage())
	cart.Add(lineItem("Kulfi", "Badam", 1, 30))
	cart.Add(lineItem("Dolly", "Mango", 1, 20))
	cart.Add(lineItem("Cone", "Butterscotch", 1, 40))

	cart.RemoveAt(1)

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Kulfi", items[0].Product)
	assert.Equal(t, "Cone", items[1].Product)
}

func TestCart_RemoveAtOutOfBoundsIsNoOp(t *testing.T) {
	cart := storefront.NewCart(storefront.NewMemoryStorage())
	cart.Add(lineItem("Kulfi", "Badam", 1, 30))

	before := cart.Items()
	cart.RemoveAt(-1)
	cart.RemoveAt(1)
	cart.RemoveAt(99)

	assert.Equal(t, before, cart.Items())
}

func TestCart_PersistenceRoundTrip(t *testing.T) {
	store := storefront.NewMemoryStorage()

	cart := storefront.NewCart(store)
	cart.Add(lineItem("Gadbad", "Mini Gudbud", 2, 20))
	cart.Add(lineItem("Family Pack", "Half Liter", 1, 120))

	// A second cart over the same storage sees the identical sequence.
	reloaded := storefront.NewCart(store)
	assert.Equal(t, cart.Items(), reloaded.Items())
	assert.Equal(t, cart.Total(), reloaded.Total())
}

func TestCart_BadgeListener(t *testing.T) {
	cart := storefront.NewCart(storefront.NewMemoryStorage())

	var counts []int
	cart.OnBadgeChange(func(n int) { counts = append(counts, n) })

	cart.Add(lineItem("Kulfi", "Badam", 1, 30))
	cart.Add(lineItem("Dolly", "Mango", 1, 20))
	cart.RemoveAt(0)
	cart.Clear()

	assert.Equal(t, []int{1, 2, 1, 0}, counts)
}

func TestCart_ClearEmpties(t *testing.T) {
	cart := storefront.NewCart(storefront.NewMemoryStorage())
	cart.Add(lineItem("Kulfi", "Badam", 1, 30))

	cart.Clear()

	assert.Empty(t, cart.Items())
	assert.Zero(t, cart.Total())
}
