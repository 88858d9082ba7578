// Package catalog holds the static product and pricing data for the
// storefront. It is pure data consulted by the variant selectors.
package catalog

// Variant is one selectable flavor or size of a product with its unit
// price in whole rupees.
type Variant struct {
	Name      string
	UnitPrice float64
}

// Product is a storefront entry with its selectable variants. The first
// variant is the default selection.
type Product struct {
	Name     string
	Variants []Variant
}

// DefaultVariant returns the variant preselected when the product's
// selector opens.
func (p Product) DefaultVariant() Variant {
	return p.Variants[0]
}

// Variant looks up a variant by name.
func (p Product) Variant(name string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// products is the full retail catalog.
var products = []Product{
	{
		Name: "Kulfi",
		Variants: []Variant{
			{Name: "Badam", UnitPrice: 30},
			{Name: "Pista", UnitPrice: 30},
			{Name: "Malai", UnitPrice: 30},
		},
	},
	{
		Name: "Cup Ice Cream",
		Variants: []Variant{
			{Name: "Vanilla", UnitPrice: 10},
			{Name: "Strawberry", UnitPrice: 10},
			{Name: "Chocolate", UnitPrice: 10},
		},
	},
	{
		Name: "Gadbad",
		Variants: []Variant{
			{Name: "Mini Gudbud", UnitPrice: 20},
			{Name: "Gudbud", UnitPrice: 40},
			{Name: "Special Gudbud", UnitPrice: 60},
		},
	},
	{
		Name: "Dolly",
		Variants: []Variant{
			{Name: "Mango", UnitPrice: 20},
			{Name: "Orange", UnitPrice: 20},
			{Name: "Raspberry", UnitPrice: 20},
		},
	},
	{
		Name: "Cone",
		Variants: []Variant{
			{Name: "Butterscotch", UnitPrice: 40},
			{Name: "Chocolate", UnitPrice: 40},
			{Name: "Vanilla", UnitPrice: 30},
		},
	},
	{
		Name: "Scoop Ice Cream",
		Variants: []Variant{
			{Name: "Sithapal", UnitPrice: 20},
			{Name: "Mango", UnitPrice: 20},
			{Name: "Chocolate", UnitPrice: 20},
		},
	},
	{
		Name: "Chocbar",
		Variants: []Variant{
			{Name: "Chocobar", UnitPrice: 20},
			{Name: "Jumbo Chocobar", UnitPrice: 40},
		},
	},
	{
		Name: "Family Pack",
		Variants: []Variant{
			{Name: "Half Liter", UnitPrice: 120},
			{Name: "One Liter", UnitPrice: 220},
		},
	},
}

// All returns every catalog product in display order.
func All() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// Find looks up a product by name.
func Find(name string) (Product, bool) {
	for _, p := range products {
		if p.Name == name {
			return p, true
		}
	}
	return Product{}, false
}
