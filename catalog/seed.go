package catalog

import "github.com/shopspring/decimal"

// DefaultCurrency is the currency of the built-in catalog. Multi-currency
// handling is a store backend concern and out of scope here.
const DefaultCurrency = "USD"

// DefaultCatalog returns the built-in demo merchant catalog. The slice is
// freshly allocated on every call so callers may append or reorder freely
// before indexing.
func DefaultCatalog() []Product {
	return []Product{
		{
			ID:          "BISC-001",
			Name:        "Chocolate Chip Cookies",
			Description: "Crunchy cookies loaded with dark chocolate chips, 250g box.",
			Price:       decimal.RequireFromString("4.50"),
			Currency:    DefaultCurrency,
			Metadata:    map[string]string{"category": "biscuits"},
		},
		{
			ID:          "BISC-002",
			Name:        "Oat Digestive Biscuits",
			Description: "Wholegrain oat biscuits, lightly sweetened, 400g pack.",
			Price:       decimal.RequireFromString("3.25"),
			Currency:    DefaultCurrency,
			Metadata:    map[string]string{"category": "biscuits"},
		},
		{
			ID:          "BISC-003",
			Name:        "Ginger Snap Cookies",
			Description: "Thin and spicy ginger snaps, 200g tin.",
			Price:       decimal.RequireFromString("5.10"),
			Currency:    DefaultCurrency,
			Metadata:    map[string]string{"category": "biscuits"},
		},
		{
			ID:          "TEA-001",
			Name:        "Earl Grey Tea",
			Description: "Black tea with bergamot, 20 bags.",
			Price:       decimal.RequireFromString("6.00"),
			Currency:    DefaultCurrency,
			Metadata:    map[string]string{"category": "tea"},
		},
		{
			ID:          "TEA-002",
			Name:        "Sencha Green Tea",
			Description: "Japanese loose leaf green tea, 100g.",
			Price:       decimal.RequireFromString("8.75"),
			Currency:    DefaultCurrency,
			Metadata:    map[string]string{"category": "tea"},
		},
		{
			ID:          "CHOC-001",
			Name:        "Dark Chocolate Bar 70%",
			Description: "Single origin dark chocolate, 100g bar.",
			Price:       decimal.RequireFromString("3.90"),
			Currency:    DefaultCurrency,
			Metadata:    map[string]string{"category": "chocolate"},
		},
		{
			ID:          "JAM-001",
			Name:        "Raspberry Jam",
			Description: "Small batch raspberry jam, 340g jar.",
			Price:       decimal.RequireFromString("4.95"),
			Currency:    DefaultCurrency,
			Metadata:    map[string]string{"category": "pantry"},
		},
		{
			ID:          "COF-001",
			Name:        "Espresso Roast Coffee",
			Description: "Whole bean espresso roast, 500g bag.",
			Price:       decimal.RequireFromString("11.40"),
			Currency:    DefaultCurrency,
			Metadata:    map[string]string{"category": "coffee"},
		},
	}
}
