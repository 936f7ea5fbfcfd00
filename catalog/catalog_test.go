package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []Product {
	return []Product{
		{ID: "BISC-001", Name: "Chocolate Chip Cookies", Description: "Crunchy cookies", Price: decimal.RequireFromString("4.50"), Currency: DefaultCurrency},
		{ID: "BISC-002", Name: "Oat Digestive Biscuits", Description: "Wholegrain oat biscuits", Price: decimal.RequireFromString("3.25"), Currency: DefaultCurrency},
		{ID: "TEA-001", Name: "Earl Grey Tea", Description: "Black tea with bergamot", Price: decimal.RequireFromString("6.00"), Currency: DefaultCurrency},
	}
}

func TestIndexLookup(t *testing.T) {
	idx := NewIndex(testProducts())

	p, err := idx.Lookup("BISC-001")
	require.NoError(t, err)
	assert.Equal(t, "Chocolate Chip Cookies", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("4.50")))

	_, err = idx.Lookup("NOPE-404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIndexSearchEmptyQueryReturnsAllInLoadOrder(t *testing.T) {
	idx := NewIndex(testProducts())

	all := idx.Search("")
	require.Len(t, all, 3)
	assert.Equal(t, "BISC-001", all[0].ID)
	assert.Equal(t, "BISC-002", all[1].ID)
	assert.Equal(t, "TEA-001", all[2].ID)

	// Blank queries behave like empty ones.
	assert.Len(t, idx.Search("   "), 3)
}

func TestIndexSearchCaseInsensitiveSubstring(t *testing.T) {
	idx := NewIndex(testProducts())

	hits := idx.Search("cookies")
	require.Len(t, hits, 1)
	assert.Equal(t, "BISC-001", hits[0].ID)

	// Matches description text too.
	hits = idx.Search("BERGAMOT")
	require.Len(t, hits, 1)
	assert.Equal(t, "TEA-001", hits[0].ID)

	assert.Empty(t, idx.Search("sardines"))
}

func TestIndexDuplicateIDsKeepFirstListingPosition(t *testing.T) {
	products := testProducts()
	updated := products[0]
	updated.Name = "Double Chocolate Cookies"
	products = append(products, updated)

	idx := NewIndex(products)
	assert.Equal(t, 3, idx.Len())

	// Lookup sees the later definition, the listing keeps one entry.
	p, err := idx.Lookup("BISC-001")
	require.NoError(t, err)
	assert.Equal(t, "Double Chocolate Cookies", p.Name)
	assert.Equal(t, "BISC-001", idx.All()[0].ID)
}

func TestDefaultCatalogIsIndexable(t *testing.T) {
	idx := NewIndex(DefaultCatalog())
	require.Greater(t, idx.Len(), 0)

	p, err := idx.Lookup("BISC-001")
	require.NoError(t, err)
	assert.Contains(t, p.Name, "Cookies")

	for _, p := range idx.All() {
		assert.False(t, p.Price.IsNegative(), "catalog price must be non-negative: %s", p.ID)
		assert.Equal(t, DefaultCurrency, p.Currency)
	}
}
