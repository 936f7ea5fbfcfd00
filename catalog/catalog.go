// Package catalog implements the read-only product catalog: an immutable
// index answering text search and identifier lookups. The index is built
// once at startup and never mutated afterwards, so it is safe for unlimited
// concurrent readers without locking.
package catalog

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a product with the requested identifier
	// does not exist in the index.
	ErrNotFound = errors.New("product not found")
)

// Product is a single catalog entry. Products are immutable once loaded and
// owned exclusively by the Index; callers receive value copies.
type Product struct {
	ID          string            `json:"product_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Price       decimal.Decimal   `json:"price"`
	Currency    string            `json:"currency"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Index is the catalog view over a fixed product set. Search results and
// full listings preserve the load order so empty-query results are stable
// and deterministic.
type Index struct {
	ordered []Product
	byID    map[string]Product
}

// NewIndex builds an index from the given products. Later duplicates of a
// product identifier win the lookup slot but the listing keeps the first
// occurrence position.
func NewIndex(products []Product) *Index {
	idx := &Index{byID: make(map[string]Product, len(products))}
	for _, p := range products {
		if _, seen := idx.byID[p.ID]; !seen {
			idx.ordered = append(idx.ordered, p)
		}
		idx.byID[p.ID] = p
	}
	return idx
}

// Lookup returns the product with the given identifier or ErrNotFound.
func (i *Index) Lookup(productID string) (Product, error) {
	p, ok := i.byID[productID]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// Search returns products whose name or description contains the query,
// case-insensitively. An empty (or blank) query returns the full catalog
// in load order.
func (i *Index) Search(query string) []Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return i.All()
	}
	needle := strings.ToLower(query)
	var results []Product
	for _, p := range i.ordered {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			results = append(results, p)
		}
	}
	return results
}

// All returns a copy of the full catalog in load order.
func (i *Index) All() []Product {
	out := make([]Product, len(i.ordered))
	copy(out, i.ordered)
	return out
}

// Len returns the number of distinct products in the index.
func (i *Index) Len() int { return len(i.ordered) }
