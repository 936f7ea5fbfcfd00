// Package order holds finalized orders. The Ledger is append-only: an order
// is written exactly once when its checkout session completes (the session's
// idempotent Complete guarantees the single write) and is immutable for the
// lifetime of the process.
package order

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hupe1980/shopmesh/checkout"
)

var (
	// ErrNotFound is returned when an order with the requested identifier
	// does not exist in the ledger.
	ErrNotFound = errors.New("order not found")
)

// Status is the fulfillment status of a finalized order. Only "placed" is
// produced here; downstream fulfillment is a store backend concern.
type Status string

// StatusPlaced is the status of every order the ledger records.
const StatusPlaced Status = "placed"

// Order is the frozen record of a completed checkout: line items, total and
// customer details exactly as they stood at completion time.
type Order struct {
	ID         string                   `json:"id"`
	CheckoutID string                   `json:"checkout_id"`
	Items      []checkout.LineItem      `json:"line_items"`
	Total      decimal.Decimal          `json:"total"`
	Currency   string                   `json:"currency"`
	Customer   checkout.CustomerDetails `json:"customer"`
	Status     Status                   `json:"status"`
	PlacedAt   time.Time                `json:"placed_at"`
}

// Ledger is an in-memory append-only order store keyed by order identifier.
// Safe for concurrent use.
type Ledger struct {
	mu     sync.RWMutex
	orders map[string]Order
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{orders: make(map[string]Order)}
}

// Record freezes the finalized session snapshot into an Order under a fresh
// identifier. Deterministic given the snapshot; the caller (the session's
// Complete transition) guarantees it runs at most once per checkout.
func (l *Ledger) Record(snap checkout.Snapshot) Order {
	o := Order{
		ID:         uuid.NewString(),
		CheckoutID: snap.ID,
		Items:      make([]checkout.LineItem, len(snap.Items)),
		Total:      snap.Total(),
		Currency:   snap.Currency,
		Status:     StatusPlaced,
		PlacedAt:   time.Now(),
	}
	copy(o.Items, snap.Items)
	if snap.Customer != nil {
		o.Customer = *snap.Customer
	}

	l.mu.Lock()
	l.orders[o.ID] = o
	l.mu.Unlock()
	return o
}

// Lookup returns a copy of the order or ErrNotFound.
func (l *Ledger) Lookup(orderID string) (Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	o, ok := l.orders[orderID]
	if !ok {
		return Order{}, ErrNotFound
	}
	cp := o
	cp.Items = make([]checkout.LineItem, len(o.Items))
	copy(cp.Items, o.Items)
	return cp, nil
}

// Len returns the number of recorded orders.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}
