package checkout

import (
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hupe1980/shopmesh/catalog"
)

// State is the lifecycle state of a checkout session. The external status
// strings match the wire contract of the shopping service.
type State string

const (
	// StateOpen accepts item and customer detail mutations.
	StateOpen State = "open"
	// StatePaymentStarted means payment has been initiated and the session
	// is ready to be completed.
	StatePaymentStarted State = "ready_for_complete"
	// StateCompleted is terminal; the session can no longer be mutated.
	StateCompleted State = "completed"
)

// Terminal reports whether the state admits no further transitions.
func (s State) Terminal() bool { return s == StateCompleted }

// String representation (for logging).
func (s State) String() string { return string(s) }

// PaymentState tracks the payment leg of a session independently from the
// lifecycle state.
type PaymentState string

const (
	// PaymentNotStarted is the initial payment state.
	PaymentNotStarted PaymentState = "not_started"
	// PaymentInProgress is set by StartPayment.
	PaymentInProgress PaymentState = "in_progress"
	// PaymentAuthorized is set when the session completes.
	PaymentAuthorized PaymentState = "authorized"
)

// LineItem is one cart line. UnitPrice is the catalog price captured when
// the product was first added (a snapshot, not a live reference), so later
// catalog price changes never move historical totals.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Subtotal returns quantity × snapshot unit price.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Catalog is the product lookup capability a session consults when adding
// items. *catalog.Index satisfies it.
type Catalog interface {
	Lookup(productID string) (catalog.Product, error)
}

// Snapshot is an immutable projection of a session taken under its lock.
// Items preserve the order in which products first entered the cart.
type Snapshot struct {
	ID       string
	Items    []LineItem
	Customer *CustomerDetails
	Payment  PaymentState
	State    State
	Currency string
	OrderID  string
	Created  time.Time
	Updated  time.Time
}

// Total returns Σ(quantity × snapshot unit price) over the line items.
func (s Snapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range s.Items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// Session is the state machine for a single cart. All exported methods are
// safe for concurrent use; each acquires the session mutex for the full
// read-modify-write, so mutations against one checkout identifier are
// strictly serialized.
type Session struct {
	mu sync.Mutex

	id        string
	cat       Catalog
	items     map[string]*LineItem
	itemOrder []string
	customer  *CustomerDetails
	payment   PaymentState
	state     State
	currency  string
	orderID   string
	created   time.Time
	updated   time.Time
}

// NewSession creates an open session with the given identifier.
func NewSession(id string, cat Catalog) *Session {
	now := time.Now()
	return &Session{
		id:       id,
		cat:      cat,
		items:    make(map[string]*LineItem),
		payment:  PaymentNotStarted,
		state:    StateOpen,
		currency: catalog.DefaultCurrency,
		created:  now,
		updated:  now,
	}
}

// ID returns the opaque checkout identifier.
func (s *Session) ID() string { return s.id }

// AddItem adds quantity units of the product to the cart. Adding a product
// that already has a line item increments its quantity; the price snapshot
// taken at first add is kept.
func (s *Session) AddItem(productID string, quantity int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureMutable(); err != nil {
		return Snapshot{}, err
	}
	if quantity < 1 {
		return Snapshot{}, NewError(KindInvalidQuantity, "quantity must be at least 1, got %d", quantity)
	}

	product, err := s.cat.Lookup(productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return Snapshot{}, NewError(KindProductNotFound, "no product with id %q", productID)
		}
		return Snapshot{}, err
	}

	if li, ok := s.items[productID]; ok {
		li.Quantity += quantity
	} else {
		s.items[productID] = &LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  quantity,
			UnitPrice: product.Price,
		}
		s.itemOrder = append(s.itemOrder, productID)
	}
	s.touch()
	return s.snapshotLocked(), nil
}

// RemoveItem deletes the product's line item. Removing an absent product is
// a no-op success: the desired end state is already reached, which keeps
// agent retries harmless.
func (s *Session) RemoveItem(productID string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureMutable(); err != nil {
		return Snapshot{}, err
	}
	s.removeLocked(productID)
	return s.snapshotLocked(), nil
}

// UpdateItem sets the line item to the exact quantity. A quantity of zero
// or less behaves like RemoveItem. Updating a product with no line item
// fails with KindItemNotFound; update never implicitly creates.
func (s *Session) UpdateItem(productID string, quantity int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureMutable(); err != nil {
		return Snapshot{}, err
	}
	if quantity <= 0 {
		s.removeLocked(productID)
		return s.snapshotLocked(), nil
	}
	li, ok := s.items[productID]
	if !ok {
		return Snapshot{}, NewError(KindItemNotFound, "checkout %s has no line item for product %q", s.id, productID)
	}
	li.Quantity = quantity
	s.touch()
	return s.snapshotLocked(), nil
}

// SetCustomerDetails validates and replaces the customer details wholesale.
func (s *Session) SetCustomerDetails(addr Address, email string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureMutable(); err != nil {
		return Snapshot{}, err
	}
	if err := ValidateCustomerDetails(addr, email); err != nil {
		return Snapshot{}, err
	}
	s.customer = &CustomerDetails{Address: addr, Email: email}
	s.touch()
	return s.snapshotLocked(), nil
}

// StartPayment transitions the session to ready_for_complete and the
// payment state to in_progress. It requires customer details and at least
// one line item. Calling it again while payment is already started is an
// idempotent success so agents can retry after ambiguous transport failures.
func (s *Session) StartPayment() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return Snapshot{}, NewError(KindSessionFinalized, "checkout %s is already completed", s.id)
	}
	if s.state == StatePaymentStarted {
		return s.snapshotLocked(), nil
	}
	if s.customer == nil {
		return Snapshot{}, NewError(KindPaymentPreconditionFailed, "checkout %s has no customer details; set them before starting payment", s.id)
	}
	if len(s.items) == 0 {
		return Snapshot{}, NewError(KindPaymentPreconditionFailed, "checkout %s is empty; add items before starting payment", s.id)
	}
	s.state = StatePaymentStarted
	s.payment = PaymentInProgress
	s.touch()
	return s.snapshotLocked(), nil
}

// Complete finalizes the session. The record callback receives the frozen
// snapshot and returns the identifier of the order it placed; it is invoked
// under the session lock, at most once per session. Completing an already
// completed session returns the previously recorded order identifier
// without invoking record again, so finalization is safe to retry.
func (s *Session) Complete(record func(Snapshot) (string, error)) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateCompleted {
		return s.snapshotLocked(), nil
	}
	if s.state != StatePaymentStarted {
		return Snapshot{}, NewError(KindPaymentPreconditionFailed, "checkout %s: payment must be started before completing", s.id)
	}
	if len(s.items) == 0 {
		return Snapshot{}, NewError(KindPaymentPreconditionFailed, "checkout %s is empty; nothing to complete", s.id)
	}

	frozen := s.snapshotLocked()
	frozen.State = StateCompleted
	frozen.Payment = PaymentAuthorized

	orderID, err := record(frozen)
	if err != nil {
		return Snapshot{}, err
	}

	s.state = StateCompleted
	s.payment = PaymentAuthorized
	s.orderID = orderID
	s.touch()
	return s.snapshotLocked(), nil
}

// Snapshot returns a consistent copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) ensureMutable() error {
	if s.state.Terminal() {
		return NewError(KindSessionFinalized, "checkout %s is already completed", s.id)
	}
	return nil
}

func (s *Session) removeLocked(productID string) {
	if _, ok := s.items[productID]; !ok {
		return
	}
	delete(s.items, productID)
	for i, id := range s.itemOrder {
		if id == productID {
			s.itemOrder = append(s.itemOrder[:i], s.itemOrder[i+1:]...)
			break
		}
	}
	s.touch()
}

func (s *Session) touch() { s.updated = time.Now() }

// snapshotLocked copies items in insertion order; caller must hold mu.
func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:       s.id,
		Items:    make([]LineItem, 0, len(s.itemOrder)),
		Payment:  s.payment,
		State:    s.state,
		Currency: s.currency,
		OrderID:  s.orderID,
		Created:  s.created,
		Updated:  s.updated,
	}
	for _, id := range s.itemOrder {
		snap.Items = append(snap.Items, *s.items[id])
	}
	if s.customer != nil {
		cust := *s.customer
		snap.Customer = &cust
	}
	return snap
}
