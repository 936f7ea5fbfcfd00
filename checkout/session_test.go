package checkout_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/shopmesh/catalog"
	"github.com/hupe1980/shopmesh/checkout"
	"github.com/hupe1980/shopmesh/internal/testutil"
)

// priceBook is a mutable catalog fake so tests can change a product's price
// after it entered a cart and observe snapshot isolation.
type priceBook struct {
	mu       sync.Mutex
	products map[string]catalog.Product
}

func newPriceBook(products ...catalog.Product) *priceBook {
	pb := &priceBook{products: make(map[string]catalog.Product)}
	for _, p := range products {
		pb.products[p.ID] = p
	}
	return pb
}

func (pb *priceBook) Lookup(productID string) (catalog.Product, error) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	p, ok := pb.products[productID]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func (pb *priceBook) setPrice(productID, price string) {
	pb.mu.Lock()
	defer pb.mu.Unlock()
	p := pb.products[productID]
	p.Price = decimal.RequireFromString(price)
	pb.products[productID] = p
}

func newSession(t *testing.T) *checkout.Session {
	t.Helper()
	return checkout.NewRegistry(testutil.Index()).Create()
}

func TestAddItemSumsQuantitiesOnSameProduct(t *testing.T) {
	sess := newSession(t)

	snap, err := sess.AddItem("BISC-001", 2)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 2, snap.Items[0].Quantity)

	snap, err = sess.AddItem("BISC-001", 3)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1, "no duplicate line for the same product")
	assert.Equal(t, 5, snap.Items[0].Quantity)
	assert.Equal(t, "22.50", snap.Total().StringFixed(2))
}

func TestAddItemValidation(t *testing.T) {
	sess := newSession(t)

	_, err := sess.AddItem("BISC-001", 0)
	assert.Equal(t, checkout.KindInvalidQuantity, checkout.KindOf(err))

	_, err = sess.AddItem("BISC-001", -2)
	assert.Equal(t, checkout.KindInvalidQuantity, checkout.KindOf(err))

	_, err = sess.AddItem("NOPE-404", 1)
	assert.Equal(t, checkout.KindProductNotFound, checkout.KindOf(err))
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	sess := newSession(t)

	_, err := sess.AddItem("TEA-001", 1)
	require.NoError(t, err)
	_, err = sess.AddItem("BISC-001", 1)
	require.NoError(t, err)
	snap, err := sess.AddItem("TEA-001", 1)
	require.NoError(t, err)

	require.Len(t, snap.Items, 2)
	assert.Equal(t, "TEA-001", snap.Items[0].ProductID)
	assert.Equal(t, "BISC-001", snap.Items[1].ProductID)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	sess := newSession(t)

	_, err := sess.AddItem("BISC-001", 1)
	require.NoError(t, err)

	snap, err := sess.RemoveItem("BISC-001")
	require.NoError(t, err)
	assert.Empty(t, snap.Items)

	// Removing an absent product is a success, not an error.
	snap, err = sess.RemoveItem("BISC-001")
	require.NoError(t, err)
	assert.Empty(t, snap.Items)

	snap, err = sess.RemoveItem("NEVER-ADDED")
	require.NoError(t, err)
	assert.Empty(t, snap.Items)
}

func TestUpdateItemSetsExactQuantity(t *testing.T) {
	sess := newSession(t)

	_, err := sess.AddItem("BISC-001", 2)
	require.NoError(t, err)

	snap, err := sess.UpdateItem("BISC-001", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, snap.Items[0].Quantity)
}

func TestUpdateItemDoesNotImplicitlyCreate(t *testing.T) {
	sess := newSession(t)

	_, err := sess.UpdateItem("BISC-001", 3)
	assert.Equal(t, checkout.KindItemNotFound, checkout.KindOf(err))
}

func TestUpdateItemZeroEqualsRemove(t *testing.T) {
	viaUpdate := newSession(t)
	viaRemove := newSession(t)

	for _, sess := range []*checkout.Session{viaUpdate, viaRemove} {
		_, err := sess.AddItem("BISC-001", 2)
		require.NoError(t, err)
		_, err = sess.AddItem("TEA-001", 1)
		require.NoError(t, err)
	}

	updSnap, err := viaUpdate.UpdateItem("BISC-001", 0)
	require.NoError(t, err)
	remSnap, err := viaRemove.RemoveItem("BISC-001")
	require.NoError(t, err)

	assert.Equal(t, updSnap.Items, remSnap.Items)
	assert.True(t, updSnap.Total().Equal(remSnap.Total()))

	// Negative quantities behave the same and are idempotent.
	snap, err := viaUpdate.UpdateItem("BISC-001", -1)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "TEA-001", snap.Items[0].ProductID)
}

func TestSetCustomerDetailsValidation(t *testing.T) {
	sess := newSession(t)

	snap, err := sess.SetCustomerDetails(testutil.Address(), "a@b.com")
	require.NoError(t, err)
	require.NotNil(t, snap.Customer)
	assert.Equal(t, "a@b.com", snap.Customer.Email)
	assert.Equal(t, "San Francisco", snap.Customer.Address.City)

	// Missing required address field.
	incomplete := testutil.Address()
	incomplete.PostalCode = ""
	_, err = sess.SetCustomerDetails(incomplete, "a@b.com")
	assert.Equal(t, checkout.KindInvalidCustomerDetails, checkout.KindOf(err))

	// Email without an "@".
	_, err = sess.SetCustomerDetails(testutil.Address(), "not-an-email")
	assert.Equal(t, checkout.KindInvalidCustomerDetails, checkout.KindOf(err))

	// Details are replaced wholesale, not patched.
	other := testutil.Address()
	other.City = "Berlin"
	other.Region = ""
	snap, err = sess.SetCustomerDetails(other, "c@d.com")
	require.NoError(t, err)
	assert.Equal(t, "Berlin", snap.Customer.Address.City)
	assert.Empty(t, snap.Customer.Address.Region)
	assert.Equal(t, "c@d.com", snap.Customer.Email)
}

func TestStartPaymentPreconditions(t *testing.T) {
	sess := newSession(t)

	// No items, no details.
	_, err := sess.StartPayment()
	assert.Equal(t, checkout.KindPaymentPreconditionFailed, checkout.KindOf(err))

	// Items but no customer details.
	_, err = sess.AddItem("BISC-001", 1)
	require.NoError(t, err)
	_, err = sess.StartPayment()
	assert.Equal(t, checkout.KindPaymentPreconditionFailed, checkout.KindOf(err))

	// Details set: order of operations matters, now it succeeds.
	_, err = sess.SetCustomerDetails(testutil.Address(), "a@b.com")
	require.NoError(t, err)
	snap, err := sess.StartPayment()
	require.NoError(t, err)
	assert.Equal(t, checkout.StatePaymentStarted, snap.State)
	assert.Equal(t, checkout.PaymentInProgress, snap.Payment)

	// Repeated start_payment is an idempotent success.
	again, err := sess.StartPayment()
	require.NoError(t, err)
	assert.Equal(t, snap.State, again.State)
	assert.Equal(t, snap.Payment, again.Payment)
}

func TestStartPaymentWithDetailsButEmptyCart(t *testing.T) {
	sess := newSession(t)

	_, err := sess.SetCustomerDetails(testutil.Address(), "a@b.com")
	require.NoError(t, err)

	_, err = sess.StartPayment()
	assert.Equal(t, checkout.KindPaymentPreconditionFailed, checkout.KindOf(err))
}

func TestCompleteRequiresPaymentStarted(t *testing.T) {
	sess := newSession(t)

	_, err := sess.AddItem("BISC-001", 1)
	require.NoError(t, err)

	_, err = sess.Complete(func(checkout.Snapshot) (string, error) { return "ord-1", nil })
	assert.Equal(t, checkout.KindPaymentPreconditionFailed, checkout.KindOf(err))
}

func TestCompleteIsIdempotent(t *testing.T) {
	sess := newSession(t)

	_, err := sess.AddItem("BISC-001", 2)
	require.NoError(t, err)
	_, err = sess.SetCustomerDetails(testutil.Address(), "a@b.com")
	require.NoError(t, err)
	_, err = sess.StartPayment()
	require.NoError(t, err)

	records := 0
	record := func(frozen checkout.Snapshot) (string, error) {
		records++
		assert.Equal(t, checkout.StateCompleted, frozen.State)
		assert.Equal(t, checkout.PaymentAuthorized, frozen.Payment)
		assert.Equal(t, "9.00", frozen.Total().StringFixed(2))
		return "ord-1", nil
	}

	snap, err := sess.Complete(record)
	require.NoError(t, err)
	assert.Equal(t, checkout.StateCompleted, snap.State)
	assert.Equal(t, checkout.PaymentAuthorized, snap.Payment)
	assert.Equal(t, "ord-1", snap.OrderID)

	// Retrying after an ambiguous transport failure returns the same
	// order identifier and does not record a second order.
	snap, err = sess.Complete(record)
	require.NoError(t, err)
	assert.Equal(t, "ord-1", snap.OrderID)
	assert.Equal(t, 1, records)
}

func TestCompleteRecordFailureLeavesSessionRetryable(t *testing.T) {
	sess := newSession(t)

	_, err := sess.AddItem("BISC-001", 1)
	require.NoError(t, err)
	_, err = sess.SetCustomerDetails(testutil.Address(), "a@b.com")
	require.NoError(t, err)
	_, err = sess.StartPayment()
	require.NoError(t, err)

	boom := errors.New("ledger unavailable")
	_, err = sess.Complete(func(checkout.Snapshot) (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)

	// The session did not transition, so a retry can still succeed.
	snap, err := sess.Complete(func(checkout.Snapshot) (string, error) { return "ord-2", nil })
	require.NoError(t, err)
	assert.Equal(t, "ord-2", snap.OrderID)
}

func TestFinalizedSessionRejectsAllMutations(t *testing.T) {
	sess := newSession(t)

	_, err := sess.AddItem("BISC-001", 1)
	require.NoError(t, err)
	_, err = sess.SetCustomerDetails(testutil.Address(), "a@b.com")
	require.NoError(t, err)
	_, err = sess.StartPayment()
	require.NoError(t, err)
	_, err = sess.Complete(func(checkout.Snapshot) (string, error) { return "ord-1", nil })
	require.NoError(t, err)

	_, err = sess.AddItem("BISC-001", 1)
	assert.Equal(t, checkout.KindSessionFinalized, checkout.KindOf(err))
	_, err = sess.RemoveItem("BISC-001")
	assert.Equal(t, checkout.KindSessionFinalized, checkout.KindOf(err))
	_, err = sess.UpdateItem("BISC-001", 5)
	assert.Equal(t, checkout.KindSessionFinalized, checkout.KindOf(err))
	_, err = sess.SetCustomerDetails(testutil.Address(), "a@b.com")
	assert.Equal(t, checkout.KindSessionFinalized, checkout.KindOf(err))
	_, err = sess.StartPayment()
	assert.Equal(t, checkout.KindSessionFinalized, checkout.KindOf(err))

	// The read-only snapshot remains available.
	snap := sess.Snapshot()
	assert.Equal(t, checkout.StateCompleted, snap.State)
}

func TestSnapshotPriceIsolatedFromCatalogChanges(t *testing.T) {
	pb := newPriceBook(catalog.Product{
		ID:       "BISC-001",
		Name:     "Chocolate Chip Cookies",
		Price:    decimal.RequireFromString("4.50"),
		Currency: catalog.DefaultCurrency,
	})
	sess := checkout.NewRegistry(pb).Create()

	_, err := sess.AddItem("BISC-001", 1)
	require.NoError(t, err)

	// Catalog price changes after the line item captured its snapshot.
	pb.setPrice("BISC-001", "9.99")

	snap, err := sess.AddItem("BISC-001", 1)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "4.50", snap.Items[0].UnitPrice.StringFixed(2), "snapshot price survives catalog updates")
	assert.Equal(t, "9.00", snap.Total().StringFixed(2))
}
