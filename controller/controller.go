package controller

import (
	"errors"

	"github.com/hupe1980/shopmesh/catalog"
	"github.com/hupe1980/shopmesh/checkout"
	"github.com/hupe1980/shopmesh/logging"
	"github.com/hupe1980/shopmesh/order"
)

// AddressArgs is the loosely typed address shape crossing the external
// boundary. It is converted into a checkout.Address (and validated there)
// before it reaches the state machine.
type AddressArgs struct {
	Name       string `json:"name,omitempty" jsonschema:"Full name of the recipient"`
	Street     string `json:"address_line1" jsonschema:"Street address line"`
	City       string `json:"city" jsonschema:"City"`
	Region     string `json:"region,omitempty" jsonschema:"State or region code"`
	PostalCode string `json:"postal_code" jsonschema:"Postal or ZIP code"`
	Country    string `json:"country" jsonschema:"Two-letter country code"`
}

func (a AddressArgs) toDomain() checkout.Address {
	return checkout.Address{
		Name:       a.Name,
		Street:     a.Street,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// Options configures a Controller.
type Options struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Controller wires the catalog, the checkout registry and the order ledger
// behind the shopping operations.
type Controller struct {
	catalog  *catalog.Index
	registry *checkout.Registry
	ledger   *order.Ledger
	logger   logging.Logger
}

// New creates a Controller over the given collaborators.
func New(idx *catalog.Index, registry *checkout.Registry, ledger *order.Ledger, optFns ...func(o *Options)) *Controller {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Controller{catalog: idx, registry: registry, ledger: ledger, logger: opts.Logger}
}

// SearchCatalog answers the search_shopping_catalog operation. An empty
// query returns the full catalog in its stable load order.
func (c *Controller) SearchCatalog(query string) []ProductView {
	products := c.catalog.Search(query)
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, renderProduct(p))
	}
	c.logger.Debug("catalog.search", "query", query, "hits", len(views))
	return views
}

// CatalogProducts returns the full catalog projection for the products
// resource.
func (c *Controller) CatalogProducts() []ProductView {
	return c.SearchCatalog("")
}

// AddToCheckout adds a product to the checkout named by checkoutID,
// creating a fresh checkout when checkoutID is empty.
func (c *Controller) AddToCheckout(checkoutID, productID string, quantity int) (CheckoutView, error) {
	sess, err := c.registry.GetOrCreate(checkoutID)
	if err != nil {
		return CheckoutView{}, c.fail("add_to_checkout", err)
	}
	snap, err := sess.AddItem(productID, quantity)
	if err != nil {
		return CheckoutView{}, c.fail("add_to_checkout", err)
	}
	c.logger.Info("checkout.item.added", "checkout_id", snap.ID, "product_id", productID, "quantity", quantity)
	return renderCheckout(snap), nil
}

// RemoveFromCheckout removes a product's line item; absent products are a
// no-op success.
func (c *Controller) RemoveFromCheckout(checkoutID, productID string) (CheckoutView, error) {
	sess, err := c.registry.Get(checkoutID)
	if err != nil {
		return CheckoutView{}, c.fail("remove_from_checkout", err)
	}
	snap, err := sess.RemoveItem(productID)
	if err != nil {
		return CheckoutView{}, c.fail("remove_from_checkout", err)
	}
	c.logger.Info("checkout.item.removed", "checkout_id", snap.ID, "product_id", productID)
	return renderCheckout(snap), nil
}

// UpdateCheckout sets a line item to an exact quantity; zero or negative
// quantities behave like removal.
func (c *Controller) UpdateCheckout(checkoutID, productID string, quantity int) (CheckoutView, error) {
	sess, err := c.registry.Get(checkoutID)
	if err != nil {
		return CheckoutView{}, c.fail("update_checkout", err)
	}
	snap, err := sess.UpdateItem(productID, quantity)
	if err != nil {
		return CheckoutView{}, c.fail("update_checkout", err)
	}
	c.logger.Info("checkout.item.updated", "checkout_id", snap.ID, "product_id", productID, "quantity", quantity)
	return renderCheckout(snap), nil
}

// GetCheckout returns the current projection of a checkout.
func (c *Controller) GetCheckout(checkoutID string) (CheckoutView, error) {
	sess, err := c.registry.Get(checkoutID)
	if err != nil {
		return CheckoutView{}, c.fail("get_checkout", err)
	}
	return renderCheckout(sess.Snapshot()), nil
}

// UpdateCustomerDetails validates and replaces the checkout's customer
// details wholesale.
func (c *Controller) UpdateCustomerDetails(checkoutID string, address AddressArgs, email string) (CheckoutView, error) {
	sess, err := c.registry.Get(checkoutID)
	if err != nil {
		return CheckoutView{}, c.fail("update_customer_details", err)
	}
	snap, err := sess.SetCustomerDetails(address.toDomain(), email)
	if err != nil {
		return CheckoutView{}, c.fail("update_customer_details", err)
	}
	c.logger.Info("checkout.customer.updated", "checkout_id", snap.ID)
	return renderCheckout(snap), nil
}

// StartPayment initiates the payment leg of a checkout. Repeated calls
// while payment is already started are idempotent successes.
func (c *Controller) StartPayment(checkoutID string) (CheckoutView, error) {
	sess, err := c.registry.Get(checkoutID)
	if err != nil {
		return CheckoutView{}, c.fail("start_payment", err)
	}
	snap, err := sess.StartPayment()
	if err != nil {
		return CheckoutView{}, c.fail("start_payment", err)
	}
	c.logger.Info("checkout.payment.started", "checkout_id", snap.ID)
	return renderCheckout(snap), nil
}

// CompleteCheckout finalizes the checkout, records the order and returns
// the projection carrying the order confirmation. Completing an already
// completed checkout returns the original order identifier again.
func (c *Controller) CompleteCheckout(checkoutID string) (CheckoutView, error) {
	sess, err := c.registry.Get(checkoutID)
	if err != nil {
		return CheckoutView{}, c.fail("complete_checkout", err)
	}
	snap, err := sess.Complete(func(frozen checkout.Snapshot) (string, error) {
		return c.ledger.Record(frozen).ID, nil
	})
	if err != nil {
		return CheckoutView{}, c.fail("complete_checkout", err)
	}
	c.logger.Info("checkout.completed", "checkout_id", snap.ID, "order_id", snap.OrderID)
	return renderCheckout(snap), nil
}

// GetOrder returns the confirmation projection of a finalized order.
func (c *Controller) GetOrder(orderID string) (OrderView, error) {
	o, err := c.ledger.Lookup(orderID)
	if err != nil {
		return OrderView{}, c.fail("get_order", err)
	}
	return renderOrder(o), nil
}

// fail normalizes a domain failure into the caller-visible taxonomy and
// logs it. Catalog and ledger sentinels are wrapped; checkout errors pass
// through unchanged.
func (c *Controller) fail(operation string, err error) error {
	converted := convertErr(err)
	c.logger.Warn("operation.failed", "operation", operation, "kind", string(checkout.KindOf(converted)), "error", converted.Error())
	return converted
}

func convertErr(err error) error {
	switch {
	case err == nil:
		return nil
	case checkout.KindOf(err) != "":
		return err
	case errors.Is(err, catalog.ErrNotFound):
		return checkout.NewError(checkout.KindProductNotFound, "%v", err)
	case errors.Is(err, order.ErrNotFound):
		return checkout.NewError(checkout.KindOrderNotFound, "%v", err)
	default:
		return err
	}
}
