package server

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hupe1980/shopmesh/controller"
	"github.com/hupe1980/shopmesh/logging"
)

// Instructions is the capability description handed to connecting agents.
const Instructions = `This MCP server provides access to UCP (Universal Commerce Protocol) shopping
capabilities. You can:

1. Browse Products: Use search_shopping_catalog to explore the catalog
2. Create Checkout: add_to_checkout automatically creates a checkout if none exists
3. Add Items: Use add_to_checkout to add products to your cart
4. Update Address: Use update_customer_details to configure delivery
5. Complete Purchase: Use complete_checkout to finalize the order
6. Track Orders: Use ucp://orders/{order_id} resource to check order status

Start by searching for products, then guide the user through checkout.`

// Options configures the MCP server surface.
type Options struct {
	// Name and Version identify the server implementation during the MCP
	// handshake.
	Name    string
	Version string
	// Profile is the capability document served at ucp://discovery/profile.
	Profile Profile
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// New builds an MCP server exposing the shopping tools, resources and
// prompt over the given controller. The returned server is transport-free;
// callers connect it to stdio, streamable HTTP, SSE or in-memory pipes.
func New(ctrl *controller.Controller, optFns ...func(o *Options)) *mcp.Server {
	opts := Options{
		Name:    "ucp-shopping-service",
		Version: "0.1.0",
		Profile: DefaultProfile(),
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	srv := mcp.NewServer(
		&mcp.Implementation{Name: opts.Name, Version: opts.Version},
		&mcp.ServerOptions{Instructions: Instructions},
	)

	registerTools(srv, ctrl, opts.Logger)
	registerResources(srv, ctrl, opts.Profile, opts.Logger)
	registerPrompts(srv)

	return srv
}

type searchArgs struct {
	Query string `json:"query,omitempty" jsonschema:"Searching keywords or categories. Returns all products if empty."`
}

type searchResult struct {
	Results []controller.ProductView `json:"results"`
}

type addArgs struct {
	ProductID  string `json:"product_id" jsonschema:"ID of the product to add"`
	Quantity   int    `json:"quantity,omitempty" jsonschema:"Quantity of the product, defaults to 1"`
	CheckoutID string `json:"checkout_id,omitempty" jsonschema:"Optional ID of an existing checkout"`
}

type removeArgs struct {
	CheckoutID string `json:"checkout_id" jsonschema:"ID of the checkout"`
	ProductID  string `json:"product_id" jsonschema:"ID of the product to remove"`
}

type updateArgs struct {
	CheckoutID string `json:"checkout_id" jsonschema:"ID of the checkout"`
	ProductID  string `json:"product_id" jsonschema:"ID of the product"`
	Quantity   int    `json:"quantity" jsonschema:"New quantity. Zero removes the item."`
}

type checkoutArgs struct {
	CheckoutID string `json:"checkout_id" jsonschema:"ID of the checkout"`
}

type customerArgs struct {
	CheckoutID string                 `json:"checkout_id" jsonschema:"ID of the checkout"`
	Address    controller.AddressArgs `json:"address" jsonschema:"Shipping address"`
	Email      string                 `json:"email" jsonschema:"Buyer email address"`
}

func registerTools(srv *mcp.Server, ctrl *controller.Controller, logger logging.Logger) {
	registerTool(srv, logger, &mcp.Tool{
		Name:        "search_shopping_catalog",
		Description: "Searches for products in the catalog based on a query string.",
	}, func(_ context.Context, in searchArgs) (searchResult, error) {
		return searchResult{Results: ctrl.SearchCatalog(in.Query)}, nil
	})

	registerTool(srv, logger, &mcp.Tool{
		Name:        "add_to_checkout",
		Description: "Adds a product to the checkout. Creates a new checkout if checkout_id is not provided.",
	}, func(_ context.Context, in addArgs) (controller.CheckoutView, error) {
		quantity := in.Quantity
		if quantity == 0 {
			quantity = 1
		}
		return ctrl.AddToCheckout(in.CheckoutID, in.ProductID, quantity)
	})

	registerTool(srv, logger, &mcp.Tool{
		Name:        "remove_from_checkout",
		Description: "Removes a product from the checkout.",
	}, func(_ context.Context, in removeArgs) (controller.CheckoutView, error) {
		return ctrl.RemoveFromCheckout(in.CheckoutID, in.ProductID)
	})

	registerTool(srv, logger, &mcp.Tool{
		Name:        "update_checkout",
		Description: "Updates the quantity of a product in the checkout.",
	}, func(_ context.Context, in updateArgs) (controller.CheckoutView, error) {
		return ctrl.UpdateCheckout(in.CheckoutID, in.ProductID, in.Quantity)
	})

	registerTool(srv, logger, &mcp.Tool{
		Name:        "get_checkout",
		Description: "Retrieves the current state of a checkout.",
	}, func(_ context.Context, in checkoutArgs) (controller.CheckoutView, error) {
		return ctrl.GetCheckout(in.CheckoutID)
	})

	registerTool(srv, logger, &mcp.Tool{
		Name:        "start_payment",
		Description: "Initiates the payment process for a checkout.",
	}, func(_ context.Context, in checkoutArgs) (controller.CheckoutView, error) {
		return ctrl.StartPayment(in.CheckoutID)
	})

	registerTool(srv, logger, &mcp.Tool{
		Name:        "update_customer_details",
		Description: "Updates the customer (shipping) details for a checkout.",
	}, func(_ context.Context, in customerArgs) (controller.CheckoutView, error) {
		return ctrl.UpdateCustomerDetails(in.CheckoutID, in.Address, in.Email)
	})

	registerTool(srv, logger, &mcp.Tool{
		Name:        "complete_checkout",
		Description: "Finalizes the checkout and places the order.",
	}, func(_ context.Context, in checkoutArgs) (controller.CheckoutView, error) {
		return ctrl.CompleteCheckout(in.CheckoutID)
	})
}

// registerTool wraps a typed handler with uniform call logging. A handler
// error becomes a tool error on the wire; it never tears down the session.
func registerTool[In, Out any](srv *mcp.Server, logger logging.Logger, tool *mcp.Tool, fn func(ctx context.Context, in In) (Out, error)) {
	mcp.AddTool(srv, tool, func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, Out, error) {
		start := time.Now()
		logger.Debug("tool.call.start", "tool", tool.Name)

		out, err := fn(ctx, in)
		if err != nil {
			logger.Error("tool.call.error", "tool", tool.Name, "error", err.Error())
			var zero Out
			return nil, zero, err
		}

		logger.Info("tool.call.success", "tool", tool.Name, "duration_ms", time.Since(start).Milliseconds())
		return nil, out, nil
	})
}
