// Package shopmesh provides a high-level façade over the shopping core
// (catalog, checkout sessions, orders) and its MCP surface. Most
// applications interact with this package by:
//  1. Creating a ShopMesh via New() (optionally overriding the catalog,
//     currency, merchant profile or logger)
//  2. Obtaining the MCP server via MCPServer() and connecting it to a
//     transport (stdio, streamable HTTP, SSE or in-memory pipes)
//
// The façade delegates all operation semantics to controller.Controller
// while keeping setup ergonomics concise. All defaults are safe for local
// development and testing: an in-memory registry and ledger, the built-in
// demo catalog and a no-op logger.
package shopmesh

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hupe1980/shopmesh/catalog"
	"github.com/hupe1980/shopmesh/checkout"
	"github.com/hupe1980/shopmesh/controller"
	"github.com/hupe1980/shopmesh/logging"
	"github.com/hupe1980/shopmesh/order"
	"github.com/hupe1980/shopmesh/server"
)

// Options configures the ShopMesh instance.
type Options struct {
	// Catalog is the product set to index (defaults to the built-in demo
	// catalog if empty).
	Catalog []catalog.Product

	// Profile is the capability document served at ucp://discovery/profile.
	Profile server.Profile

	// ServerName and ServerVersion identify the MCP implementation.
	ServerName    string
	ServerVersion string

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// ShopMesh aggregates the catalog index, the checkout registry, the order
// ledger and the controller façade over them.
type ShopMesh struct {
	opts     Options
	index    *catalog.Index
	registry *checkout.Registry
	ledger   *order.Ledger
	ctrl     *controller.Controller
}

// New creates a new ShopMesh instance with optional overrides. Any unset
// option is initialized with an in-memory default.
func New(optFns ...func(o *Options)) *ShopMesh {
	opts := Options{
		Catalog:       catalog.DefaultCatalog(),
		Profile:       server.DefaultProfile(),
		ServerName:    "ucp-shopping-service",
		ServerVersion: "0.1.0",
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if len(opts.Catalog) == 0 {
		opts.Catalog = catalog.DefaultCatalog()
	}

	index := catalog.NewIndex(opts.Catalog)
	registry := checkout.NewRegistry(index)
	ledger := order.NewLedger()
	ctrl := controller.New(index, registry, ledger, func(o *controller.Options) {
		o.Logger = opts.Logger
	})

	return &ShopMesh{opts: opts, index: index, registry: registry, ledger: ledger, ctrl: ctrl}
}

// Controller returns the transport-agnostic operation façade.
func (s *ShopMesh) Controller() *controller.Controller { return s.ctrl }

// Catalog returns the immutable product index.
func (s *ShopMesh) Catalog() *catalog.Index { return s.index }

// Registry returns the checkout session registry.
func (s *ShopMesh) Registry() *checkout.Registry { return s.registry }

// Orders returns the order ledger.
func (s *ShopMesh) Orders() *order.Ledger { return s.ledger }

// MCPServer builds the MCP server surface over the controller. Each call
// returns a fresh server sharing the same underlying state, which suits
// per-connection server factories for HTTP transports.
func (s *ShopMesh) MCPServer() *mcp.Server {
	return server.New(s.ctrl, func(o *server.Options) {
		o.Name = s.opts.ServerName
		o.Version = s.opts.ServerVersion
		o.Profile = s.opts.Profile
		o.Logger = s.opts.Logger
	})
}
