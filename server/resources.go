package server

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hupe1980/shopmesh/checkout"
	"github.com/hupe1980/shopmesh/controller"
	"github.com/hupe1980/shopmesh/logging"
)

// Resource URIs of the shopping service. The two templated URIs expand the
// checkout and order identifiers.
const (
	URICatalogProducts  = "ucp://catalog/products"
	URIDiscoveryProfile = "ucp://discovery/profile"
	URICheckoutTemplate = "ucp://checkout/{checkout_id}"
	URIOrderTemplate    = "ucp://orders/{order_id}"

	uriCheckoutPrefix = "ucp://checkout/"
	uriOrderPrefix    = "ucp://orders/"
)

func registerResources(srv *mcp.Server, ctrl *controller.Controller, profile Profile, logger logging.Logger) {
	srv.AddResource(&mcp.Resource{
		URI:         URICatalogProducts,
		Name:        "catalog_products",
		Description: "The full product catalog.",
		MIMEType:    "application/json",
	}, func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return jsonResource(req.Params.URI, map[string]any{"results": ctrl.CatalogProducts()})
	})

	srv.AddResource(&mcp.Resource{
		URI:         URIDiscoveryProfile,
		Name:        "discovery_profile",
		Description: "The merchant's UCP capability profile.",
		MIMEType:    "application/json",
	}, func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return jsonResource(req.Params.URI, profile)
	})

	srv.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: URICheckoutTemplate,
		Name:        "checkout_state",
		Description: "The current state of a specific checkout.",
		MIMEType:    "application/json",
	}, func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		checkoutID := strings.TrimPrefix(req.Params.URI, uriCheckoutPrefix)
		view, err := ctrl.GetCheckout(checkoutID)
		if err != nil {
			logger.Warn("resource.read.failed", "uri", req.Params.URI, "error", err.Error())
			return nil, notFoundOrErr(req.Params.URI, err)
		}
		return jsonResource(req.Params.URI, view)
	})

	srv.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: URIOrderTemplate,
		Name:        "order_confirmation",
		Description: "Order confirmation details.",
		MIMEType:    "application/json",
	}, func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		orderID := strings.TrimPrefix(req.Params.URI, uriOrderPrefix)
		view, err := ctrl.GetOrder(orderID)
		if err != nil {
			logger.Warn("resource.read.failed", "uri", req.Params.URI, "error", err.Error())
			return nil, notFoundOrErr(req.Params.URI, err)
		}
		return jsonResource(req.Params.URI, map[string]any{"order": view})
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: uri, MIMEType: "application/json", Text: string(b)},
		},
	}, nil
}

// notFoundOrErr maps unknown identifiers onto the protocol-level resource
// not found error; other failures pass through unchanged.
func notFoundOrErr(uri string, err error) error {
	switch checkout.KindOf(err) {
	case checkout.KindCheckoutNotFound, checkout.KindOrderNotFound:
		return mcp.ResourceNotFoundError(uri)
	default:
		return err
	}
}
