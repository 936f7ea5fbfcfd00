package testutil

import (
	"github.com/shopspring/decimal"

	"github.com/hupe1980/shopmesh/catalog"
	"github.com/hupe1980/shopmesh/checkout"
	"github.com/hupe1980/shopmesh/controller"
	"github.com/hupe1980/shopmesh/order"
)

// Products returns a small fixture catalog with stable prices so tests can
// assert exact totals.
func Products() []catalog.Product {
	return []catalog.Product{
		{ID: "BISC-001", Name: "Chocolate Chip Cookies", Description: "Crunchy cookies", Price: decimal.RequireFromString("4.50"), Currency: catalog.DefaultCurrency},
		{ID: "BISC-002", Name: "Oat Digestive Biscuits", Description: "Wholegrain oat biscuits", Price: decimal.RequireFromString("3.25"), Currency: catalog.DefaultCurrency},
		{ID: "TEA-001", Name: "Earl Grey Tea", Description: "Black tea with bergamot", Price: decimal.RequireFromString("6.00"), Currency: catalog.DefaultCurrency},
	}
}

// Index returns an index over Products().
func Index() *catalog.Index {
	return catalog.NewIndex(Products())
}

// Address returns a complete, valid shipping address.
func Address() checkout.Address {
	return checkout.Address{
		Name:       "John Doe",
		Street:     "123 Main St",
		City:       "San Francisco",
		Region:     "CA",
		PostalCode: "94105",
		Country:    "US",
	}
}

// AddressArgs returns the external-boundary shape of Address().
func AddressArgs() controller.AddressArgs {
	return controller.AddressArgs{
		Name:       "John Doe",
		Street:     "123 Main St",
		City:       "San Francisco",
		Region:     "CA",
		PostalCode: "94105",
		Country:    "US",
	}
}

// Controller wires a controller over the fixture catalog with a fresh
// registry and ledger, returning all three for assertions.
func Controller() (*controller.Controller, *checkout.Registry, *order.Ledger) {
	idx := Index()
	registry := checkout.NewRegistry(idx)
	ledger := order.NewLedger()
	ctrl := controller.New(idx, registry, ledger)
	return ctrl, registry, ledger
}
