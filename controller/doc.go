// Package controller exposes the shopping operations as plain Go calls:
// search, the checkout mutations, payment start and completion, plus the
// read-only projections served as resources. It translates external
// argument shapes into domain types at the boundary, routes every checkout
// mutation through the registry's session serialization, and converts
// domain failures into the caller-visible error taxonomy.
//
// The controller is transport-agnostic; the MCP surface in package server
// is one thin adapter over it, and tests call it directly.
package controller
