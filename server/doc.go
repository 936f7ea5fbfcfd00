// Package server is the MCP surface of ShopMesh. It registers the shopping
// tools, the read-only ucp:// resources and the assistance prompt on an MCP
// server from the official Go SDK, delegating every call to the
// transport-agnostic controller.
//
// The package owns nothing but translation: argument structs in, controller
// calls, projections out. Domain failures are surfaced as tool errors whose
// message carries the machine-readable kind, never as process crashes.
package server
