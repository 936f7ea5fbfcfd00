// Package checkout implements the checkout session state machine and the
// registry that owns all live sessions. This is the part of ShopMesh with
// real invariants: line item quantities, snapshot pricing, forward-only
// lifecycle transitions and idempotent finalization all live here.
//
// A Session moves through three lifecycle states:
//
//	open → ready_for_complete → completed
//
// Transitions never regress and "completed" is terminal. Every mutating
// operation on a session runs under that session's own mutex, so two
// concurrent tool calls naming the same checkout identifier can never
// interleave their read-modify-write of line items. Calls against different
// identifiers proceed without coordination.
//
// The Registry is the single owner of the process-wide session map. Sessions
// are never evicted; they live for the process lifetime.
package checkout
