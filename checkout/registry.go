package checkout

import (
	"sync"

	"github.com/google/uuid"
)

// Registry owns the process-wide collection of live checkout sessions,
// keyed by checkout identifier. It is the only place sessions are created,
// which keeps the shared mutable state behind one component instead of
// ambient globals. The registry map is guarded by an RWMutex; per-session
// transition serialization is handled by each Session's own mutex.
//
// Sessions are never evicted. A production deployment would layer an
// expiry policy on top; see DESIGN.md.
type Registry struct {
	mu       sync.RWMutex
	cat      Catalog
	sessions map[string]*Session
}

// NewRegistry constructs an empty registry whose sessions resolve products
// through the given catalog.
func NewRegistry(cat Catalog) *Registry {
	return &Registry{cat: cat, sessions: make(map[string]*Session)}
}

// Create allocates a new session under a fresh opaque identifier.
func (r *Registry) Create() *Session {
	sess := NewSession(uuid.NewString(), r.cat)
	r.mu.Lock()
	r.sessions[sess.ID()] = sess
	r.mu.Unlock()
	return sess
}

// Get returns the session with the given identifier or an Error with
// KindCheckoutNotFound.
func (r *Registry) Get(checkoutID string) (*Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[checkoutID]
	r.mu.RUnlock()
	if !ok {
		return nil, NewError(KindCheckoutNotFound, "no checkout with id %q", checkoutID)
	}
	return sess, nil
}

// GetOrCreate returns the existing session when checkoutID names one,
// creates a fresh session when checkoutID is empty, and fails with
// KindCheckoutNotFound when a supplied identifier is unknown. A caller
// asking for a specific checkout must never silently receive a different
// one.
func (r *Registry) GetOrCreate(checkoutID string) (*Session, error) {
	if checkoutID == "" {
		return r.Create(), nil
	}
	return r.Get(checkoutID)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
