package notifications

import (
	"sync"

	"orderflow/internal/core/domain/model/kernel"
)

// Registry tracks active subscribers. It is safe for concurrent use: the
// gateway registers and unregisters connections while the dispatcher takes
// snapshots for fan-out.
type Registry struct {
	mu          sync.RWMutex
	subscribers map[kernel.UUID]*Subscriber
}

// NewRegistry creates an empty subscriber registry.
func NewRegistry() *Registry {
	return &Registry{
		subscribers: make(map[kernel.UUID]*Subscriber),
	}
}

// Register adds a subscriber to the registry.
func (r *Registry) Register(sub *Subscriber) {
	if sub == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers[sub.ID()] = sub
}

// Unregister removes a subscriber and closes it. Calling Unregister for an
// unknown or already removed subscriber is a no-op, so disconnect paths may
// run it unconditionally.
func (r *Registry) Unregister(id kernel.UUID) {
	r.mu.Lock()
	sub, ok := r.subscribers[id]
	if ok {
		delete(r.subscribers, id)
	}
	r.mu.Unlock()

	if ok {
		sub.Close()
	}
}

// Snapshot returns the current set of subscribers. The returned slice is a
// copy; registrations after the call do not affect it.
func (r *Registry) Snapshot() []*Subscriber {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subs := make([]*Subscriber, 0, len(r.subscribers))
	for _, sub := range r.subscribers {
		subs = append(subs, sub)
	}

	return subs
}

// Len returns the number of registered subscribers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscribers)
}
