package config

import "sync"

// Holder owns the shared parameters. Readers take value snapshots; Replace,
// Update and Override are the only writers.
type Holder struct {
	mu      sync.RWMutex
	params  Params
	version uint64
	unsaved int // Overrides not yet written to the shared store
}

// NewHolder creates a holder seeded with p.
func NewHolder(p Params) *Holder {
	return &Holder{params: p}
}

// Snapshot returns a copy of the current parameters. Params holds no
// reference types, so the copy is immutable from the caller's point of view.
func (h *Holder) Snapshot() Params {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.params
}

// Version increments on every write.
func (h *Holder) Version() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.version
}

// Replace swaps in a new parameter set.
func (h *Holder) Replace(p Params) {
	h.mu.Lock()
	h.params = p
	h.version++
	h.mu.Unlock()
}

// Update applies fn to the parameters under the write lock and returns the
// resulting snapshot.
func (h *Holder) Update(fn func(p *Params)) Params {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(&h.params)
	h.version++
	return h.params
}

// Override applies fn like Update and marks the result as not yet stored.
// Every Override must be followed by one Stored call once the write has
// finished or been abandoned.
func (h *Holder) Override(fn func(p *Params)) Params {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(&h.params)
	h.version++
	h.unsaved++
	return h.params
}

// Stored acknowledges the write of one Override.
func (h *Holder) Stored() {
	h.mu.Lock()
	if h.unsaved > 0 {
		h.unsaved--
	}
	h.mu.Unlock()
}

// Unsaved returns the number of overrides still waiting for their write.
func (h *Holder) Unsaved() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.unsaved
}

// ReplaceIf swaps in p only when no write happened since version was read
// and no override is waiting to be stored; a reload read before that write
// lands would undo it. It reports whether the replacement took place.
func (h *Holder) ReplaceIf(version uint64, p Params) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.version != version || h.unsaved > 0 {
		return false
	}
	h.params = p
	h.version++
	return true
}
