package history

import "sync"

// DefaultCapacity is the number of entries kept when none is configured.
const DefaultCapacity = 100

// Ring is a fixed-capacity FIFO of recent queries and responses. Once full,
// the oldest entry is evicted. Safe for concurrent use.
type Ring struct {
	mu    sync.Mutex
	buf   []string
	start int
	size  int
}

// New creates a ring holding up to capacity entries.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{buf: make([]string, capacity)}
}

// Append adds s, evicting the oldest entry when full.
func (r *Ring) Append(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.size < len(r.buf) {
		r.buf[(r.start+r.size)%len(r.buf)] = s
		r.size++
		return
	}
	r.buf[r.start] = s
	r.start = (r.start + 1) % len(r.buf)
}

// Snapshot returns the entries from oldest to newest.
func (r *Ring) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, r.size)
	for i := range out {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}
