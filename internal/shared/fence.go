package shared

import "sync"

// Fence orders asynchronous responses by the sequence number of the request that produced them.
//
// Each request takes a number from [Fence.Next]; a response is applied only if its number is newer
// than the last applied one, so a slow response can never overwrite state from a newer request.
type Fence struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
}

// Next returns the sequence number for a new request.
func (f *Fence) Next() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issued++
	return f.issued
}

// Apply reports whether a response tagged with seq should be applied and records it as applied if so.
func (f *Fence) Apply(seq uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if seq <= f.applied {
		return false
	}
	f.applied = seq
	return true
}

// Latest returns the most recently issued sequence number.
func (f *Fence) Latest() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issued
}
