package core

// Handle is a stable integer identity for an entity across ticks.
// The zero Handle never names a live entity.
type Handle uint32

// NoHandle is the zero Handle.
const NoHandle Handle = 0

// HandleSource hands out handles in increasing order, never reusing one
// within a run, so a recycled pool slot never inherits an old identity.
type HandleSource struct {
	next Handle
}

// Next returns a fresh handle.
func (s *HandleSource) Next() Handle {
	s.next++
	if s.next == NoHandle {
		s.next++
	}
	return s.next
}

// Last returns the most recently issued handle.
func (s *HandleSource) Last() Handle {
	return s.next
}

// Reset restarts the sequence. Only valid when no entities are live.
func (s *HandleSource) Reset() {
	s.next = NoHandle
}
