package router

import "fmt"

// Slots owns the walk buffers, one per actor, for a bounded number of actors
// at a time.
type Slots struct {
	max  int
	bufs map[int][]Frame
}

func NewSlots(n int) *Slots {
	return &Slots{max: n, bufs: make(map[int][]Frame, n)}
}

// Allocate reserves a buffer for id, dropping any buffer it already had.
func (s *Slots) Allocate(id int) error {
	if _, ok := s.bufs[id]; ok {
		delete(s.bufs, id)
	}
	if len(s.bufs) >= s.max {
		return fmt.Errorf("%w: %d actors already walking", ErrNoFreeSlot, len(s.bufs))
	}
	s.bufs[id] = nil
	return nil
}

func (s *Slots) store(id int, frames []Frame) {
	s.bufs[id] = frames
}

func (s *Slots) Release(id int) {
	delete(s.bufs, id)
}

func (s *Slots) ReleaseAll() {
	clear(s.bufs)
}

// Buffer returns id's walk frames. The slice is owned by the slots and is
// replaced, not modified, by later calls.
func (s *Slots) Buffer(id int) ([]Frame, bool) {
	buf, ok := s.bufs[id]
	return buf, ok && buf != nil
}

// InUse reports how many actors hold a buffer.
func (s *Slots) InUse() int {
	return len(s.bufs)
}
