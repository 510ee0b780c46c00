package shortid

import (
	"errors"
	"math"
	"sync/atomic"
)

// ErrExhausted is returned once a Sequence has handed out math.MaxInt64.
var ErrExhausted = errors.New("shortid: sequence exhausted")

// Sequence hands out strictly increasing IDs without locking. The zero value
// starts at 1.
type Sequence struct {
	last atomic.Int64
}

// NewSequence returns a Sequence whose first ID is start. Negative starts are
// treated as 0.
func NewSequence(start ID) *Sequence {
	if start < 0 {
		start = 0
	}
	s := &Sequence{}
	s.last.Store(int64(start) - 1)
	return s
}

// Next returns the next ID.
func (s *Sequence) Next() (ID, error) {
	return s.Reserve(1)
}

// Reserve claims n consecutive IDs and returns the first one.
func (s *Sequence) Reserve(n int) (ID, error) {
	if n < 1 {
		return Nil, errors.New("shortid: reserve count must be positive")
	}
	for {
		old := s.last.Load()
		if old > math.MaxInt64-int64(n) {
			return Nil, ErrExhausted
		}
		if s.last.CompareAndSwap(old, old+int64(n)) {
			return ID(old + 1), nil
		}
	}
}

// Last returns the most recently handed out ID, or start-1 if none.
func (s *Sequence) Last() ID {
	return ID(s.last.Load())
}
