package mock

import "sync"

// Spy swaps a function variable for a replacement until Restore is called.
type Spy[F any] struct {
	once   sync.Once
	target *F
	orig   F
}

// SpyOn stores replacement into *target and returns a Spy that can put the
// original back.
func SpyOn[F any](target *F, replacement F) *Spy[F] {
	s := &Spy[F]{target: target, orig: *target}
	*target = replacement
	return s
}

// Original returns the function that was replaced.
func (s *Spy[F]) Original() F { return s.orig }

// Restore puts the original function back. Calls after the first do nothing.
func (s *Spy[F]) Restore() {
	s.once.Do(func() { *s.target = s.orig })
}
