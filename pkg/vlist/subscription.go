package vlist

// SubscriptionSet collects detach functions for every listener a
// component attached during its lifetime, so teardown can release all
// of them in one call and no callback survives destruction.
type SubscriptionSet struct {
	cancels []func()
}

// Add registers a detach function to run at release time. Nil detach
// functions are ignored.
func (s *SubscriptionSet) Add(cancel func()) {
	if cancel == nil {
		return
	}
	s.cancels = append(s.cancels, cancel)
}

// Len returns the number of registered detach functions.
func (s *SubscriptionSet) Len() int { return len(s.cancels) }

// ReleaseAll runs every registered detach function, most recent
// first, and empties the set. Detach functions must tolerate being
// called after their listener was already removed.
func (s *SubscriptionSet) ReleaseAll() {
	for i := len(s.cancels) - 1; i >= 0; i-- {
		s.cancels[i]()
	}
	s.cancels = nil
}
