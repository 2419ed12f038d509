package training

import (
	"sync"

	"fitvalle/coaching-api/internal/domain"
)

// Mailbox is the single-slot hand-back channel the exercise detail screen
// uses to return one edited record to its caller when the edit store's
// change notification is not observed in time.
//
// The slot is not keyed: editing two different exercises in sequence
// without the first being consumed keeps only the second. That is a known
// compromise, not a delivery guarantee.
type Mailbox struct {
	mu   sync.Mutex
	slot *domain.SessionExercise
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Write sets the slot, overwriting any pending value.
func (m *Mailbox) Write(exercise domain.SessionExercise) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slot = &exercise
}

// ReadAndClear atomically returns and removes the pending value.
func (m *Mailbox) ReadAndClear() (domain.SessionExercise, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.slot == nil {
		return domain.SessionExercise{}, false
	}
	exercise := *m.slot
	m.slot = nil
	return exercise, true
}
