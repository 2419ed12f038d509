package training

import (
	"sync"

	"fitvalle/coaching-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EditStore holds the customer's in-flight parameter edits, keyed by
// exercise ID. It is shared between the session screen and the exercise
// detail screen for the lifetime of one training flow.
//
// The map is replaced wholesale on every publish (copy-on-write), so a
// snapshot handed out earlier never mutates under the caller. Publishing
// the same exercise twice before consumption simply overwrites; no
// history is kept, and nothing stops a second writer from clobbering.
type EditStore struct {
	mu    sync.RWMutex
	edits map[primitive.ObjectID]domain.SessionExercise
	subs  []chan map[primitive.ObjectID]domain.SessionExercise
}

// NewEditStore creates an empty edit store.
func NewEditStore() *EditStore {
	return &EditStore{
		edits: map[primitive.ObjectID]domain.SessionExercise{},
	}
}

// Publish inserts or overwrites the entry for exercise.ExerciseID and
// notifies subscribers with the new snapshot.
func (s *EditStore) Publish(exercise domain.SessionExercise) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[primitive.ObjectID]domain.SessionExercise, len(s.edits)+1)
	for id, e := range s.edits {
		next[id] = e
	}
	next[exercise.ExerciseID] = exercise
	s.edits = next
	s.notifyLocked()
}

// Get returns the current edited record for an exercise, if any.
func (s *EditStore) Get(exerciseID primitive.ObjectID) (domain.SessionExercise, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.edits[exerciseID]
	return e, ok
}

// Snapshot returns the current edit map. The map is never mutated after
// being handed out.
func (s *EditStore) Snapshot() map[primitive.ObjectID]domain.SessionExercise {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.edits
}

// Consume returns the current edit map and empties the store.
func (s *EditStore) Consume() map[primitive.ObjectID]domain.SessionExercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	edits := s.edits
	s.edits = map[primitive.ObjectID]domain.SessionExercise{}
	s.notifyLocked()
	return edits
}

// Clear empties the store.
func (s *EditStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edits = map[primitive.ObjectID]domain.SessionExercise{}
	s.notifyLocked()
}

// Subscribe registers an observer of map-level changes. Delivery is
// latest-wins: a slow observer skips intermediate snapshots and only ever
// sees the most recent one. Delivery order across observers is unspecified.
func (s *EditStore) Subscribe() <-chan map[primitive.ObjectID]domain.SessionExercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan map[primitive.ObjectID]domain.SessionExercise, 1)
	ch <- s.edits
	s.subs = append(s.subs, ch)
	return ch
}

// notifyLocked pushes the current snapshot to every subscriber, dropping
// any stale undelivered snapshot first. Callers must hold s.mu.
func (s *EditStore) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s.edits
	}
}
