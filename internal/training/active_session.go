package training

import (
	"sync"

	"fitvalle/coaching-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActiveSession is the in-memory state of one live training session: the
// baseline loaded at start, the currently displayed list, and the two
// edit-delivery channels. It exists from StartSession until the session is
// finished or cancelled, then is discarded. Nothing here is persisted.
type ActiveSession struct {
	CustomerID primitive.ObjectID
	SessionID  primitive.ObjectID
	RoutineID  primitive.ObjectID
	// TemplateID is set when the session was started from a customer's
	// own template rather than a coach-assigned routine session.
	TemplateID primitive.ObjectID

	mu       sync.Mutex
	baseline []domain.SessionExercise
	current  []domain.SessionExercise

	edits    *EditStore
	handback *Mailbox
}

// NewActiveSession starts session state from the loaded baseline. The
// baseline is snapshotted so later edits never disturb the comparison
// point for "was this changed".
func NewActiveSession(customerID, sessionID, routineID primitive.ObjectID, baseline []domain.SessionExercise) *ActiveSession {
	snapshot := make([]domain.SessionExercise, len(baseline))
	copy(snapshot, baseline)
	current := make([]domain.SessionExercise, len(baseline))
	copy(current, baseline)

	return &ActiveSession{
		CustomerID: customerID,
		SessionID:  sessionID,
		RoutineID:  routineID,
		baseline:   snapshot,
		current:    current,
		edits:      NewEditStore(),
		handback:   NewMailbox(),
	}
}

// NewTemplateSession starts session state from a template's planned
// exercises. The template ID stands in for the routine ID so the history
// record points back at what was trained.
func NewTemplateSession(customerID, templateID, sessionID primitive.ObjectID, baseline []domain.SessionExercise) *ActiveSession {
	session := NewActiveSession(customerID, sessionID, templateID, baseline)
	session.TemplateID = templateID
	return session
}

// FromTemplate reports whether this session was started from a template.
func (s *ActiveSession) FromTemplate() bool {
	return !s.TemplateID.IsZero()
}

// Edits exposes the shared edit store for the detail-screen flow.
func (s *ActiveSession) Edits() *EditStore {
	return s.edits
}

// Handback exposes the single-slot hand-back channel.
func (s *ActiveSession) Handback() *Mailbox {
	return s.handback
}

// Baseline returns the parameter values as loaded at session start.
func (s *ActiveSession) Baseline() []domain.SessionExercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SessionExercise, len(s.baseline))
	copy(out, s.baseline)
	return out
}

// SetCompleted toggles the in-session checkbox for one exercise. Returns
// false when the exercise is not part of this session.
func (s *ActiveSession) SetCompleted(exerciseID primitive.ObjectID, completed bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, record := range s.current {
		if record.ExerciseID == exerciseID {
			record.Completed = completed
			s.current[i] = record
			return true
		}
	}
	return false
}

// Reconcile drains both edit sources into the displayed list and returns
// it. The edit store is cleared after its snapshot is applied, the
// hand-back slot after its payload is applied; calling again with nothing
// pending is a no-op.
func (s *ActiveSession) Reconcile() []domain.SessionExercise {
	s.mu.Lock()
	defer s.mu.Unlock()

	edits := s.edits.Consume()
	var pending *domain.SessionExercise
	if p, ok := s.handback.ReadAndClear(); ok {
		pending = &p
	}
	s.current = Reconcile(s.current, edits, pending)

	out := make([]domain.SessionExercise, len(s.current))
	copy(out, s.current)
	return out
}
