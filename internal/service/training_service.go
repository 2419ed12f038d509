package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"fitvalle/coaching-api/internal/domain"
	"fitvalle/coaching-api/internal/repository"
	"fitvalle/coaching-api/internal/training"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrNoActiveSession      = errors.New("no active training session")
	ErrExerciseNotInSession = errors.New("exercise is not part of the active session")
	ErrNoEligibleExercises  = errors.New("complete or edit at least one exercise before finishing")
	ErrSaveSessionFailed    = errors.New("failed to save completed session")
	ErrHistoryNotFound      = errors.New("completed session not found")
	ErrHistoryNotOwned      = errors.New("completed session does not belong to this customer")
)

// SessionState is the reconciled view of the active session, what the
// training screen displays.
type SessionState struct {
	SessionID primitive.ObjectID       `json:"sessionId"`
	RoutineID primitive.ObjectID       `json:"routineId"`
	Exercises []domain.SessionExercise `json:"exercises"`
}

type TrainingService interface {
	// Live session
	StartSession(ctx context.Context, customerID, sessionID, routineID primitive.ObjectID) (*SessionState, error)
	StartTemplateSession(ctx context.Context, customerID, templateID primitive.ObjectID) (*SessionState, error)
	CurrentState(customerID primitive.ObjectID) (*SessionState, error)
	PublishEdit(customerID primitive.ObjectID, exercise domain.SessionExercise) error
	HandBack(customerID primitive.ObjectID, exercise domain.SessionExercise) error
	SetCompleted(customerID, exerciseID primitive.ObjectID, completed bool) error
	FinishSession(ctx context.Context, customerID primitive.ObjectID) (*domain.CompletedSession, error)
	CancelSession(customerID primitive.ObjectID) error

	// History
	GetHistory(ctx context.Context, customerID primitive.ObjectID) ([]domain.CompletedSession, error)
	GetCompletedSession(ctx context.Context, customerID, completedID primitive.ObjectID) (*domain.CompletedSession, error)
	GetLastSessionTrained(ctx context.Context, customerID primitive.ObjectID) (primitive.ObjectID, error)
}

// trainingService implements the TrainingService interface. It owns the
// registry of live sessions, one per customer. Live state is in-memory
// only; nothing is persisted until the session is finished.
type trainingService struct {
	sessionExerciseRepo  repository.SessionExerciseRepository
	templateRepo         repository.TemplateRepository
	exerciseRepo         repository.ExerciseRepository
	completedSessionRepo repository.CompletedSessionRepository
	progressRepo         repository.ProgressRepository

	mu     sync.RWMutex
	active map[primitive.ObjectID]*training.ActiveSession
}

// NewTrainingService creates a new instance of trainingService.
func NewTrainingService(
	sessionExerciseRepo repository.SessionExerciseRepository,
	templateRepo repository.TemplateRepository,
	exerciseRepo repository.ExerciseRepository,
	completedSessionRepo repository.CompletedSessionRepository,
	progressRepo repository.ProgressRepository,
) TrainingService {
	return &trainingService{
		sessionExerciseRepo:  sessionExerciseRepo,
		templateRepo:         templateRepo,
		exerciseRepo:         exerciseRepo,
		completedSessionRepo: completedSessionRepo,
		progressRepo:         progressRepo,
		active:               map[primitive.ObjectID]*training.ActiveSession{},
	}
}

// === Live session ===

// StartSession loads the coach-assigned baseline for the session and opens
// live state for the customer, replacing any session already in progress.
// A fetch failure is logged and degrades to an empty exercise list; the
// customer can re-enter the session to retry.
func (s *trainingService) StartSession(ctx context.Context, customerID, sessionID, routineID primitive.ObjectID) (*SessionState, error) {
	baseline, err := s.sessionExerciseRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		log.Printf("ERROR: loading exercises for session %s: %v", sessionID.Hex(), err)
		baseline = nil
	}

	for i := range baseline {
		baseline[i].SessionID = sessionID
		baseline[i].Completed = false
		baseline[i].ExerciseName = s.resolveExerciseName(ctx, baseline[i].ExerciseID)
	}

	session := training.NewActiveSession(customerID, sessionID, routineID, baseline)

	s.mu.Lock()
	s.active[customerID] = session
	s.mu.Unlock()

	return &SessionState{
		SessionID: sessionID,
		RoutineID: routineID,
		Exercises: baseline,
	}, nil
}

// StartTemplateSession opens live state from one of the customer's own
// templates. The planned parameters become the baseline, a session ID is
// generated up front, and the template ID takes the routine ID's place in
// the state and the eventual history record.
func (s *trainingService) StartTemplateSession(ctx context.Context, customerID, templateID primitive.ObjectID) (*SessionState, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.OwnerID != customerID {
		return nil, ErrTemplateNotOwned
	}

	sessionID := primitive.NewObjectID()
	baseline := make([]domain.SessionExercise, 0, len(template.Exercises))
	for _, planned := range template.Exercises {
		baseline = append(baseline, domain.SessionExercise{
			SessionID:    sessionID,
			ExerciseID:   planned.ExerciseID,
			ExerciseName: planned.ExerciseName,
			Sets:         planned.Sets,
			Reps:         planned.Reps,
			Weight:       planned.Weight,
			Speed:        planned.Speed,
			Duration:     planned.Duration,
		})
	}

	session := training.NewTemplateSession(customerID, templateID, sessionID, baseline)

	s.mu.Lock()
	s.active[customerID] = session
	s.mu.Unlock()

	return &SessionState{
		SessionID: sessionID,
		RoutineID: templateID,
		Exercises: baseline,
	}, nil
}

// CurrentState reconciles any pending edits and returns the displayed list.
func (s *trainingService) CurrentState(customerID primitive.ObjectID) (*SessionState, error) {
	session, err := s.session(customerID)
	if err != nil {
		return nil, err
	}
	return &SessionState{
		SessionID: session.SessionID,
		RoutineID: session.RoutineID,
		Exercises: session.Reconcile(),
	}, nil
}

// PublishEdit puts an edited record into the shared edit store.
func (s *trainingService) PublishEdit(customerID primitive.ObjectID, exercise domain.SessionExercise) error {
	session, err := s.session(customerID)
	if err != nil {
		return err
	}
	session.Edits().Publish(exercise)
	return nil
}

// HandBack writes an edited record into the single-slot hand-back channel,
// the fallback path when the edit store notification is not observed
// before the session screen resumes.
func (s *trainingService) HandBack(customerID primitive.ObjectID, exercise domain.SessionExercise) error {
	session, err := s.session(customerID)
	if err != nil {
		return err
	}
	session.Handback().Write(exercise)
	return nil
}

// SetCompleted toggles the in-session checkbox for one exercise.
func (s *trainingService) SetCompleted(customerID, exerciseID primitive.ObjectID, completed bool) error {
	session, err := s.session(customerID)
	if err != nil {
		return err
	}
	if !session.SetCompleted(exerciseID, completed) {
		return ErrExerciseNotInSession
	}
	return nil
}

// FinishSession persists the session's outcome: records checked complete
// or with parameters changed from the baseline are written as one
// CompletedSession document (template-started sessions keep only the
// completed records), then the customer's progress pointer is
// advanced. A persistence failure leaves the session active so the
// customer can retry; a pointer-update failure after a successful write
// is logged and accepted (the pointer is best-effort, the history record
// is the source of truth).
func (s *trainingService) FinishSession(ctx context.Context, customerID primitive.ObjectID) (*domain.CompletedSession, error) {
	session, err := s.session(customerID)
	if err != nil {
		return nil, err
	}

	current := session.Reconcile()
	var eligible []domain.SessionExercise
	if session.FromTemplate() {
		eligible = training.CompletedOnly(current)
	} else {
		eligible = training.Eligible(current, session.Baseline())
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleExercises
	}

	// Edits published after the reconcile pass still win: re-check the
	// store at write time, keeping each record's own completion flag and
	// session ID.
	store := session.Edits()
	for i, record := range eligible {
		if edit, ok := store.Get(record.ExerciseID); ok {
			edit.Completed = record.Completed
			edit.SessionID = record.SessionID
			edit.ExerciseName = record.ExerciseName
			eligible[i] = edit
		}
	}

	completed := &domain.CompletedSession{
		CustomerID:    customerID,
		RoutineID:     session.RoutineID,
		SessionID:     session.SessionID,
		DateFinished:  time.Now().UTC().Format(time.RFC3339),
		ExercisesDone: eligible,
	}

	completedID, err := s.completedSessionRepo.Create(ctx, completed)
	if err != nil {
		log.Printf("ERROR: saving completed session for customer %s: %v", customerID.Hex(), err)
		return nil, ErrSaveSessionFailed
	}
	completed.ID = completedID

	if err := s.progressRepo.SetLastSessionTrained(ctx, customerID, session.SessionID); err != nil {
		// Accepted inconsistency: the completed session exists, the
		// pointer lags. It can be derived from history on next read.
		log.Printf("WARN: completed session %s saved but progress pointer not advanced for customer %s: %v",
			completedID.Hex(), customerID.Hex(), err)
	}

	s.mu.Lock()
	delete(s.active, customerID)
	s.mu.Unlock()

	return completed, nil
}

// CancelSession discards the live session without persisting anything.
func (s *trainingService) CancelSession(customerID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.active[customerID]; !ok {
		return ErrNoActiveSession
	}
	delete(s.active, customerID)
	return nil
}

// === History ===

// GetHistory returns the customer's completed sessions, newest first.
func (s *trainingService) GetHistory(ctx context.Context, customerID primitive.ObjectID) ([]domain.CompletedSession, error) {
	return s.completedSessionRepo.GetByCustomerID(ctx, customerID)
}

// GetCompletedSession returns one history record, verifying ownership.
func (s *trainingService) GetCompletedSession(ctx context.Context, customerID, completedID primitive.ObjectID) (*domain.CompletedSession, error) {
	completed, err := s.completedSessionRepo.GetByID(ctx, completedID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrHistoryNotFound
		}
		return nil, err
	}
	if completed.CustomerID != customerID {
		return nil, ErrHistoryNotOwned
	}
	return completed, nil
}

// GetLastSessionTrained reads the per-customer progress pointer. A
// customer who never finished a session gets a nil ID, not an error.
func (s *trainingService) GetLastSessionTrained(ctx context.Context, customerID primitive.ObjectID) (primitive.ObjectID, error) {
	sessionID, err := s.progressRepo.GetLastSessionTrained(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, nil
		}
		return primitive.NilObjectID, err
	}
	return sessionID, nil
}

// === Helpers ===

func (s *trainingService) session(customerID primitive.ObjectID) (*training.ActiveSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.active[customerID]
	if !ok {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

// resolveExerciseName joins the display name from the catalog. A failed
// lookup is tolerated; the record just renders without a name.
func (s *trainingService) resolveExerciseName(ctx context.Context, exerciseID primitive.ObjectID) string {
	if exerciseID == primitive.NilObjectID {
		return ""
	}
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		log.Printf("WARN: could not resolve exercise name for %s: %v", exerciseID.Hex(), err)
		return ""
	}
	return exercise.Name
}
