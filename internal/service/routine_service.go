package service

import (
	"context"
	"errors"
	"log"

	"fitvalle/coaching-api/internal/domain"
	"fitvalle/coaching-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrRoutineNotFound   = errors.New("routine not found")
	ErrSessionNotFound   = errors.New("session not found in routine")
	ErrRoutineNotOwned   = errors.New("routine does not belong to this customer")
	ErrCustomerNotFound  = errors.New("customer account not found")
	ErrNotACustomerRole  = errors.New("target user is not a customer")
	ErrEmptyRoutine      = errors.New("routine requires at least one session")
	ErrSessionNoExercise = errors.New("every session requires at least one exercise")
)

// NewSessionInput describes one session of a routine being created,
// together with its coach-assigned exercise parameters.
type NewSessionInput struct {
	Name      string
	Exercises []domain.SessionExercise
}

type RoutineService interface {
	// Customer side
	GetAssignedRoutines(ctx context.Context, customerID primitive.ObjectID) ([]domain.Routine, error)
	GetSessionsByRoutine(ctx context.Context, customerID, routineID primitive.ObjectID) ([]domain.Session, error)

	// Coach side
	CreateRoutine(ctx context.Context, coachID, customerID primitive.ObjectID, name string, sessions []NewSessionInput) (*domain.Routine, error)
}

// routineService implements the RoutineService interface.
type routineService struct {
	routineRepo         repository.RoutineRepository
	sessionExerciseRepo repository.SessionExerciseRepository
	userRepo            repository.UserRepository
}

// NewRoutineService creates a new instance of routineService.
func NewRoutineService(
	routineRepo repository.RoutineRepository,
	sessionExerciseRepo repository.SessionExerciseRepository,
	userRepo repository.UserRepository,
) RoutineService {
	return &routineService{
		routineRepo:         routineRepo,
		sessionExerciseRepo: sessionExerciseRepo,
		userRepo:            userRepo,
	}
}

// GetAssignedRoutines returns the routines a coach assigned to this
// customer, with the coach's display name resolved. A coach lookup
// failure leaves the name empty instead of failing the listing.
func (s *routineService) GetAssignedRoutines(ctx context.Context, customerID primitive.ObjectID) ([]domain.Routine, error) {
	routines, err := s.routineRepo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	coachNames := map[primitive.ObjectID]string{}
	for i := range routines {
		coachID := routines[i].CoachID
		if coachID == primitive.NilObjectID {
			continue
		}
		name, ok := coachNames[coachID]
		if !ok {
			if coach, err := s.userRepo.GetByID(ctx, coachID); err == nil {
				name = coach.Name
			} else {
				log.Printf("WARN: could not resolve coach %s: %v", coachID.Hex(), err)
			}
			coachNames[coachID] = name
		}
		routines[i].CoachName = name
	}
	return routines, nil
}

// GetSessionsByRoutine returns the sessions embedded in one routine,
// verifying the routine belongs to the requesting customer.
func (s *routineService) GetSessionsByRoutine(ctx context.Context, customerID, routineID primitive.ObjectID) ([]domain.Session, error) {
	routine, err := s.routineRepo.GetByID(ctx, routineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	if routine.CustomerID != customerID {
		return nil, ErrRoutineNotOwned
	}
	return routine.Sessions, nil
}

// CreateRoutine creates a routine for a customer together with the
// per-session exercise parameter lists.
func (s *routineService) CreateRoutine(ctx context.Context, coachID, customerID primitive.ObjectID, name string, sessions []NewSessionInput) (*domain.Routine, error) {
	if name == "" {
		return nil, errors.New("routine name is required")
	}
	if len(sessions) == 0 {
		return nil, ErrEmptyRoutine
	}
	for _, session := range sessions {
		if len(session.Exercises) == 0 {
			return nil, ErrSessionNoExercise
		}
	}

	customer, err := s.userRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if !customer.IsCustomer() {
		return nil, ErrNotACustomerRole
	}

	routine := &domain.Routine{
		Name:       name,
		CoachID:    coachID,
		CustomerID: customerID,
		State:      domain.RoutineActive,
		Sessions:   make([]domain.Session, len(sessions)),
	}
	for i, session := range sessions {
		routine.Sessions[i] = domain.Session{Name: session.Name, Sequence: i + 1}
	}

	routineID, err := s.routineRepo.Create(ctx, routine)
	if err != nil {
		return nil, err
	}
	routine.ID = routineID

	// Session IDs exist only after Create; write each session's exercise
	// list under its ID. These writes are independent sub-trees.
	for i, session := range sessions {
		if err := s.sessionExerciseRepo.ReplaceForSession(ctx, routine.Sessions[i].ID, session.Exercises); err != nil {
			return nil, err
		}
	}
	return routine, nil
}
