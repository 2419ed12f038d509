package repository

import (
	"context"

	"fitvalle/coaching-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetAllCoaches(ctx context.Context) ([]domain.User, error)
}

// CustomerRepository stores customer onboarding profiles and coaching requests.
type CustomerRepository interface {
	SaveProfile(ctx context.Context, customer *domain.Customer) error
	GetProfile(ctx context.Context, customerID primitive.ObjectID) (*domain.Customer, error)
	SetAvatarKey(ctx context.Context, customerID primitive.ObjectID, objectKey string) error
	CreateRequest(ctx context.Context, request *domain.Request) (primitive.ObjectID, error)
	GetRequestsByCustomerID(ctx context.Context, customerID primitive.ObjectID) ([]domain.Request, error)
}

// ExerciseRepository defines the interface for the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetAll(ctx context.Context) ([]domain.Exercise, error)
	GetAllTypes(ctx context.Context) ([]domain.ExerciseType, error)
	GetAllMuscles(ctx context.Context) ([]domain.TargetMuscle, error)
}

// RoutineRepository defines the interface for coach-assigned routines.
type RoutineRepository interface {
	Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Routine, error)
	GetByCustomerID(ctx context.Context, customerID primitive.ObjectID) ([]domain.Routine, error)
}

// TemplateRepository stores customer-authored training templates.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.Template) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Template, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Template, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SessionExerciseRepository reads the coach-assigned baseline parameters
// for a session's exercises.
type SessionExerciseRepository interface {
	GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) ([]domain.SessionExercise, error)
	ReplaceForSession(ctx context.Context, sessionID primitive.ObjectID, exercises []domain.SessionExercise) error
}

// CompletedSessionRepository persists finished-session records.
type CompletedSessionRepository interface {
	Create(ctx context.Context, session *domain.CompletedSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CompletedSession, error)
	GetByCustomerID(ctx context.Context, customerID primitive.ObjectID) ([]domain.CompletedSession, error)
}

// ProgressRepository tracks the per-customer "last session trained" pointer.
type ProgressRepository interface {
	SetLastSessionTrained(ctx context.Context, customerID, sessionID primitive.ObjectID) error
	GetLastSessionTrained(ctx context.Context, customerID primitive.ObjectID) (primitive.ObjectID, error)
}
