package service

import (
	"context"
	"errors"

	"fitvalle/coaching-api/internal/domain"
	"fitvalle/coaching-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
)

// ExerciseDetails is a catalog entry with its type and muscle names joined.
type ExerciseDetails struct {
	domain.Exercise
	TypeName   string `json:"typeName,omitempty"`
	MuscleName string `json:"muscleName,omitempty"`
}

type ExerciseService interface {
	CreateExercise(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error)
	GetCatalog(ctx context.Context) ([]ExerciseDetails, error)
	GetExercise(ctx context.Context, id primitive.ObjectID) (*ExerciseDetails, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{exerciseRepo: exerciseRepo}
}

// CreateExercise adds a new exercise to the catalog.
func (s *exerciseService) CreateExercise(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error) {
	if exercise.Name == "" {
		return nil, errors.New("exercise name is required")
	}
	id, err := s.exerciseRepo.Create(ctx, &exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = id
	return &exercise, nil
}

// GetCatalog returns every exercise with its type and target muscle names
// resolved, sorted by name. Types or muscles that cannot be resolved leave
// the joined name empty rather than failing the listing.
func (s *exerciseService) GetCatalog(ctx context.Context) ([]ExerciseDetails, error) {
	exercises, err := s.exerciseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	typeNames, muscleNames := s.lookupNames(ctx)

	details := make([]ExerciseDetails, 0, len(exercises))
	for _, ex := range exercises {
		details = append(details, ExerciseDetails{
			Exercise:   ex,
			TypeName:   typeNames[ex.TypeID],
			MuscleName: muscleNames[ex.MuscleID],
		})
	}
	return details, nil
}

// GetExercise returns one catalog entry with joined names.
func (s *exerciseService) GetExercise(ctx context.Context, id primitive.ObjectID) (*ExerciseDetails, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	typeNames, muscleNames := s.lookupNames(ctx)
	return &ExerciseDetails{
		Exercise:   *exercise,
		TypeName:   typeNames[exercise.TypeID],
		MuscleName: muscleNames[exercise.MuscleID],
	}, nil
}

// lookupNames loads the type and muscle name maps. Failures here degrade
// to empty maps; the caller still gets the exercises themselves.
func (s *exerciseService) lookupNames(ctx context.Context) (map[primitive.ObjectID]string, map[primitive.ObjectID]string) {
	typeNames := map[primitive.ObjectID]string{}
	if types, err := s.exerciseRepo.GetAllTypes(ctx); err == nil {
		for _, t := range types {
			typeNames[t.ID] = t.Name
		}
	}
	muscleNames := map[primitive.ObjectID]string{}
	if muscles, err := s.exerciseRepo.GetAllMuscles(ctx); err == nil {
		for _, m := range muscles {
			muscleNames[m.ID] = m.Name
		}
	}
	return typeNames, muscleNames
}
