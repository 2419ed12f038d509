package service

import (
	"context"
	"errors"
	"testing"

	"fitvalle/coaching-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCatalogRepo struct {
	fakeExerciseRepo
	all        []domain.Exercise
	types      []domain.ExerciseType
	muscles    []domain.TargetMuscle
	lookupsErr error
}

func (f *fakeCatalogRepo) GetAll(_ context.Context) ([]domain.Exercise, error) {
	return f.all, nil
}

func (f *fakeCatalogRepo) GetAllTypes(_ context.Context) ([]domain.ExerciseType, error) {
	if f.lookupsErr != nil {
		return nil, f.lookupsErr
	}
	return f.types, nil
}

func (f *fakeCatalogRepo) GetAllMuscles(_ context.Context) ([]domain.TargetMuscle, error) {
	if f.lookupsErr != nil {
		return nil, f.lookupsErr
	}
	return f.muscles, nil
}

func TestGetCatalog_JoinsTypeAndMuscleNames(t *testing.T) {
	typeID := primitive.NewObjectID()
	muscleID := primitive.NewObjectID()
	repo := &fakeCatalogRepo{
		all: []domain.Exercise{
			{ID: primitive.NewObjectID(), Name: "Bench Press", TypeID: typeID, MuscleID: muscleID},
			{ID: primitive.NewObjectID(), Name: "Plank"},
		},
		types:   []domain.ExerciseType{{ID: typeID, Name: "Strength"}},
		muscles: []domain.TargetMuscle{{ID: muscleID, Name: "Chest"}},
	}
	svc := NewExerciseService(repo)

	catalog, err := svc.GetCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, "Strength", catalog[0].TypeName)
	assert.Equal(t, "Chest", catalog[0].MuscleName)
	assert.Empty(t, catalog[1].TypeName)
}

func TestGetCatalog_LookupFailureDegradesToBareEntries(t *testing.T) {
	repo := &fakeCatalogRepo{
		all:        []domain.Exercise{{ID: primitive.NewObjectID(), Name: "Bench Press", TypeID: primitive.NewObjectID()}},
		lookupsErr: errors.New("unavailable"),
	}
	svc := NewExerciseService(repo)

	catalog, err := svc.GetCatalog(context.Background())
	require.NoError(t, err, "name joins are best-effort")
	require.Len(t, catalog, 1)
	assert.Empty(t, catalog[0].TypeName)
}

func TestGetExercise_NotFound(t *testing.T) {
	svc := NewExerciseService(&fakeCatalogRepo{})

	_, err := svc.GetExercise(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestCreateExercise_RequiresName(t *testing.T) {
	svc := NewExerciseService(&fakeCatalogRepo{})

	_, err := svc.CreateExercise(context.Background(), domain.Exercise{})
	assert.Error(t, err)

	exercise, err := svc.CreateExercise(context.Background(), domain.Exercise{Name: "Deadlift"})
	require.NoError(t, err)
	assert.NotEqual(t, primitive.NilObjectID, exercise.ID)
}
