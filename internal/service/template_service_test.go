package service

import (
	"context"
	"testing"

	"fitvalle/coaching-api/internal/domain"
	"fitvalle/coaching-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTemplateRepo struct {
	templates map[primitive.ObjectID]domain.Template
}

func (f *fakeTemplateRepo) Create(_ context.Context, template *domain.Template) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	template.ID = id
	if f.templates == nil {
		f.templates = map[primitive.ObjectID]domain.Template{}
	}
	f.templates[id] = *template
	return id, nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Template, error) {
	if tpl, ok := f.templates[id]; ok {
		return &tpl, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTemplateRepo) GetByOwnerID(_ context.Context, ownerID primitive.ObjectID) ([]domain.Template, error) {
	var out []domain.Template
	for _, tpl := range f.templates {
		if tpl.OwnerID == ownerID {
			out = append(out, tpl)
		}
	}
	return out, nil
}

func (f *fakeTemplateRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.templates[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.templates, id)
	return nil
}

func newTemplateFixture() (TemplateService, *fakeTemplateRepo, *fakeExerciseRepo) {
	templateRepo := &fakeTemplateRepo{}
	exerciseRepo := &fakeExerciseRepo{byID: map[primitive.ObjectID]domain.Exercise{}}
	return NewTemplateService(templateRepo, exerciseRepo), templateRepo, exerciseRepo
}

func TestCreateTemplate_ResolvesExerciseNames(t *testing.T) {
	svc, repo, exerciseRepo := newTemplateFixture()
	ownerID := primitive.NewObjectID()
	benchPressID := primitive.NewObjectID()
	exerciseRepo.byID[benchPressID] = domain.Exercise{ID: benchPressID, Name: "Bench Press"}

	template, err := svc.CreateTemplate(context.Background(), ownerID, "Push Day", []TemplateExerciseInput{
		{ExerciseID: benchPressID, Sets: 3, Reps: 10, Weight: 50},
	})
	require.NoError(t, err)
	assert.False(t, template.ID.IsZero())
	assert.Equal(t, ownerID, template.OwnerID)
	require.Len(t, template.Exercises, 1)
	assert.Equal(t, "Bench Press", template.Exercises[0].ExerciseName)
	assert.Equal(t, 3, template.Exercises[0].Sets)

	stored, ok := repo.templates[template.ID]
	require.True(t, ok)
	assert.Equal(t, "Push Day", stored.Name)
}

func TestCreateTemplate_UnknownExerciseKeepsEmptyName(t *testing.T) {
	svc, _, _ := newTemplateFixture()
	ownerID := primitive.NewObjectID()

	template, err := svc.CreateTemplate(context.Background(), ownerID, "Leg Day", []TemplateExerciseInput{
		{ExerciseID: primitive.NewObjectID(), Sets: 4, Reps: 8},
	})
	require.NoError(t, err)
	assert.Empty(t, template.Exercises[0].ExerciseName)
}

func TestCreateTemplate_RequiresNameAndExercises(t *testing.T) {
	svc, _, _ := newTemplateFixture()
	ownerID := primitive.NewObjectID()

	_, err := svc.CreateTemplate(context.Background(), ownerID, "", []TemplateExerciseInput{{ExerciseID: primitive.NewObjectID()}})
	assert.ErrorIs(t, err, ErrTemplateNameRequired)

	_, err = svc.CreateTemplate(context.Background(), ownerID, "Push Day", nil)
	assert.ErrorIs(t, err, ErrTemplateNoExercise)
}

func TestGetTemplate_VerifiesOwnership(t *testing.T) {
	svc, _, _ := newTemplateFixture()
	ownerID := primitive.NewObjectID()

	template, err := svc.CreateTemplate(context.Background(), ownerID, "Push Day", []TemplateExerciseInput{
		{ExerciseID: primitive.NewObjectID(), Sets: 3},
	})
	require.NoError(t, err)

	got, err := svc.GetTemplate(context.Background(), ownerID, template.ID)
	require.NoError(t, err)
	assert.Equal(t, template.ID, got.ID)

	_, err = svc.GetTemplate(context.Background(), primitive.NewObjectID(), template.ID)
	assert.ErrorIs(t, err, ErrTemplateNotOwned)

	_, err = svc.GetTemplate(context.Background(), ownerID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestGetMyTemplates_ReturnsOnlyOwn(t *testing.T) {
	svc, _, _ := newTemplateFixture()
	ownerID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	_, err := svc.CreateTemplate(context.Background(), ownerID, "Push Day", []TemplateExerciseInput{{ExerciseID: primitive.NewObjectID()}})
	require.NoError(t, err)
	_, err = svc.CreateTemplate(context.Background(), otherID, "Pull Day", []TemplateExerciseInput{{ExerciseID: primitive.NewObjectID()}})
	require.NoError(t, err)

	templates, err := svc.GetMyTemplates(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "Push Day", templates[0].Name)
}

func TestDeleteTemplate_OwnershipEnforced(t *testing.T) {
	svc, repo, _ := newTemplateFixture()
	ownerID := primitive.NewObjectID()

	template, err := svc.CreateTemplate(context.Background(), ownerID, "Push Day", []TemplateExerciseInput{{ExerciseID: primitive.NewObjectID()}})
	require.NoError(t, err)

	err = svc.DeleteTemplate(context.Background(), primitive.NewObjectID(), template.ID)
	assert.ErrorIs(t, err, ErrTemplateNotOwned)
	assert.Contains(t, repo.templates, template.ID)

	err = svc.DeleteTemplate(context.Background(), ownerID, template.ID)
	require.NoError(t, err)
	assert.NotContains(t, repo.templates, template.ID)
}
