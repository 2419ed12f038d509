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
	ErrTemplateNotFound     = errors.New("template not found")
	ErrTemplateNotOwned     = errors.New("template does not belong to this customer")
	ErrTemplateNameRequired = errors.New("template name is required")
	ErrTemplateNoExercise   = errors.New("template needs at least one exercise")
)

// TemplateExerciseInput carries one planned exercise when authoring a
// template.
type TemplateExerciseInput struct {
	ExerciseID primitive.ObjectID
	Sets       int
	Reps       int
	Weight     int
	Speed      int
	Duration   int
}

type TemplateService interface {
	CreateTemplate(ctx context.Context, ownerID primitive.ObjectID, name string, exercises []TemplateExerciseInput) (*domain.Template, error)
	GetMyTemplates(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Template, error)
	GetTemplate(ctx context.Context, ownerID, templateID primitive.ObjectID) (*domain.Template, error)
	DeleteTemplate(ctx context.Context, ownerID, templateID primitive.ObjectID) error
}

// templateService implements the TemplateService interface.
type templateService struct {
	templateRepo repository.TemplateRepository
	exerciseRepo repository.ExerciseRepository
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(templateRepo repository.TemplateRepository, exerciseRepo repository.ExerciseRepository) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		exerciseRepo: exerciseRepo,
	}
}

// CreateTemplate saves a routine the customer authored for themselves.
// Display names are resolved from the catalog at save time so template
// lists render without a join; a failed lookup leaves the name empty.
func (s *templateService) CreateTemplate(ctx context.Context, ownerID primitive.ObjectID, name string, exercises []TemplateExerciseInput) (*domain.Template, error) {
	if name == "" {
		return nil, ErrTemplateNameRequired
	}
	if len(exercises) == 0 {
		return nil, ErrTemplateNoExercise
	}

	template := &domain.Template{
		OwnerID:   ownerID,
		Name:      name,
		Exercises: make([]domain.TemplateExercise, 0, len(exercises)),
	}
	for _, input := range exercises {
		template.Exercises = append(template.Exercises, domain.TemplateExercise{
			ExerciseID:   input.ExerciseID,
			ExerciseName: s.exerciseName(ctx, input.ExerciseID),
			Sets:         input.Sets,
			Reps:         input.Reps,
			Weight:       input.Weight,
			Speed:        input.Speed,
			Duration:     input.Duration,
		})
	}

	templateID, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		return nil, err
	}
	template.ID = templateID
	return template, nil
}

// GetMyTemplates lists the customer's own templates, newest first.
func (s *templateService) GetMyTemplates(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Template, error) {
	return s.templateRepo.GetByOwnerID(ctx, ownerID)
}

// GetTemplate returns one template, verifying ownership.
func (s *templateService) GetTemplate(ctx context.Context, ownerID, templateID primitive.ObjectID) (*domain.Template, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.OwnerID != ownerID {
		return nil, ErrTemplateNotOwned
	}
	return template, nil
}

// DeleteTemplate removes one of the customer's own templates.
func (s *templateService) DeleteTemplate(ctx context.Context, ownerID, templateID primitive.ObjectID) error {
	if _, err := s.GetTemplate(ctx, ownerID, templateID); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, templateID)
}

func (s *templateService) exerciseName(ctx context.Context, exerciseID primitive.ObjectID) string {
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
