package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitvalle/coaching-api/internal/domain"
	"fitvalle/coaching-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- Request Structs ---

type CreateExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	TypeID      string `json:"typeId"`
	MuscleID    string `json:"muscleId"`
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Add an exercise to the catalog
// @Tags Exercises
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param exercise body CreateExerciseRequest true "Exercise definition"
// @Success 201 {object} domain.Exercise
// @Failure 400 {object} gin.H "Invalid input"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise := domain.Exercise{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if req.TypeID != "" {
		typeID, err := primitive.ObjectIDFromHex(req.TypeID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid type ID format")
			return
		}
		exercise.TypeID = typeID
	}
	if req.MuscleID != "" {
		muscleID, err := primitive.ObjectIDFromHex(req.MuscleID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid muscle ID format")
			return
		}
		exercise.MuscleID = muscleID
	}

	created, err := h.exerciseService.CreateExercise(c.Request.Context(), exercise)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not create exercise")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetCatalog godoc
// @Summary Browse the exercise catalog
// @Description Returns every exercise with type and muscle names resolved, sorted by name.
// @Tags Exercises
// @Security BearerAuth
// @Produce json
// @Success 200 {array} service.ExerciseDetails
// @Router /exercises [get]
func (h *ExerciseHandler) GetCatalog(c *gin.Context) {
	catalog, err := h.exerciseService.GetCatalog(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load exercise catalog")
		return
	}
	c.JSON(http.StatusOK, catalog)
}

// GetExercise godoc
// @Summary Get one exercise's details
// @Tags Exercises
// @Security BearerAuth
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} service.ExerciseDetails
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not load exercise")
		}
		return
	}
	c.JSON(http.StatusOK, exercise)
}
