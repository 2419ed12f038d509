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

// RoutineHandler holds the routine service dependency.
type RoutineHandler struct {
	routineService service.RoutineService
}

// NewRoutineHandler creates a new RoutineHandler.
func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

// --- Request Structs ---

type SessionExerciseInput struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	Sets       int    `json:"sets" binding:"min=0"`
	Reps       int    `json:"reps" binding:"min=0"`
	Weight     int    `json:"weight" binding:"min=0"`
	Speed      int    `json:"speed" binding:"min=0"`
	Duration   int    `json:"duration" binding:"min=0"`
}

type CreateSessionInput struct {
	Name      string                 `json:"name"`
	Exercises []SessionExerciseInput `json:"exercises" binding:"required,min=1,dive"`
}

type CreateRoutineRequest struct {
	CustomerID string               `json:"customerId" binding:"required"`
	Name       string               `json:"name" binding:"required"`
	Sessions   []CreateSessionInput `json:"sessions" binding:"required,min=1,dive"`
}

// --- Handler Methods ---

// GetAssignedRoutines godoc
// @Summary List the routines assigned to the authenticated customer
// @Tags Routines
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Routine
// @Router /routines [get]
func (h *RoutineHandler) GetAssignedRoutines(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	routines, err := h.routineService.GetAssignedRoutines(c.Request.Context(), customerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load routines")
		return
	}
	c.JSON(http.StatusOK, routines)
}

// GetSessionsByRoutine godoc
// @Summary List the sessions of one assigned routine
// @Tags Routines
// @Security BearerAuth
// @Produce json
// @Param id path string true "Routine ID"
// @Success 200 {array} domain.Session
// @Failure 403 {object} gin.H "Routine belongs to another customer"
// @Failure 404 {object} gin.H "Not found"
// @Router /routines/{id}/sessions [get]
func (h *RoutineHandler) GetSessionsByRoutine(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	routineID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid routine ID format")
		return
	}

	sessions, err := h.routineService.GetSessionsByRoutine(c.Request.Context(), customerID, routineID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoutineNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrRoutineNotOwned):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not load sessions")
		}
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// CreateRoutine godoc
// @Summary Create a routine for a customer (coach only)
// @Tags Routines
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param routine body CreateRoutineRequest true "Routine with sessions and exercise parameters"
// @Success 201 {object} domain.Routine
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Customer not found"
// @Router /coach/routines [post]
func (h *RoutineHandler) CreateRoutine(c *gin.Context) {
	coachID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	customerID, err := primitive.ObjectIDFromHex(req.CustomerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	sessions := make([]service.NewSessionInput, len(req.Sessions))
	for i, sessionInput := range req.Sessions {
		exercises := make([]domain.SessionExercise, len(sessionInput.Exercises))
		for j, exerciseInput := range sessionInput.Exercises {
			exerciseID, err := primitive.ObjectIDFromHex(exerciseInput.ExerciseID)
			if err != nil {
				abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid exercise ID format: %s", exerciseInput.ExerciseID))
				return
			}
			exercises[j] = domain.SessionExercise{
				ExerciseID: exerciseID,
				Sets:       exerciseInput.Sets,
				Reps:       exerciseInput.Reps,
				Weight:     exerciseInput.Weight,
				Speed:      exerciseInput.Speed,
				Duration:   exerciseInput.Duration,
			}
		}
		sessions[i] = service.NewSessionInput{Name: sessionInput.Name, Exercises: exercises}
	}

	routine, err := h.routineService.CreateRoutine(c.Request.Context(), coachID, customerID, req.Name, sessions)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotACustomerRole),
			errors.Is(err, service.ErrEmptyRoutine),
			errors.Is(err, service.ErrSessionNoExercise):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not create routine")
		}
		return
	}
	c.JSON(http.StatusCreated, routine)
}
