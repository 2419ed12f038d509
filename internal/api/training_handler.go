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

// TrainingHandler holds the training service dependency.
type TrainingHandler struct {
	trainingService service.TrainingService
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(trainingService service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

// --- Request Structs ---

type StartSessionRequest struct {
	RoutineID string `json:"routineId" binding:"required"`
}

type ExerciseEditRequest struct {
	Sets     int `json:"sets" binding:"min=0"`
	Reps     int `json:"reps" binding:"min=0"`
	Weight   int `json:"weight" binding:"min=0"`
	Speed    int `json:"speed" binding:"min=0"`
	Duration int `json:"duration" binding:"min=0"`
}

type HandBackRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	SessionID  string `json:"sessionId"`
	Sets       int    `json:"sets" binding:"min=0"`
	Reps       int    `json:"reps" binding:"min=0"`
	Weight     int    `json:"weight" binding:"min=0"`
	Speed      int    `json:"speed" binding:"min=0"`
	Duration   int    `json:"duration" binding:"min=0"`
}

type SetCompletedRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// --- Handler Methods ---

// StartSession godoc
// @Summary Start a training session, replacing any session in progress
// @Tags Training
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param session body StartSessionRequest true "Routine the session belongs to"
// @Success 200 {object} service.SessionState
// @Failure 400 {object} gin.H "Invalid input"
// @Router /training/sessions/{sessionId}/start [post]
func (h *TrainingHandler) StartSession(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	routineID, err := primitive.ObjectIDFromHex(req.RoutineID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid routine ID format")
		return
	}

	state, err := h.trainingService.StartSession(c.Request.Context(), customerID, sessionID, routineID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not start session")
		return
	}
	c.JSON(http.StatusOK, state)
}

// StartTemplateSession godoc
// @Summary Start a training session from one of the customer's own templates
// @Tags Training
// @Security BearerAuth
// @Produce json
// @Param templateId path string true "Template ID"
// @Success 200 {object} service.SessionState
// @Failure 403 {object} gin.H "Template belongs to another customer"
// @Failure 404 {object} gin.H "Template not found"
// @Router /training/templates/{templateId}/start [post]
func (h *TrainingHandler) StartTemplateSession(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("templateId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	state, err := h.trainingService.StartTemplateSession(c.Request.Context(), customerID, templateID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTemplateNotOwned):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not start session")
		}
		return
	}
	c.JSON(http.StatusOK, state)
}

// CurrentState godoc
// @Summary Get the reconciled state of the active session
// @Tags Training
// @Security BearerAuth
// @Produce json
// @Success 200 {object} service.SessionState
// @Failure 404 {object} gin.H "No active session"
// @Router /training/session [get]
func (h *TrainingHandler) CurrentState(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	state, err := h.trainingService.CurrentState(customerID)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Could not read session state")
		return
	}
	c.JSON(http.StatusOK, state)
}

// PublishEdit godoc
// @Summary Publish edited parameters for one exercise in the active session
// @Tags Training
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param exerciseId path string true "Exercise ID"
// @Param edit body ExerciseEditRequest true "Edited parameters"
// @Success 204 "Edit accepted"
// @Failure 404 {object} gin.H "No active session"
// @Router /training/session/exercises/{exerciseId} [put]
func (h *TrainingHandler) PublishEdit(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	var req ExerciseEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	edit := domain.SessionExercise{
		ExerciseID: exerciseID,
		Sets:       req.Sets,
		Reps:       req.Reps,
		Weight:     req.Weight,
		Speed:      req.Speed,
		Duration:   req.Duration,
	}
	if err := h.trainingService.PublishEdit(customerID, edit); err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Could not publish edit")
		return
	}
	c.Status(http.StatusNoContent)
}

// HandBack godoc
// @Summary Hand an edited record back through the single-slot channel
// @Tags Training
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param record body HandBackRequest true "Edited record"
// @Success 204 "Record accepted"
// @Failure 404 {object} gin.H "No active session"
// @Router /training/session/handback [put]
func (h *TrainingHandler) HandBack(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req HandBackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	record := domain.SessionExercise{
		ExerciseID: exerciseID,
		Sets:       req.Sets,
		Reps:       req.Reps,
		Weight:     req.Weight,
		Speed:      req.Speed,
		Duration:   req.Duration,
	}
	if req.SessionID != "" {
		sessionID, err := primitive.ObjectIDFromHex(req.SessionID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
			return
		}
		record.SessionID = sessionID
	}

	if err := h.trainingService.HandBack(customerID, record); err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Could not hand back record")
		return
	}
	c.Status(http.StatusNoContent)
}

// SetCompleted godoc
// @Summary Toggle the completion checkbox for one exercise
// @Tags Training
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param exerciseId path string true "Exercise ID"
// @Param completed body SetCompletedRequest true "New checkbox state"
// @Success 204 "Checkbox updated"
// @Failure 404 {object} gin.H "No active session or exercise not in session"
// @Router /training/session/exercises/{exerciseId}/completed [post]
func (h *TrainingHandler) SetCompleted(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
		return
	}

	var req SetCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.trainingService.SetCompleted(customerID, exerciseID, *req.Completed); err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveSession), errors.Is(err, service.ErrExerciseNotInSession):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not update checkbox")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// FinishSession godoc
// @Summary Finish the active session and persist its outcome
// @Tags Training
// @Security BearerAuth
// @Produce json
// @Success 201 {object} domain.CompletedSession
// @Failure 404 {object} gin.H "No active session"
// @Failure 422 {object} gin.H "Nothing completed or changed"
// @Router /training/session/finish [post]
func (h *TrainingHandler) FinishSession(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	completed, err := h.trainingService.FinishSession(c.Request.Context(), customerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveSession):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNoEligibleExercises):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrSaveSessionFailed):
			abortWithError(c, http.StatusInternalServerError, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not finish session")
		}
		return
	}
	c.JSON(http.StatusCreated, completed)
}

// CancelSession godoc
// @Summary Discard the active session without saving
// @Tags Training
// @Security BearerAuth
// @Produce json
// @Success 204 "Session discarded"
// @Failure 404 {object} gin.H "No active session"
// @Router /training/session [delete]
func (h *TrainingHandler) CancelSession(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	if err := h.trainingService.CancelSession(customerID); err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Could not cancel session")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetHistory godoc
// @Summary List the customer's completed sessions, newest first
// @Tags Training
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.CompletedSession
// @Router /history [get]
func (h *TrainingHandler) GetHistory(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	history, err := h.trainingService.GetHistory(c.Request.Context(), customerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load history")
		return
	}
	c.JSON(http.StatusOK, history)
}

// GetCompletedSession godoc
// @Summary Get one completed session record
// @Tags Training
// @Security BearerAuth
// @Produce json
// @Param id path string true "Completed session ID"
// @Success 200 {object} domain.CompletedSession
// @Failure 403 {object} gin.H "Record belongs to another customer"
// @Failure 404 {object} gin.H "Not found"
// @Router /history/{id} [get]
func (h *TrainingHandler) GetCompletedSession(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	completedID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid record ID format")
		return
	}

	completed, err := h.trainingService.GetCompletedSession(c.Request.Context(), customerID, completedID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHistoryNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrHistoryNotOwned):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not load record")
		}
		return
	}
	c.JSON(http.StatusOK, completed)
}

// GetProgress godoc
// @Summary Get the ID of the last session the customer finished
// @Tags Training
// @Security BearerAuth
// @Produce json
// @Success 200 {object} gin.H "lastSessionTrained, empty string if none"
// @Router /progress [get]
func (h *TrainingHandler) GetProgress(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	sessionID, err := h.trainingService.GetLastSessionTrained(c.Request.Context(), customerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load progress")
		return
	}

	last := ""
	if sessionID != primitive.NilObjectID {
		last = sessionID.Hex()
	}
	c.JSON(http.StatusOK, gin.H{"lastSessionTrained": last})
}
