package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitvalle/coaching-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TemplateHandler holds the template service dependency.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// --- Request Structs ---

type TemplateExerciseRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	Sets       int    `json:"sets" binding:"min=0"`
	Reps       int    `json:"reps" binding:"min=0"`
	Weight     int    `json:"weight" binding:"min=0"`
	Speed      int    `json:"speed" binding:"min=0"`
	Duration   int    `json:"duration" binding:"min=0"`
}

type CreateTemplateRequest struct {
	Name      string                    `json:"name" binding:"required"`
	Exercises []TemplateExerciseRequest `json:"exercises" binding:"required,min=1,dive"`
}

// --- Handler Methods ---

// CreateTemplate godoc
// @Summary Create a self-authored training template
// @Tags Templates
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param template body CreateTemplateRequest true "Template name and planned exercises"
// @Success 201 {object} domain.Template
// @Failure 400 {object} gin.H "Invalid input"
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercises := make([]service.TemplateExerciseInput, 0, len(req.Exercises))
	for _, input := range req.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(input.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format")
			return
		}
		exercises = append(exercises, service.TemplateExerciseInput{
			ExerciseID: exerciseID,
			Sets:       input.Sets,
			Reps:       input.Reps,
			Weight:     input.Weight,
			Speed:      input.Speed,
			Duration:   input.Duration,
		})
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), ownerID, req.Name, exercises)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNameRequired) || errors.Is(err, service.ErrTemplateNoExercise) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Could not create template")
		return
	}
	c.JSON(http.StatusCreated, template)
}

// GetMyTemplates godoc
// @Summary List the authenticated customer's templates
// @Tags Templates
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Template
// @Router /templates [get]
func (h *TemplateHandler) GetMyTemplates(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	templates, err := h.templateService.GetMyTemplates(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplate godoc
// @Summary Get one of the authenticated customer's templates
// @Tags Templates
// @Security BearerAuth
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} domain.Template
// @Failure 403 {object} gin.H "Template belongs to another customer"
// @Failure 404 {object} gin.H "Template not found"
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	template, err := h.templateService.GetTemplate(c.Request.Context(), ownerID, templateID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTemplateNotOwned):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not get template")
		}
		return
	}
	c.JSON(http.StatusOK, template)
}

// DeleteTemplate godoc
// @Summary Delete one of the authenticated customer's templates
// @Tags Templates
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 204 "Template deleted"
// @Failure 403 {object} gin.H "Template belongs to another customer"
// @Failure 404 {object} gin.H "Template not found"
// @Router /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	templateID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), ownerID, templateID); err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrTemplateNotOwned):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not delete template")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
