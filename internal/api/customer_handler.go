package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitvalle/coaching-api/internal/domain"
	"fitvalle/coaching-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomerHandler holds the customer service dependency.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// --- Request Structs ---

type SaveProfileRequest struct {
	Weight     string `json:"weight"`
	Height     string `json:"height"`
	Birthdate  string `json:"birthdate"`
	GoalWeight string `json:"goalWeight"`
}

type SubmitRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

type AvatarUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type AvatarConfirmRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// --- Handler Methods ---

// SaveProfile godoc
// @Summary Save the authenticated customer's onboarding profile
// @Tags Customers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param profile body SaveProfileRequest true "Profile fields"
// @Success 200 {object} domain.Customer
// @Failure 400 {object} gin.H "Invalid input"
// @Router /customers/me/profile [put]
func (h *CustomerHandler) SaveProfile(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	customer := domain.Customer{
		ID:         customerID,
		Weight:     req.Weight,
		Height:     req.Height,
		Birthdate:  req.Birthdate,
		GoalWeight: req.GoalWeight,
	}
	if err := h.customerService.SaveProfile(c.Request.Context(), customer); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not save profile")
		return
	}

	profile, err := h.customerService.GetProfile(c.Request.Context(), customerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load saved profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfile godoc
// @Summary Get the authenticated customer's profile
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Customer
// @Failure 404 {object} gin.H "Profile not found"
// @Router /customers/me/profile [get]
func (h *CustomerHandler) GetProfile(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	profile, err := h.customerService.GetProfile(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Could not load profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SubmitRequest godoc
// @Summary File a coaching request
// @Tags Customers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SubmitRequestRequest true "Training preferences"
// @Success 201 {object} domain.Request
// @Failure 400 {object} gin.H "Invalid input"
// @Router /customers/me/requests [post]
func (h *CustomerHandler) SubmitRequest(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SubmitRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	request, err := h.customerService.SubmitRequest(c.Request.Context(), customerID, req.Description)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not submit request")
		return
	}
	c.JSON(http.StatusCreated, request)
}

// GetRequests godoc
// @Summary List the authenticated customer's coaching requests
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Request
// @Router /customers/me/requests [get]
func (h *CustomerHandler) GetRequests(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	requests, err := h.customerService.GetRequests(c.Request.Context(), customerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not list requests")
		return
	}
	c.JSON(http.StatusOK, requests)
}

// RequestAvatarUploadURL godoc
// @Summary Get a presigned URL for uploading an avatar image
// @Tags Customers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param upload body AvatarUploadURLRequest true "Image content type"
// @Success 200 {object} service.AvatarUploadResponse
// @Failure 400 {object} gin.H "Invalid content type"
// @Router /customers/me/avatar/upload-url [post]
func (h *CustomerHandler) RequestAvatarUploadURL(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AvatarUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	response, err := h.customerService.RequestAvatarUploadURL(c.Request.Context(), customerID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrUploadURLError) {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, response)
}

// ConfirmAvatarUpload godoc
// @Summary Confirm a completed avatar upload
// @Tags Customers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param confirm body AvatarConfirmRequest true "Uploaded object key"
// @Success 204 "Avatar recorded"
// @Failure 400 {object} gin.H "Key does not belong to this customer"
// @Router /customers/me/avatar/confirm [post]
func (h *CustomerHandler) ConfirmAvatarUpload(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AvatarConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.customerService.ConfirmAvatarUpload(c.Request.Context(), customerID, req.ObjectKey); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAvatarDownloadURL godoc
// @Summary Get a temporary URL for viewing the avatar
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Success 200 {object} gin.H "downloadUrl"
// @Failure 404 {object} gin.H "No avatar set"
// @Router /customers/me/avatar [get]
func (h *CustomerHandler) GetAvatarDownloadURL(c *gin.Context) {
	customerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	downloadURL, err := h.customerService.GetAvatarDownloadURL(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, service.ErrAvatarNotSet) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Could not generate download URL")
		return
	}
	c.JSON(http.StatusOK, gin.H{"downloadUrl": downloadURL})
}
