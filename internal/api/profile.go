package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawhaven/pawhaven-v2/backend/internal/middleware"
	"github.com/pawhaven/pawhaven-v2/backend/internal/service"
)

type UpdateProfileRequest struct {
	Name          *string `json:"name"`
	Bio           *string `json:"bio"`
	HomeType      *string `json:"home_type"`
	HasGarden     *bool   `json:"has_garden"`
	ActivityLevel *string `json:"activity_level"`
	HasChildren   *bool   `json:"has_children"`
	ExistingPets  *string `json:"existing_pets"`
}

// ProfileHandler serves the signed-in user's adopter profile.
type ProfileHandler struct {
	petService  *service.PetService
	authService *service.AuthService
}

func NewProfileHandler(petService *service.PetService, authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{petService: petService, authService: authService}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(h.authService))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	profile, err := h.petService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.HomeType != nil {
		fields["home_type"] = *req.HomeType
	}
	if req.HasGarden != nil {
		fields["has_garden"] = *req.HasGarden
	}
	if req.ActivityLevel != nil {
		fields["activity_level"] = *req.ActivityLevel
	}
	if req.HasChildren != nil {
		fields["has_children"] = *req.HasChildren
	}
	if req.ExistingPets != nil {
		fields["existing_pets"] = *req.ExistingPets
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	if err := h.petService.UpdateProfile(c.Request.Context(), userID, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	profile, err := h.petService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
