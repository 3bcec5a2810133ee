package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawhaven/pawhaven-v2/backend/internal/middleware"
	"github.com/pawhaven/pawhaven-v2/backend/internal/models"
	"github.com/pawhaven/pawhaven-v2/backend/internal/service"
)

type SubmitApplicationRequest struct {
	PetID uuid.UUID `json:"pet_id" binding:"required"`

	// Optional snapshot of the pet as the client rendered it. Backfilled
	// from the current pet row when absent.
	PetName  string `json:"pet_name"`
	PetImage string `json:"pet_image"`

	HomeType     string `json:"home_type" binding:"required"`
	LandlordName string `json:"landlord_name"`
	CurrentPets  string `json:"current_pets"`
	Reason       string `json:"reason" binding:"required"`
}

type UpdateApplicationRequest struct {
	HomeType     *string `json:"home_type"`
	LandlordName *string `json:"landlord_name"`
	CurrentPets  *string `json:"current_pets"`
	Reason       *string `json:"reason"`
}

// ApplicationHandler manages a user's own adoption applications.
type ApplicationHandler struct {
	petService  *service.PetService
	authService *service.AuthService
}

func NewApplicationHandler(petService *service.PetService, authService *service.AuthService) *ApplicationHandler {
	return &ApplicationHandler{petService: petService, authService: authService}
}

func (h *ApplicationHandler) RegisterRoutes(router *gin.RouterGroup) {
	apps := router.Group("/applications")
	apps.Use(middleware.AuthMiddleware(h.authService))
	{
		apps.GET("", h.ListApplications)
		apps.POST("", h.SubmitApplication)
		apps.PUT("/:id", h.UpdateApplication)
	}
}

func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	apps, err := h.petService.ListMyApplications(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

// SubmitApplication creates an application for the given pet. The pet name
// and image are snapshotted server-side from the current pet row.
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	pet, err := h.petService.GetPet(c.Request.Context(), req.PetID, nil)
	if err != nil {
		if errors.Is(err, service.ErrPetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pet"})
		return
	}

	petName := req.PetName
	if petName == "" {
		petName = pet.Name
	}
	petImage := req.PetImage
	if petImage == "" {
		petImage = pet.ImageURL
	}

	app := models.AdoptionApplication{
		PetID:        pet.ID,
		PetName:      petName,
		PetImage:     petImage,
		HomeType:     req.HomeType,
		LandlordName: req.LandlordName,
		CurrentPets:  req.CurrentPets,
		Reason:       req.Reason,
	}

	created, err := h.petService.CreateApplication(c.Request.Context(), userID, &app)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	var req UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if req.HomeType != nil {
		fields["home_type"] = *req.HomeType
	}
	if req.LandlordName != nil {
		fields["landlord_name"] = *req.LandlordName
	}
	if req.CurrentPets != nil {
		fields["current_pets"] = *req.CurrentPets
	}
	if req.Reason != nil {
		fields["reason"] = *req.Reason
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	if err := h.petService.UpdateApplication(c.Request.Context(), id, userID, fields); err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application updated"})
}
