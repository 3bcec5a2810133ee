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

type CompatibilityRequest struct {
	PetID uuid.UUID `json:"pet_id" binding:"required"`
}

// InsightHandler serves the AI features: compatibility scoring between the
// signed-in user and a pet, and smart match ranking across the catalog. Both
// endpoints always answer; the insight service falls back to canned results
// when the model is unreachable.
type InsightHandler struct {
	insightService *service.InsightService
	petService     *service.PetService
	authService    *service.AuthService
	rateLimiter    *middleware.RateLimiter
}

func NewInsightHandler(insightService *service.InsightService, petService *service.PetService, authService *service.AuthService, rateLimiter *middleware.RateLimiter) *InsightHandler {
	return &InsightHandler{
		insightService: insightService,
		petService:     petService,
		authService:    authService,
		rateLimiter:    rateLimiter,
	}
}

func (h *InsightHandler) RegisterRoutes(router *gin.RouterGroup) {
	insights := router.Group("/insights")
	insights.Use(middleware.AuthMiddleware(h.authService))
	if h.rateLimiter != nil {
		insights.Use(h.rateLimiter.RateLimitMiddleware())
	}
	{
		insights.POST("/compatibility", h.Compatibility)
		insights.GET("/matches", h.Matches)
	}
}

func (h *InsightHandler) Compatibility(c *gin.Context) {
	var req CompatibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	pet, err := h.petService.GetPet(c.Request.Context(), req.PetID, &userID)
	if err != nil {
		if errors.Is(err, service.ErrPetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pet"})
		return
	}

	profile, err := h.petService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	if profile == nil {
		profile = &models.UserProfile{ActivityLevel: models.ActivityModerate}
	}

	c.JSON(http.StatusOK, h.insightService.ScoreCompatibility(c.Request.Context(), pet, profile))
}

func (h *InsightHandler) Matches(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	pets, err := h.petService.ListPets(c.Request.Context(), &userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pets"})
		return
	}

	profile, err := h.petService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}
	if profile == nil {
		profile = &models.UserProfile{ActivityLevel: models.ActivityModerate}
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": h.insightService.RankMatches(c.Request.Context(), pets, profile),
	})
}
