package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawhaven/pawhaven-v2/backend/internal/discovery"
	"github.com/pawhaven/pawhaven-v2/backend/internal/middleware"
	"github.com/pawhaven/pawhaven-v2/backend/internal/service"
)

// PetHandler serves the public pet catalog and per-user favorites.
type PetHandler struct {
	petService  *service.PetService
	authService *service.AuthService
}

func NewPetHandler(petService *service.PetService, authService *service.AuthService) *PetHandler {
	return &PetHandler{petService: petService, authService: authService}
}

func (h *PetHandler) RegisterRoutes(router *gin.RouterGroup) {
	pets := router.Group("/pets")
	{
		pets.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListPets)
		pets.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetPet)
		pets.PUT("/:id/favorite", middleware.AuthMiddleware(h.authService), h.Favorite)
		pets.DELETE("/:id/favorite", middleware.AuthMiddleware(h.authService), h.Unfavorite)
	}
}

// ListPets returns available pets, filtered by the discovery query params:
// category, q (name or breed substring), gender and age (comma separated),
// and match_order (pet IDs in AI rank order, ranked pets sorted first).
func (h *PetHandler) ListPets(c *gin.Context) {
	pets, err := h.petService.ListPets(c.Request.Context(), viewerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pets"})
		return
	}

	filters := discovery.Filters{
		Category: c.Query("category"),
		Search:   c.Query("q"),
		Genders:  splitParam(c.Query("gender")),
		Ages:     splitParam(c.Query("age")),
	}
	matchOrder := splitParam(c.Query("match_order"))

	c.JSON(http.StatusOK, gin.H{
		"pets": discovery.SelectPets(pets, filters, matchOrder),
	})
}

func (h *PetHandler) GetPet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pet ID"})
		return
	}

	pet, err := h.petService.GetPet(c.Request.Context(), id, viewerID(c))
	if err != nil {
		if errors.Is(err, service.ErrPetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pet"})
		return
	}

	c.JSON(http.StatusOK, pet)
}

func (h *PetHandler) Favorite(c *gin.Context) {
	h.setFavorite(c, true)
}

func (h *PetHandler) Unfavorite(c *gin.Context) {
	h.setFavorite(c, false)
}

func (h *PetHandler) setFavorite(c *gin.Context, desired bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pet ID"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	if err := h.petService.SetFavorite(c.Request.Context(), id, userID, desired); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pet_id": id, "is_favorite": desired})
}

// viewerID returns the authenticated user's ID, or nil for anonymous requests.
func viewerID(c *gin.Context) *uuid.UUID {
	v, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
