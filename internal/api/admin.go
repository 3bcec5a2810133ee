package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawhaven/pawhaven-v2/backend/internal/middleware"
	"github.com/pawhaven/pawhaven-v2/backend/internal/models"
	"github.com/pawhaven/pawhaven-v2/backend/internal/service"
)

const maxImageSize = 10 << 20 // 10 MB

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminHandler covers the shelter staff panel: listing management, status
// changes, application review, and pet photo uploads.
type AdminHandler struct {
	petService   *service.PetService
	imageService *service.ImageService
	authService  *service.AuthService
}

func NewAdminHandler(petService *service.PetService, imageService *service.ImageService, authService *service.AuthService) *AdminHandler {
	return &AdminHandler{
		petService:   petService,
		imageService: imageService,
		authService:  authService,
	}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(h.authService), middleware.AdminMiddleware())
	{
		admin.GET("/pets", h.ListPets)
		admin.POST("/pets", h.CreatePet)
		admin.PATCH("/pets/:id/status", h.SetPetStatus)
		admin.POST("/uploads", h.UploadImage)
		admin.GET("/applications", h.ListApplications)
		admin.PATCH("/applications/:id/status", h.SetApplicationStatus)
	}
}

func (h *AdminHandler) ListPets(c *gin.Context) {
	pets, err := h.petService.ListAllPets(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pets": pets})
}

func (h *AdminHandler) CreatePet(c *gin.Context) {
	var pet models.Pet
	if err := c.ShouldBindJSON(&pet); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if pet.Name == "" || pet.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and category are required"})
		return
	}

	created, err := h.petService.CreatePet(c.Request.Context(), &pet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pet"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *AdminHandler) SetPetStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pet ID"})
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.petService.SetPetStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrPetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Pet not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"pet_id": id, "status": req.Status})
}

// UploadImage stores a pet photo and returns its public URL. The image is
// sent as multipart form data under the "image" field.
func (h *AdminHandler) UploadImage(c *gin.Context) {
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}

	url, err := h.imageService.UploadPetImage(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("[AdminHandler] Image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}

func (h *AdminHandler) ListApplications(c *gin.Context) {
	apps, err := h.petService.ListAllApplications(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch applications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *AdminHandler) SetApplicationStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.petService.SetApplicationStatus(c.Request.Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"application_id": id, "status": req.Status})
}
