package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawhaven/pawhaven-v2/backend/internal/middleware"
	"github.com/pawhaven/pawhaven-v2/backend/internal/service"
)

type StartConversationRequest struct {
	PetID       uuid.UUID `json:"pet_id" binding:"required"`
	ShelterName string    `json:"shelter_name" binding:"required"`
	ShelterLogo string    `json:"shelter_logo"`
}

type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// MessageHandler serves the shelter messaging screens.
type MessageHandler struct {
	messageService *service.MessageService
	petService     *service.PetService
	authService    *service.AuthService
}

func NewMessageHandler(messageService *service.MessageService, petService *service.PetService, authService *service.AuthService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		petService:     petService,
		authService:    authService,
	}
}

func (h *MessageHandler) RegisterRoutes(router *gin.RouterGroup) {
	conversations := router.Group("/conversations")
	conversations.Use(middleware.AuthMiddleware(h.authService))
	{
		conversations.GET("", h.ListConversations)
		conversations.POST("", h.StartConversation)
		conversations.GET("/:id/messages", h.ListMessages)
		conversations.POST("/:id/messages", h.SendMessage)
	}
}

func (h *MessageHandler) ListConversations(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	conversations, err := h.messageService.ListConversations(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

func (h *MessageHandler) StartConversation(c *gin.Context) {
	var req StartConversationRequest
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

	conversation, err := h.messageService.StartConversation(c.Request.Context(), userID, pet, req.ShelterName, req.ShelterLogo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start conversation"})
		return
	}

	c.JSON(http.StatusCreated, conversation)
}

// ListMessages returns a conversation's messages and clears its unread flag.
func (h *MessageHandler) ListMessages(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	messages, err := h.messageService.ListMessages(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	if err := h.messageService.MarkRead(c.Request.Context(), id, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark conversation read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *MessageHandler) SendMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)

	var userBio string
	if profile, err := h.petService.GetProfile(c.Request.Context(), userID); err == nil && profile != nil {
		userBio = profile.Bio
	}

	userMsg, shelterMsg, err := h.messageService.SendMessage(c.Request.Context(), id, userID, req.Body, userBio)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": userMsg,
		"reply":   shelterMsg,
	})
}
