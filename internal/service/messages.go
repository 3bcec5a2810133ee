package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawhaven/pawhaven-v2/backend/internal/models"
)

var ErrConversationNotFound = errors.New("conversation not found")

// MessageService manages shelter conversations. Replies are drafted through
// the insight service; its fallback keeps the conversation flowing when the
// model is down.
type MessageService struct {
	db      *gorm.DB
	insight *InsightService
}

func NewMessageService(db *gorm.DB, insight *InsightService) *MessageService {
	return &MessageService{db: db, insight: insight}
}

func (s *MessageService) ListConversations(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

func (s *MessageService) ListMessages(ctx context.Context, conversationID, userID uuid.UUID) ([]models.Message, error) {
	if _, err := s.getOwned(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := s.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// StartConversation opens a thread between the user and the shelter listed
// for a pet, reusing an existing one for the same pet if present.
func (s *MessageService) StartConversation(ctx context.Context, userID uuid.UUID, pet *models.Pet, shelterName, shelterLogo string) (*models.Conversation, error) {
	var existing models.Conversation
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND pet_id = ?", userID, pet.ID).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conversation := models.Conversation{
		ID:          uuid.New(),
		UserID:      userID,
		PetID:       pet.ID,
		PetName:     pet.Name,
		PetBreed:    pet.Breed,
		ShelterName: shelterName,
		ShelterLogo: shelterLogo,
	}
	if err := s.db.WithContext(ctx).Create(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// SendMessage stores the user's message, asks the insight service to draft
// the shelter's reply, and stores that too. Both messages are returned so the
// client can append them without refetching.
func (s *MessageService) SendMessage(ctx context.Context, conversationID, userID uuid.UUID, body, userBio string) (*models.Message, *models.Message, error) {
	conversation, err := s.getOwned(ctx, conversationID, userID)
	if err != nil {
		return nil, nil, err
	}

	userMsg := models.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Sender:         models.SenderUser,
		Body:           body,
	}
	if err := s.db.WithContext(ctx).Create(&userMsg).Error; err != nil {
		return nil, nil, err
	}

	replyBody := s.insight.DraftReply(ctx, conversation.ShelterName, conversation.PetName, conversation.PetBreed, body, userBio)
	shelterMsg := models.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Sender:         models.SenderShelter,
		Body:           replyBody,
	}
	if err := s.db.WithContext(ctx).Create(&shelterMsg).Error; err != nil {
		return nil, nil, err
	}

	updates := map[string]interface{}{
		"last_message": replyBody,
		"is_unread":    true,
	}
	if err := s.db.WithContext(ctx).Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Updates(updates).Error; err != nil {
		return nil, nil, err
	}

	return &userMsg, &shelterMsg, nil
}

// MarkRead clears the unread flag when the user opens a conversation.
func (s *MessageService) MarkRead(ctx context.Context, conversationID, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).Model(&models.Conversation{}).
		Where("id = ? AND user_id = ?", conversationID, userID).
		Update("is_unread", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConversationNotFound
	}
	return nil
}

func (s *MessageService) getOwned(ctx context.Context, conversationID, userID uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", conversationID, userID).
		First(&conversation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}
