package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message senders.
const (
	SenderUser    = "user"
	SenderShelter = "shelter"
)

// Conversation groups the messages between one user and one shelter about one
// pet. LastMessage is denormalized for the conversation list view.
type Conversation struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	UserID      uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	PetID       uuid.UUID      `gorm:"type:varchar(36);not null" json:"pet_id"`
	PetName     string         `gorm:"size:100" json:"pet_name"`
	PetBreed    string         `gorm:"size:100" json:"pet_breed"`
	ShelterName string         `gorm:"size:100;not null" json:"shelter_name"`
	ShelterLogo string         `gorm:"size:512" json:"shelter_logo"`
	LastMessage string         `gorm:"type:text" json:"last_message"`
	IsUnread    bool           `gorm:"not null;default:false" json:"is_unread"`
}

type Message struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	ConversationID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"conversation_id"`
	Sender         string    `gorm:"size:10;not null" json:"sender"`
	Body           string    `gorm:"type:text;not null" json:"body"`
}
