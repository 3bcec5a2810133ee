package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	IsAdmin      bool           `gorm:"not null;default:false" json:"is_admin"`
}

// UserProfile holds the adoption-relevant attributes used as input to
// compatibility scoring.
type UserProfile struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Name          string         `gorm:"size:100" json:"name"`
	Bio           string         `gorm:"type:text" json:"bio"`
	HomeType      string         `gorm:"size:50" json:"home_type"`
	HasGarden     bool           `json:"has_garden"`
	ActivityLevel string         `gorm:"size:20;default:'Moderate'" json:"activity_level"`
	HasChildren   bool           `json:"has_children"`
	ExistingPets  string         `gorm:"type:text" json:"existing_pets"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// Activity levels accepted on a profile.
const (
	ActivityLow      = "Low"
	ActivityModerate = "Moderate"
	ActivityHigh     = "High"
)
