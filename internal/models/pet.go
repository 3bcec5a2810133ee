package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pet statuses. Legacy rows created before the status column existed carry an
// empty string and are treated as available everywhere.
const (
	PetStatusAvailable = "Available"
	PetStatusAdopted   = "Adopted"
)

// Pet categories as shown in the discovery tabs.
const (
	CategoryDogs  = "Dogs"
	CategoryCats  = "Cats"
	CategoryBirds = "Birds"
	CategoryOther = "Other"
)

type Pet struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Breed       string         `gorm:"size:100" json:"breed"`
	Age         string         `gorm:"size:50" json:"age"`
	Category    string         `gorm:"size:20;not null;index" json:"category"`
	Gender      string         `gorm:"size:10" json:"gender"`
	Weight      string         `gorm:"size:50" json:"weight"`
	Location    string         `gorm:"size:255" json:"location"`
	Distance    string         `gorm:"size:50" json:"distance"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `gorm:"size:512" json:"image"`
	IsNew       bool           `gorm:"not null;default:false" json:"is_new"`
	IsUrgent    bool           `gorm:"not null;default:false" json:"is_urgent"`
	Status      string         `gorm:"size:20;default:'Available'" json:"status"`

	// Per-viewer annotation, never persisted. Filled in by the pet service
	// from the favorites join for the requesting user.
	IsFavorite bool `gorm:"-" json:"is_favorite"`
}

// Available reports whether the pet can be adopted, treating legacy rows with
// no status as available.
func (p *Pet) Available() bool {
	return p.Status == PetStatusAvailable || p.Status == ""
}

// Favorite is the existence-only join between a user and a pet. The unique
// index keeps at most one row per (user, pet) pair.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_pet" json:"user_id"`
	PetID     uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_pet;index" json:"pet_id"`
}

func (Favorite) TableName() string {
	return "favorites"
}
