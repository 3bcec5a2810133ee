package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application statuses in review order. Approved and Declined are both
// terminal.
const (
	StatusSubmitted = "Submitted"
	StatusReviewing = "Reviewing"
	StatusInterview = "Interview"
	StatusApproved  = "Approved"
	StatusDeclined  = "Declined"
)

// ApplicationStatuses lists every valid status value.
var ApplicationStatuses = []string{
	StatusSubmitted,
	StatusReviewing,
	StatusInterview,
	StatusApproved,
	StatusDeclined,
}

// ValidApplicationStatus reports whether s is one of the known statuses.
func ValidApplicationStatus(s string) bool {
	for _, v := range ApplicationStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// AdoptionApplication is one user's request to adopt one pet. PetName and
// PetImage are snapshots taken at submission time and do not follow later
// edits to the pet row.
type AdoptionApplication struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	PetID     uuid.UUID      `gorm:"type:varchar(36);not null" json:"pet_id"`
	PetName   string         `gorm:"size:100;not null" json:"pet_name"`
	PetImage  string         `gorm:"size:512" json:"pet_image"`
	Status    string         `gorm:"size:20;not null;default:'Submitted'" json:"status"`

	// Questionnaire answers, editable by the owning user.
	HomeType     string `gorm:"size:50" json:"home_type"`
	LandlordName string `gorm:"size:100" json:"landlord_name,omitempty"`
	CurrentPets  string `gorm:"type:text" json:"current_pets"`
	Reason       string `gorm:"type:text" json:"reason"`
}

func (AdoptionApplication) TableName() string {
	return "applications"
}
