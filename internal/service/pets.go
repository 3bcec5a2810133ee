package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawhaven/pawhaven-v2/backend/internal/models"
)

var (
	ErrPetNotFound         = errors.New("pet not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidStatus       = errors.New("invalid status")
)

// PetService is the row gateway for pets, favorites, applications and
// profiles. Reads that take a viewer annotate each pet with that viewer's
// favorite state; admin reads skip the join and leave IsFavorite false.
type PetService struct {
	db *gorm.DB
}

func NewPetService(db *gorm.DB) *PetService {
	return &PetService{db: db}
}

// ListPets returns all pets, newest first. When viewerID is non-nil the
// favorites join is resolved with a single batched query, not one lookup per
// pet.
func (s *PetService) ListPets(ctx context.Context, viewerID *uuid.UUID) ([]models.Pet, error) {
	var pets []models.Pet
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&pets).Error; err != nil {
		return nil, err
	}
	s.normalize(pets)

	if viewerID == nil {
		return pets, nil
	}

	favorites, err := s.favoriteSet(ctx, *viewerID)
	if err != nil {
		return nil, err
	}
	for i := range pets {
		pets[i].IsFavorite = favorites[pets[i].ID]
	}
	return pets, nil
}

// GetPet retrieves one pet. Absence is reported via ErrPetNotFound.
func (s *PetService) GetPet(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.Pet, error) {
	var pet models.Pet
	if err := s.db.WithContext(ctx).First(&pet, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	if pet.Status == "" {
		pet.Status = models.PetStatusAvailable
	}

	if viewerID != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Favorite{}).
			Where("user_id = ? AND pet_id = ?", *viewerID, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		pet.IsFavorite = count > 0
	}
	return &pet, nil
}

// SetFavorite moves the (user, pet) favorite row to the desired state. Both
// directions are idempotent: favoriting twice keeps one row, unfavoriting a
// non-favorite is a no-op.
func (s *PetService) SetFavorite(ctx context.Context, petID, userID uuid.UUID, desired bool) error {
	if !desired {
		return s.db.WithContext(ctx).
			Where("user_id = ? AND pet_id = ?", userID, petID).
			Delete(&models.Favorite{}).Error
	}

	var existing models.Favorite
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND pet_id = ?", userID, petID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	fav := models.Favorite{
		ID:     uuid.New(),
		UserID: userID,
		PetID:  petID,
	}
	return s.db.WithContext(ctx).Create(&fav).Error
}

// CreateApplication persists a new application. The service assigns the id
// and submission date and forces the status to Submitted regardless of what
// the caller supplied.
func (s *PetService) CreateApplication(ctx context.Context, userID uuid.UUID, app *models.AdoptionApplication) (*models.AdoptionApplication, error) {
	created := *app
	created.ID = uuid.New()
	created.UserID = userID
	created.Status = models.StatusSubmitted

	if err := s.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateApplication lets the owning user edit the questionnaire fields. The
// status and pet snapshot are not touchable through this path.
func (s *PetService) UpdateApplication(ctx context.Context, id, userID uuid.UUID, fields map[string]interface{}) error {
	allowed := map[string]bool{
		"home_type":     true,
		"landlord_name": true,
		"current_pets":  true,
		"reason":        true,
	}
	updates := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if allowed[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		return nil
	}

	result := s.db.WithContext(ctx).Model(&models.AdoptionApplication{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (s *PetService) ListMyApplications(ctx context.Context, userID uuid.UUID) ([]models.AdoptionApplication, error) {
	var apps []models.AdoptionApplication
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *PetService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *PetService) UpdateProfile(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) error {
	allowed := map[string]bool{
		"name":           true,
		"bio":            true,
		"home_type":      true,
		"has_garden":     true,
		"activity_level": true,
		"has_children":   true,
		"existing_pets":  true,
	}
	updates := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if allowed[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

// ListAllPets is the admin variant: every pet including adopted ones, no
// viewer annotation.
func (s *PetService) ListAllPets(ctx context.Context) ([]models.Pet, error) {
	var pets []models.Pet
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&pets).Error; err != nil {
		return nil, err
	}
	s.normalize(pets)
	return pets, nil
}

// CreatePet inserts a new listing. The id is generated here, never taken from
// the caller, and new listings always start Available.
func (s *PetService) CreatePet(ctx context.Context, pet *models.Pet) (*models.Pet, error) {
	created := *pet
	created.ID = uuid.New()
	created.Status = models.PetStatusAvailable
	created.IsFavorite = false

	if err := s.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *PetService) SetPetStatus(ctx context.Context, id uuid.UUID, status string) error {
	if status != models.PetStatusAvailable && status != models.PetStatusAdopted {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	result := s.db.WithContext(ctx).Model(&models.Pet{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPetNotFound
	}
	return nil
}

func (s *PetService) ListAllApplications(ctx context.Context) ([]models.AdoptionApplication, error) {
	var apps []models.AdoptionApplication
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *PetService) SetApplicationStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !models.ValidApplicationStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	result := s.db.WithContext(ctx).Model(&models.AdoptionApplication{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// favoriteSet loads the viewer's favorite pet ids in one query.
func (s *PetService) favoriteSet(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	var favorites []models.Favorite
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]bool, len(favorites))
	for _, f := range favorites {
		set[f.PetID] = true
	}
	return set, nil
}

// normalize backfills the status of legacy rows created before the column
// existed.
func (s *PetService) normalize(pets []models.Pet) {
	for i := range pets {
		if pets[i].Status == "" {
			pets[i].Status = models.PetStatusAvailable
		}
	}
}
