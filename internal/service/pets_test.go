package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pawhaven/pawhaven-v2/backend/internal/models"
	"github.com/pawhaven/pawhaven-v2/backend/internal/service"
	"github.com/pawhaven/pawhaven-v2/backend/internal/testhelpers"
)

func seedPet(t *testing.T, db *gorm.DB, name string) models.Pet {
	t.Helper()
	pet := models.Pet{
		ID:       uuid.New(),
		Name:     name,
		Breed:    "Mixed",
		Category: models.CategoryDogs,
		Age:      "2 years",
		Status:   models.PetStatusAvailable,
	}
	require.NoError(t, db.Create(&pet).Error)
	return pet
}

func seedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := models.User{
		ID:           uuid.New(),
		Name:         "Jane Smith",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func TestListPetsAnnotatesFavorites(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	pets := service.NewPetService(db)
	ctx := context.Background()

	a := seedPet(t, db, "Buddy")
	b := seedPet(t, db, "Luna")
	userID := seedUser(t, db)

	require.NoError(t, pets.SetFavorite(ctx, a.ID, userID, true))

	t.Run("anonymous viewer gets no favorites", func(t *testing.T) {
		list, err := pets.ListPets(ctx, nil)
		require.NoError(t, err)
		require.Len(t, list, 2)
		for _, p := range list {
			assert.False(t, p.IsFavorite)
		}
	})

	t.Run("signed-in viewer sees their favorites", func(t *testing.T) {
		list, err := pets.ListPets(ctx, &userID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		byID := map[uuid.UUID]bool{}
		for _, p := range list {
			byID[p.ID] = p.IsFavorite
		}
		assert.True(t, byID[a.ID])
		assert.False(t, byID[b.ID])
	})
}

func TestGetPet(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	pets := service.NewPetService(db)
	ctx := context.Background()

	pet := seedPet(t, db, "Buddy")

	got, err := pets.GetPet(ctx, pet.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "Buddy", got.Name)

	_, err = pets.GetPet(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, service.ErrPetNotFound)
}

func TestSetFavoriteIdempotent(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	pets := service.NewPetService(db)
	ctx := context.Background()

	pet := seedPet(t, db, "Buddy")
	userID := seedUser(t, db)

	// Favoriting twice keeps a single row
	require.NoError(t, pets.SetFavorite(ctx, pet.ID, userID, true))
	require.NoError(t, pets.SetFavorite(ctx, pet.ID, userID, true))

	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).Where("pet_id = ?", pet.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Unfavoriting a non-favorite is a no-op
	require.NoError(t, pets.SetFavorite(ctx, pet.ID, userID, false))
	require.NoError(t, pets.SetFavorite(ctx, pet.ID, userID, false))

	require.NoError(t, db.Model(&models.Favorite{}).Where("pet_id = ?", pet.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCreateApplicationForcesServerFields(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	pets := service.NewPetService(db)
	ctx := context.Background()

	pet := seedPet(t, db, "Buddy")
	userID := seedUser(t, db)

	created, err := pets.CreateApplication(ctx, userID, &models.AdoptionApplication{
		ID:      uuid.New(), // must be ignored
		PetID:   pet.ID,
		PetName: pet.Name,
		Status:  models.StatusApproved, // must be ignored
		Reason:  "Big yard",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, created.Status)
	assert.Equal(t, userID, created.UserID)

	list, err := pets.ListMyApplications(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestUpdateApplication(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	pets := service.NewPetService(db)
	ctx := context.Background()

	pet := seedPet(t, db, "Buddy")
	owner := seedUser(t, db)
	stranger := seedUser(t, db)

	created, err := pets.CreateApplication(ctx, owner, &models.AdoptionApplication{
		PetID:   pet.ID,
		PetName: pet.Name,
		Reason:  "original",
	})
	require.NoError(t, err)

	t.Run("owner edits questionnaire fields", func(t *testing.T) {
		err := pets.UpdateApplication(ctx, created.ID, owner, map[string]interface{}{
			"reason": "updated",
			"status": models.StatusApproved, // not in the whitelist
		})
		require.NoError(t, err)

		var app models.AdoptionApplication
		require.NoError(t, db.First(&app, "id = ?", created.ID).Error)
		assert.Equal(t, "updated", app.Reason)
		assert.Equal(t, models.StatusSubmitted, app.Status, "status is not editable here")
	})

	t.Run("stranger cannot edit", func(t *testing.T) {
		err := pets.UpdateApplication(ctx, created.ID, stranger, map[string]interface{}{
			"reason": "hijacked",
		})
		assert.ErrorIs(t, err, service.ErrApplicationNotFound)
	})
}

func TestProfileRoundTrip(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	pets := service.NewPetService(db)
	ctx := context.Background()

	userID := seedUser(t, db)

	t.Run("missing profile is not an error", func(t *testing.T) {
		profile, err := pets.GetProfile(ctx, userID)
		require.NoError(t, err)
		assert.Nil(t, profile)
	})

	require.NoError(t, db.Create(&models.UserProfile{
		ID:            uuid.New(),
		UserID:        userID,
		ActivityLevel: models.ActivityModerate,
	}).Error)

	require.NoError(t, pets.UpdateProfile(ctx, userID, map[string]interface{}{
		"bio":            "Loves long walks",
		"activity_level": models.ActivityHigh,
		"has_garden":     true,
	}))

	profile, err := pets.GetProfile(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Loves long walks", profile.Bio)
	assert.Equal(t, models.ActivityHigh, profile.ActivityLevel)
	assert.True(t, profile.HasGarden)
}

func TestAdminPetLifecycle(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	pets := service.NewPetService(db)
	ctx := context.Background()

	created, err := pets.CreatePet(ctx, &models.Pet{
		Name:     "Shadow",
		Breed:    "Bombay Cat",
		Category: models.CategoryCats,
		Status:   models.PetStatusAdopted, // must be ignored
	})
	require.NoError(t, err)
	assert.Equal(t, models.PetStatusAvailable, created.Status)
	assert.NotEqual(t, uuid.Nil, created.ID)

	t.Run("status transitions", func(t *testing.T) {
		require.NoError(t, pets.SetPetStatus(ctx, created.ID, models.PetStatusAdopted))

		got, err := pets.GetPet(ctx, created.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, models.PetStatusAdopted, got.Status)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		err := pets.SetPetStatus(ctx, created.ID, "Vanished")
		assert.ErrorIs(t, err, service.ErrInvalidStatus)
	})

	t.Run("unknown pet", func(t *testing.T) {
		err := pets.SetPetStatus(ctx, uuid.New(), models.PetStatusAvailable)
		assert.ErrorIs(t, err, service.ErrPetNotFound)
	})
}

func TestAdminApplicationReview(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	pets := service.NewPetService(db)
	ctx := context.Background()

	pet := seedPet(t, db, "Buddy")
	userID := seedUser(t, db)

	created, err := pets.CreateApplication(ctx, userID, &models.AdoptionApplication{
		PetID:   pet.ID,
		PetName: pet.Name,
	})
	require.NoError(t, err)

	all, err := pets.ListAllApplications(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, pets.SetApplicationStatus(ctx, created.ID, models.StatusReviewing))

	var app models.AdoptionApplication
	require.NoError(t, db.First(&app, "id = ?", created.ID).Error)
	assert.Equal(t, models.StatusReviewing, app.Status)

	err = pets.SetApplicationStatus(ctx, created.ID, "Bogus")
	assert.ErrorIs(t, err, service.ErrInvalidStatus)
}
