package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pawhaven/pawhaven-v2/backend/internal/models"
)

var ErrUnknownPet = errors.New("pet not found in local state")

// Store owns the in-memory pets and applications for one signed-in session.
// All writes go through its methods; readers get copies. Favorite toggles are
// optimistic: the flag flips locally before the gateway call, and a failed
// call rolls the flag back unless a later toggle for the same pet has already
// been issued.
type Store struct {
	gateway Gateway

	mu           sync.Mutex
	pets         []models.Pet
	applications []models.AdoptionApplication

	// favSeq tracks the latest toggle issued per pet id. A rollback applies
	// only when its originating toggle is still the latest.
	favSeq map[uuid.UUID]uint64
}

func NewStore(gateway Gateway) *Store {
	return &Store{
		gateway: gateway,
		favSeq:  make(map[uuid.UUID]uint64),
	}
}

// Load fetches pets and the user's applications. The two fetches run
// concurrently and fail independently: an error in one does not stop the
// other from populating.
func (s *Store) Load(ctx context.Context) error {
	var (
		wg      sync.WaitGroup
		pets    []models.Pet
		apps    []models.AdoptionApplication
		petsErr error
		appsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		pets, petsErr = s.gateway.ListPets(ctx)
	}()
	go func() {
		defer wg.Done()
		apps, appsErr = s.gateway.ListMyApplications(ctx)
	}()
	wg.Wait()

	s.mu.Lock()
	if petsErr == nil {
		s.pets = pets
	}
	if appsErr == nil {
		s.applications = apps
	}
	s.mu.Unlock()

	return errors.Join(petsErr, appsErr)
}

// Clear discards all local state. Called on sign-out.
func (s *Store) Clear() {
	s.mu.Lock()
	s.pets = nil
	s.applications = nil
	s.favSeq = make(map[uuid.UUID]uint64)
	s.mu.Unlock()
}

// Pets returns a snapshot of the catalog.
func (s *Store) Pets() []models.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Pet, len(s.pets))
	copy(out, s.pets)
	return out
}

// Pet returns a snapshot of one pet by id.
func (s *Store) Pet(id uuid.UUID) (models.Pet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.pets {
		if p.ID == id {
			return p, true
		}
	}
	return models.Pet{}, false
}

// Applications returns a snapshot of the user's applications.
func (s *Store) Applications() []models.AdoptionApplication {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.AdoptionApplication, len(s.applications))
	copy(out, s.applications)
	return out
}

// ToggleFavorite flips the pet's favorite flag locally, then pushes the new
// desired value through the gateway. On gateway failure the flag is restored,
// but only if no later toggle for the same pet was issued in the meantime; a
// stale rollback must not clobber a newer toggle's state. The failure is
// returned to the caller, who treats it as recoverable.
func (s *Store) ToggleFavorite(ctx context.Context, petID uuid.UUID) error {
	s.mu.Lock()
	idx := s.indexOfPet(petID)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownPet, petID)
	}

	s.pets[idx].IsFavorite = !s.pets[idx].IsFavorite
	desired := s.pets[idx].IsFavorite
	seq := s.favSeq[petID] + 1
	s.favSeq[petID] = seq
	s.mu.Unlock()

	if err := s.gateway.SetFavorite(ctx, petID, desired); err != nil {
		s.mu.Lock()
		if s.favSeq[petID] == seq {
			if idx := s.indexOfPet(petID); idx >= 0 {
				s.pets[idx].IsFavorite = !desired
			}
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// SubmitApplication creates an application for the pet, snapshotting the
// pet's name and image from local state at call time. There is no optimistic
// insert: the server-assigned record is prepended once the call succeeds.
func (s *Store) SubmitApplication(ctx context.Context, petID uuid.UUID, form ApplicationForm) (*models.AdoptionApplication, error) {
	s.mu.Lock()
	idx := s.indexOfPet(petID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownPet, petID)
	}
	petName := s.pets[idx].Name
	petImage := s.pets[idx].ImageURL
	s.mu.Unlock()

	created, err := s.gateway.CreateApplication(ctx, NewApplication{
		PetID:    petID,
		PetName:  petName,
		PetImage: petImage,
		Form:     form,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.applications = append([]models.AdoptionApplication{*created}, s.applications...)
	s.mu.Unlock()
	return created, nil
}

// UpdateApplication pushes the edit through the gateway first and merges it
// into local state only on success.
func (s *Store) UpdateApplication(ctx context.Context, id uuid.UUID, update ApplicationUpdate) error {
	if err := s.gateway.UpdateApplication(ctx, id, update); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.applications {
		if s.applications[i].ID != id {
			continue
		}
		if update.HomeType != nil {
			s.applications[i].HomeType = *update.HomeType
		}
		if update.LandlordName != nil {
			s.applications[i].LandlordName = *update.LandlordName
		}
		if update.CurrentPets != nil {
			s.applications[i].CurrentPets = *update.CurrentPets
		}
		if update.Reason != nil {
			s.applications[i].Reason = *update.Reason
		}
		return nil
	}
	return nil
}

// indexOfPet must be called with the mutex held.
func (s *Store) indexOfPet(id uuid.UUID) int {
	for i := range s.pets {
		if s.pets[i].ID == id {
			return i
		}
	}
	return -1
}
