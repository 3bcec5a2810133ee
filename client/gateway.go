// Package client is an embeddable state container for PawHaven frontends. It
// mirrors what the mobile web app keeps in memory: the pet catalog, the user's
// applications, and the auth session, all fed through a typed gateway to the
// API server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pawhaven/pawhaven-v2/backend/internal/models"
)

// ApplicationForm holds the questionnaire answers for a new application.
type ApplicationForm struct {
	HomeType     string `json:"home_type"`
	LandlordName string `json:"landlord_name"`
	CurrentPets  string `json:"current_pets"`
	Reason       string `json:"reason"`
}

// NewApplication is a submission request. PetName and PetImage are snapshots
// of the pet as the client last saw it.
type NewApplication struct {
	PetID    uuid.UUID
	PetName  string
	PetImage string
	Form     ApplicationForm
}

// ApplicationUpdate carries edits to an existing application. Nil fields are
// left unchanged.
type ApplicationUpdate struct {
	HomeType     *string `json:"home_type,omitempty"`
	LandlordName *string `json:"landlord_name,omitempty"`
	CurrentPets  *string `json:"current_pets,omitempty"`
	Reason       *string `json:"reason,omitempty"`
}

// Gateway is the data access contract the Store depends on. Implementations
// must be safe for concurrent use.
type Gateway interface {
	ListPets(ctx context.Context) ([]models.Pet, error)
	GetPet(ctx context.Context, id uuid.UUID) (*models.Pet, error)
	SetFavorite(ctx context.Context, petID uuid.UUID, favorite bool) error
	CreateApplication(ctx context.Context, app NewApplication) (*models.AdoptionApplication, error)
	UpdateApplication(ctx context.Context, id uuid.UUID, update ApplicationUpdate) error
	ListMyApplications(ctx context.Context) ([]models.AdoptionApplication, error)
}

// APIGateway talks to the PawHaven API server over HTTP. List reads degrade
// to empty slices so screens render an empty state instead of an error
// banner; single-entity reads report not-found as (nil, nil); mutations
// propagate their errors to the caller.
type APIGateway struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewAPIGateway(baseURL string, httpClient *http.Client) *APIGateway {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &APIGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// SetToken installs the bearer token used on subsequent requests. An empty
// token makes requests anonymous.
func (g *APIGateway) SetToken(token string) {
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
}

func (g *APIGateway) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

func (g *APIGateway) ListPets(ctx context.Context) ([]models.Pet, error) {
	var envelope struct {
		Pets []models.Pet `json:"pets"`
	}
	if err := g.do(ctx, http.MethodGet, "/api/v1/pets", nil, &envelope); err != nil {
		return []models.Pet{}, nil
	}
	if envelope.Pets == nil {
		return []models.Pet{}, nil
	}
	return envelope.Pets, nil
}

func (g *APIGateway) GetPet(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	var pet models.Pet
	err := g.do(ctx, http.MethodGet, "/api/v1/pets/"+id.String(), nil, &pet)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &pet, nil
}

func (g *APIGateway) SetFavorite(ctx context.Context, petID uuid.UUID, favorite bool) error {
	method := http.MethodPut
	if !favorite {
		method = http.MethodDelete
	}
	return g.do(ctx, method, "/api/v1/pets/"+petID.String()+"/favorite", nil, nil)
}

func (g *APIGateway) CreateApplication(ctx context.Context, app NewApplication) (*models.AdoptionApplication, error) {
	body := struct {
		PetID    uuid.UUID `json:"pet_id"`
		PetName  string    `json:"pet_name,omitempty"`
		PetImage string    `json:"pet_image,omitempty"`
		ApplicationForm
	}{PetID: app.PetID, PetName: app.PetName, PetImage: app.PetImage, ApplicationForm: app.Form}

	var created models.AdoptionApplication
	if err := g.do(ctx, http.MethodPost, "/api/v1/applications", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *APIGateway) UpdateApplication(ctx context.Context, id uuid.UUID, update ApplicationUpdate) error {
	return g.do(ctx, http.MethodPut, "/api/v1/applications/"+id.String(), update, nil)
}

func (g *APIGateway) ListMyApplications(ctx context.Context) ([]models.AdoptionApplication, error) {
	var envelope struct {
		Applications []models.AdoptionApplication `json:"applications"`
	}
	if err := g.do(ctx, http.MethodGet, "/api/v1/applications", nil, &envelope); err != nil {
		return []models.AdoptionApplication{}, nil
	}
	if envelope.Applications == nil {
		return []models.AdoptionApplication{}, nil
	}
	return envelope.Applications, nil
}

// SignIn exchanges credentials for a token and installs it on the gateway.
func (g *APIGateway) SignIn(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		return err
	}
	g.SetToken(resp.Token)
	return nil
}

// Register creates an account and installs the returned token.
func (g *APIGateway) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/v1/auth/register", body, &resp); err != nil {
		return err
	}
	g.SetToken(resp.Token)
	return nil
}

// SignOut revokes the server-side session and drops the local token. The
// token is cleared even when revocation fails.
func (g *APIGateway) SignOut(ctx context.Context) error {
	err := g.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
	g.SetToken("")
	return err
}

// HasSession reports whether the current token still authenticates against
// the server.
func (g *APIGateway) HasSession(ctx context.Context) (bool, error) {
	if g.Token() == "" {
		return false, nil
	}
	err := g.do(ctx, http.MethodGet, "/api/v1/profile", nil, nil)
	switch {
	case err == nil:
		return true, nil
	case isUnauthorized(err):
		return false, nil
	case isNotFound(err):
		// No profile row yet; the token itself is still valid
		return true, nil
	default:
		return false, err
	}
}

type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.status, e.body)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.status == http.StatusNotFound
}

func isUnauthorized(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.status == http.StatusUnauthorized
}

func (g *APIGateway) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := g.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &statusError{status: resp.StatusCode, body: strings.TrimSpace(string(data))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
