package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pawhaven/pawhaven-v2/backend/internal/models"
)

// Compatibility is the scored (pet, profile) analysis shown on the pet detail
// screen.
type Compatibility struct {
	Score     int      `json:"score"`
	Reason    string   `json:"reason"`
	Strengths []string `json:"strengths"`
	Concerns  []string `json:"concerns"`
}

// Match is one entry of the smart-match ranking, priority 1 is the best fit.
type Match struct {
	PetID    string `json:"pet_id"`
	Priority int    `json:"priority"`
	Insight  string `json:"insight"`
}

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat-completions request to the LLM API
type Request struct {
	Model          string            `json:"model"`
	Messages       []Message         `json:"messages"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
	Temperature    float64           `json:"temperature,omitempty"`
}

// InsightService wraps the language-model completion API. Every entry point
// degrades to a deterministic local fallback on transport or parse failure;
// callers never see an error from this service and results are recomputed on
// every call, never cached.
type InsightService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewInsightService creates a new InsightService instance
func NewInsightService() (*InsightService, error) {
	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("LLM_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("LLM_API_KEY or LLM_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("LLM_API_URL")
	if apiURL == "" {
		apiURL = "https://api.deepseek.com/v1/chat/completions"
	}

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "deepseek-chat"
	}

	return &InsightService{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// ScoreCompatibility analyzes one (pet, profile) pair. The returned shape is
// identical whether the upstream call succeeded or the fallback fired.
func (s *InsightService) ScoreCompatibility(ctx context.Context, pet *models.Pet, profile *models.UserProfile) *Compatibility {
	prompt := fmt.Sprintf(`Analyze the compatibility between this user and this pet for adoption.
User Profile:
- Bio: %s
- Home: %s (Has Garden: %t)
- Activity: %s
- Kids: %t
- Current Pets: %s

Pet Profile:
- Name: %s
- Breed: %s
- Description: %s

Return a JSON object with:
- score: (number 0-100)
- reason: (string, 1-2 sentences explaining why they are a good or bad match)
- strengths: (array of strings)
- concerns: (array of strings)`,
		profile.Bio, profile.HomeType, profile.HasGarden, profile.ActivityLevel,
		profile.HasChildren, profile.ExistingPets,
		pet.Name, pet.Breed, pet.Description)

	content, err := s.complete(ctx, "You are a pet adoption advisor. Respond only with JSON.", prompt, true)
	if err != nil {
		log.Printf("[InsightService] compatibility call failed, using fallback: %v", err)
		return fallbackCompatibility(pet, profile)
	}

	var result Compatibility
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		log.Printf("[InsightService] failed to parse compatibility response, using fallback: %v", err)
		return fallbackCompatibility(pet, profile)
	}

	if result.Score < 0 {
		result.Score = 0
	}
	if result.Score > 100 {
		result.Score = 100
	}
	if result.Strengths == nil {
		result.Strengths = []string{}
	}
	if result.Concerns == nil {
		result.Concerns = []string{}
	}
	return &result
}

// RankMatches picks the up-to-3 best matches for the profile. Upstream has
// returned both a bare array and an object wrapping one; both shapes are
// accepted and normalized here.
func (s *InsightService) RankMatches(ctx context.Context, pets []models.Pet, profile *models.UserProfile) []Match {
	if len(pets) == 0 {
		return []Match{}
	}

	type petSummary struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Breed string `json:"breed"`
		Desc  string `json:"desc"`
	}
	summaries := make([]petSummary, len(pets))
	for i, p := range pets {
		summaries[i] = petSummary{ID: p.ID.String(), Name: p.Name, Breed: p.Breed, Desc: p.Description}
	}
	petsJSON, _ := json.Marshal(summaries)
	profileJSON, _ := json.Marshal(profile)

	prompt := fmt.Sprintf(`Given a user profile and a list of pets, determine which 3 pets are the best matches.
User Profile: %s
Pets: %s

Return a JSON array of objects with:
- pet_id: (pet id)
- priority: (number 1-3, 1 being best)
- insight: (short string why this pet matches)`, profileJSON, petsJSON)

	content, err := s.complete(ctx, "You are a pet adoption advisor. Respond only with JSON.", prompt, true)
	if err != nil {
		log.Printf("[InsightService] match call failed, using fallback: %v", err)
		return fallbackMatches(pets, profile)
	}

	matches, err := decodeMatches(content)
	if err != nil || len(matches) == 0 {
		log.Printf("[InsightService] failed to parse match response, using fallback: %v", err)
		return fallbackMatches(pets, profile)
	}
	if len(matches) > 3 {
		matches = matches[:3]
	}
	return matches
}

// DraftReply writes a shelter's reply to a user message in a conversation.
func (s *InsightService) DraftReply(ctx context.Context, shelterName, petName, petBreed, userMessage, userBio string) string {
	prompt := fmt.Sprintf(`You are a staff member at the animal shelter %q answering an adopter's message about %s, a %s.
The adopter describes themselves as: %s
Their message: %q

Write a short, warm, helpful reply (2-3 sentences). Respond with plain text only.`,
		shelterName, petName, petBreed, userBio, userMessage)

	content, err := s.complete(ctx, "You are a friendly animal shelter employee.", prompt, false)
	if err != nil || strings.TrimSpace(content) == "" {
		log.Printf("[InsightService] reply call failed, using fallback: %v", err)
		return fmt.Sprintf("Thanks for reaching out about %s! A member of our team at %s will get back to you with more details shortly.", petName, shelterName)
	}
	return strings.TrimSpace(content)
}

// complete sends one chat-completions request and returns the first choice's
// content.
func (s *InsightService) complete(ctx context.Context, system, user string, jsonMode bool) (string, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	if jsonMode {
		reqBody.ResponseFormat = map[string]string{
			"type": "json_object",
		}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}

// decodeMatches accepts either a bare JSON array or {"matches": [...]}.
func decodeMatches(content string) ([]Match, error) {
	var matches []Match
	if err := json.Unmarshal([]byte(content), &matches); err == nil {
		return matches, nil
	}

	var wrapper struct {
		Matches []Match `json:"matches"`
	}
	if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Matches, nil
}

func fallbackCompatibility(pet *models.Pet, profile *models.UserProfile) *Compatibility {
	return &Compatibility{
		Score:     85,
		Reason:    fmt.Sprintf("You and %s seem like a great match based on your %s activity level!", pet.Name, strings.ToLower(profile.ActivityLevel)),
		Strengths: []string{"Activity match"},
		Concerns:  []string{},
	}
}

func fallbackMatches(pets []models.Pet, profile *models.UserProfile) []Match {
	n := len(pets)
	if n > 3 {
		n = 3
	}
	matches := make([]Match, 0, n)
	for i := 0; i < n; i++ {
		matches = append(matches, Match{
			PetID:    pets[i].ID.String(),
			Priority: i + 1,
			Insight:  fmt.Sprintf("Based on your %s activity level, %s is a great choice!", profile.ActivityLevel, pets[i].Name),
		})
	}
	return matches
}
