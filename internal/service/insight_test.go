package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawhaven/pawhaven-v2/backend/internal/models"
)

func newTestInsightService(apiURL string) *InsightService {
	return &InsightService{
		apiKey: "test-key",
		apiURL: apiURL,
		model:  "deepseek-chat",
		client: http.DefaultClient,
	}
}

// completionServer fakes the chat-completions endpoint, answering every call
// with the given message content.
func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream on fire", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testPet(name string) models.Pet {
	return models.Pet{ID: uuid.New(), Name: name, Breed: "Mixed", Description: "Friendly"}
}

func testProfile() *models.UserProfile {
	return &models.UserProfile{ActivityLevel: models.ActivityHigh, Bio: "Runner"}
}

func TestScoreCompatibility(t *testing.T) {
	pet := testPet("Buddy")

	t.Run("parses upstream result", func(t *testing.T) {
		srv := completionServer(t, `{"score": 92, "reason": "Great energy match.", "strengths": ["Active"], "concerns": ["Needs a garden"]}`)
		svc := newTestInsightService(srv.URL)

		got := svc.ScoreCompatibility(context.Background(), &pet, testProfile())
		assert.Equal(t, 92, got.Score)
		assert.Equal(t, "Great energy match.", got.Reason)
		assert.Equal(t, []string{"Active"}, got.Strengths)
		assert.Equal(t, []string{"Needs a garden"}, got.Concerns)
	})

	t.Run("clamps out-of-range scores", func(t *testing.T) {
		srv := completionServer(t, `{"score": 250, "reason": "off the charts"}`)
		svc := newTestInsightService(srv.URL)

		got := svc.ScoreCompatibility(context.Background(), &pet, testProfile())
		assert.Equal(t, 100, got.Score)
		assert.NotNil(t, got.Strengths)
		assert.NotNil(t, got.Concerns)
	})

	t.Run("transport failure falls back", func(t *testing.T) {
		srv := failingServer(t)
		svc := newTestInsightService(srv.URL)

		got := svc.ScoreCompatibility(context.Background(), &pet, testProfile())
		assert.Equal(t, 85, got.Score)
		assert.Contains(t, got.Reason, "Buddy")
		assert.Contains(t, got.Reason, "high")
	})

	t.Run("malformed response falls back", func(t *testing.T) {
		srv := completionServer(t, "this is not json")
		svc := newTestInsightService(srv.URL)

		got := svc.ScoreCompatibility(context.Background(), &pet, testProfile())
		assert.Equal(t, 85, got.Score)
	})
}

func TestRankMatches(t *testing.T) {
	pets := []models.Pet{testPet("Buddy"), testPet("Luna"), testPet("Max"), testPet("Daisy")}

	t.Run("accepts a bare array", func(t *testing.T) {
		content, _ := json.Marshal([]Match{
			{PetID: pets[2].ID.String(), Priority: 1, Insight: "Best fit"},
			{PetID: pets[0].ID.String(), Priority: 2, Insight: "Good fit"},
		})
		srv := completionServer(t, string(content))
		svc := newTestInsightService(srv.URL)

		got := svc.RankMatches(context.Background(), pets, testProfile())
		require.Len(t, got, 2)
		assert.Equal(t, pets[2].ID.String(), got[0].PetID)
	})

	t.Run("accepts a wrapped object", func(t *testing.T) {
		srv := completionServer(t, `{"matches": [{"pet_id": "`+pets[1].ID.String()+`", "priority": 1, "insight": "x"}]}`)
		svc := newTestInsightService(srv.URL)

		got := svc.RankMatches(context.Background(), pets, testProfile())
		require.Len(t, got, 1)
		assert.Equal(t, pets[1].ID.String(), got[0].PetID)
	})

	t.Run("caps results at three", func(t *testing.T) {
		content, _ := json.Marshal([]Match{
			{PetID: pets[0].ID.String(), Priority: 1},
			{PetID: pets[1].ID.String(), Priority: 2},
			{PetID: pets[2].ID.String(), Priority: 3},
			{PetID: pets[3].ID.String(), Priority: 4},
		})
		srv := completionServer(t, string(content))
		svc := newTestInsightService(srv.URL)

		got := svc.RankMatches(context.Background(), pets, testProfile())
		assert.Len(t, got, 3)
	})

	t.Run("failure falls back to the first three pets in order", func(t *testing.T) {
		srv := failingServer(t)
		svc := newTestInsightService(srv.URL)

		got := svc.RankMatches(context.Background(), pets, testProfile())
		require.Len(t, got, 3)
		for i, m := range got {
			assert.Equal(t, pets[i].ID.String(), m.PetID)
			assert.Equal(t, i+1, m.Priority)
			assert.NotEmpty(t, m.Insight)
		}
	})

	t.Run("empty catalog yields no matches", func(t *testing.T) {
		svc := newTestInsightService("http://localhost:0")
		got := svc.RankMatches(context.Background(), nil, testProfile())
		assert.Empty(t, got)
	})
}

func TestDraftReply(t *testing.T) {
	t.Run("returns the drafted text", func(t *testing.T) {
		srv := completionServer(t, "  Hi Jane, Shadow is available for a visit this week!  ")
		svc := newTestInsightService(srv.URL)

		got := svc.DraftReply(context.Background(), "Paws & Whiskers", "Shadow", "Bombay Cat", "Is Shadow available?", "Cat person")
		assert.Equal(t, "Hi Jane, Shadow is available for a visit this week!", got)
	})

	t.Run("failure falls back to a templated reply", func(t *testing.T) {
		srv := failingServer(t)
		svc := newTestInsightService(srv.URL)

		got := svc.DraftReply(context.Background(), "Paws & Whiskers", "Shadow", "Bombay Cat", "Is Shadow available?", "")
		assert.Contains(t, got, "Shadow")
		assert.Contains(t, got, "Paws & Whiskers")
	})
}

func TestNewInsightServiceRequiresKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("LLM_API_KEY_FILE", "")
	_, err := NewInsightService()
	assert.Error(t, err)

	t.Setenv("LLM_API_KEY", "k")
	svc, err := NewInsightService()
	require.NoError(t, err)
	assert.Equal(t, "deepseek-chat", svc.model)
}
