package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"wayfare/models"
	"wayfare/utils"
)

// Strategy ranks candidate places for a free-text query. Implementations
// must not mutate the candidates slice.
type Strategy interface {
	Recommend(ctx context.Context, query string, candidates []models.Place) ([]models.Place, error)
}

// ---------------------------------------------------------------------------
// Keyword strategy: deterministic, always succeeds.

var categoryKeywords = map[string][]string{
	models.CategoryHotel:        {"hotel", "stay", "sleep", "accommodation", "room"},
	models.CategoryRestaurant:   {"eat", "food", "restaurant", "dinner", "lunch", "breakfast", "cafe"},
	models.CategoryShop:         {"shop", "shopping", "buy", "souvenir", "market"},
	models.CategoryTouristPlace: {"visit", "see", "sight", "museum", "tour", "attraction", "landmark"},
}

type KeywordStrategy struct{}

func (KeywordStrategy) Recommend(_ context.Context, query string, candidates []models.Place) ([]models.Place, error) {
	words := strings.Fields(strings.ToLower(query))

	type scored struct {
		place models.Place
		score int
	}
	results := make([]scored, 0, len(candidates))

	for _, place := range candidates {
		score := 0
		for _, word := range words {
			for category, keywords := range categoryKeywords {
				for _, kw := range keywords {
					if word == kw && place.Category == category {
						score += 3
					}
				}
			}
			if utils.ContainsIgnoreCase(place.Name, word) ||
				strings.EqualFold(place.City, word) {
				score += 2
			}
			for _, feature := range place.Features {
				if utils.ContainsIgnoreCase(feature, word) {
					score++
				}
			}
			for _, tag := range place.Tags {
				if tag == word {
					score++
				}
			}
		}
		results = append(results, scored{place, score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score != results[j].score {
			return results[i].score > results[j].score
		}
		return results[i].place.AverageRating > results[j].place.AverageRating
	})

	ranked := make([]models.Place, 0, len(results))
	for _, item := range results {
		if item.score > 0 {
			ranked = append(ranked, item.place)
		}
	}

	// Nothing matched: fall back to top-rated so the widget never comes
	// back empty-handed while places exist.
	if len(ranked) == 0 {
		for _, item := range results {
			ranked = append(ranked, item.place)
		}
	}

	return ranked, nil
}

// ---------------------------------------------------------------------------
// Generative strategy: best-effort call to an external generative-text API.

type GenerativeStrategy struct {
	BaseURL string
	Client  *http.Client
}

func NewGenerativeStrategy() *GenerativeStrategy {
	return &GenerativeStrategy{
		BaseURL: os.Getenv("ASSIST_API_URL"),
		Client:  &http.Client{},
	}
}

type generativeRequest struct {
	Message string            `json:"message"`
	Places  []generativePlace `json:"places"`
}

type generativePlace struct {
	PlaceID  string   `json:"placeid"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	City     string   `json:"city,omitempty"`
	Features []string `json:"features,omitempty"`
	Rating   float64  `json:"rating"`
}

type generativeResponse struct {
	PlaceIDs []string `json:"place_ids"`
}

func (s *GenerativeStrategy) Recommend(ctx context.Context, query string, candidates []models.Place) ([]models.Place, error) {
	if s.BaseURL == "" {
		return nil, fmt.Errorf("generative strategy: no endpoint configured")
	}

	reqBody := generativeRequest{Message: query}
	for _, place := range candidates {
		reqBody.Places = append(reqBody.Places, generativePlace{
			PlaceID:  place.PlaceID,
			Name:     place.Name,
			Category: place.Category,
			City:     place.City,
			Features: place.Features,
			Rating:   place.AverageRating,
		})
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/recommend", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generative strategy: provider returned %d", resp.StatusCode)
	}

	var decoded generativeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if len(decoded.PlaceIDs) == 0 {
		return nil, fmt.Errorf("generative strategy: empty ranking")
	}

	byID := make(map[string]models.Place, len(candidates))
	for _, place := range candidates {
		byID[place.PlaceID] = place
	}

	ranked := make([]models.Place, 0, len(decoded.PlaceIDs))
	for _, id := range decoded.PlaceIDs {
		if place, ok := byID[id]; ok {
			ranked = append(ranked, place)
		}
	}
	if len(ranked) == 0 {
		return nil, fmt.Errorf("generative strategy: ranking references no known places")
	}

	return ranked, nil
}

// ---------------------------------------------------------------------------
// Engine: generative first, keyword on any failure or timeout.

type Engine struct {
	Primary  Strategy
	Fallback Strategy
	Timeout  time.Duration
}

func NewEngine() *Engine {
	return &Engine{
		Primary:  NewGenerativeStrategy(),
		Fallback: KeywordStrategy{},
		Timeout:  3 * time.Second,
	}
}

// Recommend tries the primary strategy under the engine timeout and
// silently degrades to the fallback. The fallback's result is returned
// even on fallback error only if non-nil; a keyword fallback cannot fail.
func (e *Engine) Recommend(ctx context.Context, query string, candidates []models.Place) []models.Place {
	if e.Primary != nil {
		tctx, cancel := context.WithTimeout(ctx, e.Timeout)
		ranked, err := e.Primary.Recommend(tctx, query, candidates)
		cancel()
		if err == nil && len(ranked) > 0 {
			return ranked
		}
	}

	ranked, _ := e.Fallback.Recommend(ctx, query, candidates)
	return ranked
}
