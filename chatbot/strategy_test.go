package chatbot

import (
	"context"
	"errors"
	"testing"
	"time"

	"wayfare/models"
)

func samplePlaces() []models.Place {
	return []models.Place{
		{PlaceID: "p1", Name: "Grand Hotel", Category: models.CategoryHotel, AverageRating: 4.2},
		{PlaceID: "p2", Name: "Sushi Corner", Category: models.CategoryRestaurant, AverageRating: 4.8},
		{PlaceID: "p3", Name: "City Museum", Category: models.CategoryTouristPlace, AverageRating: 4.5},
		{PlaceID: "p4", Name: "Old Market", Category: models.CategoryShop, AverageRating: 3.9},
	}
}

func TestKeywordStrategyCategoryMatch(t *testing.T) {
	ranked, err := KeywordStrategy{}.Recommend(context.Background(), "where can I eat dinner", samplePlaces())
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) == 0 {
		t.Fatal("expected a non-empty ranking")
	}
	if ranked[0].PlaceID != "p2" {
		t.Fatalf("expected the restaurant first, got %s", ranked[0].PlaceID)
	}
}

func TestKeywordStrategyNoMatchFallsBackToTopRated(t *testing.T) {
	ranked, err := KeywordStrategy{}.Recommend(context.Background(), "zzz qqq", samplePlaces())
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 4 {
		t.Fatalf("expected all places when nothing matches, got %d", len(ranked))
	}
	if ranked[0].AverageRating < ranked[1].AverageRating {
		t.Fatal("expected rating-descending order for unmatched queries")
	}
}

func TestKeywordStrategyRanksHigherRatedFirstWithinTies(t *testing.T) {
	places := []models.Place{
		{PlaceID: "a", Name: "Cafe A", Category: models.CategoryRestaurant, AverageRating: 3.5},
		{PlaceID: "b", Name: "Cafe B", Category: models.CategoryRestaurant, AverageRating: 4.9},
	}
	ranked, _ := KeywordStrategy{}.Recommend(context.Background(), "food", places)
	if ranked[0].PlaceID != "b" {
		t.Fatalf("expected the higher-rated place first, got %s", ranked[0].PlaceID)
	}
}

type failingStrategy struct{}

func (failingStrategy) Recommend(context.Context, string, []models.Place) ([]models.Place, error) {
	return nil, errors.New("provider down")
}

type hangingStrategy struct{}

func (hangingStrategy) Recommend(ctx context.Context, _ string, _ []models.Place) ([]models.Place, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestEngineFallsBackOnPrimaryError(t *testing.T) {
	engine := &Engine{
		Primary:  failingStrategy{},
		Fallback: KeywordStrategy{},
		Timeout:  time.Second,
	}

	ranked := engine.Recommend(context.Background(), "museum", samplePlaces())
	if len(ranked) == 0 {
		t.Fatal("fallback should still produce a ranking")
	}
	if ranked[0].PlaceID != "p3" {
		t.Fatalf("expected the museum first, got %s", ranked[0].PlaceID)
	}
}

func TestEngineFallsBackOnTimeout(t *testing.T) {
	engine := &Engine{
		Primary:  hangingStrategy{},
		Fallback: KeywordStrategy{},
		Timeout:  50 * time.Millisecond,
	}

	start := time.Now()
	ranked := engine.Recommend(context.Background(), "hotel", samplePlaces())
	if time.Since(start) > time.Second {
		t.Fatal("engine did not enforce the primary timeout")
	}
	if len(ranked) == 0 || ranked[0].PlaceID != "p1" {
		t.Fatalf("expected the hotel first from the fallback, got %+v", ranked)
	}
}
