package reviews

import (
	"context"
	"fmt"
	"math"

	"wayfare/db"
	"wayfare/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Summarize computes the denormalized rating summary for a set of review
// ratings. The mean is rounded half-away-from-zero to one decimal; this is
// the only place a rating is ever rounded. Zero ratings yields {0, 0}.
func Summarize(ratings []int) models.RatingSummary {
	count := len(ratings)
	if count == 0 {
		return models.RatingSummary{AverageRating: 0, RatingsQuantity: 0}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(count)

	return models.RatingSummary{
		AverageRating:   RoundRating(mean),
		RatingsQuantity: count,
	}
}

// RoundRating rounds to one decimal, half away from zero (4.666 -> 4.7,
// 4.25 -> 4.3).
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}

// RecalcPlaceRating reads every review for the place and writes the fresh
// summary onto the place record. A missing place is not an error: the
// update simply matches nothing and the next successful mutation for a
// live place heals the aggregate.
func RecalcPlaceRating(ctx context.Context, placeID string) error {
	if placeID == "" {
		return fmt.Errorf("recalc rating: empty place id")
	}

	cursor, err := db.ReviewsCollection.Find(ctx, bson.M{"placeid": placeID})
	if err != nil {
		return fmt.Errorf("recalc rating: read reviews for %s: %w", placeID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return fmt.Errorf("recalc rating: decode reviews for %s: %w", placeID, err)
	}

	ratings := make([]int, 0, len(reviews))
	for _, review := range reviews {
		ratings = append(ratings, review.Rating)
	}
	summary := Summarize(ratings)

	_, err = db.PlacesCollection.UpdateOne(ctx,
		bson.M{"placeid": placeID},
		bson.M{"$set": bson.M{
			"averageRating":   summary.AverageRating,
			"ratingsQuantity": summary.RatingsQuantity,
		}},
	)
	if err != nil {
		return fmt.Errorf("recalc rating: update place %s: %w", placeID, err)
	}
	return nil
}
