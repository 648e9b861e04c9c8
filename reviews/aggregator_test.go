package reviews

import (
	"strings"
	"testing"

	"wayfare/models"
)

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.AverageRating != 0 || summary.RatingsQuantity != 0 {
		t.Fatalf("expected {0, 0}, got %+v", summary)
	}
}

func TestSummarizeScenario(t *testing.T) {
	// [5,4,3] -> {4.0, 3}; drop the 3 -> {4.5, 2}; drop the rest -> {0, 0}
	steps := []struct {
		ratings   []int
		wantAvg   float64
		wantCount int
	}{
		{[]int{5, 4, 3}, 4.0, 3},
		{[]int{5, 4}, 4.5, 2},
		{[]int{}, 0, 0},
	}

	for _, step := range steps {
		got := Summarize(step.ratings)
		if got.AverageRating != step.wantAvg || got.RatingsQuantity != step.wantCount {
			t.Errorf("Summarize(%v) = %+v, want avg=%v count=%d",
				step.ratings, got, step.wantAvg, step.wantCount)
		}
	}
}

func TestSummarizeRounding(t *testing.T) {
	cases := []struct {
		ratings []int
		want    float64
	}{
		// 14/3 = 4.666... -> 4.7
		{[]int{5, 5, 4}, 4.7},
		// 13/3 = 4.333... -> 4.3
		{[]int{5, 4, 4}, 4.3},
		// 17/4 = 4.25 -> 4.3 (half away from zero)
		{[]int{5, 5, 4, 3}, 4.3},
		// 7/2 = 3.5 -> 3.5
		{[]int{4, 3}, 3.5},
		{[]int{1}, 1.0},
		{[]int{5}, 5.0},
	}

	for _, c := range cases {
		got := Summarize(c.ratings)
		if got.AverageRating != c.want {
			t.Errorf("Summarize(%v).AverageRating = %v, want %v", c.ratings, got.AverageRating, c.want)
		}
		if got.RatingsQuantity != len(c.ratings) {
			t.Errorf("Summarize(%v).RatingsQuantity = %d, want %d", c.ratings, got.RatingsQuantity, len(c.ratings))
		}
	}
}

func TestRoundRating(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{4.666666, 4.7},
		{4.25, 4.3},
		{4.649, 4.6},
		{4.0, 4.0},
		{0, 0},
	}
	for _, c := range cases {
		if got := RoundRating(c.in); got != c.want {
			t.Errorf("RoundRating(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestValidateReviewInput(t *testing.T) {
	long := make([]byte, 1001)
	for i := range long {
		long[i] = 'a'
	}

	cases := []struct {
		name    string
		rating  int
		comment string
		ok      bool
	}{
		{"valid low boundary", 1, "fine", true},
		{"valid high boundary", 5, "great", true},
		{"rating zero", 0, "bad", false},
		{"rating six", 6, "too good", false},
		{"empty comment", 3, "", false},
		{"comment too long", 3, string(long), false},
	}

	for _, c := range cases {
		if _, ok := validateReviewInput(c.rating, c.comment); ok != c.ok {
			t.Errorf("%s: validateReviewInput(%d, len=%d) ok=%v, want %v",
				c.name, c.rating, len(c.comment), ok, c.ok)
		}
	}
}

func TestValidateReviewInputMultibyte(t *testing.T) {
	// 400 three-byte runes: over 1000 bytes but well under the rune limit.
	comment := strings.Repeat("好", 400)
	if msg, ok := validateReviewInput(4, comment); !ok {
		t.Fatalf("multibyte comment of 400 runes rejected: %s", msg)
	}

	over := strings.Repeat("好", models.MaxReviewLength+1)
	if _, ok := validateReviewInput(4, over); ok {
		t.Fatal("comment over the rune limit accepted")
	}
}

func TestFlagMissingPlaces(t *testing.T) {
	reviews := []models.Review{
		{ReviewID: "r1", PlaceID: "p1"},
		{ReviewID: "r2", PlaceID: "gone"},
		{ReviewID: "r3", PlaceID: "p1"},
	}

	flagMissingPlaces(reviews, map[string]bool{"p1": true})

	if reviews[0].Dangling || reviews[2].Dangling {
		t.Error("reviews with a live place must not be marked dangling")
	}
	if !reviews[1].Dangling {
		t.Error("review whose place is gone must be marked dangling")
	}
}
