package places

import (
	"math"
	"testing"
)

func TestHaversineZeroDistance(t *testing.T) {
	if d := HaversineMeters(48.8566, 2.3522, 48.8566, 2.3522); d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Paris to London is roughly 344 km.
	d := HaversineMeters(48.8566, 2.3522, 51.5074, -0.1278)
	if math.Abs(d-344000) > 5000 {
		t.Fatalf("Paris-London distance = %v m, want ~344000", d)
	}
}

func TestHaversineSymmetry(t *testing.T) {
	a := HaversineMeters(35.6762, 139.6503, 34.6937, 135.5023)
	b := HaversineMeters(34.6937, 135.5023, 35.6762, 139.6503)
	if math.Abs(a-b) > 1e-6 {
		t.Fatalf("distance not symmetric: %v vs %v", a, b)
	}
}
