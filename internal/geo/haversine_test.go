package geo

import (
	"math"
	"testing"
)

func TestHaversineKm_ZeroDistance(t *testing.T) {
	coords := [][2]float64{
		{0, 0},
		{41.0082, 28.9784},
		{-33.8688, 151.2093},
		{90, 0},
	}
	for _, c := range coords {
		if d := HaversineKm(c[0], c[1], c[0], c[1]); d != 0 {
			t.Errorf("distance from (%v,%v) to itself = %v, want 0", c[0], c[1], d)
		}
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	d1 := HaversineKm(41.0082, 28.9784, 39.9334, 32.8597) // Istanbul -> Ankara
	d2 := HaversineKm(39.9334, 32.8597, 41.0082, 28.9784)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("asymmetric distance: %v vs %v", d1, d2)
	}
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Istanbul to Ankara is roughly 350 km as the crow flies.
	d := HaversineKm(41.0082, 28.9784, 39.9334, 32.8597)
	if d < 330 || d > 370 {
		t.Errorf("Istanbul-Ankara distance = %v km, want ~350", d)
	}
}

func TestHaversineKm_Antipodal(t *testing.T) {
	// Antipodal points sit half the circumference apart; the clamp keeps
	// the result finite instead of NaN from a domain error.
	d := HaversineKm(0, 0, 0, 180)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		t.Fatalf("antipodal distance not finite: %v", d)
	}
	want := math.Pi * 6371
	if math.Abs(d-want) > 1 {
		t.Errorf("antipodal distance = %v, want %v", d, want)
	}
}

func TestHaversineKm_NonNegative(t *testing.T) {
	pts := [][4]float64{
		{12.3, -45.6, -78.9, 101.1},
		{0.0001, 0.0001, 0.0002, 0.0002},
		{-90, 0, 90, 0},
	}
	for _, p := range pts {
		d := HaversineKm(p[0], p[1], p[2], p[3])
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			t.Errorf("HaversineKm(%v) = %v, want finite non-negative", p, d)
		}
	}
}
