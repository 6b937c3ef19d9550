package solver

import (
	"testing"

	"go-lens-solver/pkg/models"
)

func TestGridSeeder_CountAndBounds(t *testing.T) {
	opts := DefaultOptions().WithGridResolution(8).WithBoundingHalfWidth(2)
	seeds := NewGridSeeder().Seeds(opts)

	if len(seeds) != 64 {
		t.Fatalf("Expected 64 seeds, got %d", len(seeds))
	}
	for _, s := range seeds {
		if !opts.inDomain(s.X, s.Y) {
			t.Errorf("Seed %+v outside the bounding box", s)
		}
	}
}

func TestGridSeeder_CellCenters(t *testing.T) {
	opts := DefaultOptions().WithGridResolution(2).WithBoundingHalfWidth(1)
	seeds := NewGridSeeder().Seeds(opts)

	expected := []models.Coordinate{
		{X: -0.5, Y: -0.5},
		{X: 0.5, Y: -0.5},
		{X: -0.5, Y: 0.5},
		{X: 0.5, Y: 0.5},
	}
	if len(seeds) != len(expected) {
		t.Fatalf("Expected %d seeds, got %d", len(expected), len(seeds))
	}
	for i, want := range expected {
		if seeds[i] != want {
			t.Errorf("Seed %d: expected %+v, got %+v", i, want, seeds[i])
		}
	}
}

func TestGridSeeder_AvoidsOrigin(t *testing.T) {
	// Even resolutions put cell centers off the origin, where many lens
	// models are singular.
	opts := DefaultOptions().WithGridResolution(24)
	for _, s := range NewGridSeeder().Seeds(opts) {
		if s.X == 0 && s.Y == 0 {
			t.Fatal("Grid seeder placed a seed exactly at the origin")
		}
	}
}

func TestGridSeeder_JitterDeterministic(t *testing.T) {
	opts := DefaultOptions().WithGridResolution(6).WithJitter(0.8, 1234)

	first := NewGridSeeder().Seeds(opts)
	second := NewGridSeeder().Seeds(opts)

	if len(first) != len(second) {
		t.Fatalf("Seed counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Seed %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGridSeeder_JitterChangesWithSeed(t *testing.T) {
	base := DefaultOptions().WithGridResolution(6)
	a := NewGridSeeder().Seeds(base.WithJitter(0.8, 1))
	b := NewGridSeeder().Seeds(base.WithJitter(0.8, 2))

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected different jitter for different random seeds")
	}
}

func TestGridSeeder_JitterStaysNearCell(t *testing.T) {
	opts := DefaultOptions().WithGridResolution(6).WithJitter(1.0, 7)
	cell := opts.cellSize()
	plain := NewGridSeeder().Seeds(opts.WithJitter(0, 0))
	jittered := NewGridSeeder().Seeds(opts)

	for i := range plain {
		if dx := jittered[i].X - plain[i].X; dx > cell/2 || dx < -cell/2 {
			t.Errorf("Seed %d jittered too far in x: %f", i, dx)
		}
		if dy := jittered[i].Y - plain[i].Y; dy > cell/2 || dy < -cell/2 {
			t.Errorf("Seed %d jittered too far in y: %f", i, dy)
		}
	}
}

func TestHaltonSeeder_CountAndBounds(t *testing.T) {
	opts := DefaultOptions().WithGridResolution(10).WithBoundingHalfWidth(1.5)
	seeds := NewHaltonSeeder().Seeds(opts)

	if len(seeds) != 100 {
		t.Fatalf("Expected 100 seeds, got %d", len(seeds))
	}
	for _, s := range seeds {
		if !opts.inDomain(s.X, s.Y) {
			t.Errorf("Seed %+v outside the bounding box", s)
		}
	}
}

func TestHaltonSeeder_Deterministic(t *testing.T) {
	opts := DefaultOptions().WithGridResolution(9)
	first := NewHaltonSeeder().Seeds(opts)
	second := NewHaltonSeeder().Seeds(opts)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Seed %d differs between runs", i)
		}
	}
}

func TestHaltonSeeder_DistinctSeeds(t *testing.T) {
	seeds := NewHaltonSeeder().Seeds(DefaultOptions().WithGridResolution(8))
	seen := make(map[models.Coordinate]bool, len(seeds))
	for _, s := range seeds {
		if seen[s] {
			t.Fatalf("Duplicate Halton seed %+v", s)
		}
		seen[s] = true
	}
}

func TestSeederNames(t *testing.T) {
	if name := NewGridSeeder().GetSeederName(); name != "grid_seeder" {
		t.Errorf("Unexpected grid seeder name %q", name)
	}
	if name := NewHaltonSeeder().GetSeederName(); name != "halton_seeder" {
		t.Errorf("Unexpected halton seeder name %q", name)
	}
}
