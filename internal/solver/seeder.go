package solver

import (
	"math/rand"

	"go-lens-solver/pkg/models"
)

// gridSeeder lays seeds at the cell centers of a regular grid over the
// bounding box. Cell centers keep seeds off the box edges and, for even
// resolutions, off the origin, where many lens models are singular.
// Optional jitter displaces each seed by a fraction of the cell size to
// break symmetry degeneracies; it is driven by a seeded generator so that
// repeated calls with the same options produce identical seeds.
type gridSeeder struct{}

// NewGridSeeder creates the default grid candidate seeder.
func NewGridSeeder() CandidateSeeder {
	return &gridSeeder{}
}

// Seeds generates GridResolution^2 candidate coordinates.
func (g *gridSeeder) Seeds(opts Options) []models.Coordinate {
	n := opts.GridResolution
	cell := opts.cellSize()
	seeds := make([]models.Coordinate, 0, n*n)

	var rng *rand.Rand
	if opts.Jitter > 0 {
		rng = rand.New(rand.NewSource(opts.RandomSeed))
	}

	for j := 0; j < n; j++ {
		y := -opts.BoundingHalfWidth + (float64(j)+0.5)*cell
		for i := 0; i < n; i++ {
			x := -opts.BoundingHalfWidth + (float64(i)+0.5)*cell
			if rng != nil {
				x += (rng.Float64() - 0.5) * opts.Jitter * cell
				y2 := y + (rng.Float64()-0.5)*opts.Jitter*cell
				seeds = append(seeds, models.Coordinate{X: x, Y: y2})
				continue
			}
			seeds = append(seeds, models.Coordinate{X: x, Y: y})
		}
	}
	return seeds
}

// GetSeederName returns the seeder name
func (g *gridSeeder) GetSeederName() string {
	return "grid_seeder"
}

// haltonSeeder covers the bounding box with a quasi-random Halton sequence
// (bases 2 and 3). Low-discrepancy seeds avoid the alignment artifacts of a
// regular grid without giving up determinism; the Jitter and RandomSeed
// options are ignored.
type haltonSeeder struct{}

// NewHaltonSeeder creates a quasi-random candidate seeder.
func NewHaltonSeeder() CandidateSeeder {
	return &haltonSeeder{}
}

// Seeds generates GridResolution^2 candidate coordinates.
func (h *haltonSeeder) Seeds(opts Options) []models.Coordinate {
	count := opts.GridResolution * opts.GridResolution
	width := 2 * opts.BoundingHalfWidth
	seeds := make([]models.Coordinate, count)
	for i := 0; i < count; i++ {
		// Index starts at 1: element 0 of a Halton sequence is the origin.
		u := haltonElement(i+1, 2)
		v := haltonElement(i+1, 3)
		seeds[i] = models.Coordinate{
			X: -opts.BoundingHalfWidth + u*width,
			Y: -opts.BoundingHalfWidth + v*width,
		}
	}
	return seeds
}

// GetSeederName returns the seeder name
func (h *haltonSeeder) GetSeederName() string {
	return "halton_seeder"
}

// haltonElement returns element i of the van der Corput sequence in the
// given base, a value in (0, 1).
func haltonElement(i, base int) float64 {
	f := 1.0
	r := 0.0
	for i > 0 {
		f /= float64(base)
		r += f * float64(i%base)
		i /= base
	}
	return r
}
