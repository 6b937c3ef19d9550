package solver

import (
	"math"

	apperrors "go-lens-solver/internal/errors"
)

// Options provides the full configuration of a solve call. All lengths are
// in the angular units of the lens model, typically scaled so the Einstein
// radius is of order one.
type Options struct {
	// Seeding
	GridResolution    int     // seeds per axis, GridResolution^2 total
	BoundingHalfWidth float64 // half-width of the square search box
	Jitter            float64 // 0..1 fraction of a grid cell
	RandomSeed        int64   // seed for jitter, ignored when Jitter == 0

	// Refinement
	MaxIterations    int     // global lockstep iteration cap
	ConvergenceTol   float64 // epsilon: source-plane residual bound
	DampingThreshold float64 // relative determinant floor triggering damping

	// Classification
	MergeDistance float64 // delta: image-plane dedup distance
}

// DefaultOptions returns the default solver options. The tolerances are
// calibrated to a bounding box of a few Einstein radii: epsilon is far below
// the grid cell size, and the merge distance sits well above epsilon so that
// duplicate converged candidates collapse to one image.
func DefaultOptions() Options {
	return Options{
		GridResolution:    24,
		BoundingHalfWidth: 2.5,
		Jitter:            0,
		RandomSeed:        0,
		MaxIterations:     50,
		ConvergenceTol:    1e-9,
		DampingThreshold:  1e-6,
		MergeDistance:     1e-4,
	}
}

// FastOptions returns options for quick, lower-confidence solves.
func FastOptions() Options {
	opts := DefaultOptions()
	opts.GridResolution = 12
	opts.MaxIterations = 25
	opts.ConvergenceTol = 1e-7
	return opts
}

// DenseOptions returns options for solves near caustics, where basins of
// attraction shrink and a coarse grid may miss images.
func DenseOptions() Options {
	opts := DefaultOptions()
	opts.GridResolution = 48
	opts.MaxIterations = 80
	return opts
}

// WithBoundingHalfWidth sets the search box half-width.
func (opts Options) WithBoundingHalfWidth(halfWidth float64) Options {
	opts.BoundingHalfWidth = halfWidth
	return opts
}

// WithGridResolution sets the per-axis seed count.
func (opts Options) WithGridResolution(resolution int) Options {
	opts.GridResolution = resolution
	return opts
}

// WithJitter sets the seed jitter fraction and its random seed.
func (opts Options) WithJitter(jitter float64, seed int64) Options {
	opts.Jitter = jitter
	opts.RandomSeed = seed
	return opts
}

// WithTolerances sets the convergence tolerance and merge distance together,
// keeping their relative calibration explicit at the call site.
func (opts Options) WithTolerances(convergenceTol, mergeDistance float64) Options {
	opts.ConvergenceTol = convergenceTol
	opts.MergeDistance = mergeDistance
	return opts
}

// WithMaxIterations sets the lockstep iteration cap.
func (opts Options) WithMaxIterations(n int) Options {
	opts.MaxIterations = n
	return opts
}

// Validate fails fast on invalid configuration, before any candidates are
// generated.
func (opts Options) Validate() error {
	if opts.GridResolution <= 0 {
		return apperrors.NewValidationError("grid resolution must be positive", nil)
	}
	if opts.GridResolution > 4096 {
		return apperrors.NewValidationError("grid resolution too large (max 4096 per axis)", nil)
	}
	if !(opts.BoundingHalfWidth > 0) || math.IsInf(opts.BoundingHalfWidth, 0) {
		return apperrors.NewValidationError("bounding half-width must be positive and finite", nil)
	}
	if opts.Jitter < 0 || opts.Jitter > 1 {
		return apperrors.NewValidationError("jitter must be in [0, 1]", nil)
	}
	if opts.MaxIterations <= 0 {
		return apperrors.NewValidationError("max iterations must be positive", nil)
	}
	if !(opts.ConvergenceTol > 0) {
		return apperrors.NewValidationError("convergence tolerance must be positive", nil)
	}
	if !(opts.MergeDistance > 0) {
		return apperrors.NewValidationError("merge distance must be positive", nil)
	}
	if !(opts.DampingThreshold > 0) {
		return apperrors.NewValidationError("damping threshold must be positive", nil)
	}
	return nil
}

// cellSize returns the grid cell width implied by the options.
func (opts Options) cellSize() float64 {
	return 2 * opts.BoundingHalfWidth / float64(opts.GridResolution)
}

// inDomain reports whether a position lies inside the search box.
func (opts Options) inDomain(x, y float64) bool {
	return x >= -opts.BoundingHalfWidth && x <= opts.BoundingHalfWidth &&
		y >= -opts.BoundingHalfWidth && y <= opts.BoundingHalfWidth
}
