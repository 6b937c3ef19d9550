package solver

import "go-lens-solver/pkg/models"

// DeflectionField supplies the deflection vector alpha and its spatial
// Jacobian for a lens mass model. Implementations must be pure functions of
// (position, parameters): no hidden state. Where the field is undefined
// (e.g. exactly at a point mass) the sample carries NaN components; the
// refiner's finiteness checks turn such candidates terminal.
type DeflectionField interface {
	Evaluate(theta models.Coordinate, params models.LensParameters) models.FieldSample
}

// BatchDeflectionField is an optional upgrade interface for fields that can
// evaluate a whole slice of positions in one call. The engine type-asserts
// it and falls back to a per-point loop otherwise.
type BatchDeflectionField interface {
	DeflectionField
	EvaluateBatch(thetas []models.Coordinate, params models.LensParameters) []models.FieldSample
}

// CandidateSeeder produces the initial coarse set of image-plane seeds
// covering the search domain. Seeds must be deterministic for a fixed
// random seed in the options.
type CandidateSeeder interface {
	Seeds(opts Options) []models.Coordinate
	GetSeederName() string
}

// LensSolver finds every image-plane position mapping to a given source
// position through the lens equation beta = theta - alpha(theta).
type LensSolver interface {
	// Solve locates all images of one source position.
	Solve(source models.Coordinate, params models.LensParameters, opts Options) (models.SolveResult, error)

	// SolveBatch solves many sources under one fixed parameter set,
	// returning results in input order.
	SolveBatch(sources []models.Coordinate, params models.LensParameters, opts Options) (models.BatchResult, error)

	// SolveBatchVaried solves many sources with per-source parameters;
	// paramsList must match the length of sources.
	SolveBatchVaried(sources []models.Coordinate, paramsList []models.LensParameters, opts Options) (models.BatchResult, error)

	// EstimateAccuracy returns the expected positional accuracy of image
	// positions under the given options.
	EstimateAccuracy(opts Options) float64

	// Lifecycle management
	Close() error
}
