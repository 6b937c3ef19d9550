package solver

import (
	"math"
	"sync"

	apperrors "go-lens-solver/internal/errors"
	"go-lens-solver/pkg/models"
)

// coreSolver implements LensSolver by wiring the candidate seeder, the
// lockstep Newton refiner and the root classifier around one deflection
// field. A solver instance is safe for concurrent use: each solve call owns
// its candidate set and touches no shared mutable state.
type coreSolver struct {
	field      DeflectionField
	seeder     CandidateSeeder
	refiner    *newtonRefiner
	classifier *rootClassifier
	pool       *WorkerPool
}

// NewLensSolver creates a solver for the given deflection field using the
// default grid seeder.
func NewLensSolver(field DeflectionField) (LensSolver, error) {
	return NewLensSolverWithSeeder(field, NewGridSeeder())
}

// NewLensSolverWithSeeder creates a solver with a custom candidate seeder.
func NewLensSolverWithSeeder(field DeflectionField, seeder CandidateSeeder) (LensSolver, error) {
	if field == nil {
		return nil, apperrors.NewValidationError("deflection field must not be nil", nil)
	}
	if seeder == nil {
		return nil, apperrors.NewValidationError("candidate seeder must not be nil", nil)
	}

	pool := NewWorkerPool(0) // Use default CPU count
	pool.Start()

	return &coreSolver{
		field:      field,
		seeder:     seeder,
		refiner:    newNewtonRefiner(field),
		classifier: newRootClassifier(field),
		pool:       pool,
	}, nil
}

// Solve locates all images of one source position.
func (s *coreSolver) Solve(source models.Coordinate, params models.LensParameters, opts Options) (models.SolveResult, error) {
	if err := opts.Validate(); err != nil {
		return models.SolveResult{}, err
	}
	if !source.IsFinite() {
		return models.SolveResult{}, apperrors.NewValidationError("source position must be finite", nil)
	}
	return s.solveOne(source, params, opts), nil
}

// solveOne runs the full pipeline for a single source. Validation has
// already happened; this never fails, it reports through the result.
func (s *coreSolver) solveOne(source models.Coordinate, params models.LensParameters, opts Options) models.SolveResult {
	cs := newCandidateSet(s.seeder.Seeds(opts))
	iterations := s.refiner.refine(source, params, cs, opts)
	return s.classifier.classify(source, params, cs, iterations, opts)
}

// SolveBatch solves many sources under one fixed parameter set.
func (s *coreSolver) SolveBatch(sources []models.Coordinate, params models.LensParameters, opts Options) (models.BatchResult, error) {
	return s.solveBatch(sources, func(int) models.LensParameters { return params }, opts)
}

// SolveBatchVaried solves many sources with per-source parameters.
func (s *coreSolver) SolveBatchVaried(sources []models.Coordinate, paramsList []models.LensParameters, opts Options) (models.BatchResult, error) {
	if len(paramsList) != len(sources) {
		return models.BatchResult{}, apperrors.NewValidationError("parameter list length must match source count", nil)
	}
	return s.solveBatch(sources, func(i int) models.LensParameters { return paramsList[i] }, opts)
}

func (s *coreSolver) solveBatch(sources []models.Coordinate, paramsAt func(int) models.LensParameters, opts Options) (models.BatchResult, error) {
	if err := opts.Validate(); err != nil {
		return models.BatchResult{}, err
	}
	for _, src := range sources {
		if !src.IsFinite() {
			return models.BatchResult{}, apperrors.NewValidationError("source positions must be finite", nil)
		}
	}

	results := make([]models.SolveResult, len(sources))
	var wg sync.WaitGroup
	wg.Add(len(sources))
	for i := range sources {
		i := i
		s.pool.Submit(func() {
			defer wg.Done()
			results[i] = s.solveOne(sources[i], paramsAt(i), opts)
		})
	}
	wg.Wait()

	return models.BatchResult{Results: results}, nil
}

// EstimateAccuracy returns the expected positional accuracy of image
// positions: Newton refinement halves the positional error at least once
// per iteration starting from the grid cell scale, floored at the
// convergence tolerance.
func (s *coreSolver) EstimateAccuracy(opts Options) float64 {
	if opts.GridResolution <= 0 || opts.BoundingHalfWidth <= 0 || opts.MaxIterations <= 0 {
		return math.NaN()
	}
	est := opts.cellSize() * math.Pow(0.5, float64(opts.MaxIterations))
	if est < opts.ConvergenceTol {
		est = opts.ConvergenceTol
	}
	return est
}

// Close shuts down the solver's worker pool.
func (s *coreSolver) Close() error {
	s.pool.Close()
	return nil
}
