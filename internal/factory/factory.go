package factory

import (
	"fmt"

	"go-lens-solver/internal/solver"
)

// SeederType represents different candidate seeding schemes
type SeederType string

const (
	// GridSeeder lays seeds on a regular grid
	GridSeeder SeederType = "grid"
	// HaltonSeeder uses a quasi-random low-discrepancy sequence
	HaltonSeeder SeederType = "halton"
)

// SeederFactory creates candidate seeders
type SeederFactory interface {
	CreateSeeder(seederType SeederType) (solver.CandidateSeeder, error)
}

// SolverFactory creates lens solvers bound to a deflection field
type SolverFactory interface {
	CreateSolver(field solver.DeflectionField, seederType SeederType) (solver.LensSolver, error)
}

// seederFactory implements SeederFactory
type seederFactory struct{}

// NewSeederFactory creates a new seeder factory
func NewSeederFactory() SeederFactory {
	return &seederFactory{}
}

// CreateSeeder creates a seeder based on the specified type
func (f *seederFactory) CreateSeeder(seederType SeederType) (solver.CandidateSeeder, error) {
	switch seederType {
	case GridSeeder, "":
		return solver.NewGridSeeder(), nil
	case HaltonSeeder:
		return solver.NewHaltonSeeder(), nil
	default:
		return nil, fmt.Errorf("unsupported seeder type: %s", seederType)
	}
}

// solverFactory implements SolverFactory
type solverFactory struct {
	seeders SeederFactory
}

// NewSolverFactory creates a new solver factory
func NewSolverFactory() SolverFactory {
	return &solverFactory{seeders: NewSeederFactory()}
}

// CreateSolver creates a solver for the given field and seeding scheme
func (f *solverFactory) CreateSolver(field solver.DeflectionField, seederType SeederType) (solver.LensSolver, error) {
	seeder, err := f.seeders.CreateSeeder(seederType)
	if err != nil {
		return nil, err
	}
	return solver.NewLensSolverWithSeeder(field, seeder)
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	SeederFactory SeederFactory
	SolverFactory SolverFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory() *ComponentFactory {
	return &ComponentFactory{
		SeederFactory: NewSeederFactory(),
		SolverFactory: NewSolverFactory(),
	}
}
