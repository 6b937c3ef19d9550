package strategy

import "go-lens-solver/internal/solver"

// SolveStrategy defines the interface for different solve configurations
type SolveStrategy interface {
	Options() solver.Options
	GetStrategyName() string
}

// AccurateSolveStrategy is the default balance of grid density and
// iteration budget.
type AccurateSolveStrategy struct{}

// NewAccurateSolveStrategy creates the default solve strategy
func NewAccurateSolveStrategy() SolveStrategy {
	return &AccurateSolveStrategy{}
}

// Options returns the default solver options
func (s *AccurateSolveStrategy) Options() solver.Options {
	return solver.DefaultOptions()
}

// GetStrategyName returns the strategy name
func (s *AccurateSolveStrategy) GetStrategyName() string {
	return "accurate"
}

// FastSolveStrategy trades grid density and tolerance for speed, e.g.
// inside optimization loops that only need approximate image positions.
type FastSolveStrategy struct{}

// NewFastSolveStrategy creates a fast solve strategy
func NewFastSolveStrategy() SolveStrategy {
	return &FastSolveStrategy{}
}

// Options returns reduced-cost solver options
func (s *FastSolveStrategy) Options() solver.Options {
	return solver.FastOptions()
}

// GetStrategyName returns the strategy name
func (s *FastSolveStrategy) GetStrategyName() string {
	return "fast"
}

// DenseSolveStrategy uses a fine grid for sources near caustics, where
// image basins shrink and a coarse grid risks missing images.
type DenseSolveStrategy struct{}

// NewDenseSolveStrategy creates a dense solve strategy
func NewDenseSolveStrategy() SolveStrategy {
	return &DenseSolveStrategy{}
}

// Options returns high-density solver options
func (s *DenseSolveStrategy) Options() solver.Options {
	return solver.DenseOptions()
}

// GetStrategyName returns the strategy name
func (s *DenseSolveStrategy) GetStrategyName() string {
	return "dense"
}

// PresetSolveStrategy wraps externally configured options, e.g. loaded from
// a TOML preset file, under a named mode.
type PresetSolveStrategy struct {
	name string
	opts solver.Options
}

// NewPresetSolveStrategy creates a strategy from explicit options
func NewPresetSolveStrategy(name string, opts solver.Options) SolveStrategy {
	return &PresetSolveStrategy{name: name, opts: opts}
}

// Options returns the preset options
func (s *PresetSolveStrategy) Options() solver.Options {
	return s.opts
}

// GetStrategyName returns the strategy name
func (s *PresetSolveStrategy) GetStrategyName() string {
	return s.name
}

// SolveContext manages the active solve strategy
type SolveContext struct {
	strategy SolveStrategy
}

// NewSolveContext creates a new solve context
func NewSolveContext(strategy SolveStrategy) *SolveContext {
	return &SolveContext{
		strategy: strategy,
	}
}

// SetStrategy changes the solve strategy
func (c *SolveContext) SetStrategy(strategy SolveStrategy) {
	c.strategy = strategy
}

// CurrentOptions returns the options of the active strategy
func (c *SolveContext) CurrentOptions() solver.Options {
	return c.strategy.Options()
}

// GetCurrentStrategy returns the current strategy name
func (c *SolveContext) GetCurrentStrategy() string {
	return c.strategy.GetStrategyName()
}
