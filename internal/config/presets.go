package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"go-lens-solver/internal/solver"
)

// SolverPreset is the TOML shape of a named solver configuration. Omitted
// fields fall back to the solver defaults, so preset files only need to
// spell out what they change.
type SolverPreset struct {
	GridResolution    *int     `toml:"grid_resolution"`
	BoundingHalfWidth *float64 `toml:"bounding_half_width"`
	Jitter            *float64 `toml:"jitter"`
	RandomSeed        *int64   `toml:"random_seed"`
	MaxIterations     *int     `toml:"max_iterations"`
	ConvergenceTol    *float64 `toml:"convergence_tol"`
	MergeDistance     *float64 `toml:"merge_distance"`
	DampingThreshold  *float64 `toml:"damping_threshold"`
}

// presetsFile is the top-level TOML document: a table of named presets.
type presetsFile struct {
	Presets map[string]SolverPreset `toml:"presets"`
}

// LoadPresets reads named solver presets from a TOML file and converts
// each into validated solver options. An empty path yields an empty map.
func LoadPresets(path string) (map[string]solver.Options, error) {
	if path == "" {
		return map[string]solver.Options{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read solver presets: %w", err)
	}

	var file presetsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse solver presets: %w", err)
	}

	presets := make(map[string]solver.Options, len(file.Presets))
	for name, preset := range file.Presets {
		opts := preset.Apply(solver.DefaultOptions())
		if err := opts.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		presets[name] = opts
	}
	return presets, nil
}

// Apply overlays the preset's set fields onto base options.
func (p SolverPreset) Apply(base solver.Options) solver.Options {
	if p.GridResolution != nil {
		base.GridResolution = *p.GridResolution
	}
	if p.BoundingHalfWidth != nil {
		base.BoundingHalfWidth = *p.BoundingHalfWidth
	}
	if p.Jitter != nil {
		base.Jitter = *p.Jitter
	}
	if p.RandomSeed != nil {
		base.RandomSeed = *p.RandomSeed
	}
	if p.MaxIterations != nil {
		base.MaxIterations = *p.MaxIterations
	}
	if p.ConvergenceTol != nil {
		base.ConvergenceTol = *p.ConvergenceTol
	}
	if p.MergeDistance != nil {
		base.MergeDistance = *p.MergeDistance
	}
	if p.DampingThreshold != nil {
		base.DampingThreshold = *p.DampingThreshold
	}
	return base
}
