package solver

import "testing"

func TestDefaultOptions_Valid(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("Expected default options to validate, got %v", err)
	}
}

func TestPresetOptions_Valid(t *testing.T) {
	if err := FastOptions().Validate(); err != nil {
		t.Errorf("Expected fast options to validate, got %v", err)
	}
	if err := DenseOptions().Validate(); err != nil {
		t.Errorf("Expected dense options to validate, got %v", err)
	}
}

func TestOptions_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero resolution", DefaultOptions().WithGridResolution(0)},
		{"negative resolution", DefaultOptions().WithGridResolution(-4)},
		{"huge resolution", DefaultOptions().WithGridResolution(5000)},
		{"zero half width", DefaultOptions().WithBoundingHalfWidth(0)},
		{"negative half width", DefaultOptions().WithBoundingHalfWidth(-1)},
		{"negative jitter", DefaultOptions().WithJitter(-0.1, 0)},
		{"jitter above one", DefaultOptions().WithJitter(1.5, 0)},
		{"zero max iterations", DefaultOptions().WithMaxIterations(0)},
		{"zero tolerance", DefaultOptions().WithTolerances(0, 1e-4)},
		{"negative tolerance", DefaultOptions().WithTolerances(-1e-9, 1e-4)},
		{"zero merge distance", DefaultOptions().WithTolerances(1e-9, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.Validate(); err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
		})
	}
}

func TestOptions_Validate_ZeroDampingThreshold(t *testing.T) {
	opts := DefaultOptions()
	opts.DampingThreshold = 0
	if err := opts.Validate(); err == nil {
		t.Error("Expected validation error for zero damping threshold")
	}
}

func TestOptions_Builders(t *testing.T) {
	opts := DefaultOptions().
		WithGridResolution(32).
		WithBoundingHalfWidth(3.0).
		WithJitter(0.5, 42).
		WithMaxIterations(100).
		WithTolerances(1e-8, 1e-3)

	if opts.GridResolution != 32 {
		t.Errorf("Expected resolution 32, got %d", opts.GridResolution)
	}
	if opts.BoundingHalfWidth != 3.0 {
		t.Errorf("Expected half width 3.0, got %f", opts.BoundingHalfWidth)
	}
	if opts.Jitter != 0.5 || opts.RandomSeed != 42 {
		t.Errorf("Expected jitter 0.5 with seed 42, got %f/%d", opts.Jitter, opts.RandomSeed)
	}
	if opts.MaxIterations != 100 {
		t.Errorf("Expected 100 iterations, got %d", opts.MaxIterations)
	}
	if opts.ConvergenceTol != 1e-8 || opts.MergeDistance != 1e-3 {
		t.Errorf("Unexpected tolerances %g/%g", opts.ConvergenceTol, opts.MergeDistance)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("Expected built options to validate, got %v", err)
	}
}

func TestOptions_CellSize(t *testing.T) {
	opts := DefaultOptions().WithGridResolution(10).WithBoundingHalfWidth(5)
	if got := opts.cellSize(); got != 1.0 {
		t.Errorf("Expected cell size 1.0, got %f", got)
	}
}

func TestOptions_InDomain(t *testing.T) {
	opts := DefaultOptions().WithBoundingHalfWidth(1)
	if !opts.inDomain(0.5, -0.5) {
		t.Error("Expected (0.5, -0.5) to be in domain")
	}
	if !opts.inDomain(1, 1) {
		t.Error("Expected box corner to be in domain")
	}
	if opts.inDomain(1.01, 0) {
		t.Error("Expected (1.01, 0) to be out of domain")
	}
}
