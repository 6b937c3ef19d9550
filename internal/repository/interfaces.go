package repository

import (
	"go-lens-solver/pkg/lenses"
	"go-lens-solver/pkg/models"
)

// ResolvedLens pairs a deflection field with the typed parameter set built
// from a caller-supplied parameter map. The field is a stateless singleton;
// only the parameters vary between requests.
type ResolvedLens struct {
	Model  string
	Field  lenses.Field
	Params models.LensParameters
}

// LensModelRepository resolves lens-model names and raw parameter maps into
// deflection fields the solver can consume.
type LensModelRepository interface {
	// Resolve builds the deflection field and typed parameters for a model.
	Resolve(model string, params map[string]float64) (*ResolvedLens, error)

	// Models lists the registered model names.
	Models() []string
}
