package lenses

import "go-lens-solver/pkg/models"

// ShearParams parameterizes an external shear field.
type ShearParams struct {
	Gamma1 float64 `json:"gamma_1"`
	Gamma2 float64 `json:"gamma_2"`
}

// ExternalShear is the linear deflection of an external shear,
// alpha = (g1 x + g2 y, g2 x - g1 y). Its Jacobian is constant, so it is
// defined everywhere; on its own it produces no multiple images and is
// meant to perturb another model inside a Composite.
type ExternalShear struct{}

// NewExternalShear creates an external shear deflection field.
func NewExternalShear() *ExternalShear {
	return &ExternalShear{}
}

// Evaluate returns the deflection and its Jacobian at theta.
func (e *ExternalShear) Evaluate(theta models.Coordinate, params models.LensParameters) models.FieldSample {
	p, ok := params.(ShearParams)
	if !ok {
		return models.UndefinedSample()
	}

	return models.FieldSample{
		Alpha: models.Coordinate{
			X: p.Gamma1*theta.X + p.Gamma2*theta.Y,
			Y: p.Gamma2*theta.X - p.Gamma1*theta.Y,
		},
		Jacobian: models.Jacobian{
			XX: p.Gamma1,
			XY: p.Gamma2,
			YX: p.Gamma2,
			YY: -p.Gamma1,
		},
	}
}

// EvaluateBatch evaluates the field over a slice of positions.
func (e *ExternalShear) EvaluateBatch(thetas []models.Coordinate, params models.LensParameters) []models.FieldSample {
	return evaluateBatch(e, thetas, params)
}
