package lenses

import (
	"math"

	"go-lens-solver/pkg/models"
)

// NISParams parameterizes a nonsingular (softened) isothermal sphere.
type NISParams struct {
	EinsteinRadius float64           `json:"einstein_radius"`
	CoreRadius     float64           `json:"core_radius"`
	Center         models.Coordinate `json:"center"`
}

// NIS is the nonsingular isothermal sphere
// alpha(theta) = theta_E * theta / sqrt(|theta|^2 + s^2). With a positive
// core radius s the field is smooth everywhere, which makes it the model
// of choice for exercising the solver away from singularities.
type NIS struct{}

// NewNIS creates a nonsingular isothermal sphere deflection field.
func NewNIS() *NIS {
	return &NIS{}
}

// Evaluate returns the deflection and its Jacobian at theta.
func (n *NIS) Evaluate(theta models.Coordinate, params models.LensParameters) models.FieldSample {
	p, ok := params.(NISParams)
	if !ok {
		return models.UndefinedSample()
	}

	dx := theta.X - p.Center.X
	dy := theta.Y - p.Center.Y
	s2 := p.CoreRadius * p.CoreRadius
	q2 := dx*dx + dy*dy + s2
	if q2 == 0 {
		// Zero core radius at the center degenerates to the SIS singularity.
		return models.UndefinedSample()
	}
	q := math.Sqrt(q2)
	q3 := q2 * q

	te := p.EinsteinRadius
	return models.FieldSample{
		Alpha: models.Coordinate{X: te * dx / q, Y: te * dy / q},
		Jacobian: models.Jacobian{
			XX: te * (dy*dy + s2) / q3,
			XY: -te * dx * dy / q3,
			YX: -te * dx * dy / q3,
			YY: te * (dx*dx + s2) / q3,
		},
	}
}

// EvaluateBatch evaluates the field over a slice of positions.
func (n *NIS) EvaluateBatch(thetas []models.Coordinate, params models.LensParameters) []models.FieldSample {
	return evaluateBatch(n, thetas, params)
}
