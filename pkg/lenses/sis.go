package lenses

import (
	"math"

	"go-lens-solver/pkg/models"
)

// SISParams parameterizes a singular isothermal sphere.
type SISParams struct {
	EinsteinRadius float64           `json:"einstein_radius"`
	Center         models.Coordinate `json:"center"`
}

// SIS is the singular isothermal sphere: a constant-magnitude radial
// deflection alpha(theta) = theta_E * theta / |theta|, undefined at the
// center.
type SIS struct{}

// NewSIS creates a singular isothermal sphere deflection field.
func NewSIS() *SIS {
	return &SIS{}
}

// Evaluate returns the deflection and its Jacobian at theta.
func (s *SIS) Evaluate(theta models.Coordinate, params models.LensParameters) models.FieldSample {
	p, ok := params.(SISParams)
	if !ok {
		return models.UndefinedSample()
	}

	dx := theta.X - p.Center.X
	dy := theta.Y - p.Center.Y
	r2 := dx*dx + dy*dy
	if r2 == 0 {
		return models.UndefinedSample()
	}
	r := math.Sqrt(r2)
	r3 := r2 * r

	te := p.EinsteinRadius
	return models.FieldSample{
		Alpha: models.Coordinate{X: te * dx / r, Y: te * dy / r},
		Jacobian: models.Jacobian{
			XX: te * dy * dy / r3,
			XY: -te * dx * dy / r3,
			YX: -te * dx * dy / r3,
			YY: te * dx * dx / r3,
		},
	}
}

// EvaluateBatch evaluates the field over a slice of positions.
func (s *SIS) EvaluateBatch(thetas []models.Coordinate, params models.LensParameters) []models.FieldSample {
	return evaluateBatch(s, thetas, params)
}
