package lenses

import "go-lens-solver/pkg/models"

// PointMassParams parameterizes a point-mass lens.
type PointMassParams struct {
	// EinsteinRadius is the characteristic angular scale theta_E.
	EinsteinRadius float64 `json:"einstein_radius"`
	// Center is the lens position on the image plane.
	Center models.Coordinate `json:"center"`
}

// PointMass is the point-mass deflection field
// alpha(theta) = theta_E^2 * theta / |theta|^2, undefined at the center.
type PointMass struct{}

// NewPointMass creates a point-mass deflection field.
func NewPointMass() *PointMass {
	return &PointMass{}
}

// Evaluate returns the deflection and its Jacobian at theta.
func (pm *PointMass) Evaluate(theta models.Coordinate, params models.LensParameters) models.FieldSample {
	p, ok := params.(PointMassParams)
	if !ok {
		return models.UndefinedSample()
	}

	dx := theta.X - p.Center.X
	dy := theta.Y - p.Center.Y
	r2 := dx*dx + dy*dy
	if r2 == 0 {
		return models.UndefinedSample()
	}

	te2 := p.EinsteinRadius * p.EinsteinRadius
	inv := te2 / r2
	inv2 := te2 / (r2 * r2)

	return models.FieldSample{
		Alpha: models.Coordinate{X: inv * dx, Y: inv * dy},
		Jacobian: models.Jacobian{
			XX: inv2 * (dy*dy - dx*dx),
			XY: -2 * inv2 * dx * dy,
			YX: -2 * inv2 * dx * dy,
			YY: inv2 * (dx*dx - dy*dy),
		},
	}
}

// EvaluateBatch evaluates the field over a slice of positions.
func (pm *PointMass) EvaluateBatch(thetas []models.Coordinate, params models.LensParameters) []models.FieldSample {
	return evaluateBatch(pm, thetas, params)
}
