package lenses

import "go-lens-solver/pkg/models"

// CompositeParams is the parameter list of a Composite field, aligned with
// the component order given at construction.
type CompositeParams []models.LensParameters

// Composite sums the deflections of several component fields, e.g. an
// isothermal galaxy plus external shear. Deflection fields are linear in
// the mass distribution, so both alpha and its Jacobian add; an undefined
// component sample makes the whole sample undefined through NaN
// propagation.
type Composite struct {
	components []Field
}

// NewComposite creates a composite deflection field over the given
// components.
func NewComposite(components ...Field) *Composite {
	return &Composite{components: components}
}

// Evaluate returns the summed deflection and Jacobian at theta.
func (c *Composite) Evaluate(theta models.Coordinate, params models.LensParameters) models.FieldSample {
	p, ok := params.(CompositeParams)
	if !ok || len(p) != len(c.components) {
		return models.UndefinedSample()
	}

	var sum models.FieldSample
	for i, comp := range c.components {
		s := comp.Evaluate(theta, p[i])
		sum.Alpha.X += s.Alpha.X
		sum.Alpha.Y += s.Alpha.Y
		sum.Jacobian.XX += s.Jacobian.XX
		sum.Jacobian.XY += s.Jacobian.XY
		sum.Jacobian.YX += s.Jacobian.YX
		sum.Jacobian.YY += s.Jacobian.YY
	}
	return sum
}

// EvaluateBatch evaluates the field over a slice of positions.
func (c *Composite) EvaluateBatch(thetas []models.Coordinate, params models.LensParameters) []models.FieldSample {
	return evaluateBatch(c, thetas, params)
}
