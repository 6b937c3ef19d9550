// Package lenses provides deflection-field implementations for common lens
// mass models. Every field is a pure function of (position, parameters)
// with an analytic spatial Jacobian, and signals undefined points (e.g.
// exactly at a singular mass center) with NaN sample components. Parameters
// are passed through on every call so optimization loops can vary them
// without rebuilding the field.
package lenses

import "go-lens-solver/pkg/models"

// Field is the deflection-field contract the solver consumes: deflection
// vector plus 2x2 Jacobian at an image-plane position.
type Field interface {
	Evaluate(theta models.Coordinate, params models.LensParameters) models.FieldSample
	EvaluateBatch(thetas []models.Coordinate, params models.LensParameters) []models.FieldSample
}

// evaluateBatch implements the batched contract as a loop over the single
// evaluator; the per-model math is already branch-free so the loop
// vectorizes the same way for every sample.
func evaluateBatch(f Field, thetas []models.Coordinate, params models.LensParameters) []models.FieldSample {
	samples := make([]models.FieldSample, len(thetas))
	for i, t := range thetas {
		samples[i] = f.Evaluate(t, params)
	}
	return samples
}
