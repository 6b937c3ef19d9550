package solver

import (
	"math"

	"go-lens-solver/pkg/models"
)

// newtonRefiner drives every candidate toward a zero of the lens-equation
// residual F(theta) = beta - (theta - alpha(theta)) with Newton steps
// derived from the field Jacobian. The whole candidate set advances in
// lockstep: one batched field evaluation per iteration, terminal candidates
// masked out of further updates rather than branched around, so the loop
// shape is identical for every candidate until all are terminal or the
// global iteration cap is hit.
type newtonRefiner struct {
	field DeflectionField
}

func newNewtonRefiner(field DeflectionField) *newtonRefiner {
	return &newtonRefiner{field: field}
}

// refine mutates the candidate set in place and returns the number of
// lockstep iterations actually executed.
func (r *newtonRefiner) refine(source models.Coordinate, params models.LensParameters, cs *candidateSet, opts Options) int {
	iterations := 0
	for k := 0; k < opts.MaxIterations; k++ {
		if cs.allTerminal() {
			break
		}
		samples := r.evaluateAll(cs.positions, params)
		iterations++

		for i := range cs.positions {
			if cs.status[i].IsTerminal() {
				continue
			}
			r.step(source, cs, i, samples[i], opts)
		}
	}

	// The cap is the only clock: whatever still runs is terminal now.
	for i, s := range cs.status {
		if !s.IsTerminal() {
			cs.status[i] = models.StatusMaxIterations
		}
	}
	return iterations
}

// step advances a single running candidate by one Newton update and
// resolves its terminal state if one is reached.
func (r *newtonRefiner) step(source models.Coordinate, cs *candidateSet, i int, sample models.FieldSample, opts Options) {
	if !sample.IsFinite() {
		// Undefined field sample: the candidate sits on a singularity.
		cs.status[i] = models.StatusDiverged
		cs.residuals[i] = math.NaN()
		return
	}

	theta := cs.positions[i]

	// F = beta - (theta - alpha)
	fx := source.X - (theta.X - sample.Alpha.X)
	fy := source.Y - (theta.Y - sample.Alpha.Y)
	res := math.Hypot(fx, fy)
	cs.residuals[i] = res

	if res <= opts.ConvergenceTol {
		cs.status[i] = models.StatusConverged
		return
	}

	// A = I - J_alpha is the Jacobian of the lens mapping; J_F = -A, so the
	// Newton update is theta' = theta + A^{-1} F.
	axx := 1 - sample.Jacobian.XX
	axy := -sample.Jacobian.XY
	ayx := -sample.Jacobian.YX
	ayy := 1 - sample.Jacobian.YY

	sx, sy := solveStep(axx, axy, ayx, ayy, fx, fy, opts.DampingThreshold)

	next := models.Coordinate{X: theta.X + sx, Y: theta.Y + sy}
	if !next.IsFinite() {
		cs.status[i] = models.StatusDiverged
		return
	}
	cs.positions[i] = next
	if !opts.inDomain(next.X, next.Y) {
		cs.status[i] = models.StatusOutOfDomain
	}
}

// solveStep solves A s = f for the 2x2 lens-mapping Jacobian A. Near
// critical curves A is close to singular and a raw inverse would produce
// catastrophic steps, so when |det A| falls below the damping threshold
// relative to the matrix scale the step switches to a Levenberg-Marquardt
// regularized solve of (A^T A + lambda I) s = A^T f.
func solveStep(axx, axy, ayx, ayy, fx, fy, dampingThreshold float64) (float64, float64) {
	det := axx*ayy - axy*ayx
	scale := axx*axx + axy*axy + ayx*ayx + ayy*ayy

	if math.Abs(det) >= dampingThreshold*scale {
		inv := 1 / det
		return inv * (ayy*fx - axy*fy), inv * (axx*fy - ayx*fx)
	}

	lambda := dampingThreshold * scale
	if lambda == 0 {
		lambda = dampingThreshold
	}
	m00 := axx*axx + ayx*ayx + lambda
	m01 := axx*axy + ayx*ayy
	m11 := axy*axy + ayy*ayy + lambda
	bx := axx*fx + ayx*fy
	by := axy*fx + ayy*fy
	mdet := m00*m11 - m01*m01
	return (m11*bx - m01*by) / mdet, (m00*by - m01*bx) / mdet
}

// evaluateAll evaluates the field at every candidate position, using the
// batched interface when the field provides one.
func (r *newtonRefiner) evaluateAll(positions []models.Coordinate, params models.LensParameters) []models.FieldSample {
	if batch, ok := r.field.(BatchDeflectionField); ok {
		return batch.EvaluateBatch(positions, params)
	}
	samples := make([]models.FieldSample, len(positions))
	for i, p := range positions {
		samples[i] = r.field.Evaluate(p, params)
	}
	return samples
}
