package lenses

import (
	"math"
	"testing"

	"go-lens-solver/pkg/models"
)

// fdJacobianCheck verifies the analytic Jacobian against central finite
// differences of the deflection.
func fdJacobianCheck(t *testing.T, f Field, theta models.Coordinate, params models.LensParameters) {
	t.Helper()
	const h = 1e-6
	sample := f.Evaluate(theta, params)

	xp := f.Evaluate(models.Coordinate{X: theta.X + h, Y: theta.Y}, params)
	xm := f.Evaluate(models.Coordinate{X: theta.X - h, Y: theta.Y}, params)
	yp := f.Evaluate(models.Coordinate{X: theta.X, Y: theta.Y + h}, params)
	ym := f.Evaluate(models.Coordinate{X: theta.X, Y: theta.Y - h}, params)

	checks := []struct {
		name     string
		analytic float64
		numeric  float64
	}{
		{"XX", sample.Jacobian.XX, (xp.Alpha.X - xm.Alpha.X) / (2 * h)},
		{"XY", sample.Jacobian.XY, (yp.Alpha.X - ym.Alpha.X) / (2 * h)},
		{"YX", sample.Jacobian.YX, (xp.Alpha.Y - xm.Alpha.Y) / (2 * h)},
		{"YY", sample.Jacobian.YY, (yp.Alpha.Y - ym.Alpha.Y) / (2 * h)},
	}
	for _, c := range checks {
		if math.Abs(c.analytic-c.numeric) > 1e-5 {
			t.Errorf("Jacobian %s at %+v: analytic %g vs numeric %g",
				c.name, theta, c.analytic, c.numeric)
		}
	}
}

func TestPointMass_Deflection(t *testing.T) {
	params := PointMassParams{EinsteinRadius: 1}
	sample := NewPointMass().Evaluate(models.Coordinate{X: 2, Y: 0}, params)

	// alpha = theta_E^2 * theta / r^2 = (0.5, 0).
	if math.Abs(sample.Alpha.X-0.5) > 1e-15 || sample.Alpha.Y != 0 {
		t.Errorf("Expected deflection (0.5, 0), got %+v", sample.Alpha)
	}
}

func TestPointMass_OnEinsteinRing(t *testing.T) {
	params := PointMassParams{EinsteinRadius: 1}
	theta := models.Coordinate{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2}
	sample := NewPointMass().Evaluate(theta, params)

	// On the ring the deflection equals the position, so the ray lands on
	// the origin and the lens-mapping determinant vanishes.
	if sample.Alpha.DistanceTo(theta) > 1e-15 {
		t.Errorf("Expected deflection %+v on the ring, got %+v", theta, sample.Alpha)
	}
	det := (1-sample.Jacobian.XX)*(1-sample.Jacobian.YY) -
		sample.Jacobian.XY*sample.Jacobian.YX
	if math.Abs(det) > 1e-14 {
		t.Errorf("Expected the lens-mapping determinant to vanish on the ring, got %g", det)
	}
}

func TestPointMass_UndefinedAtCenter(t *testing.T) {
	params := PointMassParams{EinsteinRadius: 1, Center: models.Coordinate{X: 0.3, Y: -0.1}}
	sample := NewPointMass().Evaluate(models.Coordinate{X: 0.3, Y: -0.1}, params)
	if sample.IsFinite() {
		t.Error("Expected an undefined sample at the lens center")
	}
}

func TestPointMass_OffsetCenter(t *testing.T) {
	params := PointMassParams{EinsteinRadius: 1, Center: models.Coordinate{X: 1, Y: 1}}
	sample := NewPointMass().Evaluate(models.Coordinate{X: 3, Y: 1}, params)
	if math.Abs(sample.Alpha.X-0.5) > 1e-15 || sample.Alpha.Y != 0 {
		t.Errorf("Expected deflection (0.5, 0) relative to the center, got %+v", sample.Alpha)
	}
}

func TestPointMass_ParamsMismatch(t *testing.T) {
	sample := NewPointMass().Evaluate(models.Coordinate{X: 1}, SISParams{EinsteinRadius: 1})
	if sample.IsFinite() {
		t.Error("Expected an undefined sample for mismatched parameters")
	}
}

func TestPointMass_JacobianFiniteDifference(t *testing.T) {
	params := PointMassParams{EinsteinRadius: 1.2, Center: models.Coordinate{X: 0.1, Y: -0.2}}
	for _, theta := range []models.Coordinate{
		{X: 1.5, Y: 0.4},
		{X: -0.7, Y: 0.9},
		{X: 0.6, Y: -1.1},
	} {
		fdJacobianCheck(t, NewPointMass(), theta, params)
	}
}

func TestSIS_Deflection(t *testing.T) {
	params := SISParams{EinsteinRadius: 1.3}
	sample := NewSIS().Evaluate(models.Coordinate{X: 3, Y: 4}, params)

	// |alpha| = theta_E independent of radius.
	if math.Abs(sample.Alpha.Norm()-1.3) > 1e-15 {
		t.Errorf("Expected |alpha| = 1.3, got %g", sample.Alpha.Norm())
	}
	// alpha points along theta.
	if math.Abs(sample.Alpha.X-1.3*0.6) > 1e-15 || math.Abs(sample.Alpha.Y-1.3*0.8) > 1e-15 {
		t.Errorf("Expected radial deflection, got %+v", sample.Alpha)
	}
}

func TestSIS_UndefinedAtCenter(t *testing.T) {
	sample := NewSIS().Evaluate(models.Coordinate{}, SISParams{EinsteinRadius: 1})
	if sample.IsFinite() {
		t.Error("Expected an undefined sample at the SIS center")
	}
}

func TestSIS_JacobianFiniteDifference(t *testing.T) {
	params := SISParams{EinsteinRadius: 0.9, Center: models.Coordinate{X: -0.2, Y: 0.1}}
	for _, theta := range []models.Coordinate{
		{X: 1.1, Y: 0.3},
		{X: -0.9, Y: -0.8},
	} {
		fdJacobianCheck(t, NewSIS(), theta, params)
	}
}

func TestNIS_SmoothAtCenter(t *testing.T) {
	params := NISParams{EinsteinRadius: 1, CoreRadius: 0.1}
	sample := NewNIS().Evaluate(models.Coordinate{}, params)

	if !sample.IsFinite() {
		t.Fatal("Expected a finite sample at the softened center")
	}
	if sample.Alpha.Norm() != 0 {
		t.Errorf("Expected zero deflection at the center, got %+v", sample.Alpha)
	}
}

func TestNIS_ZeroCoreDegeneratesToSIS(t *testing.T) {
	nis := NISParams{EinsteinRadius: 1, CoreRadius: 0}
	sis := SISParams{EinsteinRadius: 1}
	theta := models.Coordinate{X: 0.7, Y: -0.4}

	a := NewNIS().Evaluate(theta, nis)
	b := NewSIS().Evaluate(theta, sis)
	if a.Alpha.DistanceTo(b.Alpha) > 1e-15 {
		t.Errorf("Zero-core NIS deflection %+v differs from SIS %+v", a.Alpha, b.Alpha)
	}

	center := NewNIS().Evaluate(models.Coordinate{}, nis)
	if center.IsFinite() {
		t.Error("Expected the zero-core center to be undefined")
	}
}

func TestNIS_JacobianFiniteDifference(t *testing.T) {
	params := NISParams{EinsteinRadius: 1.1, CoreRadius: 0.25, Center: models.Coordinate{X: 0.05, Y: 0}}
	for _, theta := range []models.Coordinate{
		{X: 0.4, Y: 0.7},
		{X: -0.05, Y: 0.01}, // near the softened center
	} {
		fdJacobianCheck(t, NewNIS(), theta, params)
	}
}

func TestExternalShear_LinearField(t *testing.T) {
	params := ShearParams{Gamma1: 0.1, Gamma2: -0.05}
	sample := NewExternalShear().Evaluate(models.Coordinate{X: 2, Y: 3}, params)

	wantX := 0.1*2 + (-0.05)*3
	wantY := -0.05*2 - 0.1*3
	if math.Abs(sample.Alpha.X-wantX) > 1e-15 || math.Abs(sample.Alpha.Y-wantY) > 1e-15 {
		t.Errorf("Expected deflection (%g, %g), got %+v", wantX, wantY, sample.Alpha)
	}
	// The Jacobian is constant and traceless.
	if sample.Jacobian.XX+sample.Jacobian.YY != 0 {
		t.Error("Expected a traceless shear Jacobian")
	}
	fdJacobianCheck(t, NewExternalShear(), models.Coordinate{X: -1, Y: 4}, params)
}

func TestComposite_SumsComponents(t *testing.T) {
	composite := NewComposite(NewSIS(), NewExternalShear())
	params := CompositeParams{
		SISParams{EinsteinRadius: 1},
		ShearParams{Gamma1: 0.1, Gamma2: 0.02},
	}
	theta := models.Coordinate{X: 1.2, Y: -0.5}

	sum := composite.Evaluate(theta, params)
	a := NewSIS().Evaluate(theta, params[0])
	b := NewExternalShear().Evaluate(theta, params[1])

	if math.Abs(sum.Alpha.X-(a.Alpha.X+b.Alpha.X)) > 1e-15 ||
		math.Abs(sum.Alpha.Y-(a.Alpha.Y+b.Alpha.Y)) > 1e-15 {
		t.Errorf("Composite deflection %+v is not the component sum", sum.Alpha)
	}
	if math.Abs(sum.Jacobian.XX-(a.Jacobian.XX+b.Jacobian.XX)) > 1e-15 {
		t.Error("Composite Jacobian is not the component sum")
	}
}

func TestComposite_UndefinedComponentPropagates(t *testing.T) {
	composite := NewComposite(NewSIS(), NewExternalShear())
	params := CompositeParams{
		SISParams{EinsteinRadius: 1},
		ShearParams{Gamma1: 0.1},
	}
	// The SIS center poisons the whole sample.
	sample := composite.Evaluate(models.Coordinate{}, params)
	if sample.IsFinite() {
		t.Error("Expected an undefined composite sample at a singular component")
	}
}

func TestComposite_ParamsLengthMismatch(t *testing.T) {
	composite := NewComposite(NewSIS(), NewExternalShear())
	sample := composite.Evaluate(models.Coordinate{X: 1}, CompositeParams{SISParams{EinsteinRadius: 1}})
	if sample.IsFinite() {
		t.Error("Expected an undefined sample for a mismatched parameter list")
	}
}

func TestEvaluateBatch_MatchesSingle(t *testing.T) {
	params := PointMassParams{EinsteinRadius: 1}
	thetas := []models.Coordinate{{X: 1, Y: 0}, {X: 0, Y: 0}, {X: -0.5, Y: 2}}

	pm := NewPointMass()
	samples := pm.EvaluateBatch(thetas, params)
	if len(samples) != len(thetas) {
		t.Fatalf("Expected %d samples, got %d", len(thetas), len(samples))
	}
	for i, theta := range thetas {
		single := pm.Evaluate(theta, params)
		if single.IsFinite() != samples[i].IsFinite() {
			t.Errorf("Sample %d definedness disagrees with the single evaluator", i)
			continue
		}
		if single.IsFinite() && samples[i].Alpha != single.Alpha {
			t.Errorf("Sample %d differs from the single evaluator", i)
		}
	}
}
