package models

import "math"

// Coordinate is an immutable 2D point on the image plane or source plane.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum of two coordinates.
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub returns the component-wise difference of two coordinates.
func (c Coordinate) Sub(other Coordinate) Coordinate {
	return Coordinate{X: c.X - other.X, Y: c.Y - other.Y}
}

// Scale returns the coordinate scaled by a factor.
func (c Coordinate) Scale(f float64) Coordinate {
	return Coordinate{X: c.X * f, Y: c.Y * f}
}

// Norm returns the Euclidean length of the coordinate vector.
func (c Coordinate) Norm() float64 {
	return math.Hypot(c.X, c.Y)
}

// NormSq returns the squared Euclidean length, avoiding the square root.
func (c Coordinate) NormSq() float64 {
	return c.X*c.X + c.Y*c.Y
}

// DistanceTo returns the Euclidean distance between two coordinates.
func (c Coordinate) DistanceTo(other Coordinate) float64 {
	return math.Hypot(c.X-other.X, c.Y-other.Y)
}

// Angle returns the angular position atan2(y, x) in radians.
func (c Coordinate) Angle() float64 {
	return math.Atan2(c.Y, c.X)
}

// IsFinite reports whether both components are finite numbers.
func (c Coordinate) IsFinite() bool {
	return !math.IsNaN(c.X) && !math.IsInf(c.X, 0) &&
		!math.IsNaN(c.Y) && !math.IsInf(c.Y, 0)
}

// Jacobian is a 2x2 real matrix of spatial derivatives, laid out as
// [d/dx d/dy] rows for the x and y components of a vector field.
type Jacobian struct {
	XX float64 `json:"xx"`
	XY float64 `json:"xy"`
	YX float64 `json:"yx"`
	YY float64 `json:"yy"`
}

// Det returns the determinant of the matrix.
func (j Jacobian) Det() float64 {
	return j.XX*j.YY - j.XY*j.YX
}

// FrobeniusNormSq returns the squared Frobenius norm, used to scale
// singularity thresholds to the magnitude of the matrix entries.
func (j Jacobian) FrobeniusNormSq() float64 {
	return j.XX*j.XX + j.XY*j.XY + j.YX*j.YX + j.YY*j.YY
}

// IsFinite reports whether all entries are finite numbers.
func (j Jacobian) IsFinite() bool {
	return !math.IsNaN(j.XX) && !math.IsInf(j.XX, 0) &&
		!math.IsNaN(j.XY) && !math.IsInf(j.XY, 0) &&
		!math.IsNaN(j.YX) && !math.IsInf(j.YX, 0) &&
		!math.IsNaN(j.YY) && !math.IsInf(j.YY, 0)
}

// LensParameters is an opaque, model-specific parameter set. The solver
// never introspects it; it is passed through to the deflection field,
// which type-asserts its own concrete parameter struct.
type LensParameters any

// FieldSample is the result of evaluating a deflection field at a single
// image-plane position: the deflection vector and its spatial Jacobian.
type FieldSample struct {
	Alpha    Coordinate `json:"alpha"`
	Jacobian Jacobian   `json:"jacobian"`
}

// IsFinite reports whether the sample is defined. Fields signal undefined
// points (singularities, mismatched parameters) with NaN components.
func (s FieldSample) IsFinite() bool {
	return s.Alpha.IsFinite() && s.Jacobian.IsFinite()
}

// UndefinedSample returns the sentinel sample used where a deflection
// field is not defined, e.g. exactly at a point mass.
func UndefinedSample() FieldSample {
	nan := math.NaN()
	return FieldSample{
		Alpha:    Coordinate{X: nan, Y: nan},
		Jacobian: Jacobian{XX: nan, XY: nan, YX: nan, YY: nan},
	}
}
