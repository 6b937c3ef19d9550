package models

// CandidateStatus is the refinement state of a single root candidate.
type CandidateStatus int

const (
	// StatusRunning means the candidate is still being refined.
	StatusRunning CandidateStatus = iota
	// StatusConverged means the lens-equation residual dropped below the
	// convergence tolerance.
	StatusConverged
	// StatusDiverged means the iteration produced a non-finite position or
	// the deflection field was undefined at the candidate.
	StatusDiverged
	// StatusMaxIterations means the global iteration cap was reached before
	// convergence.
	StatusMaxIterations
	// StatusOutOfDomain means the candidate left the configured bounding box.
	StatusOutOfDomain
)

// String returns a human-readable status name.
func (s CandidateStatus) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusConverged:
		return "converged"
	case StatusDiverged:
		return "diverged"
	case StatusMaxIterations:
		return "max_iterations_exceeded"
	case StatusOutOfDomain:
		return "out_of_domain"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the status permits no further mutation.
func (s CandidateStatus) IsTerminal() bool {
	return s != StatusRunning
}

// Image is a finalized lensed image of a source point.
type Image struct {
	// Position is the image-plane coordinate solving the lens equation.
	Position Coordinate `json:"position"`
	// SourcePosition is the ray-shot source-plane counterpart of Position.
	SourcePosition Coordinate `json:"source_position"`
	// Magnification is the signed flux amplification 1/det(I - J_alpha).
	// Its sign encodes the image parity.
	Magnification float64 `json:"magnification"`
	// Parity is +1 for minima/maxima of the time-delay surface and -1 for
	// saddle points.
	Parity int `json:"parity"`
	// Index is the stable position of this image in the result ordering
	// (brightest first).
	Index int `json:"index"`
	// Residual is the source-plane distance between the target source and
	// the ray-shot position of the image.
	Residual float64 `json:"residual"`
	// NearCritical flags images whose lens-mapping determinant sits at the
	// floating-point floor, i.e. effectively on a critical curve.
	NearCritical bool `json:"near_critical,omitempty"`
}

// SolveDiagnostics summarizes the search that produced a SolveResult.
type SolveDiagnostics struct {
	SeedCount      int     `json:"seed_count"`
	ConvergedCount int     `json:"converged_count"`
	DivergedCount  int     `json:"diverged_count"`
	OutOfDomain    int     `json:"out_of_domain_count"`
	Iterations     int     `json:"iterations"`
	MeanResidual   float64 `json:"mean_residual"`
	MaxResidual    float64 `json:"max_residual"`
	Message        string  `json:"message,omitempty"`
}

// SolveResult holds every distinct image found for one source position.
// Images is ordered by decreasing |magnification|; ImageCount duplicates
// len(Images) so that batch consumers get an explicit count per source
// rather than relying on a fixed maximum image number.
type SolveResult struct {
	Source      Coordinate       `json:"source"`
	Images      []Image          `json:"images"`
	ImageCount  int              `json:"image_count"`
	Incomplete  bool             `json:"incomplete"`
	Diagnostics SolveDiagnostics `json:"diagnostics"`
}

// BatchResult maps source index to SolveResult, preserving input order.
type BatchResult struct {
	Results []SolveResult `json:"results"`
}
