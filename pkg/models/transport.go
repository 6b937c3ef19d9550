package models

// SolveOptionsOverride carries optional per-request overrides of the
// solver options. Pointer fields distinguish "not set" from zero values.
type SolveOptionsOverride struct {
	GridResolution    *int     `json:"grid_resolution,omitempty"`
	BoundingHalfWidth *float64 `json:"bounding_half_width,omitempty"`
	Jitter            *float64 `json:"jitter,omitempty"`
	MaxIterations     *int     `json:"max_iterations,omitempty"`
	ConvergenceTol    *float64 `json:"convergence_tol,omitempty"`
	MergeDistance     *float64 `json:"merge_distance,omitempty"`
	DampingThreshold  *float64 `json:"damping_threshold,omitempty"`
	RandomSeed        *int64   `json:"random_seed,omitempty"`
}

// SolveRequest asks for all lensed images of a single source position.
type SolveRequest struct {
	Model      string                `json:"model" binding:"required"`
	Parameters map[string]float64    `json:"parameters" binding:"required"`
	Source     Coordinate            `json:"source"`
	Mode       string                `json:"mode,omitempty"`
	Options    *SolveOptionsOverride `json:"options,omitempty"`
}

// SolveBatchRequest asks for the images of many source positions under one
// lens model. ParameterSets, when present, varies the lens parameters per
// source and must match the length of Sources.
type SolveBatchRequest struct {
	Model         string                `json:"model" binding:"required"`
	Parameters    map[string]float64    `json:"parameters,omitempty"`
	ParameterSets []map[string]float64  `json:"parameter_sets,omitempty"`
	Sources       []Coordinate          `json:"sources" binding:"required"`
	Mode          string                `json:"mode,omitempty"`
	Options       *SolveOptionsOverride `json:"options,omitempty"`
}

// SolveResponse is the transport form of a single-source solve.
type SolveResponse struct {
	RequestID         string      `json:"request_id"`
	Model             string      `json:"model"`
	Result            SolveResult `json:"result"`
	Warnings          []string    `json:"warnings,omitempty"`
	ProcessingTimeSec float64     `json:"processing_time_sec"`
}

// SolveBatchResponse is the transport form of a batched solve.
type SolveBatchResponse struct {
	RequestID         string      `json:"request_id"`
	Model             string      `json:"model"`
	SourceCount       int         `json:"source_count"`
	Results           BatchResult `json:"results"`
	Warnings          []string    `json:"warnings,omitempty"`
	ProcessingTimeSec float64     `json:"processing_time_sec"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
