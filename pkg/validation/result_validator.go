package validation

import (
	"fmt"
	"math"

	"go-lens-solver/pkg/models"
)

// ResultThresholds defines the tolerances a SolveResult is checked against.
// They mirror the solver options that produced the result.
type ResultThresholds struct {
	// ConvergenceTol is the maximum acceptable source-plane residual.
	ConvergenceTol float64
	// MergeDistance is the minimum image-plane separation between images.
	MergeDistance float64
}

// DefaultResultThresholds returns thresholds matching the solver defaults.
func DefaultResultThresholds() ResultThresholds {
	return ResultThresholds{
		ConvergenceTol: 1e-9,
		MergeDistance:  1e-4,
	}
}

// ResultValidator checks the invariants every well-formed SolveResult must
// satisfy: each image solves the lens equation within tolerance, no two
// images sit within the merge distance, magnifications are finite and
// nonzero, and an empty image set carries the incompleteness diagnostic.
type ResultValidator struct {
	thresholds ResultThresholds
}

// NewResultValidator creates a result validator with default thresholds.
func NewResultValidator() *ResultValidator {
	return &ResultValidator{
		thresholds: DefaultResultThresholds(),
	}
}

// NewResultValidatorWithThresholds creates a result validator with custom thresholds.
func NewResultValidatorWithThresholds(thresholds ResultThresholds) *ResultValidator {
	return &ResultValidator{
		thresholds: thresholds,
	}
}

// ResultIssue represents a violated result invariant.
type ResultIssue struct {
	Type        string  `json:"type"`
	Message     string  `json:"message"`
	Severity    string  `json:"severity"` // "error", "warning", "info"
	ImageIndex  int     `json:"image_index,omitempty"`
	ActualValue float64 `json:"actual_value,omitempty"`
	Threshold   float64 `json:"threshold,omitempty"`
}

// ValidateResult checks all invariants of a SolveResult.
func (rv *ResultValidator) ValidateResult(result models.SolveResult) []ResultIssue {
	var issues []ResultIssue

	for _, img := range result.Images {
		if img.Residual > rv.thresholds.ConvergenceTol {
			issues = append(issues, ResultIssue{
				Type:        "residual_exceeds_tolerance",
				Message:     fmt.Sprintf("image %d violates the lens equation round trip", img.Index),
				Severity:    "error",
				ImageIndex:  img.Index,
				ActualValue: img.Residual,
				Threshold:   rv.thresholds.ConvergenceTol,
			})
		}
		if img.Magnification == 0 {
			issues = append(issues, ResultIssue{
				Type:       "zero_magnification",
				Message:    fmt.Sprintf("image %d has zero magnification", img.Index),
				Severity:   "error",
				ImageIndex: img.Index,
			})
		}
		if math.IsNaN(img.Magnification) || math.IsInf(img.Magnification, 0) {
			issues = append(issues, ResultIssue{
				Type:       "non_finite_magnification",
				Message:    fmt.Sprintf("image %d has a non-finite magnification", img.Index),
				Severity:   "error",
				ImageIndex: img.Index,
			})
		}
		if img.NearCritical {
			issues = append(issues, ResultIssue{
				Type:       "near_critical_curve",
				Message:    fmt.Sprintf("image %d sits on a critical curve; its magnification is unreliable", img.Index),
				Severity:   "warning",
				ImageIndex: img.Index,
			})
		}
	}

	for a := 0; a < len(result.Images); a++ {
		for b := a + 1; b < len(result.Images); b++ {
			d := result.Images[a].Position.DistanceTo(result.Images[b].Position)
			if d <= rv.thresholds.MergeDistance {
				issues = append(issues, ResultIssue{
					Type:        "images_within_merge_distance",
					Message:     fmt.Sprintf("images %d and %d are closer than the merge distance", a, b),
					Severity:    "error",
					ActualValue: d,
					Threshold:   rv.thresholds.MergeDistance,
				})
			}
		}
	}

	if len(result.Images) == 0 && !result.Incomplete {
		issues = append(issues, ResultIssue{
			Type:     "missing_incomplete_flag",
			Message:  "empty image set without the incompleteness diagnostic",
			Severity: "error",
		})
	}
	if result.ImageCount != len(result.Images) {
		issues = append(issues, ResultIssue{
			Type:     "image_count_mismatch",
			Message:  "image count does not match the number of images",
			Severity: "error",
		})
	}

	return issues
}

// ConvertIssuesToMessages converts issues to human-readable messages.
func (rv *ResultValidator) ConvertIssuesToMessages(issues []ResultIssue) []string {
	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		messages = append(messages, issue.Message)
	}
	return messages
}

// HasErrors reports whether any issue has error severity.
func (rv *ResultValidator) HasErrors(issues []ResultIssue) bool {
	for _, issue := range issues {
		if issue.Severity == "error" {
			return true
		}
	}
	return false
}
