package solver

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"go-lens-solver/pkg/models"
)

// criticalDetFloor is the absolute determinant below which a converged
// candidate is treated as sitting on the critical curve itself. Its
// magnification is formally divergent; the image is flagged rather than
// reported with a meaningless value.
const criticalDetFloor = 1e-12

// rootClassifier turns the refined candidate set of one source into the
// deduplicated, ordered image sequence. Merging keeps the candidate with
// the smallest residual as representative; retained images are sorted
// brightest first with an angular-position tie break for determinism.
type rootClassifier struct {
	field DeflectionField
}

func newRootClassifier(field DeflectionField) *rootClassifier {
	return &rootClassifier{field: field}
}

func (rc *rootClassifier) classify(source models.Coordinate, params models.LensParameters, cs *candidateSet, iterations int, opts Options) models.SolveResult {
	converged := make([]int, 0, cs.len())
	for i, s := range cs.status {
		if s == models.StatusConverged {
			converged = append(converged, i)
		}
	}

	// Best residual first, index as tie break, so dedup representatives
	// and therefore the whole result are deterministic.
	sort.Slice(converged, func(a, b int) bool {
		ra, rb := cs.residuals[converged[a]], cs.residuals[converged[b]]
		if ra != rb {
			return ra < rb
		}
		return converged[a] < converged[b]
	})

	representatives := make([]int, 0, 8)
	for _, idx := range converged {
		pos := cs.positions[idx]
		distinct := true
		for _, rep := range representatives {
			if pos.DistanceTo(cs.positions[rep]) <= opts.MergeDistance {
				distinct = false
				break
			}
		}
		if distinct {
			representatives = append(representatives, idx)
		}
	}

	images := make([]models.Image, 0, len(representatives))
	for _, idx := range representatives {
		pos := cs.positions[idx]
		sample := rc.field.Evaluate(pos, params)
		if !sample.IsFinite() {
			continue
		}

		// Jacobian of the lens mapping beta(theta) = theta - alpha(theta).
		det := models.Jacobian{
			XX: 1 - sample.Jacobian.XX,
			XY: -sample.Jacobian.XY,
			YX: -sample.Jacobian.YX,
			YY: 1 - sample.Jacobian.YY,
		}.Det()
		if det == 0 {
			// Magnification undefined; cannot report a finite image.
			continue
		}

		mu := 1 / det
		parity := 1
		if mu < 0 {
			parity = -1
		}
		images = append(images, models.Image{
			Position:       pos,
			SourcePosition: pos.Sub(sample.Alpha),
			Magnification:  mu,
			Parity:         parity,
			Residual:       cs.residuals[idx],
			NearCritical:   math.Abs(det) < criticalDetFloor,
		})
	}

	sort.Slice(images, func(a, b int) bool {
		ma, mb := math.Abs(images[a].Magnification), math.Abs(images[b].Magnification)
		if ma != mb {
			return ma > mb
		}
		return images[a].Position.Angle() < images[b].Position.Angle()
	})
	for i := range images {
		images[i].Index = i
	}

	result := models.SolveResult{
		Source:      source,
		Images:      images,
		ImageCount:  len(images),
		Diagnostics: rc.diagnostics(cs, converged, iterations),
	}
	if len(images) == 0 {
		// A generic smooth lens produces at least one image for any source,
		// so an empty set signals an under-resolved or undersized search.
		result.Incomplete = true
		result.Diagnostics.Message = "no images found; the candidate grid may be too coarse or the bounding box too small"
	}
	return result
}

// diagnostics summarizes the refinement outcome for the caller.
func (rc *rootClassifier) diagnostics(cs *candidateSet, converged []int, iterations int) models.SolveDiagnostics {
	diag := models.SolveDiagnostics{
		SeedCount:      cs.len(),
		ConvergedCount: len(converged),
		DivergedCount:  cs.countByStatus(models.StatusDiverged),
		OutOfDomain:    cs.countByStatus(models.StatusOutOfDomain),
		Iterations:     iterations,
	}
	if len(converged) > 0 {
		residuals := make([]float64, len(converged))
		for i, idx := range converged {
			residuals[i] = cs.residuals[idx]
		}
		diag.MeanResidual = stat.Mean(residuals, nil)
		max := residuals[0]
		for _, r := range residuals[1:] {
			if r > max {
				max = r
			}
		}
		diag.MaxResidual = max
	}
	return diag
}
