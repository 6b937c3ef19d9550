package solver

import "go-lens-solver/pkg/models"

// candidateSet holds the mutable refinement state of all candidates of one
// solve call in structure-of-arrays form, so the lockstep refiner can
// advance the whole set with one batched field evaluation per iteration.
// Candidates never outlive the solve call that created them.
type candidateSet struct {
	seeds     []models.Coordinate // provenance: the seed each candidate started from
	positions []models.Coordinate
	residuals []float64
	status    []models.CandidateStatus
}

func newCandidateSet(seeds []models.Coordinate) *candidateSet {
	cs := &candidateSet{
		seeds:     seeds,
		positions: make([]models.Coordinate, len(seeds)),
		residuals: make([]float64, len(seeds)),
		status:    make([]models.CandidateStatus, len(seeds)),
	}
	copy(cs.positions, seeds)
	return cs
}

func (cs *candidateSet) len() int {
	return len(cs.positions)
}

// allTerminal reports whether no candidate is still running.
func (cs *candidateSet) allTerminal() bool {
	for _, s := range cs.status {
		if !s.IsTerminal() {
			return false
		}
	}
	return true
}

// countByStatus returns how many candidates carry the given status.
func (cs *candidateSet) countByStatus(status models.CandidateStatus) int {
	n := 0
	for _, s := range cs.status {
		if s == status {
			n++
		}
	}
	return n
}
