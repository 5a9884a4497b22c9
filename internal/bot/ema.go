package bot

import "gonum.org/v1/gonum/floats"

// EMAEstimator maintains a recency-weighted probability vector: each observed
// move pulls the estimate toward that move's one-hot vector by a fixed factor.
type EMAEstimator struct {
	alpha float64
	probs dist
}

// NewEMAEstimator creates an estimator with the given smoothing factor;
// higher alpha weights recent moves more heavily. The initial state is
// uniform.
func NewEMAEstimator(alpha float64) *EMAEstimator {
	return &EMAEstimator{alpha: alpha, probs: uniformDist()}
}

// Update recombines the state with the one-hot vector of the observed move
// and renormalizes to correct floating-point drift.
func (e *EMAEstimator) Update(move int) {
	oneHot := make(dist, numMoves)
	oneHot[move-1] = 1
	floats.Scale(1-e.alpha, e.probs)
	floats.AddScaled(e.probs, e.alpha, oneHot)
	e.probs.normalize()
}

// Distribution returns a copy of the current estimate.
func (e *EMAEstimator) Distribution() dist {
	return e.probs.clone()
}
