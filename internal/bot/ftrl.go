package bot

import "math"

// FTRLOptimizer is a follow-the-regularized-leader proximal optimizer over
// the six actions. Observed prediction losses accumulate into per-action
// state; the derived weights feed a softmax to produce a distribution that
// downweights actions the agent keeps getting wrong.
type FTRLOptimizer struct {
	alpha  float64 // learning rate
	beta   float64 // per-coordinate scale
	l1     float64 // L1 penalty: weights inside the dead zone snap to zero
	l2     float64 // L2 penalty

	z []float64 // accumulated signed gradient
	n []float64 // accumulated squared gradient
	w []float64 // derived weights
}

// NewFTRLOptimizer creates an optimizer with the standard parameterization
// (alpha 0.1, beta 1.0, lambda1 0.1, lambda2 1.0).
func NewFTRLOptimizer() *FTRLOptimizer {
	return &FTRLOptimizer{
		alpha: 0.1,
		beta:  1.0,
		l1:    0.1,
		l2:    1.0,
		z:     make([]float64, numMoves),
		n:     make([]float64, numMoves),
		w:     make([]float64, numMoves),
	}
}

// Update folds an observed loss for one action into the optimizer state and
// recomputes every weight with the FTRL-proximal closed form.
func (f *FTRLOptimizer) Update(action int, loss float64) {
	for i := 0; i < numMoves; i++ {
		g := 0.0
		if i == action {
			g = loss
		}
		sigma := (math.Sqrt(f.n[i]+g*g) - math.Sqrt(f.n[i])) / f.alpha
		f.z[i] += g - sigma*f.w[i]
		f.n[i] += g * g
	}
	for i := 0; i < numMoves; i++ {
		if math.Abs(f.z[i]) <= f.l1 {
			f.w[i] = 0
			continue
		}
		sign := 1.0
		if f.z[i] < 0 {
			sign = -1.0
		}
		f.w[i] = -(f.z[i] - sign*f.l1) / ((f.beta+math.Sqrt(f.n[i]))/f.alpha + f.l2)
	}
}

// Probabilities returns the softmax of the current weights.
func (f *FTRLOptimizer) Probabilities() dist {
	return softmax(f.w)
}
