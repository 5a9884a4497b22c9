// Package bot implements the adaptive hand-cricket opponent: a three-layer
// pipeline of pattern mining, online predictive learning, and risk-aware
// Monte Carlo decision making. Every estimator exposes its belief about the
// player's next throw as a probability vector over the moves 1..6; the Agent
// blends those beliefs into one distribution and picks its own throw.
package bot

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// numMoves is the size of the move alphabet: both sides throw 1..6.
const numMoves = 6

// dist is a probability vector over moves 1..6; slot i corresponds to move i+1.
// Invariant after normalize: all entries >= 0 and the sum is 1.
type dist []float64

// uniformDist returns the no-information distribution.
func uniformDist() dist {
	d := make(dist, numMoves)
	for i := range d {
		d[i] = 1.0 / numMoves
	}
	return d
}

// normalize scales d in place so it sums to 1. A degenerate vector (zero,
// negative, or non-finite mass) falls back to uniform rather than dividing
// by zero.
func (d dist) normalize() dist {
	sum := floats.Sum(d)
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		copy(d, uniformDist())
		return d
	}
	floats.Scale(1/sum, d)
	return d
}

// argMax returns the index of the largest entry, lowest index on ties.
func (d dist) argMax() int {
	best := 0
	for i := 1; i < len(d); i++ {
		if d[i] > d[best] {
			best = i
		}
	}
	return best
}

// argMin returns the index of the smallest entry, lowest index on ties.
func (d dist) argMin() int {
	best := 0
	for i := 1; i < len(d); i++ {
		if d[i] < d[best] {
			best = i
		}
	}
	return best
}

// max returns the largest entry.
func (d dist) max() float64 {
	return d[d.argMax()]
}

// clone returns an independent copy.
func (d dist) clone() dist {
	c := make(dist, len(d))
	copy(c, d)
	return c
}

// sample draws a move 1..6 from the distribution using the given source.
func (d dist) sample(rng *rand.Rand) int {
	r := rng.Float64()
	acc := 0.0
	for i, p := range d {
		acc += p
		if r < acc {
			return i + 1
		}
	}
	// Floating-point shortfall: the cumulative sum can land a hair below 1.
	return numMoves
}

// softmax converts logits into a probability vector, subtracting the maximum
// logit before exponentiating for numerical stability.
func softmax(logits []float64) dist {
	d := make(dist, len(logits))
	m := floats.Max(logits)
	for i, v := range logits {
		d[i] = math.Exp(v - m)
	}
	return d.normalize()
}
