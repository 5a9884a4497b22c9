package bot

import (
	"math"
	"testing"
)

func TestFTRLProbabilitiesValid(t *testing.T) {
	f := NewFTRLOptimizer()
	checkValidDist(t, "ftrl initial", f.Probabilities())

	for i := 0; i < 50; i++ {
		f.Update(i%numMoves, float64(i%2))
	}
	checkValidDist(t, "ftrl trained", f.Probabilities())
}

func TestFTRLSparsity(t *testing.T) {
	f := NewFTRLOptimizer()
	f.Update(2, 1.0)
	for i := 0; i < numMoves; i++ {
		if math.Abs(f.z[i]) <= f.l1 && f.w[i] != 0 {
			t.Errorf("slot %d inside L1 dead zone but weight %v != 0", i, f.w[i])
		}
	}
	// Untouched actions accumulate no gradient and must stay exactly zero.
	for i := 0; i < numMoves; i++ {
		if i != 2 && f.w[i] != 0 {
			t.Errorf("untouched slot %d has weight %v", i, f.w[i])
		}
	}
}

func TestFTRLRepeatedLossSuppressesAction(t *testing.T) {
	f := NewFTRLOptimizer()
	for i := 0; i < 30; i++ {
		f.Update(3, 1.0)
	}
	d := f.Probabilities()
	checkValidDist(t, "ftrl suppressed", d)
	if d[3] >= d[0] {
		t.Errorf("expected repeated loss to push action 3 below its peers, got %v", d)
	}
}

func TestFTRLZeroLossIsNoOp(t *testing.T) {
	f := NewFTRLOptimizer()
	f.Update(1, 0.0)
	for i, w := range f.w {
		if w != 0 {
			t.Errorf("zero loss moved weight %d to %v", i, w)
		}
	}
}
