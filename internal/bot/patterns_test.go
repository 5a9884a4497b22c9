package bot

import (
	"reflect"
	"testing"
)

func TestPatternMinerCountsSubsequences(t *testing.T) {
	p := NewPatternMiner(2)
	p.Update([]int{1, 2, 1, 2}, 3)

	freq := p.FrequentPatterns()
	if len(freq) == 0 {
		t.Fatal("expected frequent patterns")
	}
	// Counts: [1]x2, [2]x2, [1,2]x2; everything else appears once.
	want := map[string]int{"\x01": 2, "\x02": 2, "\x01\x02": 2}
	got := make(map[string]int)
	for _, pat := range freq {
		got[encodeMoves(pat.Moves)] = pat.Count
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("frequent patterns = %v, want %v", got, want)
	}
	// Descending count order.
	for i := 1; i < len(freq); i++ {
		if freq[i].Count > freq[i-1].Count {
			t.Errorf("patterns not sorted by descending count: %v", freq)
		}
	}
}

func TestPatternMinerPredictExtendsSuffix(t *testing.T) {
	p := NewPatternMiner(2)
	for i := 0; i < 4; i++ {
		p.Update([]int{2, 3, 5}, 3)
	}

	d := p.Predict([]int{2, 3})
	checkValidDist(t, "pattern predict", d)
	if d.argMax() != 4 {
		t.Errorf("expected move 5 to extend suffix [2 3], got %v", d)
	}
}

func TestPatternMinerPredictNoMatchIsUniform(t *testing.T) {
	p := NewPatternMiner(2)
	p.Update([]int{1}, 3)

	d := p.Predict([]int{6, 6, 6})
	checkValidDist(t, "pattern no match", d)
	for i := 1; i < numMoves; i++ {
		if d[i] != d[0] {
			t.Fatalf("expected uniform with no matching pattern, got %v", d)
		}
	}
}

func TestPatternMinerBacksOffToShorterSuffix(t *testing.T) {
	p := NewPatternMiner(2)
	for i := 0; i < 3; i++ {
		p.Update([]int{4, 1}, 3)
	}

	// No stored pattern extends [6 6 4] or [6 4], but [4 1] extends [4].
	d := p.Predict([]int{6, 6, 4})
	checkValidDist(t, "pattern backoff", d)
	if d.argMax() != 0 {
		t.Errorf("expected move 1 via suffix [4], got %v", d)
	}
}
