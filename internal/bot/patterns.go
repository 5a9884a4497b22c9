package bot

import (
	"sort"
	"strings"
)

// PatternMiner accumulates counts of every contiguous subsequence it is shown
// and predicts the next move by extending the longest stored pattern that
// matches the tail of the recent history. Counts grow without bound.
type PatternMiner struct {
	minSupport int
	counts     map[string]int
}

// maxSuffixLen caps the suffix length tried during prediction.
const maxSuffixLen = 3

// Pattern is a mined move sequence with its occurrence count.
type Pattern struct {
	Moves []int `json:"moves"`
	Count int   `json:"count"`
}

// NewPatternMiner creates a miner; patterns with at least minSupport
// occurrences are considered frequent.
func NewPatternMiner(minSupport int) *PatternMiner {
	return &PatternMiner{minSupport: minSupport, counts: make(map[string]int)}
}

// Update extracts every contiguous subsequence of length 1..maxLen from seq
// and increments its count.
func (p *PatternMiner) Update(seq []int, maxLen int) {
	for length := 1; length <= maxLen && length <= len(seq); length++ {
		for i := 0; i+length <= len(seq); i++ {
			p.counts[encodeMoves(seq[i:i+length])]++
		}
	}
}

// FrequentPatterns returns all patterns meeting the support threshold,
// ordered by descending count. Ordering of equal counts is stable within a
// single call.
func (p *PatternMiner) FrequentPatterns() []Pattern {
	var out []Pattern
	for key, count := range p.counts {
		if count < p.minSupport {
			continue
		}
		out = append(out, Pattern{Moves: decodeMoves(key), Count: count})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Predict scores the next move from stored patterns: for decreasing suffix
// length L (capped at 3) it finds all patterns of length L+1 whose first L
// moves equal the last L moves of recent, accumulating the final move's
// count. The first suffix length with any match wins; no match at any length
// yields uniform.
func (p *PatternMiner) Predict(recent []int) dist {
	if len(recent) == 0 {
		return uniformDist()
	}
	start := maxSuffixLen
	if len(recent) < start {
		start = len(recent)
	}
	probs := make(dist, numMoves)
	for l := start; l >= 1; l-- {
		suffix := encodeMoves(recent[len(recent)-l:])
		matched := false
		for key, count := range p.counts {
			if len(key) != l+1 || !strings.HasPrefix(key, suffix) {
				continue
			}
			probs[key[l]-1] += float64(count)
			matched = true
		}
		if matched {
			return probs.normalize()
		}
	}
	return uniformDist()
}

func decodeMoves(key string) []int {
	moves := make([]int, len(key))
	for i := 0; i < len(key); i++ {
		moves[i] = int(key[i])
	}
	return moves
}
