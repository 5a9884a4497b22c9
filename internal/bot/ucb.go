package bot

import "math"

// UCB1Bandit balances exploration and exploitation over the six actions with
// the UCB1 rule: prefer the action with the best mean reward plus an
// exploration bonus that shrinks as the action is visited.
type UCB1Bandit struct {
	c          float64
	counts     []int
	values     []float64 // running mean reward per action
	totalCount int
}

// NewUCB1Bandit creates a bandit with the given exploration constant.
func NewUCB1Bandit(c float64) *UCB1Bandit {
	return &UCB1Bandit{
		c:      c,
		counts: make([]int, numMoves),
		values: make([]float64, numMoves),
	}
}

// SelectAction picks an action index 0..5. The first six calls cover every
// action exactly once; afterwards untried actions still take priority, then
// the UCB1 argmax decides.
func (b *UCB1Bandit) SelectAction() int {
	b.totalCount++
	if b.totalCount <= numMoves {
		return b.totalCount - 1
	}
	best, bestScore := 0, math.Inf(-1)
	for i := 0; i < numMoves; i++ {
		if b.counts[i] == 0 {
			return i
		}
		score := b.values[i] + b.c*math.Sqrt(math.Log(float64(b.totalCount))/float64(b.counts[i]))
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// Update folds a reward into the running mean for the action.
func (b *UCB1Bandit) Update(action int, reward float64) {
	b.counts[action]++
	n := float64(b.counts[action])
	b.values[action] = ((n-1)*b.values[action] + reward) / n
}

// Probabilities converts the UCB scores into a distribution. Before any
// observation the result is uniform. Untried actions carry infinite score;
// when any exist, the probability mass is spread uniformly across exactly
// those actions (forced exploration), otherwise the finite scores are
// softmaxed.
func (b *UCB1Bandit) Probabilities() dist {
	if b.totalCount == 0 {
		return uniformDist()
	}
	scores := make([]float64, numMoves)
	anyInf := false
	for i := 0; i < numMoves; i++ {
		if b.counts[i] == 0 {
			scores[i] = math.Inf(1)
			anyInf = true
			continue
		}
		scores[i] = b.values[i] + b.c*math.Sqrt(math.Log(float64(b.totalCount))/float64(b.counts[i]))
	}
	if anyInf {
		probs := make(dist, numMoves)
		for i, s := range scores {
			if math.IsInf(s, 1) {
				probs[i] = 1
			}
		}
		return probs.normalize()
	}
	return softmax(scores)
}
