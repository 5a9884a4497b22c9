package bot

import (
	"math"
	"math/rand"
)

// Simulator estimates the value of candidate throws by sampling the
// opponent's next move from a predicted distribution. Getting out while
// batting ends the innings, so the batting risk penalty outweighs the
// bowling out reward.
type Simulator struct {
	samples int
}

// Utility coefficients: an out while batting costs more than a missed
// wicket while bowling.
const (
	battingRiskPenalty = 6.0
	bowlingOutReward   = 3.0
)

// NewSimulator creates a simulator drawing the given number of samples per
// candidate evaluation.
func NewSimulator(samples int) *Simulator {
	if samples < 1 {
		samples = 1
	}
	return &Simulator{samples: samples}
}

// EvaluateMove samples opponent moves and returns the expected runs per turn
// and the probability of an out for the candidate move. While bowling,
// opponent runs count negative: the bowler wants to suppress them.
func (s *Simulator) EvaluateMove(rng *rand.Rand, move int, oppDist dist, batting bool) (expectedRuns, riskOfOut float64) {
	outs := 0
	totalRuns := 0
	for i := 0; i < s.samples; i++ {
		oppMove := oppDist.sample(rng)
		if oppMove == move {
			outs++
			continue
		}
		if batting {
			totalRuns += move
		} else {
			totalRuns -= oppMove
		}
	}
	return float64(totalRuns) / float64(s.samples), float64(outs) / float64(s.samples)
}

// ChooseBest evaluates all six candidate moves and returns the one with the
// highest utility, ties breaking toward the lower move. While batting,
// candidates whose out risk exceeds riskTolerance are skipped; if every
// candidate exceeds it, the lowest-risk move wins. While bowling the
// tolerance does not apply, since a matching throw there is the wicket the
// bowler is after.
func (s *Simulator) ChooseBest(rng *rand.Rand, oppDist dist, batting bool, riskTolerance float64) int {
	bestMove, bestUtility := 0, math.Inf(-1)
	safestMove, safestRisk := 1, math.Inf(1)

	for move := 1; move <= numMoves; move++ {
		runs, risk := s.EvaluateMove(rng, move, oppDist, batting)
		if risk < safestRisk {
			safestMove, safestRisk = move, risk
		}
		if batting && risk > riskTolerance {
			continue
		}
		var utility float64
		if batting {
			utility = runs - risk*battingRiskPenalty
		} else {
			utility = risk*bowlingOutReward + runs
		}
		if utility > bestUtility {
			bestMove, bestUtility = move, utility
		}
	}
	if bestMove == 0 {
		return safestMove
	}
	return bestMove
}

// ChooseSafe returns the move the opponent is least likely to match.
func (s *Simulator) ChooseSafe(oppDist dist) int {
	return oppDist.argMin() + 1
}

// ChooseAggressive maximizes scoring potential: while batting, the move with
// the best value weighted by the chance of surviving; while bowling, the
// opponent's single most probable move to maximize collision odds.
func (s *Simulator) ChooseAggressive(oppDist dist, batting bool) int {
	if !batting {
		return oppDist.argMax() + 1
	}
	bestMove, bestWeight := 1, math.Inf(-1)
	for move := 1; move <= numMoves; move++ {
		weight := float64(move) * (1 - oppDist[move-1])
		if weight > bestWeight {
			bestMove, bestWeight = move, weight
		}
	}
	return bestMove
}

// Adaptive applies the game-situation policy: a balanced first innings, then
// risk tolerance scaled to the pressure of the chase or the defended lead.
func (s *Simulator) Adaptive(rng *rand.Rand, oppDist dist, batting bool, ownScore, oppScore, innings int) int {
	if innings <= 1 {
		return s.ChooseBest(rng, oppDist, batting, 0.30)
	}

	if batting {
		target := oppScore + 1
		runsNeeded := target - ownScore
		switch {
		case runsNeeded <= 0:
			return s.ChooseSafe(oppDist)
		case runsNeeded <= 3:
			return s.ChooseBest(rng, oppDist, batting, 0.35)
		case runsNeeded <= 10:
			return s.ChooseBest(rng, oppDist, batting, 0.25)
		default:
			return s.ChooseAggressive(oppDist, batting)
		}
	}

	runsAhead := ownScore - oppScore
	switch {
	case runsAhead <= 3:
		return s.ChooseAggressive(oppDist, batting)
	case runsAhead <= 10:
		return s.ChooseBest(rng, oppDist, batting, 0.35)
	default:
		return s.ChooseBest(rng, oppDist, batting, 0.40)
	}
}
